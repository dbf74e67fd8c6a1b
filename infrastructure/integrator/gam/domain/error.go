package gamdomain

// ErrorResponse representa a estrutura de erro da API do Ad Manager
type ErrorResponse struct {
	Error ErrorDetails `json:"error"`
}

// ErrorDetails contém os detalhes de erro da API do Ad Manager
type ErrorDetails struct {
	Code    int         `json:"code"`
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Details []ErrorItem `json:"details,omitempty"`
}

// ErrorItem aponta o campo ofensivo de um erro de validação da API
type ErrorItem struct {
	Reason    string `json:"reason,omitempty"`
	FieldPath string `json:"field_path,omitempty"`
}

// IsSessionExpired verifica se o erro indica sessão expirada ou inválida
func (e *ErrorResponse) IsSessionExpired() bool {
	return e.Error.Code == 401 || e.Error.Status == "UNAUTHENTICATED"
}
