package broadsigndomain

// ProofOfPlayRow é uma linha do relatório de comprovação de exibição: o
// total de exibições de um dia em uma tela, acompanhado do multiplicador de
// audiência daquela tela.
type ProofOfPlayRow struct {
	Date               string  `json:"date"`
	BookingID          int64   `json:"booking_id"`
	ScreenID           int64   `json:"screen_id"`
	Plays              int64   `json:"plays"`
	ImpressionsPerPlay float64 `json:"impressions_per_play"`
}
