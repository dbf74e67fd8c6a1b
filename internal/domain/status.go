package domain

// MediaBuyStatus é o vocabulário canônico de status do protocolo. Nenhum
// integrador inventa esses valores diretamente: toda conversão de status
// nativo passa pela tabela de mapeamento do próprio integrador.
type MediaBuyStatus string

const (
	MediaBuyStatusPendingStart MediaBuyStatus = "pending_start"
	MediaBuyStatusScheduled    MediaBuyStatus = "scheduled"
	MediaBuyStatusDelivering   MediaBuyStatus = "delivering"
	MediaBuyStatusPaused       MediaBuyStatus = "paused"
	MediaBuyStatusCompleted    MediaBuyStatus = "completed"
	MediaBuyStatusCanceled     MediaBuyStatus = "canceled"
	MediaBuyStatusFailed       MediaBuyStatus = "failed"
)

// TaskStatus é o estado de uma WorkflowTask aguardando aprovação humana ou
// processamento diferido.
type TaskStatus string

const (
	TaskStatusPending       TaskStatus = "pending"
	TaskStatusWorking       TaskStatus = "working"
	TaskStatusInputRequired TaskStatus = "input_required"
	TaskStatusCompleted     TaskStatus = "completed"
	TaskStatusFailed        TaskStatus = "failed"
	TaskStatusRejected      TaskStatus = "rejected"
)

// IsTerminal indica se o estado encerra o ciclo de vida da task. Estados
// terminais são imutáveis.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskStatusCompleted, TaskStatusFailed, TaskStatusRejected:
		return true
	}
	return false
}

// CreativeStatus é o resultado de revisão de um criativo em uma plataforma.
type CreativeStatus string

const (
	CreativeStatusApproved      CreativeStatus = "approved"
	CreativeStatusPendingReview CreativeStatus = "pending_review"
	CreativeStatusRejected      CreativeStatus = "rejected"
)
