package dispatching

import (
	"context"
	"time"

	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

// Desfechos aceitos na conclusão explícita de uma task pelo operador.
const (
	TaskOutcomeApprove = "approve"
	TaskOutcomeReject  = "reject"
	TaskOutcomeFail    = "fail"
)

// MediaBuyDispatcher executa as operações de compra contra a plataforma
// configurada para o principal autenticado.
type MediaBuyDispatcher interface {
	// CreateMediaBuy valida, precifica e despacha uma nova compra. Quando a
	// operação exige aprovação manual a compra fica registrada e a task de
	// workflow acompanha a resposta.
	CreateMediaBuy(ctx context.Context, principal *domain.Principal, request *domain.MediaBuyRequest, webhookURL *string) (*Submission, error)

	// UpdateMediaBuy aplica uma alteração parcial com falhas itemizadas por
	// pacote.
	UpdateMediaBuy(ctx context.Context, principal *domain.Principal, update *domain.UpdateMediaBuyRequest, webhookURL *string) (*Submission, error)

	// AddCreativeAssets envia criativos para a compra com resultado
	// itemizado por criativo.
	AddCreativeAssets(ctx context.Context, principal *domain.Principal, mediaBuyID string, assets []domain.CreativeAsset) ([]domain.CreativeResult, error)

	// CheckStatus atualiza o status canônico da compra a partir da
	// plataforma.
	CheckStatus(ctx context.Context, principal *domain.Principal, mediaBuyID string) (*domain.MediaBuyRecord, error)

	// GetDelivery consolida a entrega da compra no período informado.
	GetDelivery(ctx context.Context, principal *domain.Principal, mediaBuyID string, periodStart, periodEnd time.Time) (*domain.DeliveryReport, error)

	// UpdatePerformanceIndex repassa índices de performance do comprador.
	// Devolve falso quando a plataforma não consome índices.
	UpdatePerformanceIndex(ctx context.Context, principal *domain.Principal, mediaBuyID string, indexes []domain.PerformanceIndex) (bool, error)

	// ListMediaBuys lista as compras do principal, da mais antiga para a
	// mais recente. Leitura local, sem chamada de plataforma.
	ListMediaBuys(ctx context.Context, principal *domain.Principal) ([]*domain.MediaBuyRecord, error)

	// GetDeliveryHistory lista os snapshots diários de entrega consolidados
	// pelo job de sincronização dentro do período informado.
	GetDeliveryHistory(ctx context.Context, principal *domain.Principal, mediaBuyID string, periodStart, periodEnd time.Time) ([]*domain.DeliverySnapshot, error)
}

// TaskDispatcher expõe a consulta do comprador e a conclusão do operador
// sobre as tasks de workflow.
type TaskDispatcher interface {
	GetTask(ctx context.Context, principal *domain.Principal, taskID string) (*domain.WorkflowTask, error)
	ListTasks(ctx context.Context, principal *domain.Principal, mediaBuyID string) ([]*domain.WorkflowTask, error)
	CompleteTask(ctx context.Context, taskID, outcome, reason string) (*domain.WorkflowTask, error)
}

// Dispatcher combina as operações de compra e de task.
type Dispatcher interface {
	MediaBuyDispatcher
	TaskDispatcher
}

// Desfechos possíveis de uma operação de escrita. Uma submissão diferida
// ainda não tocou a plataforma: a aplicação acontece quando a task
// assíncrona concluir.
const (
	SubmissionCompleted = "completed"
	SubmissionSubmitted = "submitted"
)

// Submission é o desfecho de uma operação de escrita: o marcador do que
// aconteceu, a compra no estado em que ficou e, quando houve ciclo de
// aprovação, a task envolvida. Results itemiza alterações por pacote em
// updates parciais.
type Submission struct {
	Status   string                       `json:"status"`
	MediaBuy *domain.MediaBuyRecord       `json:"media_buy"`
	Task     *domain.WorkflowTask         `json:"task,omitempty"`
	Results  []domain.PackageUpdateResult `json:"package_results,omitempty"`
}
