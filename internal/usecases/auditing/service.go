package auditing

import (
	"context"
	"sync"
	"time"

	"github.com/vfg2006/adcp-dispatch-api/infrastructure/repository"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
	"github.com/vfg2006/adcp-dispatch-api/pkg/log"
)

// Auditor registra a trilha de auditoria das operações de despacho. O
// registro é melhor esforço: Record nunca bloqueia o chamador e nunca
// devolve erro. Com a fila cheia o evento é descartado com aviso no log.
type Auditor interface {
	Record(ctx context.Context, event *domain.AuditEvent)
	Shutdown(ctx context.Context)
}

type Service struct {
	repo   repository.AuditLogRepository
	events chan *domain.AuditEvent
	done   chan struct{}

	closeOnce sync.Once
	now       func() time.Time
}

// NewService cria o serviço de auditoria e inicia o worker de gravação.
// bufferSize dimensiona a fila entre as operações e o worker.
func NewService(repo repository.AuditLogRepository, bufferSize int) *Service {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	s := &Service{
		repo:   repo,
		events: make(chan *domain.AuditEvent, bufferSize),
		done:   make(chan struct{}),
		now:    time.Now,
	}

	go s.worker()

	return s
}

// Record enfileira um evento para gravação. Nunca bloqueia: com a fila
// cheia o evento é descartado e registrado como aviso, a operação que o
// gerou segue intacta.
func (s *Service) Record(ctx context.Context, event *domain.AuditEvent) {
	if event == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now()
	}

	select {
	case s.events <- event:
	default:
		log.ForContext(ctx).WithFields(log.Fields{
			"operation":    event.Operation,
			"principal_id": event.PrincipalID,
		}).Warn("Fila de auditoria cheia, evento descartado")
	}
}

// worker drena a fila gravando evento a evento. Falha de gravação só
// gera log: a trilha de auditoria nunca derruba o processo.
func (s *Service) worker() {
	defer close(s.done)

	for event := range s.events {
		if err := s.repo.SaveEvent(event); err != nil {
			log.L.WithError(err).WithFields(log.Fields{
				"operation":    event.Operation,
				"principal_id": event.PrincipalID,
			}).Warn("Falha ao gravar evento de auditoria")
		}
	}
}

// Shutdown fecha a fila e aguarda o worker drenar os eventos restantes
// até o prazo do contexto. Eventos ainda na fila após o prazo são
// perdidos.
func (s *Service) Shutdown(ctx context.Context) {
	s.closeOnce.Do(func() {
		close(s.events)
	})

	select {
	case <-s.done:
	case <-ctx.Done():
		log.L.Warn("Tempo esgotado aguardando a descarga da trilha de auditoria")
	}
}
