package approving

import "github.com/vfg2006/adcp-dispatch-api/internal/domain"

// Transições permitidas entre estados de tarefa. Estados terminais não
// aparecem como origem: uma vez concluída, falhada ou rejeitada, a
// tarefa não se move mais. input_required só volta para working, a
// conclusão acontece a partir de working.
var allowedTransitions = map[domain.TaskStatus]map[domain.TaskStatus]bool{
	domain.TaskStatusPending: {
		domain.TaskStatusWorking:       true,
		domain.TaskStatusInputRequired: true,
		domain.TaskStatusCompleted:     true,
		domain.TaskStatusFailed:        true,
		domain.TaskStatusRejected:      true,
	},
	domain.TaskStatusWorking: {
		domain.TaskStatusInputRequired: true,
		domain.TaskStatusCompleted:     true,
		domain.TaskStatusFailed:        true,
		domain.TaskStatusRejected:      true,
	},
	domain.TaskStatusInputRequired: {
		domain.TaskStatusWorking: true,
	},
}

// CanTransition informa se a tarefa pode sair do estado atual para o
// estado desejado.
func CanTransition(from, to domain.TaskStatus) bool {
	return allowedTransitions[from][to]
}
