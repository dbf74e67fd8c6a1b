package approving

import (
	"sync"
	"time"
)

// Scheduler agenda a execução futura de uma função. O cancelamento
// devolvido interrompe a execução se ela ainda não começou. A abstração
// existe para os testes dispararem os temporizadores sem esperar tempo
// real.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler agenda com temporizadores do runtime.
type TimerScheduler struct{}

func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() {
		timer.Stop()
	}
}

// ManualScheduler acumula as funções agendadas e só as executa quando o
// teste chama Fire ou FireAll.
type ManualScheduler struct {
	mu    sync.Mutex
	tasks []*manualTask
}

type manualTask struct {
	delay    time.Duration
	fn       func()
	canceled bool
	fired    bool
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) Schedule(delay time.Duration, fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &manualTask{delay: delay, fn: fn}
	s.tasks = append(s.tasks, task)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		task.canceled = true
	}
}

// Fire executa a próxima função agendada ainda não disparada. Devolve
// falso quando não há nada pendente.
func (s *ManualScheduler) Fire() bool {
	s.mu.Lock()
	var next *manualTask
	for _, task := range s.tasks {
		if !task.fired && !task.canceled {
			next = task
			break
		}
	}
	if next != nil {
		next.fired = true
	}
	s.mu.Unlock()

	if next == nil {
		return false
	}

	next.fn()
	return true
}

// FireAll executa todas as funções pendentes na ordem de agendamento.
func (s *ManualScheduler) FireAll() int {
	fired := 0
	for s.Fire() {
		fired++
	}
	return fired
}

// Pending conta as funções agendadas que ainda não dispararam nem foram
// canceladas.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := 0
	for _, task := range s.tasks {
		if !task.fired && !task.canceled {
			pending++
		}
	}
	return pending
}
