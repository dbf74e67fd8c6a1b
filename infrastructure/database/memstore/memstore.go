package memstore

import (
	"sync"
)

// Arena é o armazenamento em memória compartilhado pelo integrador de
// simulação. Um mapa chave→registro seguro para concorrência, com um lock
// por chave para escritas do tipo ler-modificar-gravar: valores publicados
// são tratados como imutáveis e toda mutação passa por Update, que clona
// antes de gravar. A posse do Arena é de quem monta os integradores,
// nunca do integrador.
type Arena struct {
	mu      sync.RWMutex
	records map[string]any
	locks   map[string]*sync.Mutex
}

func NewArena() *Arena {
	return &Arena{
		records: make(map[string]any),
		locks:   make(map[string]*sync.Mutex),
	}
}

// Put grava o registro da chave, substituindo qualquer valor anterior.
// O valor gravado passa a ser do Arena: quem gravou não deve mais mutá-lo.
func (a *Arena) Put(key string, value any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.records[key] = value
}

// Get devolve o registro da chave e se ele existe. O valor devolvido é
// compartilhado entre leitores e não pode ser mutado; para alterar, use
// Update.
func (a *Arena) Get(key string) (any, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	value, ok := a.records[key]
	return value, ok
}

// Update roda fn com o valor atual da chave sob o lock dela e publica o
// valor devolvido. Duas atualizações da mesma chave nunca rodam ao mesmo
// tempo; chaves diferentes não se bloqueiam. fn recebe o valor publicado
// e deve devolver um valor novo (clonar antes de mutar), nunca mutar o
// recebido. Erro de fn descarta a atualização e é repassado ao chamador.
func (a *Arena) Update(key string, fn func(current any, ok bool) (any, error)) error {
	lock := a.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	current, ok := a.Get(key)
	next, err := fn(current, ok)
	if err != nil {
		return err
	}

	a.Put(key, next)
	return nil
}

// Delete remove o registro da chave, se existir. O lock da chave fica:
// um Update em voo não pode correr contra um lock recém-criado.
func (a *Arena) Delete(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.records, key)
}

// Len conta os registros armazenados.
func (a *Arena) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.records)
}

// Keys lista as chaves presentes, sem ordem garantida.
func (a *Arena) Keys() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	keys := make([]string, 0, len(a.records))
	for key := range a.records {
		keys = append(keys, key)
	}
	return keys
}

func (a *Arena) keyLock(key string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()

	lock, ok := a.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[key] = lock
	}
	return lock
}
