package integrator

import (
	"errors"
	"fmt"

	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

var ErrUnknownAdapter = errors.New("unknown adapter type")

// Registry resolve o integrador de cada principal pelo tipo configurado no
// tenant. Montado uma única vez na subida do processo; nenhuma inspeção de
// tipo em tempo de execução.
type Registry struct {
	adapters map[string]AdServerAdapter
}

func NewRegistry(adapters ...AdServerAdapter) *Registry {
	registry := &Registry{
		adapters: make(map[string]AdServerAdapter, len(adapters)),
	}
	for _, adapter := range adapters {
		registry.adapters[adapter.Platform()] = adapter
	}
	return registry
}

// ForPrincipal devolve o integrador configurado para o principal.
func (r *Registry) ForPrincipal(principal *domain.Principal) (AdServerAdapter, error) {
	adapter, ok := r.adapters[principal.AdapterType]
	if !ok {
		return nil, fmt.Errorf("%w: %q (principal %s)", ErrUnknownAdapter, principal.AdapterType, principal.PrincipalID)
	}
	return adapter, nil
}

// Platforms lista os tipos de integrador registrados.
func (r *Registry) Platforms() []string {
	platforms := make([]string, 0, len(r.adapters))
	for platform := range r.adapters {
		platforms = append(platforms, platform)
	}
	return platforms
}
