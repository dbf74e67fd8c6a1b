package targeting

import (
	"fmt"

	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

// Validate confronta uma sobreposição de segmentação com a tabela de
// capacidades do adaptador. Todas as violações são acumuladas em um único
// erro para que o comprador corrija a requisição de uma vez, sem
// truncamento silencioso de dimensões não suportadas.
func Validate(overlay *domain.TargetingOverlay, caps domain.TargetingCapabilities) error {
	if overlay == nil || overlay.IsEmpty() {
		return nil
	}

	violations := Violations(overlay, caps)
	if len(violations) == 0 {
		return nil
	}

	return domain.NewValidationError(domain.ErrUnsupportedTargeting, violations...)
}

// Violations devolve a lista crua de violações, usada pelo preparo de
// media buys para agregar problemas de vários pacotes antes de falhar.
func Violations(overlay *domain.TargetingOverlay, caps domain.TargetingCapabilities) []string {
	if overlay == nil {
		return nil
	}

	var violations []string

	for _, deviceType := range overlay.DeviceTypeAnyOf {
		if !caps.SupportedDeviceTypes[deviceType] {
			violations = append(violations,
				fmt.Sprintf("device type %q is not supported by this platform", deviceType))
		}
	}

	for _, mediaType := range overlay.MediaTypeAnyOf {
		if !caps.SupportedMediaTypes[mediaType] {
			violations = append(violations,
				fmt.Sprintf("media type %q is not supported by this platform", mediaType))
		}
	}

	if len(overlay.OSAnyOf) > 0 && !caps.SupportsOSTargeting {
		violations = append(violations,
			fmt.Sprintf("operating system targeting is not available on this platform (requested: %v)", overlay.OSAnyOf))
	}

	if len(overlay.BrowserAnyOf) > 0 && !caps.SupportsBrowser {
		violations = append(violations,
			fmt.Sprintf("browser targeting is not available on this platform (requested: %v)", overlay.BrowserAnyOf))
	}

	return violations
}

// Merge combina a sobreposição da campanha com a do pacote. As listas do
// pacote acrescentam às da campanha e as chaves customizadas do pacote
// prevalecem quando repetidas.
func Merge(base, override *domain.TargetingOverlay) *domain.TargetingOverlay {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := &domain.TargetingOverlay{
		GeoCountryAnyOf:       appendUnique(base.GeoCountryAnyOf, override.GeoCountryAnyOf),
		GeoCountryNoneOf:      appendUnique(base.GeoCountryNoneOf, override.GeoCountryNoneOf),
		GeoRegionAnyOf:        appendUnique(base.GeoRegionAnyOf, override.GeoRegionAnyOf),
		DeviceTypeAnyOf:       appendUnique(base.DeviceTypeAnyOf, override.DeviceTypeAnyOf),
		OSAnyOf:               appendUnique(base.OSAnyOf, override.OSAnyOf),
		BrowserAnyOf:          appendUnique(base.BrowserAnyOf, override.BrowserAnyOf),
		ContentCategoryAnyOf:  appendUnique(base.ContentCategoryAnyOf, override.ContentCategoryAnyOf),
		ContentCategoryNoneOf: appendUnique(base.ContentCategoryNoneOf, override.ContentCategoryNoneOf),
		MediaTypeAnyOf:        appendUnique(base.MediaTypeAnyOf, override.MediaTypeAnyOf),
	}

	if len(base.Custom) > 0 || len(override.Custom) > 0 {
		merged.Custom = make(map[string]string, len(base.Custom)+len(override.Custom))
		for key, value := range base.Custom {
			merged.Custom[key] = value
		}
		for key, value := range override.Custom {
			merged.Custom[key] = value
		}
	}

	return merged
}

func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		if len(base) == 0 {
			return nil
		}
		return append([]string(nil), base...)
	}

	seen := make(map[string]bool, len(base)+len(extra))
	merged := make([]string, 0, len(base)+len(extra))
	for _, value := range base {
		if !seen[value] {
			seen[value] = true
			merged = append(merged, value)
		}
	}
	for _, value := range extra {
		if !seen[value] {
			seen[value] = true
			merged = append(merged, value)
		}
	}
	return merged
}
