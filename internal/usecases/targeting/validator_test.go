package targeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/adcp-dispatch-api/internal/domain"
)

func webCapabilities() domain.TargetingCapabilities {
	return domain.TargetingCapabilities{
		SupportedDeviceTypes: map[string]bool{
			"mobile":  true,
			"desktop": true,
			"tablet":  true,
			"ctv":     true,
		},
		SupportedMediaTypes: map[string]bool{
			"display": true,
			"video":   true,
			"native":  true,
		},
		SupportsOSTargeting: true,
		SupportsBrowser:     true,
	}
}

func doohCapabilities() domain.TargetingCapabilities {
	return domain.TargetingCapabilities{
		SupportedDeviceTypes: map[string]bool{
			"billboard":   true,
			"transit":     true,
			"kiosk":       true,
			"urban_panel": true,
		},
		SupportedMediaTypes: map[string]bool{
			"video":   true,
			"display": true,
		},
		SupportsOSTargeting: false,
		SupportsBrowser:     false,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		overlay  *domain.TargetingOverlay
		caps     domain.TargetingCapabilities
		validate func(t *testing.T, err error)
	}{
		{
			name:    "Sobreposição nula passa sem validação",
			overlay: nil,
			caps:    doohCapabilities(),
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:    "Sobreposição vazia passa sem validação",
			overlay: &domain.TargetingOverlay{},
			caps:    doohCapabilities(),
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "Dimensões suportadas passam na tabela de capacidades web",
			overlay: &domain.TargetingOverlay{
				GeoCountryAnyOf: []string{"US", "BR"},
				DeviceTypeAnyOf: []string{"mobile", "ctv"},
				OSAnyOf:         []string{"ios", "android"},
				BrowserAnyOf:    []string{"chrome"},
				MediaTypeAnyOf:  []string{"video"},
			},
			caps: webCapabilities(),
			validate: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "Tipo de dispositivo desconhecido é rejeitado nomeando o valor",
			overlay: &domain.TargetingOverlay{
				DeviceTypeAnyOf: []string{"mobile", "smart_fridge"},
			},
			caps: webCapabilities(),
			validate: func(t *testing.T, err error) {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrUnsupportedTargeting)
				assert.Contains(t, err.Error(), `"smart_fridge"`)
				assert.NotContains(t, err.Error(), `"mobile" is not supported`)
			},
		},
		{
			name: "DOOH rejeita segmentação por sistema operacional e navegador",
			overlay: &domain.TargetingOverlay{
				DeviceTypeAnyOf: []string{"billboard"},
				OSAnyOf:         []string{"ios"},
				BrowserAnyOf:    []string{"chrome"},
			},
			caps: doohCapabilities(),
			validate: func(t *testing.T, err error) {
				require.Error(t, err)

				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Len(t, validationErr.Violations, 2)
				assert.Contains(t, err.Error(), "operating system targeting is not available")
				assert.Contains(t, err.Error(), "browser targeting is not available")
			},
		},
		{
			name: "Todas as violações são acumuladas em um único erro",
			overlay: &domain.TargetingOverlay{
				DeviceTypeAnyOf: []string{"mobile", "desktop"},
				MediaTypeAnyOf:  []string{"audio"},
				OSAnyOf:         []string{"android"},
			},
			caps: doohCapabilities(),
			validate: func(t *testing.T, err error) {
				require.Error(t, err)

				var validationErr *domain.ValidationError
				require.ErrorAs(t, err, &validationErr)
				assert.Len(t, validationErr.Violations, 4)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Validate(tt.overlay, tt.caps))
		})
	}
}

func TestMerge(t *testing.T) {
	t.Run("Pacote acrescenta dimensões sem duplicar valores da campanha", func(t *testing.T) {
		base := &domain.TargetingOverlay{
			GeoCountryAnyOf: []string{"US", "BR"},
			DeviceTypeAnyOf: []string{"mobile"},
			Custom:          map[string]string{"daypart": "evening"},
		}
		override := &domain.TargetingOverlay{
			GeoCountryAnyOf: []string{"BR", "AR"},
			MediaTypeAnyOf:  []string{"video"},
			Custom:          map[string]string{"daypart": "morning", "venue": "airport"},
		}

		merged := Merge(base, override)

		assert.Equal(t, []string{"US", "BR", "AR"}, merged.GeoCountryAnyOf)
		assert.Equal(t, []string{"mobile"}, merged.DeviceTypeAnyOf)
		assert.Equal(t, []string{"video"}, merged.MediaTypeAnyOf)
		assert.Equal(t, "morning", merged.Custom["daypart"])
		assert.Equal(t, "airport", merged.Custom["venue"])
	})

	t.Run("Lados nulos devolvem o outro lado", func(t *testing.T) {
		overlay := &domain.TargetingOverlay{GeoCountryAnyOf: []string{"US"}}

		assert.Equal(t, overlay, Merge(nil, overlay))
		assert.Equal(t, overlay, Merge(overlay, nil))
		assert.Nil(t, Merge(nil, nil))
	})
}
