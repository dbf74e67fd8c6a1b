package domain

// TargetingOverlay é o conjunto de restrições de audiência e inventário que o
// comprador aplica sobre um produto. Entrada somente-leitura do validador de
// segmentação.
type TargetingOverlay struct {
	GeoCountryAnyOf       []string          `json:"geo_country_any_of,omitempty"`
	GeoCountryNoneOf      []string          `json:"geo_country_none_of,omitempty"`
	GeoRegionAnyOf        []string          `json:"geo_region_any_of,omitempty"`
	DeviceTypeAnyOf       []string          `json:"device_type_any_of,omitempty"`
	OSAnyOf               []string          `json:"os_any_of,omitempty"`
	BrowserAnyOf          []string          `json:"browser_any_of,omitempty"`
	ContentCategoryAnyOf  []string          `json:"content_category_any_of,omitempty"`
	ContentCategoryNoneOf []string          `json:"content_category_none_of,omitempty"`
	MediaTypeAnyOf        []string          `json:"media_type_any_of,omitempty"`
	Custom                map[string]string `json:"custom,omitempty"`
}

// IsEmpty informa se nenhuma dimensão foi preenchida.
func (t *TargetingOverlay) IsEmpty() bool {
	if t == nil {
		return true
	}
	return len(t.GeoCountryAnyOf) == 0 &&
		len(t.GeoCountryNoneOf) == 0 &&
		len(t.GeoRegionAnyOf) == 0 &&
		len(t.DeviceTypeAnyOf) == 0 &&
		len(t.OSAnyOf) == 0 &&
		len(t.BrowserAnyOf) == 0 &&
		len(t.ContentCategoryAnyOf) == 0 &&
		len(t.ContentCategoryNoneOf) == 0 &&
		len(t.MediaTypeAnyOf) == 0 &&
		len(t.Custom) == 0
}

// TargetingCapabilities declara o que um integrador aceita em cada dimensão
// de segmentação. Valores fora dos conjuntos são rejeitados pelo validador,
// nunca descartados em silêncio.
type TargetingCapabilities struct {
	SupportedDeviceTypes map[string]bool
	SupportedMediaTypes  map[string]bool
	SupportsOSTargeting  bool
	SupportsBrowser      bool
}
