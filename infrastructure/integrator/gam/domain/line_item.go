package gamdomain

// Status nativos de line item.
const (
	LineItemStatusActive = "ACTIVE"
	LineItemStatusPaused = "PAUSED"
)

// Tipos de line item. STANDARD reserva inventário garantido;
// PRICE_PRIORITY compete pelo inventário restante.
const (
	LineItemTypeStandard      = "STANDARD"
	LineItemTypePricePriority = "PRICE_PRIORITY"
)

// Tipos de custo aceitos pela API de line items.
const (
	CostTypeCPM  = "CPM"
	CostTypeCPCV = "CPCV"
)

// Unidades de meta de entrega.
const (
	GoalUnitImpressions    = "IMPRESSIONS"
	GoalUnitCompletedViews = "COMPLETED_VIEWS"
)

// LineItem é uma linha de veiculação dentro de uma ordem.
type LineItem struct {
	ID          string     `json:"id,omitempty"`
	OrderID     string     `json:"order_id,omitempty"`
	Name        string     `json:"name,omitempty"`
	Type        string     `json:"line_item_type,omitempty"`
	Status      string     `json:"status,omitempty"`
	CostType    string     `json:"cost_type,omitempty"`
	CostPerUnit *Money     `json:"cost_per_unit,omitempty"`
	Goal        *Goal      `json:"primary_goal,omitempty"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	Targeting   *Targeting `json:"targeting,omitempty"`
	ExternalRef string     `json:"external_ref,omitempty"`
}

// Goal é a meta primária de entrega de um line item.
type Goal struct {
	UnitType string `json:"unit_type"`
	Units    int64  `json:"units"`
}

// Targeting é o critério de segmentação nativo de um line item.
type Targeting struct {
	GeoCountries              []string          `json:"geo_countries,omitempty"`
	ExcludedGeoCountries      []string          `json:"excluded_geo_countries,omitempty"`
	GeoRegions                []string          `json:"geo_regions,omitempty"`
	DeviceCategories          []string          `json:"device_categories,omitempty"`
	OperatingSystems          []string          `json:"operating_systems,omitempty"`
	Browsers                  []string          `json:"browsers,omitempty"`
	ContentCategories         []string          `json:"content_categories,omitempty"`
	ExcludedContentCategories []string          `json:"excluded_content_categories,omitempty"`
	MediaTypes                []string          `json:"media_types,omitempty"`
	CustomCriteria            map[string]string `json:"custom_criteria,omitempty"`
}
