package gamdomain

// ReportRow é uma linha do relatório de entrega, agregada por line item e
// dia. Receita em microunidades, como todo valor monetário da API.
type ReportRow struct {
	Date          string `json:"date"`
	OrderID       string `json:"order_id"`
	LineItemID    string `json:"line_item_id"`
	Impressions   int64  `json:"ad_server_impressions"`
	Clicks        int64  `json:"ad_server_clicks"`
	RevenueMicros int64  `json:"ad_server_revenue_micros"`
}
