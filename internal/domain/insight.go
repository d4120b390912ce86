package domain

import "time"

// KPISet reúne os indicadores principais do dashboard
type KPISet struct {
	AvgCLV                 float64 `json:"avg_clv"`
	ConversionRate         float64 `json:"conversion_rate"`
	AvgOrderValue          float64 `json:"avg_order_value"`
	AvgItemsPerTransaction float64 `json:"avg_items_per_transaction"`
	AverageTicket          float64 `json:"ticket_promedio"`
	RepeatCustomerRate     float64 `json:"tasa_repeticion"`
}

// HeadlineMetrics são os cartões de métricas principais
type HeadlineMetrics struct {
	TotalRevenue        float64 `json:"total_revenue"`
	SalesRecords        int     `json:"sales_records"`
	UniqueVisitors      int     `json:"unique_visitors"`
	RegisteredCustomers int     `json:"registered_customers"`
	ActiveProducts      int     `json:"active_products"`
	CatalogSize         int     `json:"catalog_size"`
	TotalEvents         int     `json:"total_events"`
	EventTypes          int     `json:"event_types"`
}

type NamedRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

type CategoryShare struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Share   float64 `json:"share"`
}

type DailyRevenue struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type VisitorRevenue struct {
	VisitorID   int64   `json:"visitor_id"`
	DisplayName string  `json:"display_name"`
	Revenue     float64 `json:"revenue"`
}

type ProductRevenue struct {
	ItemID      int64   `json:"item_id"`
	ProductName string  `json:"product_name"`
	Revenue     float64 `json:"revenue"`
}

type EventTypeCount struct {
	EventType string `json:"event_type"`
	Count     int    `json:"count"`
}

// ActivitySummaryRow é uma linha do resumo de atividade por produto/categoria/marca
type ActivitySummaryRow struct {
	ItemID         *int64  `json:"item_id,omitempty"`
	CategoryName   string  `json:"category_name"`
	BrandName      string  `json:"brand_name"`
	TotalRevenue   float64 `json:"total_revenue"`
	Events         int     `json:"events"`
	AverageRevenue float64 `json:"average_revenue"`
	UniqueVisitors int     `json:"unique_visitors"`
}

// AggregationViews alimenta os gráficos e tabelas
type AggregationViews struct {
	CategoryShares  []CategoryShare      `json:"category_shares"`
	CategoryDetail  []NamedRevenue       `json:"category_detail"`
	TopBrands       []NamedRevenue       `json:"top_brands"`
	DailyRevenue    []DailyRevenue       `json:"daily_revenue"`
	TopVisitors     []VisitorRevenue     `json:"top_visitors"`
	TopProducts     []ProductRevenue     `json:"top_products"`
	EventTypes      []EventTypeCount     `json:"event_types"`
	ActivitySummary []ActivitySummaryRow `json:"activity_summary"`
}

// DashboardResponse é a resposta completa para uma combinação de filtros
type DashboardResponse struct {
	DatasetID string           `json:"dataset_id"`
	LoadedAt  time.Time        `json:"loaded_at"`
	Filters   AppliedFilters   `json:"filters"`
	Options   *FilterOptions   `json:"options"`
	Headline  HeadlineMetrics  `json:"headline"`
	KPIs      KPISet           `json:"kpis"`
	Views     AggregationViews `json:"views"`
}

type AppliedFilters struct {
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Category  string `json:"category"`
}
