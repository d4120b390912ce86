package domain

import "time"

const (
	// UnbrandedName é usado quando a marca não pôde ser resolvida
	UnbrandedName = "Sin Marca"
	// UncategorizedName é usado quando a categoria não pôde ser resolvida
	UncategorizedName = "Sin Categoría"
	// OtherCategoriesName agrupa as categorias com participação abaixo do limite
	OtherCategoriesName = "Otras"
	// AllCategories é o valor do filtro que não restringe categoria
	AllCategories = "Todas"
)

// RecordOrigin indica como categoria e marca foram obtidas
type RecordOrigin string

const (
	OriginJoin      RecordOrigin = "join"
	OriginSynthetic RecordOrigin = "synthetic"
)

// RevenueSource indica de onde veio a receita do registro
type RevenueSource string

const (
	RevenueFromPrice        RevenueSource = "price"
	RevenueFromDefaultPrice RevenueSource = "default_price"
	RevenueSynthetic        RevenueSource = "synthetic"
)

// CalendarParts é a decomposição temporal do event_time
type CalendarParts struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	DayName string `json:"day_name"`
	Hour    int    `json:"hour"`
}

// SalesRecord é uma linha derivada da visão de vendas, criada a cada renderização
type SalesRecord struct {
	VisitorID     int64          `json:"visitor_id"`
	EventType     string         `json:"event_type"`
	ItemID        *int64         `json:"item_id"`
	TransactionID *string        `json:"transaction_id"`
	EventTime     *time.Time     `json:"event_time"`
	CategoryID    *int64         `json:"category_id"`
	BrandID       *int64         `json:"brand_id"`
	ProductName   *string        `json:"product_name"`
	Price         *float64       `json:"price"`
	CategoryName  string         `json:"category_name"`
	BrandName     string         `json:"brand_name"`
	Revenue       float64        `json:"revenue"`
	Origin        RecordOrigin   `json:"origin"`
	RevenueSource RevenueSource  `json:"revenue_source"`
	Calendar      *CalendarParts `json:"calendar,omitempty"`
}

// SalesFilters são os filtros da barra lateral do dashboard
type SalesFilters struct {
	StartDate *time.Time
	EndDate   *time.Time
	Category  string
}

// FilterOptions são os valores disponíveis para os filtros
type FilterOptions struct {
	MinDate    *time.Time `json:"min_date"`
	MaxDate    *time.Time `json:"max_date"`
	Categories []string   `json:"categories"`
}
