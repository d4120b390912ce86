package domain

// Nomes das tabelas de origem
const (
	TableCategories = "categoria"
	TableCustomers  = "cliente"
	TableEvents     = "events"
	TableBrands     = "marca"
	TableProducts   = "producto"
)

// SourceTables lista as tabelas na ordem em que são carregadas
var SourceTables = []string{
	TableCategories,
	TableCustomers,
	TableEvents,
	TableBrands,
	TableProducts,
}

// Colunas reconhecidas nas tabelas de origem
const (
	ColumnID            = "id"
	ColumnCategoryName  = "categoria"
	ColumnBrandName     = "marca"
	ColumnCategoryID    = "categoria_id"
	ColumnProductName   = "nombre"
	ColumnBrandID       = "marca_id"
	ColumnPrice         = "precio"
	ColumnCustomerName  = "nombre"
	ColumnSurname       = "apellido"
	ColumnBirthdate     = "nacimiento"
	ColumnVisitorID     = "visitorid"
	ColumnEventType     = "event"
	ColumnItemID        = "itemid"
	ColumnTransactionID = "transactionid"
	ColumnEventTime     = "event_time"
	ColumnDate          = "date"
)

// SchemaProfile descreve quais colunas opcionais existem em uma carga.
// É calculado uma única vez por carga e passado por valor para o builder e para os KPIs.
type SchemaProfile struct {
	HasVisitorID     bool `json:"has_visitor_id"`
	HasEventType     bool `json:"has_event_type"`
	HasItemID        bool `json:"has_item_id"`
	HasTransactionID bool `json:"has_transaction_id"`
	HasEventTime     bool `json:"has_event_time"`
	HasDate          bool `json:"has_date"`
	HasPrice         bool `json:"has_price"`
	HasBrandID       bool `json:"has_brand_id"`
	HasBirthdate     bool `json:"has_birthdate"`
}

// NewSchemaProfile monta o perfil a partir das colunas encontradas em cada tabela
func NewSchemaProfile(columns map[string][]string) SchemaProfile {
	has := func(table, column string) bool {
		for _, c := range columns[table] {
			if c == column {
				return true
			}
		}
		return false
	}

	return SchemaProfile{
		HasVisitorID:     has(TableEvents, ColumnVisitorID),
		HasEventType:     has(TableEvents, ColumnEventType),
		HasItemID:        has(TableEvents, ColumnItemID),
		HasTransactionID: has(TableEvents, ColumnTransactionID),
		HasEventTime:     has(TableEvents, ColumnEventTime),
		HasDate:          has(TableEvents, ColumnDate),
		HasPrice:         has(TableProducts, ColumnPrice),
		HasBrandID:       has(TableProducts, ColumnBrandID),
		HasBirthdate:     has(TableCustomers, ColumnBirthdate),
	}
}
