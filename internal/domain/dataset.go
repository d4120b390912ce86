package domain

import (
	"fmt"
	"strings"
	"time"
)

// Dataset é o snapshot imutável das tabelas carregadas
type Dataset struct {
	ID         string
	Source     string
	LoadedAt   time.Time
	Schema     SchemaProfile
	Categories []Category
	Brands     []Brand
	Products   []Product
	Customers  []Customer
	Events     []Event
	Directory  *CustomerDirectory
}

// DatasetInfo resume o snapshot carregado para a API
type DatasetInfo struct {
	ID        string         `json:"id"`
	Source    string         `json:"source"`
	LoadedAt  time.Time      `json:"loaded_at"`
	Schema    SchemaProfile  `json:"schema"`
	RowCounts map[string]int `json:"row_counts"`
	Synthetic bool           `json:"synthetic"`
	Warnings  []string       `json:"warnings,omitempty"`
}

func (d *Dataset) Info() *DatasetInfo {
	info := &DatasetInfo{
		ID:       d.ID,
		Source:   d.Source,
		LoadedAt: d.LoadedAt,
		Schema:   d.Schema,
		RowCounts: map[string]int{
			TableCategories: len(d.Categories),
			TableCustomers:  len(d.Customers),
			TableEvents:     len(d.Events),
			TableBrands:     len(d.Brands),
			TableProducts:   len(d.Products),
		},
	}

	if !d.Schema.HasItemID {
		info.Synthetic = true
		info.Warnings = append(info.Warnings, "eventos sem itemid: categoria e marca atribuídas de forma sintética")
	}
	if !d.Schema.HasItemID || !d.Schema.HasPrice {
		info.Synthetic = true
		info.Warnings = append(info.Warnings, "produtos sem precio: receita simulada")
	}

	return info
}

// CustomerDirectory resolve ids de visitante/cliente para nome de exibição
type CustomerDirectory struct {
	names map[int64]string
}

func NewCustomerDirectory(customers []Customer) *CustomerDirectory {
	names := make(map[int64]string, len(customers))
	for _, c := range customers {
		if _, exists := names[c.ID]; exists {
			continue
		}
		names[c.ID] = strings.TrimSpace(c.Name + " " + c.Surname)
	}

	return &CustomerDirectory{names: names}
}

// DisplayName devolve "nome sobrenome" ou "ID {valor}" quando o id não é conhecido
func (d *CustomerDirectory) DisplayName(id int64) string {
	if d != nil {
		if name, ok := d.names[id]; ok && name != "" {
			return name
		}
	}
	return fmt.Sprintf("ID %d", id)
}

func (d *CustomerDirectory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.names)
}
