// Package salesview monta a visão de vendas a partir dos eventos e das tabelas de referência
package salesview

import (
	"math"

	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// RandomSource isola os caminhos sintéticos para que os testes sejam determinísticos.
// *rand.Rand de math/rand/v2 satisfaz esta interface.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

type Builder struct {
	rng                 RandomSource
	defaultPrice        float64
	syntheticRevenueMin float64
	syntheticRevenueMax float64
}

func NewBuilder(rng RandomSource, cfg config.Analytics) *Builder {
	return &Builder{
		rng:                 rng,
		defaultPrice:        cfg.DefaultPrice,
		syntheticRevenueMin: cfg.SyntheticRevenueMin,
		syntheticRevenueMax: cfg.SyntheticRevenueMax,
	}
}

// Build executa, em ordem: filtro de transações, junção com produtos (ou atribuição sintética),
// junção com categorias, junção com marcas, cálculo da receita e decomposição temporal.
func (b *Builder) Build(dataset *domain.Dataset) []domain.SalesRecord {
	if dataset == nil {
		return []domain.SalesRecord{}
	}

	schema := dataset.Schema
	events := selectSalesEvents(dataset.Events, schema)

	records := make([]domain.SalesRecord, 0, len(events))
	for _, e := range events {
		records = append(records, domain.SalesRecord{
			VisitorID:     e.VisitorID,
			EventType:     e.EventType,
			ItemID:        e.ItemID,
			TransactionID: e.TransactionID,
			EventTime:     e.EventTime,
		})
	}

	brandJoin := false
	if schema.HasItemID {
		b.joinProducts(records, dataset.Products, schema)
		brandJoin = schema.HasBrandID && len(dataset.Brands) > 0
	} else {
		b.assignSynthetic(records, dataset.Categories, dataset.Brands)
		brandJoin = len(dataset.Brands) > 0
	}

	joinCategories(records, dataset.Categories)

	if brandJoin {
		joinBrands(records, dataset.Brands)
	} else {
		for i := range records {
			records[i].BrandName = domain.UnbrandedName
		}
	}

	b.deriveRevenue(records, schema.HasItemID && schema.HasPrice)

	if schema.HasEventTime && anyEventTime(records) {
		decomposeTime(records)
	}

	return records
}

// selectSalesEvents mantém apenas eventos com transação; sem transações, usa todos os eventos
func selectSalesEvents(events []domain.Event, schema domain.SchemaProfile) []domain.Event {
	if !schema.HasTransactionID {
		return events
	}

	withTransaction := make([]domain.Event, 0)
	for _, e := range events {
		if e.TransactionID != nil {
			withTransaction = append(withTransaction, e)
		}
	}

	if len(withTransaction) == 0 {
		return events
	}

	return withTransaction
}

// joinProducts é a junção real (left join em itemid = producto.id)
func (b *Builder) joinProducts(records []domain.SalesRecord, products []domain.Product, schema domain.SchemaProfile) {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		if _, exists := byID[p.ID]; !exists {
			byID[p.ID] = p
		}
	}

	for i := range records {
		r := &records[i]
		r.Origin = domain.OriginJoin

		if r.ItemID == nil {
			continue
		}

		p, ok := byID[*r.ItemID]
		if !ok {
			continue
		}

		name := p.Name
		r.ProductName = &name
		r.CategoryID = p.CategoryID
		if schema.HasBrandID {
			r.BrandID = p.BrandID
		}
		if schema.HasPrice {
			r.Price = p.Price
		}
	}
}

// assignSynthetic é a atribuição sintética usada quando os eventos não têm itemid:
// cada registro recebe uma categoria (e marca, se houver marcas) sorteada uniformemente.
func (b *Builder) assignSynthetic(records []domain.SalesRecord, categories []domain.Category, brands []domain.Brand) {
	for i := range records {
		r := &records[i]
		r.Origin = domain.OriginSynthetic

		if len(categories) > 0 {
			id := categories[b.rng.IntN(len(categories))].ID
			r.CategoryID = &id
		}

		if len(brands) > 0 {
			id := brands[b.rng.IntN(len(brands))].ID
			r.BrandID = &id
		}
	}
}

func joinCategories(records []domain.SalesRecord, categories []domain.Category) {
	names := make(map[int64]string, len(categories))
	for _, c := range categories {
		if _, exists := names[c.ID]; !exists {
			names[c.ID] = c.Name
		}
	}

	for i := range records {
		records[i].CategoryName = resolveName(names, records[i].CategoryID, domain.UncategorizedName)
	}
}

func joinBrands(records []domain.SalesRecord, brands []domain.Brand) {
	names := make(map[int64]string, len(brands))
	for _, br := range brands {
		if _, exists := names[br.ID]; !exists {
			names[br.ID] = br.Name
		}
	}

	for i := range records {
		records[i].BrandName = resolveName(names, records[i].BrandID, domain.UnbrandedName)
	}
}

func resolveName(names map[int64]string, id *int64, fallback string) string {
	if id == nil {
		return fallback
	}

	name, ok := names[*id]
	if !ok || name == "" {
		return fallback
	}

	return name
}

func (b *Builder) deriveRevenue(records []domain.SalesRecord, priceAvailable bool) {
	for i := range records {
		r := &records[i]

		if !priceAvailable {
			r.Revenue = b.syntheticRevenueMin + b.rng.Float64()*(b.syntheticRevenueMax-b.syntheticRevenueMin)
			r.RevenueSource = domain.RevenueSynthetic
			continue
		}

		if validPrice(r.Price) {
			r.Revenue = *r.Price
			r.RevenueSource = domain.RevenueFromPrice
			continue
		}

		r.Revenue = b.defaultPrice
		r.RevenueSource = domain.RevenueFromDefaultPrice
	}
}

func validPrice(price *float64) bool {
	return price != nil && !math.IsNaN(*price) && !math.IsInf(*price, 0) && *price >= 0
}

func anyEventTime(records []domain.SalesRecord) bool {
	for _, r := range records {
		if r.EventTime != nil {
			return true
		}
	}
	return false
}

func decomposeTime(records []domain.SalesRecord) {
	for i := range records {
		t := records[i].EventTime
		if t == nil {
			continue
		}

		records[i].Calendar = &domain.CalendarParts{
			Year:    t.Year(),
			Month:   int(t.Month()),
			DayName: t.Weekday().String(),
			Hour:    t.Hour(),
		}
	}
}
