package reporting

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

var hundred = decimal.NewFromInt(100)

// revenueGroup acumula a receita por chave preservando a ordem de primeira aparição
type revenueGroup[K comparable] struct {
	keys   []K
	totals map[K]decimal.Decimal
}

func groupRevenue[K comparable](records []domain.SalesRecord, key func(r domain.SalesRecord) (K, bool)) revenueGroup[K] {
	g := revenueGroup[K]{totals: make(map[K]decimal.Decimal)}

	for _, r := range records {
		k, ok := key(r)
		if !ok {
			continue
		}

		total, exists := g.totals[k]
		if !exists {
			g.keys = append(g.keys, k)
			total = decimal.Zero
		}
		g.totals[k] = total.Add(utils.Money(r.Revenue))
	}

	return g
}

// sortedByRevenue ordena por receita decrescente; empates são resolvidos por tieBreak
func (g revenueGroup[K]) sortedByRevenue(tieBreak func(a, b K) bool) []K {
	keys := append([]K(nil), g.keys...)
	sort.SliceStable(keys, func(i, j int) bool {
		cmp := g.totals[keys[i]].Cmp(g.totals[keys[j]])
		if cmp != 0 {
			return cmp > 0
		}
		return tieBreak(keys[i], keys[j])
	})
	return keys
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}

func byName(a, b string) bool { return a < b }

func byID(a, b int64) bool { return a < b }

// CategoryShares devolve a participação de cada categoria na receita.
// Categorias abaixo de threshold (em %) são somadas em "Otras". Com receita total zero nada é agrupado.
func CategoryShares(records []domain.SalesRecord, threshold float64) []domain.CategoryShare {
	g := groupRevenue(records, func(r domain.SalesRecord) (string, bool) {
		return r.CategoryName, true
	})

	total := decimal.Zero
	for _, k := range g.keys {
		total = total.Add(g.totals[k])
	}

	shares := make([]domain.CategoryShare, 0, len(g.keys)+1)
	if total.IsZero() {
		for _, name := range g.sortedByRevenue(byName) {
			shares = append(shares, domain.CategoryShare{Name: name, Revenue: g.totals[name].InexactFloat64()})
		}
		return shares
	}

	minShare := decimal.NewFromFloat(threshold)
	others := decimal.Zero
	collapsed := 0

	for _, name := range g.sortedByRevenue(byName) {
		revenue := g.totals[name]
		share := revenue.Div(total).Mul(hundred)

		if share.LessThan(minShare) {
			others = others.Add(revenue)
			collapsed++
			continue
		}

		shares = append(shares, domain.CategoryShare{
			Name:    name,
			Revenue: revenue.InexactFloat64(),
			Share:   share.Round(2).InexactFloat64(),
		})
	}

	if collapsed > 0 {
		shares = append(shares, domain.CategoryShare{
			Name:    domain.OtherCategoriesName,
			Revenue: others.InexactFloat64(),
			Share:   others.Div(total).Mul(hundred).Round(2).InexactFloat64(),
		})
	}

	return shares
}

// CategoryDetail devolve as n categorias com maior receita, sem agrupamento
func CategoryDetail(records []domain.SalesRecord, n int) []domain.NamedRevenue {
	g := groupRevenue(records, func(r domain.SalesRecord) (string, bool) {
		return r.CategoryName, true
	})
	return namedRevenue(g, n)
}

func TopBrands(records []domain.SalesRecord, n int) []domain.NamedRevenue {
	g := groupRevenue(records, func(r domain.SalesRecord) (string, bool) {
		return r.BrandName, true
	})
	return namedRevenue(g, n)
}

func namedRevenue(g revenueGroup[string], n int) []domain.NamedRevenue {
	names := limit(g.sortedByRevenue(byName), n)

	result := make([]domain.NamedRevenue, 0, len(names))
	for _, name := range names {
		result = append(result, domain.NamedRevenue{Name: name, Revenue: g.totals[name].InexactFloat64()})
	}
	return result
}

// DailyRevenueSeries soma a receita por dia, em ordem cronológica. Registros sem event_time são ignorados.
func DailyRevenueSeries(records []domain.SalesRecord) []domain.DailyRevenue {
	g := groupRevenue(records, func(r domain.SalesRecord) (string, bool) {
		if r.EventTime == nil {
			return "", false
		}
		return r.EventTime.Format(time.DateOnly), true
	})

	days := append([]string(nil), g.keys...)
	sort.Strings(days)

	series := make([]domain.DailyRevenue, 0, len(days))
	for _, day := range days {
		series = append(series, domain.DailyRevenue{Date: day, Revenue: g.totals[day].InexactFloat64()})
	}
	return series
}

// TopVisitors devolve os n visitantes com maior receita, com o nome do cadastro de clientes
func TopVisitors(records []domain.SalesRecord, directory *domain.CustomerDirectory, n int) []domain.VisitorRevenue {
	g := groupRevenue(records, func(r domain.SalesRecord) (int64, bool) {
		return r.VisitorID, true
	})

	ids := limit(g.sortedByRevenue(byID), n)

	result := make([]domain.VisitorRevenue, 0, len(ids))
	for _, id := range ids {
		result = append(result, domain.VisitorRevenue{
			VisitorID:   id,
			DisplayName: directory.DisplayName(id),
			Revenue:     g.totals[id].InexactFloat64(),
		})
	}
	return result
}

// TopProducts devolve os n produtos com maior receita. Registros sem itemid são ignorados.
func TopProducts(records []domain.SalesRecord, n int) []domain.ProductRevenue {
	names := make(map[int64]string)
	g := groupRevenue(records, func(r domain.SalesRecord) (int64, bool) {
		if r.ItemID == nil {
			return 0, false
		}
		if _, ok := names[*r.ItemID]; !ok && r.ProductName != nil {
			names[*r.ItemID] = *r.ProductName
		}
		return *r.ItemID, true
	})

	ids := limit(g.sortedByRevenue(byID), n)

	result := make([]domain.ProductRevenue, 0, len(ids))
	for _, id := range ids {
		result = append(result, domain.ProductRevenue{
			ItemID:      id,
			ProductName: names[id],
			Revenue:     g.totals[id].InexactFloat64(),
		})
	}
	return result
}

// EventTypeCounts conta os eventos brutos por tipo (contagem decrescente, depois nome)
func EventTypeCounts(events []domain.Event) []domain.EventTypeCount {
	counts := make(map[string]int)
	for _, e := range events {
		counts[e.EventType]++
	}

	result := make([]domain.EventTypeCount, 0, len(counts))
	for eventType, count := range counts {
		result = append(result, domain.EventTypeCount{EventType: eventType, Count: count})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].EventType < result[j].EventType
	})

	return result
}

type summaryKey struct {
	itemID   int64
	category string
	brand    string
}

type summaryGroup struct {
	revenue  decimal.Decimal
	events   int
	visitors map[int64]struct{}
}

// ActivitySummary agrupa por produto (quando há itemid), categoria e marca.
// Linhas ordenadas por receita total decrescente, limitadas a n, valores arredondados a 2 casas.
func ActivitySummary(records []domain.SalesRecord, schema domain.SchemaProfile, n int) []domain.ActivitySummaryRow {
	order := make([]summaryKey, 0)
	groups := make(map[summaryKey]*summaryGroup)

	for _, r := range records {
		key := summaryKey{category: r.CategoryName, brand: r.BrandName}
		if schema.HasItemID {
			if r.ItemID == nil {
				continue
			}
			key.itemID = *r.ItemID
		}

		g, exists := groups[key]
		if !exists {
			g = &summaryGroup{revenue: decimal.Zero, visitors: make(map[int64]struct{})}
			groups[key] = g
			order = append(order, key)
		}

		g.revenue = g.revenue.Add(utils.Money(r.Revenue))
		g.events++
		if schema.HasVisitorID {
			g.visitors[r.VisitorID] = struct{}{}
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		a, b := groups[order[i]], groups[order[j]]
		if cmp := a.revenue.Cmp(b.revenue); cmp != 0 {
			return cmp > 0
		}
		if a.events != b.events {
			return a.events > b.events
		}
		if order[i].category != order[j].category {
			return order[i].category < order[j].category
		}
		if order[i].brand != order[j].brand {
			return order[i].brand < order[j].brand
		}
		return order[i].itemID < order[j].itemID
	})

	order = limit(order, n)

	rows := make([]domain.ActivitySummaryRow, 0, len(order))
	for _, key := range order {
		g := groups[key]
		row := domain.ActivitySummaryRow{
			CategoryName:   key.category,
			BrandName:      key.brand,
			TotalRevenue:   g.revenue.Round(2).InexactFloat64(),
			Events:         g.events,
			AverageRevenue: utils.RoundWithTwoDecimalPlace(utils.Mean(g.revenue, g.events)),
			UniqueVisitors: len(g.visitors),
		}
		if schema.HasItemID {
			id := key.itemID
			row.ItemID = &id
		}
		rows = append(rows, row)
	}

	return rows
}

// Headline calcula os cartões de métricas a partir dos registros filtrados e do snapshot
func Headline(records []domain.SalesRecord, dataset *domain.Dataset) domain.HeadlineMetrics {
	metrics := domain.HeadlineMetrics{
		SalesRecords:        len(records),
		RegisteredCustomers: len(dataset.Customers),
		CatalogSize:         len(dataset.Products),
		TotalEvents:         len(dataset.Events),
	}

	total := decimal.Zero
	visitors := make(map[int64]struct{})
	items := make(map[int64]struct{})
	for _, r := range records {
		total = total.Add(utils.Money(r.Revenue))
		visitors[r.VisitorID] = struct{}{}
		if r.ItemID != nil {
			items[*r.ItemID] = struct{}{}
		}
	}
	metrics.TotalRevenue = total.Round(2).InexactFloat64()

	if dataset.Schema.HasVisitorID {
		metrics.UniqueVisitors = len(visitors)
	}
	if dataset.Schema.HasItemID {
		metrics.ActiveProducts = len(items)
	}

	if dataset.Schema.HasEventType {
		types := make(map[string]struct{})
		for _, e := range dataset.Events {
			types[e.EventType] = struct{}{}
		}
		metrics.EventTypes = len(types)
	}

	return metrics
}
