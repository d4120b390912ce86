// Package kpi calcula os indicadores principais a partir da visão de vendas
package kpi

import (
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Compute calcula os seis KPIs. Sem registros ou sem visitorid, todos os KPIs são zero.
// Sem coluna de transação, cada registro conta como uma transação de um item.
func Compute(records []domain.SalesRecord, events []domain.Event, schema domain.SchemaProfile) domain.KPISet {
	if len(records) == 0 || !schema.HasVisitorID {
		return domain.KPISet{}
	}

	baskets := groupTransactions(records, schema)
	avgOrderValue := averageOrderValue(records)

	return domain.KPISet{
		AvgCLV:                 averageCLV(records),
		ConversionRate:         conversionRate(records, len(events), schema),
		AvgOrderValue:          avgOrderValue,
		AvgItemsPerTransaction: averageItemsPerTransaction(baskets, schema),
		AverageTicket:          averageTicket(baskets, avgOrderValue),
		RepeatCustomerRate:     repeatCustomerRate(records, schema),
	}
}

// basket agrupa os registros de uma mesma transação
type basket struct {
	revenue decimal.Decimal
	items   map[int64]struct{}
}

type transactions struct {
	order   []string
	baskets map[string]*basket
}

func groupTransactions(records []domain.SalesRecord, schema domain.SchemaProfile) transactions {
	txs := transactions{baskets: make(map[string]*basket)}

	for i, r := range records {
		key, ok := transactionKey(i, r, schema)
		if !ok {
			continue
		}

		b, exists := txs.baskets[key]
		if !exists {
			b = &basket{
				revenue: decimal.Zero,
				items:   make(map[int64]struct{}),
			}
			txs.baskets[key] = b
			txs.order = append(txs.order, key)
		}

		b.revenue = b.revenue.Add(utils.Money(r.Revenue))
		if r.ItemID != nil {
			b.items[*r.ItemID] = struct{}{}
		}
	}

	return txs
}

// transactionKey identifica a transação do registro; sem coluna de transação cada registro é a sua própria
func transactionKey(i int, r domain.SalesRecord, schema domain.SchemaProfile) (string, bool) {
	if !schema.HasTransactionID {
		return "#" + strconv.Itoa(i), true
	}
	if r.TransactionID == nil {
		return "", false
	}
	return *r.TransactionID, true
}

// averageCLV é a média, por visitante, da receita acumulada.
// Com somas exatas, a média das somas por visitante é o total dividido pelo número de visitantes.
func averageCLV(records []domain.SalesRecord) float64 {
	visitors := make(map[int64]struct{})
	total := decimal.Zero
	for _, r := range records {
		visitors[r.VisitorID] = struct{}{}
		total = total.Add(utils.Money(r.Revenue))
	}

	return utils.Mean(total, len(visitors))
}

func conversionRate(records []domain.SalesRecord, totalEvents int, schema domain.SchemaProfile) float64 {
	converted := len(records)
	if schema.HasTransactionID {
		converted = 0
		for _, r := range records {
			if r.TransactionID != nil {
				converted++
			}
		}
	}

	return utils.Percent(converted, totalEvents)
}

func averageOrderValue(records []domain.SalesRecord) float64 {
	total := decimal.Zero
	for _, r := range records {
		total = total.Add(utils.Money(r.Revenue))
	}
	return utils.Mean(total, len(records))
}

// averageItemsPerTransaction conta itens distintos por transação; toda transação tem ao menos um item
func averageItemsPerTransaction(txs transactions, schema domain.SchemaProfile) float64 {
	if !schema.HasTransactionID || !schema.HasItemID || len(txs.order) == 0 {
		return 1.0
	}

	items := 0
	for _, key := range txs.order {
		items += max(1, len(txs.baskets[key].items))
	}

	return float64(items) / float64(len(txs.order))
}

// averageTicket é a média da receita somada por transação
func averageTicket(txs transactions, avgOrderValue float64) float64 {
	if len(txs.order) == 0 {
		return avgOrderValue
	}

	total := decimal.Zero
	for _, key := range txs.order {
		total = total.Add(txs.baskets[key].revenue)
	}

	return utils.Mean(total, len(txs.order))
}

// repeatCustomerRate: visitantes com mais de uma transação distinta sobre visitantes com alguma transação
func repeatCustomerRate(records []domain.SalesRecord, schema domain.SchemaProfile) float64 {
	perVisitor := make(map[int64]map[string]struct{})
	for i, r := range records {
		key, ok := transactionKey(i, r, schema)
		if !ok {
			continue
		}

		if perVisitor[r.VisitorID] == nil {
			perVisitor[r.VisitorID] = make(map[string]struct{})
		}
		perVisitor[r.VisitorID][key] = struct{}{}
	}

	recurring := 0
	for _, keys := range perVisitor {
		if len(keys) > 1 {
			recurring++
		}
	}

	return utils.Percent(recurring, len(perVisitor))
}
