package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func stringPtr(v string) *string { return &v }

func record(visitor int64, item int64, txn string, revenue float64) domain.SalesRecord {
	r := domain.SalesRecord{
		VisitorID: visitor,
		ItemID:    int64Ptr(item),
		Revenue:   revenue,
	}
	if txn != "" {
		r.TransactionID = stringPtr(txn)
	}
	return r
}

func fullSchema() domain.SchemaProfile {
	return domain.SchemaProfile{
		HasVisitorID:     true,
		HasEventType:     true,
		HasItemID:        true,
		HasTransactionID: true,
		HasEventTime:     true,
		HasPrice:         true,
		HasBrandID:       true,
	}
}

func eventsFor(records []domain.SalesRecord) []domain.Event {
	events := make([]domain.Event, 0, len(records))
	for _, r := range records {
		events = append(events, domain.Event{VisitorID: r.VisitorID, ItemID: r.ItemID, TransactionID: r.TransactionID})
	}
	return events
}

func TestCompute(t *testing.T) {
	basket := []domain.SalesRecord{
		record(1, 10, "A", 50),
		record(1, 11, "A", 30),
		record(2, 10, "B", 50),
	}

	tests := []struct {
		name     string
		records  []domain.SalesRecord
		events   []domain.Event
		schema   domain.SchemaProfile
		validate func(t *testing.T, kpis domain.KPISet)
	}{
		{
			name:    "Duas transações de visitantes distintos",
			records: basket,
			events:  eventsFor(basket),
			schema:  fullSchema(),
			validate: func(t *testing.T, kpis domain.KPISet) {
				assert.InDelta(t, 65.0, kpis.AvgCLV, 1e-9)
				assert.InDelta(t, 65.0, kpis.AverageTicket, 1e-9)
				assert.InDelta(t, 1.5, kpis.AvgItemsPerTransaction, 1e-9)
				assert.Equal(t, 0.0, kpis.RepeatCustomerRate)
				assert.InDelta(t, 100.0, kpis.ConversionRate, 1e-9)
				assert.InDelta(t, 130.0/3, kpis.AvgOrderValue, 1e-9)
			},
		},
		{
			name:    "Visitante 1 com segunda transação",
			records: append(append([]domain.SalesRecord{}, basket...), record(1, 12, "C", 20)),
			events:  eventsFor(append(append([]domain.SalesRecord{}, basket...), record(1, 12, "C", 20))),
			schema:  fullSchema(),
			validate: func(t *testing.T, kpis domain.KPISet) {
				assert.InDelta(t, 50.0, kpis.RepeatCustomerRate, 1e-9)
				assert.InDelta(t, 75.0, kpis.AvgCLV, 1e-9)
				assert.InDelta(t, 50.0, kpis.AverageTicket, 1e-9)
			},
		},
		{
			name:    "Sem registros todos os KPIs são zero",
			records: []domain.SalesRecord{},
			events:  []domain.Event{},
			schema:  fullSchema(),
			validate: func(t *testing.T, kpis domain.KPISet) {
				assert.Equal(t, domain.KPISet{}, kpis)
			},
		},
		{
			name:    "Sem coluna visitorid todos os KPIs são zero",
			records: basket,
			events:  eventsFor(basket),
			schema: func() domain.SchemaProfile {
				s := fullSchema()
				s.HasVisitorID = false
				return s
			}(),
			validate: func(t *testing.T, kpis domain.KPISet) {
				assert.Equal(t, domain.KPISet{}, kpis)
			},
		},
		{
			name:    "Sem coluna de transação cada registro é uma transação",
			records: []domain.SalesRecord{record(1, 10, "", 40), record(1, 11, "", 60), record(2, 10, "", 20)},
			events:  make([]domain.Event, 6),
			schema: func() domain.SchemaProfile {
				s := fullSchema()
				s.HasTransactionID = false
				return s
			}(),
			validate: func(t *testing.T, kpis domain.KPISet) {
				assert.InDelta(t, 50.0, kpis.ConversionRate, 1e-9)
				assert.InDelta(t, 1.0, kpis.AvgItemsPerTransaction, 1e-9)
				assert.InDelta(t, kpis.AvgOrderValue, kpis.AverageTicket, 1e-9)
				assert.InDelta(t, 50.0, kpis.RepeatCustomerRate, 1e-9)
			},
		},
		{
			name: "Conversão conta apenas registros com transação",
			records: []domain.SalesRecord{
				record(1, 10, "A", 10),
				record(2, 11, "B", 10),
			},
			events: make([]domain.Event, 8),
			schema: fullSchema(),
			validate: func(t *testing.T, kpis domain.KPISet) {
				assert.InDelta(t, 25.0, kpis.ConversionRate, 1e-9)
			},
		},
		{
			name: "Registros sem transação com coluna presente usam o valor médio como ticket",
			records: []domain.SalesRecord{
				record(1, 10, "", 10),
				record(2, 11, "", 30),
			},
			events: make([]domain.Event, 2),
			schema: fullSchema(),
			validate: func(t *testing.T, kpis domain.KPISet) {
				assert.InDelta(t, 20.0, kpis.AverageTicket, 1e-9)
				assert.Equal(t, 1.0, kpis.AvgItemsPerTransaction)
				assert.Equal(t, 0.0, kpis.ConversionRate)
				assert.Equal(t, 0.0, kpis.RepeatCustomerRate)
			},
		},
		{
			name: "Transação sem itemid conta como um item",
			records: []domain.SalesRecord{
				{VisitorID: 1, TransactionID: stringPtr("A"), Revenue: 10},
				{VisitorID: 1, TransactionID: stringPtr("A"), Revenue: 10},
			},
			events: make([]domain.Event, 2),
			schema: fullSchema(),
			validate: func(t *testing.T, kpis domain.KPISet) {
				assert.Equal(t, 1.0, kpis.AvgItemsPerTransaction)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Compute(tt.records, tt.events, tt.schema))
		})
	}
}

func TestCompute_Bounds(t *testing.T) {
	records := []domain.SalesRecord{
		record(1, 10, "A", 12.5),
		record(1, 10, "A", 12.5),
		record(2, 11, "B", 99.99),
		record(3, 12, "C", 0),
		record(3, 13, "D", 7.1),
		record(3, 13, "D", 7.1),
	}

	kpis := Compute(records, eventsFor(records), fullSchema())

	assert.GreaterOrEqual(t, kpis.AvgItemsPerTransaction, 1.0)
	assert.GreaterOrEqual(t, kpis.ConversionRate, 0.0)
	assert.LessOrEqual(t, kpis.ConversionRate, 100.0)
	assert.InDelta(t, 100.0, kpis.ConversionRate, 1e-9)
	assert.GreaterOrEqual(t, kpis.RepeatCustomerRate, 0.0)
	assert.LessOrEqual(t, kpis.RepeatCustomerRate, 100.0)
}

func TestCompute_OrderIndependent(t *testing.T) {
	records := []domain.SalesRecord{
		record(1, 10, "A", 0.1),
		record(2, 11, "B", 0.2),
		record(1, 12, "C", 0.3),
		record(3, 10, "D", 1e9),
	}
	reversed := []domain.SalesRecord{records[3], records[2], records[1], records[0]}

	assert.Equal(t,
		Compute(records, eventsFor(records), fullSchema()),
		Compute(reversed, eventsFor(reversed), fullSchema()),
	)
}
