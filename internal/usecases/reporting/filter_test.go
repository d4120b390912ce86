package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

func at(year int, month time.Month, day, hour int) *time.Time {
	t := time.Date(year, month, day, hour, 0, 0, 0, time.UTC)
	return &t
}

func sampleRecords() []domain.SalesRecord {
	return []domain.SalesRecord{
		{VisitorID: 1, CategoryName: "Hogar", Revenue: 10, EventTime: at(2015, 6, 1, 8)},
		{VisitorID: 2, CategoryName: "Electrónica", Revenue: 20, EventTime: at(2015, 6, 2, 23)},
		{VisitorID: 3, CategoryName: "Hogar", Revenue: 30, EventTime: at(2015, 6, 3, 0)},
		{VisitorID: 4, CategoryName: "Juguetes", Revenue: 40},
	}
}

func TestApplyFilters(t *testing.T) {
	tests := []struct {
		name      string
		filters   *domain.SalesFilters
		wantVisit []int64
	}{
		{
			name:      "Sem filtros",
			filters:   nil,
			wantVisit: []int64{1, 2, 3, 4},
		},
		{
			name:      "Categoria Todas não restringe",
			filters:   &domain.SalesFilters{Category: domain.AllCategories},
			wantVisit: []int64{1, 2, 3, 4},
		},
		{
			name:      "Filtro por categoria",
			filters:   &domain.SalesFilters{Category: "Hogar"},
			wantVisit: []int64{1, 3},
		},
		{
			name:      "Intervalo inclusivo pelas datas",
			filters:   &domain.SalesFilters{StartDate: at(2015, 6, 2, 0), EndDate: at(2015, 6, 3, 0)},
			wantVisit: []int64{2, 3},
		},
		{
			name:      "Apenas data inicial descarta registros sem event_time",
			filters:   &domain.SalesFilters{StartDate: at(2015, 6, 1, 0)},
			wantVisit: []int64{1, 2, 3},
		},
		{
			name:      "Data e categoria combinadas",
			filters:   &domain.SalesFilters{EndDate: at(2015, 6, 2, 0), Category: "Hogar"},
			wantVisit: []int64{1},
		},
		{
			name:      "Categoria inexistente",
			filters:   &domain.SalesFilters{Category: "Nada"},
			wantVisit: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]int64, 0)
			for _, r := range ApplyFilters(sampleRecords(), tt.filters) {
				got = append(got, r.VisitorID)
			}
			assert.Equal(t, tt.wantVisit, got)
		})
	}
}

func TestBuildFilterOptions(t *testing.T) {
	options := BuildFilterOptions(sampleRecords())

	assert.Equal(t, []string{domain.AllCategories, "Electrónica", "Hogar", "Juguetes"}, options.Categories)
	assert.Equal(t, *at(2015, 6, 1, 0), *options.MinDate)
	assert.Equal(t, *at(2015, 6, 3, 0), *options.MaxDate)
}

func TestBuildFilterOptions_Empty(t *testing.T) {
	options := BuildFilterOptions(nil)

	assert.Equal(t, []string{domain.AllCategories}, options.Categories)
	assert.Nil(t, options.MinDate)
	assert.Nil(t, options.MaxDate)
}

func TestValidateFilters(t *testing.T) {
	assert.NoError(t, ValidateFilters(nil))
	assert.NoError(t, ValidateFilters(&domain.SalesFilters{StartDate: at(2015, 6, 1, 0)}))
	assert.NoError(t, ValidateFilters(&domain.SalesFilters{StartDate: at(2015, 6, 1, 0), EndDate: at(2015, 6, 1, 0)}))
	assert.ErrorIs(t, ValidateFilters(&domain.SalesFilters{StartDate: at(2015, 6, 2, 0), EndDate: at(2015, 6, 1, 0)}), ErrInvalidFilters)
}
