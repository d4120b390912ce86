package reporting

import (
	"sort"
	"strings"
	"time"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// ApplyFilters aplica o intervalo de datas (inclusivo, pela data do evento) e a categoria.
// Com alguma data informada, registros sem event_time são descartados.
func ApplyFilters(records []domain.SalesRecord, filters *domain.SalesFilters) []domain.SalesRecord {
	if filters == nil {
		return records
	}

	start, end := "", ""
	if filters.StartDate != nil {
		start = filters.StartDate.Format(time.DateOnly)
	}
	if filters.EndDate != nil {
		end = filters.EndDate.Format(time.DateOnly)
	}
	category := normalizeCategory(filters.Category)

	if start == "" && end == "" && category == "" {
		return records
	}

	filtered := make([]domain.SalesRecord, 0, len(records))
	for _, r := range records {
		if start != "" || end != "" {
			if r.EventTime == nil {
				continue
			}

			day := r.EventTime.Format(time.DateOnly)
			if (start != "" && day < start) || (end != "" && day > end) {
				continue
			}
		}

		if category != "" && r.CategoryName != category {
			continue
		}

		filtered = append(filtered, r)
	}

	return filtered
}

func normalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, domain.AllCategories) {
		return ""
	}
	return category
}

// BuildFilterOptions calcula o intervalo de datas e as categorias disponíveis na visão completa
func BuildFilterOptions(records []domain.SalesRecord) *domain.FilterOptions {
	options := &domain.FilterOptions{
		Categories: []string{domain.AllCategories},
	}

	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range records {
		if r.EventTime != nil {
			day := utils.DateOf(*r.EventTime)
			if options.MinDate == nil || day.Before(*options.MinDate) {
				options.MinDate = &day
			}
			if options.MaxDate == nil || day.After(*options.MaxDate) {
				options.MaxDate = &day
			}
		}

		if _, exists := seen[r.CategoryName]; exists || r.CategoryName == "" {
			continue
		}
		seen[r.CategoryName] = struct{}{}
		names = append(names, r.CategoryName)
	}

	sort.Strings(names)
	options.Categories = append(options.Categories, names...)

	return options
}
