// Package reporting monta o dashboard: filtros, KPIs e visões agregadas sobre a visão de vendas
package reporting

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/kpi"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/salesview"
)

const (
	ViewCategories     = "categories"
	ViewCategoryDetail = "category-detail"
	ViewBrands         = "brands"
	ViewDaily          = "daily"
	ViewVisitors       = "visitors"
	ViewProducts       = "products"
	ViewEvents         = "events"
	ViewSummary        = "summary"
)

var (
	ErrUnknownView    = errors.New("visão desconhecida")
	ErrInvalidFilters = errors.New("filtros inválidos")
)

type Dashboarder interface {
	GetDashboard(ctx context.Context, filters *domain.SalesFilters) (*domain.DashboardResponse, error)
	GetKPIs(ctx context.Context, filters *domain.SalesFilters) (*domain.KPISet, error)
	GetView(ctx context.Context, view string, filters *domain.SalesFilters) (any, error)
	GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error)
	GetDatasetInfo(ctx context.Context) (*domain.DatasetInfo, error)
}

// RandomFactory cria o gerador usado na montagem de cada requisição
type RandomFactory func() salesview.RandomSource

// NewRandomFactory devolve geradores com semente fixa quando seed != 0; caso contrário, semente aleatória
func NewRandomFactory(seed uint64) RandomFactory {
	if seed != 0 {
		return func() salesview.RandomSource {
			return rand.New(rand.NewPCG(seed, seed))
		}
	}

	return func() salesview.RandomSource {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
}

type Service struct {
	provider  loading.DatasetProvider
	analytics config.Analytics
	newRandom RandomFactory
}

func NewService(provider loading.DatasetProvider, analytics config.Analytics, newRandom RandomFactory) Dashboarder {
	return &Service{
		provider:  provider,
		analytics: analytics,
		newRandom: newRandom,
	}
}

// salesContext é o resultado do pipeline de uma requisição
type salesContext struct {
	dataset  *domain.Dataset
	all      []domain.SalesRecord
	filtered []domain.SalesRecord
}

func (s *Service) build(ctx context.Context, filters *domain.SalesFilters) (*salesContext, error) {
	if err := ValidateFilters(filters); err != nil {
		return nil, err
	}

	dataset, err := s.provider.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	all := salesview.NewBuilder(s.newRandom(), s.analytics).Build(dataset)

	return &salesContext{
		dataset:  dataset,
		all:      all,
		filtered: ApplyFilters(all, filters),
	}, nil
}

// ValidateFilters rejeita intervalos com início posterior ao fim
func ValidateFilters(filters *domain.SalesFilters) error {
	if filters == nil || filters.StartDate == nil || filters.EndDate == nil {
		return nil
	}

	if filters.StartDate.After(*filters.EndDate) {
		return errors.Wrapf(ErrInvalidFilters, "start_date (%s) posterior a end_date (%s)",
			filters.StartDate.Format(time.DateOnly), filters.EndDate.Format(time.DateOnly))
	}

	return nil
}

func (s *Service) GetDashboard(ctx context.Context, filters *domain.SalesFilters) (*domain.DashboardResponse, error) {
	sc, err := s.build(ctx, filters)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardResponse{
		DatasetID: sc.dataset.ID,
		LoadedAt:  sc.dataset.LoadedAt,
		Filters:   appliedFilters(filters),
		Options:   BuildFilterOptions(sc.all),
		Headline:  Headline(sc.filtered, sc.dataset),
		KPIs:      kpi.Compute(sc.filtered, sc.dataset.Events, sc.dataset.Schema),
		Views:     s.views(sc),
	}, nil
}

func (s *Service) GetKPIs(ctx context.Context, filters *domain.SalesFilters) (*domain.KPISet, error) {
	sc, err := s.build(ctx, filters)
	if err != nil {
		return nil, err
	}

	kpis := kpi.Compute(sc.filtered, sc.dataset.Events, sc.dataset.Schema)
	return &kpis, nil
}

func (s *Service) GetView(ctx context.Context, view string, filters *domain.SalesFilters) (any, error) {
	if !IsValidView(view) {
		return nil, errors.Wrap(ErrUnknownView, view)
	}

	sc, err := s.build(ctx, filters)
	if err != nil {
		return nil, err
	}

	views := s.views(sc)

	switch view {
	case ViewCategories:
		return views.CategoryShares, nil
	case ViewCategoryDetail:
		return views.CategoryDetail, nil
	case ViewBrands:
		return views.TopBrands, nil
	case ViewDaily:
		return views.DailyRevenue, nil
	case ViewVisitors:
		return views.TopVisitors, nil
	case ViewProducts:
		return views.TopProducts, nil
	case ViewEvents:
		return views.EventTypes, nil
	default:
		return views.ActivitySummary, nil
	}
}

func (s *Service) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	sc, err := s.build(ctx, nil)
	if err != nil {
		return nil, err
	}

	return BuildFilterOptions(sc.all), nil
}

func (s *Service) GetDatasetInfo(ctx context.Context) (*domain.DatasetInfo, error) {
	dataset, err := s.provider.Dataset(ctx)
	if err != nil {
		return nil, err
	}

	return dataset.Info(), nil
}

// views monta todas as visões agregadas; visões que dependem de colunas ausentes ficam vazias
func (s *Service) views(sc *salesContext) domain.AggregationViews {
	schema := sc.dataset.Schema
	n := s.analytics.TopN

	views := domain.AggregationViews{
		CategoryShares:  CategoryShares(sc.filtered, s.analytics.CategoryShareThreshold),
		CategoryDetail:  CategoryDetail(sc.filtered, n),
		TopBrands:       TopBrands(sc.filtered, n),
		DailyRevenue:    []domain.DailyRevenue{},
		TopVisitors:     []domain.VisitorRevenue{},
		TopProducts:     []domain.ProductRevenue{},
		EventTypes:      []domain.EventTypeCount{},
		ActivitySummary: ActivitySummary(sc.filtered, schema, s.analytics.SummaryLimit),
	}

	if schema.HasEventTime {
		views.DailyRevenue = DailyRevenueSeries(sc.filtered)
	}
	if schema.HasVisitorID {
		views.TopVisitors = TopVisitors(sc.filtered, sc.dataset.Directory, n)
	}
	if schema.HasItemID {
		views.TopProducts = TopProducts(sc.filtered, n)
	}
	if schema.HasEventType {
		views.EventTypes = EventTypeCounts(sc.dataset.Events)
	}

	return views
}

func IsValidView(view string) bool {
	switch view {
	case ViewCategories, ViewCategoryDetail, ViewBrands, ViewDaily,
		ViewVisitors, ViewProducts, ViewEvents, ViewSummary:
		return true
	}
	return false
}

func appliedFilters(filters *domain.SalesFilters) domain.AppliedFilters {
	applied := domain.AppliedFilters{Category: domain.AllCategories}
	if filters == nil {
		return applied
	}

	if filters.StartDate != nil {
		applied.StartDate = filters.StartDate.Format(time.DateOnly)
	}
	if filters.EndDate != nil {
		applied.EndDate = filters.EndDate.Format(time.DateOnly)
	}
	if category := normalizeCategory(filters.Category); category != "" {
		applied.Category = category
	}

	return applied
}
