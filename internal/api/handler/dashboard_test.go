package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting/mocks"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func sampleDashboard() *domain.DashboardResponse {
	day := time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC)
	item := int64(10)

	return &domain.DashboardResponse{
		DatasetID: "abc12345",
		LoadedAt:  time.Date(2024, 1, 16, 12, 0, 0, 0, time.UTC),
		Filters:   domain.AppliedFilters{Category: domain.AllCategories},
		Options: &domain.FilterOptions{
			MinDate:    &day,
			MaxDate:    &day,
			Categories: []string{domain.AllCategories, "Hogar"},
		},
		Headline: domain.HeadlineMetrics{TotalRevenue: 130, SalesRecords: 3},
		KPIs:     domain.KPISet{AvgCLV: 65, AverageTicket: 65, AvgItemsPerTransaction: 1.5},
		Views: domain.AggregationViews{
			CategoryShares:  []domain.CategoryShare{{Name: "Hogar", Revenue: 130, Share: 100}},
			TopVisitors:     []domain.VisitorRevenue{{VisitorID: 1, DisplayName: "Ana García", Revenue: 80}},
			ActivitySummary: []domain.ActivitySummaryRow{{ItemID: &item, CategoryName: "Hogar", BrandName: domain.UnbrandedName, TotalRevenue: 130, Events: 3}},
		},
	}
}

func newTestRouter(service reporting.Dashboarder, cron CronJobServices) http.Handler {
	return router.New(
		router.WithRoutes(Healthcheck(service)...),
		router.WithRoutes(Page(service)...),
		router.WithRoutes(Dashboard(service)...),
		router.WithRoutes(CronJobs(cron)...),
		router.WithNotFound(NotFound()),
	)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var body apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestGetDashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboarder(ctrl)
	rt := newTestRouter(mockService, CronJobServices{})

	tests := []struct {
		name     string
		url      string
		setup    func()
		validate func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name: "Filtros repassados ao serviço",
			url:  "/v1/dashboard?start_date=2015-06-01&end_date=2015-06-30&category=Hogar",
			setup: func() {
				mockService.EXPECT().
					GetDashboard(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ any, filters *domain.SalesFilters) (*domain.DashboardResponse, error) {
						assert.Equal(t, "2015-06-01", filters.StartDate.Format(time.DateOnly))
						assert.Equal(t, "2015-06-30", filters.EndDate.Format(time.DateOnly))
						assert.Equal(t, "Hogar", filters.Category)
						return sampleDashboard(), nil
					})
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusOK, rec.Code)
				assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

				var body domain.DashboardResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				assert.Equal(t, "abc12345", body.DatasetID)
				assert.Equal(t, 65.0, body.KPIs.AverageTicket)
				assert.Contains(t, rec.Body.String(), `"ticket_promedio":65`)
			},
		},
		{
			name:  "Data inválida",
			url:   "/v1/dashboard?start_date=01/06/2015",
			setup: func() {},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
			},
		},
		{
			name: "Intervalo invertido",
			url:  "/v1/dashboard?start_date=2015-06-30&end_date=2015-06-01",
			setup: func() {
				mockService.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).
					Return(nil, errors.Wrap(reporting.ErrInvalidFilters, "start_date posterior a end_date"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusBadRequest, rec.Code)
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
			},
		},
		{
			name: "Dados indisponíveis",
			url:  "/v1/dashboard",
			setup: func() {
				mockService.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).
					Return(nil, errors.Wrap(loading.ErrDatasetUnavailable, "categoria_clean.csv"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
				assert.Equal(t, apiErrors.ErrDatasetUnavailable, decodeError(t, rec).Code)
			},
		},
		{
			name: "Erro inesperado",
			url:  "/v1/dashboard",
			setup: func() {
				mockService.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))
			},
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, http.StatusInternalServerError, rec.Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
			tt.validate(t, rec)
		})
	}
}

func TestGetView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboarder(ctrl)
	rt := newTestRouter(mockService, CronJobServices{})

	mockService.EXPECT().GetView(gomock.Any(), reporting.ViewBrands, gomock.Any()).
		Return([]domain.NamedRevenue{{Name: "Acme", Revenue: 100}}, nil)
	mockService.EXPECT().GetView(gomock.Any(), "inexistente", gomock.Any()).
		Return(nil, errors.Wrap(reporting.ErrUnknownView, "inexistente"))

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/views/brands", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"view":"brands","data":[{"name":"Acme","revenue":100}]}`, rec.Body.String())

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/views/inexistente", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrViewNotFound, decodeError(t, rec).Code)
}

func TestGetKPIsAndOptions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboarder(ctrl)
	rt := newTestRouter(mockService, CronJobServices{})

	mockService.EXPECT().GetKPIs(gomock.Any(), gomock.Any()).Return(&domain.KPISet{RepeatCustomerRate: 50}, nil)
	mockService.EXPECT().GetFilterOptions(gomock.Any()).Return(&domain.FilterOptions{Categories: []string{domain.AllCategories}}, nil)
	mockService.EXPECT().GetDatasetInfo(gomock.Any()).Return(&domain.DatasetInfo{ID: "abc12345", Source: "postgres"}, nil)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/kpis", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"tasa_repeticion":50`)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/filters", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"categories":["Todas"]`)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dataset", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"source":"postgres"`)
}

func TestHealthcheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboarder(ctrl)
	rt := newTestRouter(mockService, CronJobServices{})

	mockService.EXPECT().GetDatasetInfo(gomock.Any()).Return(&domain.DatasetInfo{ID: "abc12345"}, nil)
	mockService.EXPECT().GetDatasetInfo(gomock.Any()).Return(nil, loading.ErrDatasetUnavailable)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"dataset_id":"abc12345"`)

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestDashboardPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := mocks.NewMockDashboarder(ctrl)
	rt := newTestRouter(mockService, CronJobServices{})

	mockService.EXPECT().GetDashboard(gomock.Any(), gomock.Any()).Return(sampleDashboard(), nil)

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?category=Hogar", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html"))
	body := rec.Body.String()
	assert.Contains(t, body, "Ana García")
	assert.Contains(t, body, "$130.00")
	assert.Contains(t, body, "1.50")
	assert.Contains(t, body, "abc12345")

	rec = httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?end_date=ontem", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "end_date")
}

func TestNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rt := newTestRouter(mocks.NewMockDashboarder(ctrl), CronJobServices{})

	rec := httptest.NewRecorder()
	rt.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v2/nada", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec).Code)
}
