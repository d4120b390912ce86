package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
)

func tagging(tag string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Add("X-Order", tag)
			next.ServeHTTP(w, r)
		})
	}
}

func TestRouter(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(httprouter.ParamsFromContext(r.Context()).ByName("view")))
	})

	rt := New(
		WithRoutes(Route{
			Path:        "/v1/views/:view",
			Method:      http.MethodGet,
			Handler:     echo,
			Middlewares: []Middleware{tagging("primeiro"), tagging("segundo")},
		}),
		WithNotFound(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})),
	)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "Parâmetro de rota e ordem dos middlewares",
			method:     http.MethodGet,
			path:       "/v1/views/brands",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "brands", rec.Body.String())
				assert.Equal(t, []string{"primeiro", "segundo"}, rec.Header().Values("X-Order"))
			},
		},
		{
			name:       "Método não permitido",
			method:     http.MethodPost,
			path:       "/v1/views/brands",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "Rota inexistente",
			method:     http.MethodGet,
			path:       "/v1/nada",
			wantStatus: http.StatusTeapot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			rt.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}
