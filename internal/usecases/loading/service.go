package loading

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/tabular"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// ErrDatasetUnavailable indica que nenhuma carga teve sucesso até agora
var ErrDatasetUnavailable = errors.New("dados indisponíveis")

// unavailableError mantém a causa da falha de carga na cadeia de erros e
// também corresponde a ErrDatasetUnavailable em errors.Is
type unavailableError struct {
	cause error
}

func (e *unavailableError) Error() string {
	return ErrDatasetUnavailable.Error() + ": " + e.cause.Error()
}

func (e *unavailableError) Unwrap() error { return e.cause }

func (e *unavailableError) Is(target error) bool { return target == ErrDatasetUnavailable }

// DatasetProvider entrega o snapshot memoizado das tabelas de origem
type DatasetProvider interface {
	Dataset(ctx context.Context) (*domain.Dataset, error)
}

// Reloader relê as tabelas de origem substituindo o snapshot atual
type Reloader interface {
	Reload(ctx context.Context) (*domain.Dataset, error)
}

type Service struct {
	source tabular.TableSource
	now    func() time.Time

	mu      sync.RWMutex
	current *domain.Dataset
	lastErr error
}

func NewService(source tabular.TableSource) *Service {
	return &Service{
		source: source,
		now:    time.Now,
	}
}

// Dataset devolve o snapshot carregado, carregando na primeira chamada
func (s *Service) Dataset(ctx context.Context) (*domain.Dataset, error) {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current != nil {
		return current, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil {
		return s.current, nil
	}

	dataset, err := s.load(ctx)
	if err != nil {
		s.lastErr = err
		return nil, &unavailableError{cause: err}
	}

	s.current = dataset
	s.lastErr = nil
	return dataset, nil
}

// Reload lê novamente a fonte; em caso de falha o snapshot anterior é mantido
func (s *Service) Reload(ctx context.Context) (*domain.Dataset, error) {
	dataset, err := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.lastErr = err
		logrus.WithError(err).Error("loading: falha ao recarregar dados, mantendo snapshot anterior")
		return nil, err
	}

	s.current = dataset
	s.lastErr = nil
	return dataset, nil
}

// LastError devolve o erro da última tentativa de carga, se houver
func (s *Service) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *Service) load(ctx context.Context) (*domain.Dataset, error) {
	startedAt := s.now()

	tables := make(map[string]*tabular.Table, len(domain.SourceTables))
	columns := make(map[string][]string, len(domain.SourceTables))
	for _, name := range domain.SourceTables {
		table, err := s.source.ReadTable(ctx, name)
		if err != nil {
			return nil, errors.Wrapf(err, "erro carregando dados (%s)", name)
		}
		tables[name] = table
		columns[name] = table.Columns
	}

	dataset, err := decodeDataset(tables)
	if err != nil {
		return nil, errors.Wrap(err, "erro carregando dados")
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao gerar id do snapshot")
	}

	dataset.ID = id
	dataset.Source = s.source.Name()
	dataset.LoadedAt = s.now()
	dataset.Schema = domain.NewSchemaProfile(columns)
	dataset.Directory = domain.NewCustomerDirectory(dataset.Customers)

	logrus.WithFields(logrus.Fields{
		"dataset_id":  dataset.ID,
		"source":      dataset.Source,
		"events":      len(dataset.Events),
		"products":    len(dataset.Products),
		"customers":   len(dataset.Customers),
		"categories":  len(dataset.Categories),
		"brands":      len(dataset.Brands),
		"duration_ms": dataset.LoadedAt.Sub(startedAt).Milliseconds(),
	}).Info("loading: dados carregados com sucesso")

	return dataset, nil
}

func decodeDataset(tables map[string]*tabular.Table) (*domain.Dataset, error) {
	categories, err := tabular.DecodeCategories(tables[domain.TableCategories])
	if err != nil {
		return nil, err
	}

	customers, err := tabular.DecodeCustomers(tables[domain.TableCustomers])
	if err != nil {
		return nil, err
	}

	events, err := tabular.DecodeEvents(tables[domain.TableEvents])
	if err != nil {
		return nil, err
	}

	brands, err := tabular.DecodeBrands(tables[domain.TableBrands])
	if err != nil {
		return nil, err
	}

	products, err := tabular.DecodeProducts(tables[domain.TableProducts])
	if err != nil {
		return nil, err
	}

	return &domain.Dataset{
		Categories: categories,
		Customers:  customers,
		Events:     events,
		Brands:     brands,
		Products:   products,
	}, nil
}
