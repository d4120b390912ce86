// Package tabular contém a representação neutra das tabelas de origem e os decoders para o domínio
package tabular

import (
	"context"
	"strings"

	"github.com/pkg/errors"
)

var (
	ErrMissingTable   = errors.New("tabela de origem não encontrada")
	ErrMalformedTable = errors.New("tabela de origem malformada")
)

// TableSource lê uma tabela de origem pelo nome
type TableSource interface {
	ReadTable(ctx context.Context, name string) (*Table, error)
	Name() string
}

// Table guarda o cabeçalho e as linhas como texto; células nulas são nil
type Table struct {
	Name    string
	Columns []string
	Rows    [][]*string
	index   map[string]int
}

func NewTable(name string, columns []string) *Table {
	t := &Table{
		Name:    name,
		Columns: make([]string, len(columns)),
		index:   make(map[string]int, len(columns)),
	}

	for i, col := range columns {
		col = strings.ToLower(strings.TrimSpace(col))
		t.Columns[i] = col
		if _, exists := t.index[col]; !exists {
			t.index[col] = i
		}
	}

	return t
}

// AppendRow adiciona uma linha normalizando os marcadores de nulo
func (t *Table) AppendRow(values []string) {
	row := make([]*string, len(t.Columns))
	for i := range row {
		if i >= len(values) {
			continue
		}
		row[i] = cell(values[i])
	}
	t.Rows = append(t.Rows, row)
}

// AppendNullableRow adiciona uma linha já com nulos explícitos
func (t *Table) AppendNullableRow(values []*string) {
	row := make([]*string, len(t.Columns))
	for i := range row {
		if i >= len(values) || values[i] == nil {
			continue
		}
		row[i] = cell(*values[i])
	}
	t.Rows = append(t.Rows, row)
}

func (t *Table) Has(column string) bool {
	_, ok := t.index[column]
	return ok
}

// Value devolve a célula da coluna na linha, ou nil quando a coluna não existe ou a célula é nula
func (t *Table) Value(row int, column string) *string {
	idx, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.Rows) {
		return nil
	}
	return t.Rows[row][idx]
}

func (t *Table) Len() int {
	return len(t.Rows)
}

var nullMarkers = map[string]struct{}{
	"":     {},
	"nan":  {},
	"null": {},
	"none": {},
	"nat":  {},
	"<na>": {},
}

func cell(raw string) *string {
	v := strings.TrimSpace(raw)
	if _, isNull := nullMarkers[strings.ToLower(v)]; isNull {
		return nil
	}
	return &v
}
