// Package csvsource lê as tabelas limpas a partir de um diretório local
package csvsource

import (
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/tabular"
)

const fileSuffix = "_clean.csv"

type Source struct {
	dir string
}

func New(dir string) *Source {
	return &Source{dir: dir}
}

func (s *Source) Name() string {
	return "csv:" + s.dir
}

// ReadTable lê <dir>/<name>_clean.csv
func (s *Source) ReadTable(ctx context.Context, name string) (*tabular.Table, error) {
	path := filepath.Join(s.dir, name+fileSuffix)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(tabular.ErrMissingTable, "%s", path)
		}
		return nil, errors.Wrapf(err, "erro ao abrir %s", path)
	}
	defer file.Close()

	table, err := Decode(ctx, name, file)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler %s", path)
	}

	logrus.WithFields(logrus.Fields{
		"table":   name,
		"path":    path,
		"rows":    table.Len(),
		"columns": len(table.Columns),
	}).Debug("csvsource: tabela carregada")

	return table, nil
}

// Decode lê um CSV com cabeçalho para uma tabela
func Decode(ctx context.Context, name string, r io.Reader) (*tabular.Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, errors.Wrapf(tabular.ErrMalformedTable, "%s: arquivo vazio", name)
		}
		return nil, errors.Wrapf(tabular.ErrMalformedTable, "%s: cabeçalho: %v", name, err)
	}

	// Remove BOM gerado por planilhas
	if len(header) > 0 && len(header[0]) >= 3 && header[0][:3] == "\xef\xbb\xbf" {
		header[0] = header[0][3:]
	}

	table := tabular.NewTable(name, header)
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrapf(tabular.ErrMalformedTable, "%s: linha %d: %v", name, line, err)
		}

		table.AppendRow(record)
	}

	return table, nil
}
