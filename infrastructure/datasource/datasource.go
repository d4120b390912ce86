// Package datasource escolhe a origem das tabelas limpas conforme a configuração
package datasource

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/tabular"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/tabular/csvsource"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
)

// Open devolve a fonte de tabelas e uma função de encerramento que deve ser sempre chamada
func Open(ctx context.Context, kind string, dir string, db config.Database) (tabular.TableSource, func(), error) {
	switch kind {
	case config.SourceCSV:
		logrus.WithField("dir", dir).Info("Lendo tabelas de arquivos CSV")
		return csvsource.New(dir), func() {}, nil

	case config.SourcePostgres:
		conn, err := postgres.NewConnection(ctx, db)
		if err != nil {
			return nil, nil, err
		}

		logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
		return repository.NewSourceTableRepository(conn), func() { conn.Close() }, nil
	}

	return nil, nil, fmt.Errorf("datasource: origem desconhecida %q", kind)
}
