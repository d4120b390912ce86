// Package repository contém a leitura das tabelas de origem a partir do PostgreSQL
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/tabular"
)

const (
	informationSchemaColumns = "information_schema.columns"
)

type sourceTableRepository struct {
	conn *postgres.Connection
}

// NewSourceTableRepository cria uma fonte de tabelas somente leitura sobre o PostgreSQL
func NewSourceTableRepository(conn *postgres.Connection) tabular.TableSource {
	return &sourceTableRepository{
		conn: conn,
	}
}

func (r *sourceTableRepository) Name() string {
	return "postgres"
}

func (r *sourceTableRepository) ReadTable(ctx context.Context, name string) (*tabular.Table, error) {
	var table *tabular.Table

	err := r.conn.ReadOnly(ctx, func(q postgres.Queryer) error {
		columns, err := listColumns(ctx, q, name)
		if err != nil {
			return err
		}

		if len(columns) == 0 {
			return errors.Wrapf(tabular.ErrMissingTable, "tabela %s", name)
		}

		table, err = selectAsText(ctx, q, name, columns)
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"table":   name,
		"rows":    table.Len(),
		"columns": len(table.Columns),
	}).Debug("repository: tabela carregada do PostgreSQL")

	return table, nil
}

func listColumnsQuery(table string) (string, []any, error) {
	return squirrel.
		Select("column_name").
		From(informationSchemaColumns).
		Where("table_schema = current_schema()").
		Where(squirrel.Eq{"table_name": table}).
		OrderBy("ordinal_position ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func listColumns(ctx context.Context, q postgres.Queryer, table string) ([]string, error) {
	query, args, err := listColumnsQuery(table)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao listar colunas de %s", table)
	}
	defer rows.Close()

	columns := make([]string, 0)
	for rows.Next() {
		var column string
		if err := rows.Scan(&column); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear coluna")
		}
		columns = append(columns, column)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return columns, nil
}

// selectAsTextQuery seleciona todas as colunas convertidas para texto, igual ao que viria de um CSV
func selectAsTextQuery(table string, columns []string) (string, []any, error) {
	selected := make([]string, 0, len(columns))
	for _, col := range columns {
		quoted := pq.QuoteIdentifier(col)
		selected = append(selected, fmt.Sprintf("%s::text AS %s", quoted, quoted))
	}

	return squirrel.
		Select(selected...).
		From(pq.QuoteIdentifier(table)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

func selectAsText(ctx context.Context, q postgres.Queryer, name string, columns []string) (*tabular.Table, error) {
	query, args, err := selectAsTextQuery(name, columns)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(err, "erro ao ler tabela %s", name)
	}
	defer rows.Close()

	table := tabular.NewTable(name, columns)

	values := make([]sql.NullString, len(columns))
	dest := make([]any, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, errors.Wrapf(err, "erro ao escanear linha de %s", name)
		}

		row := make([]*string, len(columns))
		for i, v := range values {
			if v.Valid {
				s := v.String
				row[i] = &s
			}
		}
		table.AppendNullableRow(row)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return table, nil
}
