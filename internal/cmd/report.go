package cmd

import (
	"context"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/datasource"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/loading"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
)

type reportOptions struct {
	dir      string
	source   string
	start    string
	end      string
	category string
	format   string
	seed     uint64
}

var reportOpts reportOptions

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Imprime o dashboard de vendas em Markdown ou JSON",
	Long: `Carrega as tabelas limpas, aplica os filtros de período e categoria
e imprime indicadores, KPIs e visões agregadas.`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportOpts.dir, "dir", "", "Diretório com os arquivos *_clean.csv (padrão: DATASET_DIR)")
	reportCmd.Flags().StringVar(&reportOpts.source, "source", "", "Origem das tabelas: csv ou postgres (padrão: DATASET_SOURCE)")
	reportCmd.Flags().StringVar(&reportOpts.start, "start", "", "Data inicial YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportOpts.end, "end", "", "Data final YYYY-MM-DD")
	reportCmd.Flags().StringVar(&reportOpts.category, "category", domain.AllCategories, "Categoria a filtrar")
	reportCmd.Flags().StringVar(&reportOpts.format, "format", formatMarkdown, "Formato de saída: markdown ou json")
	reportCmd.Flags().Uint64Var(&reportOpts.seed, "seed", 0, "Semente da atribuição sintética (padrão: DATASET_RANDOM_SEED)")
}

func runReport(cmd *cobra.Command, _ []string) error {
	logrus.SetOutput(cmd.ErrOrStderr())

	filters, err := reportOpts.filters()
	if err != nil {
		return err
	}
	if reportOpts.format != formatMarkdown && reportOpts.format != formatJSON {
		return fmt.Errorf("formato inválido %q (use %s ou %s)", reportOpts.format, formatMarkdown, formatJSON)
	}

	cfg, err := config.NewConfig()
	if err != nil {
		return errors.Wrap(err, "erro ao carregar configuração")
	}
	if reportOpts.dir != "" {
		cfg.Dataset.Dir = reportOpts.dir
	}
	if reportOpts.source != "" {
		cfg.Dataset.Source = reportOpts.source
	}
	if cmd.Flags().Changed("seed") {
		cfg.Dataset.RandomSeed = reportOpts.seed
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	source, closeSource, err := datasource.Open(ctx, cfg.Dataset.Source, cfg.Dataset.Dir, cfg.Database)
	if err != nil {
		return err
	}
	defer closeSource()

	service := reporting.NewService(loading.NewService(source), cfg.Analytics, reporting.NewRandomFactory(cfg.Dataset.RandomSeed))

	return writeReport(ctx, cmd.OutOrStdout(), service, filters, reportOpts.format)
}

func (o reportOptions) filters() (*domain.SalesFilters, error) {
	start, err := utils.ParseDate(o.start)
	if err != nil {
		return nil, errors.Wrap(err, "--start inválido, use YYYY-MM-DD")
	}

	end, err := utils.ParseDate(o.end)
	if err != nil {
		return nil, errors.Wrap(err, "--end inválido, use YYYY-MM-DD")
	}

	return &domain.SalesFilters{
		StartDate: start,
		EndDate:   end,
		Category:  o.category,
	}, nil
}

func writeReport(ctx context.Context, out io.Writer, service reporting.Dashboarder, filters *domain.SalesFilters, format string) error {
	dashboard, err := service.GetDashboard(ctx, filters)
	if err != nil {
		return err
	}

	if format == formatJSON {
		payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(dashboard, "", "  ")
		if err != nil {
			return errors.Wrap(err, "erro ao serializar relatório")
		}
		_, err = fmt.Fprintln(out, string(payload))
		return err
	}

	_, err = io.WriteString(out, renderMarkdown(dashboard))
	return err
}
