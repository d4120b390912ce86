package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Dataset       Dataset       `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Analytics     Analytics     `mapstructure:",squash"`
	DatasetReload DatasetReload `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Dataset struct {
	Source     string `mapstructure:"dataset_source"`
	Dir        string `mapstructure:"dataset_dir"`
	RandomSeed uint64 `mapstructure:"dataset_random_seed"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Analytics contém os parâmetros dos cálculos do dashboard
type Analytics struct {
	CategoryShareThreshold float64 `mapstructure:"analytics_category_share_threshold"`
	TopN                   int     `mapstructure:"analytics_top_n"`
	SummaryLimit           int     `mapstructure:"analytics_summary_limit"`
	DefaultPrice           float64 `mapstructure:"analytics_default_price"`
	SyntheticRevenueMin    float64 `mapstructure:"analytics_synthetic_revenue_min"`
	SyntheticRevenueMax    float64 `mapstructure:"analytics_synthetic_revenue_max"`
}

type DatasetReload struct {
	CronSchedule string `mapstructure:"dataset_reload_cron"`
	Enabled      bool   `mapstructure:"dataset_reload_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:8000")

	viper.SetDefault("DATASET_SOURCE", SourceCSV)
	viper.SetDefault("DATASET_DIR", "./clean")
	viper.SetDefault("DATASET_RANDOM_SEED", 0) // 0 = aleatório a cada requisição

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/sales?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("ANALYTICS_CATEGORY_SHARE_THRESHOLD", 1.5) // em porcentagem
	viper.SetDefault("ANALYTICS_TOP_N", 10)
	viper.SetDefault("ANALYTICS_SUMMARY_LIMIT", 20)
	viper.SetDefault("ANALYTICS_DEFAULT_PRICE", 100)
	viper.SetDefault("ANALYTICS_SYNTHETIC_REVENUE_MIN", 50)
	viper.SetDefault("ANALYTICS_SYNTHETIC_REVENUE_MAX", 500)

	viper.SetDefault("DATASET_RELOAD_CRON", "0 2 * * *") // Todos os dias às 2h da manhã
	viper.SetDefault("DATASET_RELOAD_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "info")
}

// DefaultAnalytics devolve os mesmos valores de SetDefaults, para uso fora do Viper
func DefaultAnalytics() Analytics {
	return Analytics{
		CategoryShareThreshold: 1.5,
		TopN:                   10,
		SummaryLimit:           20,
		DefaultPrice:           100,
		SyntheticRevenueMin:    50,
		SyntheticRevenueMax:    500,
	}
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

func (c *Config) Validate() error {
	switch c.Dataset.Source {
	case SourceCSV, SourcePostgres:
	default:
		return fmt.Errorf("config: DATASET_SOURCE inválido: %q (use %s ou %s)", c.Dataset.Source, SourceCSV, SourcePostgres)
	}

	a := c.Analytics
	if a.CategoryShareThreshold < 0 || a.CategoryShareThreshold > 100 {
		return fmt.Errorf("config: ANALYTICS_CATEGORY_SHARE_THRESHOLD deve estar entre 0 e 100")
	}
	if a.TopN <= 0 || a.SummaryLimit <= 0 {
		return fmt.Errorf("config: ANALYTICS_TOP_N e ANALYTICS_SUMMARY_LIMIT devem ser positivos")
	}
	if a.DefaultPrice < 0 {
		return fmt.Errorf("config: ANALYTICS_DEFAULT_PRICE não pode ser negativo")
	}
	if a.SyntheticRevenueMin < 0 || a.SyntheticRevenueMax < a.SyntheticRevenueMin {
		return fmt.Errorf("config: faixa de receita sintética inválida [%v, %v]", a.SyntheticRevenueMin, a.SyntheticRevenueMax)
	}

	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
