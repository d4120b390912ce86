package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Dataset:   Dataset{Source: SourceCSV, Dir: "./clean"},
			Analytics: DefaultAnalytics(),
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "configuração padrão é válida", mutate: func(c *Config) {}},
		{name: "fonte postgres é válida", mutate: func(c *Config) { c.Dataset.Source = SourcePostgres }},
		{name: "fonte desconhecida", mutate: func(c *Config) { c.Dataset.Source = "parquet" }, wantErr: true},
		{name: "limite de participação acima de 100", mutate: func(c *Config) { c.Analytics.CategoryShareThreshold = 101 }, wantErr: true},
		{name: "top N zerado", mutate: func(c *Config) { c.Analytics.TopN = 0 }, wantErr: true},
		{name: "preço padrão negativo", mutate: func(c *Config) { c.Analytics.DefaultPrice = -1 }, wantErr: true},
		{name: "faixa sintética invertida", mutate: func(c *Config) {
			c.Analytics.SyntheticRevenueMin = 500
			c.Analytics.SyntheticRevenueMax = 50
		}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
