package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Source: Source{Driver: SourceDriverXLSX, Path: "sales.xlsx", Table: "sales_records"},
		Charts: Charts{Width: 800, Height: 600},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "xlsx válido",
			mutate: func(c *Config) {},
		},
		{
			name:   "postgres válido",
			mutate: func(c *Config) { c.Source.Driver = SourceDriverPostgres },
		},
		{
			name:    "xlsx sem caminho",
			mutate:  func(c *Config) { c.Source.Path = "" },
			wantErr: "SOURCE_PATH",
		},
		{
			name: "postgres sem tabela",
			mutate: func(c *Config) {
				c.Source.Driver = SourceDriverPostgres
				c.Source.Table = ""
			},
			wantErr: "SOURCE_TABLE",
		},
		{
			name: "postgres com lote",
			mutate: func(c *Config) {
				c.Source.Driver = SourceDriverPostgres
				c.Source.BatchID = "Ab3dEf9h"
			},
		},
		{
			name: "postgres com lote inválido",
			mutate: func(c *Config) {
				c.Source.Driver = SourceDriverPostgres
				c.Source.BatchID = "2024-01; DROP"
			},
			wantErr: "SOURCE_BATCH_ID",
		},
		{
			name:    "driver desconhecido",
			mutate:  func(c *Config) { c.Source.Driver = "mongo" },
			wantErr: "SOURCE_DRIVER",
		},
		{
			name:    "gráfico sem dimensões",
			mutate:  func(c *Config) { c.Charts.Width = 0 },
			wantErr: "gráfico",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewConfig_FromEnvironment(t *testing.T) {
	t.Setenv("SOURCE_DRIVER", " Postgres ")
	t.Setenv("SOURCE_TABLE", "sales_2024")
	t.Setenv("DATABASE_USER", "report")
	t.Setenv("DATABASE_PASSWORD", "secret")
	t.Setenv("DATABASE_URL", "db:5432/margin")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local")
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_CONN_MAX_LIFETIME", "1h")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, SourceDriverPostgres, cfg.Source.Driver)
	assert.Equal(t, "sales_2024", cfg.Source.Table)
	assert.Equal(t, "postgres://report:secret@db:5432/margin", cfg.Database.DSN)
	assert.Equal(t, []string{"http://a.local", "http://b.local"}, cfg.Cors.AllowedOrigins)
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "filtered_data.xlsx", cfg.Export.FileName)
	assert.Equal(t, 1, cfg.Source.SheetIndex)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 5*time.Second, cfg.Database.PingTimeout)
	assert.Equal(t, 5, cfg.Database.MaxOpenConns)
}
