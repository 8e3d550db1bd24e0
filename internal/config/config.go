package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/margin-report-api/pkg/utils"
)

// Drivers de origem suportados
const (
	SourceDriverXLSX     = "xlsx"
	SourceDriverPostgres = "postgres"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Source        Source        `mapstructure:",squash"`
	DatasetReload DatasetReload `mapstructure:",squash"`
	Export        Export        `mapstructure:",squash"`
	Charts        Charts        `mapstructure:",squash"`
	Cors          Cors          `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`

	MaxOpenConns    int           `mapstructure:"database_max_open_conns"`
	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
	PingTimeout     time.Duration `mapstructure:"database_ping_timeout"`
}

// Source define de onde as linhas de vendas são carregadas
type Source struct {
	Driver     string `mapstructure:"source_driver"`
	Path       string `mapstructure:"source_path"`
	SheetName  string `mapstructure:"source_sheet_name"`
	SheetIndex int    `mapstructure:"source_sheet_index"`
	Table      string `mapstructure:"source_table"`
	BatchID    string `mapstructure:"source_batch_id"`
}

type DatasetReload struct {
	CronSchedule string `mapstructure:"dataset_reload_cron"`
	Enabled      bool   `mapstructure:"dataset_reload_enabled"`
}

type Export struct {
	SheetName string `mapstructure:"export_sheet_name"`
	FileName  string `mapstructure:"export_file_name"`
}

type Charts struct {
	Width  int `mapstructure:"charts_width"`
	Height int `mapstructure:"charts_height"`
}

type Cors struct {
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/margin?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 5)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 2)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")
	viper.SetDefault("DATABASE_PING_TIMEOUT", "5s")

	viper.SetDefault("SOURCE_DRIVER", SourceDriverXLSX)
	viper.SetDefault("SOURCE_PATH", "sales.xlsx")
	viper.SetDefault("SOURCE_SHEET_NAME", "")
	viper.SetDefault("SOURCE_SHEET_INDEX", 1) // 1 = primeira aba
	viper.SetDefault("SOURCE_TABLE", "sales_records")
	viper.SetDefault("SOURCE_BATCH_ID", "")

	viper.SetDefault("DATASET_RELOAD_CRON", "0 * * * *") // A cada hora cheia
	viper.SetDefault("DATASET_RELOAD_ENABLED", false)

	viper.SetDefault("EXPORT_SHEET_NAME", "Detailed data")
	viper.SetDefault("EXPORT_FILE_NAME", "filtered_data.xlsx")

	viper.SetDefault("CHARTS_WIDTH", 1000)
	viper.SetDefault("CHARTS_HEIGHT", 600)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env): ", err)
	} else {
		logrus.Debug("Arquivo .env lido pelo Viper com sucesso")
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

	config.Source.Driver = strings.ToLower(strings.TrimSpace(config.Source.Driver))
	config.Cors.AllowedOrigins = trimAll(config.Cors.AllowedOrigins)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate verifica as combinações de configuração que impedem a aplicação de subir
func (c *Config) Validate() error {
	switch c.Source.Driver {
	case SourceDriverXLSX:
		if c.Source.Path == "" {
			return fmt.Errorf("SOURCE_PATH é obrigatório quando SOURCE_DRIVER=%s", SourceDriverXLSX)
		}
	case SourceDriverPostgres:
		if c.Source.Table == "" {
			return fmt.Errorf("SOURCE_TABLE é obrigatório quando SOURCE_DRIVER=%s", SourceDriverPostgres)
		}
		if c.Source.BatchID != "" && !utils.IsGeneratedID(c.Source.BatchID) {
			return fmt.Errorf("SOURCE_BATCH_ID inválido: %q", c.Source.BatchID)
		}
	default:
		return fmt.Errorf("SOURCE_DRIVER inválido: %q (use %s ou %s)", c.Source.Driver, SourceDriverXLSX, SourceDriverPostgres)
	}

	if c.Charts.Width <= 0 || c.Charts.Height <= 0 {
		return fmt.Errorf("dimensões de gráfico inválidas: %dx%d", c.Charts.Width, c.Charts.Height)
	}

	return nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual: ", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de: ", location)
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de: ", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
