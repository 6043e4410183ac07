package config

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetPath   string  `envconfig:"DATASET_PATH" default:"tmdb_5000_movies.csv" validate:"required"`
	OutputDir     string  `envconfig:"OUTPUT_DIR" default:"." validate:"required"`
	HistogramBins int     `envconfig:"HISTOGRAM_BINS" default:"20" validate:"min=1,max=500"`
	TopN          int     `envconfig:"TOP_N" default:"10" validate:"min=1"`
	ChartWidthIn  float64 `envconfig:"CHART_WIDTH_IN" default:"10" validate:"gt=0"`
	ChartHeightIn float64 `envconfig:"CHART_HEIGHT_IN" default:"6" validate:"gt=0"`
	ShowProfile   bool    `envconfig:"SHOW_PROFILE" default:"true"`
	LogLevel      string  `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`

	CleanCSVPath   string `envconfig:"CLEAN_CSV_PATH"`
	ExcelPath      string `envconfig:"EXCEL_PATH"`
	HTMLReportPath string `envconfig:"HTML_REPORT_PATH" validate:"required_with=PDFReportPath"`
	PDFReportPath  string `envconfig:"PDF_REPORT_PATH"`
	ChromeBin      string `envconfig:"CHROME_BIN"`
	MaxRetries     int    `envconfig:"MAX_RETRIES" default:"3" validate:"min=1"`

	PostgresEnabled  bool   `envconfig:"POSTGRES_ENABLED" default:"false"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" default:"analyst"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" default:"analyst"`
	PostgresDB       string `envconfig:"POSTGRES_DB" default:"movies_db"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

// Load reads the .env file, applies environment overrides on top of the
// defaults and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints. A PDF report is printed from the HTML
// report, so PDF_REPORT_PATH requires HTML_REPORT_PATH.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}
