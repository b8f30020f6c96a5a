package configuration

import (
	"fmt"
	"os"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/skillforge/skillforge/pkg/logging"
)

const Production = "production"

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		panic(err)
	}
	return c
})

// LoadEnv loads the given env files, skipping the ones that do not exist,
// and reports how many were actually loaded.
func LoadEnv(envFiles []string) (int, error) {
	existing := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			existing = append(existing, file)
		}
	}
	if len(existing) == 0 {
		return 0, nil
	}
	return len(existing), godotenv.Load(existing...)
}

type DatabaseOptions struct {
	Name     string `env:"DB_NAME" envDefault:"skillforge"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
}

func (d *DatabaseOptions) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s dbname=%s password=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Name, d.Password,
	)
}

type AnalyticsOptions struct {
	// CataloguePath points at a TOML file overriding the embedded
	// growth-path role catalogue. Empty means use the embedded default.
	CataloguePath string `env:"GROWTH_CATALOGUE_PATH"`
	// RiskOverviewLimit is the default number of items returned by the
	// workspace risk overview when the caller does not pass a limit.
	RiskOverviewLimit int `env:"RISK_OVERVIEW_LIMIT" envDefault:"5"`
}

type Configuration struct {
	Database  DatabaseOptions
	Analytics AnalyticsOptions

	GoAppEnvironment string `env:"GO_APP_ENV" envDefault:"development"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`

	logger *logrus.Logger
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) load(envFiles []string) error {
	if _, err := LoadEnv(envFiles); err != nil {
		return err
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if c.GoAppEnvironment == Production {
		c.logger = logging.JSONLogger(os.Stderr, level)
	} else {
		c.logger = logging.ConsoleLogger(level)
	}
	return nil
}
