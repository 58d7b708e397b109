package config

import (
	"log"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config is built once at startup and handed to the components that need it.
// Nothing reads the environment after Load returns.
type Config struct {
	Env     string `env:"ENV" envDefault:"dev"`
	APIPort string `env:"API_PORT" envDefault:"8080"`

	JWTSecret     string `env:"JWT_SECRET" envDefault:"defaultsecret"`
	JWTExpMinutes int    `env:"JWT_EXPIRATION_MINUTES" envDefault:"30"`

	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER" envDefault:"user"`
	DBPassword    string `env:"DB_PASSWORD" envDefault:"password"`
	DBName        string `env:"DB_NAME" envDefault:"opti_campaign_db"`
	DBSslMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	RunMigrations bool   `env:"DB_RUN_MIGRATIONS" envDefault:"true"`

	SeedAdminUsername string `env:"SEED_ADMIN_USERNAME" envDefault:""`
	SeedAdminPassword string `env:"SEED_ADMIN_PASSWORD" envDefault:""`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) JWTExp() time.Duration {
	return time.Duration(c.JWTExpMinutes) * time.Minute
}

// DBConnStr is the keyword/value form accepted by the pgx stdlib driver.
func (c *Config) DBConnStr() string {
	return "host=" + c.DBHost +
		" port=" + c.DBPort +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" sslmode=" + c.DBSslMode
}

// DBURL is the URL form required by golang-migrate.
func (c *Config) DBURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.DBSslMode,
	}
	return u.String()
}
