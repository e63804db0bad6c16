package config

import (
	"errors"
	"io/fs"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Session SessionConfig
	Storage StorageConfig
}

type AppConfig struct {
	Port      string
	Env       string
	SecretKey string
}

// IsProduction reports whether the app runs with production hardening (secure cookies, CSRF over TLS).
func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type DBConfig struct {
	Driver          string
	SQLitePath      string
	URL             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	PingOnConnect   bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled is false when no Redis host is configured; sessions then live in process memory.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type StorageConfig struct {
	Type          string
	UploadDir     string
	MaxUploadSize int64
	PublicBaseURL string
	S3            S3Config
}

type S3Config struct {
	Region          string
	Bucket          string
	Prefix          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SECRET_KEY", "dev-secret-key")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "instance/clinic.db")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_MAX_OPEN_CONNS", 15)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("DB_PING_ON_CONNECT", true)

	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("SESSION_COOKIE_NAME", "clinic_session")
	v.SetDefault("SESSION_TTL", "24h")

	v.SetDefault("STORAGE_TYPE", "local")
	v.SetDefault("UPLOAD_DIR", "static/uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 2*1024*1024)
	v.SetDefault("STORAGE_PUBLIC_BASE_URL", "/static/uploads")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Port:      v.GetString("APP_PORT"),
			Env:       v.GetString("APP_ENV"),
			SecretKey: v.GetString("SECRET_KEY"),
		},
		DB: DBConfig{
			Driver:          v.GetString("DB_DRIVER"),
			SQLitePath:      v.GetString("SQLITE_PATH"),
			URL:             v.GetString("DATABASE_URL"),
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: parseDuration(v.GetString("DB_CONN_MAX_LIFETIME"), 5*time.Minute),
			PingOnConnect:   v.GetBool("DB_PING_ON_CONNECT"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Session: SessionConfig{
			CookieName: v.GetString("SESSION_COOKIE_NAME"),
			TTL:        parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		},
		Storage: StorageConfig{
			Type:          v.GetString("STORAGE_TYPE"),
			UploadDir:     v.GetString("UPLOAD_DIR"),
			MaxUploadSize: v.GetInt64("UPLOAD_MAX_BYTES"),
			PublicBaseURL: v.GetString("STORAGE_PUBLIC_BASE_URL"),
			S3: S3Config{
				Region:          v.GetString("STORAGE_S3_REGION"),
				Bucket:          v.GetString("STORAGE_S3_BUCKET"),
				Prefix:          v.GetString("STORAGE_S3_PREFIX"),
				Endpoint:        v.GetString("STORAGE_S3_ENDPOINT"),
				AccessKeyID:     v.GetString("STORAGE_S3_ACCESS_KEY_ID"),
				SecretAccessKey: v.GetString("STORAGE_S3_SECRET_ACCESS_KEY"),
				ForcePathStyle:  v.GetBool("STORAGE_S3_FORCE_PATH_STYLE"),
			},
		},
	}
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
