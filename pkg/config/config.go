package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App         AppConfig
	Server      ServerConfig
	Twitter     TwitterConfig
	Receptiviti ReceptivitiConfig
	Model       ModelConfig
	ScoreCache  ScoreCacheConfig
	Redis       RedisConfig
	History     HistoryConfig
	Database    DatabaseConfig
	JWT         JWTConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port           string
	PredictTimeout time.Duration
}

type TwitterConfig struct {
	BaseUrl           string
	ConsumerKey       string
	ConsumerSecret    string
	AccessToken       string
	AccessTokenSecret string
	Pages             int
	PagesPerSecond    float64
	Burst             int
	Timeout           time.Duration
}

type ReceptivitiConfig struct {
	Url          string
	ApiKey       string
	ApiSecretKey string
	Timeout      time.Duration
}

type ModelConfig struct {
	ModelDir  string
	ModelExt  string
	MatrixDir string
	CacheTTL  time.Duration
}

type ScoreCacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type HistoryConfig struct {
	Enabled bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var errs []error
	getInt := func(key string, defaultVal int) int {
		v, err := intEnv(key, defaultVal)
		errs = append(errs, err)
		return v
	}
	getFloat := func(key string, defaultVal float64) float64 {
		v, err := floatEnv(key, defaultVal)
		errs = append(errs, err)
		return v
	}
	getDuration := func(key string, defaultVal time.Duration) time.Duration {
		v, err := durationEnv(key, defaultVal)
		errs = append(errs, err)
		return v
	}
	getBool := func(key string, defaultVal bool) bool {
		v, err := boolEnv(key, defaultVal)
		errs = append(errs, err)
		return v
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "partyPredictor"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			PredictTimeout: getDuration("PREDICT_TIMEOUT", 60*time.Second),
		},
		Twitter: TwitterConfig{
			BaseUrl:           getEnv("TWITTER_BASE_URL", "https://api.twitter.com"),
			ConsumerKey:       getEnv("TWITTER_CONSUMER_KEY", ""),
			ConsumerSecret:    getEnv("TWITTER_CONSUMER_SECRET", ""),
			AccessToken:       getEnv("TWITTER_ACCESS_TOKEN", ""),
			AccessTokenSecret: getEnv("TWITTER_ACCESS_TOKEN_SECRET", ""),
			Pages:             getInt("TWITTER_PAGES", 10),
			PagesPerSecond:    getFloat("TWITTER_PAGES_PER_SECOND", 1),
			Burst:             getInt("TWITTER_BURST", 10),
			Timeout:           getDuration("TWITTER_TIMEOUT", 10*time.Second),
		},
		Receptiviti: ReceptivitiConfig{
			Url:          getEnv("RECEPTIVITI_URL", "https://api-v3.receptiviti.com/v3/api/content"),
			ApiKey:       getEnv("RECEPTIVITI_API_KEY", ""),
			ApiSecretKey: getEnv("RECEPTIVITI_API_SECRET_KEY", ""),
			Timeout:      getDuration("RECEPTIVITI_TIMEOUT", 30*time.Second),
		},
		Model: ModelConfig{
			ModelDir:  getEnv("MODEL_DIR", "models"),
			ModelExt:  getEnv("MODEL_EXT", ".json"),
			MatrixDir: getEnv("MATRIX_DIR", "data/matrix"),
			CacheTTL:  getDuration("MODEL_CACHE_TTL", 0),
		},
		ScoreCache: ScoreCacheConfig{
			Enabled: getBool("SCORE_CACHE_ENABLED", false),
			TTL:     getDuration("SCORE_CACHE_TTL", 24*time.Hour),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getInt("REDIS_DB", 0),
		},
		History: HistoryConfig{
			Enabled: getBool("HISTORY_ENABLED", false),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "party_predictor"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.Twitter.ConsumerKey == "" || cfg.Twitter.ConsumerSecret == "" {
		return nil, errors.New("missing twitter consumer credentials")
	}

	if cfg.Twitter.AccessToken == "" || cfg.Twitter.AccessTokenSecret == "" {
		return nil, errors.New("missing twitter access token")
	}

	if cfg.Receptiviti.ApiKey == "" || cfg.Receptiviti.ApiSecretKey == "" {
		return nil, errors.New("missing receptiviti api keys")
	}

	if cfg.Twitter.Pages <= 0 {
		return nil, errors.New("twitter pages must be positive")
	}

	if cfg.History.Enabled {
		if cfg.Database.Password == "" {
			return nil, errors.New("missing database password")
		}
		if cfg.JWT.SecretKey == "" {
			return nil, errors.New("missing jwt secret")
		}
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func intEnv(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func floatEnv(key string, defaultVal float64) (float64, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func durationEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func boolEnv(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return b, nil
}
