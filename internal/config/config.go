package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App                  App                  `mapstructure:",squash"`
	Server               Server               `mapstructure:",squash"`
	Database             Database             `mapstructure:",squash"`
	SerpAPI              SerpAPI              `mapstructure:",squash"`
	GoogleMaps           GoogleMaps           `mapstructure:",squash"`
	Redis                Redis                `mapstructure:",squash"`
	Auth                 Auth                 `mapstructure:",squash"`
	Tracking             Tracking             `mapstructure:",squash"`
	KeywordRefresh       KeywordRefresh       `mapstructure:",squash"`
	CreditReconciliation CreditReconciliation `mapstructure:",squash"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	Driver       string `mapstructure:"database_driver"`
	Password     string `mapstructure:"database_password"`
	URL          string `mapstructure:"database_url"`
	User         string `mapstructure:"database_user"`
	SSLMode      string `mapstructure:"database_sslmode"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`

	MaxIdleConns    int           `mapstructure:"database_max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"database_conn_max_lifetime"`
}

type SerpAPI struct {
	BaseURL           string        `mapstructure:"serpapi_base_url"`
	APIKey            string        `mapstructure:"serpapi_api_key"`
	Timeout           time.Duration `mapstructure:"serpapi_timeout"`
	MaxRetries        int           `mapstructure:"serpapi_max_retries"`
	RetryBaseDelay    time.Duration `mapstructure:"serpapi_retry_base_delay"`
	RequestsPerSecond float64       `mapstructure:"serpapi_requests_per_second"`
	Burst             int           `mapstructure:"serpapi_burst"`
	GoogleDomain      string        `mapstructure:"serpapi_google_domain"`
	LocalGoogleDomain string        `mapstructure:"serpapi_local_google_domain"`
	Country           string        `mapstructure:"serpapi_gl"`
	Language          string        `mapstructure:"serpapi_hl"`
}

type GoogleMaps struct {
	BaseURL string        `mapstructure:"google_maps_base_url"`
	APIKey  string        `mapstructure:"google_maps_api_key"`
	Timeout time.Duration `mapstructure:"google_maps_timeout"`
}

// Redis é opcional: sem endereço o cache de geocodificação fica desligado
type Redis struct {
	Addr       string        `mapstructure:"redis_addr"`
	Password   string        `mapstructure:"redis_password"`
	DB         int           `mapstructure:"redis_db"`
	GeocodeTTL time.Duration `mapstructure:"redis_geocode_ttl"`
}

type App struct {
	Env         string   `mapstructure:"app_env"`
	LogLevel    string   `mapstructure:"log_level"`
	CorsOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

type Tracking struct {
	MaxConcurrentUnits    int           `mapstructure:"tracking_max_concurrent_units"`
	LedgerRetryAttempts   int           `mapstructure:"tracking_ledger_retry_attempts"`
	LedgerRetryDelay      time.Duration `mapstructure:"tracking_ledger_retry_delay"`
	SnapshotRetentionDays int           `mapstructure:"snapshot_retention_days"`
}

type KeywordRefresh struct {
	CronSchedule        string `mapstructure:"keyword_refresh_cron"`
	RequestDelaySeconds int    `mapstructure:"keyword_refresh_request_delay_seconds"`
	MaxConcurrentJobs   int    `mapstructure:"keyword_refresh_max_concurrent_jobs"`
	Enabled             bool   `mapstructure:"keyword_refresh_enabled"`
}

type CreditReconciliation struct {
	CronSchedule string `mapstructure:"credit_reconciliation_cron"`
	Enabled      bool   `mapstructure:"credit_reconciliation_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/rank_tracker")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 20)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", "30m")

	viper.SetDefault("SERPAPI_BASE_URL", "https://serpapi.com")
	viper.SetDefault("SERPAPI_API_KEY", "")
	viper.SetDefault("SERPAPI_TIMEOUT", "30s")
	viper.SetDefault("SERPAPI_MAX_RETRIES", 2)
	viper.SetDefault("SERPAPI_RETRY_BASE_DELAY", "500ms")
	viper.SetDefault("SERPAPI_REQUESTS_PER_SECOND", 5)
	viper.SetDefault("SERPAPI_BURST", 5)
	viper.SetDefault("SERPAPI_GOOGLE_DOMAIN", "google.es")
	viper.SetDefault("SERPAPI_LOCAL_GOOGLE_DOMAIN", "google.com")
	viper.SetDefault("SERPAPI_GL", "es")
	viper.SetDefault("SERPAPI_HL", "es")

	viper.SetDefault("GOOGLE_MAPS_BASE_URL", "https://maps.googleapis.com/maps/api")
	viper.SetDefault("GOOGLE_MAPS_API_KEY", "")
	viper.SetDefault("GOOGLE_MAPS_TIMEOUT", "10s")

	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_GEOCODE_TTL", "720h") // 30 dias

	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL
	viper.SetDefault("AUTH_TOKEN_TTL", "24h")

	viper.SetDefault("TRACKING_MAX_CONCURRENT_UNITS", 4)
	viper.SetDefault("TRACKING_LEDGER_RETRY_ATTEMPTS", 3)
	viper.SetDefault("TRACKING_LEDGER_RETRY_DELAY", "200ms")
	viper.SetDefault("SNAPSHOT_RETENTION_DAYS", 90)

	viper.SetDefault("KEYWORD_REFRESH_CRON", "0 2 * * *")        // Todos os dias às 2h da manhã
	viper.SetDefault("KEYWORD_REFRESH_REQUEST_DELAY_SECONDS", 1) // 1 segundo entre combinações
	viper.SetDefault("KEYWORD_REFRESH_MAX_CONCURRENT_JOBS", 3)   // 3 jobs concorrentes
	viper.SetDefault("KEYWORD_REFRESH_ENABLED", false)

	viper.SetDefault("CREDIT_RECONCILIATION_CRON", "30 5 * * *") // Todos os dias às 5h30
	viper.SetDefault("CREDIT_RECONCILIATION_ENABLED", false)

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "debug")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
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

	if config.SerpAPI.APIKey == "" {
		logrus.Warn("SERPAPI_API_KEY não configurada, buscas no provedor vão falhar")
	}

	config.Database.DSN = BuildDSN(config.Database)

	return config, nil
}

// BuildDSN monta a string de conexão do banco
func BuildDSN(db Database) string {
	dsn := fmt.Sprintf(
		"%s://%s:%s@%s",
		db.Driver,
		db.User,
		db.Password,
		db.URL,
	)

	if db.SSLMode != "" {
		dsn += "?sslmode=" + db.SSLMode
	}

	return dsn
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Info("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
