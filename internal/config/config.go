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
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	HITL          HITL          `mapstructure:",squash"`
	Webhook       Webhook       `mapstructure:",squash"`
	Audit         Audit         `mapstructure:",squash"`
	Mock          Mock          `mapstructure:",squash"`
	GAM           GAM           `mapstructure:",squash"`
	Broadsign     Broadsign     `mapstructure:",squash"`
	Redis         Redis         `mapstructure:",squash"`
	RateLimit     RateLimit     `mapstructure:",squash"`
	WorkflowSweep WorkflowSweep `mapstructure:",squash"`
	DeliverySync  DeliverySync  `mapstructure:",squash"`
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
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret   string        `mapstructure:"auth_secret"`
	TokenTTL time.Duration `mapstructure:"auth_token_ttl"`
}

// Modos do ciclo de aprovação humana.
const (
	HITLModeSync  = "sync"
	HITLModeAsync = "async"
)

// HITL controla a simulação de aprovação humana das operações diferidas.
// Operations lista as operações sujeitas ao ciclo; o tenant pode ligar ou
// desligar o ciclo por principal via platform_config (manual_approval).
type HITL struct {
	Enabled             bool          `mapstructure:"hitl_enabled"`
	Mode                string        `mapstructure:"hitl_mode"`
	Operations          []string      `mapstructure:"hitl_operations"`
	AsyncOperations     []string      `mapstructure:"hitl_async_operations"`
	SyncDelay           time.Duration `mapstructure:"hitl_sync_delay"`
	ProgressInterval    time.Duration `mapstructure:"hitl_progress_interval"`
	ApprovalProbability float64       `mapstructure:"hitl_approval_probability"`
	RejectionReasons    []string      `mapstructure:"hitl_rejection_reasons"`
	AutoCompleteEnabled bool          `mapstructure:"hitl_auto_complete_enabled"`
	AutoCompleteDelay   time.Duration `mapstructure:"hitl_auto_complete_delay"`
}

// AppliesTo indica se a operação está sujeita ao ciclo de aprovação manual.
func (h HITL) AppliesTo(operation string) bool {
	for _, op := range h.Operations {
		if op == operation {
			return true
		}
	}
	return false
}

// ModeFor resolve o modo de aprovação de uma operação. Operações listadas em
// AsyncOperations são diferidas mesmo com o modo global síncrono.
func (h HITL) ModeFor(operation string) string {
	for _, op := range h.AsyncOperations {
		if op == operation {
			return HITLModeAsync
		}
	}
	return h.Mode
}

type Webhook struct {
	Timeout time.Duration `mapstructure:"webhook_timeout"`
}

// Audit dimensiona a fila da trilha de auditoria.
type Audit struct {
	BufferSize   int           `mapstructure:"audit_buffer_size"`
	FlushTimeout time.Duration `mapstructure:"audit_flush_timeout"`
}

type Mock struct {
	CreativeAutoApprove bool `mapstructure:"mock_creative_auto_approve"`
}

type GAM struct {
	BaseURL        string        `mapstructure:"gam_base_url"`
	NetworkCode    string        `mapstructure:"gam_network_code"`
	ClientID       string        `mapstructure:"gam_client_id"`
	ClientSecret   string        `mapstructure:"gam_client_secret"`
	RequestTimeout time.Duration `mapstructure:"gam_request_timeout"`
}

type Broadsign struct {
	BaseURL        string        `mapstructure:"broadsign_base_url"`
	APIKey         string        `mapstructure:"broadsign_api_key"`
	DomainID       string        `mapstructure:"broadsign_domain_id"`
	RequestTimeout time.Duration `mapstructure:"broadsign_request_timeout"`
}

type Redis struct {
	URL           string `mapstructure:"redis_url"`
	EventsEnabled bool   `mapstructure:"redis_events_enabled"`
	EventsChannel string `mapstructure:"redis_events_channel"`
}

type RateLimit struct {
	RequestsPerSecond float64       `mapstructure:"rate_limit_rps"`
	Burst             int           `mapstructure:"rate_limit_burst"`
	TTL               time.Duration `mapstructure:"rate_limit_ttl"`
}

type WorkflowSweep struct {
	CronSchedule string `mapstructure:"workflow_sweep_cron"`
	Enabled      bool   `mapstructure:"workflow_sweep_enabled"`
}

type DeliverySync struct {
	CronSchedule string `mapstructure:"delivery_sync_cron"`
	Enabled      bool   `mapstructure:"delivery_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/dispatch")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL
	viper.SetDefault("AUTH_TOKEN_TTL", "12h")

	// Defaults da simulação de aprovação humana
	viper.SetDefault("HITL_ENABLED", true)
	viper.SetDefault("HITL_MODE", "sync") // sync ou async
	viper.SetDefault("HITL_OPERATIONS", "create_media_buy,update_media_buy")
	viper.SetDefault("HITL_ASYNC_OPERATIONS", "")
	viper.SetDefault("HITL_SYNC_DELAY", "2s")           // Espera do modo síncrono
	viper.SetDefault("HITL_PROGRESS_INTERVAL", "500ms") // Intervalo das notificações de progresso
	viper.SetDefault("HITL_APPROVAL_PROBABILITY", 1.0)  // 1.0 aprova sempre
	viper.SetDefault("HITL_REJECTION_REASONS", "Budget exceeds spending limit,Targeting overlaps existing campaign,Creative policy review required")
	viper.SetDefault("HITL_AUTO_COMPLETE_ENABLED", true)
	viper.SetDefault("HITL_AUTO_COMPLETE_DELAY", "30s")

	viper.SetDefault("WEBHOOK_TIMEOUT", "10s")

	viper.SetDefault("AUDIT_BUFFER_SIZE", 256)
	viper.SetDefault("AUDIT_FLUSH_TIMEOUT", "5s")

	viper.SetDefault("MOCK_CREATIVE_AUTO_APPROVE", true)

	viper.SetDefault("GAM_BASE_URL", "https://admanager.example.com/api/v2")
	viper.SetDefault("GAM_NETWORK_CODE", "your_network_code")
	viper.SetDefault("GAM_CLIENT_ID", "your_client_id")
	viper.SetDefault("GAM_CLIENT_SECRET", "your_client_secret")
	viper.SetDefault("GAM_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("BROADSIGN_BASE_URL", "https://direct.broadsign.example.com/api/v1")
	viper.SetDefault("BROADSIGN_API_KEY", "your_api_key")
	viper.SetDefault("BROADSIGN_DOMAIN_ID", "your_domain_id")
	viper.SetDefault("BROADSIGN_REQUEST_TIMEOUT", "30s")

	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("REDIS_EVENTS_ENABLED", false)
	viper.SetDefault("REDIS_EVENTS_CHANNEL", "dispatch.events")

	viper.SetDefault("RATE_LIMIT_RPS", 10.0)
	viper.SetDefault("RATE_LIMIT_BURST", 20)
	viper.SetDefault("RATE_LIMIT_TTL", "10m")

	// Defaults dos jobs agendados
	viper.SetDefault("WORKFLOW_SWEEP_CRON", "* * * * *") // A cada minuto
	viper.SetDefault("WORKFLOW_SWEEP_ENABLED", true)

	viper.SetDefault("DELIVERY_SYNC_CRON", "0 * * * *") // A cada hora
	viper.SetDefault("DELIVERY_SYNC_ENABLED", false)

	viper.SetDefault("LOG_LEVEL", "debug")
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

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
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
