package app

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/editais-backend/internal/modules/deadlines"
	"github.com/yungbote/editais-backend/internal/platform/envutil"
	"github.com/yungbote/editais-backend/internal/platform/logger"
)

const configPathEnv = "EDITAIS_CONFIG"

type Config struct {
	Port            string        `yaml:"port"`
	LogMode         string        `yaml:"logMode"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`

	Database  DatabaseConfig  `yaml:"database"`
	Admin     AdminConfig     `yaml:"admin"`
	CORS      CORSConfig      `yaml:"cors"`
	AI        AIConfig        `yaml:"ai"`
	Chat      ChatConfig      `yaml:"chat"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	Storage   StorageConfig   `yaml:"storage"`
	Otel      OtelConfig      `yaml:"otel"`
}

type DatabaseConfig struct {
	Driver     string `yaml:"driver"`
	SQLitePath string `yaml:"sqlitePath"`
	Host       string `yaml:"host"`
	Port       string `yaml:"port"`
	User       string `yaml:"user"`
	Password   string `yaml:"password"`
	Name       string `yaml:"name"`
	SSLMode    string `yaml:"sslMode"`
}

type AdminConfig struct {
	Password     string        `yaml:"password"`
	SessionTTL   time.Duration `yaml:"sessionTTL"`
	CookieSecure bool          `yaml:"cookieSecure"`
}

type CORSConfig struct {
	Origins []string `yaml:"origins"`
}

type AIConfig struct {
	GeminiAPIKey  string  `yaml:"geminiApiKey"`
	OpenAIAPIKey  string  `yaml:"openaiApiKey"`
	OpenAIBaseURL string  `yaml:"openaiBaseUrl"`
	Temperature   float64 `yaml:"temperature"`
}

type ChatConfig struct {
	Timezone          string `yaml:"timezone"`
	DeadlinePolicy    string `yaml:"deadlinePolicy"`
	MaxKnowledgeChars int    `yaml:"maxKnowledgeChars"`
	RequirePersisted  bool   `yaml:"requirePersisted"`
}

type KnowledgeConfig struct {
	FetchTimeout time.Duration `yaml:"fetchTimeout"`
	Budget       time.Duration `yaml:"budget"`
	MaxBytes     int64         `yaml:"maxBytes"`
	Concurrency  int           `yaml:"concurrency"`
}

type StorageConfig struct {
	Bucket        string `yaml:"bucket"`
	Mode          string `yaml:"mode"`
	EmulatorHost  string `yaml:"emulatorHost"`
	PublicBaseURL string `yaml:"publicBaseUrl"`
	CDNDomain     string `yaml:"cdnDomain"`
}

type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"serviceName"`
	Environment string  `yaml:"environment"`
	SampleRatio float64 `yaml:"sampleRatio"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
}

func defaultConfig() Config {
	return Config{
		Port:            "8080",
		LogMode:         "development",
		ShutdownTimeout: 15 * time.Second,
		Database: DatabaseConfig{
			Driver:     "postgres",
			SQLitePath: "editais.db",
			Host:       "localhost",
			Port:       "5432",
			User:       "postgres",
			Name:       "editais",
			SSLMode:    "disable",
		},
		Admin: AdminConfig{SessionTTL: 24 * time.Hour},
		AI:    AIConfig{Temperature: 0.3},
		Chat: ChatConfig{
			Timezone:          "America/Sao_Paulo",
			DeadlinePolicy:    string(deadlines.PolicyNearest),
			MaxKnowledgeChars: 200000,
		},
		Knowledge: KnowledgeConfig{
			FetchTimeout: 30 * time.Second,
			Budget:       60 * time.Second,
			MaxBytes:     25 << 20,
			Concurrency:  8,
		},
		Otel: OtelConfig{ServiceName: "editais-backend", SampleRatio: 1},
	}
}

// LoadConfig starts from defaults, overlays the YAML file named by
// EDITAIS_CONFIG when set, and lets environment variables win over both.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := defaultConfig()
	if path := envutil.String(configPathEnv, ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
		if log != nil {
			log.Info("Loaded config file", "path", path)
		}
	}
	cfg.applyEnv()
	if _, err := deadlines.ParsePolicy(cfg.Chat.DeadlinePolicy); err != nil {
		return Config{}, err
	}
	if _, err := time.LoadLocation(cfg.Chat.Timezone); err != nil {
		return Config{}, fmt.Errorf("TIMEZONE %q: %w", cfg.Chat.Timezone, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Port = envutil.String("PORT", c.Port)
	c.LogMode = envutil.String("LOG_MODE", c.LogMode)
	c.ShutdownTimeout = envutil.Duration("SHUTDOWN_TIMEOUT", c.ShutdownTimeout)

	db := &c.Database
	db.Driver = envutil.String("DATABASE_DRIVER", db.Driver)
	db.SQLitePath = envutil.String("SQLITE_PATH", db.SQLitePath)
	db.Host = envutil.String("POSTGRES_HOST", db.Host)
	db.Port = envutil.String("POSTGRES_PORT", db.Port)
	db.User = envutil.String("POSTGRES_USER", db.User)
	db.Password = envutil.String("POSTGRES_PASSWORD", db.Password)
	db.Name = envutil.String("POSTGRES_NAME", db.Name)
	db.SSLMode = envutil.String("POSTGRES_SSLMODE", db.SSLMode)

	c.Admin.Password = envutil.String("ADMIN_PASSWORD", c.Admin.Password)
	c.Admin.SessionTTL = envutil.Duration("SESSION_TTL", c.Admin.SessionTTL)
	c.Admin.CookieSecure = envutil.Bool("COOKIE_SECURE", c.Admin.CookieSecure)

	c.CORS.Origins = envutil.List("CORS_ORIGINS", c.CORS.Origins)

	c.AI.GeminiAPIKey = envutil.String("GEMINI_API_KEY", c.AI.GeminiAPIKey)
	c.AI.OpenAIAPIKey = envutil.String("OPENAI_API_KEY", c.AI.OpenAIAPIKey)
	c.AI.OpenAIBaseURL = envutil.String("OPENAI_BASE_URL", c.AI.OpenAIBaseURL)
	c.AI.Temperature = envutil.Float("AI_TEMPERATURE", c.AI.Temperature)

	c.Chat.Timezone = envutil.String("TIMEZONE", c.Chat.Timezone)
	c.Chat.DeadlinePolicy = envutil.String("DEADLINE_POLICY", c.Chat.DeadlinePolicy)
	c.Chat.MaxKnowledgeChars = envutil.Int("PROMPT_MAX_KNOWLEDGE_CHARS", c.Chat.MaxKnowledgeChars)
	c.Chat.RequirePersisted = envutil.Bool("CHAT_REQUIRE_PERSISTED", c.Chat.RequirePersisted)

	c.Knowledge.FetchTimeout = envutil.Duration("KNOWLEDGE_FETCH_TIMEOUT", c.Knowledge.FetchTimeout)
	c.Knowledge.Budget = envutil.Duration("KNOWLEDGE_BUDGET", c.Knowledge.Budget)
	c.Knowledge.MaxBytes = envutil.Int64("KNOWLEDGE_MAX_BYTES", c.Knowledge.MaxBytes)
	c.Knowledge.Concurrency = envutil.Int("KNOWLEDGE_CONCURRENCY", c.Knowledge.Concurrency)

	c.Storage.Bucket = envutil.String("STORAGE_BUCKET", c.Storage.Bucket)
	c.Storage.Mode = envutil.String("STORAGE_MODE", c.Storage.Mode)
	c.Storage.EmulatorHost = envutil.String("STORAGE_EMULATOR_HOST", c.Storage.EmulatorHost)
	c.Storage.PublicBaseURL = envutil.String("STORAGE_PUBLIC_BASE_URL", c.Storage.PublicBaseURL)
	c.Storage.CDNDomain = envutil.String("STORAGE_CDN_DOMAIN", c.Storage.CDNDomain)

	c.Otel.Enabled = envutil.Bool("OTEL_ENABLED", c.Otel.Enabled)
	c.Otel.ServiceName = envutil.String("OTEL_SERVICE_NAME", c.Otel.ServiceName)
	c.Otel.Environment = envutil.String("OTEL_ENVIRONMENT", c.Otel.Environment)
	c.Otel.SampleRatio = envutil.Float("OTEL_SAMPLE_RATIO", c.Otel.SampleRatio)
	c.Otel.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", c.Otel.Endpoint)
	c.Otel.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", c.Otel.Headers)
	c.Otel.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", c.Otel.Insecure)
}

// Location is the timezone "today" is computed in.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Chat.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
