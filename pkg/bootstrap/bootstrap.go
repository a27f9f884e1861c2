package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/pubsub"

	shared "github.com/fitai/fitai-server/pkg"
	"github.com/fitai/fitai-server/pkg/auth"
	"github.com/fitai/fitai-server/pkg/infrastructure/database"
	infrapubsub "github.com/fitai/fitai-server/pkg/infrastructure/pubsub"
	"github.com/fitai/fitai-server/pkg/infrastructure/secrets"
)

// Config holds standard configuration for all services
type Config struct {
	ProjectID          string
	EnablePublish      bool
	EnableExecutionLog bool
	LogLevel           slog.Level
}

// Service holds initialized dependencies
type Service struct {
	DB      shared.Database
	Pub     shared.Publisher
	Secrets shared.SecretStore
	Auth    shared.TokenVerifier
	Config  *Config
}

// LoadConfig reads configuration from environment variables
func LoadConfig() *Config {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = shared.ProjectID // Fallback
	}

	return &Config{
		ProjectID:          projectID,
		EnablePublish:      os.Getenv("ENABLE_PUBLISH") == "true",
		EnableExecutionLog: os.Getenv("ENABLE_EXECUTION_LOG") != "false",
		LogLevel:           ParseLogLevel(os.Getenv("LOG_LEVEL")),
	}
}

// ExecutionLogEnabled reports whether execution records should be written.
func (s *Service) ExecutionLogEnabled() bool {
	if s == nil || s.DB == nil {
		return false
	}
	return s.Config == nil || s.Config.EnableExecutionLog
}

// ParseLogLevel maps LOG_LEVEL values to slog levels, defaulting to info
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetSlogHandlerOptions returns standard handler options for GCP
func GetSlogHandlerOptions(level slog.Level) *slog.HandlerOptions {
	return &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			// Map standard keys to Cloud Logging keys
			if a.Key == slog.MessageKey {
				return slog.Attr{Key: "message", Value: a.Value}
			}
			if a.Key == slog.LevelKey {
				return slog.Attr{Key: "severity", Value: a.Value}
			}
			return a
		},
	}
}

// ComponentHandler wraps a slog.Handler to prepend [component] to the message
type ComponentHandler struct {
	slog.Handler
}

// Handle implements slog.Handler
func (h *ComponentHandler) Handle(ctx context.Context, r slog.Record) error {
	var component string

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "component" {
			component = a.Value.String()
			return false // stop
		}
		return true
	})

	if component != "" {
		newRecord := slog.NewRecord(r.Time, r.Level, fmt.Sprintf("[%s] %s", component, r.Message), r.PC)

		r.Attrs(func(a slog.Attr) bool {
			if a.Key != "component" {
				newRecord.AddAttrs(a)
			}
			return true
		})
		r = newRecord
	}

	return h.Handler.Handle(ctx, r)
}

// WithAttrs keeps the wrapper when attributes are bound with Logger.With
func (h *ComponentHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ComponentHandler{Handler: h.Handler.WithAttrs(attrs)}
}

// WithGroup keeps the wrapper when a group is opened
func (h *ComponentHandler) WithGroup(name string) slog.Handler {
	return &ComponentHandler{Handler: h.Handler.WithGroup(name)}
}

// InitLogger configures structured logging with Cloud Logging compatible keys
func InitLogger(level slog.Level) {
	handler := slog.NewJSONHandler(os.Stdout, GetSlogHandlerOptions(level))
	slog.SetDefault(slog.New(&ComponentHandler{Handler: handler}))
}

// NewService initializes all standard dependencies
func NewService(ctx context.Context) (*Service, error) {
	cfg := LoadConfig()
	InitLogger(cfg.LogLevel)

	slog.Info("Initializing service", "project_id", cfg.ProjectID)

	// Firestore
	fsClient, err := firestore.NewClient(ctx, cfg.ProjectID)
	if err != nil {
		slog.Error("Firestore init failed", "error", err)
		return nil, fmt.Errorf("firestore init: %w", err)
	}

	// Pub/Sub
	var pubAdapter shared.Publisher
	if cfg.EnablePublish {
		psClient, err := pubsub.NewClient(ctx, cfg.ProjectID)
		if err != nil {
			slog.Error("PubSub init failed", "error", err)
			return nil, fmt.Errorf("pubsub init: %w", err)
		}
		pubAdapter = &infrapubsub.PubSubAdapter{Client: psClient}
		slog.Info("Pub/Sub: REAL (ENABLE_PUBLISH=true)")
	} else {
		pubAdapter = &infrapubsub.LogPublisher{}
		slog.Info("Pub/Sub: MOCK (LogPublisher)")
	}

	secretStore := &secrets.SecretsAdapter{}

	return &Service{
		DB:      database.NewFirestoreAdapter(fsClient),
		Pub:     pubAdapter,
		Secrets: secretStore,
		Auth:    auth.NewSecretVerifier(secretStore, cfg.ProjectID),
		Config:  cfg,
	}, nil
}
