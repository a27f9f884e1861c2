package shared

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"

	"github.com/fitai/fitai-server/pkg/types"
)

// --- Persistence Interfaces ---

type Database interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error

	// Users
	GetUser(ctx context.Context, id string) (*types.UserProfile, error)
	UpdateUser(ctx context.Context, id string, data map[string]interface{}) error

	// Progress
	ListProgress(ctx context.Context, userID string) ([]*types.ProgressEntry, error)
}

// --- Messaging Interfaces ---

type Publisher interface {
	PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error)
}

// --- Secrets Interface ---

type SecretStore interface {
	GetSecret(ctx context.Context, projectID, name string) (string, error)
}

// --- Auth Interface ---

// TokenVerifier resolves an x-auth-token value to a user ID.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}
