package mocks

import (
	"context"

	"github.com/cloudevents/sdk-go/v2/event"

	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
	"github.com/fitai/fitai-server/pkg/types"
)

// --- Mock Database ---
type MockDatabase struct {
	SetExecutionFunc    func(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecutionFunc func(ctx context.Context, id string, data map[string]interface{}) error
	GetUserFunc         func(ctx context.Context, id string) (*types.UserProfile, error)
	UpdateUserFunc      func(ctx context.Context, id string, data map[string]interface{}) error
	ListProgressFunc    func(ctx context.Context, userID string) ([]*types.ProgressEntry, error)
}

func (m *MockDatabase) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	if m.SetExecutionFunc != nil {
		return m.SetExecutionFunc(ctx, record)
	}
	return nil
}
func (m *MockDatabase) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateExecutionFunc != nil {
		return m.UpdateExecutionFunc(ctx, id, data)
	}
	return nil
}
func (m *MockDatabase) GetUser(ctx context.Context, id string) (*types.UserProfile, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, id)
	}
	return nil, fitaierrors.ErrUserNotFound
}
func (m *MockDatabase) UpdateUser(ctx context.Context, id string, data map[string]interface{}) error {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(ctx, id, data)
	}
	return nil
}
func (m *MockDatabase) ListProgress(ctx context.Context, userID string) ([]*types.ProgressEntry, error) {
	if m.ListProgressFunc != nil {
		return m.ListProgressFunc(ctx, userID)
	}
	return nil, nil
}

// --- Mock Publisher ---
type MockPublisher struct {
	PublishCloudEventFunc func(ctx context.Context, topic string, e event.Event) (string, error)
}

func (m *MockPublisher) PublishCloudEvent(ctx context.Context, topic string, e event.Event) (string, error) {
	if m.PublishCloudEventFunc != nil {
		return m.PublishCloudEventFunc(ctx, topic, e)
	}
	return "msg-id", nil
}

// --- Mock Secrets ---
type MockSecretStore struct {
	GetSecretFunc func(ctx context.Context, projectID, name string) (string, error)
}

func (m *MockSecretStore) GetSecret(ctx context.Context, projectID, name string) (string, error) {
	if m.GetSecretFunc != nil {
		return m.GetSecretFunc(ctx, projectID, name)
	}
	return "mock-secret-value", nil
}

// --- Mock Token Verifier ---
type MockTokenVerifier struct {
	VerifyFunc func(ctx context.Context, token string) (string, error)
}

func (m *MockTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, token)
	}
	if token == "" {
		return "", fitaierrors.ErrUserUnauthorized
	}
	return token, nil
}
