package execution

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fitai/fitai-server/pkg/types"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Database interface for Firestore operations
type Database interface {
	SetExecution(ctx context.Context, record *types.ExecutionRecord) error
	UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error
}

// ExecutionOptions contains optional fields for execution logging
type ExecutionOptions struct {
	UserID      string
	TriggerType string
	Inputs      interface{}
}

// stringPtr returns a pointer to the given string
func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// NewExecutionID builds an ID of the form <service>-<unix nanos>
func NewExecutionID(service string) string {
	return fmt.Sprintf("%s-%d", service, time.Now().UnixNano())
}

func encodeJSON(v interface{}) (string, bool) {
	if v == nil {
		return "", false
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// LogPending creates an execution record with PENDING status
func LogPending(ctx context.Context, db Database, service string, opts ExecutionOptions) (string, error) {
	execID := NewExecutionID(service)

	now := timestamppb.Now()

	record := &types.ExecutionRecord{
		ExecutionId: execID,
		Service:     service,
		Status:      types.StatusPending,
		Timestamp:   now,
		StartTime:   now,
		UserId:      stringPtr(opts.UserID),
		TriggerType: opts.TriggerType,
	}

	if inputs, ok := encodeJSON(opts.Inputs); ok {
		record.InputsJson = stringPtr(inputs)
	}

	if err := db.SetExecution(ctx, record); err != nil {
		return execID, fmt.Errorf("failed to log execution pending: %w", err)
	}

	return execID, nil
}

// LogStart updates an execution record to STARTED status and adds inputs/metadata
func LogStart(ctx context.Context, db Database, execID string, inputs interface{}, opts *ExecutionOptions) error {
	now := timestamppb.Now()

	updates := map[string]interface{}{
		"status":     int32(types.StatusStarted),
		"start_time": now.AsTime(),
	}

	// Metadata that wasn't available at Pending time
	if opts != nil {
		if opts.UserID != "" {
			updates["user_id"] = opts.UserID
		}
		if opts.TriggerType != "" {
			updates["trigger_type"] = opts.TriggerType
		}
	}

	if in, ok := encodeJSON(inputs); ok {
		updates["inputs_json"] = in
	}

	if err := db.UpdateExecution(ctx, execID, updates); err != nil {
		return fmt.Errorf("failed to log execution start: %w", err)
	}

	return nil
}

// LogUser attaches the authenticated user to an in-flight execution
func LogUser(ctx context.Context, db Database, execID string, userID string) error {
	if userID == "" {
		return nil
	}
	if err := db.UpdateExecution(ctx, execID, map[string]interface{}{"user_id": userID}); err != nil {
		return fmt.Errorf("failed to log execution user: %w", err)
	}
	return nil
}

// LogSuccess updates an execution record with SUCCESS status
func LogSuccess(ctx context.Context, db Database, execID string, outputs interface{}) error {
	now := timestamppb.Now()

	updates := map[string]interface{}{
		"status":    int32(types.StatusSuccess),
		"timestamp": now.AsTime(),
		"end_time":  now.AsTime(),
	}

	if out, ok := encodeJSON(outputs); ok {
		updates["outputs_json"] = out
	}

	if err := db.UpdateExecution(ctx, execID, updates); err != nil {
		return fmt.Errorf("failed to log execution success: %w", err)
	}

	return nil
}

// LogFailure updates an execution record with FAILED status
func LogFailure(ctx context.Context, db Database, execID string, err error, outputs interface{}) error {
	now := timestamppb.Now()

	updates := map[string]interface{}{
		"status":        int32(types.StatusFailed),
		"timestamp":     now.AsTime(),
		"end_time":      now.AsTime(),
		"error_message": err.Error(),
	}

	if out, ok := encodeJSON(outputs); ok {
		updates["outputs_json"] = out
	}

	if updateErr := db.UpdateExecution(ctx, execID, updates); updateErr != nil {
		return fmt.Errorf("failed to log execution failure: %w", updateErr)
	}

	return nil
}
