package types

import (
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

// ExecutionStatus tracks the lifecycle of a single function invocation.
type ExecutionStatus int32

const (
	StatusUnspecified ExecutionStatus = 0
	StatusPending     ExecutionStatus = 1
	StatusStarted     ExecutionStatus = 2
	StatusSuccess     ExecutionStatus = 3
	StatusFailed      ExecutionStatus = 4
)

// ExecutionRecord is stored in the executions collection, one per invocation.
type ExecutionRecord struct {
	ExecutionId  string                 `firestore:"execution_id" json:"execution_id"`
	Service      string                 `firestore:"service" json:"service"`
	Status       ExecutionStatus        `firestore:"status" json:"status"`
	TriggerType  string                 `firestore:"trigger_type" json:"trigger_type"`
	Timestamp    *timestamppb.Timestamp `firestore:"timestamp" json:"timestamp"`
	StartTime    *timestamppb.Timestamp `firestore:"start_time" json:"start_time"`
	EndTime      *timestamppb.Timestamp `firestore:"end_time,omitempty" json:"end_time,omitempty"`
	UserId       *string                `firestore:"user_id,omitempty" json:"user_id,omitempty"`
	InputsJson   *string                `firestore:"inputs_json,omitempty" json:"inputs_json,omitempty"`
	OutputsJson  *string                `firestore:"outputs_json,omitempty" json:"outputs_json,omitempty"`
	ErrorMessage *string                `firestore:"error_message,omitempty" json:"error_message,omitempty"`
}

// UserProfile is the users/{id} document. The password hash never leaves the server.
type UserProfile struct {
	UserId        string    `firestore:"-" json:"user_id"`
	Name          string    `firestore:"name,omitempty" json:"name,omitempty"`
	Email         string    `firestore:"email,omitempty" json:"email,omitempty"`
	PasswordHash  string    `firestore:"password,omitempty" json:"-"`
	Age           int       `firestore:"age,omitempty" json:"age,omitempty"`
	Gender        string    `firestore:"gender,omitempty" json:"gender,omitempty"`
	Weight        float64   `firestore:"weight,omitempty" json:"weight,omitempty"`
	Height        float64   `firestore:"height,omitempty" json:"height,omitempty"`
	FitnessGoal   string    `firestore:"fitness_goal,omitempty" json:"fitness_goal,omitempty"`
	ActivityLevel string    `firestore:"activity_level,omitempty" json:"activity_level,omitempty"`
	UpdatedAt     time.Time `firestore:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// ProgressEntry is one logged workout day in users/{id}/progress.
type ProgressEntry struct {
	Date               time.Time `firestore:"date" json:"date"`
	CompletedExercises []string  `firestore:"completed_exercises" json:"completed_exercises"`
}

// ProfileUpdatedEvent is published after a profile change so the user's plan
// can be regenerated.
type ProfileUpdatedEvent struct {
	UserId        string    `json:"user_id"`
	UpdatedFields []string  `json:"updated_fields"`
	FitnessGoal   string    `json:"fitness_goal,omitempty"`
	ActivityLevel string    `json:"activity_level,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}
