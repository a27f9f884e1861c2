package framework

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fitai/fitai-server/pkg/bootstrap"
	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
	"github.com/fitai/fitai-server/pkg/testing/mocks"
	"github.com/fitai/fitai-server/pkg/types"
)

func statusesFrom(data map[string]interface{}) (types.ExecutionStatus, bool) {
	s, ok := data["status"].(int32)
	return types.ExecutionStatus(s), ok
}

func TestWrapHTTP(t *testing.T) {
	var statuses []types.ExecutionStatus
	mockDB := &mocks.MockDatabase{
		SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
			if record.Status != types.StatusPending {
				t.Errorf("Expected status pending, got %v", record.Status)
			}
			if record.TriggerType != "http" {
				t.Errorf("Expected trigger http, got %s", record.TriggerType)
			}
			return nil
		},
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			if s, ok := statusesFrom(data); ok {
				statuses = append(statuses, s)
			}
			if s, _ := statusesFrom(data); s == types.StatusSuccess {
				if data["outputs_json"] != `{"reply":"ok"}` {
					t.Errorf("Unexpected outputs_json: %v", data["outputs_json"])
				}
			}
			return nil
		},
	}

	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error) {
		if fwCtx.Service != svc {
			t.Error("Service not injected correctly")
		}
		if fwCtx.ExecutionID == "" {
			t.Error("ExecutionID not generated")
		}
		return map[string]string{"reply": "ok"}, nil
	}

	rec := httptest.NewRecorder()
	WrapHTTP("test-service", svc, handler)(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %s", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if body["reply"] != "ok" {
		t.Errorf("Expected reply ok, got %v", body)
	}

	want := []types.ExecutionStatus{types.StatusStarted, types.StatusSuccess}
	if len(statuses) != len(want) {
		t.Fatalf("Expected statuses %v, got %v", want, statuses)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("Status %d: expected %v, got %v", i, want[i], statuses[i])
		}
	}
}

func TestWrapHTTP_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"internal", errors.New("simulated error"), http.StatusInternalServerError, "Server Error"},
		{"malformed", fitaierrors.ErrMalformedRequest, http.StatusInternalServerError, "Server Error"},
		{"unauthorized", fitaierrors.ErrUserUnauthorized, http.StatusUnauthorized, "No token, authorization denied"},
		{"not found", fitaierrors.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"validation", fitaierrors.ErrValidation.WithMessage("age must be between 1 and 120"), http.StatusBadRequest, "age must be between 1 and 120"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var failed bool
			mockDB := &mocks.MockDatabase{
				UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
					if s, ok := statusesFrom(data); ok && s == types.StatusFailed {
						failed = true
					}
					if s, ok := statusesFrom(data); ok && s == types.StatusSuccess {
						t.Error("Unexpected success status")
					}
					return nil
				},
			}
			svc := &bootstrap.Service{DB: mockDB}

			handler := func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error) {
				return nil, tt.err
			}

			rec := httptest.NewRecorder()
			WrapHTTP("test-service", svc, handler)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body ErrorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("Invalid JSON body: %v", err)
			}
			if body.Msg != tt.wantMsg {
				t.Errorf("Expected msg %q, got %q", tt.wantMsg, body.Msg)
			}
			if !failed {
				t.Error("Expected a FAILED execution record")
			}
		})
	}
}

func TestWrapHTTP_RecoversPanic(t *testing.T) {
	svc := &bootstrap.Service{}

	handler := func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error) {
		var m map[string]string
		m["boom"] = "nil map write"
		return nil, nil
	}

	rec := httptest.NewRecorder()
	WrapHTTP("test-service", svc, handler)(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	var body ErrorBody
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Msg != "Server Error" {
		t.Errorf("Expected Server Error, got %q", body.Msg)
	}
}

func TestWrapHTTP_ExecutionLogFailureDoesNotFailRequest(t *testing.T) {
	mockDB := &mocks.MockDatabase{
		SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
			return errors.New("firestore down")
		},
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			return errors.New("firestore down")
		},
	}
	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error) {
		return map[string]int{"n": 1}, nil
	}

	rec := httptest.NewRecorder()
	WrapHTTP("test-service", svc, handler)(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200 despite logging failures, got %d", rec.Code)
	}
}

func TestWrapHTTP_SkipsExecutionLogWhenDisabled(t *testing.T) {
	mockDB := &mocks.MockDatabase{
		SetExecutionFunc: func(ctx context.Context, record *types.ExecutionRecord) error {
			t.Error("SetExecution should not be called")
			return nil
		},
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			t.Error("UpdateExecution should not be called")
			return nil
		},
	}
	svc := &bootstrap.Service{DB: mockDB, Config: &bootstrap.Config{EnableExecutionLog: false}}

	handler := func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error) {
		fwCtx.SetUser(ctx, "user-1")
		return "ok", nil
	}

	rec := httptest.NewRecorder()
	WrapHTTP("test-service", svc, handler)(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Expected 200, got %d", rec.Code)
	}
}

func TestSetUser_LogsUser(t *testing.T) {
	var gotUser interface{}
	mockDB := &mocks.MockDatabase{
		UpdateExecutionFunc: func(ctx context.Context, id string, data map[string]interface{}) error {
			if u, ok := data["user_id"]; ok {
				gotUser = u
			}
			return nil
		},
	}
	svc := &bootstrap.Service{DB: mockDB}

	handler := func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error) {
		fwCtx.SetUser(ctx, "user-55")
		return "ok", nil
	}

	rec := httptest.NewRecorder()
	WrapHTTP("test-service", svc, handler)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if gotUser != "user-55" {
		t.Errorf("Expected user-55 on execution, got %v", gotUser)
	}
}

func TestAllowMethods(t *testing.T) {
	r := httptest.NewRequest(http.MethodDelete, "/", nil)
	if err := AllowMethods(r, http.MethodGet, http.MethodPut); !errors.Is(err, fitaierrors.ErrMethodNotAllowed) {
		t.Errorf("Expected method not allowed, got %v", err)
	}
	if err := AllowMethods(r, http.MethodDelete); err != nil {
		t.Errorf("Expected DELETE to be allowed, got %v", err)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("firestore init: no credentials"))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("Expected 500, got %d", rec.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if body.Msg != "Server Error" {
		t.Errorf("Expected Server Error, got %q", body.Msg)
	}
}

func TestWrapHTTP_UnencodableOutputIsServerError(t *testing.T) {
	svc := &bootstrap.Service{}

	handler := func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error) {
		return map[string]float64{"weight": math.NaN()}, nil
	}

	rec := httptest.NewRecorder()
	WrapHTTP("test-service", svc, handler)(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rec.Code)
	}
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body %q: %v", rec.Body.String(), err)
	}
	if body.Msg != "Server Error" {
		t.Errorf("Expected Server Error, got %q", body.Msg)
	}
}
