package framework

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fitai/fitai-server/pkg/bootstrap"
	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
	"github.com/fitai/fitai-server/pkg/execution"
)

// FrameworkContext carries per-invocation dependencies into a handler
type FrameworkContext struct {
	Service     *bootstrap.Service
	Logger      *slog.Logger
	ExecutionID string
}

// SetUser records the authenticated user on the execution and the logger
func (f *FrameworkContext) SetUser(ctx context.Context, userID string) {
	f.Logger = f.Logger.With("user_id", userID)
	if !f.Service.ExecutionLogEnabled() {
		return
	}
	if err := execution.LogUser(ctx, f.Service.DB, f.ExecutionID, userID); err != nil {
		f.Logger.Warn("Failed to log execution user", "error", err)
	}
}

// HandlerFunc is the signature for an HTTP function handler.
// The returned value is written as the JSON response body and recorded as the
// execution's outputs; a returned error is mapped to a status and {"msg"} body.
type HandlerFunc func(ctx context.Context, r *http.Request, fwCtx *FrameworkContext) (interface{}, error)

// ErrorBody is the JSON body written for failed requests
type ErrorBody struct {
	Msg string `json:"msg"`
}

// WrapHTTP wraps a handler with execution logging, error mapping and panic recovery
func WrapHTTP(serviceName string, svc *bootstrap.Service, handler HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := slog.With("service", serviceName)

		execID := execution.NewExecutionID(serviceName)
		logExec := svc.ExecutionLogEnabled()
		if logExec {
			id, err := execution.LogPending(ctx, svc.DB, serviceName, execution.ExecutionOptions{
				TriggerType: "http",
			})
			if err != nil {
				logger.Error("Failed to log execution pending", "error", err)
				// Continue anyway - don't fail the request just because logging failed
			}
			execID = id
			if err := execution.LogStart(ctx, svc.DB, execID, nil, nil); err != nil {
				logger.Warn("Failed to log execution start", "error", err)
			}
		}

		logger = logger.With("execution_id", execID)
		logger.Info("Function started", "method", r.Method)

		fwCtx := &FrameworkContext{
			Service:     svc,
			Logger:      logger,
			ExecutionID: execID,
		}

		outputs, handlerErr := invoke(ctx, r, fwCtx, handler)

		if handlerErr != nil {
			status, msg := fitaierrors.HTTPStatus(handlerErr)
			if status >= http.StatusInternalServerError {
				fwCtx.Logger.Error("Function failed", "error", handlerErr, "code", fitaierrors.GetCode(handlerErr), "retryable", fitaierrors.IsRetryable(handlerErr))
			} else {
				fwCtx.Logger.Warn("Request rejected", "status", status, "error", handlerErr)
			}
			if logExec {
				if logErr := execution.LogFailure(ctx, svc.DB, execID, handlerErr, outputs); logErr != nil {
					fwCtx.Logger.Warn("Failed to log execution failure", "error", logErr)
				}
			}
			writeJSON(w, status, ErrorBody{Msg: msg}, fwCtx.Logger)
			return
		}

		fwCtx.Logger.Info("Function completed successfully")
		if logExec {
			if logErr := execution.LogSuccess(ctx, svc.DB, execID, outputs); logErr != nil {
				fwCtx.Logger.Warn("Failed to log execution success", "error", logErr)
			}
		}
		writeJSON(w, http.StatusOK, outputs, fwCtx.Logger)
	}
}

// invoke runs the handler, turning a panic into an internal error
func invoke(ctx context.Context, r *http.Request, fwCtx *FrameworkContext, handler HandlerFunc) (outputs interface{}, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			outputs = nil
			err = fitaierrors.ErrInternal.WithCause(fmt.Errorf("panic: %v", rec))
		}
	}()
	return handler(ctx, r, fwCtx)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}, logger *slog.Logger) {
	payload, err := json.Marshal(body)
	if err != nil {
		logger.Error("Failed to encode response", "error", err)
		status = http.StatusInternalServerError
		payload, _ = json.Marshal(ErrorBody{Msg: "Server Error"})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(payload, '\n')); err != nil {
		logger.Warn("Failed to write response", "error", err)
	}
}

// WriteError writes the status and {"msg"} body that err maps to.
// Functions use it when they fail before a handler can be wrapped.
func WriteError(w http.ResponseWriter, err error) {
	status, msg := fitaierrors.HTTPStatus(err)
	writeJSON(w, status, ErrorBody{Msg: msg}, slog.Default())
}

// AllowMethods rejects requests whose method is not listed
func AllowMethods(r *http.Request, methods ...string) error {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return fitaierrors.ErrMethodNotAllowed.WithMetadata("method", r.Method)
}
