package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/fitai/fitai-server/pkg/bootstrap"
	"github.com/fitai/fitai-server/pkg/chatbot"
	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
	"github.com/fitai/fitai-server/pkg/framework"
)

const maxBodyBytes = 64 << 10

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.HTTP("Chat", Chat)
}

func initService(ctx context.Context) (*bootstrap.Service, error) {
	if svc != nil {
		return svc, nil
	}
	svcOnce.Do(func() {
		svc, svcErr = bootstrap.NewService(ctx)
		if svcErr != nil {
			slog.Error("Failed to initialize service", "error", svcErr)
		}
	})
	return svc, svcErr
}

// Request is the chat request body.
type Request struct {
	Message *string `json:"message"`
}

// Response is the chat response body.
type Response struct {
	Reply string `json:"reply"`
}

// Chat is the entry point
func Chat(w http.ResponseWriter, r *http.Request) {
	s, err := initService(r.Context())
	if err != nil {
		// Replies need no backing services; answer without execution records
		s = &bootstrap.Service{Config: &bootstrap.Config{}}
	}
	framework.WrapHTTP("chat", s, chatHandler)(w, r)
}

// chatHandler contains the business logic
func chatHandler(ctx context.Context, r *http.Request, fwCtx *framework.FrameworkContext) (interface{}, error) {
	if err := framework.AllowMethods(r, http.MethodPost); err != nil {
		return nil, err
	}

	msg, err := decodeRequest(r)
	if err != nil {
		return nil, err
	}

	responder := chatbot.Default()
	match := responder.Match(msg)
	if entry, ok := responder.Entry(match.Index); ok && match.Matched() {
		fwCtx.Logger.Debug("Matched knowledge entry", "index", match.Index, "topic", entry.Topic, "score", match.Score)
		return Response{Reply: entry.Response}, nil
	}

	fwCtx.Logger.Debug("No knowledge entry matched", "index", match.Index, "score", match.Score)
	return Response{Reply: chatbot.FallbackResponse}, nil
}

func decodeRequest(r *http.Request) (string, error) {
	if r.Body == nil {
		return "", fitaierrors.ErrMalformedRequest.WithMessage("empty request body")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	var req Request
	if err := dec.Decode(&req); err != nil {
		return "", fitaierrors.ErrMalformedRequest.WithCause(fmt.Errorf("decode body: %w", err))
	}
	// The body must hold exactly one JSON value
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return "", fitaierrors.ErrMalformedRequest.WithMessage("trailing data after body")
	}
	if req.Message == nil {
		return "", fitaierrors.ErrMalformedRequest.WithMessage("message is required")
	}
	return *req.Message, nil
}
