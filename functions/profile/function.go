package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	shared "github.com/fitai/fitai-server/pkg"
	"github.com/fitai/fitai-server/pkg/auth"
	"github.com/fitai/fitai-server/pkg/bootstrap"
	userprofile "github.com/fitai/fitai-server/pkg/domain/profile"
	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
	"github.com/fitai/fitai-server/pkg/framework"
	"github.com/fitai/fitai-server/pkg/infrastructure/pubsub"
)

const maxBodyBytes = 16 << 10

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.HTTP("UserProfile", UserProfile)
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

// UserProfile is the entry point
func UserProfile(w http.ResponseWriter, r *http.Request) {
	svc, err := initService(r.Context())
	if err != nil {
		framework.WriteError(w, fmt.Errorf("service init failed: %w", err))
		return
	}
	framework.WrapHTTP("profile", svc, profileHandler)(w, r)
}

// profileHandler contains the business logic
func profileHandler(ctx context.Context, r *http.Request, fwCtx *framework.FrameworkContext) (interface{}, error) {
	if err := framework.AllowMethods(r, http.MethodGet, http.MethodPut); err != nil {
		return nil, err
	}

	userID, err := auth.UserFromRequest(ctx, r, fwCtx.Service.Auth)
	if err != nil {
		return nil, err
	}
	fwCtx.SetUser(ctx, userID)

	if r.Method == http.MethodGet {
		return fwCtx.Service.DB.GetUser(ctx, userID)
	}

	var update userprofile.Update
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes)).Decode(&update); err != nil {
		return nil, fitaierrors.ErrValidation.WithMessage("invalid profile body").WithCause(err)
	}

	fields, err := update.Fields(time.Now().UTC())
	if err != nil {
		return nil, err
	}

	fwCtx.Logger.Info("Updating profile", "fields", userprofile.ChangedFields(fields))
	if err := fwCtx.Service.DB.UpdateUser(ctx, userID, fields); err != nil {
		return nil, err
	}

	user, err := fwCtx.Service.DB.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	requestPlanRegeneration(ctx, fwCtx, userprofile.UpdatedEvent(user, fields))
	return user, nil
}

// requestPlanRegeneration publishes the profile change. Failures are logged only;
// the profile is already saved.
func requestPlanRegeneration(ctx context.Context, fwCtx *framework.FrameworkContext, payload interface{}) {
	e, err := pubsub.NewCloudEvent("/functions/profile", shared.EventTypeProfileUpdated, payload)
	if err != nil {
		fwCtx.Logger.Error("Failed to build profile event", "error", err)
		return
	}

	msgID, err := fwCtx.Service.Pub.PublishCloudEvent(ctx, shared.TopicPlanGenerate, e)
	if err != nil {
		fwCtx.Logger.Error("Failed to publish profile event", "error", fitaierrors.ErrPubSubError.WithCause(err))
		return
	}
	fwCtx.Logger.Info("Requested plan regeneration", "message_id", msgID, "topic", shared.TopicPlanGenerate)
}
