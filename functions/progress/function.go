package progress

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/fitai/fitai-server/pkg/auth"
	"github.com/fitai/fitai-server/pkg/bootstrap"
	userprogress "github.com/fitai/fitai-server/pkg/domain/progress"
	"github.com/fitai/fitai-server/pkg/framework"
)

var (
	svc     *bootstrap.Service
	svcOnce sync.Once
	svcErr  error
)

func init() {
	functions.HTTP("UserProgress", UserProgress)
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

// UserProgress is the entry point
func UserProgress(w http.ResponseWriter, r *http.Request) {
	svc, err := initService(r.Context())
	if err != nil {
		framework.WriteError(w, fmt.Errorf("service init failed: %w", err))
		return
	}
	framework.WrapHTTP("progress", svc, progressHandler)(w, r)
}

// progressHandler contains the business logic
func progressHandler(ctx context.Context, r *http.Request, fwCtx *framework.FrameworkContext) (interface{}, error) {
	if err := framework.AllowMethods(r, http.MethodGet); err != nil {
		return nil, err
	}

	userID, err := auth.UserFromRequest(ctx, r, fwCtx.Service.Auth)
	if err != nil {
		return nil, err
	}
	fwCtx.SetUser(ctx, userID)

	// 404 for unknown users rather than empty stats
	if _, err := fwCtx.Service.DB.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	entries, err := fwCtx.Service.DB.ListProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := userprogress.Aggregate(entries)
	fwCtx.Logger.Info("Aggregated progress", "workouts", stats.TotalWorkouts, "streak", stats.Streak)
	return stats, nil
}
