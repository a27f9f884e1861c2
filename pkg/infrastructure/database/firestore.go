package database

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	shared "github.com/fitai/fitai-server/pkg"
	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
	"github.com/fitai/fitai-server/pkg/types"
)

// FirestoreAdapter provides database operations using Firestore
type FirestoreAdapter struct {
	Client *firestore.Client
}

func NewFirestoreAdapter(client *firestore.Client) *FirestoreAdapter {
	return &FirestoreAdapter{Client: client}
}

func (a *FirestoreAdapter) executions() *firestore.CollectionRef {
	return a.Client.Collection(shared.CollectionExecutions)
}

func (a *FirestoreAdapter) users() *firestore.CollectionRef {
	return a.Client.Collection(shared.CollectionUsers)
}

// --- Executions ---

func (a *FirestoreAdapter) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	_, err := a.executions().Doc(record.ExecutionId).Set(ctx, record)
	return err
}

func (a *FirestoreAdapter) UpdateExecution(ctx context.Context, id string, data map[string]interface{}) error {
	// Merge so a lost pending write does not fail the status update
	_, err := a.executions().Doc(id).Set(ctx, data, firestore.MergeAll)
	return err
}

// --- Users ---

func (a *FirestoreAdapter) GetUser(ctx context.Context, id string) (*types.UserProfile, error) {
	snap, err := a.users().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fitaierrors.ErrUserNotFound.WithCause(err).WithMetadata("user_id", id)
		}
		return nil, storageError(err)
	}

	var user types.UserProfile
	if err := snap.DataTo(&user); err != nil {
		return nil, fitaierrors.Wrap(err, fitaierrors.CodeStorageError, "decode user")
	}
	// Manually populate ID since it's the doc key
	user.UserId = id
	return &user, nil
}

func (a *FirestoreAdapter) UpdateUser(ctx context.Context, id string, data map[string]interface{}) error {
	_, err := a.users().Doc(id).Update(ctx, toUpdates(data))
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return fitaierrors.ErrUserNotFound.WithCause(err).WithMetadata("user_id", id)
		}
		return storageError(err)
	}
	return nil
}

// --- Progress ---

func (a *FirestoreAdapter) ListProgress(ctx context.Context, userID string) ([]*types.ProgressEntry, error) {
	docs, err := a.users().Doc(userID).Collection(shared.CollectionProgress).
		OrderBy("date", firestore.Asc).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, storageError(err)
	}

	results := make([]*types.ProgressEntry, 0, len(docs))
	for _, d := range docs {
		var p types.ProgressEntry
		if err := d.DataTo(&p); err != nil {
			return nil, fitaierrors.Wrap(err, fitaierrors.CodeStorageError, "decode progress entry").WithMetadata("doc_id", d.Ref.ID)
		}
		results = append(results, &p)
	}
	return results, nil
}

// toUpdates converts a field map into Firestore updates with a stable order.
func toUpdates(data map[string]interface{}) []firestore.Update {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	updates := make([]firestore.Update, 0, len(keys))
	for _, k := range keys {
		updates = append(updates, firestore.Update{Path: k, Value: data[k]})
	}
	return updates
}

// storageError marks transient gRPC failures as retryable.
func storageError(err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted, codes.ResourceExhausted:
		return fitaierrors.WrapRetryable(err, fitaierrors.CodeStorageError, "storage unavailable")
	default:
		return fitaierrors.Wrap(err, fitaierrors.CodeStorageError, "storage error")
	}
}
