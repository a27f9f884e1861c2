package secrets

import (
	"context"
	"fmt"
	"hash/crc32"
	"log/slog"
	"os"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
)

// SecretsAdapter fetches secret payloads from Google Secret Manager.
// Environment variables with the secret's name take precedence, for local runs.
type SecretsAdapter struct{}

// GetSecret returns the "latest" version of secretName in projectID.
func (a *SecretsAdapter) GetSecret(ctx context.Context, projectID, secretName string) (string, error) {
	if val := os.Getenv(secretName); val != "" {
		slog.Debug("Using local env var for secret", "secret", secretName)
		return val, nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fitaierrors.ErrSecretError.WithCause(fmt.Errorf("failed to create secretmanager client: %w", err))
	}
	defer client.Close()

	req := &secretmanagerpb.AccessSecretVersionRequest{
		Name: secretVersionName(projectID, secretName),
	}

	result, err := client.AccessSecretVersion(ctx, req)
	if err != nil {
		return "", fitaierrors.ErrSecretError.WithCause(fmt.Errorf("failed to access secret version: %w", err)).WithMetadata("secret", secretName)
	}

	if !checksumMatches(result.Payload.Data, result.Payload.DataCrc32C) {
		return "", fitaierrors.ErrSecretError.WithMessage("data corruption detected").WithMetadata("secret", secretName)
	}

	return string(result.Payload.Data), nil
}

func secretVersionName(projectID, secretName string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretName)
}

// checksumMatches verifies the CRC32C Secret Manager sends along with the payload.
func checksumMatches(data []byte, want *int64) bool {
	if want == nil {
		return true
	}
	crc32c := crc32.MakeTable(crc32.Castagnoli)
	return int64(crc32.Checksum(data, crc32c)) == *want
}
