// Package auth verifies the x-auth-token header sent by the web client.
//
// Tokens are HS256 JWTs shaped {"user": {"id": "..."}, "exp": ...}, signed
// with the JWT_SECRET secret.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	shared "github.com/fitai/fitai-server/pkg"
	fitaierrors "github.com/fitai/fitai-server/pkg/errors"
)

// HeaderName is the request header carrying the token.
const HeaderName = "x-auth-token"

// Allowed clock skew when checking exp/nbf.
const leeway = 30 * time.Second

// Claims is the token payload.
type Claims struct {
	User UserClaim `json:"user"`
	jwt.Claims
}

// UserClaim identifies the authenticated user.
type UserClaim struct {
	ID string `json:"id"`
}

// Verifier checks tokens against a fixed secret.
type Verifier struct {
	secret []byte
	now    func() time.Time
}

// NewVerifier returns a Verifier for secret.
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(secret), now: time.Now}
}

// Verify returns the user ID carried by token.
func (v *Verifier) Verify(_ context.Context, token string) (string, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fitaierrors.ErrUserUnauthorized.WithMessage("missing token")
	}

	parsed, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return "", fitaierrors.ErrUserUnauthorized.WithCause(err)
	}

	var claims Claims
	if err := parsed.Claims(v.secret, &claims); err != nil {
		return "", fitaierrors.ErrUserUnauthorized.WithCause(err)
	}

	if err := claims.Claims.ValidateWithLeeway(jwt.Expected{Time: v.now()}, leeway); err != nil {
		return "", fitaierrors.ErrUserUnauthorized.WithCause(err)
	}

	if claims.User.ID == "" {
		return "", fitaierrors.ErrUserUnauthorized.WithMessage("token has no user id")
	}
	return claims.User.ID, nil
}

// Issue signs a token for userID that expires after ttl. A zero ttl means no expiry.
func Issue(secret, userID string, ttl time.Duration) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: []byte(secret)},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	now := time.Now()
	claims := Claims{
		User: UserClaim{ID: userID},
		Claims: jwt.Claims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.Expiry = jwt.NewNumericDate(now.Add(ttl))
	}

	return jwt.Signed(signer).Claims(claims).Serialize()
}

// SecretVerifier resolves the signing secret from a SecretStore on first use.
// Lookup failures are not cached, so a later request retries.
type SecretVerifier struct {
	store     shared.SecretStore
	projectID string

	mu       sync.Mutex
	verifier *Verifier
}

// NewSecretVerifier returns a verifier backed by the JWT_SECRET secret.
func NewSecretVerifier(store shared.SecretStore, projectID string) *SecretVerifier {
	return &SecretVerifier{store: store, projectID: projectID}
}

// Verify implements shared.TokenVerifier.
func (s *SecretVerifier) Verify(ctx context.Context, token string) (string, error) {
	v, err := s.get(ctx)
	if err != nil {
		return "", err
	}
	return v.Verify(ctx, token)
}

func (s *SecretVerifier) get(ctx context.Context) (*Verifier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.verifier != nil {
		return s.verifier, nil
	}
	secret, err := s.store.GetSecret(ctx, s.projectID, shared.SecretJWT)
	if err != nil {
		return nil, fitaierrors.ErrSecretError.WithCause(err)
	}
	if secret == "" {
		return nil, fitaierrors.ErrSecretError.WithMessage("empty JWT secret")
	}
	s.verifier = NewVerifier(secret)
	return s.verifier, nil
}

// UserFromRequest verifies the x-auth-token header of r.
func UserFromRequest(ctx context.Context, r *http.Request, verifier shared.TokenVerifier) (string, error) {
	token := r.Header.Get(HeaderName)
	if token == "" {
		return "", fitaierrors.ErrUserUnauthorized.WithMessage("missing token")
	}
	return verifier.Verify(ctx, token)
}
