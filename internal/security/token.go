package security

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tn0901/shop-api/configs"
)

type tokenCtxKey struct{}

// WithToken stores the raw bearer token of the inbound request so outgoing
// service calls can forward the caller's identity.
func WithToken(ctx context.Context, raw string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, raw)
}

// TokenFromCtx returns the bearer token attached by WithToken, or "".
func TokenFromCtx(ctx context.Context) string {
	if v := ctx.Value(tokenCtxKey{}); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// MintToken signs a token for a registered client. The subject is the order
// owner id for user flows and the client id for service-to-service calls.
func MintToken(cfg configs.Config, clientID, subject string) (signed string, expiresAt time.Time, err error) {
	cl, ok := Clients[clientID]
	if !ok || !cl.Enabled {
		return "", time.Time{}, fmt.Errorf("unknown client %q", clientID)
	}
	if subject == "" {
		subject = clientID
	}

	ttl := cfg.Security.TTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}

	now := time.Now()
	expiresAt = now.Add(ttl)
	claims := jwt.MapClaims{
		"iss":      cfg.Security.Issuer,
		"aud":      cfg.Security.Audience,
		"sub":      subject,
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"exp":      expiresAt.Unix(),
		"clientID": clientID,
		"perms":    cl.Perms,
	}
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(cfg.Security.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ServiceTokenSource mints and caches a client-credentials token for calls
// made outside any inbound request, such as startup seeding.
type ServiceTokenSource struct {
	cfg      configs.Config
	clientID string

	mu    sync.Mutex
	token string
	exp   time.Time
}

func NewServiceTokenSource(cfg configs.Config, clientID string) *ServiceTokenSource {
	return &ServiceTokenSource{cfg: cfg, clientID: clientID}
}

func (s *ServiceTokenSource) Token() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Until(s.exp) > 30*time.Second {
		return s.token, nil
	}

	signed, exp, err := MintToken(s.cfg, s.clientID, s.clientID)
	if err != nil {
		return "", err
	}
	s.token, s.exp = signed, exp
	return s.token, nil
}
