package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/Barathraj2387/Survey-App/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, secret string, expiration time.Duration) *Service {
	t.Helper()

	return &Service{
		logger:     zap.NewNop(),
		secret:     secret,
		expiration: expiration,
		tracer:     noop.NewTracerProvider().Tracer("test"),
	}
}

func TestService_NewAndParse(t *testing.T) {
	t.Parallel()

	service := newTestService(t, "test-secret", time.Hour)

	account := user.User{
		ID:      uuid.New(),
		Email:   "alice@example.com",
		Name:    "Alice",
		IsAdmin: false,
	}
	sessionID := uuid.New()

	token, err := service.New(context.Background(), account, sessionID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsedSessionID, parsedUserID, err := service.Parse(context.Background(), token)
	require.NoError(t, err)
	require.Equal(t, sessionID, parsedSessionID)
	require.Equal(t, account.ID, parsedUserID)
}

func TestService_Parse_WrongSecret(t *testing.T) {
	t.Parallel()

	issuer := newTestService(t, "test-secret", time.Hour)
	verifier := newTestService(t, "another-secret", time.Hour)

	token, err := issuer.New(context.Background(), user.User{ID: uuid.New(), Email: "alice@example.com"}, uuid.New())
	require.NoError(t, err)

	_, _, err = verifier.Parse(context.Background(), token)
	require.Error(t, err)
}

func TestService_Parse_Expired(t *testing.T) {
	t.Parallel()

	service := newTestService(t, "test-secret", -time.Minute)

	token, err := service.New(context.Background(), user.User{ID: uuid.New(), Email: "alice@example.com"}, uuid.New())
	require.NoError(t, err)

	_, _, err = service.Parse(context.Background(), token)
	require.Error(t, err)
}

func TestService_Parse_Garbage(t *testing.T) {
	t.Parallel()

	service := newTestService(t, "test-secret", time.Hour)

	_, _, err := service.Parse(context.Background(), "not-a-jwt")
	require.Error(t, err)
}
