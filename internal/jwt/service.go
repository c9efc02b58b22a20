package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/Barathraj2387/Survey-App/internal/user"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const Issuer = "survey-app"

type Service struct {
	logger     *zap.Logger
	secret     string
	expiration time.Duration
	tracer     trace.Tracer
}

func NewService(logger *zap.Logger, secret string, expiration time.Duration) *Service {
	return &Service{
		logger:     logger,
		secret:     secret,
		expiration: expiration,
		tracer:     otel.Tracer("jwt/service"),
	}
}

// claims binds a session cookie to its in-memory session entry. The JWT ID
// is the session identifier; the signature only proves the cookie was minted
// by us, the session entry must still exist for the cookie to authenticate.
type claims struct {
	Email   string
	Name    string
	IsAdmin bool
	jwt.RegisteredClaims
}

func (s Service) New(ctx context.Context, u user.User, sessionID uuid.UUID) (string, error) {
	traceCtx, span := s.tracer.Start(ctx, "New")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	tokenClaims := &claims{
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   u.ID.String(), // user id
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.expiration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			ID:        sessionID.String(), // session id
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims)
	tokenString, err := token.SignedString([]byte(s.secret))
	if err != nil {
		logger.Error("failed to sign session token", zap.Error(err), zap.String("user_id", u.ID.String()), zap.String("email", u.Email))
		return "", err
	}

	logger.Debug("Generated session JWT", zap.String("user_id", u.ID.String()), zap.String("session_id", sessionID.String()))
	return tokenString, nil
}

// Parse verifies a session cookie and returns the session and user ids it
// carries. Callers still have to resolve the session binding.
func (s Service) Parse(ctx context.Context, tokenString string) (sessionID uuid.UUID, userID uuid.UUID, err error) {
	traceCtx, span := s.tracer.Start(ctx, "Parse")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	secret := func(token *jwt.Token) (interface{}, error) {
		return []byte(s.secret), nil
	}

	tokenClaims := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, tokenClaims, secret)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			logger.Warn("Failed to parse JWT token due to malformed structure, this is not a JWT token", zap.String("error", err.Error()))
			return uuid.UUID{}, uuid.UUID{}, err
		case errors.Is(err, jwt.ErrSignatureInvalid):
			logger.Warn("Failed to parse JWT token due to invalid signature", zap.String("error", err.Error()))
			return uuid.UUID{}, uuid.UUID{}, err
		case errors.Is(err, jwt.ErrTokenExpired):
			expiredTime, getErr := token.Claims.GetExpirationTime()
			if getErr != nil {
				logger.Error("Failed to parse JWT token due to expired timestamp", zap.String("error", getErr.Error()))
				return uuid.UUID{}, uuid.UUID{}, err
			}
			logger.Warn("Failed to parse JWT token due to expired timestamp", zap.String("error", err.Error()), zap.Time("expired_at", expiredTime.Time))
			return uuid.UUID{}, uuid.UUID{}, err
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			notBeforeTime, getErr := token.Claims.GetNotBefore()
			if getErr != nil {
				logger.Error("Failed to parse JWT token due to not valid yet timestamp", zap.String("error", getErr.Error()))
				return uuid.UUID{}, uuid.UUID{}, err
			}
			logger.Warn("Failed to parse JWT token due to not valid yet timestamp", zap.String("error", err.Error()), zap.Time("not_before", notBeforeTime.Time))
			return uuid.UUID{}, uuid.UUID{}, err
		default:
			logger.Error("Failed to parse JWT token", zap.Error(err))
			return uuid.UUID{}, uuid.UUID{}, err
		}
	}

	parsedSessionID, err := uuid.Parse(tokenClaims.ID)
	if err != nil {
		logger.Error("Failed to parse session ID from JWT id", zap.Error(err))
		return uuid.UUID{}, uuid.UUID{}, err
	}

	parsedUserID, err := uuid.Parse(tokenClaims.Subject)
	if err != nil {
		logger.Error("Failed to parse user ID from JWT subject", zap.Error(err))
		return uuid.UUID{}, uuid.UUID{}, err
	}

	return parsedSessionID, parsedUserID, nil
}
