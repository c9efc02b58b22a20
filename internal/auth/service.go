package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/user"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	CreateLoginToken(ctx context.Context, arg CreateLoginTokenParams) (LoginToken, error)
	RedeemLoginToken(ctx context.Context, token string) (LoginToken, error)
}

type UserStore interface {
	FindOrCreate(ctx context.Context, email, name string) (user.User, error)
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type JWTIssuer interface {
	New(ctx context.Context, u user.User, sessionID uuid.UUID) (string, error)
}

type Service struct {
	logger  *zap.Logger
	queries Querier
	tracer  trace.Tracer

	userStore UserStore
	jwtIssuer JWTIssuer
	sessions  *SessionStore

	baseURL         string
	tokenExpiration time.Duration
}

func NewService(
	logger *zap.Logger,
	db DBTX,
	userStore UserStore,
	jwtIssuer JWTIssuer,
	sessions *SessionStore,
	baseURL string,
	tokenExpiration time.Duration,
) *Service {
	return &Service{
		logger:          logger,
		queries:         New(db),
		tracer:          otel.Tracer("auth/service"),
		userStore:       userStore,
		jwtIssuer:       jwtIssuer,
		sessions:        sessions,
		baseURL:         baseURL,
		tokenExpiration: tokenExpiration,
	}
}

// IssueLoginToken creates the user record if needed and mints a single-use
// magic-link token for the address. Mail delivery is out of scope, the
// verify URL is handed back to the caller instead.
func (s *Service) IssueLoginToken(ctx context.Context, email, name string) (LoginToken, string, error) {
	traceCtx, span := s.tracer.Start(ctx, "IssueLoginToken")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	account, err := s.userStore.FindOrCreate(traceCtx, email, name)
	if err != nil {
		span.RecordError(err)
		return LoginToken{}, "", err
	}

	raw := make([]byte, 16)
	if _, err := rand.Read(raw); err != nil {
		span.RecordError(err)
		return LoginToken{}, "", internal.ErrInternalServerError
	}

	token, err := s.queries.CreateLoginToken(traceCtx, CreateLoginTokenParams{
		Token: hex.EncodeToString(raw),
		Email: account.Email,
		ExpiresAt: pgtype.Timestamptz{
			Time:  time.Now().Add(s.tokenExpiration),
			Valid: true,
		},
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create login token")
		span.RecordError(err)
		return LoginToken{}, "", err
	}

	verifyURL := fmt.Sprintf("%s/api/auth/verify/%s", s.baseURL, token.Token)

	logger.Info("Issued login token",
		zap.String("email", account.Email),
		zap.Time("expires_at", token.ExpiresAt.Time))

	return token, verifyURL, nil
}

// RedeemToken consumes a magic-link token and opens a session. The redeem is
// a conditional update, so two racing redeems of the same token cannot both
// succeed. Expiry is checked in the same statement, there is no sweeper.
func (s *Service) RedeemToken(ctx context.Context, token string) (user.User, string, error) {
	traceCtx, span := s.tracer.Start(ctx, "RedeemToken")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	redeemed, err := s.queries.RedeemLoginToken(traceCtx, token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, "", internal.ErrInvalidOrExpiredToken
		}
		err = databaseutil.WrapDBError(err, logger, "redeem login token")
		span.RecordError(err)
		return user.User{}, "", err
	}

	account, err := s.userStore.GetByEmail(traceCtx, redeemed.Email)
	if err != nil {
		span.RecordError(err)
		return user.User{}, "", err
	}

	sessionID := s.sessions.Create(account.ID, account.Email)

	cookie, err := s.jwtIssuer.New(traceCtx, account, sessionID)
	if err != nil {
		s.sessions.Delete(sessionID)
		span.RecordError(err)
		return user.User{}, "", err
	}

	logger.Info("Opened session",
		zap.String("user_id", account.ID.String()),
		zap.String("email", account.Email))

	return account, cookie, nil
}

func (s *Service) EndSession(sessionID uuid.UUID) {
	s.sessions.Delete(sessionID)
}
