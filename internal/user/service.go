package user

import (
	"context"
	"errors"
	"strings"

	"github.com/Barathraj2387/Survey-App/internal"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// GetFromContext extracts the authenticated user from request context
func GetFromContext(ctx context.Context) (*User, bool) {
	userData, ok := ctx.Value(internal.UserContextKey).(*User)
	return userData, ok
}

func (u User) GetID() uuid.UUID {
	return u.ID
}

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}

type Service struct {
	logger  *zap.Logger
	queries Querier
	tracer  trace.Tracer
}

func NewService(logger *zap.Logger, db DBTX) *Service {
	return &Service{
		logger:  logger,
		queries: New(db),
		tracer:  otel.Tracer("user/service"),
	}
}

// FindOrCreate looks a user up by normalized email and creates the record if
// it does not exist yet. The admin role is decided once at creation time from
// the configured admin domain and never changes afterwards. This is the login
// path, use FindOrCreateEmployee when the caller must never mint an admin.
func (s *Service) FindOrCreate(ctx context.Context, email, name string) (User, error) {
	return s.findOrCreate(ctx, "FindOrCreate", email, name, true)
}

// FindOrCreateEmployee is FindOrCreate with the admin domain check disabled,
// a created record is always non-admin. Existing users keep their role.
func (s *Service) FindOrCreateEmployee(ctx context.Context, email, name string) (User, error) {
	return s.findOrCreate(ctx, "FindOrCreateEmployee", email, name, false)
}

func (s *Service) findOrCreate(ctx context.Context, spanName, email, name string, domainRole bool) (User, error) {
	traceCtx, span := s.tracer.Start(ctx, spanName)
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	normalized := NormalizeEmail(email)
	if normalized == "" || !strings.Contains(normalized, "@") {
		return User{}, internal.ErrInvalidEmailFormat
	}

	existing, err := s.queries.GetByEmail(traceCtx, normalized)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		err = databaseutil.WrapDBError(err, logger, "get user by email")
		span.RecordError(err)
		return User{}, err
	}

	if name == "" {
		name = normalized[:strings.Index(normalized, "@")]
	}

	newUser, err := s.queries.Create(traceCtx, CreateParams{
		Email:   normalized,
		Name:    name,
		IsAdmin: domainRole && IsAdminEmail(normalized),
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create user")
		if errors.Is(err, databaseutil.ErrUniqueViolation) {
			// lost a create race, the row exists now
			return s.GetByEmail(traceCtx, normalized)
		}
		span.RecordError(err)
		return User{}, err
	}

	logger.Info("Created new user",
		zap.String("user_id", newUser.ID.String()),
		zap.String("email", newUser.Email),
		zap.Bool("is_admin", newUser.IsAdmin))

	return newUser, nil
}

func (s *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	traceCtx, span := s.tracer.Start(ctx, "GetByEmail")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	found, err := s.queries.GetByEmail(traceCtx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, internal.ErrUserNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "users", "email", email, logger, "get user by email")
		span.RecordError(err)
		return User{}, err
	}
	return found, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	traceCtx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	found, err := s.queries.GetByID(traceCtx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, internal.ErrUserNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "users", "id", id.String(), logger, "get user by id")
		span.RecordError(err)
		return User{}, err
	}
	return found, nil
}

func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	traceCtx, span := s.tracer.Start(ctx, "ExistsByEmail")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	exists, err := s.queries.ExistsByEmail(traceCtx, NormalizeEmail(email))
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "check user existence by email")
		span.RecordError(err)
		return false, err
	}
	return exists, nil
}
