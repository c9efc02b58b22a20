package auth

import (
	"context"
	"net/http"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/user"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type sessionResolver interface {
	Get(id uuid.UUID) (SessionBinding, bool)
}

type userReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (user.User, error)
}

type Middleware struct {
	tracer        trace.Tracer
	logger        *zap.Logger
	problemWriter *problem.HttpWriter

	jwtParser JWTParser
	sessions  sessionResolver
	userStore userReader
}

func NewMiddleware(
	logger *zap.Logger,
	problemWriter *problem.HttpWriter,
	jwtParser JWTParser,
	sessions sessionResolver,
	userStore userReader,
) *Middleware {
	return &Middleware{
		tracer:        otel.Tracer("auth/middleware"),
		logger:        logger,
		problemWriter: problemWriter,
		jwtParser:     jwtParser,
		sessions:      sessions,
		userStore:     userStore,
	}
}

// AuthenticateMiddleware resolves the session cookie into a user and stores
// it in the request context. A valid signature alone is not enough, the
// session binding behind the cookie's jti must still be alive.
func (m *Middleware) AuthenticateMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceCtx, span := m.tracer.Start(r.Context(), "AuthenticateMiddleware")
		defer span.End()
		logger := logutil.WithContext(traceCtx, m.logger)

		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			m.problemWriter.WriteError(traceCtx, w, internal.ErrMissingSessionCookie, logger)
			return
		}

		sessionID, userID, err := m.jwtParser.Parse(traceCtx, cookie.Value)
		if err != nil {
			m.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidJWTToken, logger)
			return
		}

		binding, ok := m.sessions.Get(sessionID)
		if !ok {
			logger.Debug("Session cookie references no live session", zap.String("session_id", sessionID.String()))
			m.problemWriter.WriteError(traceCtx, w, internal.ErrSessionNotFound, logger)
			return
		}

		if binding.UserID != userID {
			logger.Warn("Session binding does not match cookie subject",
				zap.String("session_id", sessionID.String()),
				zap.String("cookie_user_id", userID.String()),
				zap.String("session_user_id", binding.UserID.String()),
			)
			m.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidAuthUser, logger)
			return
		}

		u, err := m.userStore.GetByID(traceCtx, binding.UserID)
		if err != nil {
			m.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidAuthUser, logger)
			return
		}

		ctx := context.WithValue(traceCtx, internal.UserContextKey, &u)
		next(w, r.WithContext(ctx))
	}
}

// RequireAdminMiddleware rejects authenticated non-admin users. It must run
// after AuthenticateMiddleware.
func (m *Middleware) RequireAdminMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceCtx, span := m.tracer.Start(r.Context(), "RequireAdminMiddleware")
		defer span.End()
		logger := logutil.WithContext(traceCtx, m.logger)

		u, ok := user.GetFromContext(traceCtx)
		if !ok {
			m.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
			return
		}

		if !u.IsAdmin {
			logger.Debug("Admin route rejected for employee", zap.String("email", u.Email))
			m.problemWriter.WriteError(traceCtx, w, internal.ErrAdminRoleRequired, logger)
			return
		}

		next(w, r)
	}
}
