package auth

import (
	"context"
	"net/http"
	"time"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/user"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	"github.com/google/uuid"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const SessionCookieName = "session"

type LoginRequest struct {
	Email string `json:"email" validate:"required,email_local"`
	Name  string `json:"name"`
}

// LoginResponse carries the verify link directly because outbound mail is an
// external collaborator. A real deployment would send it instead.
type LoginResponse struct {
	Email     string    `json:"email"`
	VerifyURL string    `json:"verifyUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type Store interface {
	IssueLoginToken(ctx context.Context, email, name string) (LoginToken, string, error)
	RedeemToken(ctx context.Context, token string) (user.User, string, error)
	EndSession(sessionID uuid.UUID)
}

type JWTParser interface {
	Parse(ctx context.Context, tokenString string) (sessionID uuid.UUID, userID uuid.UUID, err error)
}

type Handler struct {
	logger *zap.Logger
	tracer trace.Tracer

	validator     *validator.Validate
	problemWriter *problem.HttpWriter

	store             Store
	jwtParser         JWTParser
	sessionExpiration time.Duration
	devMode           bool
}

func NewHandler(
	logger *zap.Logger,
	validator *validator.Validate,
	problemWriter *problem.HttpWriter,
	store Store,
	jwtParser JWTParser,
	sessionExpiration time.Duration,
	devMode bool,
) *Handler {
	return &Handler{
		logger:            logger,
		tracer:            otel.Tracer("auth/handler"),
		validator:         validator,
		problemWriter:     problemWriter,
		store:             store,
		jwtParser:         jwtParser,
		sessionExpiration: sessionExpiration,
		devMode:           devMode,
	}
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "LoginHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	var req LoginRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	token, verifyURL, err := h.store.IssueLoginToken(traceCtx, req.Email, req.Name)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, LoginResponse{
		Email:     token.Email,
		VerifyURL: verifyURL,
		ExpiresAt: token.ExpiresAt.Time,
	})
}

func (h *Handler) VerifyHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "VerifyHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	token := r.PathValue("token")
	if token == "" {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrInvalidOrExpiredToken, logger)
		return
	}

	_, cookie, err := h.store.RedeemToken(traceCtx, token)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	h.setSessionCookie(w, cookie)

	http.Redirect(w, r, "/api/dashboard", http.StatusFound)
}

func (h *Handler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "LogoutHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	cookie, err := r.Cookie(SessionCookieName)
	if err == nil && cookie.Value != "" {
		sessionID, _, parseErr := h.jwtParser.Parse(traceCtx, cookie.Value)
		if parseErr == nil {
			h.store.EndSession(sessionID)
		} else {
			logger.Debug("Ignoring unparsable session cookie during logout", zap.Error(parseErr))
		}
	}

	h.clearSessionCookie(w)

	handlerutil.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Successfully logged out"})
}

func (h *Handler) setSessionCookie(w http.ResponseWriter, value string) {
	var sameSite http.SameSite
	if h.devMode {
		sameSite = http.SameSiteLaxMode
	} else {
		sameSite = http.SameSiteStrictMode
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		HttpOnly: true,
		Secure:   !h.devMode,
		SameSite: sameSite,
		Path:     "/",
		MaxAge:   int(h.sessionExpiration.Seconds()),
	})
}

// clearSessionCookie sets the session cookie to an empty value and negative
// MaxAge, negative means the cookie will be deleted.
func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   !h.devMode,
		SameSite: http.SameSiteLaxMode,
	})
}
