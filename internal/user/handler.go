package user

import (
	"net/http"
	"time"

	"github.com/Barathraj2387/Survey-App/internal"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Response struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToResponse(u User) Response {
	role := "employee"
	if u.IsAdmin {
		role = "admin"
	}
	return Response{
		ID:        u.ID.String(),
		Email:     u.Email,
		Name:      u.Name,
		Role:      role,
		CreatedAt: u.CreatedAt.Time,
	}
}

type Handler struct {
	logger *zap.Logger
	tracer trace.Tracer

	validator     *validator.Validate
	problemWriter *problem.HttpWriter
}

func NewHandler(logger *zap.Logger, validator *validator.Validate, problemWriter *problem.HttpWriter) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("user/handler"),
		validator:     validator,
		problemWriter: problemWriter,
	}
}

func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "GetMe")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	currentUser, ok := GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToResponse(*currentUser))
}
