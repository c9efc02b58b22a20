package submit

import (
	"context"
	"net/http"
	"time"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/user"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Request struct {
	Answers map[string]string `json:"answers"`
}

type Response struct {
	Submitted   bool       `json:"submitted"`
	AdminNoOp   bool       `json:"adminNoOp,omitempty"`
	ResponseID  string     `json:"responseId,omitempty"`
	SubmittedAt *time.Time `json:"submittedAt,omitempty"`
}

type Store interface {
	Submit(ctx context.Context, surveyID uuid.UUID, submitter user.User, values map[string]string) (Result, error)
}

type Handler struct {
	logger *zap.Logger
	tracer trace.Tracer

	validator     *validator.Validate
	problemWriter *problem.HttpWriter

	store Store
}

func NewHandler(logger *zap.Logger, validator *validator.Validate, problemWriter *problem.HttpWriter, store Store) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("submit/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		store:         store,
	}
}

func (h *Handler) SubmitHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "SubmitHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	surveyID, err := handlerutil.ParseUUID(r.PathValue("surveyId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	var req Request
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	result, err := h.store.Submit(traceCtx, surveyID, *currentUser, req.Answers)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	if result.AdminNoOp {
		handlerutil.WriteJSONResponse(w, http.StatusOK, Response{
			Submitted: false,
			AdminNoOp: true,
		})
		return
	}

	submittedAt := result.Response.SubmittedAt.Time
	handlerutil.WriteJSONResponse(w, http.StatusCreated, Response{
		Submitted:   true,
		ResponseID:  result.Response.ID.String(),
		SubmittedAt: &submittedAt,
	})
}
