package invitation

import (
	"context"
	"net/http"
	"time"

	handlerutil "github.com/NYCU-SDC/summer/pkg/handler"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/NYCU-SDC/summer/pkg/problem"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type InviteRequest struct {
	Recipients string `json:"recipients" validate:"required"`
}

type Response struct {
	ID          string     `json:"id"`
	SurveyID    string     `json:"surveyId"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	InvitedAt   time.Time  `json:"invitedAt"`
	RespondedAt *time.Time `json:"respondedAt"`
}

type RosterResponse struct {
	Invitations   []Response            `json:"invitations"`
	Participation ParticipationResponse `json:"participation"`
}

type ParticipationResponse struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

type InviteResponse struct {
	Created []Response `json:"created"`
}

func ToResponse(inv Invitation) Response {
	var respondedAt *time.Time
	if inv.RespondedAt.Valid {
		respondedAt = &inv.RespondedAt.Time
	}
	return Response{
		ID:          inv.ID.String(),
		SurveyID:    inv.SurveyID.String(),
		Email:       inv.Email,
		Name:        inv.Name,
		Status:      string(inv.Status),
		InvitedAt:   inv.InvitedAt.Time,
		RespondedAt: respondedAt,
	}
}

type Store interface {
	Invite(ctx context.Context, surveyID uuid.UUID, raw string) ([]Invitation, error)
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Invitation, error)
	Participation(ctx context.Context, surveyID uuid.UUID) (Participation, error)
}

type surveyStore interface {
	Exists(ctx context.Context, id uuid.UUID) error
}

type Handler struct {
	logger *zap.Logger
	tracer trace.Tracer

	validator     *validator.Validate
	problemWriter *problem.HttpWriter

	store       Store
	surveyStore surveyStore
}

func NewHandler(
	logger *zap.Logger,
	validator *validator.Validate,
	problemWriter *problem.HttpWriter,
	store Store,
	surveyStore surveyStore,
) *Handler {
	return &Handler{
		logger:        logger,
		tracer:        otel.Tracer("invitation/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		store:         store,
		surveyStore:   surveyStore,
	}
}

func (h *Handler) InviteHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "InviteHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	surveyID, err := handlerutil.ParseUUID(r.PathValue("surveyId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	if err := h.surveyStore.Exists(traceCtx, surveyID); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	var req InviteRequest
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	created, err := h.store.Invite(traceCtx, surveyID, req.Recipients)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	resp := InviteResponse{Created: make([]Response, 0, len(created))}
	for _, inv := range created {
		resp.Created = append(resp.Created, ToResponse(inv))
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, resp)
}

func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "ListHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	surveyID, err := handlerutil.ParseUUID(r.PathValue("surveyId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	if err := h.surveyStore.Exists(traceCtx, surveyID); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	invitations, err := h.store.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	participation, err := h.store.Participation(traceCtx, surveyID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	roster := RosterResponse{
		Invitations: make([]Response, 0, len(invitations)),
		Participation: ParticipationResponse{
			Completed: participation.Completed,
			Total:     participation.Total,
			Percent:   participation.Percent,
		},
	}
	for _, inv := range invitations {
		roster.Invitations = append(roster.Invitations, ToResponse(inv))
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, roster)
}
