package survey

import (
	"context"
	"net/http"
	"time"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/invitation"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"
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
	Title            string          `json:"title" validate:"required"`
	Description      string          `json:"description"`
	IndividualReport bool            `json:"individualReport"`
	Questions        []question.Spec `json:"questions" validate:"dive"`
}

type Response struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Status           string    `json:"status"`
	IndividualReport bool      `json:"individualReport"`
	CreatedBy        string    `json:"createdBy"`
	CreatedAt        time.Time `json:"createdAt"`
}

type QuestionResponse struct {
	ID       string   `json:"id"`
	Prompt   string   `json:"prompt"`
	Type     string   `json:"type"`
	Options  []string `json:"options"`
	Position int32    `json:"position"`
}

type DetailResponse struct {
	Response
	Questions        []QuestionResponse `json:"questions"`
	AlreadySubmitted bool               `json:"alreadySubmitted"`
}

type ParticipationResponse struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

type AdminDashboardEntry struct {
	Response
	Participation ParticipationResponse `json:"participation"`
}

type EmployeeDashboardEntry struct {
	SurveyID    string     `json:"surveyId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	RespondedAt *time.Time `json:"respondedAt"`
}

type DashboardResponse struct {
	Role    string                   `json:"role"`
	Surveys []AdminDashboardEntry    `json:"surveys,omitempty"`
	Invited []EmployeeDashboardEntry `json:"invited,omitempty"`
}

func ToResponse(s Survey) Response {
	return Response{
		ID:               s.ID.String(),
		Title:            s.Title,
		Description:      s.Description,
		Status:           string(s.Status),
		IndividualReport: s.IndividualReport,
		CreatedBy:        s.CreatedBy,
		CreatedAt:        s.CreatedAt.Time,
	}
}

func ToQuestionResponse(q question.Question) QuestionResponse {
	options := q.Options
	if options == nil {
		options = []string{}
	}
	return QuestionResponse{
		ID:       q.ID.String(),
		Prompt:   q.Prompt,
		Type:     string(q.Type),
		Options:  options,
		Position: q.Position,
	}
}

type Store interface {
	Create(ctx context.Context, title, description string, individualReport bool, createdBy string, specs []question.Spec) (Survey, []question.Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (Survey, error)
	List(ctx context.Context) ([]Survey, error)
	Publish(ctx context.Context, id uuid.UUID) (Survey, error)
	ListQuestions(ctx context.Context, surveyID uuid.UUID) ([]question.Question, error)
}

type invitationStore interface {
	GetBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (invitation.Invitation, error)
	ListByEmail(ctx context.Context, email string) ([]invitation.Invitation, error)
	Participation(ctx context.Context, surveyID uuid.UUID) (invitation.Participation, error)
}

type responseStore interface {
	ExistsBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (bool, error)
}

type Handler struct {
	logger *zap.Logger
	tracer trace.Tracer

	validator     *validator.Validate
	problemWriter *problem.HttpWriter

	store           Store
	invitationStore invitationStore
	responseStore   responseStore
}

func NewHandler(
	logger *zap.Logger,
	validator *validator.Validate,
	problemWriter *problem.HttpWriter,
	store Store,
	invitationStore invitationStore,
	responseStore responseStore,
) *Handler {
	return &Handler{
		logger:          logger,
		tracer:          otel.Tracer("survey/handler"),
		validator:       validator,
		problemWriter:   problemWriter,
		store:           store,
		invitationStore: invitationStore,
		responseStore:   responseStore,
	}
}

func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "CreateHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	var req Request
	if err := handlerutil.ParseAndValidateRequestBody(traceCtx, h.validator, r, &req); err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	newSurvey, questions, err := h.store.Create(traceCtx, req.Title, req.Description, req.IndividualReport, currentUser.Email, req.Questions)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	detail := DetailResponse{
		Response:         ToResponse(newSurvey),
		Questions:        make([]QuestionResponse, 0, len(questions)),
		AlreadySubmitted: false,
	}
	for _, q := range questions {
		detail.Questions = append(detail.Questions, ToQuestionResponse(q))
	}

	handlerutil.WriteJSONResponse(w, http.StatusCreated, detail)
}

func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "ListHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	if currentUser.IsAdmin {
		surveys, err := h.store.List(traceCtx)
		if err != nil {
			h.problemWriter.WriteError(traceCtx, w, err, logger)
			return
		}

		resp := make([]Response, 0, len(surveys))
		for _, s := range surveys {
			resp = append(resp, ToResponse(s))
		}
		handlerutil.WriteJSONResponse(w, http.StatusOK, resp)
		return
	}

	invitations, err := h.invitationStore.ListByEmail(traceCtx, currentUser.Email)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	resp := make([]Response, 0, len(invitations))
	for _, inv := range invitations {
		s, err := h.store.GetByID(traceCtx, inv.SurveyID)
		if err != nil {
			h.problemWriter.WriteError(traceCtx, w, err, logger)
			return
		}
		resp = append(resp, ToResponse(s))
	}
	handlerutil.WriteJSONResponse(w, http.StatusOK, resp)
}

func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "GetHandler")
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

	found, err := h.store.GetByID(traceCtx, surveyID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	if !currentUser.IsAdmin {
		if _, err := h.invitationStore.GetBySurveyAndEmail(traceCtx, surveyID, currentUser.Email); err != nil {
			h.problemWriter.WriteError(traceCtx, w, internal.ErrNotInvited, logger)
			return
		}
	}

	questions, err := h.store.ListQuestions(traceCtx, surveyID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	alreadySubmitted, err := h.responseStore.ExistsBySurveyAndEmail(traceCtx, surveyID, currentUser.Email)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	detail := DetailResponse{
		Response:         ToResponse(found),
		Questions:        make([]QuestionResponse, 0, len(questions)),
		AlreadySubmitted: alreadySubmitted,
	}
	for _, q := range questions {
		detail.Questions = append(detail.Questions, ToQuestionResponse(q))
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, detail)
}

func (h *Handler) PublishHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "PublishHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	surveyID, err := handlerutil.ParseUUID(r.PathValue("surveyId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	published, err := h.store.Publish(traceCtx, surveyID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToResponse(published))
}

// DashboardHandler branches on role: admins see every survey with its
// participation figures, employees see the surveys they are invited to.
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "DashboardHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	currentUser, ok := user.GetFromContext(traceCtx)
	if !ok {
		h.problemWriter.WriteError(traceCtx, w, internal.ErrNoUserInContext, logger)
		return
	}

	if currentUser.IsAdmin {
		surveys, err := h.store.List(traceCtx)
		if err != nil {
			h.problemWriter.WriteError(traceCtx, w, err, logger)
			return
		}

		entries := make([]AdminDashboardEntry, 0, len(surveys))
		for _, s := range surveys {
			p, err := h.invitationStore.Participation(traceCtx, s.ID)
			if err != nil {
				h.problemWriter.WriteError(traceCtx, w, err, logger)
				return
			}
			entries = append(entries, AdminDashboardEntry{
				Response: ToResponse(s),
				Participation: ParticipationResponse{
					Completed: p.Completed,
					Total:     p.Total,
					Percent:   p.Percent,
				},
			})
		}

		handlerutil.WriteJSONResponse(w, http.StatusOK, DashboardResponse{
			Role:    "admin",
			Surveys: entries,
		})
		return
	}

	invitations, err := h.invitationStore.ListByEmail(traceCtx, currentUser.Email)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	entries := make([]EmployeeDashboardEntry, 0, len(invitations))
	for _, inv := range invitations {
		s, err := h.store.GetByID(traceCtx, inv.SurveyID)
		if err != nil {
			h.problemWriter.WriteError(traceCtx, w, err, logger)
			return
		}

		var respondedAt *time.Time
		if inv.RespondedAt.Valid {
			respondedAt = &inv.RespondedAt.Time
		}
		entries = append(entries, EmployeeDashboardEntry{
			SurveyID:    s.ID.String(),
			Title:       s.Title,
			Description: s.Description,
			Status:      string(inv.Status),
			RespondedAt: respondedAt,
		})
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, DashboardResponse{
		Role:    "employee",
		Invited: entries,
	})
}
