package report

import (
	"context"
	"net/http"

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

type QuestionEntry struct {
	QuestionID  string         `json:"questionId"`
	Prompt      string         `json:"prompt"`
	Type        string         `json:"type"`
	Position    int32          `json:"position"`
	Frequencies map[string]int `json:"frequencies,omitempty"`
	Values      []string       `json:"values,omitempty"`
}

type ParticipationEntry struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

type Response struct {
	SurveyID      string             `json:"surveyId"`
	ResponseCount int                `json:"responseCount"`
	Participation ParticipationEntry `json:"participation"`
	Questions     []QuestionEntry    `json:"questions"`
}

type IndividualEntry struct {
	Prompt string `json:"prompt"`
	Value  string `json:"value"`
}

type IndividualResponse struct {
	SurveyID string            `json:"surveyId"`
	Answers  []IndividualEntry `json:"answers"`
}

func ToResponse(r Report) Response {
	resp := Response{
		SurveyID:      r.SurveyID.String(),
		ResponseCount: r.ResponseCount,
		Participation: ParticipationEntry{
			Completed: r.Participation.Completed,
			Total:     r.Participation.Total,
			Percent:   r.Participation.Percent,
		},
		Questions: make([]QuestionEntry, 0, len(r.Questions)),
	}
	for _, q := range r.Questions {
		resp.Questions = append(resp.Questions, QuestionEntry{
			QuestionID:  q.QuestionID.String(),
			Prompt:      q.Prompt,
			Type:        string(q.Type),
			Position:    q.Position,
			Frequencies: q.Frequencies,
			Values:      q.Values,
		})
	}
	return resp
}

type Store interface {
	Compute(ctx context.Context, surveyID uuid.UUID) (Report, error)
	Individual(ctx context.Context, surveyID uuid.UUID, email string) ([]IndividualAnswer, error)
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
		tracer:        otel.Tracer("report/handler"),
		validator:     validator,
		problemWriter: problemWriter,
		store:         store,
	}
}

func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "GetHandler")
	defer span.End()
	logger := logutil.WithContext(traceCtx, h.logger)

	surveyID, err := handlerutil.ParseUUID(r.PathValue("surveyId"))
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	computed, err := h.store.Compute(traceCtx, surveyID)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, ToResponse(computed))
}

func (h *Handler) GetMineHandler(w http.ResponseWriter, r *http.Request) {
	traceCtx, span := h.tracer.Start(r.Context(), "GetMineHandler")
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

	answers, err := h.store.Individual(traceCtx, surveyID, currentUser.Email)
	if err != nil {
		h.problemWriter.WriteError(traceCtx, w, err, logger)
		return
	}

	resp := IndividualResponse{
		SurveyID: surveyID.String(),
		Answers:  make([]IndividualEntry, 0, len(answers)),
	}
	for _, answer := range answers {
		resp.Answers = append(resp.Answers, IndividualEntry{
			Prompt: answer.Prompt,
			Value:  answer.Value,
		})
	}

	handlerutil.WriteJSONResponse(w, http.StatusOK, resp)
}
