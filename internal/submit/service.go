package submit

import (
	"context"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/invitation"
	"github.com/Barathraj2387/Survey-App/internal/response"
	"github.com/Barathraj2387/Survey-App/internal/survey"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"
	"github.com/Barathraj2387/Survey-App/internal/user"

	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type SurveyStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (survey.Survey, error)
}

type QuestionStore interface {
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]question.Question, error)
}

type InvitationStore interface {
	GetBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (invitation.Invitation, error)
}

type ResponseStore interface {
	ExistsBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (bool, error)
	CreateWithAnswers(ctx context.Context, surveyID uuid.UUID, email, name string, answers []response.AnswerInput) (response.Response, error)
}

// Result reports the outcome of a submission attempt. AdminNoOp marks the
// admin browse-through case, which succeeds without writing anything.
type Result struct {
	AdminNoOp bool
	Response  response.Response
}

type Service struct {
	logger *zap.Logger
	tracer trace.Tracer

	surveyStore     SurveyStore
	questionStore   QuestionStore
	invitationStore InvitationStore
	responseStore   ResponseStore
}

func NewService(
	logger *zap.Logger,
	surveyStore SurveyStore,
	questionStore QuestionStore,
	invitationStore InvitationStore,
	responseStore ResponseStore,
) *Service {
	return &Service{
		logger:          logger,
		tracer:          otel.Tracer("submit/service"),
		surveyStore:     surveyStore,
		questionStore:   questionStore,
		invitationStore: invitationStore,
		responseStore:   responseStore,
	}
}

// Submit runs the intake rules for one (survey, user) pair:
// admins pass through without writing, uninvited users are rejected, a second
// submission is rejected without touching the first, and an accepted
// submission stores the response with exactly one answer per survey question
// and completes the invitation in a single transaction.
func (s *Service) Submit(ctx context.Context, surveyID uuid.UUID, submitter user.User, values map[string]string) (Result, error) {
	traceCtx, span := s.tracer.Start(ctx, "Submit")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	if _, err := s.surveyStore.GetByID(traceCtx, surveyID); err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	if submitter.IsAdmin {
		logger.Debug("Admin submission is a no-op", zap.String("survey_id", surveyID.String()))
		return Result{AdminNoOp: true}, nil
	}

	if _, err := s.invitationStore.GetBySurveyAndEmail(traceCtx, surveyID, submitter.Email); err != nil {
		span.RecordError(err)
		return Result{}, internal.ErrNotInvited
	}

	alreadySubmitted, err := s.responseStore.ExistsBySurveyAndEmail(traceCtx, surveyID, submitter.Email)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}
	if alreadySubmitted {
		return Result{}, internal.ErrDuplicateSubmission
	}

	questions, err := s.questionStore.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	// One answer row per question, a missing field becomes an empty value.
	answers := make([]response.AnswerInput, 0, len(questions))
	for _, q := range questions {
		answers = append(answers, response.AnswerInput{
			QuestionID: q.ID,
			Value:      values[q.ID.String()],
		})
	}

	stored, err := s.responseStore.CreateWithAnswers(traceCtx, surveyID, submitter.Email, submitter.Name, answers)
	if err != nil {
		span.RecordError(err)
		return Result{}, err
	}

	logger.Info("Accepted survey submission",
		zap.String("survey_id", surveyID.String()),
		zap.String("email", submitter.Email),
		zap.Int("answers", len(answers)))

	return Result{Response: stored}, nil
}
