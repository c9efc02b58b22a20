package report

import (
	"context"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/invitation"
	"github.com/Barathraj2387/Survey-App/internal/response"
	"github.com/Barathraj2387/Survey-App/internal/survey"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"

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
	Participation(ctx context.Context, surveyID uuid.UUID) (invitation.Participation, error)
}

type ResponseStore interface {
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]response.Response, error)
	ListAnswersForSurvey(ctx context.Context, surveyID uuid.UUID) ([]response.Answer, error)
	GetBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (response.Response, error)
	ListAnswersByResponseID(ctx context.Context, responseID uuid.UUID) ([]response.Answer, error)
}

// QuestionReport aggregates one question. Closed types fill Frequencies,
// free text fills Values in storage order.
type QuestionReport struct {
	QuestionID  uuid.UUID
	Prompt      string
	Type        question.Type
	Position    int32
	Frequencies map[string]int
	Values      []string
}

type Report struct {
	SurveyID      uuid.UUID
	ResponseCount int
	Participation invitation.Participation
	Questions     []QuestionReport
}

// IndividualAnswer is one prompt/value pair of a respondent's own report.
type IndividualAnswer struct {
	Prompt string
	Value  string
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
		tracer:          otel.Tracer("report/service"),
		surveyStore:     surveyStore,
		questionStore:   questionStore,
		invitationStore: invitationStore,
		responseStore:   responseStore,
	}
}

// Compute aggregates a survey: total response count, participation over the
// roster, and one entry per question in position order. Only answers whose
// response belongs to the survey are counted.
func (s *Service) Compute(ctx context.Context, surveyID uuid.UUID) (Report, error) {
	traceCtx, span := s.tracer.Start(ctx, "Compute")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	if _, err := s.surveyStore.GetByID(traceCtx, surveyID); err != nil {
		span.RecordError(err)
		return Report{}, err
	}

	responses, err := s.responseStore.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Report{}, err
	}

	answers, err := s.responseStore.ListAnswersForSurvey(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Report{}, err
	}

	questions, err := s.questionStore.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Report{}, err
	}

	participation, err := s.invitationStore.Participation(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Report{}, err
	}

	byQuestion := make(map[uuid.UUID][]string, len(questions))
	for _, answer := range answers {
		byQuestion[answer.QuestionID] = append(byQuestion[answer.QuestionID], answer.Value)
	}

	result := Report{
		SurveyID:      surveyID,
		ResponseCount: len(responses),
		Participation: participation,
		Questions:     make([]QuestionReport, 0, len(questions)),
	}

	for _, q := range questions {
		entry := QuestionReport{
			QuestionID: q.ID,
			Prompt:     q.Prompt,
			Type:       q.Type,
			Position:   q.Position,
		}

		if q.Type.Closed() {
			entry.Frequencies = make(map[string]int)
			for _, value := range byQuestion[q.ID] {
				entry.Frequencies[value]++
			}
		} else {
			entry.Values = append([]string{}, byQuestion[q.ID]...)
		}

		result.Questions = append(result.Questions, entry)
	}

	logger.Debug("Computed survey report",
		zap.String("survey_id", surveyID.String()),
		zap.Int("responses", result.ResponseCount),
		zap.Int("questions", len(result.Questions)))

	return result, nil
}

// Individual returns a respondent's own prompt/value pairs, gated on the
// survey's individual report flag.
func (s *Service) Individual(ctx context.Context, surveyID uuid.UUID, email string) ([]IndividualAnswer, error) {
	traceCtx, span := s.tracer.Start(ctx, "Individual")
	defer span.End()

	found, err := s.surveyStore.GetByID(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if !found.IndividualReport {
		return nil, internal.ErrIndividualReportDisabled
	}

	own, err := s.responseStore.GetBySurveyAndEmail(traceCtx, surveyID, email)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	answers, err := s.responseStore.ListAnswersByResponseID(traceCtx, own.ID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	questions, err := s.questionStore.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	byQuestion := make(map[uuid.UUID]string, len(answers))
	for _, answer := range answers {
		byQuestion[answer.QuestionID] = answer.Value
	}

	result := make([]IndividualAnswer, 0, len(questions))
	for _, q := range questions {
		result = append(result, IndividualAnswer{
			Prompt: q.Prompt,
			Value:  byQuestion[q.ID],
		})
	}

	return result, nil
}
