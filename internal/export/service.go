package export

import (
	"context"
	"time"

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

type ResponseStore interface {
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]response.Response, error)
	ListAnswersForSurvey(ctx context.Context, surveyID uuid.UUID) ([]response.Answer, error)
}

// Table is the format-agnostic flattening of a survey's responses: a header
// row followed by one row per response. Every encoder consumes this shape.
type Table struct {
	SurveyTitle string
	Header      []string
	Rows        [][]string
}

type Service struct {
	logger *zap.Logger
	tracer trace.Tracer

	surveyStore   SurveyStore
	questionStore QuestionStore
	responseStore ResponseStore
}

func NewService(logger *zap.Logger, surveyStore SurveyStore, questionStore QuestionStore, responseStore ResponseStore) *Service {
	return &Service{
		logger:        logger,
		tracer:        otel.Tracer("export/service"),
		surveyStore:   surveyStore,
		questionStore: questionStore,
		responseStore: responseStore,
	}
}

// Flatten builds the export table: fixed Name, Email, SubmittedAt columns
// followed by one column per question prompt in position order. A response
// without an answer row for a question exports an empty cell.
func (s *Service) Flatten(ctx context.Context, surveyID uuid.UUID) (Table, error) {
	traceCtx, span := s.tracer.Start(ctx, "Flatten")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	found, err := s.surveyStore.GetByID(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Table{}, err
	}

	questions, err := s.questionStore.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Table{}, err
	}

	responses, err := s.responseStore.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Table{}, err
	}

	answers, err := s.responseStore.ListAnswersForSurvey(traceCtx, surveyID)
	if err != nil {
		span.RecordError(err)
		return Table{}, err
	}

	type answerKey struct {
		responseID uuid.UUID
		questionID uuid.UUID
	}
	byKey := make(map[answerKey]string, len(answers))
	for _, answer := range answers {
		byKey[answerKey{answer.ResponseID, answer.QuestionID}] = answer.Value
	}

	header := make([]string, 0, 3+len(questions))
	header = append(header, "Name", "Email", "SubmittedAt")
	for _, q := range questions {
		header = append(header, q.Prompt)
	}

	rows := make([][]string, 0, len(responses))
	for _, resp := range responses {
		row := make([]string, 0, len(header))
		row = append(row, resp.Name, resp.Email, resp.SubmittedAt.Time.Format(time.RFC3339))
		for _, q := range questions {
			row = append(row, byKey[answerKey{resp.ID, q.ID}])
		}
		rows = append(rows, row)
	}

	logger.Debug("Flattened survey for export",
		zap.String("survey_id", surveyID.String()),
		zap.Int("rows", len(rows)),
		zap.Int("columns", len(header)))

	return Table{
		SurveyTitle: found.Title,
		Header:      header,
		Rows:        rows,
	}, nil
}
