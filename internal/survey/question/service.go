package question

import (
	"context"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (Question, error)
	GetByID(ctx context.Context, id uuid.UUID) (Question, error)
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Question, error)
}

type Service struct {
	logger  *zap.Logger
	queries Querier
	tracer  trace.Tracer
}

func NewService(logger *zap.Logger, db DBTX) *Service {
	return &Service{
		logger:  logger,
		queries: New(db),
		tracer:  otel.Tracer("question/service"),
	}
}

// CreateBatch persists an authored question list for a survey, assigning
// 1-based positions from input order. Callers validate the specs first.
func (s *Service) CreateBatch(ctx context.Context, surveyID uuid.UUID, specs []Spec) ([]Question, error) {
	traceCtx, span := s.tracer.Start(ctx, "CreateBatch")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	questions := make([]Question, 0, len(specs))
	for i, spec := range specs {
		questionType := Type(spec.Type)

		created, err := s.queries.Create(traceCtx, CreateParams{
			SurveyID: surveyID,
			Prompt:   spec.Prompt,
			Type:     questionType,
			Options:  CleanOptions(questionType, spec.Options),
			Position: int32(i + 1),
		})
		if err != nil {
			err = databaseutil.WrapDBErrorWithKeyValue(err, "questions", "survey_id", surveyID.String(), logger, "create question")
			span.RecordError(err)
			return nil, err
		}
		questions = append(questions, created)
	}

	return questions, nil
}

func (s *Service) ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Question, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListBySurveyID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	questions, err := s.queries.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "questions", "survey_id", surveyID.String(), logger, "list questions by survey id")
		span.RecordError(err)
		return nil, err
	}

	return questions, nil
}
