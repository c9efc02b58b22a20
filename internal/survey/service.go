package survey

import (
	"context"
	"errors"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (Survey, error)
	GetByID(ctx context.Context, id uuid.UUID) (Survey, error)
	List(ctx context.Context) ([]Survey, error)
	SetStatus(ctx context.Context, arg SetStatusParams) (Survey, error)
}

type QuestionStore interface {
	CreateBatch(ctx context.Context, surveyID uuid.UUID, specs []question.Spec) ([]question.Question, error)
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]question.Question, error)
}

type Service struct {
	logger        *zap.Logger
	queries       Querier
	tracer        trace.Tracer
	questionStore QuestionStore
}

func NewService(logger *zap.Logger, db DBTX, questionStore QuestionStore) *Service {
	return &Service{
		logger:        logger,
		queries:       New(db),
		tracer:        otel.Tracer("survey/service"),
		questionStore: questionStore,
	}
}

// Create authors a survey together with its question list. A malformed
// question list fails the whole request before anything is stored.
func (s *Service) Create(ctx context.Context, title, description string, individualReport bool, createdBy string, specs []question.Spec) (Survey, []question.Question, error) {
	traceCtx, span := s.tracer.Start(ctx, "Create")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	if problems := question.ValidateSpecs(specs); len(problems) > 0 {
		err := internal.ErrQuestionSpecInvalid{Problems: problems}
		span.RecordError(err)
		return Survey{}, nil, err
	}

	dbParams := map[string]interface{}{
		"title":             title,
		"individual_report": individualReport,
		"created_by":        createdBy,
		"questions":         len(specs),
	}
	tracker := logutil.StartDBOperation(traceCtx, logger, "Create", dbParams)

	newSurvey, err := s.queries.Create(traceCtx, CreateParams{
		Title:            title,
		Description:      description,
		IndividualReport: individualReport,
		CreatedBy:        createdBy,
	})
	if err != nil {
		err = databaseutil.WrapDBErrorWithTracker(err, tracker, "create survey")
		span.RecordError(err)
		return Survey{}, nil, err
	}

	questions, err := s.questionStore.CreateBatch(traceCtx, newSurvey.ID, specs)
	if err != nil {
		span.RecordError(err)
		return Survey{}, nil, err
	}

	tracker.SuccessWrite(newSurvey.ID.String())

	return newSurvey, questions, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (Survey, error) {
	traceCtx, span := s.tracer.Start(ctx, "GetByID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	found, err := s.queries.GetByID(traceCtx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Survey{}, internal.ErrSurveyNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "surveys", "id", id.String(), logger, "get survey by id")
		span.RecordError(err)
		return Survey{}, err
	}
	return found, nil
}

// Exists reports survey existence through the error channel so handlers can
// gate follow-up work on a single call.
func (s *Service) Exists(ctx context.Context, id uuid.UUID) error {
	traceCtx, span := s.tracer.Start(ctx, "Exists")
	defer span.End()

	_, err := s.GetByID(traceCtx, id)
	return err
}

func (s *Service) List(ctx context.Context) ([]Survey, error) {
	traceCtx, span := s.tracer.Start(ctx, "List")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	surveys, err := s.queries.List(traceCtx)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list surveys")
		span.RecordError(err)
		return nil, err
	}
	return surveys, nil
}

// Publish moves a draft survey to published. The transition is one way and
// publishing an already published survey is a no-op.
func (s *Service) Publish(ctx context.Context, id uuid.UUID) (Survey, error) {
	traceCtx, span := s.tracer.Start(ctx, "Publish")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	current, err := s.GetByID(traceCtx, id)
	if err != nil {
		span.RecordError(err)
		return Survey{}, err
	}

	if current.Status == StatusPublished {
		return current, nil
	}

	published, err := s.queries.SetStatus(traceCtx, SetStatusParams{
		ID:     id,
		Status: StatusPublished,
	})
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "surveys", "id", id.String(), logger, "publish survey")
		span.RecordError(err)
		return Survey{}, err
	}

	logger.Info("Published survey", zap.String("survey_id", id.String()))

	return published, nil
}

func (s *Service) ListQuestions(ctx context.Context, surveyID uuid.UUID) ([]question.Question, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListQuestions")
	defer span.End()

	return s.questionStore.ListBySurveyID(traceCtx, surveyID)
}
