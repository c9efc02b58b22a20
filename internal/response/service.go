package response

import (
	"context"
	"errors"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/invitation"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (Response, error)
	CreateAnswer(ctx context.Context, arg CreateAnswerParams) (Answer, error)
	Exists(ctx context.Context, arg ExistsParams) (bool, error)
	GetBySurveyAndEmail(ctx context.Context, arg GetBySurveyAndEmailParams) (Response, error)
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Response, error)
	ListAnswersByResponseID(ctx context.Context, responseID uuid.UUID) ([]Answer, error)
	ListAnswersForSurvey(ctx context.Context, surveyID uuid.UUID) ([]Answer, error)
	CountBySurveyID(ctx context.Context, surveyID uuid.UUID) (int64, error)
}

// DB is the pool surface the service needs: plain queries plus the ability to
// open a transaction for the submission write.
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// AnswerInput pairs a question with the submitted value.
type AnswerInput struct {
	QuestionID uuid.UUID
	Value      string
}

type Service struct {
	logger  *zap.Logger
	db      DB
	queries Querier
	tracer  trace.Tracer
}

func NewService(logger *zap.Logger, db DB) *Service {
	return &Service{
		logger:  logger,
		db:      db,
		queries: New(db),
		tracer:  otel.Tracer("response/service"),
	}
}

// CreateWithAnswers stores a response, its answer rows, and the invitation
// completion in one transaction. Either everything lands or nothing does.
func (s *Service) CreateWithAnswers(ctx context.Context, surveyID uuid.UUID, email, name string, answers []AnswerInput) (Response, error) {
	traceCtx, span := s.tracer.Start(ctx, "CreateWithAnswers")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	tx, err := s.db.Begin(traceCtx)
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "begin submission transaction")
		span.RecordError(err)
		return Response{}, err
	}
	defer func() {
		_ = tx.Rollback(traceCtx)
	}()

	qtx := New(tx)

	newResponse, err := qtx.Create(traceCtx, CreateParams{
		SurveyID: surveyID,
		Email:    email,
		Name:     name,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "create response")
		if errors.Is(err, databaseutil.ErrUniqueViolation) {
			return Response{}, internal.ErrDuplicateSubmission
		}
		span.RecordError(err)
		return Response{}, err
	}

	for _, answer := range answers {
		if _, err := qtx.CreateAnswer(traceCtx, CreateAnswerParams{
			ResponseID: newResponse.ID,
			QuestionID: answer.QuestionID,
			Value:      answer.Value,
		}); err != nil {
			err = databaseutil.WrapDBErrorWithKeyValue(err, "answers", "response_id", newResponse.ID.String(), logger, "create answer")
			span.RecordError(err)
			return Response{}, err
		}
	}

	if _, err := invitation.New(tx).MarkCompleted(traceCtx, invitation.MarkCompletedParams{
		SurveyID: surveyID,
		Email:    email,
	}); err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "invitations", "survey_id", surveyID.String(), logger, "mark invitation completed")
		span.RecordError(err)
		return Response{}, err
	}

	if err := tx.Commit(traceCtx); err != nil {
		err = databaseutil.WrapDBError(err, logger, "commit submission transaction")
		span.RecordError(err)
		return Response{}, err
	}

	logger.Info("Stored survey response",
		zap.String("survey_id", surveyID.String()),
		zap.String("response_id", newResponse.ID.String()),
		zap.Int("answers", len(answers)))

	return newResponse, nil
}

func (s *Service) ExistsBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (bool, error) {
	traceCtx, span := s.tracer.Start(ctx, "ExistsBySurveyAndEmail")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	exists, err := s.queries.Exists(traceCtx, ExistsParams{
		SurveyID: surveyID,
		Email:    email,
	})
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "check response existence")
		span.RecordError(err)
		return false, err
	}
	return exists, nil
}

func (s *Service) GetBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (Response, error) {
	traceCtx, span := s.tracer.Start(ctx, "GetBySurveyAndEmail")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	found, err := s.queries.GetBySurveyAndEmail(traceCtx, GetBySurveyAndEmailParams{
		SurveyID: surveyID,
		Email:    email,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Response{}, internal.ErrResponseNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "responses", "survey_id", surveyID.String(), logger, "get response")
		span.RecordError(err)
		return Response{}, err
	}
	return found, nil
}

func (s *Service) ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Response, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListBySurveyID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	responses, err := s.queries.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "responses", "survey_id", surveyID.String(), logger, "list responses by survey id")
		span.RecordError(err)
		return nil, err
	}
	return responses, nil
}

func (s *Service) ListAnswersByResponseID(ctx context.Context, responseID uuid.UUID) ([]Answer, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListAnswersByResponseID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	answers, err := s.queries.ListAnswersByResponseID(traceCtx, responseID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "answers", "response_id", responseID.String(), logger, "list answers by response id")
		span.RecordError(err)
		return nil, err
	}
	return answers, nil
}

// ListAnswersForSurvey returns every answer whose response belongs to the
// survey. The join is the trust boundary: an answer row is only counted when
// its parent response is part of the survey's response set.
func (s *Service) ListAnswersForSurvey(ctx context.Context, surveyID uuid.UUID) ([]Answer, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListAnswersForSurvey")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	answers, err := s.queries.ListAnswersForSurvey(traceCtx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "answers", "survey_id", surveyID.String(), logger, "list answers for survey")
		span.RecordError(err)
		return nil, err
	}
	return answers, nil
}

func (s *Service) CountBySurveyID(ctx context.Context, surveyID uuid.UUID) (int64, error) {
	traceCtx, span := s.tracer.Start(ctx, "CountBySurveyID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	count, err := s.queries.CountBySurveyID(traceCtx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "responses", "survey_id", surveyID.String(), logger, "count responses by survey id")
		span.RecordError(err)
		return 0, err
	}
	return count, nil
}
