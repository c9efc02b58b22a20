package export

import (
	"context"
	"testing"
	"time"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/response"
	"github.com/Barathraj2387/Survey-App/internal/survey"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

type mockSurveyStore struct {
	mock.Mock
}

func (m *mockSurveyStore) GetByID(ctx context.Context, id uuid.UUID) (survey.Survey, error) {
	args := m.Called(ctx, id)
	row, _ := args.Get(0).(survey.Survey)
	return row, args.Error(1)
}

type mockQuestionStore struct {
	mock.Mock
}

func (m *mockQuestionStore) ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]question.Question, error) {
	args := m.Called(ctx, surveyID)
	rows, _ := args.Get(0).([]question.Question)
	return rows, args.Error(1)
}

type mockResponseStore struct {
	mock.Mock
}

func (m *mockResponseStore) ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]response.Response, error) {
	args := m.Called(ctx, surveyID)
	rows, _ := args.Get(0).([]response.Response)
	return rows, args.Error(1)
}

func (m *mockResponseStore) ListAnswersForSurvey(ctx context.Context, surveyID uuid.UUID) ([]response.Answer, error) {
	args := m.Called(ctx, surveyID)
	rows, _ := args.Get(0).([]response.Answer)
	return rows, args.Error(1)
}

func newTestService(t *testing.T) (*Service, *mockSurveyStore, *mockQuestionStore, *mockResponseStore) {
	t.Helper()

	ss := &mockSurveyStore{}
	qs := &mockQuestionStore{}
	rs := &mockResponseStore{}

	return &Service{
		logger:        zap.NewNop(),
		tracer:        noop.NewTracerProvider().Tracer("test"),
		surveyStore:   ss,
		questionStore: qs,
		responseStore: rs,
	}, ss, qs, rs
}

func TestService_Flatten(t *testing.T) {
	t.Parallel()

	t.Run("unknown survey", func(t *testing.T) {
		t.Parallel()

		service, ss, _, _ := newTestService(t)

		surveyID := uuid.New()
		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{}, internal.ErrSurveyNotFound)

		_, err := service.Flatten(context.Background(), surveyID)
		require.ErrorIs(t, err, internal.ErrSurveyNotFound)
	})

	t.Run("builds header and one row per response", func(t *testing.T) {
		t.Parallel()

		service, ss, qs, rs := newTestService(t)

		surveyID := uuid.New()
		ratingID := uuid.New()
		freeTextID := uuid.New()
		aliceResponseID := uuid.New()
		bobResponseID := uuid.New()

		submittedAt := time.Date(2026, 8, 14, 9, 30, 0, 0, time.UTC)

		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID, Title: "Pulse"}, nil)
		qs.On("ListBySurveyID", mock.Anything, surveyID).Return([]question.Question{
			{ID: ratingID, Prompt: "How satisfied are you?", Type: question.TypeRating, Position: 1},
			{ID: freeTextID, Prompt: "Anything else?", Type: question.TypeFreeText, Position: 2},
		}, nil)
		rs.On("ListBySurveyID", mock.Anything, surveyID).Return([]response.Response{
			{ID: aliceResponseID, SurveyID: surveyID, Email: "alice@example.com", Name: "Alice", SubmittedAt: pgtype.Timestamptz{Time: submittedAt, Valid: true}},
			{ID: bobResponseID, SurveyID: surveyID, Email: "bob@example.com", Name: "Bob", SubmittedAt: pgtype.Timestamptz{Time: submittedAt.Add(time.Hour), Valid: true}},
		}, nil)
		rs.On("ListAnswersForSurvey", mock.Anything, surveyID).Return([]response.Answer{
			{ResponseID: aliceResponseID, QuestionID: ratingID, Value: "4"},
			{ResponseID: aliceResponseID, QuestionID: freeTextID, Value: "More coffee"},
			{ResponseID: bobResponseID, QuestionID: ratingID, Value: "2"},
			// Bob never answered the free text question.
		}, nil)

		got, err := service.Flatten(context.Background(), surveyID)
		require.NoError(t, err)

		require.Equal(t, "Pulse", got.SurveyTitle)
		require.Equal(t, []string{"Name", "Email", "SubmittedAt", "How satisfied are you?", "Anything else?"}, got.Header)
		require.Equal(t, [][]string{
			{"Alice", "alice@example.com", "2026-08-14T09:30:00Z", "4", "More coffee"},
			{"Bob", "bob@example.com", "2026-08-14T10:30:00Z", "2", ""},
		}, got.Rows)
	})

	t.Run("survey without responses exports only the header", func(t *testing.T) {
		t.Parallel()

		service, ss, qs, rs := newTestService(t)

		surveyID := uuid.New()

		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID, Title: "Pulse"}, nil)
		qs.On("ListBySurveyID", mock.Anything, surveyID).Return([]question.Question{}, nil)
		rs.On("ListBySurveyID", mock.Anything, surveyID).Return([]response.Response{}, nil)
		rs.On("ListAnswersForSurvey", mock.Anything, surveyID).Return([]response.Answer{}, nil)

		got, err := service.Flatten(context.Background(), surveyID)
		require.NoError(t, err)
		require.Equal(t, []string{"Name", "Email", "SubmittedAt"}, got.Header)
		require.Empty(t, got.Rows)
	})
}
