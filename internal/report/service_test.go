package report

import (
	"context"
	"testing"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/invitation"
	"github.com/Barathraj2387/Survey-App/internal/response"
	"github.com/Barathraj2387/Survey-App/internal/survey"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"

	"github.com/google/uuid"
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

type mockInvitationStore struct {
	mock.Mock
}

func (m *mockInvitationStore) Participation(ctx context.Context, surveyID uuid.UUID) (invitation.Participation, error) {
	args := m.Called(ctx, surveyID)
	row, _ := args.Get(0).(invitation.Participation)
	return row, args.Error(1)
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

func (m *mockResponseStore) GetBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (response.Response, error) {
	args := m.Called(ctx, surveyID, email)
	row, _ := args.Get(0).(response.Response)
	return row, args.Error(1)
}

func (m *mockResponseStore) ListAnswersByResponseID(ctx context.Context, responseID uuid.UUID) ([]response.Answer, error) {
	args := m.Called(ctx, responseID)
	rows, _ := args.Get(0).([]response.Answer)
	return rows, args.Error(1)
}

func newTestService(t *testing.T) (*Service, *mockSurveyStore, *mockQuestionStore, *mockInvitationStore, *mockResponseStore) {
	t.Helper()

	ss := &mockSurveyStore{}
	qs := &mockQuestionStore{}
	is := &mockInvitationStore{}
	rs := &mockResponseStore{}

	return &Service{
		logger:          zap.NewNop(),
		tracer:          noop.NewTracerProvider().Tracer("test"),
		surveyStore:     ss,
		questionStore:   qs,
		invitationStore: is,
		responseStore:   rs,
	}, ss, qs, is, rs
}

func TestService_Compute(t *testing.T) {
	t.Parallel()

	t.Run("unknown survey", func(t *testing.T) {
		t.Parallel()

		service, ss, _, _, _ := newTestService(t)

		surveyID := uuid.New()
		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{}, internal.ErrSurveyNotFound)

		_, err := service.Compute(context.Background(), surveyID)
		require.ErrorIs(t, err, internal.ErrSurveyNotFound)
	})

	t.Run("aggregates closed questions and keeps free text in order", func(t *testing.T) {
		t.Parallel()

		service, ss, qs, is, rs := newTestService(t)

		surveyID := uuid.New()
		ratingID := uuid.New()
		dropdownID := uuid.New()
		freeTextID := uuid.New()

		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID}, nil)
		rs.On("ListBySurveyID", mock.Anything, surveyID).Return([]response.Response{
			{ID: uuid.New(), SurveyID: surveyID, Email: "alice@example.com"},
			{ID: uuid.New(), SurveyID: surveyID, Email: "bob@example.com"},
			{ID: uuid.New(), SurveyID: surveyID, Email: "carol@example.com"},
		}, nil)
		rs.On("ListAnswersForSurvey", mock.Anything, surveyID).Return([]response.Answer{
			{QuestionID: ratingID, Value: "4"},
			{QuestionID: dropdownID, Value: "Platform"},
			{QuestionID: freeTextID, Value: "More coffee"},
			{QuestionID: ratingID, Value: "4"},
			{QuestionID: dropdownID, Value: "Product"},
			{QuestionID: freeTextID, Value: ""},
			{QuestionID: ratingID, Value: "2"},
			{QuestionID: dropdownID, Value: "Platform"},
			{QuestionID: freeTextID, Value: "Standing desks"},
		}, nil)
		qs.On("ListBySurveyID", mock.Anything, surveyID).Return([]question.Question{
			{ID: ratingID, Prompt: "How satisfied are you?", Type: question.TypeRating, Position: 1},
			{ID: dropdownID, Prompt: "Which team?", Type: question.TypeDropdown, Position: 2},
			{ID: freeTextID, Prompt: "Anything else?", Type: question.TypeFreeText, Position: 3},
		}, nil)
		is.On("Participation", mock.Anything, surveyID).
			Return(invitation.Participation{Completed: 3, Total: 4, Percent: 75}, nil)

		got, err := service.Compute(context.Background(), surveyID)
		require.NoError(t, err)

		require.Equal(t, 3, got.ResponseCount)
		require.Equal(t, invitation.Participation{Completed: 3, Total: 4, Percent: 75}, got.Participation)
		require.Len(t, got.Questions, 3)

		require.Equal(t, map[string]int{"4": 2, "2": 1}, got.Questions[0].Frequencies)
		require.Nil(t, got.Questions[0].Values)

		require.Equal(t, map[string]int{"Platform": 2, "Product": 1}, got.Questions[1].Frequencies)

		require.Nil(t, got.Questions[2].Frequencies)
		require.Equal(t, []string{"More coffee", "", "Standing desks"}, got.Questions[2].Values)
	})

	t.Run("survey without responses reports empty tables", func(t *testing.T) {
		t.Parallel()

		service, ss, qs, is, rs := newTestService(t)

		surveyID := uuid.New()
		ratingID := uuid.New()

		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID}, nil)
		rs.On("ListBySurveyID", mock.Anything, surveyID).Return([]response.Response{}, nil)
		rs.On("ListAnswersForSurvey", mock.Anything, surveyID).Return([]response.Answer{}, nil)
		qs.On("ListBySurveyID", mock.Anything, surveyID).Return([]question.Question{
			{ID: ratingID, Prompt: "How satisfied are you?", Type: question.TypeRating, Position: 1},
		}, nil)
		is.On("Participation", mock.Anything, surveyID).Return(invitation.Participation{}, nil)

		got, err := service.Compute(context.Background(), surveyID)
		require.NoError(t, err)
		require.Zero(t, got.ResponseCount)
		require.Len(t, got.Questions, 1)
		require.Empty(t, got.Questions[0].Frequencies)
	})
}

func TestService_Individual(t *testing.T) {
	t.Parallel()

	t.Run("disabled by survey flag", func(t *testing.T) {
		t.Parallel()

		service, ss, _, _, _ := newTestService(t)

		surveyID := uuid.New()
		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID, IndividualReport: false}, nil)

		_, err := service.Individual(context.Background(), surveyID, "alice@example.com")
		require.ErrorIs(t, err, internal.ErrIndividualReportDisabled)
	})

	t.Run("no own response", func(t *testing.T) {
		t.Parallel()

		service, ss, _, _, rs := newTestService(t)

		surveyID := uuid.New()
		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID, IndividualReport: true}, nil)
		rs.On("GetBySurveyAndEmail", mock.Anything, surveyID, "alice@example.com").
			Return(response.Response{}, internal.ErrResponseNotFound)

		_, err := service.Individual(context.Background(), surveyID, "alice@example.com")
		require.ErrorIs(t, err, internal.ErrResponseNotFound)
	})

	t.Run("returns prompt and value pairs in question order", func(t *testing.T) {
		t.Parallel()

		service, ss, qs, _, rs := newTestService(t)

		surveyID := uuid.New()
		responseID := uuid.New()
		ratingID := uuid.New()
		freeTextID := uuid.New()

		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID, IndividualReport: true}, nil)
		rs.On("GetBySurveyAndEmail", mock.Anything, surveyID, "alice@example.com").
			Return(response.Response{ID: responseID, SurveyID: surveyID, Email: "alice@example.com"}, nil)
		rs.On("ListAnswersByResponseID", mock.Anything, responseID).Return([]response.Answer{
			{QuestionID: freeTextID, Value: "More coffee"},
			{QuestionID: ratingID, Value: "4"},
		}, nil)
		qs.On("ListBySurveyID", mock.Anything, surveyID).Return([]question.Question{
			{ID: ratingID, Prompt: "How satisfied are you?", Type: question.TypeRating, Position: 1},
			{ID: freeTextID, Prompt: "Anything else?", Type: question.TypeFreeText, Position: 2},
		}, nil)

		got, err := service.Individual(context.Background(), surveyID, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, []IndividualAnswer{
			{Prompt: "How satisfied are you?", Value: "4"},
			{Prompt: "Anything else?", Value: "More coffee"},
		}, got)
	})
}
