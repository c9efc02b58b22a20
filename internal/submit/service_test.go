package submit

import (
	"context"
	"testing"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/invitation"
	"github.com/Barathraj2387/Survey-App/internal/response"
	"github.com/Barathraj2387/Survey-App/internal/survey"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"
	"github.com/Barathraj2387/Survey-App/internal/user"

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

func (m *mockInvitationStore) GetBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (invitation.Invitation, error) {
	args := m.Called(ctx, surveyID, email)
	row, _ := args.Get(0).(invitation.Invitation)
	return row, args.Error(1)
}

type mockResponseStore struct {
	mock.Mock
}

func (m *mockResponseStore) ExistsBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (bool, error) {
	args := m.Called(ctx, surveyID, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockResponseStore) CreateWithAnswers(ctx context.Context, surveyID uuid.UUID, email, name string, answers []response.AnswerInput) (response.Response, error) {
	args := m.Called(ctx, surveyID, email, name, answers)
	row, _ := args.Get(0).(response.Response)
	return row, args.Error(1)
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

func TestService_Submit(t *testing.T) {
	t.Parallel()

	employee := user.User{ID: uuid.New(), Email: "alice@example.com", Name: "Alice"}
	admin := user.User{ID: uuid.New(), Email: "hr@admin.local", Name: "HR", IsAdmin: true}

	t.Run("unknown survey", func(t *testing.T) {
		t.Parallel()

		service, ss, _, _, _ := newTestService(t)

		surveyID := uuid.New()
		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{}, internal.ErrSurveyNotFound)

		_, err := service.Submit(context.Background(), surveyID, employee, nil)
		require.ErrorIs(t, err, internal.ErrSurveyNotFound)
	})

	t.Run("admin submission is a no-op", func(t *testing.T) {
		t.Parallel()

		service, ss, _, is, rs := newTestService(t)

		surveyID := uuid.New()
		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID}, nil)

		got, err := service.Submit(context.Background(), surveyID, admin, map[string]string{"any": "thing"})
		require.NoError(t, err)
		require.True(t, got.AdminNoOp)

		is.AssertNotCalled(t, "GetBySurveyAndEmail", mock.Anything, mock.Anything, mock.Anything)
		rs.AssertNotCalled(t, "CreateWithAnswers", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("uninvited user is rejected", func(t *testing.T) {
		t.Parallel()

		service, ss, _, is, _ := newTestService(t)

		surveyID := uuid.New()
		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID}, nil)
		is.On("GetBySurveyAndEmail", mock.Anything, surveyID, employee.Email).
			Return(invitation.Invitation{}, internal.ErrInvitationNotFound)

		_, err := service.Submit(context.Background(), surveyID, employee, nil)
		require.ErrorIs(t, err, internal.ErrNotInvited)
	})

	t.Run("second submission is rejected", func(t *testing.T) {
		t.Parallel()

		service, ss, _, is, rs := newTestService(t)

		surveyID := uuid.New()
		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID}, nil)
		is.On("GetBySurveyAndEmail", mock.Anything, surveyID, employee.Email).
			Return(invitation.Invitation{SurveyID: surveyID, Email: employee.Email}, nil)
		rs.On("ExistsBySurveyAndEmail", mock.Anything, surveyID, employee.Email).Return(true, nil)

		_, err := service.Submit(context.Background(), surveyID, employee, nil)
		require.ErrorIs(t, err, internal.ErrDuplicateSubmission)

		rs.AssertNotCalled(t, "CreateWithAnswers", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("stores one answer per question with missing values blank", func(t *testing.T) {
		t.Parallel()

		service, ss, qs, is, rs := newTestService(t)

		surveyID := uuid.New()
		ratingID := uuid.New()
		freeTextID := uuid.New()

		ss.On("GetByID", mock.Anything, surveyID).Return(survey.Survey{ID: surveyID}, nil)
		is.On("GetBySurveyAndEmail", mock.Anything, surveyID, employee.Email).
			Return(invitation.Invitation{SurveyID: surveyID, Email: employee.Email}, nil)
		rs.On("ExistsBySurveyAndEmail", mock.Anything, surveyID, employee.Email).Return(false, nil)
		qs.On("ListBySurveyID", mock.Anything, surveyID).Return([]question.Question{
			{ID: ratingID, SurveyID: surveyID, Prompt: "How satisfied are you?", Type: question.TypeRating, Position: 1},
			{ID: freeTextID, SurveyID: surveyID, Prompt: "Anything else?", Type: question.TypeFreeText, Position: 2},
		}, nil)

		expectedAnswers := []response.AnswerInput{
			{QuestionID: ratingID, Value: "4"},
			{QuestionID: freeTextID, Value: ""},
		}
		stored := response.Response{ID: uuid.New(), SurveyID: surveyID, Email: employee.Email, Name: employee.Name}
		rs.On("CreateWithAnswers", mock.Anything, surveyID, employee.Email, employee.Name, expectedAnswers).
			Return(stored, nil)

		got, err := service.Submit(context.Background(), surveyID, employee, map[string]string{
			ratingID.String(): "4",
			"ignored-key":     "junk",
		})
		require.NoError(t, err)
		require.False(t, got.AdminNoOp)
		require.Equal(t, stored, got.Response)

		rs.AssertExpectations(t)
	})
}
