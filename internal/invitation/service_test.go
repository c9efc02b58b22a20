package invitation

import (
	"context"
	"testing"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

type mockQuerier struct {
	mock.Mock
}

func (m *mockQuerier) Create(ctx context.Context, arg CreateParams) (Invitation, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Invitation)
	return row, args.Error(1)
}

func (m *mockQuerier) Exists(ctx context.Context, arg ExistsParams) (bool, error) {
	args := m.Called(ctx, arg)
	return args.Bool(0), args.Error(1)
}

func (m *mockQuerier) GetBySurveyAndEmail(ctx context.Context, arg GetBySurveyAndEmailParams) (Invitation, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Invitation)
	return row, args.Error(1)
}

func (m *mockQuerier) ListByEmail(ctx context.Context, email string) ([]Invitation, error) {
	args := m.Called(ctx, email)
	rows, _ := args.Get(0).([]Invitation)
	return rows, args.Error(1)
}

func (m *mockQuerier) ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Invitation, error) {
	args := m.Called(ctx, surveyID)
	rows, _ := args.Get(0).([]Invitation)
	return rows, args.Error(1)
}

func (m *mockQuerier) MarkCompleted(ctx context.Context, arg MarkCompletedParams) (Invitation, error) {
	args := m.Called(ctx, arg)
	row, _ := args.Get(0).(Invitation)
	return row, args.Error(1)
}

func (m *mockQuerier) CountBySurveyID(ctx context.Context, surveyID uuid.UUID) (CountBySurveyIDRow, error) {
	args := m.Called(ctx, surveyID)
	row, _ := args.Get(0).(CountBySurveyIDRow)
	return row, args.Error(1)
}

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) FindOrCreateEmployee(ctx context.Context, email, name string) (user.User, error) {
	args := m.Called(ctx, email, name)
	row, _ := args.Get(0).(user.User)
	return row, args.Error(1)
}

func newTestService(t *testing.T) (*Service, *mockQuerier, *mockUserStore) {
	t.Helper()

	q := &mockQuerier{}
	us := &mockUserStore{}

	return &Service{
		logger:    zap.NewNop(),
		queries:   q,
		tracer:    noop.NewTracerProvider().Tracer("test"),
		userStore: us,
	}, q, us
}

func TestParseRecipients(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		raw      string
		expected []Recipient
	}

	cases := []testCase{
		{
			name:     "empty input",
			raw:      "",
			expected: nil,
		},
		{
			name: "email only defaults name to local part",
			raw:  "alice@example.com",
			expected: []Recipient{
				{Email: "alice@example.com", Name: "alice"},
			},
		},
		{
			name: "email with name",
			raw:  "bob@example.com, Bob Lee",
			expected: []Recipient{
				{Email: "bob@example.com", Name: "Bob Lee"},
			},
		},
		{
			name: "mixed lines with blanks and junk",
			raw:  "alice@example.com\n\nnot-an-email\nBOB@Example.com,Bob\n  ",
			expected: []Recipient{
				{Email: "alice@example.com", Name: "alice"},
				{Email: "bob@example.com", Name: "Bob"},
			},
		},
		{
			name: "name blank after comma falls back to local part",
			raw:  "carol@example.com,",
			expected: []Recipient{
				{Email: "carol@example.com", Name: "carol"},
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, c.expected, ParseRecipients(c.raw))
		})
	}
}

func TestService_Invite(t *testing.T) {
	t.Parallel()

	t.Run("no usable recipients", func(t *testing.T) {
		t.Parallel()

		service, _, _ := newTestService(t)

		_, err := service.Invite(context.Background(), uuid.New(), "not-an-email\n\n")
		require.ErrorIs(t, err, internal.ErrNoRecipients)
	})

	t.Run("creates users and skips already invited addresses", func(t *testing.T) {
		t.Parallel()

		service, q, us := newTestService(t)

		surveyID := uuid.New()

		us.On("FindOrCreateEmployee", mock.Anything, "alice@example.com", "alice").Return(user.User{Email: "alice@example.com"}, nil)
		us.On("FindOrCreateEmployee", mock.Anything, "bob@example.com", "Bob").Return(user.User{Email: "bob@example.com"}, nil)

		q.On("Exists", mock.Anything, ExistsParams{SurveyID: surveyID, Email: "alice@example.com"}).Return(true, nil)
		q.On("Exists", mock.Anything, ExistsParams{SurveyID: surveyID, Email: "bob@example.com"}).Return(false, nil)

		created := Invitation{ID: uuid.New(), SurveyID: surveyID, Email: "bob@example.com", Name: "Bob", Status: StatusPending}
		q.On("Create", mock.Anything, CreateParams{SurveyID: surveyID, Email: "bob@example.com", Name: "Bob"}).Return(created, nil)

		got, err := service.Invite(context.Background(), surveyID, "alice@example.com\nbob@example.com,Bob")
		require.NoError(t, err)
		require.Equal(t, []Invitation{created}, got)

		q.AssertExpectations(t)
		us.AssertExpectations(t)
	})

	t.Run("admin domain addresses use the employee creation path", func(t *testing.T) {
		t.Parallel()

		service, q, us := newTestService(t)

		surveyID := uuid.New()

		us.On("FindOrCreateEmployee", mock.Anything, "hr@admin.local", "hr").Return(user.User{Email: "hr@admin.local"}, nil)
		q.On("Exists", mock.Anything, ExistsParams{SurveyID: surveyID, Email: "hr@admin.local"}).Return(false, nil)
		q.On("Create", mock.Anything, CreateParams{SurveyID: surveyID, Email: "hr@admin.local", Name: "hr"}).
			Return(Invitation{SurveyID: surveyID, Email: "hr@admin.local", Status: StatusPending}, nil)

		_, err := service.Invite(context.Background(), surveyID, "hr@admin.local")
		require.NoError(t, err)

		us.AssertCalled(t, "FindOrCreateEmployee", mock.Anything, "hr@admin.local", "hr")
	})
}

func TestService_Participation(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name      string
		completed int64
		total     int64
		expected  Participation
	}

	cases := []testCase{
		{
			name:     "no invitations",
			expected: Participation{},
		},
		{
			name:      "rounds to nearest percent",
			completed: 1,
			total:     3,
			expected:  Participation{Completed: 1, Total: 3, Percent: 33},
		},
		{
			name:      "rounds up",
			completed: 2,
			total:     3,
			expected:  Participation{Completed: 2, Total: 3, Percent: 67},
		},
		{
			name:      "full participation",
			completed: 5,
			total:     5,
			expected:  Participation{Completed: 5, Total: 5, Percent: 100},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			service, q, _ := newTestService(t)

			surveyID := uuid.New()
			q.On("CountBySurveyID", mock.Anything, surveyID).
				Return(CountBySurveyIDRow{Completed: c.completed, Total: c.total}, nil)

			got, err := service.Participation(context.Background(), surveyID)
			require.NoError(t, err)
			require.Equal(t, c.expected, got)
		})
	}
}
