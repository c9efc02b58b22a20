package invitation

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/Barathraj2387/Survey-App/internal"
	"github.com/Barathraj2387/Survey-App/internal/user"

	databaseutil "github.com/NYCU-SDC/summer/pkg/database"
	logutil "github.com/NYCU-SDC/summer/pkg/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type Querier interface {
	Create(ctx context.Context, arg CreateParams) (Invitation, error)
	Exists(ctx context.Context, arg ExistsParams) (bool, error)
	GetBySurveyAndEmail(ctx context.Context, arg GetBySurveyAndEmailParams) (Invitation, error)
	ListByEmail(ctx context.Context, email string) ([]Invitation, error)
	ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Invitation, error)
	MarkCompleted(ctx context.Context, arg MarkCompletedParams) (Invitation, error)
	CountBySurveyID(ctx context.Context, surveyID uuid.UUID) (CountBySurveyIDRow, error)
}

type UserStore interface {
	FindOrCreateEmployee(ctx context.Context, email, name string) (user.User, error)
}

// Participation summarizes how far a survey roster has come.
type Participation struct {
	Completed int
	Total     int
	Percent   int
}

// Recipient is one parsed line of an invite request.
type Recipient struct {
	Email string
	Name  string
}

type Service struct {
	logger    *zap.Logger
	queries   Querier
	tracer    trace.Tracer
	userStore UserStore
}

func NewService(logger *zap.Logger, db DBTX, userStore UserStore) *Service {
	return &Service{
		logger:    logger,
		queries:   New(db),
		tracer:    otel.Tracer("invitation/service"),
		userStore: userStore,
	}
}

// ParseRecipients parses raw textarea input where every non-blank line is
// "email" or "email,name". Lines without an @ are dropped, the name defaults
// to the local part of the email.
func ParseRecipients(raw string) []Recipient {
	var recipients []Recipient
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		email := line
		name := ""
		if idx := strings.Index(line, ","); idx >= 0 {
			email = strings.TrimSpace(line[:idx])
			name = strings.TrimSpace(line[idx+1:])
		}

		email = user.NormalizeEmail(email)
		if !strings.Contains(email, "@") {
			continue
		}
		if name == "" {
			name = email[:strings.Index(email, "@")]
		}

		recipients = append(recipients, Recipient{Email: email, Name: name})
	}
	return recipients
}

// Invite adds the parsed recipients to a survey roster. Inviting is additive
// and idempotent: an existing (survey, email) pair keeps its status and name.
func (s *Service) Invite(ctx context.Context, surveyID uuid.UUID, raw string) ([]Invitation, error) {
	traceCtx, span := s.tracer.Start(ctx, "Invite")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	recipients := ParseRecipients(raw)
	if len(recipients) == 0 {
		return nil, internal.ErrNoRecipients
	}

	created := make([]Invitation, 0, len(recipients))
	for _, recipient := range recipients {
		// invited accounts are always employees, only the login path may
		// grant the admin role from the configured domain
		if _, err := s.userStore.FindOrCreateEmployee(traceCtx, recipient.Email, recipient.Name); err != nil {
			span.RecordError(err)
			return nil, err
		}

		exists, err := s.queries.Exists(traceCtx, ExistsParams{
			SurveyID: surveyID,
			Email:    recipient.Email,
		})
		if err != nil {
			err = databaseutil.WrapDBError(err, logger, "check invitation existence")
			span.RecordError(err)
			return nil, err
		}
		if exists {
			continue
		}

		newInvitation, err := s.queries.Create(traceCtx, CreateParams{
			SurveyID: surveyID,
			Email:    recipient.Email,
			Name:     recipient.Name,
		})
		if err != nil {
			err = databaseutil.WrapDBError(err, logger, "create invitation")
			if errors.Is(err, databaseutil.ErrUniqueViolation) {
				// concurrent invite of the same address, treat as existing
				continue
			}
			span.RecordError(err)
			return nil, err
		}
		created = append(created, newInvitation)
	}

	logger.Info("Invited recipients",
		zap.String("survey_id", surveyID.String()),
		zap.Int("parsed", len(recipients)),
		zap.Int("created", len(created)))

	return created, nil
}

func (s *Service) GetBySurveyAndEmail(ctx context.Context, surveyID uuid.UUID, email string) (Invitation, error) {
	traceCtx, span := s.tracer.Start(ctx, "GetBySurveyAndEmail")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	found, err := s.queries.GetBySurveyAndEmail(traceCtx, GetBySurveyAndEmailParams{
		SurveyID: surveyID,
		Email:    user.NormalizeEmail(email),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invitation{}, internal.ErrInvitationNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "invitations", "survey_id", surveyID.String(), logger, "get invitation")
		span.RecordError(err)
		return Invitation{}, err
	}
	return found, nil
}

func (s *Service) ListBySurveyID(ctx context.Context, surveyID uuid.UUID) ([]Invitation, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListBySurveyID")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	invitations, err := s.queries.ListBySurveyID(traceCtx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "invitations", "survey_id", surveyID.String(), logger, "list invitations by survey id")
		span.RecordError(err)
		return nil, err
	}
	return invitations, nil
}

func (s *Service) ListByEmail(ctx context.Context, email string) ([]Invitation, error) {
	traceCtx, span := s.tracer.Start(ctx, "ListByEmail")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	invitations, err := s.queries.ListByEmail(traceCtx, user.NormalizeEmail(email))
	if err != nil {
		err = databaseutil.WrapDBError(err, logger, "list invitations by email")
		span.RecordError(err)
		return nil, err
	}
	return invitations, nil
}

func (s *Service) MarkCompleted(ctx context.Context, surveyID uuid.UUID, email string) (Invitation, error) {
	traceCtx, span := s.tracer.Start(ctx, "MarkCompleted")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	completed, err := s.queries.MarkCompleted(traceCtx, MarkCompletedParams{
		SurveyID: surveyID,
		Email:    user.NormalizeEmail(email),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Invitation{}, internal.ErrInvitationNotFound
		}
		err = databaseutil.WrapDBErrorWithKeyValue(err, "invitations", "survey_id", surveyID.String(), logger, "mark invitation completed")
		span.RecordError(err)
		return Invitation{}, err
	}
	return completed, nil
}

// Participation computes the completed/total ratio of a roster, rounded to
// the nearest whole percent. A survey without invitations reports 0.
func (s *Service) Participation(ctx context.Context, surveyID uuid.UUID) (Participation, error) {
	traceCtx, span := s.tracer.Start(ctx, "Participation")
	defer span.End()
	logger := logutil.WithContext(traceCtx, s.logger)

	counts, err := s.queries.CountBySurveyID(traceCtx, surveyID)
	if err != nil {
		err = databaseutil.WrapDBErrorWithKeyValue(err, "invitations", "survey_id", surveyID.String(), logger, "count invitations by survey id")
		span.RecordError(err)
		return Participation{}, err
	}

	result := Participation{
		Completed: int(counts.Completed),
		Total:     int(counts.Total),
	}
	if result.Total > 0 {
		result.Percent = int(math.Round(float64(result.Completed) / float64(result.Total) * 100))
	}
	return result, nil
}
