package internal

import (
	"errors"
	"strings"

	"github.com/NYCU-SDC/summer/pkg/problem"
)

type ErrQuestionSpecInvalid struct {
	Problems []string
}

func (e ErrQuestionSpecInvalid) Error() string {
	return "question specification is invalid: " + strings.Join(e.Problems, "; ")
}

var (
	// Auth Errors
	ErrUnauthorizedError     = errors.New("unauthorized error")
	ErrPermissionDenied      = errors.New("permission denied")
	ErrInternalServerError   = errors.New("internal server error")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired login token")
	ErrMissingSessionCookie  = errors.New("missing session cookie")
	ErrSessionNotFound       = errors.New("session not found")
	ErrInvalidJWTToken       = errors.New("invalid JWT token")
	ErrInvalidAuthUser       = errors.New("invalid authenticated user")
	ErrAdminRoleRequired     = errors.New("admin role required")

	// User Errors
	ErrUserNotFound       = errors.New("user not found")
	ErrNoUserInContext    = errors.New("no user found in request context")
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrDatabaseError      = errors.New("database error")

	// Survey Errors
	ErrSurveyNotFound     = errors.New("survey not found")
	ErrSurveyNotPublished = errors.New("survey is not published")
	ErrInvalidRequestBody = errors.New("invalid request body")

	// Question Errors
	ErrQuestionNotFound = errors.New("question not found")
	ErrValidationFailed = errors.New("validation failed")

	// Invitation Errors
	ErrNotInvited         = errors.New("user is not invited to this survey")
	ErrNoRecipients       = errors.New("no valid recipients provided")
	ErrInvitationNotFound = errors.New("invitation not found")

	// Response Errors
	ErrResponseNotFound    = errors.New("response not found")
	ErrDuplicateSubmission = errors.New("user already submitted a response for this survey")
	ErrAdminCannotSubmit   = errors.New("admins cannot submit survey responses")

	// Report Errors
	ErrIndividualReportDisabled = errors.New("individual report is not enabled for this survey")

	// Export Errors
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
)

func NewProblemWriter() *problem.HttpWriter {
	return problem.NewWithMapping(ErrorHandler)
}

func ErrorHandler(err error) problem.Problem {
	switch {
	// Auth Errors
	case errors.Is(err, ErrUnauthorizedError):
		return problem.NewUnauthorizedProblem("unauthorized error")
	case errors.Is(err, ErrPermissionDenied):
		return problem.NewForbiddenProblem("permission denied")
	case errors.Is(err, ErrInternalServerError):
		return problem.NewInternalServerProblem("internal server error")
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return problem.NewBadRequestProblem("invalid or expired login token")
	case errors.Is(err, ErrMissingSessionCookie):
		return problem.NewUnauthorizedProblem("missing session cookie")
	case errors.Is(err, ErrSessionNotFound):
		return problem.NewUnauthorizedProblem("session not found")
	case errors.Is(err, ErrInvalidJWTToken):
		return problem.NewUnauthorizedProblem("invalid JWT token")
	case errors.Is(err, ErrInvalidAuthUser):
		return problem.NewUnauthorizedProblem("invalid authenticated user")
	case errors.Is(err, ErrAdminRoleRequired):
		return problem.NewForbiddenProblem("admin role required")

	// User Errors
	case errors.Is(err, ErrUserNotFound):
		return problem.NewNotFoundProblem("user not found")
	case errors.Is(err, ErrNoUserInContext):
		return problem.NewUnauthorizedProblem("no user found in request context")
	case errors.Is(err, ErrInvalidEmailFormat):
		return problem.NewValidateProblem("invalid email format")
	case errors.Is(err, ErrDatabaseError):
		return problem.NewBadRequestProblem("database error")

	// Survey Errors
	case errors.Is(err, ErrSurveyNotFound):
		return problem.NewNotFoundProblem("survey not found")
	case errors.Is(err, ErrSurveyNotPublished):
		return problem.NewValidateProblem("survey is not published")
	case errors.Is(err, ErrInvalidRequestBody):
		return problem.NewBadRequestProblem("invalid request body")

	// Question Errors
	case errors.Is(err, ErrQuestionNotFound):
		return problem.NewNotFoundProblem("question not found")
	case errors.Is(err, ErrQuestionSpecInvalid{}):
		return problem.NewValidateProblem(err.Error())
	case errors.Is(err, ErrValidationFailed):
		return problem.NewValidateProblem("validation failed")

	// Invitation Errors
	case errors.Is(err, ErrNotInvited):
		return problem.NewForbiddenProblem("user is not invited to this survey")
	case errors.Is(err, ErrNoRecipients):
		return problem.NewValidateProblem("no valid recipients provided")
	case errors.Is(err, ErrInvitationNotFound):
		return problem.NewNotFoundProblem("invitation not found")

	// Response Errors
	case errors.Is(err, ErrResponseNotFound):
		return problem.NewNotFoundProblem("response not found")
	case errors.Is(err, ErrDuplicateSubmission):
		return problem.NewValidateProblem("user already submitted a response for this survey")
	case errors.Is(err, ErrAdminCannotSubmit):
		return problem.NewForbiddenProblem("admins cannot submit survey responses")

	// Report Errors
	case errors.Is(err, ErrIndividualReportDisabled):
		return problem.NewForbiddenProblem("individual report is not enabled for this survey")

	// Export Errors
	case errors.Is(err, ErrUnsupportedExportFormat):
		return problem.NewBadRequestProblem("unsupported export format")
	}
	return problem.Problem{}
}

// Is matches any ErrQuestionSpecInvalid regardless of its collected problems.
func (e ErrQuestionSpecInvalid) Is(target error) bool {
	_, ok := target.(ErrQuestionSpecInvalid)
	return ok
}
