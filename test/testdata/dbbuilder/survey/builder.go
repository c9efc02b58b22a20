package surveybuilder

import (
	"context"
	"testing"

	"github.com/Barathraj2387/Survey-App/internal/survey"
	"github.com/Barathraj2387/Survey-App/internal/survey/question"
	"github.com/Barathraj2387/Survey-App/test/testdata"
	"github.com/Barathraj2387/Survey-App/test/testdata/dbbuilder"

	"github.com/stretchr/testify/require"
)

type Builder struct {
	t  *testing.T
	db dbbuilder.DBTX
}

func New(t *testing.T, db dbbuilder.DBTX) *Builder {
	return &Builder{t: t, db: db}
}

func (b Builder) Queries() *survey.Queries {
	return survey.New(b.db)
}

// Create inserts a survey row plus any questions declared via options and
// returns the survey. By default the survey is a draft with a random title
// and no questions.
func (b Builder) Create(opts ...Option) survey.Survey {
	queries := b.Queries()

	p := &FactoryParams{
		Title:       testdata.RandomName(),
		Description: testdata.RandomDescription(),
		CreatedBy:   testdata.RandomEmail(),
	}
	for _, opt := range opts {
		opt(p)
	}

	surveyRow, err := queries.Create(context.Background(), survey.CreateParams{
		Title:            p.Title,
		Description:      p.Description,
		IndividualReport: p.IndividualReport,
		CreatedBy:        p.CreatedBy,
	})
	require.NoError(b.t, err)

	if p.Published {
		surveyRow, err = queries.SetStatus(context.Background(), survey.SetStatusParams{
			ID:     surveyRow.ID,
			Status: survey.StatusPublished,
		})
		require.NoError(b.t, err)
	}

	questionQueries := question.New(b.db)
	for i, q := range p.Questions {
		_, err := questionQueries.Create(context.Background(), question.CreateParams{
			SurveyID: surveyRow.ID,
			Prompt:   q.Prompt,
			Type:     q.Type,
			Options:  q.Options,
			Position: int32(i + 1),
		})
		require.NoError(b.t, err)
	}

	return surveyRow
}
