package surveybuilder

import (
	"github.com/Barathraj2387/Survey-App/internal/survey/question"
)

type Option func(*FactoryParams)

type QuestionParams struct {
	Prompt  string
	Type    question.Type
	Options []string
}

type FactoryParams struct {
	Title            string
	Description      string
	IndividualReport bool
	CreatedBy        string
	Published        bool
	Questions        []QuestionParams
}

func WithTitle(title string) Option {
	return func(p *FactoryParams) { p.Title = title }
}

func WithDescription(description string) Option {
	return func(p *FactoryParams) { p.Description = description }
}

func WithIndividualReport(enabled bool) Option {
	return func(p *FactoryParams) { p.IndividualReport = enabled }
}

func WithCreatedBy(email string) Option {
	return func(p *FactoryParams) { p.CreatedBy = email }
}

func WithPublished() Option {
	return func(p *FactoryParams) { p.Published = true }
}

func WithQuestion(prompt string, questionType question.Type, options ...string) Option {
	return func(p *FactoryParams) {
		p.Questions = append(p.Questions, QuestionParams{
			Prompt:  prompt,
			Type:    questionType,
			Options: options,
		})
	}
}
