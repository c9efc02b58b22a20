package question

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSpecs(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name             string
		specs            []Spec
		expectedProblems []string
	}

	cases := []testCase{
		{
			name:             "empty question list",
			specs:            nil,
			expectedProblems: []string{"a survey needs at least one question"},
		},
		{
			name: "valid mixed survey",
			specs: []Spec{
				{Prompt: "How satisfied are you?", Type: "rating"},
				{Prompt: "Which team are you on?", Type: "dropdown", Options: []string{"Platform", "Product"}},
				{Prompt: "Pick your perks", Type: "multiple_choice", Options: []string{"Remote", "Gym"}},
				{Prompt: "Anything else?", Type: "free_text"},
			},
			expectedProblems: nil,
		},
		{
			name: "blank prompt",
			specs: []Spec{
				{Prompt: "   ", Type: "rating"},
			},
			expectedProblems: []string{"question 1: prompt must not be blank"},
		},
		{
			name: "unknown type",
			specs: []Spec{
				{Prompt: "How satisfied are you?", Type: "slider"},
			},
			expectedProblems: []string{`question 1: unknown type "slider"`},
		},
		{
			name: "choice type without options",
			specs: []Spec{
				{Prompt: "Which team are you on?", Type: "dropdown"},
			},
			expectedProblems: []string{"question 1: type dropdown requires at least one option"},
		},
		{
			name: "choice type with only blank options",
			specs: []Spec{
				{Prompt: "Which team are you on?", Type: "multiple_choice", Options: []string{"  ", ""}},
			},
			expectedProblems: []string{"question 1: type multiple_choice requires at least one option"},
		},
		{
			name: "non-choice type carrying options",
			specs: []Spec{
				{Prompt: "Anything else?", Type: "free_text", Options: []string{"yes"}},
			},
			expectedProblems: []string{"question 1: type free_text must not carry options"},
		},
		{
			name: "multiple problems collected across questions",
			specs: []Spec{
				{Prompt: "", Type: "slider"},
				{Prompt: "Which team are you on?", Type: "dropdown"},
			},
			expectedProblems: []string{
				"question 1: prompt must not be blank",
				`question 1: unknown type "slider"`,
				"question 2: type dropdown requires at least one option",
			},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			problems := ValidateSpecs(c.specs)
			require.Equal(t, c.expectedProblems, problems)
		})
	}
}

func TestIsValidType(t *testing.T) {
	t.Parallel()

	for _, valid := range []string{"rating", "dropdown", "multiple_choice", "free_text"} {
		require.True(t, IsValidType(valid), valid)
	}
	for _, invalid := range []string{"", "slider", "Rating", "FREE_TEXT"} {
		require.False(t, IsValidType(invalid), invalid)
	}
}

func TestCleanOptions(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name         string
		questionType Type
		options      []string
		expected     []string
	}

	cases := []testCase{
		{
			name:         "trims and drops blanks for choice types",
			questionType: TypeDropdown,
			options:      []string{" Platform ", "", "Product", "  "},
			expected:     []string{"Platform", "Product"},
		},
		{
			name:         "non-choice types store nothing",
			questionType: TypeRating,
			options:      []string{"1", "2"},
			expected:     []string{},
		},
		{
			name:         "free text stores nothing",
			questionType: TypeFreeText,
			options:      nil,
			expected:     []string{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, c.expected, CleanOptions(c.questionType, c.options))
		})
	}
}
