package question

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeRating         Type = "rating"
	TypeDropdown       Type = "dropdown"
	TypeMultipleChoice Type = "multiple_choice"
	TypeFreeText       Type = "free_text"
)

func IsValidType(value string) bool {
	switch Type(value) {
	case TypeRating, TypeDropdown, TypeMultipleChoice, TypeFreeText:
		return true
	}
	return false
}

// HasOptions reports whether a type carries an authored option list.
func (t Type) HasOptions() bool {
	return t == TypeDropdown || t == TypeMultipleChoice
}

// Closed reports whether answers come from a fixed set and can be aggregated
// into a frequency table. Free text is the only open type.
func (t Type) Closed() bool {
	return t != TypeFreeText
}

// Spec is the authored shape of a question before it is persisted.
type Spec struct {
	Prompt  string   `json:"prompt" validate:"required"`
	Type    string   `json:"type" validate:"required,question_type"`
	Options []string `json:"options"`
}

// ValidateSpecs checks an authored question list and collects every problem
// found instead of stopping at the first one. An empty result means the list
// is acceptable.
func ValidateSpecs(specs []Spec) []string {
	var problems []string

	if len(specs) == 0 {
		return []string{"a survey needs at least one question"}
	}

	for i, spec := range specs {
		label := fmt.Sprintf("question %d", i+1)

		if strings.TrimSpace(spec.Prompt) == "" {
			problems = append(problems, label+": prompt must not be blank")
		}

		if !IsValidType(spec.Type) {
			problems = append(problems, fmt.Sprintf("%s: unknown type %q", label, spec.Type))
			continue
		}

		questionType := Type(spec.Type)
		options := nonBlankOptions(spec.Options)

		if questionType.HasOptions() && len(options) == 0 {
			problems = append(problems, fmt.Sprintf("%s: type %s requires at least one option", label, questionType))
		}
		if !questionType.HasOptions() && len(spec.Options) > 0 {
			problems = append(problems, fmt.Sprintf("%s: type %s must not carry options", label, questionType))
		}
	}

	return problems
}

func nonBlankOptions(options []string) []string {
	kept := make([]string, 0, len(options))
	for _, option := range options {
		if strings.TrimSpace(option) != "" {
			kept = append(kept, strings.TrimSpace(option))
		}
	}
	return kept
}

// CleanOptions returns the option list as it should be stored: trimmed, blanks
// dropped, order preserved. Non-option types always store an empty list.
func CleanOptions(questionType Type, options []string) []string {
	if !questionType.HasOptions() {
		return []string{}
	}
	return nonBlankOptions(options)
}
