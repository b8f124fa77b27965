// ABOUTME: Validation of habit creation and edit input.
// ABOUTME: Uses a shared go-playground validator with sanitized text fields.
package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidHabit wraps every validation failure.
var ErrInvalidHabit = errors.New("invalid habit")

// Validate is the shared validator instance.
var Validate = validator.New()

// HabitInput is the user-editable part of a habit.
type HabitInput struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Description string `json:"description,omitempty" validate:"max=200"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

// Sanitized trims whitespace and strips control characters.
func (in HabitInput) Sanitized() HabitInput {
	return HabitInput{
		Name:        sanitizeText(in.Name),
		Description: sanitizeText(in.Description),
		Color:       strings.TrimSpace(in.Color),
	}
}

// Validate checks the input and reports the first failing field.
func (in HabitInput) Validate() error {
	err := Validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidHabit, describe(verrs[0]))
	}
	return fmt.Errorf("%w: %v", ErrInvalidHabit, err)
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "hexcolor":
		return fmt.Sprintf("%s must be a hex color like #0ea5e9", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func sanitizeText(text string) string {
	text = strings.TrimSpace(text)
	var b strings.Builder
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
