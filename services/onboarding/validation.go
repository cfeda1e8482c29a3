package onboarding

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"blinno/models"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStep checks answers against step id. Steps with a custom validator
// are delegated to it; every other step gets the default field rule.
func ValidateStep(id models.StepID, answers models.StepAnswers) models.ValidationResult {
	step := GetStepConfig(id)
	if step.Validate != nil {
		return step.Validate(answers)
	}
	return validateFields(step.Fields, answers)
}

// validateFields reports one error per missing required field, and one error
// per present field that breaks its type or constraints.
func validateFields(fields []models.FieldDefinition, answers models.StepAnswers) models.ValidationResult {
	errs := []string{}
	for _, f := range fields {
		v, present := answers[f.ID]
		if !present || isEmptyValue(v) {
			if f.Required {
				errs = append(errs, fmt.Sprintf("%s is required", f.Label))
			}
			continue
		}
		if msg := checkField(f, v); msg != "" {
			errs = append(errs, msg)
		}
	}
	return models.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func isEmptyValue(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case []any:
		return len(t) == 0
	case []string:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	}
	return false
}

func checkField(f models.FieldDefinition, v any) string {
	switch f.Type {
	case models.FieldText, models.FieldTextarea:
		s, ok := v.(string)
		if !ok {
			return fmt.Sprintf("%s must be text", f.Label)
		}
		return checkText(f, strings.TrimSpace(s))
	case models.FieldEmail:
		return checkTagged(f, v, "email", "must be a valid email address")
	case models.FieldURL:
		return checkTagged(f, v, "url", "must be a valid URL")
	case models.FieldPhone:
		return checkTagged(f, v, "e164", "must be a valid phone number in international format")
	case models.FieldDate:
		return checkTagged(f, v, "datetime=2006-01-02", "must be a date in YYYY-MM-DD format")
	case models.FieldSelect:
		if len(f.Options) == 0 {
			return ""
		}
		return checkTagged(f, v, oneOfTag(f.Options), "must be one of: "+strings.Join(f.Options, ", "))
	case models.FieldMultiSelect:
		list, ok := toStrings(v)
		if !ok {
			return fmt.Sprintf("%s must be a list", f.Label)
		}
		if len(f.Options) > 0 && validate.Var(list, "dive,"+oneOfTag(f.Options)) != nil {
			return fmt.Sprintf("%s must only contain: %s", f.Label, strings.Join(f.Options, ", "))
		}
	case models.FieldNumber:
		n, ok := toFloat(v)
		if !ok {
			return fmt.Sprintf("%s must be a number", f.Label)
		}
		if f.Validation != nil {
			if f.Validation.Min != 0 && validate.Var(n, fmt.Sprintf("gte=%d", f.Validation.Min)) != nil {
				return fmt.Sprintf("%s must be at least %d", f.Label, f.Validation.Min)
			}
			if f.Validation.Max != 0 && validate.Var(n, fmt.Sprintf("lte=%d", f.Validation.Max)) != nil {
				return fmt.Sprintf("%s must be at most %d", f.Label, f.Validation.Max)
			}
		}
	case models.FieldCheckbox:
		if _, ok := v.(bool); !ok {
			return fmt.Sprintf("%s must be true or false", f.Label)
		}
	}
	return ""
}

func checkText(f models.FieldDefinition, s string) string {
	if f.Validation == nil {
		return ""
	}
	rule := f.Validation
	if rule.Min != 0 && validate.Var(s, fmt.Sprintf("min=%d", rule.Min)) != nil {
		return fmt.Sprintf("%s must be at least %d characters", f.Label, rule.Min)
	}
	if rule.Max != 0 && validate.Var(s, fmt.Sprintf("max=%d", rule.Max)) != nil {
		return fmt.Sprintf("%s must be at most %d characters", f.Label, rule.Max)
	}
	if rule.Pattern != "" {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil || !re.MatchString(s) {
			if rule.Message != "" {
				return rule.Message
			}
			return fmt.Sprintf("%s has an invalid format", f.Label)
		}
	}
	return ""
}

func checkTagged(f models.FieldDefinition, v any, tag, problem string) string {
	s, ok := v.(string)
	if !ok || validate.Var(strings.TrimSpace(s), tag) != nil {
		return fmt.Sprintf("%s %s", f.Label, problem)
	}
	return ""
}

func oneOfTag(options []string) string {
	return "oneof=" + strings.Join(options, " ")
}

func toStrings(v any) ([]string, bool) {
	switch t := v.(type) {
	case []string:
		return t, true
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return f, err == nil
	}
	return 0, false
}
