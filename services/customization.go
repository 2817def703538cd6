package services

import (
	"strconv"
	"strings"

	"storefront-service/models"
)

// Limits for name/number printing when the field declares none.
const (
	defaultNameMaxLength = 12
	maxShirtNumber       = 99
)

// ValidateCustomizations checks submitted values against the product's
// declared field schema. Returns one message per offending field key; an
// empty map means the values are acceptable.
func ValidateCustomizations(fields []models.CustomizationField, values map[string]models.CustomizationValue) map[string]string {
	errs := map[string]string{}

	known := make(map[string]models.CustomizationField, len(fields))
	for _, f := range fields {
		known[f.Key] = f
	}

	for key := range values {
		if _, ok := known[key]; !ok {
			errs[key] = "unknown customization field"
		}
	}

	for _, f := range fields {
		v, ok := values[f.Key]
		if !ok || v.Empty() {
			if f.Required {
				errs[f.Key] = "required"
			}
			continue
		}

		switch f.Type {
		case models.FieldTypeNameNumber:
			if msg := validateNameNumber(f, v); msg != "" {
				errs[f.Key] = msg
			}
		case models.FieldTypeText:
			if msg := validateText(f, v); msg != "" {
				errs[f.Key] = msg
			}
		case models.FieldTypeNumber:
			if v.NameNumber != nil {
				errs[f.Key] = "expects a plain number"
			} else if _, err := strconv.Atoi(strings.TrimSpace(v.Scalar)); err != nil {
				errs[f.Key] = "must be a number"
			}
		case models.FieldTypeSelect:
			if v.NameNumber != nil || !contains(f.Options, v.Scalar) {
				errs[f.Key] = "not one of the available options"
			}
		case models.FieldTypeBoolean:
			if v.NameNumber != nil || (v.Scalar != "true" && v.Scalar != "false") {
				errs[f.Key] = "must be true or false"
			}
		}
	}

	return errs
}

func validateNameNumber(f models.CustomizationField, v models.CustomizationValue) string {
	nn := v.NameNumber
	if nn == nil {
		return "expects a name/number value"
	}

	maxLen := f.MaxLength
	if maxLen <= 0 {
		maxLen = defaultNameMaxLength
	}
	if len(nn.Name) > maxLen {
		return "name must be at most " + strconv.Itoa(maxLen) + " characters"
	}

	if nn.Number != "" {
		n, err := strconv.Atoi(nn.Number)
		if err != nil || n < 0 || n > maxShirtNumber {
			return "number must be 0-99"
		}
	}
	return ""
}

func validateText(f models.CustomizationField, v models.CustomizationValue) string {
	if v.NameNumber != nil {
		return "expects a plain text value"
	}
	maxLen := f.MaxLength
	if maxLen <= 0 {
		maxLen = defaultNameMaxLength
	}
	if len(v.Scalar) > maxLen {
		return "must be at most " + strconv.Itoa(maxLen) + " characters"
	}
	return ""
}

func contains(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
