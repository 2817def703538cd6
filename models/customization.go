package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// FieldType enumerates the customization field kinds a product can declare.
type FieldType string

const (
	FieldTypeText       FieldType = "text"
	FieldTypeNameNumber FieldType = "name-number"
	FieldTypeNumber     FieldType = "number"
	FieldTypeSelect     FieldType = "select"
	FieldTypeBoolean    FieldType = "boolean"
)

// CustomizationField is one entry of a product's customization template as
// declared by the CMS.
type CustomizationField struct {
	Key         string    `json:"key"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required,omitempty"`
	MaxLength   int       `json:"maxLength,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
	HelperText  string    `json:"helperText,omitempty"`
}

// NameNumber is a structured customization value, e.g. a printed player name
// and shirt number.
type NameNumber struct {
	Name   string `json:"name,omitempty"`
	Number string `json:"number,omitempty"`
}

// CustomizationValue is a tagged union: either a plain scalar value or a
// structured name/number pair. Exactly one side is populated.
type CustomizationValue struct {
	Scalar     string
	NameNumber *NameNumber
}

// ScalarValue builds a plain scalar customization value.
func ScalarValue(s string) CustomizationValue {
	return CustomizationValue{Scalar: s}
}

// NameNumberValue builds a structured name/number customization value.
func NameNumberValue(name, number string) CustomizationValue {
	return CustomizationValue{NameNumber: &NameNumber{Name: name, Number: number}}
}

// Empty reports whether the value carries nothing meaningful. Empty values
// are skipped by the order formatter.
func (v CustomizationValue) Empty() bool {
	if v.NameNumber != nil {
		return v.NameNumber.Name == "" && v.NameNumber.Number == ""
	}
	return strings.TrimSpace(v.Scalar) == ""
}

// Summary renders the value for the order message: "NAME #NUM" when both
// parts of a pair are present, otherwise whichever part exists, otherwise
// the scalar string form. Empty values render as "".
func (v CustomizationValue) Summary() string {
	if v.NameNumber != nil {
		name := v.NameNumber.Name
		num := v.NameNumber.Number
		switch {
		case name != "" && num != "":
			return fmt.Sprintf("%s #%s", name, num)
		case name != "":
			return name
		case num != "":
			return "#" + num
		default:
			return ""
		}
	}
	return strings.TrimSpace(v.Scalar)
}

// MarshalJSON writes the original wire shape: structured pairs as objects,
// everything else as a JSON string.
func (v CustomizationValue) MarshalJSON() ([]byte, error) {
	if v.NameNumber != nil {
		return json.Marshal(v.NameNumber)
	}
	return json.Marshal(v.Scalar)
}

// UnmarshalJSON accepts objects with name/number keys, strings, and bare
// scalars (numbers, booleans), which keep their literal text form.
func (v *CustomizationValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = CustomizationValue{}
		return nil
	}
	switch data[0] {
	case '{':
		var nn NameNumber
		if err := json.Unmarshal(data, &nn); err != nil {
			return err
		}
		*v = CustomizationValue{NameNumber: &nn}
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = CustomizationValue{Scalar: s}
		return nil
	default:
		*v = CustomizationValue{Scalar: string(data)}
		return nil
	}
}
