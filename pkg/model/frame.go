package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FieldType describes how a field's values should be interpreted.
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeNumber FieldType = "number"
	FieldTypeOther  FieldType = "other"
)

// IsValid returns true if the field type is a recognized value
func (t FieldType) IsValid() bool {
	switch t {
	case FieldTypeString, FieldTypeNumber, FieldTypeOther:
		return true
	}
	return false
}

// ThresholdsMode selects how threshold steps are compared to values.
type ThresholdsMode string

const (
	ThresholdsAbsolute   ThresholdsMode = "absolute"
	ThresholdsPercentage ThresholdsMode = "percentage"
)

// Threshold is one step of a thresholds config. A step with Value == -Inf is
// the base step and always qualifies.
type Threshold struct {
	Value float64 `yaml:"value" json:"value"`
	Color string  `yaml:"color" json:"color"`
	Image string  `yaml:"image,omitempty" json:"image,omitempty"`
}

// IsBase reports whether this is the catch-all base step.
func (t Threshold) IsBase() bool {
	return math.IsInf(t.Value, -1)
}

// Thresholds is the display mapping of a numeric field.
type Thresholds struct {
	Mode  ThresholdsMode `yaml:"mode" json:"mode"`
	Steps []Threshold    `yaml:"steps" json:"steps"`
}

// Field is one named column of a frame.
type Field struct {
	Name       string
	Type       FieldType
	Values     []any
	Thresholds *Thresholds
}

// Len returns the number of values in the column.
func (f *Field) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Values)
}

// Frame is a columnar table of same-length fields.
type Frame struct {
	RefID  string
	Fields []Field
}

// Len returns the row count, taken from the longest field.
func (f *Frame) Len() int {
	n := 0
	for i := range f.Fields {
		if l := len(f.Fields[i].Values); l > n {
			n = l
		}
	}
	return n
}

// Field finds a field by name.
func (f *Frame) Field(name string) *Field {
	for i := range f.Fields {
		if f.Fields[i].Name == name {
			return &f.Fields[i]
		}
	}
	return nil
}

// FindFrame locates the frame a level source points to.
func FindFrame(frames []Frame, source LevelSource) *Frame {
	if source.ByIndex {
		if source.Index < 0 || source.Index >= len(frames) {
			return nil
		}
		return &frames[source.Index]
	}
	for i := range frames {
		if frames[i].RefID == source.RefID {
			return &frames[i]
		}
	}
	return nil
}

// FormatValue renders a cell as the string key used for grouping, lookups
// and selection. Nil cells render as the empty string.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case fmt.Stringer:
		return x.String()
	}
	return fmt.Sprint(v)
}

// NumericValue converts a cell to a float. Numeric strings are parsed; any
// other non-numeric cell reports false.
func NumericValue(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, !math.IsNaN(x)
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
