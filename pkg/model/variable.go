package model

import "strings"

const (
	// AllValue is the internal token for "every option". It never collides
	// with real data values.
	AllValue = "$__all"
	// AllText is how the all sentinel is displayed, compared and written to
	// the location state.
	AllText = "All"
)

// IsAll reports whether s refers to the all sentinel, either as the internal
// token or as the display string in any letter case.
func IsAll(s string) bool {
	return s == AllValue || strings.EqualFold(s, AllText)
}

// NormalizeValue maps the internal all token to its display string and
// leaves every other value untouched.
func NormalizeValue(v string) string {
	if v == AllValue {
		return AllText
	}
	return v
}

// VariableType is the host's variable type name.
type VariableType string

const (
	VariableCustom     VariableType = "custom"
	VariableQuery      VariableType = "query"
	VariableTextbox    VariableType = "textbox"
	VariableConstant   VariableType = "constant"
	VariableInterval   VariableType = "interval"
	VariableDatasource VariableType = "datasource"
	VariableAdhoc      VariableType = "adhoc"
)

// Kind is the closed set of variable behaviours the selection logic
// distinguishes.
type Kind int

const (
	KindUnsupported Kind = iota
	KindSingleSelect
	KindMultiSelect
	KindFreeText
)

func (k Kind) String() string {
	switch k {
	case KindSingleSelect:
		return "single"
	case KindMultiSelect:
		return "multi"
	case KindFreeText:
		return "text"
	}
	return "unsupported"
}

// HasOptions returns true for kinds whose values are picked from a fixed
// option list.
func (k Kind) HasOptions() bool {
	return k == KindSingleSelect || k == KindMultiSelect
}

// Option is one pickable value of a variable.
type Option struct {
	Value    string `yaml:"value" json:"value"`
	Text     string `yaml:"text,omitempty" json:"text,omitempty"`
	Selected bool   `yaml:"selected,omitempty" json:"selected,omitempty"`
}

// DisplayText returns the option text, falling back to the normalized value.
func (o Option) DisplayText() string {
	if o.Text != "" {
		return o.Text
	}
	return NormalizeValue(o.Value)
}

// Variable is the external selection state of one named variable.
type Variable struct {
	Name       string
	Label      string
	Type       VariableType
	Multi      bool
	IncludeAll bool
	Options    []Option
	// Current holds the last externally committed values. HasCurrent
	// distinguishes "never committed" from "committed an empty list".
	Current    []string
	HasCurrent bool
}

// Kind classifies the variable for selection purposes.
func (v *Variable) Kind() Kind {
	if v == nil {
		return KindUnsupported
	}
	switch v.Type {
	case VariableCustom, VariableQuery:
		if v.Multi {
			return KindMultiSelect
		}
		return KindSingleSelect
	case VariableTextbox:
		return KindFreeText
	}
	return KindUnsupported
}

// FindOption returns the option whose normalized value equals value.
func (v *Variable) FindOption(value string) (Option, bool) {
	if v == nil {
		return Option{}, false
	}
	for _, opt := range v.Options {
		if NormalizeValue(opt.Value) == value {
			return opt, true
		}
	}
	return Option{}, false
}

// HasOption reports whether value is one of the variable's options.
func (v *Variable) HasOption(value string) bool {
	_, ok := v.FindOption(value)
	return ok
}

// IsSelectedAll reports whether the all option is currently selected.
func (v *Variable) IsSelectedAll() bool {
	if v == nil {
		return false
	}
	for _, opt := range v.Options {
		if opt.Value == AllValue && opt.Selected {
			return true
		}
	}
	for _, c := range v.Current {
		if IsAll(c) {
			return true
		}
	}
	return false
}

// SelectedTexts returns the display text of every selected option.
func (v *Variable) SelectedTexts() []string {
	if v == nil {
		return nil
	}
	var out []string
	for _, opt := range v.Options {
		if opt.Selected {
			out = append(out, opt.DisplayText())
		}
	}
	return out
}

// Clone creates a deep copy of the variable
func (v Variable) Clone() Variable {
	clone := v
	if v.Options != nil {
		clone.Options = make([]Option, len(v.Options))
		copy(clone.Options, v.Options)
	}
	if v.Current != nil {
		clone.Current = make([]string, len(v.Current))
		copy(clone.Current, v.Current)
	}
	return clone
}
