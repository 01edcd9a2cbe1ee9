// Package status resolves the status annotation (color or image) of a value
// from a pair of parallel columns: one holding names, one holding numbers.
package status

import (
	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

// Options configures a Resolver.
type Options struct {
	Mode model.StatusMode
}

// Lookup resolves the status of one value.
type Lookup interface {
	Resolve(value string) model.Status
}

// Resolver looks values up by name and maps the correlated number through
// the status field's thresholds. It is immutable once built.
type Resolver struct {
	index  map[string]int
	values *model.Field
	scale  scale
	mode   model.StatusMode
}

// NewResolver indexes the names column. Either field may be nil, in which
// case every lookup reports a missing status.
func NewResolver(names, values *model.Field, opts Options) *Resolver {
	mode := opts.Mode
	if !mode.IsValid() {
		mode = model.StatusModeColor
	}
	r := &Resolver{
		index:  make(map[string]int, names.Len()),
		values: values,
		scale:  newScale(values),
		mode:   mode,
	}
	if names == nil || values == nil {
		return r
	}
	for i, raw := range names.Values {
		key := model.FormatValue(raw)
		if _, dup := r.index[key]; !dup {
			r.index[key] = i
		}
	}
	return r
}

// ForFrame builds a resolver over the named columns of a frame. A nil frame
// or missing column yields a resolver that never finds a status.
func ForFrame(frame *model.Frame, namesField, statusField string, opts Options) *Resolver {
	if frame == nil || namesField == "" || statusField == "" {
		return NewResolver(nil, nil, opts)
	}
	return NewResolver(frame.Field(namesField), frame.Field(statusField), opts)
}

// Resolve returns the status of value. Missing names, missing or
// non-numeric cells and fields without a display mapping all report
// Exist == false.
func (r *Resolver) Resolve(value string) model.Status {
	if r == nil || r.values == nil {
		return model.Status{}
	}
	idx, ok := r.index[value]
	if !ok || idx >= len(r.values.Values) {
		return model.Status{}
	}
	num, ok := model.NumericValue(r.values.Values[idx])
	if !ok {
		return model.Status{}
	}

	th := r.values.Thresholds
	pos := r.scale.position(thresholdsMode(th), num)
	disp, ok := displayFor(th, pos)
	if !ok {
		return model.Status{}
	}

	st := model.Status{
		Exist: true,
		Value: num,
		Color: disp.color,
		Mode:  r.mode,
	}
	if r.mode == model.StatusModeImage {
		if step, found := ActiveThreshold(th.Steps, pos); found {
			st.Image = step.Image
		}
	}
	return st
}

func thresholdsMode(th *model.Thresholds) model.ThresholdsMode {
	if th == nil || th.Mode == "" {
		return model.ThresholdsAbsolute
	}
	return th.Mode
}

// None is a Lookup that never finds a status.
type None struct{}

// Resolve implements Lookup.
func (None) Resolve(string) model.Status { return model.Status{} }
