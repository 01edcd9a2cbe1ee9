package status

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

// ActiveThreshold returns the step with the greatest value that is <= v.
// The second result is false when no step qualifies.
func ActiveThreshold(steps []model.Threshold, v float64) (model.Threshold, bool) {
	var (
		best  model.Threshold
		found bool
	)
	for _, step := range steps {
		if step.Value > v {
			continue
		}
		if !found || step.Value >= best.Value {
			best = step
			found = true
		}
	}
	return best, found
}

// scale holds the field range used by percentage thresholds.
type scale struct {
	min, max float64
	ok       bool
}

func newScale(field *model.Field) scale {
	if field == nil {
		return scale{}
	}
	nums := make([]float64, 0, len(field.Values))
	for _, raw := range field.Values {
		if f, ok := model.NumericValue(raw); ok && !math.IsInf(f, 0) {
			nums = append(nums, f)
		}
	}
	if len(nums) == 0 {
		return scale{}
	}
	return scale{min: floats.Min(nums), max: floats.Max(nums), ok: true}
}

// position converts v into the unit the thresholds are expressed in.
func (s scale) position(mode model.ThresholdsMode, v float64) float64 {
	if mode != model.ThresholdsPercentage || !s.ok {
		return v
	}
	span := s.max - s.min
	if span == 0 {
		return 100
	}
	return (v - s.min) / span * 100
}

// display is the result of applying a field's display mapping to a value.
type display struct {
	color string
}

// displayFor applies the thresholds mapping. It returns false when the field
// has no usable mapping.
func displayFor(th *model.Thresholds, pos float64) (display, bool) {
	if th == nil || len(th.Steps) == 0 {
		return display{}, false
	}
	step, ok := ActiveThreshold(th.Steps, pos)
	if !ok {
		// Values below every step take the lowest step's color.
		step = th.Steps[0]
		for _, s := range th.Steps[1:] {
			if s.Value < step.Value {
				step = s
			}
		}
	}
	if step.Color == "" {
		return display{}, false
	}
	return display{color: ResolveColor(step.Color)}, true
}
