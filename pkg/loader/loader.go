// Package loader reads frames and variable definitions from YAML or JSON
// files.
package loader

import (
	"errors"
	"fmt"
	"math"
	"os"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

// ErrNoData is returned when a data file does not exist.
var ErrNoData = errors.New("no data file")

type dataFile struct {
	Frames []frameDoc `yaml:"frames"`
}

type frameDoc struct {
	RefID  string     `yaml:"refId"`
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name       string         `yaml:"name"`
	Type       string         `yaml:"type"`
	Values     []any          `yaml:"values"`
	Thresholds *thresholdsDoc `yaml:"thresholds"`
}

type thresholdsDoc struct {
	Mode  string    `yaml:"mode"`
	Steps []stepDoc `yaml:"steps"`
}

type stepDoc struct {
	// Value is omitted for the base step.
	Value *float64 `yaml:"value"`
	Color string   `yaml:"color"`
	Image string   `yaml:"image"`
}

// LoadFrames reads every data file concurrently and returns their frames in
// argument order.
func LoadFrames(paths ...string) ([]model.Frame, error) {
	results := make([][]model.Frame, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			frames, err := LoadFramesFromFile(path)
			if err != nil {
				return err
			}
			results[i] = frames
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var frames []model.Frame
	for _, r := range results {
		frames = append(frames, r...)
	}
	return frames, nil
}

// LoadExistingFrames is like LoadFrames but skips data files that do not
// exist. It returns the frames of the files it read, in argument order, and
// the paths it skipped.
func LoadExistingFrames(paths ...string) ([]model.Frame, []string, error) {
	results := make([][]model.Frame, len(paths))
	missing := make([]bool, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			frames, err := LoadFramesFromFile(path)
			if errors.Is(err, ErrNoData) {
				missing[i] = true
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = frames
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	var frames []model.Frame
	var skipped []string
	for i, r := range results {
		if missing[i] {
			skipped = append(skipped, paths[i])
			continue
		}
		frames = append(frames, r...)
	}
	return frames, skipped, nil
}

// LoadFramesFromFile reads the frames of a single data file.
func LoadFramesFromFile(path string) ([]model.Frame, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNoData, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	frames, err := ParseFrames(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return frames, nil
}

// ParseFrames decodes a data document.
func ParseFrames(data []byte) ([]model.Frame, error) {
	var doc dataFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode frames: %w", err)
	}

	frames := make([]model.Frame, 0, len(doc.Frames))
	for i, fd := range doc.Frames {
		frame := model.Frame{RefID: fd.RefID}
		for _, f := range fd.Fields {
			field, err := f.toModel()
			if err != nil {
				return nil, fmt.Errorf("frame %d (%s): %w", i, fd.RefID, err)
			}
			frame.Fields = append(frame.Fields, field)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}

func (f fieldDoc) toModel() (model.Field, error) {
	if f.Name == "" {
		return model.Field{}, fmt.Errorf("field name cannot be empty")
	}
	typ := model.FieldType(f.Type)
	if f.Type == "" {
		typ = inferType(f.Values)
	}
	if !typ.IsValid() {
		return model.Field{}, fmt.Errorf("field %s: invalid type: %s", f.Name, f.Type)
	}

	field := model.Field{Name: f.Name, Type: typ, Values: f.Values}
	if f.Thresholds != nil {
		th := &model.Thresholds{Mode: model.ThresholdsMode(f.Thresholds.Mode)}
		switch th.Mode {
		case "":
			th.Mode = model.ThresholdsAbsolute
		case model.ThresholdsAbsolute, model.ThresholdsPercentage:
		default:
			return model.Field{}, fmt.Errorf("field %s: invalid thresholds mode: %s", f.Name, f.Thresholds.Mode)
		}
		for _, s := range f.Thresholds.Steps {
			step := model.Threshold{Value: math.Inf(-1), Color: s.Color, Image: s.Image}
			if s.Value != nil {
				step.Value = *s.Value
			}
			th.Steps = append(th.Steps, step)
		}
		field.Thresholds = th
	}
	return field, nil
}

func inferType(values []any) model.FieldType {
	for _, v := range values {
		if v == nil {
			continue
		}
		if _, ok := v.(string); ok {
			return model.FieldTypeString
		}
		if _, ok := model.NumericValue(v); ok {
			return model.FieldTypeNumber
		}
		return model.FieldTypeOther
	}
	return model.FieldTypeString
}
