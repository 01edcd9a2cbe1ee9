package loader

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Dicklesworthstone/hierarchy_picker/pkg/model"
)

type variablesFile struct {
	Variables []variableDoc `yaml:"variables"`
}

type variableDoc struct {
	Name       string         `yaml:"name"`
	Label      string         `yaml:"label"`
	Type       string         `yaml:"type"`
	Multi      bool           `yaml:"multi"`
	IncludeAll bool           `yaml:"include_all"`
	Options    []model.Option `yaml:"options"`
	Current    []string       `yaml:"current"`
}

// LoadVariables reads variable definitions from a file. A missing file
// yields no variables, since variables may legitimately not exist yet.
func LoadVariables(path string) ([]model.Variable, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read variables file: %w", err)
	}
	vars, err := ParseVariables(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return vars, nil
}

// ParseVariables decodes a variables document. Variables that include the
// all option get it as their first option when it is not listed.
func ParseVariables(data []byte) ([]model.Variable, error) {
	var doc variablesFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode variables: %w", err)
	}

	vars := make([]model.Variable, 0, len(doc.Variables))
	for i, vd := range doc.Variables {
		if vd.Name == "" {
			return nil, fmt.Errorf("variable %d: name cannot be empty", i)
		}
		v := model.Variable{
			Name:       vd.Name,
			Label:      vd.Label,
			Type:       model.VariableType(vd.Type),
			Multi:      vd.Multi,
			IncludeAll: vd.IncludeAll,
			Options:    vd.Options,
			Current:    vd.Current,
			HasCurrent: vd.Current != nil,
		}
		if v.Type == "" {
			v.Type = model.VariableCustom
		}
		if v.IncludeAll && !hasAllOption(v.Options) {
			v.Options = append([]model.Option{{Value: model.AllValue, Text: model.AllText}}, v.Options...)
		}
		vars = append(vars, v)
	}
	return vars, nil
}

func hasAllOption(opts []model.Option) bool {
	for _, o := range opts {
		if o.Value == model.AllValue {
			return true
		}
	}
	return false
}
