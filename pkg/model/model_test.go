package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevelSource(t *testing.T) {
	tests := []struct {
		name    string
		raw     any
		want    LevelSource
		wantErr bool
	}{
		{"ref id", "A", SourceRef("A"), false},
		{"numeric string stays a ref", "0", SourceRef("0"), false},
		{"int", 1, SourceIndex(1), false},
		{"int64", int64(2), SourceIndex(2), false},
		{"uint64", uint64(3), SourceIndex(3), false},
		{"integral float", float64(4), SourceIndex(4), false},
		{"fractional float", 1.5, LevelSource{}, true},
		{"nil", nil, LevelSource{}, true},
		{"bool", true, LevelSource{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevelSource(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindFrame(t *testing.T) {
	frames := []Frame{{RefID: "A"}, {RefID: "B"}}

	assert.Equal(t, "B", FindFrame(frames, SourceRef("B")).RefID)
	assert.Equal(t, "A", FindFrame(frames, SourceIndex(0)).RefID)
	assert.Nil(t, FindFrame(frames, SourceRef("C")))
	assert.Nil(t, FindFrame(frames, SourceIndex(2)))
	assert.Nil(t, FindFrame(frames, SourceIndex(-1)))
}

func TestLevelsGroupValidate(t *testing.T) {
	ok := LevelsGroup{Name: "g", Levels: []Level{{Name: "a"}, {Name: "b"}}}
	assert.NoError(t, ok.Validate())
	assert.Equal(t, "b", ok.Last().Name)

	assert.Error(t, LevelsGroup{Levels: ok.Levels}.Validate())
	assert.Error(t, LevelsGroup{Name: "g"}.Validate())
	assert.Error(t, LevelsGroup{Name: "g", Levels: []Level{{Name: "a"}, {Name: "a"}}}.Validate())

	clone := ok.Clone()
	clone.Levels[0].Name = "changed"
	assert.Equal(t, "a", ok.Levels[0].Name)
}

func TestAllSentinel(t *testing.T) {
	assert.True(t, IsAll("All"))
	assert.True(t, IsAll("all"))
	assert.True(t, IsAll("ALL"))
	assert.True(t, IsAll(AllValue))
	assert.False(t, IsAll("Alles"))
	assert.False(t, IsAll(""))

	assert.Equal(t, AllText, NormalizeValue(AllValue))
	assert.Equal(t, "x", NormalizeValue("x"))
	assert.Equal(t, AllText, Option{Value: AllValue}.DisplayText())
}

func TestVariableKind(t *testing.T) {
	tests := []struct {
		v    *Variable
		want Kind
	}{
		{&Variable{Type: VariableCustom}, KindSingleSelect},
		{&Variable{Type: VariableQuery, Multi: true}, KindMultiSelect},
		{&Variable{Type: VariableTextbox}, KindFreeText},
		{&Variable{Type: VariableConstant}, KindUnsupported},
		{&Variable{Type: VariableInterval}, KindUnsupported},
		{nil, KindUnsupported},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.Kind())
		})
	}
	assert.True(t, KindMultiSelect.HasOptions())
	assert.False(t, KindFreeText.HasOptions())
}

func TestVariableOptions(t *testing.T) {
	v := &Variable{
		Type: VariableCustom, Multi: true, IncludeAll: true,
		Options: []Option{
			{Value: AllValue, Text: AllText},
			{Value: "d1", Text: "Device 1", Selected: true},
			{Value: "d2"},
		},
	}
	assert.True(t, v.HasOption("All"), "the all option matches its display string")
	assert.False(t, v.HasOption(AllValue))
	assert.True(t, v.HasOption("d2"))
	assert.Equal(t, []string{"Device 1"}, v.SelectedTexts())
	assert.False(t, v.IsSelectedAll())

	v.Current = []string{"all"}
	assert.True(t, v.IsSelectedAll())

	var missing *Variable
	assert.False(t, missing.HasOption("d1"))
	assert.False(t, missing.IsSelectedAll())
	assert.Nil(t, missing.SelectedTexts())

	clone := v.Clone()
	clone.Options[1].Selected = false
	assert.True(t, v.Options[1].Selected)
}

type named string

func (n named) String() string { return "n:" + string(n) }

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "USA", FormatValue("USA"))
	assert.Equal(t, "95", FormatValue(95.0))
	assert.Equal(t, "50.5", FormatValue(50.5))
	assert.Equal(t, "7", FormatValue(7))
	assert.Equal(t, "true", FormatValue(true))
	assert.Equal(t, "n:x", FormatValue(named("x")))
}

func TestNumericValue(t *testing.T) {
	for _, v := range []any{1, int64(1), uint8(1), float32(1), 1.0, " 1 "} {
		got, ok := NumericValue(v)
		assert.True(t, ok, "%T", v)
		assert.Equal(t, 1.0, got)
	}
	for _, v := range []any{nil, "abc", true, math.NaN(), "NaN"} {
		_, ok := NumericValue(v)
		assert.False(t, ok, "%v", v)
	}
}

func TestTableItemValues(t *testing.T) {
	leaf := TableItem{Value: "d1"}
	assert.Equal(t, []string{"d1"}, leaf.Values())
	assert.True(t, leaf.IsLeaf())
	assert.False(t, leaf.Favorite())

	yes := true
	leaf.IsFavorite = &yes
	assert.True(t, leaf.Favorite())

	group := TableItem{Value: "USA", Children: []TableItem{leaf}, ChildValues: []string{"d1"}}
	assert.Equal(t, []string{"d1"}, group.Values())
	assert.False(t, group.IsLeaf())
}
