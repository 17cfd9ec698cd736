package check

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputConstructors(t *testing.T) {
	assert.Equal(t, Output{Passed: true}, Pass())
	assert.Equal(t, Output{Passed: true, URL: ".gitignore"}, PassWithURL(".gitignore"))
	assert.False(t, NotPassed().Passed)

	err := errors.New("boom")
	out := Fail(err)
	assert.False(t, out.Passed)
	assert.Same(t, err, out.Err)
}

func TestOutput_AddDetail(t *testing.T) {
	out := NotPassed()

	got := out.AddDetail("first").AddDetailf("score: %.1f", 8.0)

	assert.Same(t, &out, got)
	assert.Equal(t, []string{"first", "score: 8.0"}, out.Details)
}

func TestFunc_Run(t *testing.T) {
	var seen *Input
	f := Func(func(in *Input) (Output, error) {
		seen = in
		return Pass(), nil
	})
	in := &Input{Root: "/repo"}

	out, err := f.Run(in)

	require.NoError(t, err)
	assert.True(t, out.Passed)
	assert.Same(t, in, seen)
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"local", ModeLocal, false},
		{"Remote", ModeRemote, false},
		{" REMOTE ", ModeRemote, false},
		{"", "", true},
		{"cloud", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInput_Local(t *testing.T) {
	assert.True(t, (&Input{Mode: ModeLocal}).Local())
	assert.True(t, (&Input{}).Local(), "zero mode must never unlock remote evidence")
	assert.False(t, (&Input{Mode: ModeRemote}).Local())
}

func TestMetadata_Validate(t *testing.T) {
	tests := []struct {
		name    string
		meta    Metadata
		wantErr bool
	}{
		{"valid", Metadata{ID: "dco", Weight: 1, Categories: []Category{CategoryCode}}, false},
		{"valid with external name", Metadata{ID: "maintained", Weight: 3, Categories: []Category{CategoryCode}, ExternalName: "Maintained"}, false},
		{"empty id", Metadata{Weight: 1, Categories: []Category{CategoryCode}}, true},
		{"zero weight", Metadata{ID: "x", Categories: []Category{CategoryCode}}, true},
		{"negative weight", Metadata{ID: "x", Weight: -2, Categories: []Category{CategoryCode}}, true},
		{"no categories", Metadata{ID: "x", Weight: 1}, true},
		{"unknown category", Metadata{ID: "x", Weight: 1, Categories: []Category{"docs"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.meta.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMetadata_InCategory(t *testing.T) {
	m := Metadata{ID: "dco", Weight: 1, Categories: []Category{CategoryCode, CategoryCodeLite}}

	assert.True(t, m.InCategory(CategoryCodeLite))
	assert.False(t, m.InCategory(CategoryCommunity))
}
