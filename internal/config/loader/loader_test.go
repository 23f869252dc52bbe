package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tomlConfig = `
replace_defaults = true

[defaults]
pre_space_policy = "keep"
add_post_space = true

[[alignment]]
name = "equals"
matches = ["=", "+="]
prefixes = ["!"]
pre_space_policy = "one"

[[alignment]]
name = "arrow"
matches = ["->"]
bias_left = true

[alignments.colon]
matches = [":"]
add_post_space = false
`

const yamlConfig = `
defaults:
  multi_match_policy: last
alignment:
  - name: equals
    matches: ["="]
    multi_match_policy: skip
alignments:
  colon:
    matches: [":"]
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFileTOML(t *testing.T) {
	f, err := LoadFile(writeFile(t, "lineup.toml", tomlConfig))
	require.NoError(t, err)
	require.NotNil(t, f)

	assert.True(t, f.ReplaceDefaults)
	require.NotNil(t, f.Defaults)
	assert.Equal(t, "keep", *f.Defaults.PreSpacePolicy)
	assert.True(t, *f.Defaults.AddPostSpace)
	assert.Nil(t, f.Defaults.MultiMatchPolicy)

	require.Len(t, f.Alignment, 2)
	assert.Equal(t, "equals", f.Alignment[0].Name)
	assert.Equal(t, []string{"=", "+="}, f.Alignment[0].Matches)
	assert.Equal(t, []string{"!"}, f.Alignment[0].Prefixes)
	assert.Equal(t, "one", f.Alignment[0].PreSpacePolicy)
	assert.Nil(t, f.Alignment[0].AddPostSpace)
	assert.True(t, f.Alignment[1].BiasLeft)

	colon, ok := f.Alignments["colon"]
	require.True(t, ok)
	assert.Equal(t, []string{":"}, colon.Matches)
	require.NotNil(t, colon.AddPostSpace)
	assert.False(t, *colon.AddPostSpace)
}

func TestLoadFileYAML(t *testing.T) {
	for _, name := range []string{"lineup.yaml", "lineup.yml"} {
		t.Run(name, func(t *testing.T) {
			f, err := LoadFile(writeFile(t, name, yamlConfig))
			require.NoError(t, err)

			assert.False(t, f.ReplaceDefaults)
			assert.Equal(t, "last", *f.Defaults.MultiMatchPolicy)
			require.Len(t, f.Alignment, 1)
			assert.Equal(t, "skip", f.Alignment[0].MultiMatchPolicy)
			assert.Contains(t, f.Alignments, "colon")
		})
	}
}

func TestLoadFileEmptyYAML(t *testing.T) {
	f, err := LoadFile(writeFile(t, "empty.yaml", ""))
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Empty(t, f.Alignment)
}

func TestLoadFileMissing(t *testing.T) {
	f, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.NoError(t, err)
	assert.Nil(t, f)
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	_, err := LoadFile(writeFile(t, "lineup.json", "{}"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadFileParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad.toml", "[[alignment]\nname = "},
		{"bad.yaml", "alignment: [\n  - name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFile(writeFile(t, tt.name, tt.content))

			var perr *ParseError
			require.ErrorAs(t, err, &perr)
			assert.Contains(t, perr.Path, tt.name)
			assert.Contains(t, err.Error(), "parse error in")
		})
	}
}

func TestTOMLParseErrorPosition(t *testing.T) {
	_, err := TOMLDecoder{}.Decode("inline", []byte("replace_defaults = true\nname = = 1"))

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 2, perr.Line)
	assert.Contains(t, err.Error(), "at line 2")
}

func TestLoadReader(t *testing.T) {
	f, err := LoadReader("stdin.toml", strings.NewReader(tomlConfig))
	require.NoError(t, err)
	assert.Len(t, f.Alignment, 2)
}
