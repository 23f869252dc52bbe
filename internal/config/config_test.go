package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lineup/internal/align"
	"github.com/dshills/lineup/internal/config/loader"
	"github.com/dshills/lineup/internal/engine/buffer"
)

func strPtr(s string) *string { return &s }

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, align.DefaultDefaults(), cfg.Defaults)
	assert.Equal(t, []string{"equals", "colon", "comment", "arrow"}, cfg.RuleNames())
}

func TestBuiltinRulesAlign(t *testing.T) {
	tests := []struct {
		rule string
		in   string
		want string
	}{
		{"equals", "a = 1\nbbb != 2", "a   = 1\nbbb != 2"},
		{"equals", "a == b\nccc = d", "a   == b\nccc = d"},
		{"equals", "x => 1\nyyy = 2", "x   => 1\nyyy = 2"},
		{"colon", "a: 1\nbbb:2", "a  : 1\nbbb: 2"},
		{"comment", "x // one\nlonger // two", "x      // one\nlonger // two"},
		{"arrow", "a->b\nccc -> d", "a   -> b\nccc -> d"},
	}

	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			buf := buffer.NewBufferFromString(tt.in)
			rules, defaults := Default().AlignSettings()

			_, err := align.New(align.WithDefaults(defaults)).
				MatchAlign(buf, align.LineRange(0, 1), rules, tt.rule)
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.Text())
		})
	}
}

func TestApplyFileLayering(t *testing.T) {
	f := &loader.File{
		Defaults: &loader.Defaults{MultiMatchPolicy: strPtr("last")},
		Alignment: []loader.Rule{
			{Name: "colon", Matches: []string{"::"}},
			{Name: "pipe", Matches: []string{"|"}},
		},
		Alignments: map[string]loader.Rule{
			"zeta":  {Matches: []string{"z"}},
			"alpha": {Matches: []string{"a"}},
		},
	}

	base := Default()
	cfg, err := base.ApplyFile(f)
	require.NoError(t, err)

	assert.Equal(t, []string{"equals", "colon", "comment", "arrow", "pipe", "alpha", "zeta"}, cfg.RuleNames())
	colon, _ := align.FindRule(cfg.Rules, "colon")
	assert.Equal(t, []string{"::"}, colon.Matches)
	assert.Equal(t, align.MultiMatchLast, cfg.Defaults.MultiMatchPolicy)
	assert.Equal(t, align.PreSpaceRemove, cfg.Defaults.PreSpacePolicy)

	orig, _ := align.FindRule(base.Rules, "colon")
	assert.Equal(t, []string{":"}, orig.Matches, "base config is not modified")
}

func TestApplyFileReplaceDefaults(t *testing.T) {
	cfg, err := Default().ApplyFile(&loader.File{
		ReplaceDefaults: true,
		Alignment:       []loader.Rule{{Name: "only", Matches: []string{"="}}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"only"}, cfg.RuleNames())
}

func TestApplyFileUnnamedRule(t *testing.T) {
	_, err := Default().ApplyFile(&loader.File{Alignment: []loader.Rule{{Matches: []string{"="}}}})
	assert.ErrorIs(t, err, ErrUnnamedRule)
}

func TestApplyFileKeepsUnknownPolicies(t *testing.T) {
	cfg, err := Default().ApplyFile(&loader.File{
		Alignment: []loader.Rule{{Name: "odd", Matches: []string{"="}, PreSpacePolicy: "lots"}},
	})
	require.NoError(t, err)

	odd, ok := align.FindRule(cfg.Rules, "odd")
	require.True(t, ok)
	assert.Equal(t, align.PreSpacePolicy("lots"), odd.PreSpacePolicy)
}

func TestApplyEnv(t *testing.T) {
	post := true
	cfg := Default().ApplyEnv(loader.Env{Defaults: loader.Defaults{
		PreSpacePolicy: strPtr("two"),
		AddPostSpace:   &post,
	}})

	assert.Equal(t, align.PreSpaceTwo, cfg.Defaults.PreSpacePolicy)
	assert.True(t, cfg.Defaults.AddPostSpace)
	assert.Equal(t, align.MultiMatchFirst, cfg.Defaults.MultiMatchPolicy)
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "lineup.toml", `
[defaults]
pre_space_policy = "keep"

[[alignment]]
name = "pipe"
matches = ["|"]
`)

	cfg, err := Load(path, loader.Env{Defaults: loader.Defaults{PreSpacePolicy: strPtr("four")}})
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Path)
	assert.Contains(t, cfg.RuleNames(), "pipe")
	assert.Equal(t, align.PreSpaceFour, cfg.Defaults.PreSpacePolicy, "environment overrides the file")
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("", loader.Env{})
	require.NoError(t, err)
	assert.Equal(t, Default().RuleNames(), cfg.RuleNames())

	cfg, err = Load(filepath.Join(t.TempDir(), "missing.toml"), loader.Env{})
	require.NoError(t, err)
	assert.Equal(t, Default().RuleNames(), cfg.RuleNames())
}

func TestLoadParseError(t *testing.T) {
	_, err := Load(writeConfig(t, "bad.toml", "[[alignment"), loader.Env{})

	var perr *loader.ParseError
	assert.ErrorAs(t, err, &perr)
}
