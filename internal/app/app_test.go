package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/lineup/internal/config/loader"
	alignh "github.com/dshills/lineup/internal/dispatcher/handlers/align"
)

type statusLog struct {
	mu       sync.Mutex
	messages []string
}

func (s *statusLog) add(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

func newTestApp(t *testing.T, opts Options) (*Application, *statusLog) {
	t.Helper()
	status := &statusLog{}
	if opts.Env == nil {
		opts.Env = &loader.Env{}
	}
	opts.Status = status.add

	app, err := New(opts)
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)
	return app, status
}

func TestApplicationBuiltinRules(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	assert.Equal(t, []string{"equals", "colon", "comment", "arrow"}, app.Rules())
}

func TestApplicationAlignMatch(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	require.NoError(t, app.Open(strings.NewReader("x = 1\nlonger = 2\n"), "vars.txt"))

	result, err := app.AlignMatch(0, 1, "auto", false)
	require.NoError(t, err)

	assert.True(t, result.GetDataBool(alignh.DataChanged))
	assert.Equal(t, "x      = 1\nlonger = 2\n", app.Document().Text())
}

func TestApplicationAlignMatchDryRun(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	require.NoError(t, app.Open(strings.NewReader("x = 1\nlonger = 2"), ""))

	result, err := app.AlignMatch(0, 1, "equals", true)
	require.NoError(t, err)

	assert.Equal(t, "x = 1\nlonger = 2", app.Document().Text())
	assert.Equal(t, "x      = 1\nlonger = 2", result.Data[alignh.DataPreview])
}

func TestApplicationAlignLeft(t *testing.T) {
	app, _ := newTestApp(t, Options{})
	require.NoError(t, app.Open(strings.NewReader("  a\n    b"), ""))

	_, err := app.AlignLeft(0, 1, false, false)
	require.NoError(t, err)
	assert.Equal(t, "    a\n    b", app.Document().Text())
}

func TestApplicationErrors(t *testing.T) {
	app, _ := newTestApp(t, Options{})

	_, err := app.AlignMatch(0, 0, "auto", false)
	assert.ErrorIs(t, err, ErrNoDocument)
	assert.ErrorIs(t, app.RunScript("x.lua"), ErrNoDocument)

	require.NoError(t, app.Open(strings.NewReader("a = 1"), ""))

	_, err = app.AlignMatch(0, 3, "auto", false)
	assert.ErrorIs(t, err, ErrLineRange)

	_, err = app.AlignMatch(0, 0, "missing", false)
	var aerr *ActionError
	require.True(t, errors.As(err, &aerr))
	assert.Equal(t, alignh.ActionMatch, aerr.Action)
}

func TestApplicationReadOnly(t *testing.T) {
	app, _ := newTestApp(t, Options{ReadOnly: true})
	require.NoError(t, app.Open(strings.NewReader("x = 1\nlonger = 2"), ""))

	_, err := app.AlignMatch(0, 1, "auto", false)
	assert.Error(t, err)
	assert.Equal(t, "x = 1\nlonger = 2", app.Document().Text())

	result, err := app.AlignMatch(0, 1, "auto", true)
	require.NoError(t, err)
	assert.Equal(t, "x      = 1\nlonger = 2", result.Data[alignh.DataPreview])
}

func TestApplicationConfigFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("replace_defaults: true\nalignment:\n  - name: pipe\n    matches: [\"|\"]\n"), 0o644))

	policy := "keep"
	app, _ := newTestApp(t, Options{Env: &loader.Env{
		ConfigPath: path,
		Defaults:   loader.Defaults{PreSpacePolicy: &policy},
	}})

	assert.Equal(t, []string{"pipe"}, app.Rules())
	_, defaults := app.Config().AlignSettings()
	assert.Equal(t, "keep", string(defaults.PreSpacePolicy))
}

func TestApplicationConfigError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineup.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[alignment"), 0o644))

	_, err := New(Options{ConfigPath: path, Env: &loader.Env{}})

	var ierr *InitError
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "config", ierr.Component)
}

func TestApplicationWatchReloadsConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lineup.toml")
	require.NoError(t, os.WriteFile(path, []byte("replace_defaults = true\n[[alignment]]\nname = \"one\"\nmatches = [\"=\"]\n"), 0o644))

	reloaded := make(chan struct{}, 1)
	app, _ := newTestApp(t, Options{
		ConfigPath:  path,
		WatchConfig: true,
		OnReload: func() {
			select {
			case reloaded <- struct{}{}:
			default:
			}
		},
	})
	require.Equal(t, []string{"one"}, app.Rules())

	require.NoError(t, os.WriteFile(path, []byte("replace_defaults = true\n[[alignment]]\nname = \"two\"\nmatches = [\":\"]\n"), 0o644))

	require.Eventually(t, func() bool {
		rules := app.Rules()
		return len(rules) == 1 && rules[0] == "two"
	}, 2*time.Second, 20*time.Millisecond)

	select {
	case <-reloaded:
	case <-time.After(2 * time.Second):
		t.Fatal("reload callback not called")
	}
}

func TestApplicationStats(t *testing.T) {
	app, _ := newTestApp(t, Options{Stats: true})
	require.NoError(t, app.Open(strings.NewReader("x = 1\nlonger = 2"), ""))

	_, err := app.AlignMatch(0, 1, "auto", false)
	require.NoError(t, err)
	_, err = app.AlignMatch(0, 1, "auto", true)
	require.NoError(t, err)

	stats := app.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, alignh.ActionMatch, stats[0].Action)
	assert.Equal(t, 2, stats[0].Count)

	plain, _ := newTestApp(t, Options{})
	assert.Nil(t, plain.Stats())
}

func TestApplicationRunScript(t *testing.T) {
	app, status := newTestApp(t, Options{})
	require.NoError(t, app.Open(strings.NewReader("x = 1\nlonger = 2\nk: v\nkey: v"), ""))

	script := filepath.Join(t.TempDir(), "align.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
for i = 1, align.line_count(), 2 do
  align.match(i, i + 1)
end
`), 0o644))

	require.NoError(t, app.RunScript(script))
	assert.Equal(t, "x      = 1\nlonger = 2\nk  : v\nkey: v", app.Document().Text())
	assert.Empty(t, status.messages)
}

func TestApplicationLogsDispatch(t *testing.T) {
	var logs bytes.Buffer
	app, _ := newTestApp(t, Options{Logger: NewLogger("debug", &logs)})
	require.NoError(t, app.Open(strings.NewReader("a = 1"), ""))

	_, err := app.AlignMatch(0, 0, "auto", false)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "dispatching action")
}
