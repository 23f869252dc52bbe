package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("LINEUP_CONFIG", "")
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseLines(t *testing.T) {
	tests := []struct {
		arg         string
		first, last uint32
		wantErr     bool
	}{
		{"", 0, 4, false},
		{"2-3", 1, 2, false},
		{"4", 3, 3, false},
		{"0-2", 0, 0, true},
		{"3-2", 0, 0, true},
		{"1-9", 0, 0, true},
		{"a-b", 0, 0, true},
	}

	for _, tt := range tests {
		first, last, err := parseLines(tt.arg, 5)
		if tt.wantErr {
			assert.Error(t, err, "arg %q", tt.arg)
			continue
		}
		require.NoError(t, err, "arg %q", tt.arg)
		assert.Equal(t, tt.first, first, "arg %q", tt.arg)
		assert.Equal(t, tt.last, last, "arg %q", tt.arg)
	}
}

func TestRunStdin(t *testing.T) {
	code, out, _ := runCLI(t, "x = 1\nlonger = 2\n", "-lines", "1-2")

	assert.Equal(t, 0, code)
	assert.Equal(t, "x      = 1\nlonger = 2\n", out)
}

func TestRunLeft(t *testing.T) {
	code, out, _ := runCLI(t, "  a\n    b", "-left", "-bias-left")

	assert.Equal(t, 0, code)
	assert.Equal(t, "a\nb", out)
}

func TestRunList(t *testing.T) {
	code, out, _ := runCLI(t, "", "-list")

	assert.Equal(t, 0, code)
	assert.Equal(t, "equals\ncolon\ncomment\narrow\n", out)
}

func TestRunDryRun(t *testing.T) {
	code, out, _ := runCLI(t, "x = 1\nlonger = 2", "-dry-run")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "rule equals score 5")
	assert.Contains(t, out, "offset 2 +5")
}

func TestRunWriteInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vars.txt")
	require.NoError(t, os.WriteFile(path, []byte("a: 1\r\nbbb: 2\r\n"), 0o600))

	code, out, _ := runCLI(t, "", "-w", "-match", "colon", "-lines", "1-2", path)
	require.Equal(t, 0, code)
	assert.Empty(t, out)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a  : 1\r\nbbb: 2\r\n", string(got))
}

func TestRunScript(t *testing.T) {
	script := filepath.Join(t.TempDir(), "s.lua")
	require.NoError(t, os.WriteFile(script, []byte(`align.match(1, 2, "equals")`), 0o644))

	code, out, _ := runCLI(t, "x = 1\nlonger = 2", "-script", script)

	assert.Equal(t, 0, code)
	assert.Equal(t, "x      = 1\nlonger = 2", out)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"unknown rule", []string{"-match", "nope"}, 1, "unknown alignment: nope"},
		{"bad range", []string{"-lines", "5-9"}, 1, "outside"},
		{"write without file", []string{"-w"}, 2, "-w requires a file"},
		{"bad log level", []string{"-log-level", "loud"}, 2, "invalid log level"},
		{"watch and write", []string{"-watch", "-w", "f.txt"}, 2, "-watch cannot be combined"},
		{"watch without config", []string{"-watch"}, 1, "-watch requires a config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, errOut := runCLI(t, "a = 1", tt.args...)
			assert.Equal(t, tt.code, code)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestRunVersion(t *testing.T) {
	code, out, _ := runCLI(t, "", "-version")

	assert.Equal(t, 0, code)
	assert.Contains(t, out, "lineup dev")
}

func TestRunStats(t *testing.T) {
	code, _, errOut := runCLI(t, "x = 1\nlonger = 2", "-stats")

	assert.Equal(t, 0, code)
	assert.Contains(t, errOut, "align.match: 1 dispatch (ok 1, no-op 0, error 0, cancelled 0)")
}

func TestRunStatsReportsFailures(t *testing.T) {
	code, _, errOut := runCLI(t, "a = 1", "-stats", "-match", "nope")

	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "align.match: 1 dispatch (ok 0, no-op 0, error 1, cancelled 0)")
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatchRealignsOnConfigChange(t *testing.T) {
	t.Setenv("LINEUP_CONFIG", "")
	cfgPath := filepath.Join(t.TempDir(), "lineup.toml")
	writeRule := func(match string) {
		body := fmt.Sprintf("replace_defaults = true\n[[alignment]]\nname = \"only\"\nmatches = [%q]\npre_space_policy = \"keep\"\n", match)
		require.NoError(t, os.WriteFile(cfgPath, []byte(body), 0o644))
	}
	writeRule("=")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stdout, stderr lockedBuffer
	done := make(chan int, 1)
	go func() {
		done <- run(ctx, []string{"-watch", "-c", cfgPath}, strings.NewReader("a = 1\nbbb = 2\nk: v\nkey: v"), &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "a   = 1\nbbb = 2\nk: v\nkey: v")
	}, 2*time.Second, 20*time.Millisecond)

	writeRule(":")
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "a = 1\nbbb = 2\nk  : v\nkey: v")
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case code := <-done:
		assert.Equal(t, 0, code, stderr.String())
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
