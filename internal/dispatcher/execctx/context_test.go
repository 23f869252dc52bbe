package execctx

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dshills/lineup/internal/align"
	"github.com/dshills/lineup/internal/engine"
)

func TestZeroContext(t *testing.T) {
	ctx := &ExecutionContext{}

	assert.False(t, ctx.DryRun)
	assert.NotNil(t, ctx.Log())
	assert.NotPanics(t, func() { ctx.Report("ignored") })
}

func TestContextReportAndLog(t *testing.T) {
	rules := StaticRules{Rules: []align.Rule{{Name: "equals", Matches: []string{"="}}}}
	var got []string
	var logs bytes.Buffer

	ctx := &ExecutionContext{
		Rules:  rules,
		Status: func(msg string) { got = append(got, msg) },
		Logger: slog.New(slog.NewTextHandler(&logs, nil)),
	}

	ctx.Report("hello")
	ctx.Log().Info("logged")

	assert.Equal(t, []string{"hello"}, got)
	assert.Contains(t, logs.String(), "logged")

	rs, defaults := ctx.Rules.AlignSettings()
	assert.Len(t, rs, 1)
	assert.Equal(t, align.Defaults{}, defaults)
}

func TestValidate(t *testing.T) {
	ctx := &ExecutionContext{}
	assert.ErrorIs(t, ctx.Validate(), ErrMissingDocument)

	ctx.Document = engine.New("x")
	assert.NoError(t, ctx.ValidateForEdit())
	assert.ErrorIs(t, ctx.ValidateForAlign(), ErrMissingRules)

	ctx.Rules = StaticRules{}
	assert.NoError(t, ctx.ValidateForAlign())
}

func TestValidateForEditReadOnly(t *testing.T) {
	ctx := &ExecutionContext{Document: engine.New("x", engine.WithReadOnly())}

	assert.True(t, ctx.IsReadOnly())
	assert.ErrorIs(t, ctx.ValidateForEdit(), ErrReadOnly)

	ctx.DryRun = true
	assert.NoError(t, ctx.ValidateForEdit())
}
