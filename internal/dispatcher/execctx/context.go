// Package execctx provides the execution context for action handlers.
package execctx

import (
	"log/slog"

	"github.com/dshills/lineup/internal/align"
	"github.com/dshills/lineup/internal/engine/buffer"
	"github.com/dshills/lineup/internal/engine/cursor"
	"github.com/dshills/lineup/internal/engine/history"
)

// Document abstracts the document handlers operate on.
type Document interface {
	// Buffer gives read access to the text.
	Buffer() *buffer.Buffer

	// Cursors returns a snapshot of the selections.
	Cursors() *cursor.CursorSet

	// Edit runs fn as one undoable command.
	Edit(name string, fn func(tx *history.Transaction) error) error

	IsReadOnly() bool
}

// RuleSource supplies the alignment rules and defaults.
// One call yields one consistent snapshot for a whole command.
type RuleSource interface {
	AlignSettings() ([]align.Rule, align.Defaults)
}

// StaticRules is a RuleSource with fixed contents.
type StaticRules struct {
	Rules    []align.Rule
	Defaults align.Defaults
}

// AlignSettings implements RuleSource.
func (s StaticRules) AlignSettings() ([]align.Rule, align.Defaults) {
	return s.Rules, s.Defaults
}

// ExecutionContext is everything a handler sees for one dispatch.
// The dispatcher builds a fresh one per action.
type ExecutionContext struct {
	Document Document
	Rules    RuleSource

	// Status receives user-visible status messages.
	Status func(msg string)

	// Logger receives diagnostics. Nil discards.
	Logger *slog.Logger

	FilePath string

	// DryRun computes changes without applying them.
	DryRun bool
}

// Report sends msg to the status sink, if any.
func (ctx *ExecutionContext) Report(msg string) {
	if ctx.Status != nil {
		ctx.Status(msg)
	}
}

// Log returns the context logger, never nil.
func (ctx *ExecutionContext) Log() *slog.Logger {
	if ctx.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return ctx.Logger
}

// IsReadOnly reports whether the document refuses edits.
func (ctx *ExecutionContext) IsReadOnly() bool {
	return ctx.Document != nil && ctx.Document.IsReadOnly()
}

// Validate checks that the context has a document.
func (ctx *ExecutionContext) Validate() error {
	if ctx.Document == nil {
		return ErrMissingDocument
	}
	return nil
}

// ValidateForEdit also rejects read-only documents outside a dry run.
func (ctx *ExecutionContext) ValidateForEdit() error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	if ctx.IsReadOnly() && !ctx.DryRun {
		return ErrReadOnly
	}
	return nil
}

// ValidateForAlign also requires a rule source.
func (ctx *ExecutionContext) ValidateForAlign() error {
	if err := ctx.ValidateForEdit(); err != nil {
		return err
	}
	if ctx.Rules == nil {
		return ErrMissingRules
	}
	return nil
}
