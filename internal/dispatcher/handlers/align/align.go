package align

import (
	"errors"
	"fmt"

	core "github.com/dshills/lineup/internal/align"
	"github.com/dshills/lineup/internal/dispatcher/execctx"
	"github.com/dshills/lineup/internal/dispatcher/handler"
	"github.com/dshills/lineup/internal/engine/buffer"
	"github.com/dshills/lineup/internal/engine/cursor"
	"github.com/dshills/lineup/internal/engine/history"
	"github.com/dshills/lineup/internal/input"
)

// Action names.
const (
	ActionLeft      = "align.left"
	ActionMatch     = "align.match"
	ActionListRules = "align.listRules"
	ActionPick      = "align.pick"
)

// Argument names.
const (
	ArgBiasLeft  = "bias_left"
	ArgMatchName = "match_name"
	ArgIndex     = "index"
)

// Result data keys.
const (
	DataChanged = "changed"
	DataRules   = "rules"
	DataPlans   = "plans"
	DataPreview = "preview"
)

// Status messages.
const (
	MsgNoAlignments = "No alignments available"
	msgAligningOn   = "Aligning on %s"
)

// EditName is the undo group name used for alignment edits.
const EditName = "Align"

var _ core.Text = (*history.Transaction)(nil)

// AlignHandler handles the align namespace.
type AlignHandler struct{}

// NewAlignHandler creates a new align handler.
func NewAlignHandler() *AlignHandler {
	return &AlignHandler{}
}

// Namespace returns the align namespace.
func (h *AlignHandler) Namespace() string {
	return "align"
}

// CanHandle returns true if this handler can process the action.
func (h *AlignHandler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionLeft, ActionMatch, ActionListRules, ActionPick:
		return true
	}
	return false
}

// HandleAction processes an align action.
func (h *AlignHandler) HandleAction(action input.Action, ctx *execctx.ExecutionContext) handler.Result {
	switch action.Name {
	case ActionLeft:
		if err := ctx.ValidateForEdit(); err != nil {
			return handler.Error(err)
		}
		return h.left(ctx, action.Args.GetBool(ArgBiasLeft))
	case ActionMatch:
		if err := ctx.ValidateForAlign(); err != nil {
			return handler.Error(err)
		}
		name := action.Args.GetString(ArgMatchName)
		if name == "" {
			name = core.Auto
		}
		return h.match(ctx, name)
	case ActionListRules:
		return h.listRules(ctx)
	case ActionPick:
		if err := ctx.ValidateForAlign(); err != nil {
			return handler.Error(err)
		}
		return h.pick(ctx, action.Args)
	default:
		return handler.Errorf("unknown align action: %s", action.Name)
	}
}

// planFunc computes the plan for one selection's lines.
type planFunc func(t core.Text, lines core.LineSet) (core.Plan, error)

func (h *AlignHandler) left(ctx *execctx.ExecutionContext, biasLeft bool) handler.Result {
	aligner := newAligner(ctx, core.DefaultDefaults())
	return h.run(ctx, func(t core.Text, lines core.LineSet) (core.Plan, error) {
		return aligner.PlanLeftAlign(t, lines, biasLeft), nil
	})
}

func (h *AlignHandler) match(ctx *execctx.ExecutionContext, name string) handler.Result {
	rules, defaults := ctx.Rules.AlignSettings()
	aligner := newAligner(ctx, defaults)
	return h.run(ctx, func(t core.Text, lines core.LineSet) (core.Plan, error) {
		return aligner.Choose(t, lines, rules, name)
	})
}

func (h *AlignHandler) listRules(ctx *execctx.ExecutionContext) handler.Result {
	if ctx.Rules == nil {
		return handler.Error(execctx.ErrMissingRules)
	}
	rules, _ := ctx.Rules.AlignSettings()
	names := core.RuleNames(rules)
	if len(names) == 0 {
		ctx.Report(MsgNoAlignments)
		return handler.NoOpWithMessage(MsgNoAlignments).WithData(DataRules, names)
	}
	return handler.Success().WithData(DataRules, names)
}

func (h *AlignHandler) pick(ctx *execctx.ExecutionContext, args input.ActionArgs) handler.Result {
	rules, _ := ctx.Rules.AlignSettings()
	if len(rules) == 0 {
		ctx.Report(MsgNoAlignments)
		return handler.NoOpWithMessage(MsgNoAlignments)
	}

	if _, ok := args.Get(ArgIndex); !ok {
		return handler.Errorf("%s requires %s", ActionPick, ArgIndex)
	}
	index := args.GetInt(ArgIndex)
	if index < 0 {
		return handler.Cancelled()
	}
	if index >= len(rules) {
		return handler.Errorf("alignment index %d out of range (%d rules)", index, len(rules))
	}

	name := rules[index].Name
	ctx.Report(fmt.Sprintf(msgAligningOn, name))
	return h.match(ctx, name)
}

// run applies plan to every selection in turn. Line spans are taken from
// the selections before any edit.
func (h *AlignHandler) run(ctx *execctx.ExecutionContext, plan planFunc) handler.Result {
	doc := ctx.Document
	buf := doc.Buffer()
	spans := doc.Cursors().LineSpans(buf)

	if ctx.DryRun {
		scratch := buffer.NewBufferFromString(buf.Text())
		plans, changed, err := applySpans(scratch, spans, plan)
		if err != nil {
			return h.failure(ctx, err)
		}
		return h.success(spans, plans, changed).
			WithData(DataPlans, plans).
			WithData(DataPreview, scratch.Text())
	}

	var plans []core.Plan
	var changed bool
	err := doc.Edit(EditName, func(tx *history.Transaction) error {
		var err error
		plans, changed, err = applySpans(tx, spans, plan)
		return err
	})
	if err != nil {
		return h.failure(ctx, err)
	}
	return h.success(spans, plans, changed)
}

func applySpans(t core.Text, spans []cursor.LineSpan, plan planFunc) ([]core.Plan, bool, error) {
	plans := make([]core.Plan, 0, len(spans))
	changed := false
	for _, span := range spans {
		p, err := plan(t, core.LineRange(span.First, span.Last))
		if err != nil {
			return plans, changed, err
		}
		plans = append(plans, p)

		edited, err := core.ApplyPaddings(t, p.Paddings)
		changed = changed || edited
		if err != nil {
			return plans, changed, err
		}
	}
	return plans, changed, nil
}

func (h *AlignHandler) success(spans []cursor.LineSpan, plans []core.Plan, changed bool) handler.Result {
	rules := make([]string, 0, len(plans))
	for _, p := range plans {
		if p.Rule != "" {
			rules = append(rules, p.Rule)
		}
	}

	if !changed {
		return handler.NoOp().WithData(DataChanged, false).WithData(DataRules, rules)
	}

	r := handler.Success().WithData(DataChanged, true).WithData(DataRules, rules)
	for _, span := range spans {
		for line := span.First; line <= span.Last; line++ {
			r = r.WithRedrawLines(line)
		}
	}
	return r
}

// failure maps alignment errors to results. Problems the user can fix in
// configuration become status messages; everything else is an error.
func (h *AlignHandler) failure(ctx *execctx.ExecutionContext, err error) handler.Result {
	switch {
	case errors.Is(err, core.ErrUnrecognizedPolicy):
		ctx.Report(err.Error())
		return handler.NoOpWithMessage(err.Error())
	case errors.Is(err, core.ErrNoRules):
		ctx.Report(MsgNoAlignments)
		return handler.NoOpWithMessage(MsgNoAlignments)
	default:
		ctx.Log().Error("alignment failed", "error", err)
		return handler.Error(err)
	}
}

func newAligner(ctx *execctx.ExecutionContext, defaults core.Defaults) *core.Aligner {
	return core.New(
		core.WithDefaults(defaults),
		core.WithLogger(ctx.Log()),
		core.WithStatus(ctx.Report),
	)
}
