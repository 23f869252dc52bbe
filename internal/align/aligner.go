package align

import (
	"errors"
	"fmt"
	"log/slog"
)

// StatusFunc receives user-visible status messages.
type StatusFunc func(msg string)

// Aligner runs left and match alignment with a fixed set of defaults.
// It holds no per-buffer state; the caller serializes commands per buffer.
type Aligner struct {
	defaults Defaults
	logger   *slog.Logger
	status   StatusFunc
}

// Option configures an Aligner.
type Option func(*Aligner)

// WithDefaults sets the defaults merged into every rule.
func WithDefaults(d Defaults) Option {
	return func(a *Aligner) {
		a.defaults = d
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Aligner) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithStatus sets the sink for messages about rules skipped in auto mode.
func WithStatus(fn StatusFunc) Option {
	return func(a *Aligner) {
		a.status = fn
	}
}

// New creates an Aligner.
func New(opts ...Option) *Aligner {
	a := &Aligner{
		defaults: DefaultDefaults(),
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Defaults returns the aligner's defaults.
func (a *Aligner) Defaults() Defaults {
	return a.defaults
}

// Plan is a computed, not yet applied, padding set.
type Plan struct {
	Rule     string
	Paddings []Padding
	Score    int
}

// LeftAlign aligns the left edges of lines.
func (a *Aligner) LeftAlign(t Text, lines LineSet, biasLeft bool) (bool, error) {
	return ApplyPaddings(t, a.PlanLeftAlign(t, lines, biasLeft).Paddings)
}

// PlanLeftAlign computes the plan LeftAlign would apply.
func (a *Aligner) PlanLeftAlign(t Text, lines LineSet, biasLeft bool) Plan {
	pads := PlanLeft(t, lines, biasLeft)
	a.logger.Debug("left align", "lines", lines.Len(), "bias_left", biasLeft, "paddings", len(pads))
	return Plan{Paddings: pads, Score: Score(pads)}
}

// MatchAlign aligns lines on the rule called name, or on the best scoring
// rule when name is Auto, and reports whether the buffer changed.
func (a *Aligner) MatchAlign(t Text, lines LineSet, rules []Rule, name string) (bool, error) {
	plan, err := a.Choose(t, lines, rules, name)
	if err != nil {
		return false, err
	}
	return ApplyPaddings(t, plan.Paddings)
}

// Choose computes the plan MatchAlign would apply.
//
// In Auto mode a rule with an unrecognized policy is reported to the status
// sink and left out; the remaining rules still compete. If every rule fails
// the returned plan is empty. For a named rule the error is returned.
func (a *Aligner) Choose(t Text, lines LineSet, rules []Rule, name string) (Plan, error) {
	if len(rules) == 0 {
		return Plan{}, ErrNoRules
	}

	if name != Auto {
		rule, ok := FindRule(rules, name)
		if !ok {
			return Plan{}, fmt.Errorf("%w: %s", ErrUnknownRule, name)
		}
		return a.plan(t, lines, rule)
	}

	var best Plan
	found := false
	for _, rule := range rules {
		p, err := a.plan(t, lines, rule)
		if err != nil {
			if !errors.Is(err, ErrUnrecognizedPolicy) {
				return Plan{}, err
			}
			a.report(err)
			continue
		}
		if !found || p.Score > best.Score {
			best, found = p, true
		}
	}

	if found {
		a.logger.Debug("auto rule selected", "rule", best.Rule, "score", best.Score)
	}
	return best, nil
}

func (a *Aligner) plan(t Text, lines LineSet, rule Rule) (Plan, error) {
	pads, err := PlanMatch(t, lines, rule.Resolve(a.defaults))
	if err != nil {
		return Plan{}, err
	}
	return Plan{Rule: rule.Name, Paddings: pads, Score: Score(pads)}, nil
}

func (a *Aligner) report(err error) {
	var perr *PolicyError
	if errors.As(err, &perr) {
		a.logger.Warn("alignment rule skipped", "rule", perr.Rule, "kind", string(perr.Kind), "value", perr.Value)
	}
	if a.status != nil {
		a.status(err.Error())
	}
}
