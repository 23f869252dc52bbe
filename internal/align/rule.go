package align

// Auto selects the rule whose plan changes the most whitespace.
const Auto = "auto"

// MultiMatchPolicy selects the match used when a line has several.
type MultiMatchPolicy string

const (
	MultiMatchFirst MultiMatchPolicy = "first"
	MultiMatchLast  MultiMatchPolicy = "last"
	MultiMatchSkip  MultiMatchPolicy = "skip"
)

// PreSpacePolicy controls the spaces kept in front of a match.
type PreSpacePolicy string

const (
	PreSpaceRemove PreSpacePolicy = "remove"
	PreSpaceKeep   PreSpacePolicy = "keep"
	PreSpaceOne    PreSpacePolicy = "one"
	PreSpaceTwo    PreSpacePolicy = "two"
	PreSpaceFour   PreSpacePolicy = "four"
)

// reserve is the number of spaces each pruning policy leaves before a match.
var reserve = map[PreSpacePolicy]ByteOffset{
	PreSpaceRemove: 0,
	PreSpaceOne:    1,
	PreSpaceTwo:    2,
	PreSpaceFour:   4,
}

// Defaults fills rule settings left unset.
type Defaults struct {
	PreSpacePolicy   PreSpacePolicy
	AddPostSpace     bool
	MultiMatchPolicy MultiMatchPolicy
}

// DefaultDefaults returns the built-in defaults.
func DefaultDefaults() Defaults {
	return Defaults{
		PreSpacePolicy:   PreSpaceRemove,
		AddPostSpace:     false,
		MultiMatchPolicy: MultiMatchFirst,
	}
}

// Rule describes one match alignment. Rules are read-only inputs.
type Rule struct {
	Name string

	// Matches are literal patterns; all of them are searched.
	Matches []string

	// Prefixes are single characters that move together with a match
	// directly following them, e.g. "!" in front of "=".
	Prefixes []string

	// Empty policies and a nil AddPostSpace take the Defaults value.
	PreSpacePolicy   PreSpacePolicy
	MultiMatchPolicy MultiMatchPolicy
	AddPostSpace     *bool

	// BiasLeft aligns on the leftmost column instead of the rightmost.
	BiasLeft bool
}

// Resolve returns a copy of r with unset settings taken from d.
func (r Rule) Resolve(d Defaults) Rule {
	if r.PreSpacePolicy == "" {
		r.PreSpacePolicy = d.PreSpacePolicy
	}
	if r.MultiMatchPolicy == "" {
		r.MultiMatchPolicy = d.MultiMatchPolicy
	}
	if r.AddPostSpace == nil {
		v := d.AddPostSpace
		r.AddPostSpace = &v
	}
	return r
}

func (r Rule) addPostSpace() bool {
	return r.AddPostSpace != nil && *r.AddPostSpace
}

func (r Rule) isPrefix(c byte) bool {
	for _, p := range r.Prefixes {
		if len(p) == 1 && p[0] == c {
			return true
		}
	}
	return false
}

// FindRule returns the rule named name.
func FindRule(rules []Rule, name string) (Rule, bool) {
	for _, r := range rules {
		if r.Name == name {
			return r, true
		}
	}
	return Rule{}, false
}

// RuleNames returns rule names in configuration order.
func RuleNames(rules []Rule) []string {
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	return names
}
