package conventional

import "math"

// Order ranks commit types for display: canonical types in table order,
// then Custom types in the order they were first observed, then Others.
// The zero value is ready to use. Order is not safe for concurrent use.
type Order struct {
	custom map[string]int
}

// Observe records t so that a Custom type seen for the first time ranks
// after every Custom type seen before it.
func (o *Order) Observe(t CommitType) {
	if t.Kind != KindCustom {
		return
	}
	if o.custom == nil {
		o.custom = make(map[string]int)
	}
	if _, ok := o.custom[t.Name]; !ok {
		o.custom[t.Name] = len(o.custom)
	}
}

// Rank returns the sort key of t. Unobserved Custom types are observed.
func (o *Order) Rank(t CommitType) int {
	switch t.Kind {
	case KindOthers:
		return math.MaxInt
	case KindCustom:
		o.Observe(t)
		return int(KindCustom) + o.custom[t.Name]
	}
	return int(t.Kind)
}
