package tags

// Outcome classifies what Normalize did with a value.
type Outcome int

const (
	// OutcomeAllowed means the value is already in the vocabulary or is
	// itself a rewrite target.
	OutcomeAllowed Outcome = iota
	// OutcomeRewritten means the value was mapped through a rewrite.
	OutcomeRewritten
	// OutcomeUnknown means the value is neither allowed nor rewritable and
	// was left unchanged.
	OutcomeUnknown
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAllowed:
		return "allowed"
	case OutcomeRewritten:
		return "rewritten"
	default:
		return "unknown"
	}
}

// Normalize maps value onto vocab. It is pure and idempotent: a normalized
// value always comes back unchanged with OutcomeAllowed.
func Normalize(value string, vocab *Vocabulary) (string, Outcome) {
	if vocab.IsAllowed(value) || vocab.IsTarget(value) {
		return value, OutcomeAllowed
	}
	if to, ok := vocab.Rewrites[value]; ok {
		return to, OutcomeRewritten
	}
	return value, OutcomeUnknown
}
