package variant

// Priority tiers, lower is closer to the literal user input.
const (
	// PriorityOriginal covers the input and its case variations.
	PriorityOriginal = 0
	// PriorityLayout covers keyboard-layout corrections of tier 0.
	PriorityLayout = 1
	// PriorityTranslit covers direct transliteration and system-specific
	// rewrites of tiers 0-1.
	PriorityTranslit = 2
	// PriorityLayoutTranslit covers layout corrections of tier 2 output.
	PriorityLayoutTranslit = 3
	// PriorityGeneric covers romanization and separator fallbacks.
	PriorityGeneric = 4
)

// MaxVariants bounds the generated list to cap downstream retrieval cost.
const MaxVariants = 15

// Variant is one rewrite of the user query with its generation tier.
type Variant struct {
	Text     string
	Priority int
}
