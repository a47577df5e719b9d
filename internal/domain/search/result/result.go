package result

// MaxRelevance is the score reserved for direct-identifier lookups.
const MaxRelevance = 2.0

// Result is a single ranked CRS hit.
type Result struct {
	srid           int
	name           string
	description    string
	relevance      float64
	priorityLevel  int
	foundByVariant string
}

// New creates a ranked result.
func New(
	srid int, name, description string,
	relevance float64, priorityLevel int, foundByVariant string,
) Result {
	return Result{
		srid: srid, name: name, description: description,
		relevance: relevance, priorityLevel: priorityLevel,
		foundByVariant: foundByVariant,
	}
}

// SRID returns the spatial reference identifier.
func (r *Result) SRID() int { return r.srid }

// Name returns the derived display name.
func (r *Result) Name() string { return r.name }

// Description returns the derived human-readable description.
func (r *Result) Description() string { return r.description }

// Relevance returns the hybrid relevance score in [0, MaxRelevance].
func (r *Result) Relevance() float64 { return r.relevance }

// PriorityLevel returns the generation tier of the variant that matched.
func (r *Result) PriorityLevel() int { return r.priorityLevel }

// FoundByVariant returns the query variant that produced the hit.
func (r *Result) FoundByVariant() string { return r.foundByVariant }
