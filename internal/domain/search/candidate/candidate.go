package candidate

// Candidate is a raw registry row before derivation and scoring.
type Candidate struct {
	// SRID is the numeric key of the coordinate reference system.
	SRID int
	// AuthorityName is either a standard authority ("EPSG", "ESRI") or
	// the name column of a custom registry entry.
	AuthorityName string
	// AuthorityID is the authority-scoped identifier; zero when the
	// registry row carries none. HasAuthorityID distinguishes the two.
	AuthorityID    int
	HasAuthorityID bool
	// RawText is the stored definition text, usually WKT for standard
	// registry rows and free text for custom ones.
	RawText string
	// BaseRelevance is the retrieval engine's own similarity score,
	// 0 when the engine provides none.
	BaseRelevance float64
}
