package registry

import (
	"fmt"
	"strings"

	"github.com/kartgeo/crsdex/internal/domain/search/field"
)

// Unified column set returned by every query in this package:
// srid, authority_name, authority_id (null for custom rows), raw_text,
// base_relevance.
const (
	lookupCustomQuery = `
SELECT srid, name, NULL::integer, COALESCE(info, ''), 0::float8
FROM custom_geom
WHERE srid = $1`

	lookupStandardQuery = `
SELECT srid, COALESCE(auth_name, ''), auth_srid, COALESCE(srtext, ''), 0::float8
FROM spatial_ref_sys
WHERE srid = $1`
)

// Searchable columns per source. The abstract field names of the
// engine map onto different physical columns in each table; identifier
// search matches the SRID rendered as text so partial numeric input
// still hits.
var (
	customColumns = map[field.Field][]string{
		field.Name:        {"name"},
		field.Description: {"COALESCE(info, '')"},
		field.ID:          {"srid::text"},
	}
	standardColumns = map[field.Field][]string{
		field.Name:        {"COALESCE(srtext, '')"},
		field.Description: {"COALESCE(srtext, '')"},
		field.ID:          {"auth_srid::text", "srid::text"},
	}
)

// buildFetchQuery assembles the UNION over both sources. $1 is the
// ILIKE pattern; with trigram ranking enabled $2 is the raw variant
// for similarity() and the limit shifts to $3. Postgres rejects bound
// parameters the statement never references, so the argument list must
// match the shape exactly.
func buildFetchQuery(
	ranges Ranges, trigram bool, variant string, fields []field.Field, limit int,
) (string, []interface{}) {
	var sb strings.Builder

	sb.WriteString("SELECT srid, name, NULL::integer, COALESCE(info, ''), ")
	sb.WriteString(relevanceExpr(trigram, customColumns, fields))
	sb.WriteString(" FROM custom_geom WHERE srid BETWEEN ")
	fmt.Fprintf(&sb, "%d AND %d", ranges.CustomMin, ranges.CustomMax)
	sb.WriteString(" AND (")
	sb.WriteString(matchExpr(customColumns, fields))
	sb.WriteString(")")

	sb.WriteString(" UNION ALL ")

	sb.WriteString("SELECT srid, COALESCE(auth_name, ''), auth_srid, COALESCE(srtext, ''), ")
	sb.WriteString(relevanceExpr(trigram, standardColumns, fields))
	sb.WriteString(" FROM spatial_ref_sys WHERE srid BETWEEN ")
	fmt.Fprintf(&sb, "%d AND %d", ranges.StandardMin, ranges.StandardMax)
	sb.WriteString(" AND (")
	sb.WriteString(matchExpr(standardColumns, fields))
	sb.WriteString(")")

	pattern := "%" + escapeLike(variant) + "%"
	if trigram {
		sb.WriteString(" ORDER BY 5 DESC, 1 ASC LIMIT $3")
		return sb.String(), []interface{}{pattern, variant, limit}
	}
	sb.WriteString(" ORDER BY 5 DESC, 1 ASC LIMIT $2")
	return sb.String(), []interface{}{pattern, limit}
}

// matchExpr ORs an ILIKE test over every physical column behind the
// requested fields.
func matchExpr(columns map[field.Field][]string, fields []field.Field) string {
	var tests []string
	seen := make(map[string]struct{})
	for _, f := range fields {
		for _, col := range columns[f] {
			if _, dup := seen[col]; dup {
				continue
			}
			seen[col] = struct{}{}
			tests = append(tests, fmt.Sprintf("%s ILIKE $1", col))
		}
	}
	if len(tests) == 0 {
		return "FALSE"
	}
	return strings.Join(tests, " OR ")
}

// relevanceExpr yields the base-relevance column: the greatest pg_trgm
// similarity across the matched columns, or a constant 0 when trigram
// ranking is off.
func relevanceExpr(trigram bool, columns map[field.Field][]string, fields []field.Field) string {
	if !trigram {
		return "0::float8"
	}
	var sims []string
	seen := make(map[string]struct{})
	for _, f := range fields {
		for _, col := range columns[f] {
			if _, dup := seen[col]; dup {
				continue
			}
			seen[col] = struct{}{}
			sims = append(sims, fmt.Sprintf("similarity(%s, $2)", col))
		}
	}
	if len(sims) == 0 {
		return "0::float8"
	}
	if len(sims) == 1 {
		return sims[0] + "::float8"
	}
	return "GREATEST(" + strings.Join(sims, ", ") + ")::float8"
}

// escapeLike neutralizes LIKE metacharacters in user input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
