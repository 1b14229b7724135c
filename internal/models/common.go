package models

// Sort directions accepted by list endpoints. Anything else falls back to
// ascending. Ties are broken by insertion order (created_at, id).
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// NormalizeSort maps arbitrary caller input onto a supported direction.
func NormalizeSort(raw string) string {
	if raw == SortDesc || raw == "DESC" || raw == "Desc" {
		return SortDesc
	}
	return SortAsc
}
