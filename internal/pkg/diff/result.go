// Package diff computes structural differences between two versions
// of a JSON-like document.
//
// Two variants are provided. Simple enumerates changed paths as a flat
// list of results, is predictable and allocation-light, and is meant for
// quick "did my last edit change anything" checks. Advanced produces a
// denser delta tree with optional array move detection, meant for
// programmatic consumption and rich rendering.
package diff

// ResultType classifies one Simple diff entry.
type ResultType string

const (
	Added     ResultType = "added"
	Removed   ResultType = "removed"
	Modified  ResultType = "modified"
	Unchanged ResultType = "unchanged"
)

// Result locates one difference inside the document tree.
// Added sets NewValue only, Removed sets OldValue only, Modified sets both.
type Result struct {
	Type     ResultType `json:"type"`
	Path     string     `json:"path"`
	OldValue any        `json:"oldValue,omitempty"`
	NewValue any        `json:"newValue,omitempty"`
}

// Summary counts results per type.
type Summary struct {
	Added     int `json:"added"`
	Removed   int `json:"removed"`
	Modified  int `json:"modified"`
	Unchanged int `json:"unchanged"`
}

func Summarize(results []Result) Summary {
	out := Summary{}
	for _, r := range results {
		switch r.Type {
		case Added:
			out.Added++
		case Removed:
			out.Removed++
		case Modified:
			out.Modified++
		case Unchanged:
			out.Unchanged++
		}
	}
	return out
}
