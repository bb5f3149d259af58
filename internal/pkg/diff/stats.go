package diff

// Stats counts delta leaves per kind.
type Stats struct {
	Added    int `json:"added"`
	Removed  int `json:"removed"`
	Modified int `json:"modified"`
	Moved    int `json:"moved"`
}

func (s Stats) Total() int {
	return s.Added + s.Removed + s.Modified + s.Moved
}

// Stats walks the patch tree and classifies each leaf by its encoded
// shape: length 1 = added, length 2 = modified, length 3 with the moved
// marker = moved, otherwise removed.
func (p *Patch) Stats() Stats {
	out := Stats{}
	if !p.Empty() {
		countDelta(p.Delta, &out)
	}
	return out
}

func countDelta(node any, out *Stats) {
	switch v := node.(type) {
	case []any:
		switch {
		case len(v) == 1:
			out.Added++
		case len(v) == 2:
			out.Modified++
		case len(v) == 3 && (v[2] == markerMoved || v[2] == float64(markerMoved)):
			out.Moved++
		default:
			out.Removed++
		}
	case map[string]any:
		for key, child := range v {
			if key == arrayTypeKey {
				continue
			}
			countDelta(child, out)
		}
	}
}
