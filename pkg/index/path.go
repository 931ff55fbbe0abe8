package index

// Path returns the ancestor chain of id, root first and id last.
// It returns nil when id is not indexed. The walk stops at the first
// repeated id, so inconsistent parent links cannot loop.
func (x *Index) Path(id string) []Entry {
	var rev []Entry
	seen := make(map[string]bool)

	for cur := id; cur != "" && !seen[cur]; {
		e, ok := x.entries[cur]
		if !ok {
			break
		}
		seen[cur] = true
		rev = append(rev, e)
		cur = e.Parent
	}

	for i, j := 0, len(rev)-1; i < j; i, j = i+1, j-1 {
		rev[i], rev[j] = rev[j], rev[i]
	}
	return rev
}

// Depth returns the depth of id with the root at 1, or 0 if id is not
// indexed.
func (x *Index) Depth(id string) int {
	return len(x.Path(id))
}

// Stats summarises the shape of an index.
type Stats struct {
	Topics     int
	Leaves     int
	MaxDepth   int
	MaxFanout  int
	Duplicates int
}

// Stats computes summary counts over every indexed entry.
func (x *Index) Stats() Stats {
	s := Stats{Topics: len(x.entries), Duplicates: len(x.duplicates)}
	depth := make(map[string]int, len(x.entries))
	for _, id := range x.order {
		e := x.entries[id]
		if len(e.Children) == 0 {
			s.Leaves++
		}
		s.MaxFanout = max(s.MaxFanout, len(e.Children))

		d := 1
		if pd, ok := depth[e.Parent]; ok {
			d = pd + 1
		}
		depth[id] = d
		s.MaxDepth = max(s.MaxDepth, d)
	}
	return s
}
