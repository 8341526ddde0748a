package pack

import "sort"

// DuplicateNames lists, sorted, every emoji name that occurs more
// than once in m. Names are reported, never rewritten.
func DuplicateNames(m *Manifest) []string {
	counts := make(map[string]int, len(m.Emojis))
	for _, e := range m.Emojis {
		counts[e.Emoji.Name]++
	}

	var dups []string
	for name, n := range counts {
		if n > 1 {
			dups = append(dups, name)
		}
	}
	sort.Strings(dups)
	return dups
}
