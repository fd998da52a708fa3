package calendar

// SameName reports whether two optional names are equal. Two absent names
// are equal; an absent name never equals a present one, even if empty.
func SameName(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// SameEvents reports whether a and b hold the same multiset of events.
// Order is ignored, but every event must appear the same number of times
// in both lists with every field equal.
func SameEvents(a, b []Event) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[Event]int, len(a))
	for _, e := range a {
		counts[e]++
	}
	for _, e := range b {
		n := counts[e]
		if n == 0 {
			return false
		}
		counts[e] = n - 1
	}

	return true
}
