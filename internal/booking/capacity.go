package booking

// Fits reports whether a party of requested people fits an event whose
// existing non-cancelled reservations have the given party sizes.  A nil
// capacity means unlimited.  Filling the event to exactly its capacity is
// allowed.
func Fits(requested int, existing []int, capacity *int) bool {
	if capacity == nil {
		return true
	}
	sum := 0
	for _, n := range existing {
		sum += n
	}
	return sum+requested <= *capacity
}

// Remaining returns how many spots are still open given the existing
// non-cancelled party sizes.  It is only meaningful for events with a
// capacity; a negative result is clamped to zero.
func Remaining(existing []int, capacity int) int {
	sum := 0
	for _, n := range existing {
		sum += n
	}
	if left := capacity - sum; left > 0 {
		return left
	}
	return 0
}
