package hdr

// MasterSequence maps an adjusted frame index to its 1-based bracket number
// for a window of windowSize exposures: the ceiling of n/windowSize.
// Division truncates toward zero, so only a positive remainder rounds up;
// for negative n truncation already is the ceiling.
// windowSize must be positive.
func MasterSequence(n int64, windowSize int) int64 {
	w := int64(windowSize)
	q := n / w
	if n%w > 0 {
		q++
	}
	return q
}
