package htmldom

// guard applies the size limit to src before any parsing happens.
// It returns the admitted input and whether it was truncated.
func guard(src string, limit int, truncate bool) (string, bool, error) {
	if len(src) <= limit {
		return src, false, nil
	}
	if !truncate {
		return "", false, &SizeLimitError{Length: len(src), Limit: limit}
	}
	return src[:clampToRuneBoundary(src, limit)], true, nil
}

// clampToRuneBoundary returns the largest n <= limit such that src[:n]
// never ends in the middle of a multi-byte UTF-8 sequence. If the byte
// at the limit is a continuation byte, the cut backs up to the start of
// that rune so the partial sequence is dropped entirely.
func clampToRuneBoundary(src string, limit int) int {
	n := limit
	for n > 0 && src[n]&0xC0 == 0x80 {
		n--
	}
	return n
}
