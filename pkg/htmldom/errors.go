package htmldom

import "fmt"

// SizeLimitError is returned by Parse when the input exceeds the
// configured size limit and truncation is disabled. It carries both the
// observed length and the configured limit so callers can decide
// whether to raise the limit or opt into truncation.
type SizeLimitError struct {
	// Length is the actual input length in bytes.
	Length int

	// Limit is the configured maximum in bytes.
	Limit int
}

func (e *SizeLimitError) Error() string {
	return fmt.Sprintf("input is %d bytes, exceeds size limit of %d bytes (enable truncation or raise the limit)", e.Length, e.Limit)
}
