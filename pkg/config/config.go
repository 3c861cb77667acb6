// Package config defines core configuration types for scrapekit.
// These types are pure data structures with no dependency on config
// loaders or the CLI.
package config

// DefaultMaxSizeBytes is the default input size limit for parsing.
// It is generous enough for ordinary pages but finite, so worst-case
// memory use stays bounded on adversarial input.
const DefaultMaxSizeBytes = 16 << 20 // 16 MiB

// Options controls parsing behavior.
type Options struct {
	// MaxSizeBytes is the maximum number of input bytes admitted to the
	// parser. Zero or negative means DefaultMaxSizeBytes.
	MaxSizeBytes int `yaml:"max_size_bytes"`

	// TruncateOnLimit controls what happens when input exceeds
	// MaxSizeBytes. When true, only the first MaxSizeBytes bytes are
	// parsed (clamped back to a rune boundary). When false, parsing
	// fails with a size limit error.
	TruncateOnLimit bool `yaml:"truncate_on_limit"`
}

// Default returns the default options.
func Default() Options {
	return Options{
		MaxSizeBytes:    DefaultMaxSizeBytes,
		TruncateOnLimit: false,
	}
}

// Normalized returns a copy of o with zero values replaced by defaults.
func (o Options) Normalized() Options {
	if o.MaxSizeBytes <= 0 {
		o.MaxSizeBytes = DefaultMaxSizeBytes
	}
	return o
}
