package cli

import (
	"fmt"
	"io"
	"os"
)

// readInput reads a file argument, treating "-" as stdin.
func readInput(name string) (string, error) {
	if name == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(name)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// displayName maps "-" to a readable label for output and logs.
func displayName(name string) string {
	if name == "-" {
		return "(stdin)"
	}
	return name
}
