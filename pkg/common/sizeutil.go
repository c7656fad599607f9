package common

import (
	"errors"
	"fmt"
	"strings"

	units "github.com/docker/go-units"
)

// ParseSize converts a size literal such as "10MB" or "512kb" into bytes.
// Multiples are binary: 1KB = 1024 bytes, 10MB = 10 * 1024 * 1024 bytes.
//
// Example:
//   - Input: "10MB"
//   - Output: 10485760
func ParseSize(literal string) (int64, error) {
	trimmed := strings.TrimSpace(literal)
	if trimmed == "" {
		return 0, errors.New("empty size literal")
	}

	size, err := units.RAMInBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid size literal %q: %w", literal, err)
	}
	return size, nil
}

// FormatSize renders a byte count using binary multiples, e.g. 10485760 -> "10MiB".
func FormatSize(size int64) string {
	return units.BytesSize(float64(size))
}
