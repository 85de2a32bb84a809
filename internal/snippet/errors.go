package snippet

import (
	"fmt"
	"strconv"
	"strings"
)

// MarkerNotFoundError reports a start or end marker that matched no line.
type MarkerNotFoundError struct {
	Marker string
}

func (e *MarkerNotFoundError) Error() string {
	return fmt.Sprintf("marker %q not found", e.Marker)
}

// AmbiguousMarkerError reports a marker that matched more than one line.
// Lines holds the zero-based indices of every matching line.
type AmbiguousMarkerError struct {
	Marker string
	Lines  []int
}

func (e *AmbiguousMarkerError) Error() string {
	nums := make([]string, len(e.Lines))
	for i, n := range e.Lines {
		nums[i] = strconv.Itoa(n + 1)
	}
	return fmt.Sprintf("marker %q matches multiple lines: %s", e.Marker, strings.Join(nums, ", "))
}
