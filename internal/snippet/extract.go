package snippet

import "strings"

// Extract slices the excerpt delimited by start and end out of content and
// returns it normalized. Either marker may be empty: no start means the
// excerpt begins on the first line, no end means it runs to the last line.
// A start marker must match exactly one line and the excerpt begins on the
// line after it; an end marker must match exactly one line and the excerpt
// ends on that line. The last line of the window is always dropped (the
// convention is that callers keep one trailing delimiter or filler line
// inside the window), the common leading-space indentation is removed, and
// the result is passed through Rewrite.
func Extract(content, start, end string) (string, error) {
	lines := strings.Split(strings.TrimSpace(content), "\n")

	first := 0
	if start != "" {
		idx, err := resolveMarker(lines, start)
		if err != nil {
			return "", err
		}
		first = idx + 1
	}

	last := len(lines) - 1
	if end != "" {
		idx, err := resolveMarker(lines, end)
		if err != nil {
			return "", err
		}
		last = idx
	}

	// An empty or single-line window is valid and yields empty output once
	// the trailing line is dropped.
	if first > last {
		return Rewrite(""), nil
	}
	window := lines[first : last+1]
	window = window[:len(window)-1]

	return Rewrite(strings.Join(dedent(window), "\n")), nil
}

// resolveMarker maps a marker to the single line index it occurs on.
func resolveMarker(lines []string, marker string) (int, error) {
	matches := Locate(lines, marker)
	switch len(matches) {
	case 0:
		return 0, &MarkerNotFoundError{Marker: marker}
	case 1:
		return matches[0], nil
	default:
		return 0, &AmbiguousMarkerError{Marker: marker, Lines: matches}
	}
}

// dedent strips the minimum leading-space run shared by all non-empty lines.
// Empty lines do not constrain the minimum and come through unchanged.
func dedent(lines []string) []string {
	min := -1
	for _, line := range lines {
		if line == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " "))
		if min == -1 || n < min {
			min = n
		}
	}
	if min <= 0 {
		return lines
	}

	out := make([]string, len(lines))
	for i, line := range lines {
		if len(line) >= min {
			out[i] = line[min:]
		} else {
			out[i] = ""
		}
	}
	return out
}
