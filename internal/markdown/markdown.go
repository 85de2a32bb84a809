package markdown

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Directive names the source excerpt a fenced code block mirrors.
// It is parsed from an HTML comment immediately preceding the block:
//
//	<!-- snippet file=examples/demo.go start="BEGIN demo" end="END demo" -->
//	```go
//	...body kept in sync by snipmd...
//	```
//
// Values may be bare or double-quoted; start and end are optional.
type Directive struct {
	File  string // Target file path, relative to the markdown file
	Start string // Optional start marker substring
	End   string // Optional end marker substring
	Line  int    // One-based line of the directive comment
}

// Resolver produces the replacement body for a directive.
type Resolver func(d Directive) (string, error)

// LanguageTagMissingError reports a directive whose code block carries no
// language tag. Such blocks are rejected before any extraction runs.
type LanguageTagMissingError struct {
	Line int
}

func (e *LanguageTagMissingError) Error() string {
	return fmt.Sprintf("line %d: snippet code block is missing a language tag", e.Line)
}

var (
	directiveRe  = regexp.MustCompile(`(?i)^\s*<!--\s*snippet\s+(.+?)\s*-->\s*$`)
	fenceOpenRe  = regexp.MustCompile("^```(\\w*)\\s*$")
	fenceCloseRe = regexp.MustCompile("^```\\s*$")
	attrRe       = regexp.MustCompile(`(\w+)=(?:"([^"]*)"|(\S+))`)
)

// Process rewrites every directive-annotated code block in content with the
// body produced by resolve, leaving all other text byte-for-byte intact.
// It reports whether any block body actually changed. Fenced blocks without
// a directive pass through untouched, including any directive-looking lines
// inside them.
func Process(content string, resolve Resolver) (string, bool, error) {
	lines := strings.Split(content, "\n")
	out := make([]string, 0, len(lines))
	changed := false

	for i := 0; i < len(lines); i++ {
		line := lines[i]

		matches := directiveRe.FindStringSubmatch(line)
		if matches == nil {
			// Skip over plain fenced blocks so their content is never
			// mistaken for directives.
			if fenceOpenRe.MatchString(line) {
				out = append(out, line)
				for i++; i < len(lines); i++ {
					out = append(out, lines[i])
					if fenceCloseRe.MatchString(lines[i]) {
						break
					}
				}
				continue
			}
			out = append(out, line)
			continue
		}

		d, err := parseDirective(matches[1], i+1)
		if err != nil {
			return "", false, err
		}
		out = append(out, line)

		// The next non-blank line must open the directive's code block.
		j := i + 1
		for j < len(lines) && strings.TrimSpace(lines[j]) == "" {
			out = append(out, lines[j])
			j++
		}
		if j >= len(lines) {
			return "", false, fmt.Errorf("line %d: snippet directive has no code block", d.Line)
		}
		fence := fenceOpenRe.FindStringSubmatch(lines[j])
		if fence == nil {
			return "", false, fmt.Errorf("line %d: snippet directive must be followed by a fenced code block", d.Line)
		}
		if fence[1] == "" {
			return "", false, &LanguageTagMissingError{Line: j + 1}
		}
		out = append(out, lines[j])

		k := j + 1
		var body []string
		for k < len(lines) && !fenceCloseRe.MatchString(lines[k]) {
			body = append(body, lines[k])
			k++
		}
		if k >= len(lines) {
			return "", false, fmt.Errorf("line %d: unterminated code block", j+1)
		}

		newBody, err := resolve(d)
		if err != nil {
			return "", false, err
		}
		var newLines []string
		if newBody != "" {
			newLines = strings.Split(newBody, "\n")
		}
		if !slices.Equal(newLines, body) {
			changed = true
		}
		out = append(out, newLines...)
		out = append(out, lines[k])
		i = k
	}

	return strings.Join(out, "\n"), changed, nil
}

func parseDirective(attrs string, line int) (Directive, error) {
	d := Directive{Line: line}
	for _, m := range attrRe.FindAllStringSubmatch(attrs, -1) {
		value := m[2]
		if value == "" {
			value = m[3]
		}
		switch m[1] {
		case "file":
			d.File = value
		case "start":
			d.Start = value
		case "end":
			d.End = value
		default:
			return Directive{}, fmt.Errorf("line %d: unknown snippet attribute %q", line, m[1])
		}
	}
	if d.File == "" {
		return Directive{}, fmt.Errorf("line %d: snippet directive requires a file attribute", line)
	}
	return d, nil
}
