// Package chunk splits long model responses into transport-legal segments.
// Splitting happens on line boundaries only, so joining the segments with a
// newline reconstructs the input exactly.
package chunk

import "strings"

// Split breaks text into segments of at most maxLen characters, closing a
// segment whenever appending the next line (plus its newline) would overflow.
// A single line longer than maxLen is emitted as its own oversized segment
// rather than hard-split.
func Split(text string, maxLen int) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")

	var segments []string
	var current []string
	currentLen := 0

	for _, line := range lines {
		lineLen := len(line) + 1

		if currentLen+lineLen > maxLen && len(current) > 0 {
			segments = append(segments, strings.Join(current, "\n"))
			current = []string{line}
			currentLen = lineLen
			continue
		}

		current = append(current, line)
		currentLen += lineLen
	}

	if len(current) > 0 {
		segments = append(segments, strings.Join(current, "\n"))
	}

	return segments
}

// SplitCodeSafe behaves like Split but never places a segment boundary inside
// a fenced code block: if the overflow point falls inside a fence, the
// boundary is pushed to the first line after the closing fence, so both fence
// delimiters always land in the same segment. A final fence that never closes
// is treated as ordinary text, otherwise it would pin the whole tail of the
// input into one oversized segment.
func SplitCodeSafe(text string, maxLen int) []string {
	if text == "" {
		return nil
	}

	lines := strings.Split(text, "\n")

	fences := 0
	for _, line := range lines {
		if isFenceDelimiter(line) {
			fences++
		}
	}

	var segments []string
	var current []string
	currentLen := 0
	inFence := false
	seen := 0

	for _, line := range lines {
		lineLen := len(line) + 1

		if currentLen+lineLen > maxLen && len(current) > 0 && !inFence {
			segments = append(segments, strings.Join(current, "\n"))
			current = []string{line}
			currentLen = lineLen
		} else {
			current = append(current, line)
			currentLen += lineLen
		}

		if isFenceDelimiter(line) {
			seen++
			// The last delimiter of an odd total opens a fence with no
			// closing pair; leave it closed.
			if seen < fences || fences%2 == 0 {
				inFence = !inFence
			}
		}
	}

	if len(current) > 0 {
		segments = append(segments, strings.Join(current, "\n"))
	}

	return segments
}

// SplitFormatted prefixes the first segment with a presentation label before
// splitting. If label plus the first segment would itself exceed maxLen, the
// label is emitted as its own leading segment instead.
func SplitFormatted(label, text string, maxLen int) []string {
	if label == "" {
		return Split(text, maxLen)
	}

	segments := Split(text, maxLen)
	if len(segments) == 0 {
		return []string{label}
	}

	if len(label)+len(segments[0]) <= maxLen {
		segments[0] = label + segments[0]
		return segments
	}

	return append([]string{label}, segments...)
}

// HasFence reports whether text contains a fenced code block delimiter
func HasFence(text string) bool {
	return strings.Contains(text, "```")
}

func isFenceDelimiter(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "```")
}
