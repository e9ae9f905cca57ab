package utils

import "strings"

// Dedent strips the leading newline from a multi-line raw string and
// removes the common leading whitespace of its lines, so indented
// backtick literals read naturally in source.
func Dedent(s string) string {
	s = strings.TrimPrefix(s, "\n")
	lines := strings.Split(s, "\n")

	margin := -1
	for _, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" {
			continue
		}
		indent := len(line) - len(trimmed)
		if margin < 0 || indent < margin {
			margin = indent
		}
	}
	if margin <= 0 {
		return s
	}

	for i, line := range lines {
		if len(line) >= margin {
			lines[i] = line[margin:]
		} else {
			lines[i] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(lines, "\n")
}

// Chomp dedents a multi-line string and joins single newlines with
// spaces, keeping blank lines as paragraph breaks. Useful for long
// messages written as indented literals.
func Chomp(s string) string {
	res := Dedent(s)
	const marker = "\x00"
	res = strings.ReplaceAll(res, "\n\n", marker)
	res = strings.ReplaceAll(res, "\n", " ")
	res = strings.ReplaceAll(res, marker, "\n")
	return strings.TrimSpace(res)
}

// List converts a multi-line string into a slice of lines, stripping
// '#' comments, surrounding whitespace, and empty lines.
func List(s string) []string {
	var out []string
	for _, line := range strings.Split(Dedent(s), "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
