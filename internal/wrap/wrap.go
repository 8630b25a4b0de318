// Package wrap implements the line wrap and rejoin policy shared by every
// multi-line GenBank field: header free text, reference sub-fields and
// feature qualifier values.
//
// The flat-file format does not mark whether a newline inside a continued
// value is semantic or a wrap artifact, so rejoining is necessarily a
// policy decision. The policy here treats every continuation newline as a
// removable wrap point: fragments are joined with a single space, except
// when no fragment contains a space at all (amino-acid translations and
// similar unbroken runs), in which case they are concatenated directly.
package wrap

import "strings"

// Unwrap joins the continuation fragments of a wrapped field value into a
// single string.
func Unwrap(fragments []string) string {
	switch len(fragments) {
	case 0:
		return ""
	case 1:
		return fragments[0]
	}
	spaced := false
	n := 0
	for _, f := range fragments {
		n += len(f)
		if strings.ContainsRune(f, ' ') {
			spaced = true
		}
	}
	sep := ""
	if spaced {
		sep = " "
	}
	var b strings.Builder
	b.Grow(n + len(fragments))
	for i, f := range fragments {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(f)
	}
	return b.String()
}

// Wrap splits value into lines of at most width bytes, breaking at the last
// space that fits. A run longer than width with no space in it is broken
// mid-run. The space consumed by a break is dropped; Unwrap restores it.
func Wrap(value string, width int) []string {
	if width < 1 {
		width = 1
	}
	if len(value) <= width {
		return []string{value}
	}
	var lines []string
	for len(value) > width {
		cut := strings.LastIndexByte(value[:width+1], ' ')
		if cut <= 0 {
			lines = append(lines, value[:width])
			value = value[width:]
			continue
		}
		lines = append(lines, value[:cut])
		value = value[cut+1:]
	}
	if len(value) > 0 {
		lines = append(lines, value)
	}
	return lines
}
