package template

import (
	"fmt"
	"strings"
)

// segment is either literal text or a {name} placeholder.
type segment struct {
	literal string
	slot    string
}

// parsePattern splits a pattern into literal and placeholder segments.
// Example: "Build a {component} in {tech}" => "Build a ", {component}, " in ", {tech}
func parsePattern(pattern string) ([]segment, error) {
	var segs []segment
	var lit strings.Builder
	i := 0
	for i < len(pattern) {
		switch pattern[i] {
		case '{':
			j := strings.IndexByte(pattern[i+1:], '}')
			if j < 0 {
				return nil, fmt.Errorf("unmatched '{' at position %d", i)
			}
			name := pattern[i+1 : i+1+j]
			if !isSlotName(name) {
				return nil, fmt.Errorf("invalid placeholder %q at position %d", "{"+name+"}", i)
			}
			if lit.Len() > 0 {
				segs = append(segs, segment{literal: lit.String()})
				lit.Reset()
			}
			segs = append(segs, segment{slot: name})
			i += j + 2
		case '}':
			return nil, fmt.Errorf("unmatched '}' at position %d", i)
		default:
			lit.WriteByte(pattern[i])
			i++
		}
	}
	if lit.Len() > 0 {
		segs = append(segs, segment{literal: lit.String()})
	}
	return segs, nil
}

// Placeholders returns the distinct placeholder names of a pattern in order
// of first appearance.
func Placeholders(pattern string) ([]string, error) {
	segs, err := parsePattern(pattern)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var names []string
	for _, s := range segs {
		if s.slot != "" && !seen[s.slot] {
			seen[s.slot] = true
			names = append(names, s.slot)
		}
	}
	return names, nil
}

func isSlotName(name string) bool {
	if name == "" {
		return false
	}
	for i, c := range name {
		switch {
		case c == '_', c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func render(segs []segment, values map[string]string) string {
	var b strings.Builder
	for _, s := range segs {
		if s.slot == "" {
			b.WriteString(s.literal)
			continue
		}
		b.WriteString(values[s.slot])
	}
	return b.String()
}
