package normalize

import (
	"encoding/json"
	"strings"
)

// maxRepairCuts bounds how many earlier cut points repair tries before giving up.
const maxRepairCuts = 64

// repair closes a truncated JSON object. It first closes the text as is
// (terminating an open string, then every open array and object); if that
// is still invalid it backs up to the previous comma or opening bracket and
// tries again, dropping the dangling key or partial value.
func repair(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" || text[0] != '{' {
		return "", false
	}
	if json.Valid([]byte(text)) {
		return "", false
	}

	var cuts []int
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case ',':
			cuts = append(cuts, i)
		case '{', '[':
			cuts = append(cuts, i+1)
		}
	}

	// Full text first, then the cut points from last to first.
	order := []int{len(text)}
	for k := len(cuts) - 1; k >= 0 && len(order) <= maxRepairCuts; k-- {
		order = append(order, cuts[k])
	}
	for _, end := range order {
		candidate := closeJSON(text[:end])
		if json.Valid([]byte(candidate)) {
			return candidate, true
		}
	}
	return "", false
}

// closeJSON appends whatever is needed to terminate prefix: a closing quote
// for an open string and the matching brackets for every open container.
func closeJSON(prefix string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(prefix); i++ {
		ch := prefix[i]
		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}

	var b strings.Builder
	b.WriteString(prefix)
	if inString {
		if escaped {
			// drop the lone trailing backslash
			s := b.String()
			b.Reset()
			b.WriteString(s[:len(s)-1])
		}
		b.WriteByte('"')
	}
	out := strings.TrimRight(b.String(), " \t\r\n")
	out = strings.TrimSuffix(out, ",")
	for i := len(stack) - 1; i >= 0; i-- {
		out += string(stack[i])
	}
	return out
}
