// Package normalize turns loosely structured agent output into a map.
//
// Agents answer with anything from clean JSON to prose wrapping a fenced,
// half-finished object. Normalize never fails: input it cannot make sense of
// yields an empty map, and callers read fields through View with explicit
// defaults.
package normalize

import (
	"bytes"
	"encoding/json"
	"strings"

	"mcc/internal/logging"
)

// Normalize converts raw agent output into a best-effort mapping.
//
// Accepted inputs:
//   - map[string]any: returned as is
//   - string / []byte / json.RawMessage: parsed as JSON, then as JSON embedded
//     in a code fence or prose, then as truncated JSON with its open
//     strings, arrays and objects closed
//   - any other value: round-tripped through encoding/json
//
// A string whose JSON value is itself a string is unwrapped once more, since
// some agents double-encode their payload.
func Normalize(raw any) map[string]any {
	return normalize(raw, 0)
}

const maxUnwrapDepth = 3

func normalize(raw any, depth int) map[string]any {
	if depth > maxUnwrapDepth {
		return map[string]any{}
	}
	switch v := raw.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return v
	case string:
		return normalizeText(v, depth)
	case []byte:
		return normalizeText(string(v), depth)
	case json.RawMessage:
		return normalizeText(string(v), depth)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			logging.NormalizeDebug("unserializable payload %T: %v", v, err)
			return map[string]any{}
		}
		return normalizeText(string(data), depth)
	}
}

func normalizeText(text string, depth int) map[string]any {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return map[string]any{}
	}

	if m, ok := decode(trimmed, depth); ok {
		return m
	}
	// Well-formed JSON that is not an object (array, number, null) carries no fields.
	if json.Valid([]byte(trimmed)) {
		return map[string]any{}
	}

	// An empty object is not a payload: prose like "the plan for {brand}"
	// must not shadow the real object that follows it.
	for _, candidate := range candidates(trimmed) {
		if m, ok := decode(candidate, depth); ok && len(m) > 0 {
			return m
		}
		if repaired, ok := repair(candidate); ok {
			if m, ok := decode(repaired, depth); ok && len(m) > 0 {
				logging.NormalizeDebug("repaired truncated payload (%d -> %d bytes)", len(candidate), len(repaired))
				return m
			}
		}
	}

	logging.NormalizeDebug("no JSON object recovered from %d bytes of agent output", len(trimmed))
	return map[string]any{}
}

// decode parses text as a single JSON value. Objects are returned directly,
// strings are normalized again, everything else is rejected. Numbers decode
// as float64 so a normalized map survives Reserialize unchanged.
func decode(text string, depth int) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(text))
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}
	if dec.More() {
		return nil, false
	}
	switch v := value.(type) {
	case map[string]any:
		return v, true
	case string:
		m := normalize(v, depth+1)
		return m, len(m) > 0
	}
	return nil, false
}

// candidates lists substrings of text that may hold the payload, most
// specific first: fenced blocks, then every balanced top-level object in
// order, then the trailing unclosed object and everything from the first
// brace to the end (for truncated output).
func candidates(text string) []string {
	var out []string
	for _, block := range fencedBlocks(text) {
		out = append(out, block)
		objs, _ := scanObjects(block)
		out = append(out, objs...)
	}
	objs, open := scanObjects(text)
	out = append(out, objs...)
	if open >= 0 {
		out = append(out, text[open:])
	}
	if start := strings.IndexByte(text, '{'); start >= 0 && start != open {
		out = append(out, text[start:])
	}
	return out
}

// fencedBlocks returns the bodies of ``` fences. An unterminated fence
// yields everything after its opening line.
func fencedBlocks(text string) []string {
	var blocks []string
	rest := text
	for {
		start := strings.Index(rest, "```")
		if start == -1 {
			return blocks
		}
		body := rest[start+3:]
		if nl := strings.IndexByte(body, '\n'); nl != -1 {
			body = body[nl+1:]
		} else {
			return blocks
		}
		end := strings.Index(body, "```")
		if end == -1 {
			blocks = append(blocks, strings.TrimSpace(body))
			return blocks
		}
		blocks = append(blocks, strings.TrimSpace(body[:end]))
		rest = body[end+3:]
	}
}

// findJSONObject returns the first balanced {...} in input, skipping braces
// that appear inside string literals.
func findJSONObject(input string) (string, bool) {
	objs, _ := scanObjects(input)
	if len(objs) == 0 {
		return "", false
	}
	return objs[0], true
}

// scanObjects returns every balanced top-level {...} in input, in order.
// open is the start of a top-level object still unclosed at the end of
// input, or -1.
func scanObjects(input string) (objs []string, open int) {
	start := -1
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			if depth > 0 {
				inString = !inString
			}
			continue
		}
		if inString {
			continue
		}
		switch ch {
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 {
				objs = append(objs, input[start:i+1])
				start = -1
			}
		}
	}
	if depth > 0 {
		return objs, start
	}
	return objs, -1
}

// Reserialize renders a normalized map back to compact JSON.
func Reserialize(m map[string]any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(m); err != nil {
		return "{}"
	}
	return strings.TrimSpace(buf.String())
}
