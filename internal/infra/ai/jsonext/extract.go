// Package jsonext recovers a JSON object from raw model output. Models wrap
// JSON in prose, markdown code fences, or both; each recovery strategy is
// tried in order and independently.
package jsonext

import (
	"encoding/json"
	"errors"
	"strings"
)

// ErrNoJSON indicates no parsable JSON object was found in the text.
var ErrNoJSON = errors.New("no JSON object found in text")

// ExtractObject returns the first parsable JSON object in text, tried in
// order: fenced code block, first-{ to last-} window, whole text.
func ExtractObject(text string) (json.RawMessage, error) {
	for _, candidate := range []string{
		fromFence(text),
		fromBraces(text),
		strings.TrimSpace(text),
	} {
		if candidate == "" {
			continue
		}
		if raw, ok := parseObject(candidate); ok {
			return raw, nil
		}
	}
	return nil, ErrNoJSON
}

// fromFence pulls the body of the first ```json (or bare ```) fenced block.
func fromFence(text string) string {
	start := strings.Index(text, "```")
	if start == -1 {
		return ""
	}
	rest := text[start+3:]
	// drop the info string (e.g. "json") up to the first newline
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		rest = rest[nl+1:]
	} else {
		return ""
	}
	if end := strings.Index(rest, "```"); end != -1 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}

// fromBraces takes the widest {...} window in the text.
func fromBraces(text string) string {
	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end <= start {
		return ""
	}
	return text[start : end+1]
}

func parseObject(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	return json.RawMessage(s), true
}
