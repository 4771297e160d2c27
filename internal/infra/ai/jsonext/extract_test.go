package jsonext

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestExtractObject_FencedBlock(t *testing.T) {
	text := "Here you go:\n```json\n{\"avatar\": {\"nome\": \"x\"}}\n```\nHope that helps!"

	raw, err := ExtractObject(text)
	if err != nil {
		t.Fatalf("ExtractObject() error = %v", err)
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("extracted text is not valid JSON: %v", err)
	}
	if _, ok := obj["avatar"]; !ok {
		t.Errorf("expected avatar key, got %v", obj)
	}
}

func TestExtractObject_FenceWithoutLanguage(t *testing.T) {
	text := "```\n{\"metrics\": {\"roi\": 84}}\n```"

	raw, err := ExtractObject(text)
	if err != nil {
		t.Fatalf("ExtractObject() error = %v", err)
	}
	if string(raw) != `{"metrics": {"roi": 84}}` {
		t.Errorf("unexpected extraction: %s", raw)
	}
}

func TestExtractObject_ProseWrapped(t *testing.T) {
	text := `Claro! Segue a análise: {"positioning": {"declaracao": "x"}} Espero que ajude.`

	raw, err := ExtractObject(text)
	if err != nil {
		t.Fatalf("ExtractObject() error = %v", err)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("extracted text is not valid JSON: %v", err)
	}
	if _, ok := obj["positioning"]; !ok {
		t.Errorf("expected positioning key, got %s", raw)
	}
}

func TestExtractObject_WholeText(t *testing.T) {
	text := `{"funnel": {"fases": []}}`

	raw, err := ExtractObject(text)
	if err != nil {
		t.Fatalf("ExtractObject() error = %v", err)
	}
	if string(raw) != text {
		t.Errorf("expected whole text back, got %s", raw)
	}
}

func TestExtractObject_NoBraces(t *testing.T) {
	_, err := ExtractObject("sorry, I cannot help with that")
	if !errors.Is(err, ErrNoJSON) {
		t.Errorf("expected ErrNoJSON, got %v", err)
	}
}

func TestExtractObject_TruncatedJSON(t *testing.T) {
	_, err := ExtractObject(`{"avatar": {"nome": "Ana"`)
	if !errors.Is(err, ErrNoJSON) {
		t.Errorf("expected ErrNoJSON for truncated object, got %v", err)
	}
}

func TestExtractObject_BadFenceGoodBody(t *testing.T) {
	// fence body is prose but a valid object follows later in the text
	text := "```\nnot json\n```\nresult: {\"avatar\": {}}"

	raw, err := ExtractObject(text)
	if err != nil {
		t.Fatalf("ExtractObject() error = %v", err)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("extracted text is not valid JSON: %v", err)
	}
	if _, ok := obj["avatar"]; !ok {
		t.Errorf("expected avatar key, got %s", raw)
	}
}
