package prompt

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/arqlabs/marketscope/internal/domain/analysis"
)

func TestSchemaExampleIsValidJSON(t *testing.T) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(SchemaExample()), &obj); err != nil {
		t.Fatalf("schema example is not valid JSON: %v", err)
	}
	for _, k := range RequiredKeys {
		if _, ok := obj[k]; !ok {
			t.Errorf("schema example missing required key %q", k)
		}
	}
}

func TestBuildAnalysisPrompt_IncludesFields(t *testing.T) {
	preco := 497.0
	b := analysis.Brief{
		Nicho:   "yoga",
		Produto: "Curso de Yoga Avançado",
		Preco:   &preco,
		Publico: "mulheres 30-45",
	}

	p := BuildAnalysisPrompt(b)

	for _, want := range []string{"yoga", "Curso de Yoga Avançado", "R$ 497", "mulheres 30-45"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildAnalysisPrompt_PlaceholdersForMissing(t *testing.T) {
	p := BuildAnalysisPrompt(analysis.Brief{Nicho: "yoga"})

	for _, want := range []string{"Não especificado", "Não fornecida", "Não definido", "Não informados", "Nenhum"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing placeholder %q", want)
		}
	}
}

func TestBuildAnalysisPrompt_EmbedsSchema(t *testing.T) {
	p := BuildAnalysisPrompt(analysis.Brief{Nicho: "yoga"})

	if !strings.Contains(p, SchemaExample()) {
		t.Error("prompt does not embed the literal schema example")
	}
	// the schema keys double as the only output-shape enforcement
	for _, k := range RequiredKeys {
		if !strings.Contains(p, `"`+k+`"`) {
			t.Errorf("prompt missing schema key %q", k)
		}
	}
}

func TestBuildAnalysisPrompt_Pure(t *testing.T) {
	b := analysis.Brief{Nicho: "yoga", Produto: "Curso"}
	if BuildAnalysisPrompt(b) != BuildAnalysisPrompt(b) {
		t.Error("prompt builder is not deterministic")
	}
}
