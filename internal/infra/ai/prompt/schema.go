package prompt

// RequiredKeys is the fixed top-level key set of an analysis result. The
// prompt example, the shallow reply check and the fallback generator are all
// rendered from this single schema version so they cannot drift apart.
var RequiredKeys = []string{
	"avatar",
	"positioning",
	"competition",
	"marketing",
	"metrics",
	"funnel",
	"plano_acao",
}

// schemaExample is the literal JSON shape the model must return. It anchors
// the output format; the downstream extractor performs no field-level
// validation, so every key name the clients rely on has to be spelled out
// here.
const schemaExample = `{
  "avatar": {
    "nome": "string",
    "contexto": "string",
    "barreira_critica": "string",
    "estado_desejado": "string",
    "frustracoes": ["string"],
    "crenca_limitante": "string"
  },
  "positioning": {
    "declaracao": "string",
    "angulos": [
      {"tipo": "string", "mensagem": "string"}
    ]
  },
  "competition": {
    "concorrentes": [
      {
        "nome": "string",
        "preco": 0,
        "forcas": "string",
        "fraquezas": "string",
        "oportunidade": "string"
      }
    ],
    "lacunas": ["string"]
  },
  "marketing": {
    "landing_page": {
      "headline": "string",
      "secoes": [
        {"titulo": "string", "conteudo": "string"}
      ]
    },
    "emails": [
      {"tipo": "string", "assunto": "string", "preview": "string"}
    ],
    "anuncios": [
      {"angulo": "string", "roteiro": "string"}
    ]
  },
  "metrics": {
    "leads_projetados": 0,
    "conversao": 0.0,
    "vendas": 0,
    "faturamento": 0,
    "roi": 0,
    "investimento_total": 0,
    "investimento": [
      {"canal": "string", "percentual": 0, "valor": 0}
    ]
  },
  "funnel": {
    "fases": [
      {"nome": "string", "duracao": "string", "objetivo": "string", "acoes": ["string"]}
    ],
    "cronograma": [
      {"periodo": "string", "atividade": "string", "descricao": "string"}
    ]
  },
  "plano_acao": [
    {"passo": 1, "acao": "string", "prazo": "string"}
  ]
}`

// SchemaExample exposes the literal result shape for reuse outside the builder.
func SchemaExample() string { return schemaExample }
