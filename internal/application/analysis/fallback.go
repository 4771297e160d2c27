package analysis

import (
	"fmt"

	domain "github.com/arqlabs/marketscope/internal/domain/analysis"
)

// Fixed assumptions behind the synthetic projections. They are constants, not
// derived from input, so repeated invocations are byte-identical.
const (
	DefaultPrice    = 997.0
	FallbackLeads   = 2500
	FallbackConvPct = 1.5
	FallbackInvest  = 20000
)

// Avatar persona section of a result.
type Avatar struct {
	Nome            string   `json:"nome"`
	Contexto        string   `json:"contexto"`
	BarreiraCritica string   `json:"barreira_critica"`
	EstadoDesejado  string   `json:"estado_desejado"`
	Frustracoes     []string `json:"frustracoes"`
	CrencaLimitante string   `json:"crenca_limitante"`
}

type Angulo struct {
	Tipo     string `json:"tipo"`
	Mensagem string `json:"mensagem"`
}

type Positioning struct {
	Declaracao string   `json:"declaracao"`
	Angulos    []Angulo `json:"angulos"`
}

type Concorrente struct {
	Nome         string `json:"nome"`
	Preco        int    `json:"preco"`
	Forcas       string `json:"forcas"`
	Fraquezas    string `json:"fraquezas"`
	Oportunidade string `json:"oportunidade"`
}

type Competition struct {
	Concorrentes []Concorrente `json:"concorrentes"`
	Lacunas      []string      `json:"lacunas"`
}

type Secao struct {
	Titulo   string `json:"titulo"`
	Conteudo string `json:"conteudo"`
}

type LandingPage struct {
	Headline string  `json:"headline"`
	Secoes   []Secao `json:"secoes"`
}

type Email struct {
	Tipo    string `json:"tipo"`
	Assunto string `json:"assunto"`
	Preview string `json:"preview"`
}

type Anuncio struct {
	Angulo  string `json:"angulo"`
	Roteiro string `json:"roteiro"`
}

type Marketing struct {
	LandingPage LandingPage `json:"landing_page"`
	Emails      []Email     `json:"emails"`
	Anuncios    []Anuncio   `json:"anuncios"`
}

type CanalInvestimento struct {
	Canal      string `json:"canal"`
	Percentual int    `json:"percentual"`
	Valor      int    `json:"valor"`
}

type Metrics struct {
	LeadsProjetados   int                 `json:"leads_projetados"`
	Conversao         float64             `json:"conversao"`
	Vendas            int                 `json:"vendas"`
	Faturamento       int                 `json:"faturamento"`
	ROI               int                 `json:"roi"`
	InvestimentoTotal int                 `json:"investimento_total"`
	Investimento      []CanalInvestimento `json:"investimento"`
}

type Fase struct {
	Nome     string   `json:"nome"`
	Duracao  string   `json:"duracao"`
	Objetivo string   `json:"objetivo"`
	Acoes    []string `json:"acoes"`
}

type Cronograma struct {
	Periodo   string `json:"periodo"`
	Atividade string `json:"atividade"`
	Descricao string `json:"descricao"`
}

type Funnel struct {
	Fases      []Fase       `json:"fases"`
	Cronograma []Cronograma `json:"cronograma"`
}

type Passo struct {
	Passo int    `json:"passo"`
	Acao  string `json:"acao"`
	Prazo string `json:"prazo"`
}

// Result is a fully populated, schema-conformant analysis.
type Result struct {
	Avatar      Avatar      `json:"avatar"`
	Positioning Positioning `json:"positioning"`
	Competition Competition `json:"competition"`
	Marketing   Marketing   `json:"marketing"`
	Metrics     Metrics     `json:"metrics"`
	Funnel      Funnel      `json:"funnel"`
	PlanoAcao   []Passo     `json:"plano_acao"`
}

// Fallback synthesizes a deterministic, schema-conformant analysis from the
// brief alone. Used whenever the external model fails or returns unparsable
// output; the client always receives a structurally complete object.
func Fallback(b domain.Brief) Result {
	nicho := b.Nicho
	produto := b.Produto
	if produto == "" {
		produto = fmt.Sprintf("Produto %s", nicho)
	}
	preco := DefaultPrice
	if b.Preco != nil {
		preco = *b.Preco
	}

	var convPct float64 = FallbackConvPct
	vendas := int(float64(FallbackLeads) * (convPct / 100))
	faturamento := int(float64(vendas) * preco)
	roi := 0
	if FallbackInvest != 0 {
		roi = int(float64(faturamento-FallbackInvest) / float64(FallbackInvest) * 100)
	}

	return Result{
		Avatar: Avatar{
			Nome:            fmt.Sprintf("Avatar Ideal - %s", nicho),
			Contexto:        fmt.Sprintf("Profissional de 32-45 anos interessado em %s, com renda familiar entre R$ 8.000 e R$ 25.000", nicho),
			BarreiraCritica: fmt.Sprintf("Dificuldades para alcançar resultados consistentes em %s", nicho),
			EstadoDesejado:  fmt.Sprintf("Dominar %s e alcançar resultados excepcionais", nicho),
			Frustracoes: []string{
				fmt.Sprintf("Falta de conhecimento especializado em %s", nicho),
				fmt.Sprintf("Dificuldade para implementar estratégias em %s", nicho),
				"Resultados inconsistentes",
				"Falta de tempo para se dedicar ao aprendizado",
				"Insegurança sobre qual caminho seguir",
			},
			CrencaLimitante: fmt.Sprintf("Acredita que %s é muito complexo ou que não tem capacidade para dominar a área", nicho),
		},
		Positioning: Positioning{
			Declaracao: fmt.Sprintf("Para profissionais que buscam excelência em %s, %s é a única solução que combina conhecimento prático com resultados comprovados.", nicho, produto),
			Angulos: []Angulo{
				{Tipo: "Lógico - Focado na Dor", Mensagem: fmt.Sprintf("Pare de lutar com as dificuldades em %s. Nossa metodologia elimina as principais barreiras e acelera seus resultados.", nicho)},
				{Tipo: "Emocional - Focado no Desejo", Mensagem: fmt.Sprintf("Imagine ter total confiança e domínio em %s, alcançando os resultados que sempre sonhou.", nicho)},
				{Tipo: "Contraste - Focado na Concorrência", Mensagem: fmt.Sprintf("Enquanto outros oferecem teoria, nós entregamos um sistema prático e comprovado para %s.", nicho)},
			},
		},
		Competition: Competition{
			Concorrentes: []Concorrente{
				{
					Nome:         fmt.Sprintf("Concorrente A - %s", nicho),
					Preco:        int(preco * 1.2),
					Forcas:       "Marca estabelecida no mercado",
					Fraquezas:    "Abordagem muito teórica, pouco prática",
					Oportunidade: "Foco em aplicação prática e resultados rápidos",
				},
				{
					Nome:         fmt.Sprintf("Concorrente B - %s", nicho),
					Preco:        int(preco * 0.8),
					Forcas:       "Preço mais acessível",
					Fraquezas:    "Conteúdo superficial, sem suporte adequado",
					Oportunidade: "Oferecer conteúdo aprofundado com suporte premium",
				},
			},
			Lacunas: []string{
				fmt.Sprintf("Falta de metodologia estruturada em %s", nicho),
				"Ausência de suporte personalizado",
				"Pouco foco em resultados práticos",
				"Falta de comunidade engajada",
			},
		},
		Marketing: Marketing{
			LandingPage: LandingPage{
				Headline: fmt.Sprintf("Domine %s em 30 Dias com o Método Comprovado", nicho),
				Secoes: []Secao{
					{Titulo: "Identificação com a Dor", Conteudo: fmt.Sprintf("Se você está lutando para obter resultados em %s...", nicho)},
					{Titulo: "Apresentação da Solução", Conteudo: fmt.Sprintf("Apresentamos %s, o método definitivo para %s", produto, nicho)},
					{Titulo: "Prova Social", Conteudo: "Veja os resultados de nossos alunos"},
					{Titulo: "Oferta", Conteudo: fmt.Sprintf("Acesso completo por apenas R$ %.0f", preco)},
				},
			},
			Emails: []Email{
				{Tipo: "Pré-lançamento", Assunto: fmt.Sprintf("O erro que 90%% das pessoas cometem em %s", nicho), Preview: fmt.Sprintf("Descubra o principal erro que impede o sucesso em %s...", nicho)},
				{Tipo: "Lançamento", Assunto: fmt.Sprintf("%s - Vagas Abertas (Limitadas)", produto), Preview: fmt.Sprintf("As inscrições para %s estão oficialmente abertas...", produto)},
				{Tipo: "Última Chance", Assunto: "Última chance - Encerra à meia-noite", Preview: "Esta é sua última oportunidade de garantir sua vaga..."},
			},
			Anuncios: []Anuncio{
				{Angulo: "Dor", Roteiro: fmt.Sprintf("Cansado de não conseguir resultados em %s? Descubra o método que já transformou centenas de vidas.", nicho)},
				{Angulo: "Desejo", Roteiro: fmt.Sprintf("Imagine dominar %s completamente. Com %s, isso é possível em apenas 30 dias.", nicho, produto)},
				{Angulo: "Contraste", Roteiro: fmt.Sprintf("Enquanto outros prometem, nós entregamos. %s é o único método com resultados comprovados em %s.", produto, nicho)},
			},
		},
		Metrics: Metrics{
			LeadsProjetados:   FallbackLeads,
			Conversao:         FallbackConvPct,
			Vendas:            vendas,
			Faturamento:       faturamento,
			ROI:               roi,
			InvestimentoTotal: FallbackInvest,
			Investimento: []CanalInvestimento{
				{Canal: "Meta Ads", Percentual: 60, Valor: 12000},
				{Canal: "Google Ads", Percentual: 30, Valor: 6000},
				{Canal: "Parcerias", Percentual: 10, Valor: 2000},
			},
		},
		Funnel: Funnel{
			Fases: []Fase{
				{Nome: "Captura de Leads", Duracao: "2 semanas", Objetivo: "Capturar 2.500 leads qualificados", Acoes: []string{"Lançar campanhas de tráfego pago", "Ativar parcerias com influenciadores", "Criar conteúdo educacional"}},
				{Nome: "Aquecimento", Duracao: "1 semana", Objetivo: "Educar e aquecer os leads", Acoes: []string{"Enviar sequência de e-mails educacionais", "Realizar lives no Instagram", "Compartilhar cases de sucesso"}},
				{Nome: "Evento de Lançamento", Duracao: "3 dias", Objetivo: "Apresentar a oferta e gerar interesse", Acoes: []string{"Realizar evento online gratuito", "Apresentar o método", "Revelar a oferta"}},
				{Nome: "Período de Vendas", Duracao: "5 dias", Objetivo: "Converter leads em vendas", Acoes: []string{"Abrir carrinho de compras", "Enviar sequência de fechamento", "Criar urgência e escassez"}},
			},
			Cronograma: []Cronograma{
				{Periodo: "Semana 1-2", Atividade: "Preparação e Captura", Descricao: "Configurar campanhas e capturar leads"},
				{Periodo: "Semana 3", Atividade: "Aquecimento", Descricao: "Educar e preparar audiência"},
				{Periodo: "Semana 4", Atividade: "Lançamento", Descricao: "Evento e período de vendas"},
			},
		},
		PlanoAcao: []Passo{
			{Passo: 1, Acao: fmt.Sprintf("Validar a oferta de %s com 10 entrevistas do público-alvo", produto), Prazo: "Semana 1"},
			{Passo: 2, Acao: "Construir landing page de captura com a headline principal", Prazo: "Semana 1"},
			{Passo: 3, Acao: "Configurar campanhas de tráfego no Meta Ads e Google Ads", Prazo: "Semana 2"},
			{Passo: 4, Acao: "Produzir a sequência de e-mails de aquecimento", Prazo: "Semana 2"},
			{Passo: 5, Acao: "Gravar os 3 anúncios de 15 segundos", Prazo: "Semana 3"},
			{Passo: 6, Acao: "Realizar o evento de lançamento online", Prazo: "Semana 4"},
			{Passo: 7, Acao: "Abrir o carrinho e executar a sequência de fechamento", Prazo: "Semana 4"},
		},
	}
}
