package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arqlabs/marketscope/internal/domain/analysis"
)

// SystemPrompt provides the analyst persona and strict JSON-only directions.
func SystemPrompt() string {
	return `Você é um consultor sênior especializado em análise de mercado, psicologia do consumidor e estratégia de lançamento de produtos digitais. Sua expertise inclui segmentação psicográfica, economia comportamental e planejamento de funis de venda.

Regras de saída:
- Responda com UM único objeto JSON válido, nada mais.
- Sem markdown, sem comentários, sem cercas de código.
- Use exatamente os nomes de chave do schema fornecido.
- Seja específico com números e métricas; faça estimativas conservadoras baseadas no mercado brasileiro.`
}

// BuildAnalysisPrompt renders the full instruction block for one brief.
// Pure function; absent optional fields become literal placeholders.
func BuildAnalysisPrompt(b analysis.Brief) string {
	var sb strings.Builder

	sb.WriteString("MISSÃO: Crie uma análise de mercado completa e detalhada para o lançamento abaixo.\n\n")
	sb.WriteString("INFORMAÇÕES DO PRODUTO:\n")
	fmt.Fprintf(&sb, "- Nicho: %s\n", b.Nicho)
	fmt.Fprintf(&sb, "- Produto/Serviço: %s\n", orPlaceholder(b.Produto, "Não especificado"))
	fmt.Fprintf(&sb, "- Descrição: %s\n", orPlaceholder(b.Descricao, "Não fornecida"))
	fmt.Fprintf(&sb, "- Preço: %s\n", formatPrice(b.Preco))
	fmt.Fprintf(&sb, "- Público-Alvo: %s\n", orPlaceholder(b.Publico, "Não especificado"))
	fmt.Fprintf(&sb, "- Concorrentes: %s\n", orPlaceholder(b.Concorrentes, "Não informados"))
	fmt.Fprintf(&sb, "- Objetivo de Receita: %s\n", orPlaceholder(b.ObjetivoReceita, "Não definido"))
	fmt.Fprintf(&sb, "- Orçamento de Marketing: %s\n", orPlaceholder(b.OrcamentoMarketing, "Não definido"))
	fmt.Fprintf(&sb, "- Prazo de Lançamento: %s\n", orPlaceholder(b.PrazoLancamento, "Não definido"))
	fmt.Fprintf(&sb, "- Dados Adicionais: %s\n", orPlaceholder(b.DadosAdicionais, "Nenhum"))

	sb.WriteString(`
INSTRUÇÕES PARA ANÁLISE:

1. PERFIL DO AVATAR:
- Crie um avatar detalhado com nome, idade, profissão e contexto
- Identifique a barreira crítica (problema principal)
- Defina o estado desejado (objetivo final)
- Liste 3-5 frustrações diárias específicas
- Identifique a crença limitante principal

2. ESTRATÉGIA DE POSICIONAMENTO:
- Crie uma declaração de posicionamento única
- Desenvolva 3 ângulos de mensagem (lógico, emocional, contraste)

3. ANÁLISE COMPETITIVA:
- Analise pelo menos 2-3 concorrentes diretos com forças e fraquezas
- Encontre lacunas no mercado e oportunidades de diferenciação

4. MATERIAIS DE MARKETING:
- Crie headline e seções para landing page
- Sugira 3 assuntos de e-mail para a sequência de lançamento
- Crie 3 roteiros de anúncios de 15 segundos

5. PROJEÇÕES FINANCEIRAS:
- Estime leads necessários, taxa de conversão realista, faturamento e ROI
- Distribua o investimento por canal

6. FUNIL DE VENDAS:
- Defina 4-5 fases do funil com objetivos e ações
- Estabeleça cronograma de execução

7. PLANO DE AÇÃO:
- Liste 7 próximos passos prioritários com prazos

FORMATO DE RESPOSTA:
Retorne APENAS um JSON válido seguindo exatamente esta estrutura:

`)
	sb.WriteString(schemaExample)
	sb.WriteString("\n")

	return sb.String()
}

func orPlaceholder(s, placeholder string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func formatPrice(p *float64) string {
	if p == nil {
		return "Não definido"
	}
	return "R$ " + strconv.FormatFloat(*p, 'f', -1, 64)
}
