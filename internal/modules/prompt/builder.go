package prompt

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	types "github.com/yungbote/editais-backend/internal/domain/congress"
	"github.com/yungbote/editais-backend/internal/modules/deadlines"
)

// GeminiSuffix is appended when the system prompt travels as the first user turn.
const GeminiSuffix = "\n\nResponda à última mensagem do usuário abaixo com base no contexto acima:"

const notAvailable = "Não disponível"

var tagRE = regexp.MustCompile(`<[^>]*>`)

type Input struct {
	Congress *types.Congress
	// Dates is nil when the congress has no edital dates.
	Dates *deadlines.ResolvedDates
	// Knowledge is the joined extracted text of the training files.
	Knowledge string
	Now       time.Time
	Location  *time.Location
	// MaxKnowledgeChars truncates Knowledge when > 0.
	MaxKnowledgeChars int
}

// StripTags removes anything shaped like an HTML tag. Edital content comes
// from the admin's own editor, so this is not a sanitizer.
func StripTags(html string) string {
	return tagRE.ReplaceAllString(html, "")
}

// FormatDate renders t as dd/mm/yyyy in loc.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02/01/2006")
}

// BuildSystemPrompt composes the grounding context in a fixed section order.
// Optional sections with no content are left out entirely.
func BuildSystemPrompt(in Input) string {
	c := in.Congress
	if c == nil {
		c = &types.Congress{}
	}
	var b strings.Builder

	fmt.Fprintf(&b, "Você é um assistente virtual útil e amigável para o congresso %q.\n\n", c.Title)
	fmt.Fprintf(&b, "HOJE É: %s\n\n", FormatDate(in.Now, in.Location))
	b.WriteString("Aqui estão as informações do congresso (Sua Base de Conhecimento):\n")

	if strings.TrimSpace(c.Description) != "" || strings.TrimSpace(c.Date) != "" {
		section(&b, "DESCRIÇÃO DO CONGRESSO")
		if d := strings.TrimSpace(c.Description); d != "" {
			b.WriteString(d)
			b.WriteString("\n")
		}
		if d := strings.TrimSpace(c.Date); d != "" {
			fmt.Fprintf(&b, "Data: %s\n", d)
		}
	}

	if in.Dates != nil {
		d := in.Dates
		section(&b, "DATAS IMPORTANTES (Use estas datas como referência absoluta)")
		fmt.Fprintf(&b, "Abertura: %s\n", d.Opening)
		fmt.Fprintf(&b, "Submissão: %s%s\n", d.Submission, closedNote(d.Submission, d.SubmissionClosed))
		fmt.Fprintf(&b, "Apresentação: %s%s\n", d.Presentation, closedNote(d.Presentation, d.PresentationClosed))
		fmt.Fprintf(&b, "Resultados: %s%s\n", d.Results, closedNote(d.Results, d.ResultsClosed))
		fmt.Fprintf(&b, "Publicação: %s\n", d.Publication)
	}

	if len(c.EditalSections) > 0 {
		section(&b, "SEÇÕES DO EDITAL / REGRAS (LEIA ATENTAMENTE)")
		blocks := make([]string, 0, len(c.EditalSections))
		for _, s := range c.EditalSections {
			blocks = append(blocks, fmt.Sprintf("-- %s --\n%s", s.Title, strings.TrimSpace(StripTags(s.Content))))
		}
		b.WriteString(strings.Join(blocks, "\n\n"))
		b.WriteString("\n")
	}

	if len(c.FAQ) > 0 {
		section(&b, "FAQ (Perguntas Frequentes)")
		pairs := make([]string, 0, len(c.FAQ))
		for _, f := range c.FAQ {
			pairs = append(pairs, fmt.Sprintf("P: %s\nR: %s", f.Question, f.Answer))
		}
		b.WriteString(strings.Join(pairs, "\n"))
		b.WriteString("\n")
	}

	if c.SubmissionURL != "" || c.BookChapterEditalURL != "" {
		section(&b, "LINKS ÚTEIS")
		fmt.Fprintf(&b, "- Submissão: %s\n", orDefault(c.SubmissionURL, notAvailable))
		fmt.Fprintf(&b, "- Edital Capítulo de Livro: %s\n", orDefault(c.BookChapterEditalURL, notAvailable))
	}

	if t := strings.TrimSpace(c.TrainingData); t != "" {
		section(&b, "INSTRUÇÕES ADICIONAIS DE TREINAMENTO")
		b.WriteString(t)
		b.WriteString("\n")
	}

	if k := truncate(strings.TrimSpace(in.Knowledge), in.MaxKnowledgeChars); k != "" {
		section(&b, "CONTEÚDO DOS ARQUIVOS DE SUPORTE (Prioridade Máxima)")
		b.WriteString(k)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(directives)
	return b.String()
}

const directives = `### DIRETRIZES ESTRITAS DE RESPOSTA:
1. Sua fonte de verdade é EXCLUSIVAMENTE o texto acima. Se a resposta não estiver no texto, diga educadamente que a informação não consta no edital/base de conhecimento.
2. NÃO invente datas ou regras. Use apenas o que foi fornecido.
3. SOBRE DATAS: As datas listadas em "Datas Importantes" são as vigentes. NÃO mencione "prorrogação", "extensão" ou números de etapas (ex: "5ª prorrogação"). Apenas forneça a data final.
4. SEJA DIRETO E CONCISO: Ao responder sobre prazos, sua resposta deve ser curta. NÃO explique o raciocínio temporal (ex: "Como hoje é dia X..."). Apenas informe o prazo.
   - Exemplo Bom: "O prazo final para envio das apresentações é hoje, 19/12/2025."
   - Exemplo Bom: "Você pode enviar até 19/12/2025."
   - Exemplo Ruim: "Considerando que hoje é 19/12/2025 e o prazo é 19/12/2025, então o prazo é hoje."
5. Use formatação Markdown para facilitar a leitura.

Histórico da conversa segue abaixo.
`

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n=== %s ===\n", title)
}

func closedNote(date string, closed bool) string {
	if !closed || date == deadlines.NotInformed {
		return ""
	}
	return " (prazo encerrado)"
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// truncate keeps at most max runes, marking the cut.
func truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "\n[...]"
}
