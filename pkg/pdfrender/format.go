package pdfrender

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// keyTech tokens are bolded outside the skills section.
var keyTech = []string{
	"Python", "LangChain", "TensorFlow", "PyTorch", "Docker", "React", "FastAPI", "RAG", "FAISS",
	"Pinecone", "Weaviate", "Chroma", "SQL", "PostgreSQL", "MongoDB", "AWS", "GCP", "Kubernetes",
	"Solidity", "ERC-721", "ERC-1155", "OpenAI", "Hugging Face", "Transformers", "OpenCV",
	"Brownie", "Chainlink", "GraphQL", "TypeScript", "JavaScript", "Next.js", "Flask", "Django",
}

var (
	techRe      = buildTechRegex(keyTech)
	numberRe    = regexp.MustCompile(`~?\d+(?:\.\d+)?%?`)
	bulletRe    = regexp.MustCompile(`(?m)^[\x{2022}\-\*]\s+`)
	mdBoldRe    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	bareAmpRe   = regexp.MustCompile(`&([a-zA-Z]+;|#\d+;)?`)
	skillTitles = map[string]struct{}{"technical skills": {}, "skills": {}, "tech skills": {}}
)

const (
	bulletMark = "•"

	phBold    = "[[[B]]]"
	phBoldEnd = "[[[/B]]]"
	phBreak   = "[[[BR]]]"
)

func buildTechRegex(tokens []string) *regexp.Regexp {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}

// AutoboldLight wraps numbers and percentages ("40%", "~3.5", "12") in <b>
// unless they continue a word.
func AutoboldLight(text string) string {
	if text == "" {
		return text
	}
	var b strings.Builder
	last, from := 0, 0
	for from <= len(text) {
		loc := numberRe.FindStringIndex(text[from:])
		if loc == nil {
			break
		}
		start, end := from+loc[0], from+loc[1]
		if precededByWord(text, start) {
			// retry one rune later, so "a~5" still bolds the 5
			_, size := utf8.DecodeRuneInString(text[start:])
			from = start + size
			continue
		}
		b.WriteString(text[last:start])
		b.WriteString("<b>" + text[start:end] + "</b>")
		last, from = end, end
	}
	b.WriteString(text[last:])
	return b.String()
}

// AutoboldFull bolds numbers and the known technology names.
func AutoboldFull(text string) string {
	if text == "" {
		return text
	}
	return techRe.ReplaceAllString(AutoboldLight(text), "<b>$1</b>")
}

func precededByWord(s string, i int) bool {
	if i == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// NormalizeBullets rewrites "-", "*" and "•" list markers to "• ".
func NormalizeBullets(text string) string {
	return bulletRe.ReplaceAllString(text, bulletMark+" ")
}

// FormatText prepares one line for the HTML template: bullets are
// normalized, **bold** becomes <b>, and everything else is escaped except
// the <b> and <br/> tags already present.
func FormatText(text string) string {
	if text == "" {
		return ""
	}
	text = NormalizeBullets(text)
	text = mdBoldRe.ReplaceAllString(text, "<b>$1</b>")

	text = strings.NewReplacer("<b>", phBold, "</b>", phBoldEnd, "<br/>", phBreak).Replace(text)
	text = bareAmpRe.ReplaceAllStringFunc(text, func(m string) string {
		if m == "&" {
			return "&amp;"
		}
		return m
	})
	text = strings.NewReplacer("<", "&lt;", ">", "&gt;").Replace(text)
	return strings.NewReplacer(phBold, "<b>", phBoldEnd, "</b>", phBreak, "<br/>").Replace(text)
}

func isSkillsSection(title string) bool {
	_, ok := skillTitles[strings.ToLower(strings.TrimSpace(title))]
	return ok
}

// isRoleLine reports lines such as "Engineer - Acme" or "2019 → 2022".
func isRoleLine(line string) bool {
	return strings.Contains(line, " - ") || strings.Contains(line, "→")
}

// skillLine bolds only the category before the first colon.
func skillLine(line string) string {
	if head, rest, ok := strings.Cut(line, ":"); ok {
		return FormatText("<b>" + strings.TrimSpace(head) + ":</b>" + AutoboldLight(rest))
	}
	return FormatText(AutoboldLight(line))
}

// splitSkills lays skills lines out in two columns, the first column
// taking the extra line.
func splitSkills(lines []string) (left, right []string) {
	var processed []string
	for _, ln := range lines {
		if ln = strings.TrimSpace(ln); ln != "" {
			processed = append(processed, skillLine(ln))
		}
	}
	mid := (len(processed) + 1) / 2
	return processed[:mid], processed[mid:]
}
