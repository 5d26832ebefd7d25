package pdfrender

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	headerRe     = regexp.MustCompile(`^(#{1,6})\s+(.*?)\s*$`)
	anyHeadingRe = regexp.MustCompile(`(?m)^\s*#{1,6}\s+\S+`)
)

// sectionList keeps insertion order; re-using a title replaces its lines
// in place.
type sectionList struct {
	items []Section
	index map[string]int
}

func newSectionList() *sectionList {
	return &sectionList{index: make(map[string]int)}
}

func (l *sectionList) set(title string, lines []string) {
	if i, ok := l.index[title]; ok {
		l.items[i].Lines = lines
		return
	}
	l.index[title] = len(l.items)
	l.items = append(l.items, Section{Title: title, Lines: lines})
}

// ParseMarkdownSections splits a markdown body into ordered sections.
// A leading H1 is treated as the candidate name and skipped, text before
// the first heading goes to "Summary", and runs of blank lines collapse
// to one.
func ParseMarkdownSections(md string) []Section {
	if strings.TrimSpace(md) == "" {
		return nil
	}

	lines := splitLines(md)
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}

	out := newSectionList()
	var (
		current *string
		buffer  []string
	)
	flush := func() {
		if current != nil {
			out.set(*current, compactBlank(buffer))
		}
		buffer = nil
	}

	i := 0
	if len(lines) > 0 {
		if m := headerRe.FindStringSubmatch(lines[0]); m != nil && len(m[1]) == 1 {
			i++
		}
	}
	for ; i < len(lines); i++ {
		line := lines[i]
		if m := headerRe.FindStringSubmatch(line); m != nil {
			flush()
			title := strings.TrimSpace(m[2])
			if title == "" {
				title = sectionDefault
			}
			current = &title
			continue
		}
		if current == nil {
			t := sectionSummary
			current = &t
		}
		buffer = append(buffer, line)
	}
	flush()

	if len(out.items) == 0 {
		return []Section{{Title: sectionContent, Lines: nonBlank(splitLines(md))}}
	}
	return out.items
}

// ParseSectionsFlex accepts either markdown or a loose "Key: value" layout
// where each identifier-like key opens a new section.
func ParseSectionsFlex(text string) []Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if anyHeadingRe.MatchString(text) {
		return ParseMarkdownSections(text)
	}

	lines := splitLines(text)
	out := newSectionList()
	var (
		current string
		open    bool
		buffer  []string
	)
	flush := func() {
		if open {
			out.set(current, trimmedNonBlank(buffer))
		}
		open, buffer = false, nil
	}

	for _, raw := range lines {
		ln := strings.TrimSpace(raw)
		if ln == "" {
			buffer = append(buffer, "")
			continue
		}
		if key, rest, ok := strings.Cut(ln, ":"); ok && isSectionKey(key, rest) {
			flush()
			current, open = strings.TrimSpace(key), true
			if rest = strings.TrimSpace(rest); rest != "" {
				buffer = append(buffer, rest)
			}
			continue
		}
		buffer = append(buffer, ln)
	}
	flush()

	if len(out.items) == 0 {
		return []Section{{Title: sectionContent, Lines: nonBlank(lines)}}
	}
	return out.items
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// compactBlank collapses consecutive blank lines and drops whitespace-only
// lines, keeping a single "" where a paragraph break was.
func compactBlank(in []string) []string {
	out := make([]string, 0, len(in))
	prevBlank := false
	for _, ln := range in {
		blank := strings.TrimSpace(ln) == ""
		if blank && prevBlank {
			continue
		}
		prevBlank = blank
		if blank && ln != "" {
			continue
		}
		out = append(out, ln)
	}
	return out
}

func nonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ln := range in {
		if strings.TrimSpace(ln) != "" {
			out = append(out, ln)
		}
	}
	return out
}

func trimmedNonBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, ln := range in {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}

// isSectionKey rejects URL schemes so "https://..." stays a body line.
func isSectionKey(key, rest string) bool {
	if strings.HasPrefix(rest, "//") {
		return false
	}
	return isIdentifier(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), " ", "_"))
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
