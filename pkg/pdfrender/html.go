package pdfrender

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

type pageGeometry struct {
	CSSSize      string
	WidthInches  float64
	HeightInches float64
}

var pageSizes = map[string]pageGeometry{
	PageSizeLetter: {CSSSize: "Letter", WidthInches: 8.5, HeightInches: 11},
	PageSizeA4:     {CSSSize: "A4", WidthInches: 8.27, HeightInches: 11.69},
}

func geometry(pageSize string) pageGeometry {
	if g, ok := pageSizes[strings.ToLower(strings.TrimSpace(pageSize))]; ok {
		return g
	}
	return pageSizes[PageSizeLetter]
}

type lineKind int

const (
	lineBody lineKind = iota
	lineRole
	lineBullet
)

type viewLine struct {
	Kind lineKind
	HTML template.HTML
}

type viewSection struct {
	Title       template.HTML
	Skills      bool
	SkillsLeft  []template.HTML
	SkillsRight []template.HTML
	Lines       []viewLine
}

type view struct {
	Page     pageGeometry
	Name     template.HTML
	Title    template.HTML
	Contact  template.HTML
	Sections []viewSection
}

var pageTemplate = template.Must(template.New("resume").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Name}}</title>
<style>
@page { size: {{.Page.CSSSize}}; margin: 0.65in; }
body { font-family: "Source Serif 4", "Times New Roman", serif; font-size: 9.2pt; line-height: 1.35; color: #000; margin: 0; }
h1, h2, .subtitle { font-family: Montserrat, Helvetica, Arial, sans-serif; }
h1 { font-size: 16pt; margin: 0 0 2pt; }
.subtitle { font-size: 10pt; color: #444; margin: 0 0 5pt; }
.contact { font-size: 9pt; color: #555; margin: 0 0 6pt; }
hr { border: 0; border-top: 0.5pt solid #ddd; margin: 0 0 4pt; }
h2 { font-size: 10.5pt; background: #f2f2f2; margin: 10pt 0 5pt; padding: 1pt 2pt; }
p { margin: 0 0 2.2pt; }
p.role { font-size: 9.8pt; color: #222; margin-bottom: 1.6pt; }
ul { margin: 0; padding-left: 13pt; }
li { margin: 0.2pt 0; }
.skills { display: flex; font-size: 9pt; color: #111; }
.skills div { width: 50%; padding-right: 8pt; }
</style>
</head>
<body>
<h1>{{.Name}}</h1>
{{- if .Title}}
<div class="subtitle">{{.Title}}</div>
{{- end}}
<div class="contact">{{.Contact}}</div>
<hr>
{{- range .Sections}}
<h2>{{.Title}}</h2>
{{- if .Skills}}
<div class="skills"><div>{{range $i, $l := .SkillsLeft}}{{if $i}}<br/>{{end}}{{$l}}{{end}}</div><div>{{range $i, $l := .SkillsRight}}{{if $i}}<br/>{{end}}{{$l}}{{end}}</div></div>
{{- else}}
{{- range .Lines}}
{{- if eq .Kind 2}}
<ul><li>{{.HTML}}</li></ul>
{{- else if eq .Kind 1}}
<p class="role">{{.HTML}}</p>
{{- else}}
<p>{{.HTML}}</p>
{{- end}}
{{- end}}
{{- end}}
{{- end}}
</body>
</html>
`))

// BuildHTML renders the document as a standalone HTML page sized for the
// given paper ("letter" or "a4"). Sections without lines are omitted.
func BuildHTML(doc Document, pageSize string) (string, error) {
	name := strings.TrimSpace(doc.Name)
	if name == "" {
		name = DefaultName
	}
	v := view{
		Page:    geometry(pageSize),
		Name:    template.HTML(FormatText(name)),
		Title:   template.HTML(FormatText(strings.TrimSpace(doc.Title))),
		Contact: template.HTML(FormatText(doc.Contact)),
	}

	for _, sec := range doc.Sections {
		if len(sec.Lines) == 0 {
			continue
		}
		vs := viewSection{Title: template.HTML(FormatText(strings.ToUpper(sec.Title)))}
		if isSkillsSection(sec.Title) {
			vs.Skills = true
			left, right := splitSkills(sec.Lines)
			vs.SkillsLeft, vs.SkillsRight = toHTML(left), toHTML(right)
			v.Sections = append(v.Sections, vs)
			continue
		}
		for _, ln := range sec.Lines {
			if strings.TrimSpace(ln) == "" {
				continue
			}
			vs.Lines = append(vs.Lines, renderLine(ln))
		}
		v.Sections = append(v.Sections, vs)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}
	return buf.String(), nil
}

func renderLine(ln string) viewLine {
	ln = NormalizeBullets(strings.TrimSpace(AutoboldFull(ln)))
	if strings.HasPrefix(ln, bulletMark) {
		body := strings.TrimSpace(strings.TrimLeft(ln, bulletMark))
		return viewLine{Kind: lineBullet, HTML: template.HTML(FormatText(body))}
	}
	if isRoleLine(ln) {
		return viewLine{Kind: lineRole, HTML: template.HTML(FormatText(ln))}
	}
	return viewLine{Kind: lineBody, HTML: template.HTML(FormatText(ln))}
}

func toHTML(in []string) []template.HTML {
	out := make([]template.HTML, len(in))
	for i, s := range in {
		out[i] = template.HTML(s)
	}
	return out
}
