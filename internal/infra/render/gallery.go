package render

import (
	"fmt"
	"io"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"

	"prompt-gallery/internal/domain/model"
)

const TimestampLayout = "2 Jan 15:04"

var page = template.Must(template.New("gallery").Funcs(template.FuncMap{
	"typeBadge":   typeBadge,
	"statusBadge": statusBadge,
	"stamp":       func(t time.Time) string { return t.Format(TimestampLayout) },
	"indent":      func(s string) string { return "    " + strings.ReplaceAll(s, "\n", "\n    ") },
}).Parse(`== Gallery ({{len .Items}} {{if eq (len .Items) 1}}item{{else}}items{{end}}) ==
{{- if not .Items}}
No media yet. Type a prompt to create your first one!
{{- end}}
{{- range .Items}}

{{typeBadge .Type}} {{statusBadge .Generating}}  {{stamp .Timestamp}}
{{- if .Generating}}
  thumbnail: (generating...)
{{- else}}
  thumbnail: {{.URL}}
{{- end}}
{{indent .Prompt}}
{{- end}}
`))

type view struct {
	Items []viewItem
}

type viewItem struct {
	Type       model.MediaType
	Generating bool
	URL        string
	Prompt     string
	Timestamp  time.Time
}

// Gallery writes a text rendering of items. Prompts are wrapped to width
// columns and clamped to two lines.
func Gallery(w io.Writer, items []*model.MediaItem, width int) error {
	v := view{Items: make([]viewItem, 0, len(items))}
	for _, it := range items {
		v.Items = append(v.Items, viewItem{
			Type:       it.Type,
			Generating: it.IsGenerating(),
			URL:        it.URL,
			Prompt:     ClampLines(it.Prompt, width, 2),
			Timestamp:  it.Timestamp,
		})
	}
	return page.Execute(w, v)
}

func typeBadge(t model.MediaType) string {
	return fmt.Sprintf("[%s]", strings.ToUpper(string(t)))
}

func statusBadge(generating bool) string {
	if generating {
		return "[in progress]"
	}
	return "[ready]"
}

// ClampLines word-wraps s to width runes per line and keeps at most max
// lines, marking a cut with an ellipsis.
func ClampLines(s string, width, max int) string {
	if width <= 0 || max <= 0 {
		return s
	}
	words := strings.Fields(s)
	var lines []string
	var cur strings.Builder
	truncated := false

	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
	}
	for _, word := range words {
		for utf8.RuneCountInString(word) > width {
			if cur.Len() > 0 {
				flush()
			}
			r := []rune(word)
			cur.WriteString(string(r[:width]))
			flush()
			word = string(r[width:])
		}
		switch {
		case cur.Len() == 0:
			cur.WriteString(word)
		case utf8.RuneCountInString(cur.String())+1+utf8.RuneCountInString(word) <= width:
			cur.WriteByte(' ')
			cur.WriteString(word)
		default:
			flush()
			cur.WriteString(word)
		}
	}
	if cur.Len() > 0 {
		flush()
	}
	if len(lines) > max {
		lines = lines[:max]
		truncated = true
	}
	if truncated {
		last := []rune(lines[max-1])
		if len(last) >= width {
			last = last[:width-1]
		}
		lines[max-1] = string(last) + "…"
	}
	return strings.Join(lines, "\n")
}
