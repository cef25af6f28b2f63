package digest

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"marketpulse/internal/model"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed template.html
var templateHTML string

var (
	styleUp   = template.CSS("color:#16a34a;")
	styleDown = template.CSS("color:#dc2626;")
	styleFlat = template.CSS("color:#6b7280;")
)

type rowView struct {
	Rank        int
	Symbol      string
	Name        string
	Industry    string
	Change      string
	ChangeStyle template.CSS
}

type pageView struct {
	Title     string
	Date      string
	UpdatedAt string
	Timezone  string
	Rows      []rowView
	Analysis  template.HTML
}

// Renderer builds the digest email. Dates are shown in loc.
type Renderer struct {
	tmpl     *template.Template
	markdown goldmark.Markdown
	loc      *time.Location
}

func NewRenderer(loc *time.Location) (*Renderer, error) {
	tmpl, err := template.New("digest").Parse(templateHTML)
	if err != nil {
		return nil, fmt.Errorf("parse digest template: %w", err)
	}
	if loc == nil {
		loc = time.UTC
	}

	return &Renderer{
		tmpl:     tmpl,
		markdown: goldmark.New(goldmark.WithExtensions(extension.Table, extension.Strikethrough)),
		loc:      loc,
	}, nil
}

func title(universe int) string {
	return fmt.Sprintf("Top %d Stocks", universe)
}

// Subject names the digest after the size of the tracked universe, which
// can be larger than the number of rows that had quotes.
func (r *Renderer) Subject(universe int, now time.Time) string {
	return fmt.Sprintf("%s - %s", title(universe), now.In(r.loc).Format(time.DateOnly))
}

// Render lays out rows in the order given and the narrative as markdown.
// Raw HTML inside the narrative is not passed through.
func (r *Renderer) Render(universe int, rows []model.QuoteRow, narrative string, now time.Time) (model.Digest, error) {
	var analysis bytes.Buffer
	if err := r.markdown.Convert([]byte(narrative), &analysis); err != nil {
		return model.Digest{}, fmt.Errorf("convert analysis markdown: %w", err)
	}

	local := now.In(r.loc)
	page := pageView{
		Title:     title(universe),
		Date:      local.Format(time.DateOnly),
		UpdatedAt: local.Format("2006-01-02 15:04"),
		Timezone:  r.loc.String(),
		Rows:      make([]rowView, len(rows)),
		Analysis:  template.HTML(analysis.String()),
	}

	for i, row := range rows {
		page.Rows[i] = rowView{
			Rank:        i + 1,
			Symbol:      row.Symbol,
			Name:        row.Name,
			Industry:    row.Industry,
			Change:      FormatChange(row),
			ChangeStyle: changeStyle(row),
		}
	}

	var body bytes.Buffer
	if err := r.tmpl.Execute(&body, page); err != nil {
		return model.Digest{}, fmt.Errorf("render digest: %w", err)
	}

	return model.Digest{Subject: r.Subject(universe, now), HTML: body.String()}, nil
}

// FormatChange renders a change as "+1.23%", "-0.50%" or "0.00%".
func FormatChange(row model.QuoteRow) string {
	sign := ""
	if row.PctChange.IsPositive() {
		sign = "+"
	}
	return sign + row.PctChange.StringFixed(2) + "%"
}

func changeStyle(row model.QuoteRow) template.CSS {
	switch {
	case row.PctChange.IsPositive():
		return styleUp
	case row.PctChange.IsNegative():
		return styleDown
	default:
		return styleFlat
	}
}
