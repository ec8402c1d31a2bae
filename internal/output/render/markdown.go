package render

import (
	"sort"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lueurxax/search-intel-brief/internal/core/domain"
)

const (
	furtherReading = "Further reading"
	qaHeading      = "QA"
	minColumnWidth = 3
)

var linkTextEscaper = strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`)

// Format renders doc as Markdown: title, sections with their paragraphs and links,
// then the run metadata table.
func Format(doc Document) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(doc.Title)
	sb.WriteString("\n\n")

	for _, s := range doc.Sections {
		writeSection(&sb, s)
	}

	sb.WriteString("---\n\n## ")
	sb.WriteString(qaHeading)
	sb.WriteString("\n\n")

	for _, line := range metaTable(doc.Meta) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeSection(sb *strings.Builder, s domain.Section) {
	if s.Title != "" {
		sb.WriteString("## ")
		sb.WriteString(s.Title)
		sb.WriteString("\n\n")
	}

	for _, p := range s.Paragraphs {
		sb.WriteString(p)
		sb.WriteString("\n\n")
	}

	if len(s.Links) == 0 {
		return
	}

	sb.WriteString("### ")
	sb.WriteString(furtherReading)
	sb.WriteString("\n\n")

	for _, l := range s.Links {
		sb.WriteString("- [")
		sb.WriteString(linkTextEscaper.Replace(l.Title))
		sb.WriteString("](")
		sb.WriteString(l.URL)
		sb.WriteString(")\n")
	}

	sb.WriteString("\n")
}

func metaRows(meta domain.RunMeta) [][]string {
	rows := [][]string{
		{"run_id", meta.RunID},
		{"timestamp", meta.Timestamp},
		{"use_llm", strconv.FormatBool(meta.UseLLM)},
		{"use_research", strconv.FormatBool(meta.UseResearch)},
		{"sources_checked", strconv.Itoa(meta.Counts.SourcesChecked)},
		{"items_kept", strconv.Itoa(meta.Counts.ItemsKept)},
		{"citations", strconv.Itoa(meta.Counts.Citations)},
	}

	audiences := make([]string, 0, len(meta.Models))
	for a := range meta.Models {
		audiences = append(audiences, a.String())
	}

	sort.Strings(audiences)

	for _, a := range audiences {
		rows = append(rows, []string{"model_" + a, meta.Models[domain.Audience(a)]})
	}

	return rows
}

// metaTable lays the run metadata out as a Markdown table padded to display width.
func metaTable(meta domain.RunMeta) []string {
	rows := append([][]string{{"field", "value"}}, metaRows(meta)...)

	widths := []int{minColumnWidth, minColumnWidth}

	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	out := make([]string, 0, len(rows)+1)
	out = append(out, tableRow(rows[0], widths))
	out = append(out, "| "+strings.Repeat("-", widths[0])+" | "+strings.Repeat("-", widths[1])+" |")

	for _, row := range rows[1:] {
		out = append(out, tableRow(row, widths))
	}

	return out
}

func tableRow(row []string, widths []int) string {
	var sb strings.Builder

	sb.WriteString("|")

	for i, cell := range row {
		sb.WriteString(" ")
		sb.WriteString(runewidth.FillRight(cell, widths[i]))
		sb.WriteString(" |")
	}

	return sb.String()
}
