package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eykd/ddata-go/internal/decay"
)

var tableHeaders = []string{"Type", "Energy (keV)", "Intensity (%)"}

// Styles controls how Text draws tables.
type Styles struct {
	Title  lipgloss.Style
	Header lipgloss.Style
	Cell   lipgloss.Style
	Sep    lipgloss.Style
}

// PlainStyles draws without colour, for files and --no-colour.
func PlainStyles() Styles {
	r := lipgloss.NewRenderer(io.Discard)
	return Styles{
		Title:  r.NewStyle(),
		Header: r.NewStyle().Padding(0, 1),
		Cell:   r.NewStyle().Padding(0, 1),
		Sep:    r.NewStyle(),
	}
}

// TerminalStyles colours tables for w when w is a colour terminal.
func TerminalStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		Header: r.NewStyle().Bold(true).Padding(0, 1),
		Cell:   r.NewStyle().Padding(0, 1),
		Sep:    r.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	}
}

// Text renders one titled table per nuclide, separated by blank lines.
func Text(ds decay.Dataset, req Request, st Styles) (string, error) {
	if err := checkEmpty(ds); err != nil {
		return "", err
	}

	var sb strings.Builder
	for i, e := range ds {
		if i > 0 {
			sb.WriteString("\n")
		}
		title := fmt.Sprintf("%s (%s decay, %d records)", e.ID.Name(), req.Rad, len(e.Records))
		sb.WriteString(st.Title.Render(title))
		sb.WriteString("\n")
		writeTable(&sb, e.Records, st)
	}
	return sb.String(), nil
}

func writeTable(sb *strings.Builder, recs []decay.Record, st Styles) {
	rows := make([][]string, len(recs))
	for i, r := range recs {
		rows[i] = []string{
			r.Type.String(),
			strconv.FormatFloat(r.EnergyKeV, 'f', -1, 64),
			strconv.FormatFloat(r.IntensityPercent, 'f', -1, 64),
		}
	}

	widths := make([]int, len(tableHeaders))
	for i, h := range tableHeaders {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}
	// Width includes the cell padding.
	total := len(widths) - 1
	for i := range widths {
		widths[i] += 2
		total += widths[i]
	}

	writeRow(sb, tableHeaders, widths, st.Header, st.Sep)
	sb.WriteString(st.Sep.Render(strings.Repeat("-", total)))
	sb.WriteString("\n")
	for _, row := range rows {
		writeRow(sb, row, widths, st.Cell, st.Sep)
	}
}

func writeRow(sb *strings.Builder, cells []string, widths []int, cell, sep lipgloss.Style) {
	for i, c := range cells {
		style := cell.Width(widths[i])
		if i > 0 {
			// Numbers are right aligned.
			style = style.Align(lipgloss.Right)
			sb.WriteString(sep.Render("|"))
		}
		sb.WriteString(style.Render(c))
	}
	sb.WriteString("\n")
}
