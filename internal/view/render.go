package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	doneStyle    = lipgloss.NewStyle().Strikethrough(true).Faint(true)
	idStyle      = lipgloss.NewStyle().Faint(true)
	noteStyle    = lipgloss.NewStyle().Italic(true)
)

func (p *Page) Render(w io.Writer) error {
	var b strings.Builder

	b.WriteString(headingStyle.Render("Your Tasks"))
	b.WriteString("\n")

	if p.Editing != nil {
		fmt.Fprintf(&b, "%s\n", noteStyle.Render("Editing "+p.Editing.ID))
	}
	if p.Loading {
		b.WriteString("Loading...\n")
	}
	if len(p.Tasks) == 0 {
		b.WriteString(noteStyle.Render("No tasks yet."))
		b.WriteString("\n")
	}

	for _, t := range p.Tasks {
		box, title := "[ ]", t.Title
		if t.Completed {
			box, title = "[x]", doneStyle.Render(t.Title)
		}
		fmt.Fprintf(&b, "%s %s  %s\n", box, title, idStyle.Render(t.ID))
		if t.Description != "" {
			fmt.Fprintf(&b, "    %s\n", t.Description)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
