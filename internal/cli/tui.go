package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jkral/interwiki/pkg/family"
	"github.com/jkral/interwiki/pkg/lang"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// FamilyListModel - Interactive family selection
// =============================================================================

// FamilyRow is one family in the interactive list.
type FamilyRow struct {
	Key     string
	Members []*family.Page
}

// hasHub reports whether the family contains a page in the default language.
func (f FamilyRow) hasHub() bool {
	for _, p := range f.Members {
		_, l := lang.DetectLanguage(p.Title)
		if l.IsDefault() {
			return true
		}
	}
	return false
}

// tags returns the sorted language tags of the family's members.
func (f FamilyRow) tags() []string {
	out := make([]string, 0, len(f.Members))
	for _, p := range f.Members {
		_, l := lang.DetectLanguage(p.Title)
		out = append(out, l.Tag)
	}
	return out
}

// FamilyListModel is the bubbletea model for interactive family selection.
type FamilyListModel struct {
	Families []FamilyRow
	Cursor   int
	Selected *FamilyRow
	Height   int
	Offset   int
}

// NewFamilyListModel creates a new family list model.
func NewFamilyListModel(families []FamilyRow) FamilyListModel {
	return FamilyListModel{
		Families: families,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m FamilyListModel) Init() tea.Cmd {
	return nil
}

func (m FamilyListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Families)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			f := m.Families[m.Cursor]
			m.Selected = &f
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m FamilyListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Browse Families"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Families) {
		end = len(m.Families)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		f := m.Families[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		hub := ""
		if f.hasHub() {
			hub = "✓"
		}

		tags := strings.Join(f.tags(), " ")
		rows = append(rows, []string{cursor, f.Key, fmt.Sprintf("%d", len(f.Members)), hub, tags})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Family", "Pages", "Hub", "Languages").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Families) {
				return lipgloss.NewStyle()
			}
			f := m.Families[actualIdx]
			isCurrent := actualIdx == m.Cursor

			base := lipgloss.NewStyle()
			if col == 4 {
				base = base.Foreground(colorDim)
			}

			if isCurrent {
				if col != 4 {
					return base.Foreground(colorGreen).Bold(true)
				}
				return base.Bold(true)
			}
			if !f.hasHub() {
				return base.Foreground(colorYellow)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Families))))

	return b.String()
}

// =============================================================================
// MemberListModel - Family member detail view
// =============================================================================

// MemberListModel is the bubbletea model for inspecting one family's pages.
type MemberListModel struct {
	Family   FamilyRow
	Cursor   int
	Selected *family.Page
}

// NewMemberListModel creates a new member list model.
func NewMemberListModel(f FamilyRow) MemberListModel {
	return MemberListModel{Family: f}
}

func (m MemberListModel) Init() tea.Cmd {
	return nil
}

func (m MemberListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Family.Members)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = m.Family.Members[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m MemberListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.Family.Key))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, p := range m.Family.Members {
		cursor := "  "
		if i == m.Cursor {
			cursor = "> "
		}

		_, l := lang.DetectLanguage(p.Title)
		var status string
		if l.IsDefault() {
			status = StyleSuccess.Render("*")
		} else {
			status = listDimStyle.Render(" ")
		}

		links := fmt.Sprintf("%d links", len(p.LangLinks))
		line := fmt.Sprintf("%s%s [%s] %-45s  %s", cursor, status, l.Tag, p.Title, listDimStyle.Render(links))

		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(strings.Repeat("-", 40)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s hub language page\n", StyleSuccess.Render("*")))

	return b.String()
}
