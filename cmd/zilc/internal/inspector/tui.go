package inspector

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var docStyle = lipgloss.NewStyle().Margin(1, 2)

type objectItem ObjectSummary

func (o objectItem) Title() string { return fmt.Sprintf("#%d %s", o.ID, o.Name) }
func (o objectItem) Description() string {
	return fmt.Sprintf("parent=%d sibling=%d child=%d", o.Parent, o.Sibling, o.Child)
}
func (o objectItem) FilterValue() string { return o.Name }

// model is the interactive browser's bubbletea model: an object list
// on the left, a viewport showing header/dictionary/validator text on
// the right, following the reference interpreter's list+viewport
// split (main.go's runStoryModel upper/lower window panes).
type model struct {
	objects  list.Model
	detail   viewport.Model
	report   Report
	width    int
	height   int
}

// Run launches the interactive inspector over report.
func Run(report Report) error {
	items := make([]list.Item, len(report.Objects))
	for i, o := range report.Objects {
		items[i] = objectItem(o)
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Objects"

	vp := viewport.New(0, 0)
	vp.SetContent(renderDetail(report, nil))

	m := model{objects: l, detail: vp, report: report}

	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.width, m.height = msg.Width, msg.Height
		m.objects.SetSize((msg.Width-h)/2, msg.Height-v)
		m.detail.Width = (msg.Width - h) / 2
		m.detail.Height = msg.Height - v
	}

	var cmd tea.Cmd
	m.objects, cmd = m.objects.Update(msg)

	if selected, ok := m.objects.SelectedItem().(objectItem); ok {
		m.detail.SetContent(renderDetail(m.report, &selected))
	}

	return m, cmd
}

func (m model) View() string {
	left := docStyle.Render(m.objects.View())
	right := docStyle.Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func renderDetail(r Report, selected *objectItem) string {
	var b strings.Builder
	b.WriteString(r.Summary())

	if selected != nil {
		fmt.Fprintf(&b, "\nobject #%d: %s\n", selected.ID, selected.Name)
		for _, p := range selected.Properties {
			fmt.Fprintf(&b, "  prop %d: % x\n", p.Id, p.Data)
		}
	}

	b.WriteString("\ndictionary:\n")
	b.WriteString(strings.Join(r.Words, ", "))

	return wordwrap.String(b.String(), 60)
}
