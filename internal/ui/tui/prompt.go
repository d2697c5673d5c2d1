package tui

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrCancelled is returned when the user leaves the prompt without submitting.
var ErrCancelled = errors.New("prompt cancelled")

// Paths is what the prompt collects.
type Paths struct {
	Input string
	Query string
}

type field struct {
	label string
	input textinput.Model
	check func(string) error
	value string
	err   string
	ok    bool
}

type promptModel struct {
	theme  Theme
	fields []field
	focus  int

	checking  bool
	done      bool
	cancelled bool
	toast     string
}

// AskPaths asks for the paths missing from have. The query path is only asked
// for when askQuery is set.
func AskPaths(deps Deps, have Paths, askQuery bool) (Paths, error) {
	m := newPromptModel(deps, have, askQuery)
	if len(m.fields) == 0 {
		return have, nil
	}

	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var opts []tea.ProgramOption
	if deps.Input != nil {
		opts = append(opts, tea.WithInput(deps.Input))
	}
	if deps.Output != nil {
		opts = append(opts, tea.WithOutput(deps.Output))
	}

	final, err := tea.NewProgram(wrapSafe(m, log), opts...).Run()
	if err != nil {
		return have, err
	}

	sm, ok := final.(safeModel)
	if !ok {
		return have, errors.New("unexpected prompt model")
	}
	return sm.m.result(have)
}

func newPromptModel(deps Deps, have Paths, askQuery bool) promptModel {
	m := promptModel{theme: DefaultTheme()}

	if strings.TrimSpace(have.Input) == "" {
		m.fields = append(m.fields, newField("Input", "codes.txt or codes.csv", deps.CheckInput))
	}
	if askQuery && strings.TrimSpace(have.Query) == "" {
		m.fields = append(m.fields, newField("Query", "query.fasta", deps.CheckQuery))
	}
	if len(m.fields) > 0 {
		m.fields[0].input.Focus()
	}
	return m
}

func newField(label, placeholder string, check func(string) error) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	ti.CharLimit = 4096
	ti.Width = 48
	return field{label: label, input: ti, check: check}
}

func (m promptModel) result(have Paths) (Paths, error) {
	if m.cancelled || !m.done {
		return have, ErrCancelled
	}
	out := have
	for _, f := range m.fields {
		switch f.label {
		case "Input":
			out.Input = f.value
		case "Query":
			out.Query = f.value
		}
	}
	return out, nil
}

func (m promptModel) Init() tea.Cmd { return textinput.Blink }

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		for i := range m.fields {
			m.fields[i].input.Width = max(10, msg.Width-20)
		}
		return m, nil

	case pathCheckedMsg:
		m.checking = false
		if msg.field < 0 || msg.field >= len(m.fields) {
			return m, nil
		}
		f := &m.fields[msg.field]
		if msg.err != nil {
			f.ok = false
			f.err = clampString(msg.err.Error(), 120)
			return m, nil
		}
		f.ok = true
		f.err = ""
		f.value = msg.path

		next := m.nextPending()
		if next < 0 {
			m.done = true
			return m, tea.Quit
		}
		return m, m.setFocus(next)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % len(m.fields))

		case "shift+tab", "up":
			return m, m.setFocus((m.focus - 1 + len(m.fields)) % len(m.fields))

		case "enter":
			if m.checking {
				return m, nil
			}
			f := &m.fields[m.focus]
			v := strings.TrimSpace(f.input.Value())
			if v == "" {
				f.err = "a path is required"
				f.ok = false
				return m, nil
			}
			m.checking = true
			return m, cmdCheckPath(m.focus, v, f.check)
		}
	}

	var cmd tea.Cmd
	f := &m.fields[m.focus]
	before := f.input.Value()
	f.input, cmd = f.input.Update(msg)
	if f.input.Value() != before {
		f.ok = false
		f.err = ""
	}
	return m, cmd
}

func (m *promptModel) setFocus(i int) tea.Cmd {
	m.fields[m.focus].input.Blur()
	m.focus = i
	return m.fields[i].input.Focus()
}

func (m promptModel) nextPending() int {
	for k := 1; k <= len(m.fields); k++ {
		i := (m.focus + k) % len(m.fields)
		if !m.fields[i].ok {
			return i
		}
	}
	return -1
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("topufa"))
	b.WriteString("\n")
	b.WriteString(m.theme.Subtitle.Render("PDB codes → UniProt → FASTA → BLASTp"))
	b.WriteString("\n\n")

	for i, f := range m.fields {
		b.WriteString(renderField(m.theme, f, i == m.focus))
		b.WriteString("\n")
	}

	if m.toast != "" {
		b.WriteString("\n")
		b.WriteString(m.theme.Err.Render(m.toast))
		b.WriteString("\n")
	}

	help := "enter confirm • tab next • esc cancel"
	if m.checking {
		help = "checking…"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Card.Render(strings.TrimRight(b.String(), "\n")),
		m.theme.Help.Render(help),
	)
}
