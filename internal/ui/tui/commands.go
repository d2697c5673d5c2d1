package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdCheckPath validates a path off the update loop.
func cmdCheckPath(field int, path string, check func(string) error) tea.Cmd {
	return func() tea.Msg {
		p := filepath.Clean(path)
		if check == nil {
			return pathCheckedMsg{field: field, path: p}
		}
		return pathCheckedMsg{field: field, path: p, err: check(p)}
	}
}
