// Package progress renders per-item progress for the network stages, either
// as a redrawn bar on a terminal or as plain lines elsewhere.
package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/guimsilvaa/topufa/internal/ports"
)

type Reporter struct {
	mu  sync.Mutex
	out io.Writer
	tty bool

	bar    progress.Model
	stage  lipgloss.Style
	failed lipgloss.Style
	faint  lipgloss.Style

	name  string
	total int
	done  int
	bad   int
}

// New returns a Reporter writing to out. tty selects the redrawn bar.
func New(out io.Writer, tty bool) *Reporter {
	return &Reporter{
		out:    out,
		tty:    tty,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(32), progress.WithoutPercentage()),
		stage:  lipgloss.NewStyle().Bold(true),
		failed: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		faint:  lipgloss.NewStyle().Faint(true),
	}
}

var _ ports.Progress = (*Reporter)(nil)

func (r *Reporter) Begin(stage string, total int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.name, r.total, r.done, r.bad = stage, total, 0, 0
	if r.tty {
		r.redraw("")
		return
	}
	fmt.Fprintf(r.out, "%s (%d)\n", stage, total)
}

func (r *Reporter) Advance(item string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.done++
	if !ok {
		r.bad++
	}
	if r.tty {
		r.redraw(item)
		return
	}
	status := "ok"
	if !ok {
		status = "failed"
	}
	fmt.Fprintf(r.out, "  [%d/%d] %s %s\n", r.done, r.total, item, status)
}

func (r *Reporter) End() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.tty {
		r.redraw("")
		fmt.Fprintln(r.out)
		return
	}
	fmt.Fprintf(r.out, "%s: %d ok, %d failed\n", r.name, r.done-r.bad, r.bad)
}

func (r *Reporter) redraw(item string) {
	pct := 1.0
	if r.total > 0 {
		pct = float64(r.done) / float64(r.total)
	}

	var b strings.Builder
	b.WriteString("\r\x1b[2K")
	b.WriteString(r.stage.Render(r.name))
	b.WriteString(" ")
	b.WriteString(r.bar.ViewAs(pct))
	fmt.Fprintf(&b, " %d/%d", r.done, r.total)
	if r.bad > 0 {
		b.WriteString(" ")
		b.WriteString(r.failed.Render(fmt.Sprintf("(%d failed)", r.bad)))
	}
	if item != "" {
		b.WriteString(" ")
		b.WriteString(r.faint.Render(item))
	}
	io.WriteString(r.out, b.String())
}
