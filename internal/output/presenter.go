package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"gb.dev/gb/internal/config"
	"gb.dev/gb/internal/engine"
)

// TimeLayout renders the tip commit time: date, 24-hour time and AM/PM marker
const TimeLayout = "2006-01-02 15:04PM"

// NameWidth is the column width for branch names; longer names are truncated
const NameWidth = 40

// ColorClass is the highlight a row is rendered with
type ColorClass int

const (
	// ColorActive marks the checked out branch
	ColorActive ColorClass = iota
	// ColorRecent marks branches with a recent tip commit
	ColorRecent
	// ColorStale marks branches whose tip is older than the stale threshold
	ColorStale
)

func (c ColorClass) String() string {
	switch c {
	case ColorActive:
		return "active"
	case ColorRecent:
		return "recent"
	default:
		return "stale"
	}
}

// ANSI palette indexes: green, yellow, red
var colorCodes = map[ColorClass]lipgloss.Color{
	ColorActive: lipgloss.Color("2"),
	ColorRecent: lipgloss.Color("3"),
	ColorStale:  lipgloss.Color("1"),
}

// PresenterOptions configures a Presenter
type PresenterOptions struct {
	// Color enables ANSI colors. Use ShouldColorize to decide it for a writer.
	Color bool
	// Relative appends a humanized tip age to every row
	Relative bool
	// StaleAfter defaults to config.DefaultStaleAfter
	StaleAfter time.Duration
	// Now defaults to time.Now
	Now func() time.Time
	// Location defaults to time.Local
	Location *time.Location
}

// Presenter formats compared snapshots, one line each
type Presenter struct {
	w      io.Writer
	opts   PresenterOptions
	styles map[ColorClass]lipgloss.Style
}

// NewPresenter creates a presenter writing to w
func NewPresenter(w io.Writer, opts PresenterOptions) *Presenter {
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = config.DefaultStaleAfter
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	renderer := lipgloss.NewRenderer(w)
	if opts.Color {
		renderer.SetColorProfile(termenv.ANSI)
	} else {
		renderer.SetColorProfile(termenv.Ascii)
	}

	styles := make(map[ColorClass]lipgloss.Style, len(colorCodes))
	for class, color := range colorCodes {
		styles[class] = renderer.NewStyle().Foreground(color)
	}

	return &Presenter{w: w, opts: opts, styles: styles}
}

// ShouldColorize reports whether output to w should be colored: w must be a
// terminal and NO_COLOR must be unset.
func ShouldColorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorClassOf picks the highlight for s. The checked out branch is always
// active; otherwise the tip age decides between recent and stale.
func (p *Presenter) ColorClassOf(s *engine.BranchSnapshot) ColorClass {
	if s.IsHead() {
		return ColorActive
	}
	if p.opts.Now().Sub(s.LastCommitTime()) < p.opts.StaleAfter {
		return ColorRecent
	}
	return ColorStale
}

// FormatLine returns the uncolored row for s, without a trailing newline
func (p *Presenter) FormatLine(s *engine.BranchSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s | %-*s | behind: %4d | ahead: %4d",
		s.LastCommitTime().In(p.opts.Location).Format(TimeLayout),
		NameWidth, truncate(s.Name(), NameWidth),
		s.Behind(),
		s.Ahead())

	if s.Merged() && !s.IsReference() {
		b.WriteString(" (merged)")
	}
	if p.opts.Relative {
		fmt.Fprintf(&b, " (%s)", humanize.RelTime(s.LastCommitTime(), p.opts.Now(), "ago", "from now"))
	}
	return b.String()
}

// RenderLine returns the row for s, colored when enabled
func (p *Presenter) RenderLine(s *engine.BranchSnapshot) string {
	line := p.FormatLine(s)
	if !p.opts.Color {
		return line
	}
	return p.styles[p.ColorClassOf(s)].Render(line)
}

// Present writes one row per snapshot in order. Rows are assembled in memory
// and written with a single call.
func (p *Presenter) Present(snapshots []*engine.BranchSnapshot) error {
	var buf bytes.Buffer
	for _, s := range snapshots {
		buf.WriteString(p.RenderLine(s))
		buf.WriteByte('\n')
	}
	if buf.Len() == 0 {
		return nil
	}
	if _, err := p.w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width])
}
