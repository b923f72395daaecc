package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

const verbosePrefix = "[verbose]"

type verboseStyle int

const (
	styleDefault verboseStyle = iota
	stylePhase
	styleMetrics
	styleError
)

// logVerbose writes one prefixed diagnostic line when verbose output is on.
func logVerbose(enabled bool, writer io.Writer, noColor bool, style verboseStyle, format string, args ...any) {
	if !enabled || writer == nil {
		return
	}
	palette := paletteFor(writer, noColor)
	line := fmt.Sprintf(format, args...)
	fmt.Fprintf(writer, "%s %s\n", palette.prefix(verbosePrefix), palette.apply(style, line))
}

// verbosePalette styles progress text. A zero palette renders plain text.
type verbosePalette struct {
	renderer *lipgloss.Renderer
}

func paletteFor(writer io.Writer, noColor bool) verbosePalette {
	if noColor || !colorAllowed(writer) {
		return verbosePalette{}
	}
	return verbosePalette{renderer: lipgloss.NewRenderer(writer)}
}

func colorAllowed(writer io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	if strings.EqualFold(os.Getenv("CLICOLOR"), "0") {
		return false
	}
	fder, ok := writer.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(fder.Fd()))
}

func (p verbosePalette) prefix(text string) string {
	if p.renderer == nil {
		return text
	}
	return p.renderer.NewStyle().Faint(true).Foreground(lipgloss.Color("8")).Render(text)
}

func (p verbosePalette) apply(style verboseStyle, text string) string {
	if p.renderer == nil {
		return text
	}
	base := p.renderer.NewStyle().Bold(true)
	switch style {
	case stylePhase:
		return base.Foreground(lipgloss.Color("4")).Render(text)
	case styleMetrics:
		return base.Foreground(lipgloss.Color("2")).Render(text)
	case styleError:
		return base.Foreground(lipgloss.Color("1")).Render(text)
	default:
		return text
	}
}

// lockedWriter keeps lines from concurrent workers from interleaving.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

// wrapVerboseWriter serialises verboseWriter once more than one worker runs.
func wrapVerboseWriter(workers int, verboseWriter io.Writer) io.Writer {
	if workers <= 1 || verboseWriter == nil {
		return verboseWriter
	}
	if _, ok := verboseWriter.(*lockedWriter); ok {
		return verboseWriter
	}
	return &lockedWriter{w: verboseWriter}
}
