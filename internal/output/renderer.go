package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nyanyapushkina/log-analysis-bot/internal/model"
)

// Renderer writes a Report to an output stream.
type Renderer interface {
	Render(rep *model.Report) error
}

// ---------------------------------------------------------------------------
// Text Renderer (colorized terminal output)
// ---------------------------------------------------------------------------

var (
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true) // red bold
	styleWarn  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))           // yellow
	styleAuth  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))            // cyan
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Faint(true)
	styleCount = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
)

// TextRenderer prints a report to the terminal with category colors.
type TextRenderer struct {
	w io.Writer
}

// NewTextRenderer returns a Renderer writing colorized text to stdout.
func NewTextRenderer() *TextRenderer {
	return &TextRenderer{w: os.Stdout}
}

// NewTextRendererTo returns a TextRenderer writing to w.
func NewTextRendererTo(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Render(rep *model.Report) error {
	for _, g := range rep.Groups {
		if g.Count == 0 {
			continue
		}
		header := fmt.Sprintf("%s %s", styleCategory(g.Category), styleCount.Render(fmt.Sprintf("(%d)", g.Count)))
		if _, err := fmt.Fprintln(r.w, header); err != nil {
			return err
		}
		for _, line := range g.Lines {
			if _, err := fmt.Fprintf(r.w, "  %s\n", line); err != nil {
				return err
			}
		}
	}
	footer := styleDim.Render(fmt.Sprintf("%d line(s), %d unmatched", rep.TotalLines, rep.UnmatchedCount))
	_, err := fmt.Fprintln(r.w, footer)
	return err
}

func styleCategory(c model.Category) string {
	name := string(c)
	switch c {
	case model.CategoryError:
		return styleError.Render(name)
	case model.CategoryWarning:
		return styleWarn.Render(name)
	case model.CategoryAuth:
		return styleAuth.Render(name)
	default:
		return styleDim.Render(name)
	}
}

// ---------------------------------------------------------------------------
// JSON Renderer (structured output for piping)
// ---------------------------------------------------------------------------

// JSONRenderer prints the whole report as one JSON object.
type JSONRenderer struct {
	enc *json.Encoder
}

// NewJSONRenderer returns a Renderer writing JSON to stdout.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(os.Stdout)}
}

// NewJSONRendererTo returns a JSONRenderer writing to w.
func NewJSONRendererTo(w io.Writer) *JSONRenderer {
	return &JSONRenderer{enc: json.NewEncoder(w)}
}

func (r *JSONRenderer) Render(rep *model.Report) error {
	return r.enc.Encode(rep)
}

// ---------------------------------------------------------------------------
// Chat formatting (plain text for the bot)
// ---------------------------------------------------------------------------

// FormatChat renders a report as plain text for a chat message. Each
// non-empty bucket shows at most tailLines of its newest lines with a
// "+N earlier" marker, mirroring how the report reads on a phone.
// tailLines <= 0 shows everything.
func FormatChat(rep *model.Report, tailLines int) string {
	var b strings.Builder

	shown := 0
	for _, g := range rep.Groups {
		if g.Count == 0 {
			continue
		}
		shown++
		fmt.Fprintf(&b, "📍 %s (%d):\n", g.Category, g.Count)

		lines := g.Lines
		if tailLines > 0 && len(lines) > tailLines {
			fmt.Fprintf(&b, "… +%d earlier\n", len(lines)-tailLines)
			lines = lines[len(lines)-tailLines:]
		}
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	if shown == 0 {
		b.WriteString("No matching entries.\n\n")
	}
	fmt.Fprintf(&b, "Lines: %d, unmatched: %d", rep.TotalLines, rep.UnmatchedCount)
	return b.String()
}

// ChunkMessage splits text into pieces no longer than limit runes,
// breaking at newlines where possible. Chat platforms cap message
// length (Telegram: 4096); we stay under it.
func ChunkMessage(text string, limit int) []string {
	if limit <= 0 || len([]rune(text)) <= limit {
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	curLen := 0

	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, strings.TrimSuffix(cur.String(), "\n"))
			cur.Reset()
			curLen = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		runes := []rune(line)
		// A single line longer than the limit is hard-split.
		for len(runes) > limit {
			flush()
			chunks = append(chunks, string(runes[:limit]))
			runes = runes[limit:]
		}
		if curLen+len(runes)+1 > limit {
			flush()
		}
		cur.WriteString(string(runes))
		cur.WriteByte('\n')
		curLen += len(runes) + 1
	}
	flush()
	return chunks
}
