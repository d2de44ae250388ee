package session

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/abhisek/quizme/internal/leitner"
	"github.com/abhisek/quizme/internal/ui/theme"
)

// Console is a line-oriented Prompter over a reader and writer.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	palette theme.Palette
}

// NewConsole creates a console prompter.
func NewConsole(in io.Reader, out io.Writer, palette theme.Palette) *Console {
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		palette: palette,
	}
}

// Say writes text followed by a newline.
func (c *Console) Say(text string) {
	fmt.Fprintln(c.out, text)
}

// Ask writes the prompt and reads one line. A final line without a trailing
// newline is still returned; io.EOF is returned only when nothing was read.
func (c *Console) Ask(prompt string) (string, error) {
	fmt.Fprintf(c.out, "\n%s\n%s", prompt, c.palette.Prompt.Render("Your answer: "))

	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// BoxCountSink prints every snapshot through the prompter.
func BoxCountSink(p Prompter, palette theme.Palette) leitner.Sink {
	return leitner.SinkFunc(func(s leitner.Snapshot) {
		p.Say(RenderCounts(s, palette))
	})
}

// RenderCounts formats a snapshot as one line per box.
func RenderCounts(s leitner.Snapshot, palette theme.Palette) string {
	lines := make([]string, len(s.Counts))
	for i, c := range s.Counts {
		lines[i] = palette.BoxName.Render(c.Name+":") + " " +
			palette.BoxCount.Render(fmt.Sprintf("%d", c.Count)) + " questions"
	}
	return strings.Join(lines, "\n")
}
