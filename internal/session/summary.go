package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/quizme/internal/journal"
	"github.com/abhisek/quizme/internal/leitner"
	"github.com/abhisek/quizme/internal/ui/components"
	"github.com/abhisek/quizme/internal/ui/theme"
)

const summaryBarWidth = 40

// SessionSummary holds the figures printed when a session ends.
type SessionSummary struct {
	Outcome  Outcome
	Duration time.Duration
	Asked    int
	Correct  int
	Invalid  int
	Accuracy float64
	Boxes    leitner.Snapshot
}

// BuildSummary combines the controller result, the journal totals and the
// final box counts. The journal is authoritative for answer counts.
func BuildSummary(res Result, totals journal.Summary, boxes leitner.Snapshot, elapsed time.Duration) *SessionSummary {
	return &SessionSummary{
		Outcome:  res.Outcome,
		Duration: elapsed,
		Asked:    res.Asked,
		Correct:  totals.Correct,
		Invalid:  totals.Invalid,
		Accuracy: totals.Accuracy(),
		Boxes:    boxes,
	}
}

// Render formats the summary for the console.
func (s *SessionSummary) Render(palette theme.Palette) string {
	var b strings.Builder
	b.WriteString(palette.Title.Render("Session summary"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Questions presented: %d\n", s.Asked)
	fmt.Fprintf(&b, "Correct answers:     %d (%.0f%%)\n", s.Correct, s.Accuracy*100)
	if s.Invalid > 0 {
		fmt.Fprintf(&b, "Invalid answers:     %d\n", s.Invalid)
	}
	fmt.Fprintf(&b, "Time:                %s\n", s.Duration.Round(time.Second))
	if total := s.Boxes.Total(); total > 0 {
		bar := components.NewProgressBar("Known", float64(s.Boxes.Count(leitner.TierKnown))/float64(total), true, summaryBarWidth)
		bar.FilledStyle = palette.Correct
		bar.EmptyStyle = palette.Hint
		b.WriteString(bar.View())
		b.WriteString("\n")
	}
	b.WriteString(RenderCounts(s.Boxes, palette))
	return b.String()
}
