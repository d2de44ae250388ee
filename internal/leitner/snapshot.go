package leitner

import (
	"fmt"
	"strings"
	"time"
)

// BoxCount is the size of one box at snapshot time.
type BoxCount struct {
	Tier  Tier   `json:"tier"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Snapshot captures per-box question counts in tier order.
type Snapshot struct {
	Taken  time.Time  `json:"taken"`
	Counts []BoxCount `json:"counts"`
}

// Map returns the counts keyed by box name.
func (s Snapshot) Map() map[string]int {
	m := make(map[string]int, len(s.Counts))
	for _, c := range s.Counts {
		m[c.Name] = c.Count
	}
	return m
}

// Count returns the number of questions in tier t.
func (s Snapshot) Count(t Tier) int {
	for _, c := range s.Counts {
		if c.Tier == t {
			return c.Count
		}
	}
	return 0
}

// Total returns the number of questions across all boxes.
func (s Snapshot) Total() int {
	n := 0
	for _, c := range s.Counts {
		n += c.Count
	}
	return n
}

func (s Snapshot) String() string {
	lines := make([]string, len(s.Counts))
	for i, c := range s.Counts {
		lines[i] = fmt.Sprintf("%s: %d questions", c.Name, c.Count)
	}
	return strings.Join(lines, "\n")
}

// Sink receives a snapshot after every move. Sinks observe only; nothing
// they do feeds back into scheduling.
type Sink interface {
	ObserveCounts(Snapshot)
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(Snapshot)

func (f SinkFunc) ObserveCounts(s Snapshot) { f(s) }

// MultiSink fans a snapshot out to every sink in order. Nil sinks are skipped.
func MultiSink(sinks ...Sink) Sink {
	return multiSink(sinks)
}

type multiSink []Sink

func (m multiSink) ObserveCounts(s Snapshot) {
	for _, sink := range m {
		if sink != nil {
			sink.ObserveCounts(s)
		}
	}
}

type nopSink struct{}

func (nopSink) ObserveCounts(Snapshot) {}
