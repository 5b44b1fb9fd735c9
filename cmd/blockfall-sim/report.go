package main

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"text/template"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Seed   uint64
	Score  int
	Lines  int
	Level  int
	Pieces int
	Over   bool
}

type Report struct {
	// Configuration
	Duration   time.Duration
	Difficulty string
	MaxPieces  int

	// Results
	Games          []GameResult
	TotalTime      time.Duration
	StepTime       Stats
	PlaceTime      Stats
	Counts         map[tetris.Kind]int
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats

	// Derived by Finalize
	BestScore   int
	MedianScore int
	AvgLines    float64
	ToppedOut   int
	KindRows    []KindRow
}

// KindRow is one line of the piece distribution table.
type KindRow struct {
	Kind  string
	Count int
	Share float64
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// Finalize computes the summary fields from the collected games.
func (r *Report) Finalize() {
	r.StepTime.Finalize()
	r.PlaceTime.Finalize()

	if len(r.Games) > 0 {
		scores := make([]int, 0, len(r.Games))
		lines := 0
		for _, g := range r.Games {
			scores = append(scores, g.Score)
			lines += g.Lines
			if g.Over {
				r.ToppedOut++
			}
		}
		slices.Sort(scores)
		r.BestScore = scores[len(scores)-1]
		r.MedianScore = scores[len(scores)/2]
		r.AvgLines = float64(lines) / float64(len(r.Games))
	}

	total := 0
	for _, n := range r.Counts {
		total += n
	}
	r.KindRows = r.KindRows[:0]
	for _, k := range tetris.Kinds() {
		row := KindRow{Kind: k.String(), Count: r.Counts[k]}
		if total > 0 {
			row.Share = 100 * float64(row.Count) / float64(total)
		}
		r.KindRows = append(r.KindRows, row)
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Simulation Report

## Configuration
- **Time Limit:** {{.Duration}}
- **Difficulty:** {{.Difficulty}}
- **Piece Cap Per Game:** {{.MaxPieces}}

## Results
- **Games Played:** {{len .Games}}
- **Topped Out:** {{.ToppedOut}}
- **Best Score:** {{.BestScore}}
- **Median Score:** {{.MedianScore}}
- **Avg Lines:** {{printf "%.1f" .AvgLines}}
- **Total Time:** {{.TotalTime}}
- **Gravity Step (per game avg):**
  - **Avg:** {{.StepTime.Avg}}
  - **Min:** {{.StepTime.Min}}
  - **Max:** {{.StepTime.Max}}
- **Placement Search:**
  - **Avg:** {{.PlaceTime.Avg}}
  - **Min:** {{.PlaceTime.Min}}
  - **Max:** {{.PlaceTime.Max}}

## Piece Distribution
| Kind | Count | Share |
|------|-------|-------|
{{range .KindRows}}| {{.Kind}} | {{.Count}} | {{printf "%.2f%%" .Share}} |
{{end}}
## Games
| Seed | Score | Lines | Level | Pieces | Over |
|------|-------|-------|-------|--------|------|
{{range .Games}}| {{.Seed}} | {{.Score}} | {{.Lines}} | {{.Level}} | {{.Pieces}} | {{.Over}} |
{{end}}
## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}
`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return fmt.Errorf("parse report template: %w", err)
	}

	return tmpl.Execute(w, r)
}
