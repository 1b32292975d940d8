package extract

import (
	"regexp"
	"strings"

	"go.uber.org/zap"
)

var (
	versionRegex = regexp.MustCompile(`Testing with sanity@([\d.]+)`)
	rowRegex     = regexp.MustCompile(`│([^│]+)│([^│]+)│([^│]+)│([^│]+)│`)
	parenRegex   = regexp.MustCompile(`\(.*?\)`)
)

const (
	headerBenchmark = "benchmark"
	syntheticPrefix = "synthetic"
)

// Outcome classifies what a single line contributed to the result.
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeVersion
	OutcomeRecord
	OutcomeSkippedHeader
	OutcomeSkippedSynthetic
	OutcomeSkippedNoVersion
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVersion:
		return "version"
	case OutcomeRecord:
		return "record"
	case OutcomeSkippedHeader:
		return "skipped_header"
	case OutcomeSkippedSynthetic:
		return "skipped_synthetic"
	case OutcomeSkippedNoVersion:
		return "skipped_no_version"
	}
	return "ignored"
}

// State is the accumulator threaded through the lines of a log.
// The zero value has no version set.
type State struct {
	Version string
}

// HasVersion reports whether a version marker has been seen.
func (s State) HasVersion() bool {
	return s.Version != ""
}

// Step processes one raw line. It returns the next state, the record emitted
// by the line (valid only when the outcome is OutcomeRecord) and the outcome.
// A version marker takes effect before the same line is checked for a row.
func Step(s State, line string) (State, Record, Outcome) {
	line = StripANSI(line)

	outcome := OutcomeIgnored
	if m := versionRegex.FindStringSubmatch(line); m != nil {
		s.Version = m[1]
		outcome = OutcomeVersion
	}

	m := rowRegex.FindStringSubmatch(line)
	if m == nil {
		return s, Record{}, outcome
	}

	benchmark := strings.TrimSpace(m[1])
	switch {
	case benchmark == headerBenchmark:
		return s, Record{}, OutcomeSkippedHeader
	case strings.HasPrefix(benchmark, syntheticPrefix):
		return s, Record{}, OutcomeSkippedSynthetic
	case !s.HasVersion():
		return s, Record{}, OutcomeSkippedNoVersion
	}

	return s, Record{
		Version:   s.Version,
		Benchmark: strings.TrimSpace(parenRegex.ReplaceAllString(benchmark, "")),
		P50:       strings.TrimSpace(m[2]),
		P75:       strings.TrimSpace(m[3]),
		P90:       strings.TrimSpace(m[4]),
	}, OutcomeRecord
}

// Parse folds Step over lines starting from the zero State.
func Parse(lines []string) ([]Record, Stats) {
	return parse(lines, zap.NewNop())
}

func parse(lines []string, logger *zap.Logger) ([]Record, Stats) {
	records := make([]Record, 0)
	stats := Stats{Lines: len(lines)}

	var state State
	for i, line := range lines {
		next, record, outcome := Step(state, line)
		if next.Version != state.Version {
			stats.Versions++
			logger.Debug("Version changed",
				zap.Int("line", i+1),
				zap.String("from", state.Version),
				zap.String("to", next.Version))
		}
		state = next

		if outcome > OutcomeRecord {
			logger.Debug("Skipped table row",
				zap.Int("line", i+1),
				zap.Stringer("reason", outcome))
		}

		switch outcome {
		case OutcomeRecord:
			records = append(records, record)
		case OutcomeSkippedHeader:
			stats.SkippedHeader++
		case OutcomeSkippedSynthetic:
			stats.SkippedSynthetic++
		case OutcomeSkippedNoVersion:
			stats.SkippedNoVersion++
		}
	}
	stats.Records = len(records)
	return records, stats
}
