// Package redact masks secrets in text before it is written to craifter's
// structured log. Saved commands routinely carry tokens (curl headers,
// exported credentials), and the log file outlives the terminal scrollback.
package redact

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/zricethezav/gitleaks/v8/detect"
)

// Placeholder replaces every detected secret.
const Placeholder = "REDACTED"

// candidatePattern matches runs long enough to be a key or token.
var candidatePattern = regexp.MustCompile(`[A-Za-z0-9/+_=-]{10,}`)

// entropyThreshold is the Shannon entropy above which a candidate is treated
// as a secret. Ordinary words and identifiers stay well below it.
const entropyThreshold = 4.5

var (
	detector     *detect.Detector
	detectorOnce sync.Once
)

func getDetector() *detect.Detector {
	detectorOnce.Do(func() {
		d, err := detect.NewDetectorDefaultConfig()
		if err != nil {
			return
		}
		detector = d
	})
	return detector
}

type span struct{ start, end int }

// String returns s with every secret replaced by Placeholder.
// A span is a secret if it is a high-entropy run or a gitleaks rule matches it.
func String(s string) string {
	spans := append(entropySpans(s), ruleSpans(s)...)
	if len(spans) == 0 {
		return s
	}

	var b strings.Builder
	prev := 0
	for _, sp := range merge(spans) {
		b.WriteString(s[prev:sp.start])
		b.WriteString(Placeholder)
		prev = sp.end
	}
	b.WriteString(s[prev:])
	return b.String()
}

func entropySpans(s string) []span {
	var out []span
	for _, loc := range candidatePattern.FindAllStringIndex(s, -1) {
		if shannonEntropy(s[loc[0]:loc[1]]) > entropyThreshold {
			out = append(out, span{loc[0], loc[1]})
		}
	}
	return out
}

func ruleSpans(s string) []span {
	d := getDetector()
	if d == nil {
		return nil
	}

	var out []span
	for _, f := range d.DetectString(s) {
		if f.Secret == "" {
			continue
		}
		for from := 0; ; {
			idx := strings.Index(s[from:], f.Secret)
			if idx < 0 {
				break
			}
			start := from + idx
			out = append(out, span{start, start + len(f.Secret)})
			from = start + len(f.Secret)
		}
	}
	return out
}

// merge sorts spans and joins overlapping or touching ones.
func merge(spans []span) []span {
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	merged := []span{spans[0]}
	for _, sp := range spans[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			last.end = max(last.end, sp.end)
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	var freq [256]int
	for i := range len(s) {
		freq[s[i]]++
	}
	n := float64(len(s))
	var h float64
	for _, c := range freq {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}
