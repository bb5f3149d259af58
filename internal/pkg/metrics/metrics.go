// Package metrics reads the backend's GET /metrics endpoint.
//
// The payload is Prometheus text format, parsed by simple line-pattern
// matching, not a full parser: unmatched lines are ignored and missing
// metrics read as zero.
package metrics

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cast"
)

// sampleLine matches `name{labels} value` and `name value`.
var sampleLine = regexp.MustCompile(`^([a-zA-Z_:][a-zA-Z0-9_:]*)(?:\{([^}]*)\})?\s+([0-9eE+.\-]+|NaN|[+-]Inf)\s*$`) // nolint: gochecknoglobals

var labelPair = regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_]*)="((?:[^"\\]|\\.)*)"`) // nolint: gochecknoglobals

// Sample is one parsed metric line.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot is a parsed scrape, short-lived UI state only.
type Snapshot struct {
	Samples []Sample
}

// ParseText scans the text format line by line.
// Comment lines, type hints and anything unrecognized are skipped.
func ParseText(r io.Reader) Snapshot {
	out := Snapshot{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		match := sampleLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		value, err := cast.ToFloat64E(match[3])
		if err != nil {
			continue
		}
		out.Samples = append(out.Samples, Sample{
			Name:   match[1],
			Labels: parseLabels(match[2]),
			Value:  value,
		})
	}
	return out
}

func parseLabels(raw string) map[string]string {
	if raw == "" {
		return nil
	}
	out := map[string]string{}
	for _, pair := range labelPair.FindAllStringSubmatch(raw, -1) {
		out[pair[1]] = strings.ReplaceAll(strings.ReplaceAll(pair[2], `\"`, `"`), `\\`, `\`)
	}
	return out
}

// Value sums all samples of a metric, zero when the metric is missing.
func (s Snapshot) Value(name string) float64 {
	total := 0.0
	for _, sample := range s.Samples {
		if sample.Name == name {
			total += sample.Value
		}
	}
	return total
}

// LabeledValue sums samples matching all given label values.
func (s Snapshot) LabeledValue(name string, labels map[string]string) float64 {
	total := 0.0
	for _, sample := range s.Samples {
		if sample.Name != name || !labelsMatch(sample.Labels, labels) {
			continue
		}
		total += sample.Value
	}
	return total
}

// HistogramCount reads the `_count` series of a histogram.
func (s Snapshot) HistogramCount(name string) float64 {
	return s.Value(name + "_count")
}

// HistogramSum reads the `_sum` series of a histogram.
func (s Snapshot) HistogramSum(name string) float64 {
	return s.Value(name + "_sum")
}

// HistogramBucket reads the cumulative `_bucket` series for one upper bound.
func (s Snapshot) HistogramBucket(name, le string) float64 {
	return s.LabeledValue(name+"_bucket", map[string]string{"le": le})
}

func labelsMatch(sample, wanted map[string]string) bool {
	for key, value := range wanted {
		if sample[key] != value {
			return false
		}
	}
	return true
}
