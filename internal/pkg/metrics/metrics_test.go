package metrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const scrape = `
# HELP mappings_validate_total Total validate calls.
# TYPE mappings_validate_total counter
mappings_validate_total{status="ok"} 12
mappings_validate_total{status="error"} 3
garbage line without a value
mappings_compile_duration_seconds_bucket{le="0.1"} 9
mappings_compile_duration_seconds_bucket{le="+Inf"} 11
mappings_compile_duration_seconds_sum 1.25
mappings_compile_duration_seconds_count 11
weird{"#$ 1
`

func TestParseText(t *testing.T) {
	t.Parallel()
	snapshot := ParseText(strings.NewReader(scrape))

	// Unmatched lines are ignored
	assert.Len(t, snapshot.Samples, 6)

	assert.InDelta(t, 15.0, snapshot.Value("mappings_validate_total"), 0.001)
	assert.InDelta(t, 3.0, snapshot.LabeledValue("mappings_validate_total", map[string]string{"status": "error"}), 0.001)
	assert.InDelta(t, 11.0, snapshot.HistogramCount("mappings_compile_duration_seconds"), 0.001)
	assert.InDelta(t, 1.25, snapshot.HistogramSum("mappings_compile_duration_seconds"), 0.001)
	assert.InDelta(t, 9.0, snapshot.HistogramBucket("mappings_compile_duration_seconds", "0.1"), 0.001)
}

func TestMissingMetricReadsZero(t *testing.T) {
	t.Parallel()
	snapshot := ParseText(strings.NewReader(""))
	assert.Zero(t, snapshot.Value("anything"))
	assert.Zero(t, snapshot.LabeledValue("anything", map[string]string{"a": "b"}))
}

func TestParseLabels(t *testing.T) {
	t.Parallel()
	snapshot := ParseText(strings.NewReader(`calls{method="POST",path="/mappings/validate"} 1`))
	assert.Len(t, snapshot.Samples, 1)
	assert.Equal(t, map[string]string{"method": "POST", "path": "/mappings/validate"}, snapshot.Samples[0].Labels)
}
