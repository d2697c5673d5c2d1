package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReporter_PlainLines(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, false)

	r.Begin("Fetching UniProt IDs", 3)
	r.Advance("1abc", true)
	r.Advance("2xyz", false)
	r.Advance("3def", true)
	r.End()

	assert.Equal(t, strings.Join([]string{
		"Fetching UniProt IDs (3)",
		"  [1/3] 1abc ok",
		"  [2/3] 2xyz failed",
		"  [3/3] 3def ok",
		"Fetching UniProt IDs: 2 ok, 1 failed",
		"",
	}, "\n"), buf.String())
}

func TestReporter_TTYRedraws(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)

	r.Begin("Fetching FASTA", 2)
	r.Advance("P12345", true)
	r.Advance("Q99999", false)
	r.End()

	out := buf.String()
	assert.Contains(t, out, "Fetching FASTA")
	assert.Contains(t, out, "1/2")
	assert.Contains(t, out, "2/2")
	assert.Contains(t, out, "(1 failed)")
	assert.Contains(t, out, "P12345")
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.Equal(t, 4, strings.Count(out, "\r"), "one redraw per call")
}

func TestReporter_ZeroTotal(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, true)
	r.Begin("Fetching FASTA", 0)
	r.End()
	assert.Contains(t, buf.String(), "0/0")
}
