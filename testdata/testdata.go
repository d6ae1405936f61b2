// Package testdata embeds sample reports used by package tests.
package testdata

import (
	"bufio"
	"compress/gzip"
	"embed"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed *.gz
var data embed.FS

// lines yields the trimmed, non-blank lines of a gzipped sample file. Read
// errors fail the test once iteration ends.
func lines(t *testing.T, path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		f, err := data.Open(path)
		require.NoError(t, err)
		defer f.Close()

		r, err := gzip.NewReader(f)
		require.NoError(t, err)
		defer r.Close()

		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
		require.NoError(t, scanner.Err())
	}
}

// METAR yields one raw report per line.
func METAR(t *testing.T) iter.Seq[string] {
	return lines(t, "metar.txt.gz")
}
