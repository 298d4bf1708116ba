// Package lcov models lcov .info coverage reports as per-source-file
// records and provides the parsing, function extraction, and counter
// rewriting the attribution pipeline is built on.
package lcov

import (
	"fmt"
	"strconv"
	"strings"
)

// EndOfRecord is the sentinel line separating records in an info file.
const EndOfRecord = "end_of_record"

// Tag prefixes for the line kinds the tool understands. Any other line
// kind is passed through verbatim.
const (
	tagSourceFile   = "SF:"
	tagFunction     = "FN:"
	tagFunctionData = "FNDA:"
	tagFunctionsHit = "FNH:"
	tagLineData     = "DA:"
	tagLinesHit     = "LH:"
)

// Record is the coverage data for one source file: the raw annotated
// lines up to, but not including, the end_of_record sentinel.
type Record []string

// SourceFile returns the path from the record's SF: line, or "" if the
// record has none.
func (r Record) SourceFile() string {
	for _, line := range r {
		if strings.HasPrefix(line, tagSourceFile) {
			return strings.TrimPrefix(line, tagSourceFile)
		}
	}
	return ""
}

// Render converts the record back into report text, sentinel included.
func (r Record) Render() string {
	var b strings.Builder
	for _, line := range r {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(EndOfRecord)
	b.WriteByte('\n')
	return b.String()
}

// isFunctionData reports whether line is the FNDA line for fn.
func isFunctionData(line, fn string) bool {
	return strings.HasPrefix(line, tagFunctionData) && strings.HasSuffix(line, ","+fn)
}

// functionDataCount returns the execution count from an FNDA line.
func functionDataCount(line string) (int, error) {
	countStr, _, ok := strings.Cut(strings.TrimPrefix(line, tagFunctionData), ",")
	if !ok {
		return 0, fmt.Errorf("malformed FNDA line %q: missing comma", line)
	}
	count, err := strconv.Atoi(countStr)
	if err != nil {
		return 0, fmt.Errorf("malformed FNDA line %q: %w", line, err)
	}
	return count, nil
}

// lineData returns the line number and execution count from a DA line.
func lineData(line string) (lineNo, count int, err error) {
	lineStr, countStr, ok := strings.Cut(strings.TrimPrefix(line, tagLineData), ",")
	if !ok {
		return 0, 0, fmt.Errorf("malformed DA line %q: missing comma", line)
	}
	lineNo, err = strconv.Atoi(lineStr)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed DA line %q: %w", line, err)
	}
	count, err = strconv.Atoi(countStr)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed DA line %q: %w", line, err)
	}
	return lineNo, count, nil
}

// aggregateCount returns the count from an FNH: or LH: line.
func aggregateCount(line, tag string) (int, error) {
	count, err := strconv.Atoi(strings.TrimPrefix(line, tag))
	if err != nil {
		return 0, fmt.Errorf("malformed %s line %q: %w", strings.TrimSuffix(tag, ":"), line, err)
	}
	return count, nil
}
