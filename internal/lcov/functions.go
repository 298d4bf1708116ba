package lcov

import (
	"fmt"
	"strconv"
	"strings"
)

// FunctionSpan is a function's line range within a record, derived
// from declaration order. End == 0 means the function is the last in
// the record and its range extends to the end of the file.
type FunctionSpan struct {
	Name  string
	Start int
	End   int
}

// Contains reports whether lineNo falls inside the span's range.
func (s FunctionSpan) Contains(lineNo int) bool {
	return lineNo >= s.Start && (s.End == 0 || lineNo <= s.End)
}

// Functions returns one span per FN: line, in declaration order. The
// first pass collects names and start lines; the second sets each end
// to the next function's start minus one, leaving the last span
// open-ended. Coverage tools emit FN: lines in file order, so spans
// never overlap.
func (r Record) Functions() ([]FunctionSpan, error) {
	var spans []FunctionSpan

	for _, line := range r {
		if !strings.HasPrefix(line, tagFunction) {
			continue
		}

		lineStr, name, ok := strings.Cut(strings.TrimPrefix(line, tagFunction), ",")
		if !ok {
			return nil, fmt.Errorf("malformed FN line %q: missing comma", line)
		}
		start, err := strconv.Atoi(lineStr)
		if err != nil {
			return nil, fmt.Errorf("malformed FN line %q: %w", line, err)
		}

		spans = append(spans, FunctionSpan{Name: name, Start: start})
	}

	for i := 0; i < len(spans)-1; i++ {
		spans[i].End = spans[i+1].Start - 1
	}

	return spans, nil
}

// FunctionExecuted reports whether the named function has a nonzero
// FNDA count in the record. A function with no FNDA line was not
// executed.
func (r Record) FunctionExecuted(name string) (bool, error) {
	for _, line := range r {
		if !isFunctionData(line, name) {
			continue
		}

		count, err := functionDataCount(line)
		if err != nil {
			return false, err
		}
		return count != 0, nil
	}

	return false, nil
}
