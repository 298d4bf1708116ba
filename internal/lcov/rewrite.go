package lcov

import (
	"fmt"
	"strings"
)

// Erase returns a new record with the span's coverage zeroed out: its
// FNDA count and the count of every DA line inside the span become 0,
// the FNH aggregate drops by one, and the LH aggregate drops by the
// number of span lines that previously had a nonzero count. Every
// other line passes through unchanged, so a record needing no erasure
// round-trips byte-for-byte.
//
// Erasures compose: each call recomputes its line counts from the
// record it is given, and spans from one record never overlap, so the
// order of erasure across functions does not change the final
// aggregates.
func Erase(rec Record, span FunctionSpan) (Record, error) {
	out := make(Record, 0, len(rec))
	executedLines := 0

	for _, line := range rec {
		switch {
		case isFunctionData(line, span.Name):
			out = append(out, tagFunctionData+"0,"+span.Name)

		case strings.HasPrefix(line, tagFunctionsHit):
			count, err := aggregateCount(line, tagFunctionsHit)
			if err != nil {
				return nil, err
			}
			if count < 1 {
				return nil, fmt.Errorf("erasing %s would make FNH negative: function spans must not overlap", span.Name)
			}
			out = append(out, fmt.Sprintf("%s%d", tagFunctionsHit, count-1))

		case strings.HasPrefix(line, tagLineData):
			lineNo, count, err := lineData(line)
			if err != nil {
				return nil, err
			}
			if !span.Contains(lineNo) {
				out = append(out, line)
				continue
			}
			out = append(out, fmt.Sprintf("%s%d,0", tagLineData, lineNo))
			if count != 0 {
				executedLines++
			}

		case strings.HasPrefix(line, tagLinesHit):
			count, err := aggregateCount(line, tagLinesHit)
			if err != nil {
				return nil, err
			}
			if count < executedLines {
				return nil, fmt.Errorf("erasing %s would make LH negative: function spans must not overlap", span.Name)
			}
			out = append(out, fmt.Sprintf("%s%d", tagLinesHit, count-executedLines))

		default:
			out = append(out, line)
		}
	}

	return out, nil
}
