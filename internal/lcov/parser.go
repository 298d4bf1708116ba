package lcov

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Recordize splits an lcov info stream into records at each
// end_of_record sentinel. Lines are whitespace-trimmed. A trailing
// partial record with no closing sentinel is dropped: the input
// contract is a well-terminated report. Tag well-formedness is not
// checked here; that is the concern of whoever consumes the lines.
func Recordize(r io.Reader) ([]Record, error) {
	scanner := bufio.NewScanner(r)

	var records []Record
	var current Record

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == EndOfRecord {
			records = append(records, current)
			current = nil
			continue
		}

		current = append(current, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	return records, nil
}

// RecordizeFile reads and splits the info file at path.
func RecordizeFile(path string) ([]Record, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer file.Close()

	return Recordize(file)
}
