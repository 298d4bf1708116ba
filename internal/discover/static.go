package discover

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zjy-dev/covmangle/internal/exec"
)

var nonIdentifier = regexp.MustCompile(`\W`)

// StaticFunctions returns the names of functions declared static under
// the given directories. The scan shells out to grep and keeps the
// line after each match as well, since C sources commonly put "static"
// and the return type on a line of their own with the function name on
// the next one. grep exiting 1 means a directory had no matches and
// yields no names, not an error.
func StaticFunctions(x exec.Executor, dirs []string) ([]string, error) {
	var fns []string

	for _, dir := range dirs {
		result, err := x.Run("grep", "-rh", "-A", "1",
			"--include=*.c", "--include=*.h", "^static", dir)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s for static functions: %w", dir, err)
		}
		if result.ExitCode != 0 {
			continue
		}

		fns = append(fns, functionNames(result.Stdout)...)
	}

	return fns, nil
}

// functionNames extracts candidate function names from grep output.
func functionNames(output string) []string {
	var fns []string

	for _, line := range strings.Split(output, "\n") {
		// No opening paren means no argument list, so not a function
		// declaration; an equals sign means a variable initializer.
		if !strings.Contains(line, "(") || strings.Contains(line, "=") {
			continue
		}

		// Drop the argument list, then take the last space-separated
		// token for the cases where the type shares the line.
		line = line[:strings.Index(line, "(")]
		if i := strings.LastIndex(line, " "); i >= 0 {
			line = line[i+1:]
		}

		line = nonIdentifier.ReplaceAllString(line, "")
		if line == "" {
			continue
		}

		fns = append(fns, line)
	}

	return fns
}
