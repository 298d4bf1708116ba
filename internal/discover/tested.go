// Package discover computes the run-wide input sets for coverage
// attribution: which functions have a dedicated unit test, and which
// functions are declared static.
package discover

import (
	"fmt"
	"io/fs"
	"slices"
	"strings"
)

const testDriverSuffix = "_test.c"

// TestedFunctions returns the sorted, de-duplicated names of functions
// that have a unit test. Test drivers are named after the function
// they verify (foo_test.c tests foo). extra covers functions whose
// test lives in a file that does not match their name, which commonly
// happens with case-sensitive vs. case-insensitive variants of string
// functions.
func TestedFunctions(root fs.FS, extra []string) ([]string, error) {
	var fns []string

	err := fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), testDriverSuffix) {
			return nil
		}
		fns = append(fns, strings.TrimSuffix(d.Name(), testDriverSuffix))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan for test drivers: %w", err)
	}

	fns = append(fns, extra...)
	slices.Sort(fns)
	return slices.Compact(fns), nil
}
