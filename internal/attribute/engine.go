// Package attribute decides, per coverage record, which executed
// functions keep their coverage and which have it erased because no
// unit test accounts for them.
package attribute

import (
	"fmt"
	"strings"

	"github.com/zjy-dev/covmangle/internal/callgraph"
	"github.com/zjy-dev/covmangle/internal/lcov"
	"github.com/zjy-dev/covmangle/internal/logger"
)

// Engine applies the attribution policy. It is a pure function of its
// inputs: the run-wide tested and static sets are computed once up
// front and passed in, never consulted as ambient state.
type Engine struct {
	tested     map[string]bool
	static     map[string]bool
	exceptions callgraph.Exceptions

	// Naming convention tying a private function to its public
	// counterpart, e.g. pcmk__foo / pcmk_foo.
	privatePrefix string
	publicPrefix  string
}

// NewEngine builds an engine from the discovered tested and static
// function sets.
func NewEngine(tested, static []string, exceptions callgraph.Exceptions, privatePrefix, publicPrefix string) *Engine {
	e := &Engine{
		tested:        make(map[string]bool, len(tested)),
		static:        make(map[string]bool, len(static)),
		exceptions:    exceptions,
		privatePrefix: privatePrefix,
		publicPrefix:  publicPrefix,
	}
	for _, fn := range tested {
		e.tested[fn] = true
	}
	for _, fn := range static {
		e.static[fn] = true
	}
	return e
}

// MangleRecord returns the record with coverage erased for every
// executed function that no unit test accounts for, directly or
// through a tested caller. A nil graph means no call-graph artifact
// matched the record's source file; the record is returned untouched,
// since with no graph there is no basis for attribution and erasing
// everything would be strictly more destructive than doing nothing.
func (e *Engine) MangleRecord(rec lcov.Record, g *callgraph.Graph) (lcov.Record, error) {
	if g == nil {
		return rec, nil
	}

	spans, err := rec.Functions()
	if err != nil {
		return nil, err
	}

	// Public functions with their own unit test vouch for the static
	// helpers they call.
	var anchors []string
	for _, span := range spans {
		if e.tested[span.Name] && !e.static[span.Name] {
			anchors = append(anchors, span.Name)
		}
	}

	for _, span := range spans {
		executed, err := rec.FunctionExecuted(span.Name)
		if err != nil {
			return nil, err
		}
		if !executed {
			continue
		}

		// A private function whose public counterpart has a test is
		// treated as tested itself: the private one does the hard work
		// and the public test exercises it. It also becomes an anchor
		// so any static function it calls keeps its coverage too.
		if e.privateWithTestedPublic(span.Name) {
			anchors = append(anchors, span.Name)
			continue
		}

		// Static functions never get their own unit test. Checking
		// callers within this record is enough, precisely because the
		// function is static.
		if e.static[span.Name] {
			reached, err := g.AnyAnchorReaches(anchors, span.Name, e.exceptions)
			if err != nil {
				return nil, fmt.Errorf("record %s: %w", rec.SourceFile(), err)
			}
			if !reached {
				logger.Debugf("erasing static %s: no tested caller reaches it", span.Name)
				rec, err = lcov.Erase(rec, span)
				if err != nil {
					return nil, err
				}
			}
			continue
		}

		// An executed public function with no unit test of its own.
		if !e.tested[span.Name] {
			logger.Debugf("erasing %s: executed but not unit-tested", span.Name)
			rec, err = lcov.Erase(rec, span)
			if err != nil {
				return nil, err
			}
		}
	}

	return rec, nil
}

// privateWithTestedPublic reports whether name follows the private
// naming convention and its public counterpart is in the tested set.
func (e *Engine) privateWithTestedPublic(name string) bool {
	if !strings.HasPrefix(name, e.privatePrefix) {
		return false
	}
	public := strings.Replace(name, e.privatePrefix, e.publicPrefix, 1)
	return e.tested[public]
}
