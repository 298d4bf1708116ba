// Package callgraph loads GCC call-graph dump files (.ci) and answers
// reachability queries over them. Each dump covers calls inside a
// single translation unit only: cross-file and indirect calls never
// appear as edges.
package callgraph

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Target name GCC emits for calls through a function pointer. These
// edges carry no callee identity and are dropped.
const indirectCall = "__indirect_call"

// Matches the two endpoints of an edge declaration, e.g.
// edge: { sourcename: "unit.c:caller" targetname: "callee" }
var edgeRegexp = regexp.MustCompile(`sourcename: "([^"]+)" targetname: "([^"]+)"`)

// Graph is a directed graph of "function calls function" edges within
// one translation unit. Nodes are plain function names with any
// translation-unit qualifier stripped.
type Graph struct {
	succs map[string]map[string]struct{}
}

// Build parses the dump file at path into a Graph. Duplicate edges
// collapse. A function with no recorded call relationship has no node;
// absence means "unknown", not "does not exist".
func Build(path string) (*Graph, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open call graph: %w", err)
	}
	defer file.Close()

	g := &Graph{succs: make(map[string]map[string]struct{})}

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "edge:") {
			continue
		}

		match := edgeRegexp.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		if match[2] == indirectCall {
			continue
		}

		g.addEdge(stripUnit(match[1]), stripUnit(match[2]))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read call graph %s: %w", path, err)
	}

	return g, nil
}

// stripUnit removes a leading "<unit>:" qualifier from a node name.
func stripUnit(name string) string {
	parts := strings.Split(name, ":")
	if len(parts) > 1 {
		return parts[1]
	}
	return name
}

func (g *Graph) addEdge(src, dst string) {
	if g.succs[src] == nil {
		g.succs[src] = make(map[string]struct{})
	}
	g.succs[src][dst] = struct{}{}

	// An edge introduces its target as a node even if nothing is
	// recorded as called from it.
	if g.succs[dst] == nil {
		g.succs[dst] = make(map[string]struct{})
	}
}

// HasNode reports whether the graph recorded any call relationship
// involving name.
func (g *Graph) HasNode(name string) bool {
	_, ok := g.succs[name]
	return ok
}

// NumNodes returns the number of functions in the graph.
func (g *Graph) NumNodes() int {
	return len(g.succs)
}
