package callgraph

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
)

// FindArtifacts returns the call-graph dump files under root, as paths
// relative to root. Dumps for unit test drivers, for the specially
// built test versions of the libraries, and anything under .libs/ are
// skipped; the regular dumps cover the same call chains.
func FindArtifacts(root string) ([]string, error) {
	var artifacts []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".libs" {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !strings.HasSuffix(name, ".ci") {
			return nil
		}
		if strings.HasSuffix(name, "_test.ci") || strings.Contains(name, "_test_la-") {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		artifacts = append(artifacts, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s for call graphs: %w", root, err)
	}

	return artifacts, nil
}

// MatchArtifact returns the artifact describing sourceFile, or "" when
// none matches. A source file like "lib/services/systemd.c" has a dump
// named like "lib/services/libcrmservice_la-systemd.ci": the directory
// must match exactly, and the dump name ends with the source base name
// because the compiled object's name is prepended to it. The same base
// name can exist in several directories, hence the directory check.
func MatchArtifact(artifacts []string, sourceFile string) string {
	dir, file := filepath.Split(sourceFile)
	base := strings.TrimSuffix(file, filepath.Ext(file))

	for _, artifact := range artifacts {
		artifactDir, artifactFile := filepath.Split(artifact)
		if artifactDir != dir {
			continue
		}
		if strings.HasSuffix(artifactFile, "-"+base+".ci") {
			return artifact
		}
	}

	return ""
}
