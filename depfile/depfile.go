// Package depfile writes Ninja-format dependency files.
//
// A depfile records the implicit inputs of one build output:
//
//	output: dep1 dep2 dep3
//
// Ninja re-runs the producing action when any listed input changes. Every
// sdkforge command that reads manifests can emit one via --depfile.
package depfile

import (
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/meridian-os/sdkforge/errors"
)

// escape protects the characters Ninja treats specially in depfile paths.
func escape(path string) string {
	r := strings.NewReplacer(
		" ", "\\ ",
		"#", "\\#",
		"$", "$$",
	)
	return r.Replace(path)
}

// Encode renders a depfile document. Dependencies are sorted and
// deduplicated so the file is stable across runs.
func Encode(output string, deps []string) []byte {
	sorted := make([]string, 0, len(deps))
	seen := make(map[string]struct{}, len(deps))
	for _, d := range deps {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	var buf bytes.Buffer
	buf.WriteString(escape(output))
	buf.WriteByte(':')
	for _, d := range sorted {
		buf.WriteByte(' ')
		buf.WriteString(escape(d))
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

// Write writes the depfile for output to path.
func Write(path, output string, deps []string) error {
	if err := os.WriteFile(path, Encode(output, deps), 0644); err != nil {
		return errors.Wrapf(err, "failed to write depfile %s", path)
	}
	return nil
}
