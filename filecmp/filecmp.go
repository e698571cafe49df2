// Package filecmp implements the comparison harness used by build-time
// verification steps: byte equality, unified text diffs, and order-aware
// JSON tree comparison with readable mismatch reports.
package filecmp

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/google/go-cmp/cmp"
	"github.com/pmezard/go-difflib/difflib"

	"github.com/meridian-os/sdkforge/errors"
)

// Result is one file comparison outcome. Report is empty when Equal.
type Result struct {
	Equal  bool
	Report string
}

// Files compares two files byte-for-byte and, on mismatch, produces a
// unified diff report.
func Files(pathA, pathB string) (*Result, error) {
	a, err := os.ReadFile(pathA)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", pathA)
	}
	b, err := os.ReadFile(pathB)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", pathB)
	}

	if bytes.Equal(a, b) {
		return &Result{Equal: true}, nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(a)),
		B:        difflib.SplitLines(string(b)),
		FromFile: pathA,
		ToFile:   pathB,
		Context:  3,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute diff")
	}
	return &Result{Equal: false, Report: diff}, nil
}

// JSONFiles compares two files as JSON trees. Object key order and
// whitespace are irrelevant; array order is semantic and compared as-is.
// On mismatch the report is a go-cmp rendering of the first differences.
func JSONFiles(pathA, pathB string) (*Result, error) {
	a, err := loadTree(pathA)
	if err != nil {
		return nil, err
	}
	b, err := loadTree(pathB)
	if err != nil {
		return nil, err
	}

	if report := cmp.Diff(a, b); report != "" {
		return &Result{Equal: false, Report: report}, nil
	}
	return &Result{Equal: true}, nil
}

func loadTree(path string) (interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	var tree interface{}
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, errors.Wrapf(errors.ErrMalformedManifest, "%s: %v", path, err)
	}
	return tree, nil
}
