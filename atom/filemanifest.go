package atom

import (
	"bufio"
	"bytes"
	"os"
	"sort"
	"strings"

	"github.com/meridian-os/sdkforge/errors"
)

// ReadFileManifest reads a line-oriented packaging manifest with one
// "destination=source" mapping per line. Blank lines and '#' comments are
// ignored.
func ReadFileManifest(path string) ([]FileMapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open file manifest %s", path)
	}
	defer f.Close()

	var mappings []FileMapping
	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		dest, src, ok := strings.Cut(line, "=")
		if !ok || dest == "" || src == "" {
			return nil, errors.Wrapf(errors.ErrMalformedManifest,
				"%s:%d: expected destination=source, got %q", path, lineno, line)
		}
		mappings = append(mappings, FileMapping{Destination: dest, Source: src})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read file manifest %s", path)
	}
	return mappings, nil
}

// WriteFileManifest writes mappings as "destination=source" lines, sorted by
// destination for stable diffs.
func WriteFileManifest(path string, mappings []FileMapping) error {
	sorted := make([]FileMapping, len(mappings))
	copy(sorted, mappings)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Destination < sorted[j].Destination
	})

	var buf bytes.Buffer
	for _, m := range sorted {
		buf.WriteString(m.Destination)
		buf.WriteByte('=')
		buf.WriteString(m.Source)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "failed to write file manifest %s", path)
	}
	return nil
}
