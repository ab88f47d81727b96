// internal/scan/scan.go
// Package scan finds candidate FASTQ files on disk.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"tidyss-core/fastq"
)

// Walk recursively lists files under root whose base name carries a
// recognized FASTQ extension. A leading "~" is expanded and root made
// absolute. Order is traversal order; traversal errors propagate
// unchanged.
func Walk(root string) ([]string, error) {
	root, err := normalize(root)
	if err != nil {
		return nil, err
	}
	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if fastq.MatchesFilename(d.Name()) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func normalize(root string) (string, error) {
	if root == "~" || strings.HasPrefix(root, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		root = filepath.Join(home, strings.TrimPrefix(root, "~"))
	}
	return filepath.Abs(root)
}

// Filter keeps paths whose full string matches expr starting at the first
// character. Prefix semantics: an unanchored expr only has to explain a
// leading portion of the path, and an expr that matches mid-path keeps
// nothing.
func Filter(paths []string, expr string) ([]string, error) {
	re, err := regexp.Compile("^(?:" + expr + ")")
	if err != nil {
		return nil, err
	}
	kept := make([]string, 0, len(paths))
	for _, p := range paths {
		if re.MatchString(p) {
			kept = append(kept, p)
		}
	}
	return kept, nil
}
