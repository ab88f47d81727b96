// core/fastq/record.go
package fastq

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrUnrecognizedFilename is returned by Parse when the base name does not
// carry any recognized FASTQ extension.
var ErrUnrecognizedFilename = errors.New("does not match any fastq filename pattern")

// Record is the classified metadata for one FASTQ file. Instances are
// immutable once Parse returns them.
type Record struct {
	Path            string `json:"path" yaml:"path"`
	Filename        string `json:"filename" yaml:"filename"`
	Name            string `json:"name" yaml:"name"`
	Lane            string `json:"lane" yaml:"lane"`
	Read            int    `json:"read" yaml:"read"`
	FlowcellID      string `json:"fcid" yaml:"fcid"`
	Instrument      string `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	RunNumber       string `json:"run_number,omitempty" yaml:"run_number,omitempty"`
	Seqid           string `json:"seqid" yaml:"seqid"`
	ReadGroup       string `json:"readgroup" yaml:"readgroup"`
	FilenamePattern string `json:"filename_pattern" yaml:"filename_pattern"`
	SeqidPattern    string `json:"seqid_pattern" yaml:"seqid_pattern"`
	Gzipped         bool   `json:"gzipped" yaml:"gzipped"`
}

// Parse classifies one file path into a Record. The base name is matched
// against the filename registry and the file's first line against the
// sequence-identifier registry; at most one line of the file is read.
//
// The extension gate runs before any I/O, so an unrecognized name fails
// even when the file does not exist. Filesystem errors from opening or
// reading the first line propagate unchanged.
func Parse(path string) (Record, error) {
	rec := Record{
		Path:       path,
		Filename:   filepath.Base(path),
		Lane:       "1",
		Read:       1,
		FlowcellID: "Unknown",
		Gzipped:    strings.HasSuffix(path, ".gz"),
	}
	if !MatchesFilename(rec.Filename) {
		return Record{}, fmt.Errorf("%s: %w", rec.Filename, ErrUnrecognizedFilename)
	}

	for _, p := range FilenamePatterns {
		groups, ok := p.Match(rec.Filename)
		if !ok {
			continue
		}
		rec.FilenamePattern = p.Name
		rec.Name = groups["name"]
		if rec.Name == "" {
			return Record{}, fmt.Errorf("%s: empty sample name: %w", rec.Filename, ErrUnrecognizedFilename)
		}
		if lane := groups["lane"]; lane != "" {
			rec.Lane = normalizeLane(lane)
		}
		if read := strings.TrimPrefix(groups["read"], "R"); read != "" {
			n, err := strconv.Atoi(read)
			if err != nil {
				return Record{}, fmt.Errorf("%s: bad read number %q: %w", rec.Filename, groups["read"], err)
			}
			if n < 1 {
				return Record{}, fmt.Errorf("%s: bad read number %q: read index must be >= 1", rec.Filename, groups["read"])
			}
			rec.Read = n
		}
		break
	}

	seqid, err := readFirstLine(path)
	if err != nil {
		return Record{}, err
	}
	rec.Seqid = seqid

	for _, p := range SeqidPatterns {
		groups, ok := p.Match(seqid)
		if !ok {
			continue
		}
		rec.SeqidPattern = p.Name
		rec.Instrument = groups["instrument"]
		rec.RunNumber = groups["run_number"]
		if fcid := groups["flowcellID"]; fcid != "" {
			rec.FlowcellID = fcid
		}
		if lane := groups["lane"]; lane != "" {
			rec.Lane = lane
		}
		break
	}

	rec.ReadGroup = rec.FlowcellID + rec.Lane
	return rec, nil
}

// normalizeLane maps a filename lane field like "L001" onto the numeric form
// sequence identifiers use, so both sources of the same physical lane
// produce the same read-group key.
func normalizeLane(lane string) string {
	digits := strings.TrimPrefix(lane, "L")
	if n, err := strconv.Atoi(digits); err == nil {
		return strconv.Itoa(n)
	}
	return lane
}

// readFirstLine reads the first sequence identifier from path. Only one
// line of I/O, the handle is released before returning.
func readFirstLine(path string) (string, error) {
	rc, err := openReader(path)
	if err != nil {
		return "", err
	}
	defer rc.Close()

	line, err := bufio.NewReader(rc).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
