package fastq

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

// writeFastq creates a 4-line FASTQ record file; gzip-compressed when the
// name ends in .gz.
func writeFastq(t *testing.T, dir, name, seqid string) string {
	t.Helper()
	data := seqid + "\nACGTACGT\n+\nFFFFFFFF\n"
	path := filepath.Join(dir, name)
	fh, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	if strings.HasSuffix(name, ".gz") {
		gw := gzip.NewWriter(fh)
		if _, err := gw.Write([]byte(data)); err != nil {
			t.Fatalf("write gz: %v", err)
		}
		if err := gw.Close(); err != nil {
			t.Fatalf("close gz: %v", err)
		}
	} else {
		if _, err := fh.WriteString(data); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := fh.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestParsePlainFilenameDefaults(t *testing.T) {
	path := writeFastq(t, t.TempDir(), "reads.fastq", "no identifier here")
	rec, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.Name != "reads" {
		t.Errorf("name = %q, want reads", rec.Name)
	}
	if rec.Lane != "1" || rec.Read != 1 {
		t.Errorf("lane/read = %q/%d, want 1/1", rec.Lane, rec.Read)
	}
	if rec.FlowcellID != "Unknown" || rec.ReadGroup != "Unknown1" {
		t.Errorf("fcid/readgroup = %q/%q, want Unknown/Unknown1", rec.FlowcellID, rec.ReadGroup)
	}
	if rec.FilenamePattern != "FastqFilename" || rec.SeqidPattern != "" {
		t.Errorf("patterns = %q/%q", rec.FilenamePattern, rec.SeqidPattern)
	}
	if rec.Gzipped {
		t.Errorf("gzipped = true for plain file")
	}
}

func TestParseIlluminaFilenameGzip(t *testing.T) {
	path := writeFastq(t, t.TempDir(), "SampleA_L001_R2_001.fastq.gz", "not an illumina header")
	rec, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.FilenamePattern != "IlluminaFastqFilename" {
		t.Fatalf("filename pattern = %q", rec.FilenamePattern)
	}
	if rec.Name != "SampleA" {
		t.Errorf("name = %q, want SampleA", rec.Name)
	}
	if rec.Lane != "1" {
		t.Errorf("lane = %q, want 1 (normalized from L001)", rec.Lane)
	}
	if rec.Read != 2 {
		t.Errorf("read = %d, want 2", rec.Read)
	}
	if rec.ReadGroup != "Unknown1" {
		t.Errorf("readgroup = %q, want Unknown1", rec.ReadGroup)
	}
	if !rec.Gzipped {
		t.Errorf("gzipped = false for .gz file")
	}
}

func TestParseSeqidV2Overrides(t *testing.T) {
	seqid := "@A00226:438:HKW2GDSXX:3:1101:8866:1000 1:N:0:CCGCGGTT"
	path := writeFastq(t, t.TempDir(), "SampleB_L002_R1_001.fastq", seqid)
	rec, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.SeqidPattern != "IlluminaSeqidV2" {
		t.Fatalf("seqid pattern = %q", rec.SeqidPattern)
	}
	if rec.FlowcellID != "HKW2GDSXX" {
		t.Errorf("fcid = %q", rec.FlowcellID)
	}
	if rec.Lane != "3" {
		t.Errorf("lane = %q, want 3 (seqid lane overrides filename lane)", rec.Lane)
	}
	if rec.ReadGroup != "HKW2GDSXX3" {
		t.Errorf("readgroup = %q, want HKW2GDSXX3", rec.ReadGroup)
	}
	if rec.Instrument != "A00226" || rec.RunNumber != "438" {
		t.Errorf("instrument/run = %q/%q", rec.Instrument, rec.RunNumber)
	}
	if rec.Seqid != seqid {
		t.Errorf("seqid = %q", rec.Seqid)
	}
}

func TestParseSeqidV1HasNoFlowcell(t *testing.T) {
	path := writeFastq(t, t.TempDir(), "legacy.fq", "@HWUSI-EAS100R:6:73:941:1973#0/1")
	rec, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.SeqidPattern != "IlluminaSeqidV1" {
		t.Fatalf("seqid pattern = %q", rec.SeqidPattern)
	}
	if rec.FlowcellID != "Unknown" {
		t.Errorf("fcid = %q, want Unknown", rec.FlowcellID)
	}
	if rec.Lane != "6" {
		t.Errorf("lane = %q, want 6", rec.Lane)
	}
	if rec.ReadGroup != "Unknown6" {
		t.Errorf("readgroup = %q, want Unknown6", rec.ReadGroup)
	}
}

func TestParseRejectsZeroReadIndex(t *testing.T) {
	// R0 matches the Illumina layout structurally but read indices are
	// 1-based; accepting it would leave downstream slot math negative.
	_, err := Parse(filepath.Join(t.TempDir(), "Sample_R0_001.fastq"))
	if err == nil {
		t.Fatalf("expected an error for read token R0")
	}
	if !strings.Contains(err.Error(), "read index must be >= 1") {
		t.Errorf("err = %v, want read index validation failure", err)
	}
}

func TestParseRejectsEmptySampleName(t *testing.T) {
	// A bare extension like ".fastq" passes the gate but yields no name.
	_, err := Parse(filepath.Join(t.TempDir(), ".fastq"))
	if !errors.Is(err, ErrUnrecognizedFilename) {
		t.Fatalf("err = %v, want ErrUnrecognizedFilename", err)
	}
}

func TestParseUnrecognizedExtension(t *testing.T) {
	// The extension gate runs before any I/O; the file need not exist.
	_, err := Parse(filepath.Join(t.TempDir(), "notes.txt"))
	if !errors.Is(err, ErrUnrecognizedFilename) {
		t.Fatalf("err = %v, want ErrUnrecognizedFilename", err)
	}
}

func TestParseMissingFilePropagates(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "ghost.fastq"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestParseIdempotent(t *testing.T) {
	path := writeFastq(t, t.TempDir(), "SampleA_L001_R1_001.fastq.gz", "@HWUSI-EAS100R:6:73:941:1973#0/1")
	first, err := Parse(path)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := Parse(path)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("records differ:\n%+v\n%+v", first, second)
	}
}

func TestCountReads(t *testing.T) {
	dir := t.TempDir()
	two := "@r1\nACGT\n+\nFFFF\n@r2\nACGT\n+\nFFFF\n"

	plain := filepath.Join(dir, "two.fastq")
	if err := os.WriteFile(plain, []byte(two), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err := CountReads(plain)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("reads = %d, want 2", n)
	}

	// trailing partial record truncates toward zero
	ragged := filepath.Join(dir, "ragged.fastq")
	if err := os.WriteFile(ragged, []byte(two+"@r3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	n, err = CountReads(ragged)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("reads = %d, want 2", n)
	}
}

func TestCountReadsGzip(t *testing.T) {
	path := writeFastq(t, t.TempDir(), "one.fastq.gz", "@r1")
	n, err := CountReads(path)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("reads = %d, want 1", n)
	}
}
