// core/fastq/count.go
package fastq

import "bufio"

// CountReads returns the number of FASTQ records in path by counting lines
// and dividing by four. Unlike Parse it scans the whole file; diagnostic
// use only.
func CountReads(path string) (int, error) {
	rc, err := openReader(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()

	sc := bufio.NewScanner(rc)
	// allow very long read lines (64 MiB)
	sc.Buffer(make([]byte, 64*1024), 64*1024*1024)
	lines := 0
	for sc.Scan() {
		lines++
	}
	if err := sc.Err(); err != nil {
		return 0, err
	}
	return lines / 4, nil
}
