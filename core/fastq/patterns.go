// core/fastq/patterns.go
// Package fastq classifies sequencing-read files against the naming
// conventions used by Illumina instruments and common pipelines.
package fastq

import "regexp"

// Pattern pairs a convention name with the expression recognizing it.
// Expressions are anchored at the start: a convention has to explain the
// name (or identifier) from its first character.
type Pattern struct {
	Name string
	re   *regexp.Regexp
}

// Match returns the named capture groups for s. Optional groups that did
// not participate come back as empty strings.
func (p Pattern) Match(s string) (map[string]string, bool) {
	sub := p.re.FindStringSubmatch(s)
	if sub == nil {
		return nil, false
	}
	groups := make(map[string]string, len(sub))
	for i, name := range p.re.SubexpNames() {
		if name == "" {
			continue
		}
		groups[name] = sub[i]
	}
	return groups, true
}

// fastqExtension gates entry into classification: a base name that does not
// end in a recognized FASTQ extension is rejected before any pattern runs.
var fastqExtension = regexp.MustCompile(`^(?P<name>.*)(?P<extension>\.fastq|\.fastq\.gz|\.fq|\.fq\.gz)$`)

// MatchesFilename reports whether base carries a recognized FASTQ extension.
func MatchesFilename(base string) bool { return fastqExtension.MatchString(base) }

// FilenamePatterns is the ordered filename registry, most specific first.
// Matching is first-match-wins; the generic entry is the terminal fallback
// and matches anything that passed the extension gate.
var FilenamePatterns = []Pattern{
	{
		Name: "IlluminaFastqFilename",
		re:   regexp.MustCompile(`^(?P<name>.+?)_?(?P<barcode>[NACTG]{3,30})?_?(?P<lane>L\d{3})?(_)?(?P<read>R\d)?_?(?P<set>\d{3})(?P<extension>\.fastq|\.fastq\.gz)$`),
	},
	{
		Name: "FastqFilename",
		re:   fastqExtension,
	},
}

// SeqidPatterns is the ordered sequence-identifier registry. The modern
// space-then-colon-delimited layout is tried before the legacy /read form.
// Only the modern layout carries a flow-cell id.
var SeqidPatterns = []Pattern{
	{
		Name: "IlluminaSeqidV2",
		re:   regexp.MustCompile(`^@(?P<instrument>[a-zA-Z0-9_-]*):(?P<run_number>\d*):(?P<flowcellID>[a-zA-Z0-9]*):(?P<lane>\d*):(?P<tile>\d*):(?P<x_pos>\d*):(?P<y_pos>\d*)\s(?P<read>\d*):(?P<is_filtered>[YN]):(?P<control_number>\d*):(?P<index_sequence>[NACTG]*)`),
	},
	{
		Name: "IlluminaSeqidV1",
		re:   regexp.MustCompile(`^@(?P<instrument>[a-zA-Z0-9_-]*):(?P<lane>\d*):(?P<tile>\d*):(?P<x_pos>\d*):(?P<y_pos>\d*)(?P<index_number>#\d|[NACTG]*)/(?P<read>\d)`),
	},
}
