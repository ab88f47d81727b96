// core/samplesheet/build.go
package samplesheet

import "tidyss-core/fastq"

// Build folds classified records into the samples mapping:
// sample name → { name, readgroups: read-group key → ordered read slots }.
//
// Records are applied in input order. A slot sequence grows with explicit
// null markers up to the highest read index seen, and slot read-1 holds
// that record's path. A duplicate (sample, readgroup, read) triple keeps
// the last path seen; no collision error is raised.
func Build(records []fastq.Record) *Map {
	samples := NewMap()
	for _, rec := range records {
		v, ok := samples.Get(rec.Name)
		if !ok {
			v = NewMap()
			samples.Set(rec.Name, v)
		}
		sample := v.(*Map)
		if !sample.Has("name") {
			sample.Set("name", rec.Name)
		}
		gv, ok := sample.Get("readgroups")
		if !ok {
			gv = NewMap()
			sample.Set("readgroups", gv)
		}
		groups := gv.(*Map)
		rv, ok := groups.Get(rec.ReadGroup)
		if !ok {
			rv = []any{nil}
		}
		reads := rv.([]any)
		for len(reads) < rec.Read {
			reads = append(reads, nil)
		}
		reads[rec.Read-1] = rec.Path
		groups.Set(rec.ReadGroup, reads)
	}
	return samples
}

// New wraps a samples mapping in a fresh top-level document.
func New(samples *Map) *Map {
	doc := NewMap()
	doc.Set("samples", samples)
	return doc
}

// Merge inserts samples into a previously loaded document only when that
// document has no samples key at all. When a samples key already exists it
// is left untouched and the freshly built samples are dropped. Surprising,
// but pinned: an existing sheet is never overwritten by an append run.
func Merge(doc *Map, samples *Map) {
	if !doc.Has("samples") {
		doc.Set("samples", samples)
	}
}
