// Package pipeline models a RELION processing pipeline: the jobs listed in
// default_pipeline.star and the job-to-job edges derived from the data nodes
// they produce and consume.
//
// Parse builds a Pipeline from the three pipeline tables. Enrich optionally
// decorates the jobs with information found in their directories (the last
// command from note.txt and per-class model statistics). Enrichment is
// best-effort: missing or unreadable auxiliary files never fail it.
package pipeline
