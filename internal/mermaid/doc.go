// Package mermaid renders a job subgraph as Mermaid flowchart markup.
//
// Output is deterministic: jobs and edges are sorted before emission, so two
// calls over equal sets produce byte-identical text.
package mermaid
