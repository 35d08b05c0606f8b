// Package starfile reads the STAR tabular-record format used by RELION for
// pipeline and model metadata.
//
// A file is a sequence of data blocks (`data_<name>`). Each block holds either
// key/value pairs (`_label value`) or a single loop table (`loop_` followed by
// column labels and whitespace-separated rows). Labels are stored without the
// leading underscore, so `_rlnPipeLineProcessName` becomes
// `rlnPipeLineProcessName`; lookups accept either spelling.
package starfile
