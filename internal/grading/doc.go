// Package grading computes module and semester averages from a list of
// module records.
//
// Every operation is a pure function of a List value: callers pass the
// current list in and keep the list that comes back. Input is never
// rejected. Numeric text is sanitized and clamped into range, and any
// average that lacks an input is reported as unset rather than zero.
package grading
