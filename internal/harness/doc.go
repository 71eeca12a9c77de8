// Package harness executes conformance scenarios against the sorting
// engine.
//
// A scenario is a YAML file naming an item list and how its comparisons
// are answered: either a literal decision script, or a ranking the harness
// answers from (candidate wins exactly when the candidate sits higher in
// the ranking). The harness drives a full in-process run, records every
// comparison as a trace event, and checks the outcome against the
// scenario's expectations.
//
// Traces double as golden files: RunWithGolden compares the canonical JSON
// trace against testdata/golden/{name}.golden, so any change to which pair
// is presented when - including the reverse-arrival candidate order - shows
// up as a diff instead of slipping through.
//
// The harness also enforces the engine's decision budget: a run consuming
// more comparisons than binary insertion allows aborts the scenario rather
// than looping.
package harness
