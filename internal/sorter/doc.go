// Package sorter implements the ranked incremental sorting engine.
//
// The engine performs a binary-insertion sort in which every comparison is
// answered by an external decision-maker instead of a comparator function.
// It is a plain state machine: each Choose call consumes exactly one
// decision, narrows the current insertion window, and returns immediately.
// Suspension between decisions is purely logical - the engine simply holds
// its state until the next call.
//
// ARCHITECTURE:
//
// Single-Writer State Machine:
// A Sorter owns exactly one state value and must be mutated from one logical
// thread of control. There is no internal queue, goroutine, or callback; the
// driving layer reads the current candidate/pivot pair, obtains a decision,
// and calls Choose. This keeps the engine deterministic and trivially
// replayable: the same item sequence and the same decision sequence always
// reconstruct the same state.
//
// Lifecycle:
//
//	Empty --Start--> {Empty, Done, Comparing}
//	Comparing --Choose--> Comparing (window still open)
//	Comparing --Choose--> Done      (window collapsed, nothing pending)
//
// Empty and Done are terminal until the next Start. Start always succeeds
// and discards any run in progress.
//
// CRITICAL PROPERTIES:
//
// Reverse-order candidate processing:
// After the first input item seeds the placed sequence, the remaining items
// form a LIFO stack whose top is the LAST input element. Candidates are
// therefore placed in reverse arrival order. This is intentional and
// observable; drivers that display "what is being compared" must account
// for it.
//
// Decision-count bound:
// Inserting the k-th item (k >= 2) into the placed sequence costs at most
// ceil(log2(k)) decisions, so a full run over n items costs at most
// sum over k=2..n of ceil(log2(k)). A linear-scan insertion would break
// this bound; the binary window is the whole point.
//
// Conservation:
// At any instant the items held in placed plus pending are exactly the
// multiset passed to the most recent Start. Nothing is duplicated or
// dropped, including on the abort path: Finish during an active run
// concatenates the settled prefix with the pending remainder.
//
// The package performs no logging and no I/O. Persistence and presentation
// belong to the session and cli packages.
package sorter
