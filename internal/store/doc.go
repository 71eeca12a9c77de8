// Package store provides durable storage for ranking runs.
//
// A run is persisted as three append-only facts: the run record itself, the
// item list in arrival order, and the decision log. The engine state is
// deliberately NOT serialized - it is a pure fold over (items, decisions),
// so the session layer reconstructs it by replay. This keeps the store
// schema independent of the engine's in-memory representation and makes
// recovery structural: the same log always rebuilds the same state.
//
// Writes are idempotent via ON CONFLICT DO NOTHING, so re-running a crashed
// command never duplicates a run, an item, or a decision. Reads order by
// explicit position/seq columns, never by insertion accident.
//
// SQLite is used with WAL mode so status queries can run while a decision
// is being appended.
package store
