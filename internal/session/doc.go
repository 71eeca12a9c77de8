// Package session ties the sorting engine to durable storage.
//
// A Session is the single-writer owner of one ranking run: it holds the
// in-memory engine, stamps every decision with a monotonic logical clock,
// and appends each decision to the store before reporting success. The
// engine state itself is never persisted; a run is resumed by replaying the
// decision log through a fresh engine.
//
// ARCHITECTURE:
//
// Structural recovery:
// The store records only facts (items in arrival order, decisions in seq
// order). Because the engine is a pure fold over those facts, the same log
// always reconstructs the same state - resume after a crash, resume on
// another machine, and the determinism check in `ranked replay` all use the
// identical code path. There is no "recovery mode".
//
// Single-writer discipline:
// A Session must be driven from one logical thread of control. The engine's
// invariants are not safe under interleaved mutation, so hosting systems
// that need concurrent access must serialize calls per run.
//
// Logical clock:
// Decisions are stamped with a seq from Clock.Next(), never wall time.
// Resume restarts the clock past the highest logged seq so appended
// decisions extend the log without colliding.
package session
