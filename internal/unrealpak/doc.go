// Package unrealpak drives the external UnrealPak tool. The tool owns all
// knowledge of the pak binary container format; this package only launches
// it (optionally through a wine wrapper), consumes its textual output one
// line at a time, and interprets the handful of line shapes it emits in
// listing and extraction mode.
//
// Invocations are strictly sequential and blocking: one subprocess runs at
// a time, and the caller suspends on each line read until output arrives or
// the stream closes. Nothing is retried; every protocol surprise is
// terminal for the run.
package unrealpak
