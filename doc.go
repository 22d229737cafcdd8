// Package pathtrace traces least-cost routes across scalar fields such as
// grayscale images, on top of a generic best-first (A*) search engine.
//
// 🚀 What is pathtrace?
//
//	A small, dependency-light toolkit that brings together:
//		• astar/    : generic A* over any comparable state with pluggable
//		              Boundary, Heuristic, StepCost, ChoiceGenerator and History
//		• field/    : dense width×height float64 grids, loaded from rows or images
//		• gridpath/ : the 8-connected pixel adapter (axis 10, diagonal 14,
//		              +100 into obstacles, 10×Euclidean heuristic), batch and
//		              waypoint tracing
//		• cmd/pathtrace : CLI (trace, batch, serve) with YAML config, PNG
//		              overlays and Prometheus metrics
//
// ✨ Guarantees
//
//   - Deterministic – equal-score candidates leave the frontier in insertion order
//   - Explicit failure – an exhausted frontier is ErrNoPath, never a nil route
//   - Isolated searches – every search owns its frontier and history, so
//     independent searches run in parallel over one read-only field
//   - Extensible – hooks (OnExpand, OnEnqueue, OnDiscard) and a Stepper for
//     step-by-step visualisation
//
// Quick ASCII example ('#' cells are obstacles, '*' the traced route):
//
//	. . * . .
//	. * # * .        S→G climbs over the blob's tip: 4 diagonals = 56,
//	S # # # G        cheaper than any step into '#' (+100).
//	. . # . .
//
//	go install github.com/katalvlaran/pathtrace/cmd/pathtrace@latest
package pathtrace
