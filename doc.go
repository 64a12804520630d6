// Package isinglat is a small toolkit for Ising-model Monte Carlo on
// decorated periodic lattices: cubic, kagome, centered-rectangular and a
// layered p6mm-like stack.
//
// 🚀 What is isinglat?
//
//	A concurrent, allocation-conscious library that brings together:
//		• Geometries: unit cells with sublattices and named coupling shells
//		• Neighbor tables: periodic wrap computed once, CSR layout
//		• Update sweeps: parallel Metropolis-style sweeps over sublattices
//		• Cluster moves: Wolff flood fill with a per-push hook
//		• Drivers: equilibrate/measure loops and temperature scans
//		• Persistence: YAML run files and a SQLite result store
//
// Under the hood, everything is organized under these subpackages:
//
//	lattice/    — geometries, spin storage, neighbor tables
//	measure/    — Average, per-sublattice magnetization, bond energy, domains
//	montecarlo/ — Sweep, Cluster, Iterate, Loop, Scan
//	config/     — YAML run configuration
//	store/      — SQLite runs and samples
//	cmd/isinglat — the command line front end
//
// Quick ASCII example (kagome, one unit cell):
//
//	    C
//	    │ ╲
//	    A───B
//
//	three sublattices, each site bonded to four nearest neighbors.
//
//	go install github.com/katalvlaran/isinglat/cmd/isinglat@latest
package isinglat
