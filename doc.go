// Package main provides the dnacount command-line interface.
//
// dnacount counts how many times a literal sequence pattern occurs across the
// text files of a directory. Every file is scanned by its own goroutine and
// the per-file counts are merged into one total after all workers finish.
//
//	dnacount dna_inputs CGTAA
//
// Utility subcommands:
//   - seed: generate random sequence files
//   - history: list recorded runs
package main
