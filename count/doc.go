// Package count implements concurrent literal pattern counting over text files.
//
// The package is organized around a fan-out/fan-in execution model:
//
// Matching:
//   - CountMatches counts every (possibly overlapping) start offset at which
//     a pattern occurs in a line, exact and case-sensitive
//
// Scanning:
//   - ScanReader and ScanFile read input line by line, trim each line, skip
//     empty lines and sum the per-line match counts
//
// Coordination:
//   - A Coordinator starts one worker goroutine per file, waits on a single
//     join barrier and merges every partial count into one total
//   - Workers hand their Result to a collector over a channel, so the total
//     has exactly one owner and needs no lock
//   - A failing file is reported in the Summary and never aborts the others
//
// Discovery:
//   - Discover lists the input files of a directory by name suffix
//
// RunAll is the convenience entry point used by the command-line interface.
package count
