package count

import "errors"

// Sentinel errors for package count.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Input errors, detected before any worker starts
	ErrNotDirectory = errors.New("path is not a directory")
	ErrNoInputFiles = errors.New("no input files found")

	// Run errors, not attributable to a single file
	ErrInterrupted = errors.New("run interrupted before all workers finished")

	// Worker errors
	ErrWorkerTimeout = errors.New("worker timed out")
)
