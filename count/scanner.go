package count

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// MaxLineSize is the longest line ScanReader accepts.
// Sequence files often keep a whole genome region on one line, so the
// bufio default of 64 KiB is far too small.
const MaxLineSize = 64 << 20

// ScanReader reads r line by line and returns the number of pattern matches
// over all non-empty lines. Each line is trimmed of surrounding whitespace
// before matching. The context is checked between lines.
func ScanReader(ctx context.Context, r io.Reader, pattern string) (int64, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	var total int64
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		total += CountMatches(line, pattern)
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return total, nil
}

// ScanFile opens the file at path and counts pattern matches in it.
// The file is closed on every return path. On error no partial count is
// returned.
func ScanFile(ctx context.Context, path, pattern string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", path, err)
	}
	defer f.Close()

	n, err := ScanReader(ctx, f, pattern)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", path, err)
	}
	return n, nil
}
