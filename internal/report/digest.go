package report

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrExpectedFile is returned when a digest is requested for a directory.
var ErrExpectedFile = errors.New("expected file, got directory")

// FileDigest returns the hex SHA-256 of the file at path.
func FileDigest(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", ErrExpectedFile
	}
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()
	return digest(file)
}

func digest(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// AddDigests fills in SHA256 for every file that was counted successfully.
// Files that can no longer be read keep an empty digest.
func (r *Report) AddDigests() {
	for i := range r.Files {
		if r.Files[i].Error != "" {
			continue
		}
		if sum, err := FileDigest(r.Files[i].Path); err == nil {
			r.Files[i].SHA256 = sum
		}
	}
}
