package core

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
)

// HashContent computes the lowercase hex SHA-256 of a string.
func HashContent(content string) string {
	h := sha256.Sum256([]byte(content))
	return fmt.Sprintf("%x", h)
}

// HashFile computes the SHA-256 of a file by streaming it in chunks, for
// looking up local samples against the database.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
