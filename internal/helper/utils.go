package helper

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// GenerateUUID creates a random unique UUID string
func GenerateUUID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate UUID: %v", err)
	}
	return id.String(), nil
}

// CreateFolder creates the folder and any missing parents
func CreateFolder(path string) error {
	return os.MkdirAll(path, 0o755)
}

// Capitalize uppercases the first rune and lowercases the rest
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
