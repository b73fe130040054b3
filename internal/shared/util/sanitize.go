package util

import (
	"errors"
	"strings"
)

const maxFileNameLen = 128

// SanitizeFileName removes path separators and rejects traversal patterns.
// Long names are cut to keep storage keys bounded.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := strings.TrimSpace(name)
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return "", errors.New("invalid file name")
	}
	if runes := []rune(s); len(runes) > maxFileNameLen {
		s = string(runes[len(runes)-maxFileNameLen:])
	}
	return s, nil
}
