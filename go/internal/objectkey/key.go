// Package objectkey builds storage keys for teams and players from display names.
package objectkey

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxLength is the longest key a folder entry may have, in runes
const MaxLength = 255

// Valid turns a display name into a key usable inside a folder.
// Slashes and angle brackets become hyphens, as do characters outside the
// basic multilingual plane. Control characters are dropped.
func Valid(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '/' || r == '<' || r == '>':
			b.WriteRune('-')
		case r > 0xFFFF:
			b.WriteRune('-')
		case unicode.IsControl(r):
			continue
		default:
			b.WriteRune(r)
		}
	}

	key := strings.TrimSpace(b.String())
	key = strings.TrimLeft(key, ".")
	if utf8.RuneCountInString(key) > MaxLength {
		key = string([]rune(key)[:MaxLength])
	}
	return key
}

// Unique returns base, or base with the first free "_N" suffix, according to taken.
func Unique(ctx context.Context, base string, taken func(ctx context.Context, key string) (bool, error)) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		exists, err := taken(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check key %q: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s_%d", base, i)
	}
}
