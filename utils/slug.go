package utils

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Slugify mengubah judul jadi slug URL-safe: lowercase, non-alfanumerik
// jadi tanda minus.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true // supaya tidak mulai dengan '-'
	for _, r := range strings.ToLower(strings.TrimSpace(title)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// UniqueSlug menambahkan suffix pendek acak supaya slug booking unik.
func UniqueSlug(title string) string {
	base := Slugify(title)
	suffix := strings.Split(uuid.NewString(), "-")[0]
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}
