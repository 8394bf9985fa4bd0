package services

import (
	"math/rand"
	"regexp"
	"strings"
)

const slugSuffixChars = "abcdefghijklmnopqrstuvwxyz0123456789"

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9\s]`)
	whitespace   = regexp.MustCompile(`\s+`)
	hyphenRuns   = regexp.MustCompile(`-+`)
)

// generateSlug derives a URL slug from the title: lowercase, newlines to
// spaces, everything outside [a-z0-9\s] stripped, whitespace runs collapsed
// to single hyphens, plus a random 6-character suffix. Uniqueness is
// probabilistic; callers retry on a duplicate-key conflict.
func generateSlug(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, "\n", " ")
	slug = nonSlugChars.ReplaceAllString(slug, " ")
	slug = strings.TrimSpace(slug)
	slug = whitespace.ReplaceAllString(slug, "-")
	slug = hyphenRuns.ReplaceAllString(slug, "-")
	return slug + "-" + randomString(6)
}

func randomString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = slugSuffixChars[rand.Intn(len(slugSuffixChars))]
	}
	return string(b)
}
