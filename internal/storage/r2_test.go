package storage

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeSlug(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"простое имя", "Jane Doe", "jane-doe"},
		{"спецсимволы", "O'Brien & Sons!", "obrien-sons"},
		{"лишние пробелы", "  John   Smith  ", "john-smith"},
		{"цифры сохраняются", "Boss 42", "boss-42"},
		{"только спецсимволы", "!!!", ""},
		{"кириллица отбрасывается", "Иван Petrov", "petrov"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeSlug(tc.input))
		})
	}
}

func TestGenerateFileName(t *testing.T) {
	now := time.Date(2025, 8, 27, 12, 5, 0, 0, time.UTC)
	assert.Equal(t, "2508271205-jane-doe.md", GenerateFileName("Jane Doe", "md", now))

	// Префикс всегда считается по UTC, зона входного времени не влияет.
	msk := time.Date(2025, 8, 27, 15, 5, 0, 0, time.FixedZone("MSK", 3*3600))
	assert.Equal(t, "2508271205-jane-doe.pdf", GenerateFileName("Jane Doe", "pdf", msk))

	assert.Regexp(t, regexp.MustCompile(`^\d{10}-jane-doe\.md$`), GenerateFileName("Jane Doe", "md", time.Now()))
}

func TestGenerateFileName_SamePrefixAcrossExtensions(t *testing.T) {
	// Оба артефакта одной жалобы именуются от одного момента и
	// различаются только расширением, включая границу минуты.
	now := time.Date(2025, 12, 31, 23, 59, 59, 999999999, time.UTC)
	md := GenerateFileName("Jane Doe", "md", now)
	pdf := GenerateFileName("Jane Doe", "pdf", now)

	assert.Equal(t, strings.TrimSuffix(md, ".md"), strings.TrimSuffix(pdf, ".pdf"))
}

func TestPublicURL(t *testing.T) {
	s := &R2Storage{publicHost: "static-dev.heyboss.wtf"}
	assert.Equal(t, "https://static-dev.heyboss.wtf/2508271200-jane-doe.md", s.PublicURL("2508271200-jane-doe.md"))

	// Хост со схемой не даёт двойного префикса.
	s = &R2Storage{publicHost: "https://static-dev.heyboss.wtf"}
	assert.Equal(t, "https://static-dev.heyboss.wtf/file.pdf", s.PublicURL("file.pdf"))
}
