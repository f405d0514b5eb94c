package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// assertVisibilityGate проверяет, что условие содержит оба флага гейта.
func assertVisibilityGate(t *testing.T, clause string) {
	t.Helper()
	assert.Contains(t, clause, "published = TRUE")
	assert.Contains(t, clause, "verified = TRUE")
}

func TestBuildDirectoryWhere_GateAlwaysPresent(t *testing.T) {
	cases := []struct {
		name   string
		filter DirectoryFilter
	}{
		{"без фильтров", DirectoryFilter{}},
		{"search", DirectoryFilter{Search: "jane"}},
		{"company", DirectoryFilter{Company: "evil"}},
		{"location", DirectoryFilter{Location: "york"}},
		{"все фильтры", DirectoryFilter{Search: "jane", Company: "evil", Location: "york"}},
	}

	// Гейт не отключается никакой комбинацией фильтров.
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			where, _ := buildDirectoryWhere(tc.filter)
			assertVisibilityGate(t, where)
		})
	}
}

func TestBuildDirectoryWhere_NoFilters(t *testing.T) {
	where, args := buildDirectoryWhere(DirectoryFilter{})

	assert.Equal(t, "WHERE published = TRUE AND verified = TRUE", where)
	assert.Empty(t, args)
}

func TestBuildDirectoryWhere_FiltersAppendedAfterGate(t *testing.T) {
	where, args := buildDirectoryWhere(DirectoryFilter{Search: "jane", Company: "evil", Location: "york"})

	// Фильтры добавляются после гейта и не заменяют его.
	assert.True(t, strings.HasPrefix(where, "WHERE published = TRUE AND verified = TRUE AND "))
	assert.Contains(t, where, "(boss_name ILIKE $1 OR boss_company ILIKE $1 OR boss_position ILIKE $1)")
	assert.Contains(t, where, "boss_company ILIKE $2")
	assert.Contains(t, where, "work_location ILIKE $3")
	assert.Equal(t, []interface{}{"%jane%", "%evil%", "%york%"}, args)
}

func TestBuildDirectoryWhere_PlaceholdersShiftWithoutSearch(t *testing.T) {
	where, args := buildDirectoryWhere(DirectoryFilter{Company: "evil", Location: "york"})

	assert.Contains(t, where, "boss_company ILIKE $1")
	assert.Contains(t, where, "work_location ILIKE $2")
	assert.Equal(t, []interface{}{"%evil%", "%york%"}, args)
}

func TestFindVisibleByNameCompanyQuery_CarriesGate(t *testing.T) {
	// Разбор слага ищет только среди видимых записей, первая по порядку
	// submission_date DESC с добивкой по id.
	assertVisibilityGate(t, findVisibleByNameCompanyQuery)
	assert.Contains(t, findVisibleByNameCompanyQuery, "ORDER BY submission_date DESC, id DESC")
	assert.Contains(t, findVisibleByNameCompanyQuery, "LIMIT 1")
}
