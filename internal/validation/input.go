package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Константы валидации
const (
	MinReportContentLength = 10
	MaxReportContentLength = 50000
	MaxBossNameLength      = 200
	MaxCompanyLength       = 200
	MaxPositionLength      = 200
	MaxLocationLength      = 200
	MinBornYear            = 1930
	MaxBornYear            = 2010
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s must be at most %d characters", fieldName, max)
	}
	return nil
}

// ValidateBornYear проверяет правдоподобность года рождения.
// Пустое значение допустимо, поле опциональное.
func ValidateBornYear(year int) error {
	if year < MinBornYear || year > MaxBornYear {
		return fmt.Errorf("born year must be between %d and %d", MinBornYear, MaxBornYear)
	}
	return nil
}

// ValidateEmail делает базовую проверку формата email.
// Поле опциональное, анонимные жалобы приходят без адреса или со
// значением "Anonymous".
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("invalid email format")
	}

	localPart := parts[0]
	domainPart := parts[1]

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("invalid email format")
	}
	if len(domainPart) == 0 || len(domainPart) > 255 || !strings.Contains(domainPart, ".") {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// IsAnonymousEmail сообщает, считается ли значение анонимным.
func IsAnonymousEmail(email string) bool {
	trimmed := strings.TrimSpace(email)
	return trimmed == "" || strings.EqualFold(trimmed, "anonymous")
}
