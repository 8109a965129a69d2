// Package phone нормализует и проверяет российские номера телефонов.
package phone

import (
	"regexp"
	"strings"
)

var validPattern = regexp.MustCompile(`^7\d{10}$`)

// Normalize приводит номер к виду 7XXXXXXXXXX.
// Поддерживаются форматы 8XXXXXXXXXX, +7XXXXXXXXXX, 9XXXXXXXXX и любые разделители.
// Если номер не удается привести, возвращаются оставшиеся цифры как есть.
func Normalize(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 11 && digits[0] == '8':
		return "7" + digits[1:]
	case len(digits) == 10 && digits[0] == '9':
		return "7" + digits
	default:
		return digits
	}
}

// Validate проверяет, что номер уже нормализован
func Validate(normalized string) bool {
	return validPattern.MatchString(normalized)
}

// NormalizeAndValidate нормализует номер и сообщает, валиден ли результат
func NormalizeAndValidate(raw string) (string, bool) {
	normalized := Normalize(raw)
	return normalized, Validate(normalized)
}
