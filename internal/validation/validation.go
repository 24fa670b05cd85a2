// Package validation содержит функции валидации входных данных.
package validation

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// DateLayout — формат даты из поля input[type=date].
const DateLayout = "2006-01-02"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail проверяет, что строка похожа на адрес электронной почты.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Length возвращает длину строки в символах, а не в байтах.
func Length(s string) int {
	return utf8.RuneCountInString(s)
}

// HasBlank сообщает, есть ли среди значений пустые после обрезки пробелов.
func HasBlank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}

// ParseDate разбирает дату формы в часовом поясе loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, loc)
}

// NotBefore сообщает, что день date не раньше дня now.
func NotBefore(date, now time.Time) bool {
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return !date.Before(today)
}
