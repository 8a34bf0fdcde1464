// Package ru contains Russian language helpers used when rendering chat messages.
package ru

import (
	"strconv"
	"strings"
)

// DayWord returns the form of "день" that agrees with n.
//
//	1, 21, 101  -> день
//	2..4, 22    -> дня
//	5..20, 111  -> дней
func DayWord(n int) string {
	if n < 0 {
		n = -n
	}
	if rem := n % 100; rem >= 11 && rem <= 14 {
		return "дней"
	}
	switch n % 10 {
	case 1:
		return "день"
	case 2, 3, 4:
		return "дня"
	default:
		return "дней"
	}
}

// Days renders a day count such as "3 дня".
func Days(n int) string {
	return strconv.Itoa(n) + " " + DayWord(n)
}

// DaysText pluralizes a raw deadline value. Numeric input like "15" becomes
// "15 дней"; anything else, e.g. "До дедлайна", is returned unchanged.
func DaysText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 0 || strings.HasPrefix(trimmed, "+") {
		return raw
	}
	return Days(n)
}
