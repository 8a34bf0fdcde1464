package ru_test

import (
	"testing"

	"studydesk/internal/pkg/ru"

	"github.com/stretchr/testify/assert"
)

func TestDays(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0 дней"},
		{1, "1 день"},
		{2, "2 дня"},
		{3, "3 дня"},
		{4, "4 дня"},
		{5, "5 дней"},
		{11, "11 дней"},
		{12, "12 дней"},
		{14, "14 дней"},
		{15, "15 дней"},
		{21, "21 день"},
		{22, "22 дня"},
		{101, "101 день"},
		{111, "111 дней"},
		{112, "112 дней"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ru.Days(tt.n), "n=%d", tt.n)
	}
}

func TestDaysText(t *testing.T) {
	t.Run("numeric deadlines are pluralized", func(t *testing.T) {
		assert.Equal(t, "15 дней", ru.DaysText("15"))
		assert.Equal(t, "1 день", ru.DaysText("1"))
		assert.Equal(t, "3 дня", ru.DaysText("3"))
		assert.Equal(t, "7 дней", ru.DaysText(" 7 "))
	})

	t.Run("non numeric values are returned unchanged", func(t *testing.T) {
		assert.Equal(t, "До дедлайна", ru.DaysText("До дедлайна"))
		assert.Equal(t, "20.05.2026", ru.DaysText("20.05.2026"))
		assert.Empty(t, ru.DaysText(""))
		assert.Equal(t, "-3", ru.DaysText("-3"))
	})
}
