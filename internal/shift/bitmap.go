package shift

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrDayOutOfRange  = errors.New("day out of range for month")
	ErrEmptyWorkDays  = errors.New("work days list is empty")
	ErrBitmapCorrupt  = errors.New("bitmap length does not match month")
	ErrUnknownDayMark = errors.New("unknown day mark in bitmap")
)

// Обозначения дней в битмапе графика. Алфавит исходной базы,
// менять нельзя — от него зависят уже сохранённые строки.
const (
	WorkDayMark = 'С'
	RestDayMark = 'В'
)

// DaysInMonth возвращает число календарных дней месяца.
func DaysInMonth(year int, month time.Month) int {
	// День 0 следующего месяца = последний день текущего.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthKey — ключ месяца в формате ГГГГ-ММ.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthBounds возвращает первый и последний день месяца, в который попадает t.
func MonthBounds(t time.Time) (time.Time, time.Time) {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}

// Encode строит битмап месяца: рабочие дни из workDays помечаются сменой,
// остальные — выходными. Дни нумеруются с 1.
func Encode(year int, month time.Month, workDays []int) (string, error) {
	if len(workDays) == 0 {
		return "", ErrEmptyWorkDays
	}

	days := DaysInMonth(year, month)
	bitmap := make([]rune, days)
	for i := range bitmap {
		bitmap[i] = RestDayMark
	}

	for _, day := range workDays {
		if day < 1 || day > days {
			return "", fmt.Errorf("%w: day %d, month has %d days", ErrDayOutOfRange, day, days)
		}
		bitmap[day-1] = WorkDayMark
	}

	return string(bitmap), nil
}

// Decode разворачивает битмап в срез по дням: true — смена.
func Decode(bitmap string) ([]bool, error) {
	runes := []rune(bitmap)
	days := make([]bool, len(runes))
	for i, r := range runes {
		switch r {
		case WorkDayMark:
			days[i] = true
		case RestDayMark:
			days[i] = false
		default:
			return nil, fmt.Errorf("%w: %q at position %d", ErrUnknownDayMark, r, i+1)
		}
	}
	return days, nil
}

// Validate проверяет, что битмап соответствует месяцу по длине и алфавиту.
func Validate(bitmap string, year int, month time.Month) error {
	days, err := Decode(bitmap)
	if err != nil {
		return err
	}
	if len(days) != DaysInMonth(year, month) {
		return ErrBitmapCorrupt
	}
	return nil
}

// FormatDays рендерит битмап построчно: "01: Смена" / "02: Выходной".
func FormatDays(bitmap string) string {
	var b strings.Builder
	for i, r := range []rune(bitmap) {
		label := "Выходной"
		if r == WorkDayMark {
			label = "Смена"
		}
		fmt.Fprintf(&b, "%02d: %s\n", i+1, label)
	}
	return strings.TrimRight(b.String(), "\n")
}
