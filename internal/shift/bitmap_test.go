package shift

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2024, time.February, 29},
		{2026, time.April, 30},
	}
	for _, c := range cases {
		if got := DaysInMonth(c.year, c.month); got != c.want {
			t.Errorf("DaysInMonth(%d, %v) = %d, want %d", c.year, c.month, got, c.want)
		}
	}
}

func TestEncode(t *testing.T) {
	bitmap, err := Encode(2026, time.February, []int{1, 2, 5})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	runes := []rune(bitmap)
	if len(runes) != 28 {
		t.Fatalf("bitmap length = %d, want 28", len(runes))
	}
	for i, r := range runes {
		day := i + 1
		want := RestDayMark
		if day == 1 || day == 2 || day == 5 {
			want = WorkDayMark
		}
		if r != want {
			t.Errorf("day %d mark = %q, want %q", day, r, want)
		}
	}
}

func TestEncodeDayOutOfRange(t *testing.T) {
	if _, err := Encode(2026, time.February, []int{30}); !errors.Is(err, ErrDayOutOfRange) {
		t.Fatalf("err = %v, want ErrDayOutOfRange", err)
	}
	if _, err := Encode(2026, time.June, []int{0}); !errors.Is(err, ErrDayOutOfRange) {
		t.Fatalf("err = %v, want ErrDayOutOfRange", err)
	}
}

func TestEncodeEmpty(t *testing.T) {
	if _, err := Encode(2026, time.June, nil); !errors.Is(err, ErrEmptyWorkDays) {
		t.Fatalf("err = %v, want ErrEmptyWorkDays", err)
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	bitmap, err := Encode(2026, time.June, []int{3, 15, 30})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	days, err := Decode(bitmap)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	for i, work := range days {
		day := i + 1
		want := day == 3 || day == 15 || day == 30
		if work != want {
			t.Errorf("day %d work = %v, want %v", day, work, want)
		}
	}
}

func TestDecodeUnknownMark(t *testing.T) {
	if _, err := Decode("СВX"); !errors.Is(err, ErrUnknownDayMark) {
		t.Fatalf("err = %v, want ErrUnknownDayMark", err)
	}
}

func TestValidate(t *testing.T) {
	bitmap, _ := Encode(2026, time.April, []int{1})
	if err := Validate(bitmap, 2026, time.April); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// 30 дней против 31 в марте.
	if err := Validate(bitmap, 2026, time.March); !errors.Is(err, ErrBitmapCorrupt) {
		t.Fatalf("err = %v, want ErrBitmapCorrupt", err)
	}
}

func TestMonthKey(t *testing.T) {
	d := time.Date(2026, time.August, 28, 12, 0, 0, 0, time.UTC)
	if got := MonthKey(d); got != "2026-08" {
		t.Fatalf("MonthKey = %q, want 2026-08", got)
	}
}

func TestMonthBounds(t *testing.T) {
	d := time.Date(2026, time.February, 15, 9, 30, 0, 0, time.UTC)
	first, last := MonthBounds(d)
	if first.Day() != 1 || first.Month() != time.February {
		t.Fatalf("first = %v", first)
	}
	if last.Day() != 28 || last.Month() != time.February {
		t.Fatalf("last = %v", last)
	}
}

func TestFormatDays(t *testing.T) {
	bitmap, _ := Encode(2026, time.February, []int{2})
	out := FormatDays(bitmap)

	lines := strings.Split(out, "\n")
	if len(lines) != 28 {
		t.Fatalf("lines = %d, want 28", len(lines))
	}
	if lines[0] != "01: Выходной" {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != "02: Смена" {
		t.Errorf("second line = %q", lines[1])
	}
	if strings.HasSuffix(out, "\n") {
		t.Error("output has trailing newline")
	}
}
