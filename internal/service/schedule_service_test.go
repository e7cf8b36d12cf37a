package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/retailops/workforce-bot/internal/shift"
)

var august = time.Date(2026, time.August, 15, 10, 0, 0, 0, time.UTC)

func TestSaveScheduleEncodesMonth(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")
	u, _ := env.identity.Register(ctx, 100, "Иванов", "111", &store.ID)

	sched, err := env.schedule.SaveSchedule(ctx, u.ID, store.ID, august, []int{1, 2, 31})
	if err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}
	if sched.Month != "2026-08" {
		t.Errorf("month = %q, want 2026-08", sched.Month)
	}

	days, err := shift.Decode(sched.Days)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(days) != 31 {
		t.Fatalf("days = %d, want 31", len(days))
	}
	if !days[0] || !days[1] || !days[30] {
		t.Error("days 1, 2 and 31 must be work days")
	}
	if days[2] {
		t.Error("day 3 must be a rest day")
	}
}

func TestSaveScheduleUpserts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")
	u, _ := env.identity.Register(ctx, 100, "Иванов", "111", &store.ID)

	if _, err := env.schedule.SaveSchedule(ctx, u.ID, store.ID, august, []int{1}); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}
	if _, err := env.schedule.SaveSchedule(ctx, u.ID, store.ID, august, []int{2, 3}); err != nil {
		t.Fatalf("SaveSchedule again: %v", err)
	}

	got, err := env.schedule.GetSchedule(ctx, u.ID, store.ID, august)
	if err != nil {
		t.Fatalf("GetSchedule: %v", err)
	}
	days, _ := shift.Decode(got.Days)
	if days[0] {
		t.Error("day 1 must be overwritten to rest")
	}
	if !days[1] || !days[2] {
		t.Error("days 2 and 3 must be work days")
	}
}

func TestSaveScheduleDayOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")
	u, _ := env.identity.Register(ctx, 100, "Иванов", "111", &store.ID)

	_, err := env.schedule.SaveSchedule(ctx, u.ID, store.ID, august, []int{32})
	if !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("err = %v, want ErrOutOfRange", err)
	}
}

func TestSubstitutionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, _ := env.stores.AddStore(ctx, "Ленина 1")
	b, _ := env.stores.AddStore(ctx, "Мира 5")
	u, _ := env.identity.Register(ctx, 100, "Иванов", "111", &a.ID)

	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	if err := env.schedule.SaveSubstitution(ctx, u.ID, b.ID, date, 8); err != nil {
		t.Fatalf("SaveSubstitution: %v", err)
	}
	// Вторая подмена на ту же дату запрещена.
	if err := env.schedule.SaveSubstitution(ctx, u.ID, a.ID, date, 4); !errors.Is(err, ErrSubstitutionExists) {
		t.Fatalf("err = %v, want ErrSubstitutionExists", err)
	}

	subs, err := env.schedule.ListSubstitutions(ctx, u.ID, august)
	if err != nil {
		t.Fatalf("ListSubstitutions: %v", err)
	}
	if len(subs) != 1 || subs[0].Hours != 8 {
		t.Fatalf("subs = %+v", subs)
	}

	newDate := time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC)
	if err := env.schedule.UpdateSubstitution(ctx, u.ID, date, a.ID, newDate, 6); err != nil {
		t.Fatalf("UpdateSubstitution: %v", err)
	}

	subs, _ = env.schedule.ListSubstitutions(ctx, u.ID, august)
	if len(subs) != 1 {
		t.Fatalf("subs = %d, want 1", len(subs))
	}
	if subs[0].Hours != 6 || subs[0].StoreID != a.ID {
		t.Fatalf("sub = %+v", subs[0])
	}
	if FormatSubstitutionDate(subs[0]) != "2026-08-12" {
		t.Errorf("date = %q", FormatSubstitutionDate(subs[0]))
	}

	if err := env.schedule.DeleteSubstitution(ctx, u.ID, newDate); err != nil {
		t.Fatalf("DeleteSubstitution: %v", err)
	}
	// Повторное удаление — не ошибка.
	if err := env.schedule.DeleteSubstitution(ctx, u.ID, newDate); err != nil {
		t.Fatalf("repeated delete: %v", err)
	}

	subs, _ = env.schedule.ListSubstitutions(ctx, u.ID, august)
	if len(subs) != 0 {
		t.Fatalf("subs = %d, want 0", len(subs))
	}
}

func TestSaveSubstitutionHoursOutOfRange(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")
	u, _ := env.identity.Register(ctx, 100, "Иванов", "111", &store.ID)
	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	for _, hours := range []int{0, 25, -1} {
		if err := env.schedule.SaveSubstitution(ctx, u.ID, store.ID, date, hours); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("hours %d: err = %v, want ErrOutOfRange", hours, err)
		}
	}
}

func TestUpdateMissingSubstitution(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")
	u, _ := env.identity.Register(ctx, 100, "Иванов", "111", &store.ID)
	date := time.Date(2026, time.August, 10, 0, 0, 0, 0, time.UTC)

	err := env.schedule.UpdateSubstitution(ctx, u.ID, date, store.ID, date, 5)
	if !errors.Is(err, ErrSubstitutionMissing) {
		t.Fatalf("err = %v, want ErrSubstitutionMissing", err)
	}
}

func TestListSubstitutionsMonthScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")
	u, _ := env.identity.Register(ctx, 100, "Иванов", "111", &store.ID)

	inMonth := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	nextMonth := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	if err := env.schedule.SaveSubstitution(ctx, u.ID, store.ID, inMonth, 8); err != nil {
		t.Fatalf("SaveSubstitution: %v", err)
	}
	if err := env.schedule.SaveSubstitution(ctx, u.ID, store.ID, nextMonth, 8); err != nil {
		t.Fatalf("SaveSubstitution: %v", err)
	}

	subs, err := env.schedule.ListSubstitutions(ctx, u.ID, august)
	if err != nil {
		t.Fatalf("ListSubstitutions: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("subs = %d, want 1", len(subs))
	}
}

func TestGetAggregatedView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")
	u, _ := env.identity.Register(ctx, 100, "Иванов Иван", "111", &store.ID)
	colleague, _ := env.identity.Register(ctx, 200, "Петров Пётр", "222", &store.ID)

	if _, err := env.schedule.SaveSchedule(ctx, u.ID, store.ID, august, []int{1, 2}); err != nil {
		t.Fatalf("SaveSchedule: %v", err)
	}
	if _, err := env.schedule.SaveSchedule(ctx, colleague.ID, store.ID, august, []int{3}); err != nil {
		t.Fatalf("SaveSchedule colleague: %v", err)
	}
	date := time.Date(2026, time.August, 20, 0, 0, 0, 0, time.UTC)
	if err := env.schedule.SaveSubstitution(ctx, u.ID, store.ID, date, 8); err != nil {
		t.Fatalf("SaveSubstitution: %v", err)
	}

	chunks, err := env.schedule.GetAggregatedView(ctx, u.ID, august)
	if err != nil {
		t.Fatalf("GetAggregatedView: %v", err)
	}
	if len(chunks) == 0 {
		t.Fatal("no chunks")
	}

	all := strings.Join(chunks, "\n")
	for _, want := range []string{
		"📅 График Иванов Иван",
		"🔄 Подмены в этом месяце:",
		"2026-08-20: 8ч в Ленина 1",
		"📋 Графики коллег:",
		"👤 Петров Пётр",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("view misses %q", want)
		}
	}
	for i, c := range chunks {
		if n := len([]rune(c)); n > shift.MessageLimit {
			t.Errorf("chunk %d has %d runes, limit %d", i, n, shift.MessageLimit)
		}
	}
}

func TestGetAggregatedViewNoColleagues(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")
	u, _ := env.identity.Register(ctx, 100, "Иванов", "111", &store.ID)

	chunks, err := env.schedule.GetAggregatedView(ctx, u.ID, august)
	if err != nil {
		t.Fatalf("GetAggregatedView: %v", err)
	}
	all := strings.Join(chunks, "\n")
	if !strings.Contains(all, "График не найден.") {
		t.Error("view must say the schedule is missing")
	}
	if !strings.Contains(all, "В этом магазине нет других сотрудников.") {
		t.Error("view must mention the empty store")
	}
}
