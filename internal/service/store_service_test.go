package service

import (
	"context"
	"errors"
	"testing"

	"github.com/retailops/workforce-bot/internal/model"
)

func TestAddStoreSequentialNumbers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	first, err := env.stores.AddStore(ctx, "Ленина 1")
	if err != nil {
		t.Fatalf("AddStore: %v", err)
	}
	second, err := env.stores.AddStore(ctx, "Мира 5")
	if err != nil {
		t.Fatalf("AddStore: %v", err)
	}

	if first.Number != "M001" {
		t.Errorf("first number = %q, want M001", first.Number)
	}
	if second.Number != "M002" {
		t.Errorf("second number = %q, want M002", second.Number)
	}
}

func TestGetStoreNotFound(t *testing.T) {
	env := newTestEnv(t)
	if _, err := env.stores.GetStore(context.Background(), 42); !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("err = %v, want ErrStoreNotFound", err)
	}
}

func TestAssignStoresToAdminReplaces(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	a, _ := env.stores.AddStore(ctx, "Ленина 1")
	b, _ := env.stores.AddStore(ctx, "Мира 5")
	c, _ := env.stores.AddStore(ctx, "Гагарина 9")

	admin, _ := env.identity.Register(ctx, 100, "Иванов", "111", nil)
	if err := env.identity.GrantAdminBySecret(ctx, admin.ID, testSecretCode); err != nil {
		t.Fatalf("GrantAdminBySecret: %v", err)
	}

	if err := env.stores.AssignStoresToAdmin(ctx, admin.ID, []uint{a.ID, b.ID}); err != nil {
		t.Fatalf("AssignStoresToAdmin: %v", err)
	}
	// Повторное назначение полностью заменяет набор.
	if err := env.stores.AssignStoresToAdmin(ctx, admin.ID, []uint{c.ID}); err != nil {
		t.Fatalf("AssignStoresToAdmin: %v", err)
	}

	attached, err := env.identity.AdminStores(ctx, admin.ID)
	if err != nil {
		t.Fatalf("AdminStores: %v", err)
	}
	if len(attached) != 1 || attached[0].ID != c.ID {
		t.Fatalf("attached = %+v, want only store %d", attached, c.ID)
	}
}

func TestListEmployeesExcludesStoreless(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store, _ := env.stores.AddStore(ctx, "Ленина 1")

	cashier, _ := env.identity.Register(ctx, 100, "Кассир", "111", &store.ID)
	kro, _ := env.identity.Register(ctx, 200, "Проверяющий", "222", &store.ID)
	if err := env.db.Model(&model.User{}).Where("id = ?", kro.ID).
		Updates(map[string]any{"position": model.PositionCompliance}).Error; err != nil {
		t.Fatalf("seed: %v", err)
	}

	employees, err := env.stores.ListEmployees(ctx, store.ID)
	if err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if len(employees) != 1 || employees[0].ID != cashier.ID {
		t.Fatalf("employees = %+v, want only cashier", employees)
	}

	n, err := env.stores.EmployeeCount(ctx, store.ID)
	if err != nil {
		t.Fatalf("EmployeeCount: %v", err)
	}
	if n != 1 {
		t.Fatalf("count = %d, want 1", n)
	}
}
