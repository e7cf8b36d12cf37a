package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/retailops/workforce-bot/internal/service"
)

// Админ-панель: магазины и их сотрудники.

func (e *Engine) toStoresMenu(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateStoresMenu)
}

func (e *Engine) promptStoresMenu(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"🏪 Управление магазинами:"},
		Actions:  []string{LabelAddStore, LabelDeleteStore, LabelStoreEmployees, LabelBack},
	}, nil
}

func (e *Engine) startStoreAddress(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateStoreAddress)
}

func (e *Engine) promptStoreAddress(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"🏪 Введите адрес магазина:"},
		Actions:  []string{LabelBack},
	}, nil
}

// handleStoreAddress создаёт магазин с очередным номером.
// Из-под админки возвращает в меню магазинов, без авторизации —
// на стартовое меню.
func (e *Engine) handleStoreAddress(ctx context.Context, s *Session, input string) (Reply, error) {
	if input == "" {
		return e.reprompt(ctx, s, "❌ Адрес не может быть пустым.")
	}
	store, err := e.stores.AddStore(ctx, input)
	if err != nil {
		return Reply{}, err
	}

	msg := fmt.Sprintf("✅ Магазин %s добавлен!\n📍 Адрес: %s", store.Number, store.Address)
	next := StateLogin
	if s.UserID != nil {
		next = StateStoresMenu
	}
	rep, perr := e.enter(ctx, s, next)
	return withPrefix(rep, perr, msg)
}

func (e *Engine) toDeleteStore(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateDeleteStore)
}

func (e *Engine) promptDeleteStore(ctx context.Context, s *Session) (Reply, error) {
	list, err := e.storeList(ctx)
	if err != nil {
		return Reply{}, err
	}
	if list == "" {
		return Reply{
			Messages: []string{"Магазинов пока нет."},
			Actions:  []string{LabelBack},
		}, nil
	}
	return Reply{
		Messages: []string{"❌ Выберите магазин для удаления (введите номер):\n\n" + list},
		Actions:  []string{LabelBack},
	}, nil
}

// Удаление магазинов не поддерживается: номера M001, M002... выдаются
// от количества строк, и удаление привело бы к дублям.
func (e *Engine) handleDeleteStore(ctx context.Context, s *Session, _ string) (Reply, error) {
	rep, err := e.enter(ctx, s, StateStoresMenu)
	return withPrefix(rep, err, "❌ Удаление магазинов не поддерживается.")
}

func (e *Engine) toSelectStoreEmployees(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateSelectStoreEmployees)
}

func (e *Engine) promptSelectStoreEmployees(ctx context.Context, s *Session) (Reply, error) {
	list, err := e.storeList(ctx)
	if err != nil {
		return Reply{}, err
	}
	if list == "" {
		return Reply{
			Messages: []string{"Магазинов пока нет."},
			Actions:  []string{LabelBack},
		}, nil
	}
	return Reply{
		Messages: []string{"👥 Выберите магазин (введите номер):\n\n" + list},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleSelectStoreEmployees(ctx context.Context, s *Session, input string) (Reply, error) {
	storeID, rep, err := e.pickStore(ctx, s, input)
	if err != nil || storeID == nil {
		return rep, err
	}
	s.Flow.Employees = &EmployeePick{StoreID: *storeID}
	return e.enter(ctx, s, StateSelectEmployee)
}

func (e *Engine) promptSelectEmployee(ctx context.Context, s *Session) (Reply, error) {
	pick := s.Flow.Employees
	if pick == nil {
		return e.enter(ctx, s, StateSelectStoreEmployees)
	}
	employees, err := e.stores.ListEmployees(ctx, pick.StoreID)
	if err != nil {
		return Reply{}, err
	}
	if len(employees) == 0 {
		return Reply{
			Messages: []string{"В этом магазине нет сотрудников."},
			Actions:  []string{LabelBack},
		}, nil
	}

	pick.IDs = pick.IDs[:0]
	pick.Selected = nil
	var b strings.Builder
	b.WriteString("👥 Сотрудники магазина (введите номер):\n\n")
	for i, u := range employees {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, u.FullName, u.Position)
		pick.IDs = append(pick.IDs, u.ID)
	}

	return Reply{Messages: []string{b.String()}, Actions: []string{LabelBack}}, nil
}

func (e *Engine) handleSelectEmployee(ctx context.Context, s *Session, input string) (Reply, error) {
	pick := s.Flow.Employees
	if pick == nil {
		return e.enter(ctx, s, StateSelectStoreEmployees)
	}
	idx, ok := parseOrdinal(input, len(pick.IDs))
	if !ok {
		return e.reprompt(ctx, s, "❌ Введите номер сотрудника из списка.")
	}
	id := pick.IDs[idx-1]
	pick.Selected = &id
	return e.enter(ctx, s, StateEmployeeActions)
}

func (e *Engine) promptEmployeeActions(ctx context.Context, s *Session) (Reply, error) {
	pick := s.Flow.Employees
	if pick == nil || pick.Selected == nil {
		return e.enter(ctx, s, StateSelectStoreEmployees)
	}
	u, err := e.identity.GetUser(ctx, *pick.Selected)
	if errors.Is(err, service.ErrUserNotFound) {
		rep, perr := e.enter(ctx, s, StateSelectEmployee)
		return withPrefix(rep, perr, "❌ Сотрудник не найден.")
	}
	if err != nil {
		return Reply{}, err
	}

	msg := fmt.Sprintf("👤 %s\nДолжность: %s", u.FullName, u.Position)
	return Reply{
		Messages: []string{msg},
		Actions:  []string{LabelDeleteEmployee, LabelAssignStore, LabelBack},
	}, nil
}

// handleDeleteEmployee открепляет сотрудника от магазина.
func (e *Engine) handleDeleteEmployee(ctx context.Context, s *Session, _ string) (Reply, error) {
	pick := s.Flow.Employees
	if pick == nil || pick.Selected == nil {
		return e.enter(ctx, s, StateSelectStoreEmployees)
	}
	if err := e.identity.SetWorkStore(ctx, *pick.Selected, nil); err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateSelectEmployee)
	return withPrefix(rep, perr, "✅ Сотрудник откреплён от магазина.")
}

func (e *Engine) toEmployeeStore(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateEmployeeStore)
}

func (e *Engine) promptEmployeeStore(ctx context.Context, s *Session) (Reply, error) {
	list, err := e.storeList(ctx)
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Messages: []string{"🏪 Выберите новый магазин сотрудника (введите номер):\n\n" + list},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleEmployeeStore(ctx context.Context, s *Session, input string) (Reply, error) {
	pick := s.Flow.Employees
	if pick == nil || pick.Selected == nil {
		return e.enter(ctx, s, StateSelectStoreEmployees)
	}
	storeID, rep, err := e.pickStore(ctx, s, input)
	if err != nil || storeID == nil {
		return rep, err
	}
	if err := e.identity.SetWorkStore(ctx, *pick.Selected, storeID); err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateSelectEmployee)
	return withPrefix(rep, perr, "✅ Магазин сотрудника обновлён.")
}
