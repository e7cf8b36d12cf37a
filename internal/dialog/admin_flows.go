package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/retailops/workforce-bot/internal/model"
	"github.com/retailops/workforce-bot/internal/service"
)

// Админ-панель: сотрудники и администраторы.

func (e *Engine) toAdminMenu(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateAdminMenu)
}

func (e *Engine) promptAdminMenu(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"👑 Админ-панель:"},
		Actions:  []string{LabelManageUsers, LabelManageStores, LabelManageAdmins, LabelBack},
	}, nil
}

func (e *Engine) toSelectUser(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateSelectUser)
}

func (e *Engine) promptSelectUser(ctx context.Context, s *Session) (Reply, error) {
	users, err := e.identity.ListUsers(ctx)
	if err != nil {
		return Reply{}, err
	}
	if len(users) == 0 {
		return Reply{
			Messages: []string{"Сотрудников пока нет."},
			Actions:  []string{LabelBack},
		}, nil
	}

	pick := &OrdinalPick{IDs: make([]uint, 0, len(users))}
	var b strings.Builder
	b.WriteString("👥 Сотрудники (введите номер):\n\n")
	for i, u := range users {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, u.FullName, u.Position)
		pick.IDs = append(pick.IDs, u.ID)
	}
	s.Flow.UserPick = pick

	return Reply{Messages: []string{b.String()}, Actions: []string{LabelBack}}, nil
}

func (e *Engine) handleSelectUser(ctx context.Context, s *Session, input string) (Reply, error) {
	pick := s.Flow.UserPick
	if pick == nil {
		return e.reprompt(ctx, s)
	}
	idx, ok := parseOrdinal(input, len(pick.IDs))
	if !ok {
		return e.reprompt(ctx, s, "❌ Введите номер сотрудника из списка.")
	}
	s.Flow.Manage = &ManagedUser{ID: pick.IDs[idx-1]}
	return e.enter(ctx, s, StateUserManagement)
}

func (e *Engine) promptUserManagement(ctx context.Context, s *Session) (Reply, error) {
	if s.Flow.Manage == nil {
		return e.enter(ctx, s, StateSelectUser)
	}
	u, err := e.identity.GetUser(ctx, s.Flow.Manage.ID)
	if errors.Is(err, service.ErrUserNotFound) {
		rep, perr := e.enter(ctx, s, StateSelectUser)
		return withPrefix(rep, perr, "❌ Сотрудник не найден.")
	}
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👤 %s\n", u.FullName)
	fmt.Fprintf(&b, "Должность: %s\n", u.Position)
	if u.WorkStore != nil {
		fmt.Fprintf(&b, "Магазин: %s (%s)\n", u.WorkStore.Number, u.WorkStore.Address)
	} else {
		b.WriteString("Магазин: не выбран\n")
	}
	if u.IsAdmin {
		b.WriteString("Права админа: есть\n")
	}

	return Reply{
		Messages: []string{b.String()},
		Actions:  []string{LabelChangePosition, LabelChangeStore, LabelRevokeAdmin, LabelBack},
	}, nil
}

func (e *Engine) toSelectPosition(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateSelectPosition)
}

func (e *Engine) promptSelectPosition(ctx context.Context, s *Session) (Reply, error) {
	var b strings.Builder
	b.WriteString("👔 Выберите должность (введите номер):\n\n")
	for i, p := range model.AllPositions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, p)
	}
	return Reply{Messages: []string{b.String()}, Actions: []string{LabelBack}}, nil
}

func (e *Engine) handleSelectPosition(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.Flow.Manage == nil {
		return e.enter(ctx, s, StateSelectUser)
	}
	idx, ok := parseOrdinal(input, len(model.AllPositions))
	if !ok {
		return e.reprompt(ctx, s, "❌ Введите номер должности из списка.")
	}
	if err := e.identity.ChangePosition(ctx, s.Flow.Manage.ID, model.AllPositions[idx-1]); err != nil {
		return Reply{}, err
	}
	rep, err := e.enter(ctx, s, StateSelectUser)
	return withPrefix(rep, err, "✅ Должность обновлена.")
}

func (e *Engine) toManageStore(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateManageStore)
}

func (e *Engine) promptManageStore(ctx context.Context, s *Session) (Reply, error) {
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
		Messages: []string{"🏪 Выберите магазин сотрудника (введите номер):\n\n" + list},
		Actions:  []string{LabelBack},
	}, nil
}

// handleManageStore меняет магазин выбранного сотрудника.
// Сессия админа при этом не трогается.
func (e *Engine) handleManageStore(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.Flow.Manage == nil {
		return e.enter(ctx, s, StateSelectUser)
	}
	storeID, rep, err := e.pickStore(ctx, s, input)
	if err != nil || storeID == nil {
		return rep, err
	}
	if err := e.identity.SetWorkStore(ctx, s.Flow.Manage.ID, storeID); err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateSelectUser)
	return withPrefix(rep, perr, "✅ Магазин сотрудника обновлён.")
}

func (e *Engine) handleRevokeAdmin(ctx context.Context, s *Session, _ string) (Reply, error) {
	if s.Flow.Manage == nil {
		return e.enter(ctx, s, StateSelectUser)
	}
	err := e.identity.RevokeAdmin(ctx, s.Flow.Manage.ID)
	if errors.Is(err, service.ErrInvalidOperation) {
		return e.reprompt(ctx, s, "❌ У территориального менеджера нельзя снять права админа.")
	}
	if err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateSelectUser)
	return withPrefix(rep, perr, "✅ Права администратора сняты.")
}

func (e *Engine) toSelectAdmin(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateSelectAdmin)
}

func (e *Engine) promptSelectAdmin(ctx context.Context, s *Session) (Reply, error) {
	admins, err := e.identity.ListAdmins(ctx)
	if err != nil {
		return Reply{}, err
	}
	if len(admins) == 0 {
		return Reply{
			Messages: []string{"Администраторов пока нет."},
			Actions:  []string{LabelBack},
		}, nil
	}

	pick := &OrdinalPick{IDs: make([]uint, 0, len(admins))}
	var b strings.Builder
	b.WriteString("👨‍💼 Администраторы (введите номер):\n\n")
	for i, a := range admins {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, a.FullName, a.Position)
		pick.IDs = append(pick.IDs, a.ID)
	}
	s.Flow.AdminPick = pick

	return Reply{Messages: []string{b.String()}, Actions: []string{LabelBack}}, nil
}

func (e *Engine) handleSelectAdmin(ctx context.Context, s *Session, input string) (Reply, error) {
	pick := s.Flow.AdminPick
	if pick == nil {
		return e.reprompt(ctx, s)
	}
	idx, ok := parseOrdinal(input, len(pick.IDs))
	if !ok {
		return e.reprompt(ctx, s, "❌ Введите номер администратора из списка.")
	}
	s.Flow.Assign = &AssignDraft{AdminID: pick.IDs[idx-1]}
	return e.enter(ctx, s, StateAssignStores)
}

func (e *Engine) promptAssignStores(ctx context.Context, s *Session) (Reply, error) {
	if s.Flow.Assign == nil {
		return e.enter(ctx, s, StateSelectAdmin)
	}
	admin, err := e.identity.GetUser(ctx, s.Flow.Assign.AdminID)
	if err != nil {
		return Reply{}, err
	}
	attached, err := e.identity.AdminStores(ctx, admin.ID)
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👨‍💼 Администратор: %s\n", admin.FullName)
	if len(attached) == 0 {
		b.WriteString("Прикреплённых магазинов нет.")
	} else {
		b.WriteString("Прикреплённые магазины:\n")
		for _, st := range attached {
			fmt.Fprintf(&b, "• %s — %s\n", st.Number, st.Address)
		}
	}

	return Reply{
		Messages: []string{b.String()},
		Actions:  []string{LabelAttachStores, LabelBack},
	}, nil
}

func (e *Engine) showStoresForAssignment(ctx context.Context, s *Session, _ string) (Reply, error) {
	list, err := e.storeList(ctx)
	if err != nil {
		return Reply{}, err
	}
	if list == "" {
		return stay([]string{LabelBack}, "Магазинов пока нет.")
	}
	return stay([]string{LabelBack},
		list+"\nВведите номера магазинов через запятую (например: 1,3,5):")
}

// handleStoreAssignment заменяет полный набор магазинов администратора
// набором из введённых порядковых номеров.
func (e *Engine) handleStoreAssignment(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.Flow.Assign == nil {
		return e.enter(ctx, s, StateSelectAdmin)
	}
	stores, err := e.stores.ListStores(ctx)
	if err != nil {
		return Reply{}, err
	}

	ordinals, ok := parseIDList(input)
	if !ok {
		return stay([]string{LabelBack}, "❌ Введите номера через запятую, например: 1,3,5")
	}
	ids := make([]uint, 0, len(ordinals))
	for _, n := range ordinals {
		if int(n) > len(stores) {
			return stay([]string{LabelBack}, fmt.Sprintf("❌ Магазина с номером %d нет в списке.", n))
		}
		ids = append(ids, stores[n-1].ID)
	}

	if err := e.stores.AssignStoresToAdmin(ctx, s.Flow.Assign.AdminID, ids); err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateSelectAdmin)
	return withPrefix(rep, perr, "✅ Магазины прикреплены.")
}
