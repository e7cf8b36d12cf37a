package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/retailops/workforce-bot/internal/model"
	"github.com/retailops/workforce-bot/internal/service"
)

// Главное меню, карточка профиля и его редактирование.

func (e *Engine) promptMenu(ctx context.Context, s *Session) (Reply, error) {
	u, rep, ok, err := e.requireUser(ctx, s)
	if !ok {
		return rep, err
	}

	var b strings.Builder
	b.WriteString("👤 Ваш профиль:\n")
	fmt.Fprintf(&b, "ФИО: %s\n", u.FullName)
	fmt.Fprintf(&b, "Штрих-код: %s\n", u.Barcode)
	fmt.Fprintf(&b, "Должность: %s\n", u.Position)

	if u.Position.Storeless() {
		b.WriteString("Магазин: не требуется\n")
	} else if u.WorkStore != nil {
		fmt.Fprintf(&b, "Магазин: %s (%s)\n", u.WorkStore.Number, u.WorkStore.Address)
	} else {
		b.WriteString("Магазин: не выбран\n")
	}

	if u.HireDate != nil {
		fmt.Fprintf(&b, "Дата трудоустройства: %s", *u.HireDate)
		if t, perr := time.Parse(service.HireDateLayout, *u.HireDate); perr == nil {
			fmt.Fprintf(&b, " (стаж: %s)", tenure(t, e.Now()))
		}
		b.WriteString("\n")
	} else {
		b.WriteString("Дата трудоустройства: не указана\n")
	}

	actions := []string{LabelEditProfile}
	if !u.Position.Storeless() {
		actions = append(actions, LabelSchedule)
	}
	if u.IsAdmin || u.Position == model.PositionTerritorial {
		actions = append(actions, LabelAdminPanel)
	} else {
		actions = append(actions, LabelRequestAdmin)
	}
	actions = append(actions, LabelLogout)

	return Reply{Messages: []string{b.String()}, Actions: actions}, nil
}

// tenure — стаж от даты трудоустройства до now, в годах и месяцах.
func tenure(from, now time.Time) string {
	if now.Before(from) {
		return "0 мес."
	}
	months := (now.Year()-from.Year())*12 + int(now.Month()) - int(from.Month())
	if now.Day() < from.Day() {
		months--
	}
	years := months / 12
	months %= 12
	switch {
	case years > 0 && months > 0:
		return fmt.Sprintf("%d г. %d мес.", years, months)
	case years > 0:
		return fmt.Sprintf("%d г.", years)
	default:
		return fmt.Sprintf("%d мес.", months)
	}
}

func (e *Engine) logout(ctx context.Context, s *Session, _ string) (Reply, error) {
	s.Reset()
	rep, err := e.enter(ctx, s, StateLogin)
	return withPrefix(rep, err, "🚪 Вы вышли из аккаунта.")
}

func (e *Engine) toEditChoice(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateEditChoice)
}

func (e *Engine) promptEditChoice(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"✏️ Что хотите изменить?"},
		Actions:  []string{LabelEditName, LabelEditBarcode, LabelEditHireDate, LabelChooseStore, LabelBack},
	}, nil
}

func (e *Engine) toEditName(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateEditName)
}

func (e *Engine) promptEditName(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"📝 Введите новое ФИО:"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleEditName(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}
	if input == "" {
		return e.reprompt(ctx, s, "❌ ФИО не может быть пустым.")
	}
	if err := e.identity.UpdateFullName(ctx, *s.UserID, input); err != nil {
		return Reply{}, err
	}
	rep, err := e.enter(ctx, s, StateEditChoice)
	return withPrefix(rep, err, "✅ ФИО обновлено.")
}

func (e *Engine) toEditBarcode(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateEditBarcode)
}

func (e *Engine) promptEditBarcode(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"🔢 Введите новый штрих-код:"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleEditBarcode(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}
	if input == "" {
		return e.reprompt(ctx, s, "❌ Штрих-код не может быть пустым.")
	}
	err := e.identity.UpdateBarcode(ctx, *s.UserID, input)
	if errors.Is(err, service.ErrDuplicateBarcode) {
		return stay([]string{LabelBack}, "❌ Этот штрих-код уже занят. Введите другой:")
	}
	if err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateEditChoice)
	return withPrefix(rep, perr, "✅ Штрих-код обновлён.")
}

func (e *Engine) toEditHireDate(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateEditHireDate)
}

func (e *Engine) promptEditHireDate(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"📅 Введите дату трудоустройства в формате ДД.ММ.ГГГГ:"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleEditHireDate(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}
	err := e.identity.UpdateHireDate(ctx, *s.UserID, input)
	if errors.Is(err, service.ErrInvalidDate) {
		return stay([]string{LabelBack}, "❌ Неверный формат даты. Введите в формате ДД.ММ.ГГГГ:")
	}
	if err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateEditChoice)
	return withPrefix(rep, perr, "✅ Дата трудоустройства сохранена.")
}

func (e *Engine) toEditStore(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateEditStore)
}

func (e *Engine) promptEditStore(ctx context.Context, s *Session) (Reply, error) {
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
		Messages: []string{"🏪 Выберите магазин (введите номер):\n\n" + list},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleEditStore(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}
	storeID, rep, err := e.pickStore(ctx, s, input)
	if err != nil || storeID == nil {
		return rep, err
	}
	if err := e.identity.SetWorkStore(ctx, *s.UserID, storeID); err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateEditChoice)
	return withPrefix(rep, perr, "✅ Магазин обновлён.")
}

func (e *Engine) toAdminCode(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateAdminCode)
}

func (e *Engine) promptAdminCode(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"🔐 Введите секретный код:"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleAdminCode(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}
	err := e.identity.GrantAdminBySecret(ctx, *s.UserID, input)
	if errors.Is(err, service.ErrSecretMismatch) {
		return stay([]string{LabelBack}, "❌ Неверный код. Попробуйте ещё раз:")
	}
	if err != nil {
		return Reply{}, err
	}
	rep, perr := e.enter(ctx, s, StateMenu)
	return withPrefix(rep, perr, "✅ Права администратора выданы!")
}
