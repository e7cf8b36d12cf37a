package dialog

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/retailops/workforce-bot/internal/service"
	"github.com/retailops/workforce-bot/internal/shift"
)

// График и подмены.

func scheduleMenuActions() []string {
	return []string{
		LabelViewSchedule,
		LabelCreateSchedule,
		LabelEditSchedule,
		LabelAddSubstitution,
		LabelEditSubstitution,
		LabelBack,
	}
}

func (e *Engine) toScheduleMenu(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateScheduleMenu)
}

func (e *Engine) promptScheduleMenu(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"📅 График:"},
		Actions:  scheduleMenuActions(),
	}, nil
}

// handleViewSchedule показывает сводный график пользователя и коллег,
// оставаясь в меню графика.
func (e *Engine) handleViewSchedule(ctx context.Context, s *Session, _ string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}
	chunks, err := e.schedule.GetAggregatedView(ctx, *s.UserID, e.Now())
	if err != nil {
		return Reply{}, err
	}
	return Reply{Messages: chunks, Actions: scheduleMenuActions()}, nil
}

func (e *Engine) toCreateSchedule(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateCreateSchedule)
}

func (e *Engine) promptCreateSchedule(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"➕ Введите рабочие дни текущего месяца через запятую (например: 1,2,5,10):"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) toEditSchedule(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateEditSchedule)
}

func (e *Engine) promptEditSchedule(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"✏️ Введите новые рабочие дни через запятую (например: 1,2,5,10):"},
		Actions:  []string{LabelBack},
	}, nil
}

// handleSaveSchedule сохраняет список рабочих дней текущего месяца.
// Создание и редактирование различаются только текстом промпта:
// строка месяца апсертится в обоих случаях.
func (e *Engine) handleSaveSchedule(ctx context.Context, s *Session, input string) (Reply, error) {
	u, rep, ok, err := e.requireUser(ctx, s)
	if !ok {
		return rep, err
	}
	if u.WorkStoreID == nil {
		rep, perr := e.enter(ctx, s, StateMenu)
		return withPrefix(rep, perr, "❌ Сначала выберите магазин в профиле.")
	}

	days, ok := parseDayList(input)
	if !ok {
		return e.reprompt(ctx, s, "❌ Введите дни через запятую, например: 1,2,5,10")
	}

	sched, err := e.schedule.SaveSchedule(ctx, u.ID, *u.WorkStoreID, e.Now(), days)
	if errors.Is(err, service.ErrOutOfRange) {
		return e.reprompt(ctx, s, "❌ В этом месяце нет таких дней. Попробуйте ещё раз.")
	}
	if err != nil {
		return Reply{}, err
	}

	rep, perr := e.enter(ctx, s, StateScheduleMenu)
	return withPrefix(rep, perr, "✅ График сохранён!\n\n"+shift.FormatDays(sched.Days))
}

func parseDayList(input string) ([]int, bool) {
	parts := strings.Split(input, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, false
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return nil, false
	}
	return days, true
}

func (e *Engine) toAddSubstitutionStore(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateAddSubstitutionStore)
}

func (e *Engine) promptAddSubstitutionStore(ctx context.Context, s *Session) (Reply, error) {
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
		Messages: []string{"🏪 Выберите магазин подмены (введите номер):\n\n" + list},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleSubstitutionStore(ctx context.Context, s *Session, input string) (Reply, error) {
	storeID, rep, err := e.pickStore(ctx, s, input)
	if err != nil || storeID == nil {
		return rep, err
	}
	s.Flow.Substitution = &SubstitutionDraft{StoreID: *storeID}
	return e.enter(ctx, s, StateAddSubstitutionDate)
}

func (e *Engine) promptAddSubstitutionDate(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"📅 Введите дату подмены в формате ГГГГ-ММ-ДД:"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleSubstitutionDate(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.Flow.Substitution == nil {
		return e.enter(ctx, s, StateScheduleMenu)
	}
	date, err := time.Parse(service.SubstitutionDateLayout, input)
	if err != nil {
		return stay([]string{LabelBack}, "❌ Неверный формат даты. Введите в формате ГГГГ-ММ-ДД:")
	}
	s.Flow.Substitution.Date = date
	s.Flow.Substitution.HasDate = true
	return e.enter(ctx, s, StateAddSubstitutionHours)
}

func (e *Engine) promptAddSubstitutionHours(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"⏰ Введите количество часов (1-24):"},
		Actions:  []string{LabelBack},
	}, nil
}

// handleSubstitutionHours завершает и создание новой подмены,
// и редактирование существующей: путь редактирования отличается
// наличием SubEdit с исходной датой.
func (e *Engine) handleSubstitutionHours(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}
	draft := s.Flow.Substitution
	if draft == nil || !draft.HasDate {
		return e.enter(ctx, s, StateScheduleMenu)
	}

	hours, err := strconv.Atoi(input)
	if err != nil {
		return stay([]string{LabelBack}, "❌ Введите число часов от 1 до 24:")
	}

	if edit := s.Flow.SubEdit; edit != nil && edit.Editing {
		err = e.schedule.UpdateSubstitution(ctx, *s.UserID, edit.OldDate, draft.StoreID, draft.Date, hours)
		if errors.Is(err, service.ErrOutOfRange) {
			return stay([]string{LabelBack}, "❌ Введите число часов от 1 до 24:")
		}
		if errors.Is(err, service.ErrSubstitutionMissing) {
			rep, perr := e.enter(ctx, s, StateScheduleMenu)
			return withPrefix(rep, perr, "❌ Подмена уже удалена.")
		}
		if err != nil {
			return Reply{}, err
		}
		rep, perr := e.enter(ctx, s, StateScheduleMenu)
		return withPrefix(rep, perr, "✅ Подмена обновлена!")
	}

	err = e.schedule.SaveSubstitution(ctx, *s.UserID, draft.StoreID, draft.Date, hours)
	if errors.Is(err, service.ErrOutOfRange) {
		return stay([]string{LabelBack}, "❌ Введите число часов от 1 до 24:")
	}
	if errors.Is(err, service.ErrSubstitutionExists) {
		rep, perr := e.enter(ctx, s, StateScheduleMenu)
		return withPrefix(rep, perr, "❌ На эту дату уже есть подмена. Отредактируйте её.")
	}
	if err != nil {
		return Reply{}, err
	}

	rep, perr := e.enter(ctx, s, StateScheduleMenu)
	return withPrefix(rep, perr, "✅ Подмена сохранена!")
}

func (e *Engine) toEditSubstitutionMenu(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateEditSubstitution)
}

func (e *Engine) promptEditSubstitution(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"📝 Что сделать с подменой?"},
		Actions:  []string{LabelSubEdit, LabelSubDelete, LabelBack},
	}, nil
}

// listSubstitutions показывает подмены текущего месяца и запоминает,
// что с выбранной делать: редактировать или удалить.
func (e *Engine) listSubstitutions(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}

	subs, err := e.schedule.ListSubstitutions(ctx, *s.UserID, e.Now())
	if err != nil {
		return Reply{}, err
	}
	if len(subs) == 0 {
		return stay([]string{LabelBack}, "В этом месяце нет подмен.")
	}

	action := "delete"
	if input == LabelSubEdit {
		action = "edit"
	}

	edit := &SubstitutionEdit{Action: action, Items: make([]SubstitutionItem, 0, len(subs))}
	for _, sub := range subs {
		item := SubstitutionItem{
			Date:    time.Time(sub.Date),
			StoreID: sub.StoreID,
			Hours:   sub.Hours,
		}
		if sub.Store != nil {
			item.Address = sub.Store.Address
		}
		edit.Items = append(edit.Items, item)
	}
	s.Flow.SubEdit = edit

	return e.enter(ctx, s, StateSelectSubstitutionDate)
}

func (e *Engine) promptSelectSubstitutionDate(ctx context.Context, s *Session) (Reply, error) {
	edit := s.Flow.SubEdit
	if edit == nil || len(edit.Items) == 0 {
		return e.enter(ctx, s, StateEditSubstitution)
	}

	var b strings.Builder
	b.WriteString("🔄 Выберите подмену (введите номер):\n\n")
	for i, item := range edit.Items {
		fmt.Fprintf(&b, "%d. %s: %dч в %s\n",
			i+1, item.Date.Format(service.SubstitutionDateLayout), item.Hours, item.Address)
	}
	return Reply{Messages: []string{b.String()}, Actions: []string{LabelBack}}, nil
}

func (e *Engine) handleSubstitutionSelection(ctx context.Context, s *Session, input string) (Reply, error) {
	if s.UserID == nil {
		return e.enter(ctx, s, StateLogin)
	}
	edit := s.Flow.SubEdit
	if edit == nil {
		return e.enter(ctx, s, StateEditSubstitution)
	}

	idx, ok := parseOrdinal(input, len(edit.Items))
	if !ok {
		return e.reprompt(ctx, s, "❌ Введите номер подмены из списка.")
	}
	item := edit.Items[idx-1]

	if edit.Action == "delete" {
		if err := e.schedule.DeleteSubstitution(ctx, *s.UserID, item.Date); err != nil {
			return Reply{}, err
		}
		rep, perr := e.enter(ctx, s, StateScheduleMenu)
		return withPrefix(rep, perr, "✅ Подмена удалена.")
	}

	// Редактирование: исходная дата фиксируется, дальше обычные шаги
	// дата -> часы, но с записью поверх старой строки.
	edit.OldDate = item.Date
	edit.Editing = true
	s.Flow.Substitution = &SubstitutionDraft{StoreID: item.StoreID}
	return e.enter(ctx, s, StateAddSubstitutionDate)
}
