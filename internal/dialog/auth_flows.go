package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/retailops/workforce-bot/internal/model"
	"github.com/retailops/workforce-bot/internal/service"
)

// Сценарии до авторизации: стартовое меню, регистрация,
// вход по штрих-коду и профиль магазина.

func loginActions() []string {
	return []string{LabelRegister, LabelAuthorize, LabelStoreRegister, LabelStoreAuth}
}

func (e *Engine) promptLogin(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"👋 Добро пожаловать! Выберите действие:"},
		Actions:  loginActions(),
	}, nil
}

func (e *Engine) startRegistration(ctx context.Context, s *Session, _ string) (Reply, error) {
	s.Flow.Registration = &RegistrationDraft{}
	return e.enter(ctx, s, StateFullName)
}

func (e *Engine) promptFullName(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"📝 Введите ваше ФИО:"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleFullName(ctx context.Context, s *Session, input string) (Reply, error) {
	if input == "" {
		return e.reprompt(ctx, s, "❌ ФИО не может быть пустым.")
	}
	if s.Flow.Registration == nil {
		s.Flow.Registration = &RegistrationDraft{}
	}
	s.Flow.Registration.FullName = input
	return e.enter(ctx, s, StateBarcode)
}

func (e *Engine) promptBarcode(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"🔢 Введите ваш штрих-код:"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleRegistrationBarcode(ctx context.Context, s *Session, input string) (Reply, error) {
	if input == "" {
		return e.reprompt(ctx, s, "❌ Штрих-код не может быть пустым.")
	}
	if s.Flow.Registration == nil {
		return e.enter(ctx, s, StateLogin)
	}
	s.Flow.Registration.Barcode = input

	stores, err := e.stores.ListStores(ctx)
	if err != nil {
		return Reply{}, err
	}
	// Магазинов ещё нет — регистрируем сразу без привязки.
	if len(stores) == 0 {
		return e.finishRegistration(ctx, s, nil)
	}
	return e.enter(ctx, s, StateSelectStore)
}

func (e *Engine) promptSelectStore(ctx context.Context, s *Session) (Reply, error) {
	list, err := e.storeList(ctx)
	if err != nil {
		return Reply{}, err
	}
	return Reply{
		Messages: []string{"🏪 Выберите магазин (введите номер):\n\n" + list},
		Actions:  []string{LabelSkip, LabelBack},
	}, nil
}

func (e *Engine) handleRegistrationStore(ctx context.Context, s *Session, input string) (Reply, error) {
	storeID, rep, err := e.pickStore(ctx, s, input)
	if err != nil || storeID == nil {
		return rep, err
	}
	return e.finishRegistration(ctx, s, storeID)
}

func (e *Engine) handleRegistrationStoreSkip(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.finishRegistration(ctx, s, nil)
}

func (e *Engine) finishRegistration(ctx context.Context, s *Session, storeID *uint) (Reply, error) {
	draft := s.Flow.Registration
	if draft == nil {
		return e.enter(ctx, s, StateLogin)
	}

	u, err := e.identity.Register(ctx, s.ExternalID, draft.FullName, draft.Barcode, storeID)
	if errors.Is(err, service.ErrDuplicateBarcode) {
		rep, perr := e.enter(ctx, s, StateLogin)
		return withPrefix(rep, perr, "❌ Этот штрих-код уже зарегистрирован.")
	}
	if err != nil {
		return Reply{}, err
	}

	s.UserID = &u.ID
	rep, perr := e.enter(ctx, s, StateMenu)
	return withPrefix(rep, perr, "✅ Регистрация завершена!")
}

func (e *Engine) startAuthorization(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateBarcodeAuth)
}

func (e *Engine) promptBarcodeAuth(ctx context.Context, s *Session) (Reply, error) {
	return Reply{
		Messages: []string{"🔑 Введите ваш штрих-код для входа:"},
		Actions:  []string{LabelBack},
	}, nil
}

func (e *Engine) handleAuthBarcode(ctx context.Context, s *Session, input string) (Reply, error) {
	u, err := e.identity.Authenticate(ctx, input)
	if errors.Is(err, service.ErrUserNotFound) {
		// Остаёмся на вводе: пользователь может опечататься.
		return stay([]string{LabelBack}, "❌ Пользователь с таким штрих-кодом не найден. Попробуйте ещё раз.")
	}
	if err != nil {
		return Reply{}, err
	}

	s.UserID = &u.ID
	rep, perr := e.enter(ctx, s, StateMenu)
	return withPrefix(rep, perr, fmt.Sprintf("✅ Добро пожаловать, %s!", u.FullName))
}

func (e *Engine) startStoreAuth(ctx context.Context, s *Session, _ string) (Reply, error) {
	return e.enter(ctx, s, StateStoreAuth)
}

func (e *Engine) promptStoreAuth(ctx context.Context, s *Session) (Reply, error) {
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

// handleStoreAuth показывает карточку магазина: номер, адрес и состав.
func (e *Engine) handleStoreAuth(ctx context.Context, s *Session, input string) (Reply, error) {
	storeID, rep, err := e.pickStore(ctx, s, input)
	if err != nil || storeID == nil {
		return rep, err
	}

	store, err := e.stores.GetStore(ctx, *storeID)
	if err != nil {
		return Reply{}, err
	}
	employees, err := e.stores.ListEmployees(ctx, store.ID)
	if err != nil {
		return Reply{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🏪 Магазин %s\n📍 Адрес: %s\n👥 Сотрудников: %d\n", store.Number, store.Address, len(employees))
	for _, emp := range employees {
		fmt.Fprintf(&b, "\n👤 %s — %s", emp.FullName, emp.Position)
	}
	return stay([]string{LabelBack}, b.String())
}

// storeList — нумерованный список всех магазинов; порядковые номера
// совпадают с порядком ListStores, на это опирается pickStore.
func (e *Engine) storeList(ctx context.Context) (string, error) {
	stores, err := e.stores.ListStores(ctx)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for i, st := range stores {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, st.Number, st.Address)
	}
	return b.String(), nil
}

// pickStore разбирает порядковый номер из списка storeList.
// При неверном вводе возвращает переспрос и nil вместо магазина.
func (e *Engine) pickStore(ctx context.Context, s *Session, input string) (*uint, Reply, error) {
	stores, err := e.stores.ListStores(ctx)
	if err != nil {
		return nil, Reply{}, err
	}
	idx, ok := parseOrdinal(input, len(stores))
	if !ok {
		rep, rerr := e.reprompt(ctx, s, "❌ Введите номер магазина из списка.")
		return nil, rep, rerr
	}
	id := stores[idx-1].ID
	return &id, Reply{}, nil
}

// requireUser возвращает авторизованного пользователя сессии
// или уводит на стартовое меню.
func (e *Engine) requireUser(ctx context.Context, s *Session) (*model.User, Reply, bool, error) {
	if s.UserID == nil {
		rep, err := e.enter(ctx, s, StateLogin)
		return nil, rep, false, err
	}
	u, err := e.identity.GetUser(ctx, *s.UserID)
	if errors.Is(err, service.ErrUserNotFound) {
		s.Reset()
		rep, perr := e.enter(ctx, s, StateLogin)
		rep, perr = withPrefix(rep, perr, "❌ Аккаунт не найден. Авторизуйтесь заново.")
		return nil, rep, false, perr
	}
	if err != nil {
		return nil, Reply{}, false, err
	}
	return u, Reply{}, true, nil
}
