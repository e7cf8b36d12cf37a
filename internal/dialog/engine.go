package dialog

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/retailops/workforce-bot/internal/service"
)

// Reply — ответ движка на один ход: тексты для отправки по порядку
// и метки действий, которые транспорт может показать кнопками.
type Reply struct {
	Messages []string
	Actions  []string
}

type (
	handlerFunc func(ctx context.Context, s *Session, input string) (Reply, error)
	promptFunc  func(ctx context.Context, s *Session) (Reply, error)
)

// stateSpec — маршруты одного состояния: переходы по меткам,
// обработчик произвольного текста и промпт для повторного входа.
type stateSpec struct {
	prompt promptFunc
	routes map[string]handlerFunc
	text   handlerFunc
}

const msgGenericFailure = "⚠️ Что-то пошло не так. Попробуйте ещё раз."

// Engine — конечный автомат диалога. Один ход: (состояние, ввод) ->
// обработчик -> (ответ, следующее состояние). Неудачный ход откатывает
// сессию к снимку до хода.
type Engine struct {
	identity *service.IdentityService
	stores   *service.StoreService
	schedule *service.ScheduleService
	sessions *SessionStore
	log      *zap.Logger

	specs map[State]stateSpec

	// Now подменяется в тестах.
	Now func() time.Time
}

func NewEngine(
	identity *service.IdentityService,
	stores *service.StoreService,
	schedule *service.ScheduleService,
	sessions *SessionStore,
	log *zap.Logger,
) *Engine {
	e := &Engine{
		identity: identity,
		stores:   stores,
		schedule: schedule,
		sessions: sessions,
		log:      log,
		Now:      time.Now,
	}
	e.specs = e.buildSpecs()
	return e
}

// HandleTurn обрабатывает один ход сессии. Ходы одной сессии строго
// последовательны; ошибки не покидают ход — сессия откатывается,
// пользователь получает общий ответ об ошибке.
func (e *Engine) HandleTurn(ctx context.Context, externalID int64, input string) Reply {
	s := e.sessions.Acquire(externalID)
	s.mu.Lock()
	defer s.mu.Unlock()

	input = strings.TrimSpace(input)
	snap := s.snapshot()

	rep, err := e.dispatch(ctx, s, input)
	if err != nil {
		s.restore(snap)
		e.log.Error("turn failed",
			zap.String("session", s.ID.String()),
			zap.String("state", snap.state.String()),
			zap.Error(err),
		)
		return Reply{Messages: []string{msgGenericFailure}, Actions: []string{LabelBack}}
	}
	return rep
}

func (e *Engine) dispatch(ctx context.Context, s *Session, input string) (Reply, error) {
	// Повторный вход в стартовое состояние сбрасывает всё.
	if input == CommandStart {
		s.Reset()
		return e.enter(ctx, s, StateLogin)
	}

	spec := e.specs[s.State]

	if h, ok := spec.routes[input]; ok {
		return h(ctx, s, input)
	}

	if input == LabelMainMenu {
		if s.UserID != nil {
			return e.enter(ctx, s, StateMenu)
		}
		return e.enter(ctx, s, StateLogin)
	}

	if input == LabelBack {
		if pred, ok := Predecessor(s.State); ok {
			return e.enter(ctx, s, pred)
		}
	}

	if spec.text != nil {
		return spec.text(ctx, s, input)
	}

	// Нераспознанный ввод: переспрашиваем то же состояние.
	return e.reprompt(ctx, s)
}

// enter переводит сессию в состояние st, очищает завершённые
// контексты и рендерит промпт нового состояния.
func (e *Engine) enter(ctx context.Context, s *Session, st State) (Reply, error) {
	s.State = st
	clearFlowFor(st, &s.Flow)
	spec := e.specs[st]
	if spec.prompt == nil {
		return Reply{}, nil
	}
	return spec.prompt(ctx, s)
}

// reprompt повторяет промпт текущего состояния без перехода.
func (e *Engine) reprompt(ctx context.Context, s *Session, msgs ...string) (Reply, error) {
	spec := e.specs[s.State]
	if spec.prompt == nil {
		return Reply{Messages: msgs}, nil
	}
	rep, err := spec.prompt(ctx, s)
	if err != nil {
		return Reply{}, err
	}
	rep.Messages = append(append([]string{}, msgs...), rep.Messages...)
	return rep, nil
}

// stay отвечает сообщением, не меняя состояния и не перерисовывая промпт.
func stay(actions []string, msgs ...string) (Reply, error) {
	return Reply{Messages: msgs, Actions: actions}, nil
}

// withPrefix добавляет сообщения перед ответом rep.
func withPrefix(rep Reply, err error, msgs ...string) (Reply, error) {
	if err != nil {
		return Reply{}, err
	}
	rep.Messages = append(append([]string{}, msgs...), rep.Messages...)
	return rep, nil
}

func parseOrdinal(input string, n int) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v, true
}

func parseUintID(input string) (uint, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(input), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}

func parseIDList(input string) ([]uint, bool) {
	parts := strings.Split(input, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, ok := parseUintID(p)
		if !ok {
			return nil, false
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, false
	}
	return ids, true
}

// buildSpecs собирает полную таблицу переходов. Каждое состояние
// обязано иметь промпт: на него опираются повторный показ и "назад".
func (e *Engine) buildSpecs() map[State]stateSpec {
	return map[State]stateSpec{
		StateLogin: {
			prompt: e.promptLogin,
			routes: map[string]handlerFunc{
				LabelRegister:      e.startRegistration,
				LabelAuthorize:     e.startAuthorization,
				LabelStoreRegister: e.startStoreAddress,
				LabelStoreAuth:     e.startStoreAuth,
			},
		},
		StateFullName: {
			prompt: e.promptFullName,
			text:   e.handleFullName,
		},
		StateBarcode: {
			prompt: e.promptBarcode,
			text:   e.handleRegistrationBarcode,
		},
		StateSelectStore: {
			prompt: e.promptSelectStore,
			routes: map[string]handlerFunc{
				LabelSkip: e.handleRegistrationStoreSkip,
			},
			text: e.handleRegistrationStore,
		},
		StateBarcodeAuth: {
			prompt: e.promptBarcodeAuth,
			text:   e.handleAuthBarcode,
		},
		StateMenu: {
			prompt: e.promptMenu,
			routes: map[string]handlerFunc{
				LabelEditProfile:  e.toEditChoice,
				LabelRequestAdmin: e.toAdminCode,
				LabelAdminPanel:   e.toAdminMenu,
				LabelSchedule:     e.toScheduleMenu,
				LabelLogout:       e.logout,
			},
		},
		StateEditChoice: {
			prompt: e.promptEditChoice,
			routes: map[string]handlerFunc{
				LabelEditName:     e.toEditName,
				LabelEditBarcode:  e.toEditBarcode,
				LabelEditHireDate: e.toEditHireDate,
				LabelChooseStore:  e.toEditStore,
			},
		},
		StateEditName: {
			prompt: e.promptEditName,
			text:   e.handleEditName,
		},
		StateEditBarcode: {
			prompt: e.promptEditBarcode,
			text:   e.handleEditBarcode,
		},
		StateEditHireDate: {
			prompt: e.promptEditHireDate,
			text:   e.handleEditHireDate,
		},
		StateEditStore: {
			prompt: e.promptEditStore,
			text:   e.handleEditStore,
		},
		StateAdminCode: {
			prompt: e.promptAdminCode,
			text:   e.handleAdminCode,
		},
		StateAdminMenu: {
			prompt: e.promptAdminMenu,
			routes: map[string]handlerFunc{
				LabelManageUsers:  e.toSelectUser,
				LabelManageStores: e.toStoresMenu,
				LabelManageAdmins: e.toSelectAdmin,
			},
		},
		StateSelectUser: {
			prompt: e.promptSelectUser,
			text:   e.handleSelectUser,
		},
		StateUserManagement: {
			prompt: e.promptUserManagement,
			routes: map[string]handlerFunc{
				LabelChangePosition: e.toSelectPosition,
				LabelChangeStore:    e.toManageStore,
				LabelRevokeAdmin:    e.handleRevokeAdmin,
			},
		},
		StateSelectPosition: {
			prompt: e.promptSelectPosition,
			text:   e.handleSelectPosition,
		},
		StateManageStore: {
			prompt: e.promptManageStore,
			text:   e.handleManageStore,
		},
		StateSelectAdmin: {
			prompt: e.promptSelectAdmin,
			text:   e.handleSelectAdmin,
		},
		StateAssignStores: {
			prompt: e.promptAssignStores,
			routes: map[string]handlerFunc{
				LabelAttachStores: e.showStoresForAssignment,
			},
			text: e.handleStoreAssignment,
		},
		StateStoresMenu: {
			prompt: e.promptStoresMenu,
			routes: map[string]handlerFunc{
				LabelAddStore:       e.startStoreAddress,
				LabelDeleteStore:    e.toDeleteStore,
				LabelStoreEmployees: e.toSelectStoreEmployees,
			},
		},
		StateStoreAddress: {
			prompt: e.promptStoreAddress,
			text:   e.handleStoreAddress,
		},
		StateDeleteStore: {
			prompt: e.promptDeleteStore,
			text:   e.handleDeleteStore,
		},
		StateSelectStoreEmployees: {
			prompt: e.promptSelectStoreEmployees,
			text:   e.handleSelectStoreEmployees,
		},
		StateSelectEmployee: {
			prompt: e.promptSelectEmployee,
			text:   e.handleSelectEmployee,
		},
		StateEmployeeActions: {
			prompt: e.promptEmployeeActions,
			routes: map[string]handlerFunc{
				LabelDeleteEmployee: e.handleDeleteEmployee,
				LabelAssignStore:    e.toEmployeeStore,
			},
		},
		StateEmployeeStore: {
			prompt: e.promptEmployeeStore,
			text:   e.handleEmployeeStore,
		},
		StateStoreAuth: {
			prompt: e.promptStoreAuth,
			text:   e.handleStoreAuth,
		},
		StateScheduleMenu: {
			prompt: e.promptScheduleMenu,
			routes: map[string]handlerFunc{
				LabelViewSchedule:     e.handleViewSchedule,
				LabelEditSchedule:     e.toEditSchedule,
				LabelCreateSchedule:   e.toCreateSchedule,
				LabelAddSubstitution:  e.toAddSubstitutionStore,
				LabelEditSubstitution: e.toEditSubstitutionMenu,
			},
		},
		StateCreateSchedule: {
			prompt: e.promptCreateSchedule,
			text:   e.handleSaveSchedule,
		},
		StateEditSchedule: {
			prompt: e.promptEditSchedule,
			text:   e.handleSaveSchedule,
		},
		StateAddSubstitutionStore: {
			prompt: e.promptAddSubstitutionStore,
			text:   e.handleSubstitutionStore,
		},
		StateAddSubstitutionDate: {
			prompt: e.promptAddSubstitutionDate,
			text:   e.handleSubstitutionDate,
		},
		StateAddSubstitutionHours: {
			prompt: e.promptAddSubstitutionHours,
			text:   e.handleSubstitutionHours,
		},
		StateEditSubstitution: {
			prompt: e.promptEditSubstitution,
			routes: map[string]handlerFunc{
				LabelSubEdit:   e.listSubstitutions,
				LabelSubDelete: e.listSubstitutions,
			},
		},
		StateSelectSubstitutionDate: {
			prompt: e.promptSelectSubstitutionDate,
			text:   e.handleSubstitutionSelection,
		},
	}
}
