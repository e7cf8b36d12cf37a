package dialog

// State — состояние диалога. Набор фиксированный и доменный,
// по одному состоянию на шаг каждого сценария.
type State int

const (
	// Вход: меню до авторизации.
	StateLogin State = iota

	// Регистрация.
	StateFullName
	StateBarcode
	StateSelectStore

	// Авторизация по штрих-коду.
	StateBarcodeAuth

	// Главное меню авторизованного пользователя.
	StateMenu

	// Редактирование профиля.
	StateEditChoice
	StateEditName
	StateEditBarcode
	StateEditHireDate
	StateEditStore

	// Получение прав админа по секретному коду.
	StateAdminCode

	// Админ-панель: сотрудники.
	StateAdminMenu
	StateSelectUser
	StateUserManagement
	StateSelectPosition
	StateManageStore

	// Админ-панель: администраторы.
	StateSelectAdmin
	StateAssignStores

	// Админ-панель: магазины.
	StateStoresMenu
	StateStoreAddress
	StateDeleteStore
	StateSelectStoreEmployees
	StateSelectEmployee
	StateEmployeeActions
	StateEmployeeStore

	// Профиль магазина без авторизации.
	StateStoreAuth

	// График и подмены.
	StateScheduleMenu
	StateCreateSchedule
	StateEditSchedule
	StateAddSubstitutionStore
	StateAddSubstitutionDate
	StateAddSubstitutionHours
	StateEditSubstitution
	StateSelectSubstitutionDate

	stateCount
)

var stateNames = map[State]string{
	StateLogin:                  "Login",
	StateFullName:               "FullName",
	StateBarcode:                "Barcode",
	StateSelectStore:            "SelectStore",
	StateBarcodeAuth:            "BarcodeAuth",
	StateMenu:                   "Menu",
	StateEditChoice:             "EditChoice",
	StateEditName:               "EditName",
	StateEditBarcode:            "EditBarcode",
	StateEditHireDate:           "EditHireDate",
	StateEditStore:              "EditStore",
	StateAdminCode:              "AdminCode",
	StateAdminMenu:              "AdminMenu",
	StateSelectUser:             "SelectUser",
	StateUserManagement:         "UserManagement",
	StateSelectPosition:         "SelectPosition",
	StateManageStore:            "ManageStore",
	StateSelectAdmin:            "SelectAdmin",
	StateAssignStores:           "AssignStores",
	StateStoresMenu:             "StoresMenu",
	StateStoreAddress:           "StoreAddress",
	StateDeleteStore:            "DeleteStore",
	StateSelectStoreEmployees:   "SelectStoreEmployees",
	StateSelectEmployee:         "SelectEmployee",
	StateEmployeeActions:        "EmployeeActions",
	StateEmployeeStore:          "EmployeeStore",
	StateStoreAuth:              "StoreAuth",
	StateScheduleMenu:           "ScheduleMenu",
	StateCreateSchedule:         "CreateSchedule",
	StateEditSchedule:           "EditSchedule",
	StateAddSubstitutionStore:   "AddSubstitutionStore",
	StateAddSubstitutionDate:    "AddSubstitutionDate",
	StateAddSubstitutionHours:   "AddSubstitutionHours",
	StateEditSubstitution:       "EditSubstitution",
	StateSelectSubstitutionDate: "SelectSubstitutionDate",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// predecessors — задокументированный предшественник каждого состояния
// с кнопкой "назад". Переход назад только меняет состояние сессии,
// хранимые данные не трогает.
var predecessors = map[State]State{
	StateFullName:               StateLogin,
	StateBarcode:                StateFullName,
	StateSelectStore:            StateBarcode,
	StateBarcodeAuth:            StateLogin,
	StateEditChoice:             StateMenu,
	StateEditName:               StateEditChoice,
	StateEditBarcode:            StateEditChoice,
	StateEditHireDate:           StateEditChoice,
	StateEditStore:              StateEditChoice,
	StateAdminCode:              StateMenu,
	StateAdminMenu:              StateMenu,
	StateSelectUser:             StateAdminMenu,
	StateUserManagement:         StateSelectUser,
	StateSelectPosition:         StateUserManagement,
	StateManageStore:            StateUserManagement,
	StateSelectAdmin:            StateAdminMenu,
	StateAssignStores:           StateSelectAdmin,
	StateStoresMenu:             StateAdminMenu,
	StateStoreAddress:           StateLogin,
	StateDeleteStore:            StateStoresMenu,
	StateSelectStoreEmployees:   StateStoresMenu,
	StateSelectEmployee:         StateSelectStoreEmployees,
	StateEmployeeActions:        StateSelectEmployee,
	StateEmployeeStore:          StateEmployeeActions,
	StateStoreAuth:              StateLogin,
	StateScheduleMenu:           StateMenu,
	StateCreateSchedule:         StateScheduleMenu,
	StateEditSchedule:           StateScheduleMenu,
	StateAddSubstitutionStore:   StateScheduleMenu,
	StateAddSubstitutionDate:    StateAddSubstitutionStore,
	StateAddSubstitutionHours:   StateAddSubstitutionDate,
	StateEditSubstitution:       StateScheduleMenu,
	StateSelectSubstitutionDate: StateEditSubstitution,
}

// Predecessor возвращает задокументированное состояние для перехода "назад".
func Predecessor(s State) (State, bool) {
	pred, ok := predecessors[s]
	return pred, ok
}
