package dialog

// Метки действий. Транспорт рендерит их кнопками и возвращает текстом,
// поэтому значения должны совпадать с исходным ботом байт в байт.
const (
	CommandStart = "/start"

	LabelBack     = "↩️ Назад"
	LabelMainMenu = "↩️ В главное меню"
	LabelSkip     = "⏩ Пропустить"

	LabelRegister      = "🔐 Регистрация"
	LabelAuthorize     = "🔑 Авторизация"
	LabelStoreRegister = "🏪 Регистрация магазина"
	LabelStoreAuth     = "🏪 Авторизоваться в магазин"

	LabelEditProfile  = "✏️ Редактировать профиль"
	LabelRequestAdmin = "🔐 Получить права админа"
	LabelAdminPanel   = "👑 Админ-панель"
	LabelLogout       = "🚪 Выйти"
	LabelSchedule     = "📅 График"

	LabelEditName     = "📝 Изменить ФИО"
	LabelEditBarcode  = "🔢 Изменить штрих-код"
	LabelEditHireDate = "📅 Указать дату трудоустройства"
	LabelChooseStore  = "🏪 Выбрать магазин"

	LabelManageUsers  = "👥 Управление сотрудниками"
	LabelManageStores = "🏪 Управление магазинами"
	LabelManageAdmins = "👨‍💼 Управление администраторами"

	LabelChangePosition = "👔 Изменить должность"
	LabelChangeStore    = "🏪 Изменить магазин"
	LabelRevokeAdmin    = "❌ Удалить админ права"

	LabelAttachStores = "🏪 Прикрепить магазины"

	LabelAddStore       = "➕ Добавить магазин"
	LabelDeleteStore    = "❌ Удалить магазин"
	LabelStoreEmployees = "👥 Сотрудники магазина"

	LabelDeleteEmployee = "❌ Удалить сотрудника"
	LabelAssignStore    = "🏪 Указать магазин"

	LabelViewSchedule     = "👁 Посмотреть график"
	LabelEditSchedule     = "✏️ Редактировать график"
	LabelCreateSchedule   = "➕ Создать график"
	LabelAddSubstitution  = "🔄 Добавить подмену"
	LabelEditSubstitution = "📝 Редактировать подмену"

	LabelSubEdit   = "✏️ Редактировать подмену"
	LabelSubDelete = "❌ Удалить подмену"
)
