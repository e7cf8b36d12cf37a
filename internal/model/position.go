package model

// Должность сотрудника. Значения храним как в исходной базе.
type Position string

const (
	PositionCashier     Position = "Кассир Торгового Зала"
	PositionStoreAdmin  Position = "Администратор"
	PositionCompliance  Position = "КРО"
	PositionTerritorial Position = "Территориальный менеджер"
	PositionSecurity    Position = "Служба Безопасности"
)

// AllPositions — порядок соответствует нумерации в диалоге выбора должности.
var AllPositions = []Position{
	PositionCashier,
	PositionStoreAdmin,
	PositionCompliance,
	PositionTerritorial,
	PositionSecurity,
}

func (p Position) Valid() bool {
	for _, known := range AllPositions {
		if p == known {
			return true
		}
	}
	return false
}

// Storeless — должности без привязки к магазину.
func (p Position) Storeless() bool {
	switch p {
	case PositionCompliance, PositionTerritorial, PositionSecurity:
		return true
	}
	return false
}

// PositionPolicy описывает, что смена должности делает с правами
// и привязкой к магазинам.
type PositionPolicy struct {
	// ForcedAdmin: nil — статус админа не трогаем, иначе ставим указанное значение.
	ForcedAdmin *bool
	// ClearsStoreAttachment: обнулить work_store_id и снять прикреплённые магазины.
	ClearsStoreAttachment bool
}

// PolicyFor — единственное место, где закодирована связка
// должность -> права админа / привязка к магазинам.
func PolicyFor(p Position) PositionPolicy {
	adminOn := true
	switch p {
	case PositionTerritorial:
		return PositionPolicy{ForcedAdmin: &adminOn, ClearsStoreAttachment: true}
	case PositionCompliance, PositionSecurity:
		return PositionPolicy{ClearsStoreAttachment: true}
	case PositionStoreAdmin:
		return PositionPolicy{ForcedAdmin: &adminOn}
	default:
		return PositionPolicy{}
	}
}
