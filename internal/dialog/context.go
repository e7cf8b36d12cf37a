package dialog

import "time"

// FlowContext — типизированный контекст активного сценария.
// Одно поле на сценарий; очищается при выходе из сценария,
// чтобы устаревший выбор не протёк в другой поток.
type FlowContext struct {
	Registration *RegistrationDraft
	UserPick     *OrdinalPick
	Manage       *ManagedUser
	AdminPick    *OrdinalPick
	Assign       *AssignDraft
	Employees    *EmployeePick
	Substitution *SubstitutionDraft
	SubEdit      *SubstitutionEdit
}

// RegistrationDraft — данные, набранные по шагам регистрации.
type RegistrationDraft struct {
	FullName string
	Barcode  string
}

// OrdinalPick — соответствие порядковых номеров показанного списка
// идентификаторам строк.
type OrdinalPick struct {
	IDs []uint
}

// ManagedUser — сотрудник, выбранный в админке.
type ManagedUser struct {
	ID uint
}

// AssignDraft — администратор, которому прикрепляются магазины.
type AssignDraft struct {
	AdminID uint
}

// EmployeePick — магазин и показанный список его сотрудников.
type EmployeePick struct {
	StoreID  uint
	IDs      []uint
	Selected *uint
}

// SubstitutionDraft — пошагово набираемая новая подмена.
type SubstitutionDraft struct {
	StoreID uint
	Date    time.Time
	HasDate bool
}

// SubstitutionItem — строка показанного списка подмен.
type SubstitutionItem struct {
	Date    time.Time
	StoreID uint
	Hours   int
	Address string
}

// SubstitutionEdit — редактирование/удаление существующей подмены.
type SubstitutionEdit struct {
	Action  string // "edit" | "delete"
	Items   []SubstitutionItem
	OldDate time.Time
	StoreID uint
	Editing bool
}

// clone делает глубокую копию для снапшота сессии:
// откат неудачного шага не должен делить память с живым контекстом.
func (f FlowContext) clone() FlowContext {
	out := FlowContext{}
	if f.Registration != nil {
		v := *f.Registration
		out.Registration = &v
	}
	if f.UserPick != nil {
		out.UserPick = f.UserPick.clone()
	}
	if f.Manage != nil {
		v := *f.Manage
		out.Manage = &v
	}
	if f.AdminPick != nil {
		out.AdminPick = f.AdminPick.clone()
	}
	if f.Assign != nil {
		v := *f.Assign
		out.Assign = &v
	}
	if f.Employees != nil {
		v := *f.Employees
		v.IDs = append([]uint(nil), f.Employees.IDs...)
		if f.Employees.Selected != nil {
			id := *f.Employees.Selected
			v.Selected = &id
		}
		out.Employees = &v
	}
	if f.Substitution != nil {
		v := *f.Substitution
		out.Substitution = &v
	}
	if f.SubEdit != nil {
		v := *f.SubEdit
		v.Items = append([]SubstitutionItem(nil), f.SubEdit.Items...)
		out.SubEdit = &v
	}
	return out
}

func (p *OrdinalPick) clone() *OrdinalPick {
	return &OrdinalPick{IDs: append([]uint(nil), p.IDs...)}
}

// clearFlowFor сбрасывает контексты, чьи сценарии завершаются
// при входе в состояние st.
func clearFlowFor(st State, f *FlowContext) {
	switch st {
	case StateLogin, StateMenu:
		*f = FlowContext{}
	case StateAdminMenu:
		f.UserPick = nil
		f.Manage = nil
		f.AdminPick = nil
		f.Assign = nil
	case StateStoresMenu:
		f.Employees = nil
	case StateScheduleMenu:
		f.Substitution = nil
		f.SubEdit = nil
	}
}
