// Package dialog управляет модальными окнами страницы: одновременно открыто не больше одного.
package dialog

// Идентификаторы модальных окон страницы.
const (
	Product  = "productModal"
	Booking  = "bookingModal"
	Profile  = "profileModal"
	Login    = "loginModal"
	Register = "registerModal"
	Review   = "reviewModal"
	Delete   = "deleteModal"
)

// All перечисляет окна, которые регистрирует страница при запуске.
var All = []string{Product, Booking, Profile, Login, Register, Review, Delete}

// Классы элементов, клик по которым закрывает окно.
const (
	ClassBackdrop = "modal-backdrop"
	ClassClose    = "modal-close"
)

// KeyEscape закрывает открытое окно.
const KeyEscape = "Escape"

// Manager хранит реестр окон и состояние каждого из них.
type Manager struct {
	open         map[string]bool
	scrollLocked bool
}

// NewManager создаёт менеджер и регистрирует переданные окна.
func NewManager(ids ...string) *Manager {
	m := &Manager{open: make(map[string]bool, len(ids))}
	for _, id := range ids {
		m.Register(id)
	}
	return m
}

// Register добавляет окно в реестр в закрытом состоянии. Повторная регистрация ничего не меняет.
func (m *Manager) Register(id string) {
	if _, ok := m.open[id]; !ok {
		m.open[id] = false
	}
}

// Registered сообщает, зарегистрировано ли окно.
func (m *Manager) Registered(id string) bool {
	_, ok := m.open[id]
	return ok
}

// Open закрывает все окна и открывает указанное, блокируя прокрутку страницы.
// Незарегистрированные окна игнорируются, но остальные всё равно закрываются.
func (m *Manager) Open(id string) {
	for k := range m.open {
		m.open[k] = false
	}
	if _, ok := m.open[id]; ok {
		m.open[id] = true
		m.scrollLocked = true
	}
}

// Close закрывает указанное окно и снимает блокировку прокрутки.
func (m *Manager) Close(id string) {
	if _, ok := m.open[id]; ok {
		m.open[id] = false
		m.scrollLocked = false
	}
}

// CloseAll закрывает все окна.
func (m *Manager) CloseAll() {
	for k := range m.open {
		m.open[k] = false
	}
	m.scrollLocked = false
}

// HandleClick закрывает окна при клике по подложке или кнопке закрытия.
func (m *Manager) HandleClick(classes ...string) bool {
	for _, c := range classes {
		if c == ClassBackdrop || c == ClassClose {
			m.CloseAll()
			return true
		}
	}
	return false
}

// HandleKey закрывает окна по клавише Escape.
func (m *Manager) HandleKey(key string) bool {
	if key != KeyEscape {
		return false
	}
	m.CloseAll()
	return true
}

// IsOpen сообщает, открыто ли окно.
func (m *Manager) IsOpen(id string) bool {
	return m.open[id]
}

// Active возвращает идентификатор открытого окна или пустую строку.
func (m *Manager) Active() string {
	for id, isOpen := range m.open {
		if isOpen {
			return id
		}
	}
	return ""
}

// ScrollLocked сообщает, заблокирована ли прокрутка страницы.
func (m *Manager) ScrollLocked() bool {
	return m.scrollLocked
}
