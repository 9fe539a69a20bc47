package wizard

import (
	"sync"

	"github.com/google/uuid"
)

// Manager управляет активными сессиями мастера бронирования.
// Сессия живет от открытия мастера до его закрытия и никогда не сохраняется.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	validator       LocationValidator
	defaultLocation string
	onConfirmed     func(Confirmation)
}

// NewManager создает менеджер сессий мастера бронирования.
// onConfirmed вызывается при каждом подтвержденном бронировании (может быть nil).
func NewManager(validator LocationValidator, defaultLocation string, onConfirmed func(Confirmation)) *Manager {
	return &Manager{
		sessions:        make(map[string]*Session),
		validator:       validator,
		defaultLocation: defaultLocation,
		onConfirmed:     onConfirmed,
	}
}

// Open открывает новую сессию мастера с предзаполненными данными.
// Каждое открытие начинает с чистого черновика: контактные поля пустые,
// шаг зависит от того, передан ли автомобиль.
func (m *Manager) Open(init InitialData) *Session {
	s := newSession(uuid.NewString(), init, m.defaultLocation, m.validator, m.onConfirmed)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	return s
}

// Get возвращает сессию по идентификатору
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	return s, ok
}

// Close закрывает сессию и отменяет незавершенную проверку локации
func (m *Manager) Close(id string) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if ok {
		s.close()
	}
	return ok
}

// ActiveCount возвращает количество открытых сессий
func (m *Manager) ActiveCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
