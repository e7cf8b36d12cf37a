package dialog

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"
)

// Session — диалог одной внешней identity: текущее состояние,
// авторизованный пользователь и контекст активного сценария.
// Ходы внутри сессии строго последовательны (mu).
type Session struct {
	ID         uuid.UUID
	ExternalID int64

	UserID *uint
	State  State
	Flow   FlowContext

	mu sync.Mutex
}

// Reset идемпотентно возвращает сессию в начальное состояние
// и отбрасывает весь контекст.
func (s *Session) Reset() {
	s.UserID = nil
	s.State = StateLogin
	s.Flow = FlowContext{}
}

type sessionSnapshot struct {
	userID *uint
	state  State
	flow   FlowContext
}

func (s *Session) snapshot() sessionSnapshot {
	var userID *uint
	if s.UserID != nil {
		id := *s.UserID
		userID = &id
	}
	return sessionSnapshot{userID: userID, state: s.State, flow: s.Flow.clone()}
}

func (s *Session) restore(snap sessionSnapshot) {
	s.UserID = snap.userID
	s.State = snap.state
	s.Flow = snap.flow
}

// SessionStore — хранилище сессий с TTL: брошенные диалоги
// со временем забываются.
type SessionStore struct {
	mu sync.Mutex
	c  *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		return &SessionStore{c: cache.New(cache.NoExpiration, 0)}
	}
	return &SessionStore{c: cache.New(ttl, ttl/4)}
}

// Acquire возвращает сессию identity, создавая её при первом обращении.
// Каждое обращение продлевает TTL.
func (st *SessionStore) Acquire(externalID int64) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	key := strconv.FormatInt(externalID, 10)
	if v, ok := st.c.Get(key); ok {
		s := v.(*Session)
		st.c.SetDefault(key, s)
		return s
	}

	s := &Session{
		ID:         uuid.New(),
		ExternalID: externalID,
		State:      StateLogin,
	}
	st.c.SetDefault(key, s)
	return s
}
