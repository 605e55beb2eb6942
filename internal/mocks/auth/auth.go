package auth

// Package auth contains simple hand-written test doubles for auth ports and
// repositories. These are lightweight and suitable for unit tests without
// codegen.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/campushub/intranet-api/internal/core"
	"github.com/campushub/intranet-api/internal/data"
	domainauth "github.com/campushub/intranet-api/internal/domain/auth"
	"github.com/campushub/intranet-api/internal/domain/model"
	"github.com/campushub/intranet-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.SessionStore  = (*MemorySessionStore)(nil)
	_ ports.Mailer        = (*RecordingMailer)(nil)
	_ core.UserRepository = (*MemoryUserRepo)(nil)
	_ core.AuthLogRepository = (*MemoryAuthLog)(nil)
)

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if id == "" || !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	if id == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// RecordingMailer captures outbound messages instead of delivering them.
// Setting Err makes every Send fail with it.
type RecordingMailer struct {
	mu       sync.Mutex
	Messages []ports.Message
	Err      error
}

func (m *RecordingMailer) Send(_ context.Context, msg ports.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Messages = append(m.Messages, msg)
	return nil
}

// Last returns the most recently sent message, or false when none were sent.
func (m *RecordingMailer) Last() (ports.Message, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return ports.Message{}, false
	}
	return m.Messages[len(m.Messages)-1], true
}

// MemoryUserRepo is an in-memory core.UserRepository for unit tests.
type MemoryUserRepo struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

// NewMemoryUserRepo creates an empty in-memory user repository.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{nextID: 1, users: make(map[int64]*model.User)}
}

func (m *MemoryUserRepo) Create(_ context.Context, req *model.CreateUserRequest, passwordHash string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, req.Email) {
			return nil, data.ErrEmailTaken
		}
	}
	user := &model.User{
		ID:           m.nextID,
		Email:        req.Email,
		PasswordHash: passwordHash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         req.Role,
		IsActive:     true,
		CreatedAt:    time.Now().UTC(),
	}
	m.nextID++
	m.users[user.ID] = user
	return copyUser(user), nil
}

func (m *MemoryUserRepo) GetByID(_ context.Context, id int64) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	return copyUser(u), nil
}

func (m *MemoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return copyUser(u), nil
		}
	}
	return nil, data.ErrUserNotFound
}

func (m *MemoryUserRepo) List(_ context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.User
	for _, u := range m.users {
		if opts.Role != nil && u.Role != *opts.Role {
			continue
		}
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (m *MemoryUserRepo) Update(_ context.Context, id int64, req model.UpdateUserRequest) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, data.ErrUserNotFound
	}
	if req.Email != nil {
		u.Email = *req.Email
	}
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.Role != nil {
		u.Role = *req.Role
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}
	return copyUser(u), nil
}

func (m *MemoryUserRepo) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func (m *MemoryUserRepo) SetPasswordHash(_ context.Context, id int64, passwordHash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return data.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *MemoryUserRepo) SetMFACode(_ context.Context, id int64, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return data.ErrUserNotFound
	}
	u.MFASecret = &code
	u.MFAVerified = false
	return nil
}

func (m *MemoryUserRepo) MarkMFAVerified(_ context.Context, id int64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return data.ErrUserNotFound
	}
	u.MFAVerified = true
	u.LastLogin = &at
	return nil
}

func (m *MemoryUserRepo) ClearMFAVerified(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return data.ErrUserNotFound
	}
	u.MFAVerified = false
	return nil
}

// Seed inserts a prebuilt user, assigning the next ID when unset.
func (m *MemoryUserRepo) Seed(u model.User) *model.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	if u.ID == 0 {
		u.ID = m.nextID
	}
	if u.ID >= m.nextID {
		m.nextID = u.ID + 1
	}
	m.users[u.ID] = &u
	return copyUser(&u)
}

func copyUser(u *model.User) *model.User {
	cp := *u
	return &cp
}

// MemoryAuthLog is an in-memory append-only audit sink for unit tests.
// Setting Err makes Append fail, for exercising graceful degradation.
type MemoryAuthLog struct {
	mu     sync.Mutex
	nextID int64
	Events []*model.AuthEvent
	Err    error
}

// NewMemoryAuthLog creates an empty in-memory audit log.
func NewMemoryAuthLog() *MemoryAuthLog {
	return &MemoryAuthLog{nextID: 1}
}

func (m *MemoryAuthLog) Append(_ context.Context, event *model.AuthEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	cp := *event
	cp.ID = m.nextID
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	m.nextID++
	m.Events = append(m.Events, &cp)
	return nil
}

func (m *MemoryAuthLog) List(_ context.Context, opts model.AuthEventsListOptions) ([]*model.AuthEvent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.AuthEvent
	for _, e := range m.Events {
		if opts.Email != nil && e.Email != *opts.Email {
			continue
		}
		if opts.Action != nil && e.Action != *opts.Action {
			continue
		}
		if opts.Success != nil && e.Success != *opts.Success {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

// HasAction reports whether an event with the given action and success flag
// was recorded.
func (m *MemoryAuthLog) HasAction(action model.AuthAction, success bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.Action == action && e.Success == success {
			return true
		}
	}
	return false
}
