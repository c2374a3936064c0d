package contact

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Manager holds the ordered contact list and mirrors it to a Store.
// The list is read once at construction and written back in full after
// every mutation. A Manager is not safe for concurrent use.
type Manager struct {
	store    Store
	logger   *zap.Logger
	ids      idGenerator
	contacts []Contact
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for load/save diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithClock overrides the time source used to generate contact IDs.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.ids.now = now
		}
	}
}

// NewManager creates a Manager backed by store and loads the persisted list.
// A load failure is returned; the Manager is not usable in that case.
func NewManager(store Store, opts ...Option) (*Manager, error) {
	m := &Manager{
		store:    store,
		logger:   zap.NewNop(),
		ids:      idGenerator{now: time.Now},
		contacts: []Contact{},
	}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.Load(); err != nil {
		return nil, err
	}
	return m, nil
}

// Load replaces the in-memory list with the stored one. If nothing is
// stored, the current list is kept. Undecodable data returns an error
// wrapping ErrCorrupt and leaves the list untouched.
func (m *Manager) Load() error {
	data, found, err := m.store.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("contact: loading: %w", err)
	}
	if !found || data == "" {
		m.logger.Debug("no stored contacts", zap.String("key", StorageKey))
		return nil
	}

	var loaded []Contact
	if err := json.Unmarshal([]byte(data), &loaded); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if loaded == nil {
		loaded = []Contact{}
	}
	m.contacts = loaded
	for _, c := range loaded {
		m.ids.observe(c.ID)
	}
	m.logger.Debug("loaded contacts", zap.Int("count", len(loaded)))
	return nil
}

// Save writes the full list to the store, overwriting prior content.
func (m *Manager) Save() error {
	list := m.contacts
	if list == nil {
		list = []Contact{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("contact: marshaling: %w", err)
	}
	if err := m.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("contact: saving: %w", err)
	}
	m.logger.Debug("saved contacts", zap.Int("count", len(list)))
	return nil
}

// Add appends a new contact with a fresh ID, persists, and returns it.
// Invalid UTF-8 in a field is replaced with U+FFFD, as the stored JSON would.
func (m *Manager) Add(name, phoneNumber, email string) (Contact, error) {
	c := Contact{
		ID:          m.ids.next(),
		Name:        validUTF8(name),
		PhoneNumber: validUTF8(phoneNumber),
		Email:       validUTF8(email),
	}
	m.contacts = append(m.contacts, c)
	return c, m.Save()
}

// Delete removes the contact with the given ID and persists. An unknown ID
// leaves the list unchanged; the list is persisted either way. The list is
// rebuilt, so slices previously returned by All are not modified.
func (m *Manager) Delete(id string) error {
	if i := m.index(id); i >= 0 {
		kept := make([]Contact, 0, len(m.contacts)-1)
		kept = append(kept, m.contacts[:i]...)
		m.contacts = append(kept, m.contacts[i+1:]...)
	} else {
		m.logger.Debug("delete: no such contact", zap.String("id", id))
	}
	return m.Save()
}

// Update overwrites the editable fields of the contact with the given ID and
// persists. It reports whether the contact exists; an unknown ID is not
// persisted and not an error.
func (m *Manager) Update(id, name, phoneNumber, email string) (bool, error) {
	i := m.index(id)
	if i < 0 {
		m.logger.Debug("update: no such contact", zap.String("id", id))
		return false, nil
	}
	c := &m.contacts[i]
	c.Name = validUTF8(name)
	c.PhoneNumber = validUTF8(phoneNumber)
	c.Email = validUTF8(email)
	return true, m.Save()
}

// Search returns the contacts whose name contains query, ignoring case,
// in list order. An empty query matches every contact.
func (m *Manager) Search(query string) []Contact {
	q := strings.ToLower(query)
	matches := []Contact{}
	for _, c := range m.contacts {
		if strings.Contains(strings.ToLower(c.Name), q) {
			matches = append(matches, c)
		}
	}
	return matches
}

// All returns the live contact list in insertion order. Callers must not
// modify it. Update changes the returned elements in place.
func (m *Manager) All() []Contact {
	return m.contacts
}

// Get returns the contact with the given ID.
func (m *Manager) Get(id string) (Contact, bool) {
	if i := m.index(id); i >= 0 {
		return m.contacts[i], true
	}
	return Contact{}, false
}

// validUTF8 replaces each invalid byte with U+FFFD, the same substitution
// encoding/json makes, so the in-memory value matches the stored one.
func validUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	return string([]rune(s))
}

func (m *Manager) index(id string) int {
	for i, c := range m.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
