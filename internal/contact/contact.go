// Package contact owns the address book's contact list and keeps it
// synchronized with a string-keyed persistent store.
package contact

import (
	"errors"
	"strconv"
	"time"
)

// StorageKey is the store key holding the serialized contact list.
const StorageKey = "contacts"

// ErrCorrupt indicates the stored contact list could not be decoded.
var ErrCorrupt = errors.New("contact: stored contact list is corrupt")

// Contact is a single address book entry. Fields are free-form.
type Contact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

// Store is the persistent key/value medium the Manager reads and writes.
// Get returns (value, true, nil) if the key exists, ("", false, nil) if not.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
}

// idGenerator issues millisecond-timestamp IDs. IDs never repeat: when the
// clock has not advanced past the last issued ID, the next integer is used.
type idGenerator struct {
	now  func() time.Time
	last int64
}

func (g *idGenerator) next() string {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return strconv.FormatInt(id, 10)
}

// observe raises the generator floor to a previously issued ID.
// Non-numeric IDs are ignored.
func (g *idGenerator) observe(id string) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return
	}
	if n > g.last {
		g.last = n
	}
}
