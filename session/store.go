package session

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TTL sesi login, cookie sid ikut umur yang sama.
const TTL = 7 * 24 * time.Hour

var ErrNotFound = errors.New("session tidak ditemukan atau sudah kadaluarsa")

// Store -> abstraksi penyimpanan sesi (sid -> userID). Backend apapun
// (memory, database) cukup memenuhi interface ini.
type Store interface {
	// Create membuat sesi baru untuk user dan mengembalikan sid-nya.
	Create(userID uint) (string, error)
	// Get mengembalikan userID pemilik sid, ErrNotFound jika tidak
	// ada atau kadaluarsa.
	Get(sid string) (uint, error)
	// Delete menghapus sesi (logout).
	Delete(sid string) error
}

// MemoryStore -> penyimpanan sesi in-memory dengan map + mutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memorySession
}

type memorySession struct {
	userID    uint
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memorySession)}
}

func (s *MemoryStore) Create(userID uint) (string, error) {
	sid := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memorySession{
		userID:    userID,
		expiresAt: time.Now().Add(TTL),
	}
	return sid, nil
}

func (s *MemoryStore) Get(sid string) (uint, error) {
	s.mu.RLock()
	sess, ok := s.sessions[sid]
	s.mu.RUnlock()

	if !ok {
		return 0, ErrNotFound
	}
	if time.Now().After(sess.expiresAt) {
		// Hapus sesi kadaluarsa secara lazy
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
		return 0, ErrNotFound
	}
	return sess.userID, nil
}

func (s *MemoryStore) Delete(sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
