package service

import "github.com/mmcdole/scrub/internal/store"

// SessionService manages stored session data
type SessionService struct {
	resumeDir string
}

// NewSessionService creates a new SessionService
func NewSessionService(resumeDir string) *SessionService {
	return &SessionService{resumeDir: resumeDir}
}

// ClearHistory removes every stored resume position. Only the store's own
// database file is deleted. The store must be closed first.
func (s *SessionService) ClearHistory() error {
	return store.Remove(s.resumeDir)
}
