package service

import (
	"context"
	"fmt"

	"github.com/pkordes/tripscout/internal/domain"
	"github.com/pkordes/tripscout/internal/store"
)

// SessionService manages the current trip and the planned/actual mode.
// None of this is persisted.
type SessionService struct {
	store SessionStore
}

func NewSessionService(s SessionStore) *SessionService {
	return &SessionService{store: s}
}

func (s *SessionService) Get(_ context.Context) store.Session {
	return s.store.Session()
}

// SelectTrip makes a trip current. Mode follows the trip's status.
func (s *SessionService) SelectTrip(_ context.Context, id string) (store.Session, error) {
	if !s.store.LoadTrip(id) {
		return store.Session{}, fmt.Errorf("service.SessionService.SelectTrip: %w", domain.ErrNotFound)
	}
	return s.store.Session(), nil
}

func (s *SessionService) Clear(_ context.Context) store.Session {
	s.store.ClearCurrentTrip()
	return s.store.Session()
}

func (s *SessionService) SetActualMode(_ context.Context, actual bool) store.Session {
	s.store.SetActualMode(actual)
	return s.store.Session()
}
