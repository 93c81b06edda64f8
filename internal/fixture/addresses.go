package fixture

import (
	"context"

	"storefront/internal/domain"
)

// Addresses lists the user's address book with the default first.
func (s *Store) Addresses(_ context.Context, userID string) ([]domain.Address, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Address{}
	for _, a := range s.addresses {
		if a.UserID != userID {
			continue
		}
		if a.IsDefault {
			out = append([]domain.Address{a}, out...)
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// CreateAddress adds an address. The first address a user saves becomes the
// default; marking a new one default clears the flag on the others.
func (s *Store) CreateAddress(_ context.Context, a domain.Address) (*domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasAddresses(a.UserID) {
		a.IsDefault = true
	}
	if a.IsDefault {
		s.clearDefault(a.UserID)
	}
	now := s.now()
	a.ID = s.newID()
	a.CreatedAt = now
	a.UpdatedAt = now
	s.addresses = append(s.addresses, a)
	return &a, nil
}

func (s *Store) UpdateAddress(_ context.Context, a domain.Address) (*domain.Address, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.addresses {
		if existing.ID != a.ID || existing.UserID != a.UserID {
			continue
		}
		if a.IsDefault {
			s.clearDefault(a.UserID)
		}
		existing.Street = a.Street
		existing.City = a.City
		existing.State = a.State
		existing.PostalCode = a.PostalCode
		existing.IsDefault = existing.IsDefault || a.IsDefault
		existing.UpdatedAt = s.now()
		s.addresses[i] = existing
		return &existing, nil
	}
	return nil, domain.ErrNotFound
}

func (s *Store) DeleteAddress(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.addresses {
		if a.ID == id && a.UserID == userID {
			s.addresses = append(s.addresses[:i], s.addresses[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) SetDefaultAddress(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.addresses {
		if a.ID == id && a.UserID == userID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return domain.ErrNotFound
	}
	s.clearDefault(userID)
	s.addresses[idx].IsDefault = true
	s.addresses[idx].UpdatedAt = s.now()
	return nil
}

func (s *Store) hasAddresses(userID string) bool {
	for _, a := range s.addresses {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

func (s *Store) clearDefault(userID string) {
	for i := range s.addresses {
		if s.addresses[i].UserID == userID {
			s.addresses[i].IsDefault = false
		}
	}
}
