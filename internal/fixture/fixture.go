// Package fixture holds the static sample data set used when the remote
// store is disabled or unreachable. Writes mutate the in-memory copy only and
// are lost when the process exits.
package fixture

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"storefront/internal/domain"
)

//go:embed fixtures.json
var snapshotJSON []byte

// Snapshot is the on-disk shape of the fixture set. Field names follow the
// remote store's row shape.
type Snapshot struct {
	Version   string            `json:"version"`
	User      domain.User       `json:"user"`
	Products  []domain.Product  `json:"products"`
	Reviews   []domain.Review   `json:"reviews"`
	CartItems []domain.CartItem `json:"cart_items"`
	Orders    []domain.Order    `json:"orders"`
	Addresses []domain.Address  `json:"addresses"`
}

// ParseSnapshot decodes the embedded fixture set. Each call returns an
// independent copy.
func ParseSnapshot() (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal(snapshotJSON, &snap); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return &snap, nil
}

// Store serves the fixture set. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	version   string
	user      domain.User
	products  []domain.Product
	reviews   []domain.Review
	cartItems []domain.CartItem
	orders    []domain.Order
	addresses []domain.Address
	now       func() time.Time
	newID     func() string
}

// Load seeds a Store from the embedded snapshot.
func Load() (*Store, error) {
	snap, err := ParseSnapshot()
	if err != nil {
		return nil, err
	}
	return NewStore(*snap), nil
}

func NewStore(snap Snapshot) *Store {
	return &Store{
		version:   snap.Version,
		user:      snap.User,
		products:  slices.Clone(snap.Products),
		reviews:   slices.Clone(snap.Reviews),
		cartItems: slices.Clone(snap.CartItems),
		orders:    slices.Clone(snap.Orders),
		addresses: slices.Clone(snap.Addresses),
		now:       func() time.Time { return time.Now().UTC() },
		newID:     newID,
	}
}

// Version identifies the snapshot the store was seeded from.
func (s *Store) Version() string {
	return s.version
}

// MockUser is the user that mock mode acts as when nobody is signed in.
func (s *Store) MockUser() domain.User {
	return s.user
}

func (s *Store) productByID(id string) (domain.Product, bool) {
	for _, p := range s.products {
		if p.ID == id {
			return cloneProduct(p), true
		}
	}
	return domain.Product{}, false
}

func cloneProduct(p domain.Product) domain.Product {
	p.Images = slices.Clone(p.Images)
	p.Sizes = slices.Clone(p.Sizes)
	return p
}
