package gateway

import (
	"context"

	"storefront/internal/domain"
)

func (g *Gateway) Addresses(ctx context.Context, userID string) (Result[[]domain.Address], error) {
	return read(ctx, g, "Addresses", func(s Store) ([]domain.Address, error) {
		return s.Addresses(ctx, userID)
	})
}

// SaveAddress creates the address when in.ID is empty and updates it
// otherwise.
func (g *Gateway) SaveAddress(ctx context.Context, in AddressInput) (Result[*domain.Address], error) {
	if err := check(in); err != nil {
		return Result[*domain.Address]{}, err
	}
	a := in.address()
	if a.ID == "" {
		return write(ctx, g, "CreateAddress", func(s Store) (*domain.Address, error) {
			return s.CreateAddress(ctx, a)
		})
	}
	return write(ctx, g, "UpdateAddress", func(s Store) (*domain.Address, error) {
		return s.UpdateAddress(ctx, a)
	})
}

func (g *Gateway) DeleteAddress(ctx context.Context, userID, id string) (Result[struct{}], error) {
	return write(ctx, g, "DeleteAddress", func(s Store) (struct{}, error) {
		return noValue(s.DeleteAddress(ctx, userID, id))
	})
}

func (g *Gateway) SetDefaultAddress(ctx context.Context, userID, id string) (Result[struct{}], error) {
	return write(ctx, g, "SetDefaultAddress", func(s Store) (struct{}, error) {
		return noValue(s.SetDefaultAddress(ctx, userID, id))
	})
}
