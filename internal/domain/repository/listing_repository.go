package repository

import (
	"context"

	"github.com/bookbridge/bookbridge/internal/domain/entity"
)

// ListingRepository defines the interface for listing persistence and the
// location-filtered query path.
//
// List matches locationFilter as a case-insensitive substring of the
// listing location; an empty filter returns everything. Results come back
// in creation order with each seller reference resolved to the owner's
// public fields (zero-valued when the reference dangles).
type ListingRepository interface {
	Create(ctx context.Context, l *entity.Listing) error
	List(ctx context.Context, locationFilter string) ([]entity.ListingWithSeller, error)
	GetByID(ctx context.Context, id string) (*entity.ListingWithSeller, error)
}
