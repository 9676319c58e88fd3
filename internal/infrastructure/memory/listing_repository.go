package memory

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bookbridge/bookbridge/internal/domain/entity"
	"github.com/bookbridge/bookbridge/internal/domain/repository"
)

// ListingRepository keeps listings in insertion order, which doubles as
// creation order for the List contract. Seller references are resolved
// against a UserRepository the way the SQL LEFT JOIN does: a dangling
// reference yields empty seller fields, not an error.
type ListingRepository struct {
	mu       sync.RWMutex
	seq      int
	listings []entity.Listing
	users    *UserRepository
}

func NewListingRepository(users *UserRepository) *ListingRepository {
	return &ListingRepository{users: users}
}

func (r *ListingRepository) Create(_ context.Context, l *entity.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	l.ID = "listing-" + strconv.Itoa(r.seq)
	l.CreatedAt = time.Now()
	r.listings = append(r.listings, *l)
	return nil
}

func (r *ListingRepository) List(ctx context.Context, locationFilter string) ([]entity.ListingWithSeller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	filter := strings.ToLower(locationFilter)
	out := make([]entity.ListingWithSeller, 0)
	for _, l := range r.listings {
		if filter != "" && !strings.Contains(strings.ToLower(l.Location), filter) {
			continue
		}
		out = append(out, r.withSeller(ctx, l))
	}
	return out, nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*entity.ListingWithSeller, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, l := range r.listings {
		if l.ID == id {
			ls := r.withSeller(ctx, l)
			return &ls, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *ListingRepository) withSeller(ctx context.Context, l entity.Listing) entity.ListingWithSeller {
	ls := entity.ListingWithSeller{Listing: l}
	if u, err := r.users.GetByID(ctx, l.SellerID); err == nil {
		ls.Seller = entity.PublicProfile{Name: u.Name, Email: u.Email}
	}
	return ls
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
