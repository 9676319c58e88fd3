package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookbridge/bookbridge/internal/domain/entity"
	"github.com/bookbridge/bookbridge/internal/domain/repository"
)

type ListingRepository struct {
	pool *pgxpool.Pool
}

func NewListingRepository(pool *pgxpool.Pool) *ListingRepository {
	return &ListingRepository{pool: pool}
}

func (r *ListingRepository) Create(ctx context.Context, l *entity.Listing) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO listings (title, author, price, description, location, image_url, image_key, seller_id, is_donated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`, l.Title, l.Author, l.Price, l.Description, l.Location, l.ImageURL, l.ImageKey, l.SellerID, l.IsDonated)

	return row.Scan(&l.ID, &l.CreatedAt)
}

// listingColumns joins each listing to its seller's public fields. The join
// is LEFT so a dangling seller reference still yields the listing, with
// empty seller fields.
const listingColumns = `
	SELECT l.id, l.title, l.author, l.price, l.description, l.location,
	       l.image_url, l.image_key, l.seller_id, l.is_donated, l.created_at,
	       COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM listings l
	LEFT JOIN users u ON u.id = l.seller_id
`

func (r *ListingRepository) List(ctx context.Context, locationFilter string) ([]entity.ListingWithSeller, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if locationFilter != "" {
		rows, err = r.pool.Query(ctx, listingColumns+`
			WHERE l.location ILIKE '%' || $1 || '%'
			ORDER BY l.created_at ASC
		`, locationFilter)
	} else {
		rows, err = r.pool.Query(ctx, listingColumns+`
			ORDER BY l.created_at ASC
		`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.ListingWithSeller, 0)
	for rows.Next() {
		var l entity.ListingWithSeller
		if err := scanListing(rows, &l); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *ListingRepository) GetByID(ctx context.Context, id string) (*entity.ListingWithSeller, error) {
	l := &entity.ListingWithSeller{}
	// id arrives as a path parameter; comparing on the text form keeps a
	// malformed id a not-found instead of a cast error.
	row := r.pool.QueryRow(ctx, listingColumns+`WHERE l.id::text = $1`, id)
	if err := scanListing(row, l); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func scanListing(row pgx.Row, l *entity.ListingWithSeller) error {
	return row.Scan(
		&l.ID, &l.Title, &l.Author, &l.Price, &l.Description, &l.Location,
		&l.ImageURL, &l.ImageKey, &l.SellerID, &l.IsDonated, &l.CreatedAt,
		&l.Seller.Name, &l.Seller.Email,
	)
}

var _ repository.ListingRepository = (*ListingRepository)(nil)
