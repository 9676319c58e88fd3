package entity

import (
	"time"
)

// Listing is a book offered for sale or donation.
// A donation is a listing with Price forced to zero and IsDonated set.
// SellerID is a non-owning reference; the seller row may be gone by the
// time the listing is displayed.
type Listing struct {
	ID          string
	Title       string
	Author      string
	Price       float64
	Description string
	Location    string
	ImageURL    string
	ImageKey    string // storage object key, kept for potential future deletion
	SellerID    string
	IsDonated   bool
	CreatedAt   time.Time
}

// ListingWithSeller pairs a listing with the seller's public fields as
// resolved at query time. Seller is zero-valued when the reference dangles.
type ListingWithSeller struct {
	Listing
	Seller PublicProfile
}
