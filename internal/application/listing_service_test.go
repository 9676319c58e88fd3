package application_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbridge/bookbridge/internal/application"
	"github.com/bookbridge/bookbridge/internal/domain/entity"
	"github.com/bookbridge/bookbridge/internal/infrastructure/memory"
)

type listingFixture struct {
	svc      *application.ListingService
	users    *memory.UserRepository
	uploader *memory.Uploader
}

func newListingFixture() *listingFixture {
	users := memory.NewUserRepository()
	uploader := memory.NewUploader()
	repo := memory.NewListingRepository(users)
	svc := application.NewListingService(repo, users, uploader, nil, nil, "", nil)
	return &listingFixture{svc: svc, users: users, uploader: uploader}
}

func (f *listingFixture) seller(t *testing.T, name, email string) *entity.User {
	t.Helper()
	u := &entity.User{Name: name, Email: email, Password: "x"}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

func testImage() *application.ImageUpload {
	return &application.ImageUpload{
		Reader:      strings.NewReader("fake-jpeg-bytes"),
		Filename:    "cover.jpg",
		ContentType: "image/jpeg",
	}
}

func TestPostBook(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture()
	seller := f.seller(t, "A", "a@example.com")

	l, err := f.svc.PostBook(ctx, seller.ID, application.ListingInput{
		Title:       "The Alchemist",
		Author:      "Paulo Coelho",
		Price:       150,
		Description: "good condition",
		Location:    "Sector 62, Noida",
	}, testImage())
	require.NoError(t, err)

	assert.NotEmpty(t, l.ID)
	assert.Equal(t, seller.ID, l.SellerID)
	assert.False(t, l.IsDonated)
	assert.Equal(t, 150.0, l.Price)
	assert.NotEmpty(t, l.ImageURL)
	require.NotEmpty(t, l.ImageKey)
	assert.True(t, strings.HasPrefix(l.ImageKey, "listings/"+seller.ID+"/"))
	assert.True(t, strings.HasSuffix(l.ImageKey, ".jpg"))
	assert.Contains(t, f.uploader.Objects, l.ImageKey)
}

func TestPostBookMissingImage(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture()
	seller := f.seller(t, "A", "a@example.com")

	_, err := f.svc.PostBook(ctx, seller.ID, application.ListingInput{
		Title:    "The Alchemist",
		Author:   "Paulo Coelho",
		Location: "Noida",
	}, nil)
	assert.ErrorIs(t, err, application.ErrMissingImage)

	listings, err := f.svc.ListBooks(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, listings)
}

func TestDonateBook(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture()
	seller := f.seller(t, "A", "a@example.com")

	ngo := entity.NGODirectory[0]
	l, err := f.svc.DonateBook(ctx, seller.ID, "Wings of Fire", "A.P.J. Abdul Kalam", "for kids", ngo.Name, testImage())
	require.NoError(t, err)

	assert.True(t, l.IsDonated)
	assert.Zero(t, l.Price)
	assert.Equal(t, ngo.Location, l.Location)
	assert.Equal(t, seller.ID, l.SellerID)
}

func TestDonateBookUnknownNGO(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture()
	seller := f.seller(t, "A", "a@example.com")

	_, err := f.svc.DonateBook(ctx, seller.ID, "Wings of Fire", "A.P.J. Abdul Kalam", "", "Nonexistent Trust", testImage())
	assert.ErrorIs(t, err, application.ErrUnknownNGO)
}

func TestDonateBookMissingImage(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture()
	seller := f.seller(t, "A", "a@example.com")

	_, err := f.svc.DonateBook(ctx, seller.ID, "Wings of Fire", "A.P.J. Abdul Kalam", "", entity.NGODirectory[0].Name, nil)
	assert.ErrorIs(t, err, application.ErrMissingImage)
}

func TestGetListing(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture()
	seller := f.seller(t, "A", "a@example.com")

	created, err := f.svc.PostBook(ctx, seller.ID, application.ListingInput{
		Title:    "Clean Code",
		Author:   "Robert C. Martin",
		Price:    350,
		Location: "Delhi",
	}, testImage())
	require.NoError(t, err)

	got, err := f.svc.GetListing(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Clean Code", got.Title)
	assert.Equal(t, "A", got.Seller.Name)
	assert.Equal(t, "a@example.com", got.Seller.Email)

	_, err = f.svc.GetListing(ctx, "listing-999")
	assert.ErrorIs(t, err, application.ErrListingNotFound)
}

func TestGetListingDanglingSeller(t *testing.T) {
	ctx := context.Background()
	f := newListingFixture()

	// Seller id that never existed; the listing still renders, with an
	// empty seller profile.
	l, err := f.svc.PostBook(ctx, "user-gone", application.ListingInput{
		Title:    "Orphaned",
		Author:   "Unknown",
		Location: "Noida",
	}, testImage())
	require.NoError(t, err)

	got, err := f.svc.GetListing(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Seller.Name)
	assert.Empty(t, got.Seller.Email)
}

func TestSearchWithoutES(t *testing.T) {
	f := newListingFixture()
	hits, err := f.svc.Search(context.Background(), "alchemist", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}
