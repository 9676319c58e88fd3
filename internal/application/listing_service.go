package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bookbridge/bookbridge/internal/domain/entity"
	repo "github.com/bookbridge/bookbridge/internal/domain/repository"
	"github.com/bookbridge/bookbridge/pkg/helpers"
	"github.com/bookbridge/bookbridge/pkg/mailer"
)

var (
	// ErrMissingImage is returned when a post or donation arrives without
	// an attached image file.
	ErrMissingImage = errors.New("no image attached")
	// ErrListingNotFound is returned when a listing id does not resolve.
	ErrListingNotFound = errors.New("listing not found")
	// ErrUnknownNGO is returned when a donation names an NGO that is not
	// in the directory.
	ErrUnknownNGO = errors.New("unknown NGO")
)

// ImageUpload is an attached image file ready to stream to storage.
type ImageUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
}

// ListingInput carries the post-book form fields.
type ListingInput struct {
	Title       string
	Author      string
	Price       float64
	Description string
	Location    string
}

// ListingService implements listing creation, the location-filtered query
// path and full-text search.
type ListingService struct {
	Repo     repo.ListingRepository
	Users    repo.UserRepository
	Uploader helpers.Uploader
	Logger   *logrus.Logger
	ES       *elasticsearch.Client // optional; nil disables search/indexing
	ESIndex  string
	Pub      *helpers.RabbitPublisher // optional; nil disables notifications
}

func NewListingService(r repo.ListingRepository, users repo.UserRepository, up helpers.Uploader, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, pub *helpers.RabbitPublisher) *ListingService {
	return &ListingService{Repo: r, Users: users, Uploader: up, Logger: logger, ES: es, ESIndex: esIndex, Pub: pub}
}

// PostBook uploads the image and persists a sale listing owned by sellerID.
func (s *ListingService) PostBook(ctx context.Context, sellerID string, in ListingInput, img *ImageUpload) (*entity.Listing, error) {
	url, key, err := s.uploadImage(ctx, sellerID, img)
	if err != nil {
		return nil, err
	}
	l := &entity.Listing{
		Title:       in.Title,
		Author:      in.Author,
		Price:       in.Price,
		Description: in.Description,
		Location:    in.Location,
		ImageURL:    url,
		ImageKey:    key,
		SellerID:    sellerID,
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.indexListing(ctx, l)
	return l, nil
}

// DonateBook persists a donation listing for the named NGO. The price is
// zero and the donation flag set regardless of input; the NGO's directory
// location becomes the listing location.
func (s *ListingService) DonateBook(ctx context.Context, sellerID string, title, author, description, ngoName string, img *ImageUpload) (*entity.Listing, error) {
	ngo := entity.FindNGO(ngoName)
	if ngo == nil {
		return nil, ErrUnknownNGO
	}
	url, key, err := s.uploadImage(ctx, sellerID, img)
	if err != nil {
		return nil, err
	}
	l := &entity.Listing{
		Title:       title,
		Author:      author,
		Price:       0,
		Description: description,
		Location:    ngo.Location,
		ImageURL:    url,
		ImageKey:    key,
		SellerID:    sellerID,
		IsDonated:   true,
	}
	if err := s.Repo.Create(ctx, l); err != nil {
		return nil, err
	}
	s.indexListing(ctx, l)

	if s.Pub != nil && s.Users != nil {
		if u, err := s.Users.GetByID(ctx, sellerID); err == nil {
			s.enqueueMail(ctx, mailer.EmailJob{
				To:      u.Email,
				Subject: "Thank you for your donation",
				Text:    fmt.Sprintf("Your copy of %q is now listed for %s (%s).", l.Title, ngo.Name, ngo.Location),
			})
		}
	}
	return l, nil
}

// ListBooks returns listings whose location contains locationFilter
// (case-insensitive); an empty filter returns everything, in creation order.
func (s *ListingService) ListBooks(ctx context.Context, locationFilter string) ([]entity.ListingWithSeller, error) {
	return s.Repo.List(ctx, locationFilter)
}

// GetListing resolves a listing with its seller contact for the detail page.
func (s *ListingService) GetListing(ctx context.Context, id string) (*entity.ListingWithSeller, error) {
	l, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *ListingService) uploadImage(ctx context.Context, sellerID string, img *ImageUpload) (url, key string, err error) {
	if img == nil || img.Reader == nil {
		return "", "", ErrMissingImage
	}
	ext := strings.ToLower(filepath.Ext(img.Filename))
	key = filepath.ToSlash(filepath.Join("listings", sellerID, uuid.NewString()+ext))
	url, err = s.Uploader.Upload(ctx, key, img.ContentType, img.Reader)
	if err != nil {
		return "", "", err
	}
	return url, key, nil
}

func (s *ListingService) indexListing(ctx context.Context, l *entity.Listing) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         l.ID,
		"title":      l.Title,
		"author":     l.Author,
		"price":      l.Price,
		"location":   l.Location,
		"is_donated": l.IsDonated,
		"created_at": l.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESIndex, DocumentID: l.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("listing_id", l.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("listing_id", l.ID).Warn("es index response error")
	}
}

// Search performs a multi_match search over title, author and location.
func (s *ListingService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "author", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *ListingService) enqueueMail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("failed to enqueue email")
	}
}
