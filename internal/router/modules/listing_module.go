package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/bookbridge/bookbridge/internal/container"
	handlers "github.com/bookbridge/bookbridge/internal/interface/http"
	"github.com/bookbridge/bookbridge/internal/interface/middleware"
)

// ListingModule wires the book pages and the JSON search API.
// Public: GET /books, GET /donate-book
// Login required: GET+POST /post-book, GET /buy/:id, POST /donate-book
type ListingModule struct {
	Listings *handlers.ListingHandler
	Search   *handlers.SearchHandler
}

func NewListingModule(l *handlers.ListingHandler, s *handlers.SearchHandler) *ListingModule {
	return &ListingModule{Listings: l, Search: s}
}

func (m *ListingModule) Register(pages, api *gin.RouterGroup) {
	pages.GET("/books", m.Listings.Books)
	pages.GET("/donate-book", m.Listings.DonateBookForm)

	auth := pages.Group("/")
	auth.Use(middleware.RequireLogin(container.GetSessions()))
	{
		auth.GET("/post-book", m.Listings.PostBookForm)
		auth.POST("/post-book", m.Listings.PostBook)
		auth.GET("/buy/:id", m.Listings.Buy)
		auth.POST("/donate-book", m.Listings.DonateBook)
	}

	api.GET("/health", m.Search.Health)

	sec := api.Group("/listings")
	sec.Use(middleware.APIAuth(container.GetSessions()))
	{
		sec.GET("/search", m.Search.Search)
	}
}
