package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	listingapp "github.com/bookbridge/bookbridge/internal/application"
	"github.com/bookbridge/bookbridge/internal/domain/entity"
	"github.com/bookbridge/bookbridge/internal/interface/middleware"
	"github.com/bookbridge/bookbridge/pkg/validation"
)

// ListingHandler serves the book pages: post, browse, detail, donate.
type ListingHandler struct {
	Svc    *listingapp.ListingService
	Logger *logrus.Logger
}

func NewListingHandler(svc *listingapp.ListingService, logger *logrus.Logger) *ListingHandler {
	return &ListingHandler{Svc: svc, Logger: logger}
}

type postBookForm struct {
	Title       string  `form:"title" binding:"required"`
	Author      string  `form:"author" binding:"required"`
	Price       float64 `form:"price" binding:"gte=0"`
	Description string  `form:"description"`
	Location    string  `form:"location" binding:"required"`
}

type donateBookForm struct {
	Title       string `form:"title" binding:"required"`
	Author      string `form:"author" binding:"required"`
	Description string `form:"description"`
	NGO         string `form:"ngo" binding:"required"`
}

func (h *ListingHandler) PostBookForm(c *gin.Context) {
	c.HTML(http.StatusOK, "post_book.html", gin.H{})
}

func (h *ListingHandler) PostBook(c *gin.Context) {
	var req postBookForm
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "post_book.html", gin.H{"Error": validation.Summary(err)})
		return
	}
	img, closeImg := attachedImage(c)
	defer closeImg()

	_, err := h.Svc.PostBook(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), listingapp.ListingInput{
		Title:       req.Title,
		Author:      req.Author,
		Price:       req.Price,
		Description: req.Description,
		Location:    req.Location,
	}, img)
	if err != nil {
		if errors.Is(err, listingapp.ErrMissingImage) {
			c.HTML(http.StatusBadRequest, "post_book.html", gin.H{"Error": "Please attach an image of the book."})
			return
		}
		h.Logger.WithError(err).Error("post book failed")
		c.HTML(http.StatusInternalServerError, "post_book.html", gin.H{"Error": "Error posting book. Try again."})
		return
	}
	c.HTML(http.StatusOK, "post_book.html", gin.H{"Message": "Book posted successfully!"})
}

func (h *ListingHandler) Books(c *gin.Context) {
	filter := c.Query("location")
	listings, err := h.Svc.ListBooks(c.Request.Context(), filter)
	if err != nil {
		h.Logger.WithError(err).Error("list books failed")
		c.HTML(http.StatusInternalServerError, "books.html", gin.H{"Filter": filter, "Listings": nil})
		return
	}
	c.HTML(http.StatusOK, "books.html", gin.H{"Filter": filter, "Listings": listings})
}

func (h *ListingHandler) Buy(c *gin.Context) {
	l, err := h.Svc.GetListing(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, listingapp.ErrListingNotFound) {
			c.HTML(http.StatusNotFound, "buy_book.html", gin.H{"Error": "Book not found"})
			return
		}
		h.Logger.WithError(err).Error("load book failed")
		c.HTML(http.StatusInternalServerError, "buy_book.html", gin.H{"Error": "Error loading book."})
		return
	}
	c.HTML(http.StatusOK, "buy_book.html", gin.H{"Listing": l})
}

func (h *ListingHandler) DonateBookForm(c *gin.Context) {
	c.HTML(http.StatusOK, "donate_book.html", gin.H{"NGOs": entity.NGODirectory})
}

func (h *ListingHandler) DonateBook(c *gin.Context) {
	var req donateBookForm
	if err := c.ShouldBind(&req); err != nil {
		c.HTML(http.StatusBadRequest, "donate_book.html", gin.H{"NGOs": entity.NGODirectory, "Error": validation.Summary(err)})
		return
	}
	img, closeImg := attachedImage(c)
	defer closeImg()

	_, err := h.Svc.DonateBook(c.Request.Context(), c.GetString(middleware.CtxUserIDKey),
		req.Title, req.Author, req.Description, req.NGO, img)
	if err != nil {
		switch {
		case errors.Is(err, listingapp.ErrMissingImage):
			c.HTML(http.StatusBadRequest, "donate_book.html", gin.H{"NGOs": entity.NGODirectory, "Error": "Please attach an image of the book."})
		case errors.Is(err, listingapp.ErrUnknownNGO):
			c.HTML(http.StatusBadRequest, "donate_book.html", gin.H{"NGOs": entity.NGODirectory, "Error": "Please pick an NGO from the list."})
		default:
			h.Logger.WithError(err).Error("donate book failed")
			c.HTML(http.StatusInternalServerError, "donate_book.html", gin.H{"NGOs": entity.NGODirectory, "Error": "Error donating book. Try again."})
		}
		return
	}
	c.HTML(http.StatusOK, "donate_book.html", gin.H{"NGOs": entity.NGODirectory, "Message": "Book donated successfully!"})
}

// attachedImage extracts the multipart image file, if one was sent. The
// returned cleanup is always safe to defer.
func attachedImage(c *gin.Context) (*listingapp.ImageUpload, func()) {
	hdr, err := c.FormFile("image")
	if err != nil {
		return nil, func() {}
	}
	f, err := hdr.Open()
	if err != nil {
		return nil, func() {}
	}
	return &listingapp.ImageUpload{
		Reader:      f,
		Filename:    hdr.Filename,
		ContentType: hdr.Header.Get("Content-Type"),
	}, func() { closeFile(f) }
}

func closeFile(f multipart.File) {
	_ = f.Close()
}
