package service

import (
	"context"
	"fmt"
	"sort"

	"artisanhub/internal/model"
	"artisanhub/internal/repository"
)

const (
	// DefaultPerPage is used when a page is requested without a size.
	DefaultPerPage = 10
)

// Listing is one page of the artisan directory.
type Listing struct {
	Artisans    []model.Artisan
	TotalPages  int
	CurrentPage int
}

// ListingService serves the artisan directory, sorted by the owning user's
// username in ascending byte order.
type ListingService interface {
	// ListAll returns the full sorted directory.
	ListAll(ctx context.Context) ([]model.Artisan, error)
	// ListPage returns one page. Pages are 1-based; out-of-range pages
	// yield a short or empty slice, never an error.
	ListPage(ctx context.Context, page, perPage int) (*Listing, error)
}

type listingService struct {
	artisans   repository.ArtisanRepository
	maxPerPage int
}

// NewListingService creates a listing service. maxPerPage bounds the page
// size a caller may request.
func NewListingService(artisans repository.ArtisanRepository, maxPerPage int) ListingService {
	return &listingService{artisans: artisans, maxPerPage: maxPerPage}
}

func (s *listingService) sortedArtisans(ctx context.Context) ([]model.Artisan, error) {
	artisans, err := s.artisans.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list artisans: %w", err)
	}
	sort.Slice(artisans, func(i, j int) bool {
		return artisans[i].User.Username < artisans[j].User.Username
	})
	return artisans, nil
}

func (s *listingService) ListAll(ctx context.Context) ([]model.Artisan, error) {
	return s.sortedArtisans(ctx)
}

func (s *listingService) ListPage(ctx context.Context, page, perPage int) (*Listing, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if perPage > s.maxPerPage {
		perPage = s.maxPerPage
	}

	artisans, err := s.sortedArtisans(ctx)
	if err != nil {
		return nil, err
	}

	start := (page - 1) * perPage
	if start > len(artisans) {
		start = len(artisans)
	}
	end := start + perPage
	if end > len(artisans) {
		end = len(artisans)
	}

	return &Listing{
		Artisans:    artisans[start:end],
		TotalPages:  (len(artisans) + perPage - 1) / perPage,
		CurrentPage: page,
	}, nil
}
