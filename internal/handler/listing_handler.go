package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/model"
	"artisanhub/internal/service"
)

// ListingHandler handles the artisan directory endpoint.
type ListingHandler struct {
	listings service.ListingService
}

// NewListingHandler creates a new listing handler.
func NewListingHandler(listings service.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// ListingResponse is one page of the artisan directory.
type ListingResponse struct {
	Artisans    []ArtisanResponse `json:"artisans"`
	TotalPages  int               `json:"total_pages"`
	CurrentPage int               `json:"current_page"`
}

// List godoc
// @Summary List artisans
// @Description Returns the full sorted directory, or one page of it when a
// @Description page query parameter is present.
// @Tags artisans
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)"
// @Param per_page query int false "Page size"
// @Success 200 {object} ListingResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /all_artisans [get]
func (h *ListingHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	pageParam := c.QueryParam("page")
	if pageParam == "" {
		if _, present := c.QueryParams()["page"]; !present {
			artisans, err := h.listings.ListAll(ctx)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			return c.JSON(http.StatusOK, artisanResponses(artisans))
		}
	}

	page := atoiDefault(pageParam, 1)
	perPage := atoiDefault(c.QueryParam("per_page"), service.DefaultPerPage)

	listing, err := h.listings.ListPage(ctx, page, perPage)
	if err != nil {
		httpErr := apperrors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, ListingResponse{
		Artisans:    artisanResponses(listing.Artisans),
		TotalPages:  listing.TotalPages,
		CurrentPage: listing.CurrentPage,
	})
}

func artisanResponses(artisans []model.Artisan) []ArtisanResponse {
	out := make([]ArtisanResponse, 0, len(artisans))
	for i := range artisans {
		out = append(out, newArtisanResponse(&artisans[i]))
	}
	return out
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return def
}
