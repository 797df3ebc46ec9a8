package router

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"artisanhub/internal/auth"
	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/handler"
	"artisanhub/internal/model"
	"artisanhub/internal/service"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, username, email, password, role string) (*model.User, error) {
	args := m.Called(ctx, username, email, password, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (string, string, *model.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(2) == nil {
		return args.String(0), args.String(1), nil, args.Error(3)
	}
	return args.String(0), args.String(1), args.Get(2).(*model.User), args.Error(3)
}

func (m *MockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, refreshToken string) error {
	args := m.Called(ctx, refreshToken)
	return args.Error(0)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, user *model.User) (*model.Artisan, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artisan), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, user *model.User, upd service.ProfileUpdate, picture *multipart.FileHeader) (*model.Artisan, error) {
	args := m.Called(ctx, user, upd, picture)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artisan), args.Error(1)
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) ListAll(ctx context.Context) ([]model.Artisan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Artisan), args.Error(1)
}

func (m *MockListingService) ListPage(ctx context.Context, page, perPage int) (*service.Listing, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Listing), args.Error(1)
}

type MockLocationService struct {
	mock.Mock
}

func (m *MockLocationService) Locate(ctx context.Context, user *model.User) (float64, float64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(float64), args.Get(1).(float64), args.Error(2)
}

// fixture wires a full echo instance with mocked services behind the real
// route table and middleware chain.
type fixture struct {
	e         *echo.Echo
	jwt       *auth.JWTService
	users     *MockUserRepository
	profiles  *MockProfileService
	listings  *MockListingService
	locations *MockLocationService
}

func newFixture() *fixture {
	f := &fixture{
		e:         echo.New(),
		jwt:       auth.NewJWTService("test-secret"),
		users:     new(MockUserRepository),
		profiles:  new(MockProfileService),
		listings:  new(MockListingService),
		locations: new(MockLocationService),
	}
	Register(
		f.e,
		f.jwt,
		f.users,
		handler.NewAuthHandler(new(MockAuthService)),
		handler.NewArtisanHandler(f.profiles),
		handler.NewListingHandler(f.listings),
		handler.NewLocationHandler(f.locations),
	)
	return f
}

func (f *fixture) tokenFor(t *testing.T, user *model.User) string {
	t.Helper()
	token, err := f.jwt.GenerateAccessToken(user.ID, user.Username, user.Role)
	require.NoError(t, err)
	f.users.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	return token
}

func (f *fixture) request(method, target, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, body)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func artisanUser() *model.User {
	return &model.User{ID: 3, Username: "ada", Email: "ada@example.com", Role: model.RoleArtisan}
}

func clientUser() *model.User {
	return &model.User{ID: 5, Username: "chidi", Email: "chidi@example.com", Role: model.RoleClient}
}

func TestRouter_RejectsMissingToken(t *testing.T) {
	f := newFixture()

	for _, target := range []string{"/api/artisan", "/api/all_artisans", "/api/location"} {
		rec := f.request(http.MethodGet, target, "", nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "User not authenticated")
	}
}

func TestRouter_RejectsForgedToken(t *testing.T) {
	f := newFixture()

	forged, err := auth.NewJWTService("other-secret").GenerateAccessToken(3, "ada", model.RoleArtisan)
	require.NoError(t, err)

	rec := f.request(http.MethodGet, "/api/artisan", forged, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RejectsTokenForDeletedUser(t *testing.T) {
	f := newFixture()

	token, err := f.jwt.GenerateAccessToken(99, "ghost", model.RoleArtisan)
	require.NoError(t, err)
	f.users.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	rec := f.request(http.MethodGet, "/api/artisan", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not authenticated")
}

func TestRouter_PreflightNeedsNoToken(t *testing.T) {
	f := newFixture()

	for _, target := range []string{"/api/artisan", "/api/artisan/ada", "/api/all_artisans", "/api/location"} {
		rec := f.request(http.MethodOptions, target, "", nil, "")
		assert.Equal(t, http.StatusOK, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "Preflight request")
	}
}

func TestRouter_ArtisanRoutesRejectClients(t *testing.T) {
	f := newFixture()
	token := f.tokenFor(t, clientUser())

	for _, target := range []string{"/api/artisan", "/api/location"} {
		rec := f.request(http.MethodGet, target, token, nil, "")
		assert.Equal(t, http.StatusForbidden, rec.Code, target)
		assert.Contains(t, rec.Body.String(), "User is not an artisan")
	}
}

func TestRouter_ListingRejectsArtisans(t *testing.T) {
	f := newFixture()
	token := f.tokenFor(t, artisanUser())

	rec := f.request(http.MethodGet, "/api/all_artisans", token, nil, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "User is not a client")
}

func TestRouter_ProfileIsOwnerOnly(t *testing.T) {
	f := newFixture()
	token := f.tokenFor(t, artisanUser())

	rec := f.request(http.MethodGet, "/api/artisan/somebody-else", token, nil, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not authenticated")
}

func TestRouter_GetOwnProfile(t *testing.T) {
	f := newFixture()
	user := artisanUser()
	token := f.tokenFor(t, user)

	f.profiles.On("GetProfile", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.ID == user.ID
	})).Return(&model.Artisan{
		UserID:         user.ID,
		User:           *user,
		Name:           "ada",
		Specialization: "Plumbing",
		HourlyRate:     decimal.RequireFromString("25.50"),
	}, nil)

	rec := f.request(http.MethodGet, "/api/artisan/ada", token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"ada"`)
	assert.Contains(t, rec.Body.String(), `"salary_per_hour":"25.5"`)
	f.profiles.AssertExpectations(t)
}

func TestRouter_UpdateProfileValidatesForm(t *testing.T) {
	f := newFixture()
	token := f.tokenFor(t, artisanUser())

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	// email missing on purpose
	require.NoError(t, w.WriteField("username", "ada"))
	require.NoError(t, w.Close())

	rec := f.request(http.MethodPost, "/api/artisan", token, &body, w.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid form data")
	assert.Contains(t, rec.Body.String(), `"email"`)
	f.profiles.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRouter_UpdateProfileMinimalForm(t *testing.T) {
	f := newFixture()
	user := artisanUser()
	token := f.tokenFor(t, user)

	f.profiles.On("UpdateProfile", mock.Anything, mock.Anything, mock.MatchedBy(func(upd service.ProfileUpdate) bool {
		return upd.Username == "ada" && upd.Email == "Ada@Example.com"
	}), (*multipart.FileHeader)(nil)).Return(&model.Artisan{UserID: user.ID, User: *user, Name: "ada"}, nil)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("username", "ada"))
	require.NoError(t, w.WriteField("email", "Ada@Example.com"))
	require.NoError(t, w.Close())

	rec := f.request(http.MethodPost, "/api/artisan", token, &body, w.FormDataContentType())
	assert.Equal(t, http.StatusOK, rec.Code)
	f.profiles.AssertExpectations(t)
}

func TestRouter_ListingWithoutPageReturnsEverything(t *testing.T) {
	f := newFixture()
	token := f.tokenFor(t, clientUser())

	f.listings.On("ListAll", mock.Anything).Return([]model.Artisan{
		{User: model.User{Username: "ada"}},
		{User: model.User{Username: "bola"}},
	}, nil)

	rec := f.request(http.MethodGet, "/api/all_artisans", token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"ada"`)
	assert.NotContains(t, rec.Body.String(), "total_pages")
	f.listings.AssertExpectations(t)
}

func TestRouter_ListingWithPageReturnsOnePage(t *testing.T) {
	f := newFixture()
	token := f.tokenFor(t, clientUser())

	f.listings.On("ListPage", mock.Anything, 2, 3).Return(&service.Listing{
		Artisans:    []model.Artisan{{User: model.User{Username: "dayo"}}},
		TotalPages:  3,
		CurrentPage: 2,
	}, nil)

	rec := f.request(http.MethodGet, "/api/all_artisans?page=2&per_page=3", token, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_pages":3`)
	assert.Contains(t, rec.Body.String(), `"current_page":2`)
	f.listings.AssertExpectations(t)
}

func TestRouter_LocationEndpoint(t *testing.T) {
	t.Run("returns refreshed coordinates", func(t *testing.T) {
		f := newFixture()
		token := f.tokenFor(t, artisanUser())
		f.locations.On("Locate", mock.Anything, mock.Anything).Return(6.455, 3.3841, nil)

		rec := f.request(http.MethodGet, "/api/location", token, nil, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"lat":6.455`)
		assert.Contains(t, rec.Body.String(), `"long":3.3841`)
	})

	t.Run("maps geocoder outages to a bad gateway", func(t *testing.T) {
		f := newFixture()
		token := f.tokenFor(t, artisanUser())
		f.locations.On("Locate", mock.Anything, mock.Anything).Return(0.0, 0.0, apperrors.ErrGeocodeUnavailable)

		rec := f.request(http.MethodGet, "/api/location", token, nil, "")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}
