package service

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "artisanhub/internal/errors"
	"artisanhub/internal/geocode"
	"artisanhub/internal/model"
	"artisanhub/internal/repository"
)

// MockArtisanRepository is a mock implementation of ArtisanRepository.
type MockArtisanRepository struct {
	mock.Mock
}

func (m *MockArtisanRepository) Update(ctx context.Context, artisan *model.Artisan) error {
	args := m.Called(ctx, artisan)
	return args.Error(0)
}

func (m *MockArtisanRepository) FindByUserID(ctx context.Context, userID uint) (*model.Artisan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artisan), args.Error(1)
}

func (m *MockArtisanRepository) FindOrCreateByUserID(ctx context.Context, userID uint) (*model.Artisan, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Artisan), args.Error(1)
}

func (m *MockArtisanRepository) ListAll(ctx context.Context) ([]model.Artisan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Artisan), args.Error(1)
}

// passthroughTx runs the callback directly against the given repositories,
// standing in for a real database transaction.
type passthroughTx struct {
	users    repository.UserRepository
	artisans repository.ArtisanRepository
}

func (t *passthroughTx) Do(ctx context.Context, fn func(ctx context.Context, users repository.UserRepository, artisans repository.ArtisanRepository) error) error {
	return fn(ctx, t.users, t.artisans)
}

type stubGeocoder struct {
	result *geocode.Result
	err    error
	calls  []string
}

func (g *stubGeocoder) Geocode(ctx context.Context, address string) (*geocode.Result, error) {
	g.calls = append(g.calls, address)
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

type stubPictureSaver struct {
	name string
	err  error
}

func (s *stubPictureSaver) Save(file *multipart.FileHeader) (string, error) {
	return s.name, s.err
}

func TestProfileService_GetProfile(t *testing.T) {
	user := &model.User{ID: 3, Username: "ada", Role: model.RoleArtisan}

	t.Run("returns the profile with the owning user attached", func(t *testing.T) {
		mockArtisans := new(MockArtisanRepository)
		mockArtisans.On("FindByUserID", mock.Anything, uint(3)).Return(&model.Artisan{ID: 9, UserID: 3}, nil)

		service := NewProfileService(new(MockUserRepository), mockArtisans, &passthroughTx{}, &stubPictureSaver{}, &stubGeocoder{})
		artisan, err := service.GetProfile(context.Background(), user)

		assert.NoError(t, err)
		assert.Equal(t, uint(9), artisan.ID)
		assert.Equal(t, "ada", artisan.User.Username)
		mockArtisans.AssertExpectations(t)
	})

	t.Run("no artisan row yet", func(t *testing.T) {
		mockArtisans := new(MockArtisanRepository)
		mockArtisans.On("FindByUserID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)

		service := NewProfileService(new(MockUserRepository), mockArtisans, &passthroughTx{}, &stubPictureSaver{}, &stubGeocoder{})
		_, err := service.GetProfile(context.Background(), user)

		assert.ErrorIs(t, err, apperrors.ErrArtisanNotFound)
	})
}

func TestProfileService_UpdateProfile(t *testing.T) {
	newUpdate := func() ProfileUpdate {
		return ProfileUpdate{
			Username:       "ada",
			Email:          "Ada@Example.COM",
			PhoneNumber:    "08030000000",
			Location:       "Lagos, Nigeria",
			Specialization: "Plumbing",
			Skills:         "pipes, fittings",
			HourlyRate:     decimal.RequireFromString("25.50"),
		}
	}

	t.Run("first update creates the artisan row and fills every field", func(t *testing.T) {
		user := &model.User{ID: 3, Username: "ada", Email: "old@example.com", Role: model.RoleArtisan}

		mockUsers := new(MockUserRepository)
		mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "ada@example.com" && u.Location == "Lagos, Nigeria"
		})).Return(nil)

		mockArtisans := new(MockArtisanRepository)
		mockArtisans.On("FindOrCreateByUserID", mock.Anything, uint(3)).Return(&model.Artisan{UserID: 3}, nil)
		mockArtisans.On("Update", mock.Anything, mock.AnythingOfType("*model.Artisan")).Return(nil)

		geocoder := &stubGeocoder{result: &geocode.Result{Latitude: 6.455, Longitude: 3.3841}}
		tx := &passthroughTx{users: mockUsers, artisans: mockArtisans}

		service := NewProfileService(mockUsers, mockArtisans, tx, &stubPictureSaver{}, geocoder)
		artisan, err := service.UpdateProfile(context.Background(), user, newUpdate(), nil)

		assert.NoError(t, err)
		assert.Equal(t, "ada", artisan.Name)
		assert.Equal(t, "ada@example.com", artisan.Email)
		assert.Equal(t, "Plumbing", artisan.Specialization)
		assert.Equal(t, "pipes, fittings", artisan.Skills)
		assert.True(t, artisan.HourlyRate.Equal(decimal.RequireFromString("25.50")))
		assert.Equal(t, 6.455, artisan.Latitude)
		assert.Equal(t, 3.3841, artisan.Longitude)
		assert.Equal(t, "ada@example.com", artisan.User.Email)
		assert.Equal(t, []string{"Lagos, Nigeria"}, geocoder.calls)
		mockUsers.AssertExpectations(t)
		mockArtisans.AssertExpectations(t)
	})

	t.Run("second update reuses the existing artisan row", func(t *testing.T) {
		user := &model.User{ID: 3, Username: "ada", Role: model.RoleArtisan}

		mockUsers := new(MockUserRepository)
		mockUsers.On("Update", mock.Anything, mock.Anything).Return(nil)

		mockArtisans := new(MockArtisanRepository)
		mockArtisans.On("FindOrCreateByUserID", mock.Anything, uint(3)).Return(&model.Artisan{ID: 42, UserID: 3}, nil)
		mockArtisans.On("Update", mock.Anything, mock.MatchedBy(func(a *model.Artisan) bool {
			return a.ID == 42
		})).Return(nil)

		tx := &passthroughTx{users: mockUsers, artisans: mockArtisans}
		service := NewProfileService(mockUsers, mockArtisans, tx, &stubPictureSaver{}, &stubGeocoder{result: &geocode.Result{}})

		artisan, err := service.UpdateProfile(context.Background(), user, newUpdate(), nil)

		assert.NoError(t, err)
		assert.Equal(t, uint(42), artisan.ID)
		mockArtisans.AssertExpectations(t)
	})

	t.Run("geocode failure keeps the previous coordinates", func(t *testing.T) {
		user := &model.User{ID: 3, Username: "ada", Role: model.RoleArtisan}

		mockUsers := new(MockUserRepository)
		mockUsers.On("Update", mock.Anything, mock.Anything).Return(nil)

		mockArtisans := new(MockArtisanRepository)
		mockArtisans.On("FindOrCreateByUserID", mock.Anything, uint(3)).
			Return(&model.Artisan{ID: 42, UserID: 3, Latitude: 9.05, Longitude: 7.49}, nil)
		mockArtisans.On("Update", mock.Anything, mock.Anything).Return(nil)

		tx := &passthroughTx{users: mockUsers, artisans: mockArtisans}
		service := NewProfileService(mockUsers, mockArtisans, tx, &stubPictureSaver{}, &stubGeocoder{err: assert.AnError})

		artisan, err := service.UpdateProfile(context.Background(), user, newUpdate(), nil)

		assert.NoError(t, err)
		assert.Equal(t, 9.05, artisan.Latitude)
		assert.Equal(t, 7.49, artisan.Longitude)
	})

	t.Run("uploaded picture replaces the user's image file", func(t *testing.T) {
		user := &model.User{ID: 3, Username: "ada", ImageFile: "default.jpg", Role: model.RoleArtisan}

		mockUsers := new(MockUserRepository)
		mockUsers.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.ImageFile == "a1b2c3d4.png"
		})).Return(nil)

		mockArtisans := new(MockArtisanRepository)
		mockArtisans.On("FindOrCreateByUserID", mock.Anything, uint(3)).Return(&model.Artisan{UserID: 3}, nil)
		mockArtisans.On("Update", mock.Anything, mock.Anything).Return(nil)

		tx := &passthroughTx{users: mockUsers, artisans: mockArtisans}
		service := NewProfileService(mockUsers, mockArtisans, tx, &stubPictureSaver{name: "a1b2c3d4.png"}, &stubGeocoder{result: &geocode.Result{}})

		picture := &multipart.FileHeader{Filename: "me.png", Size: 128}
		_, err := service.UpdateProfile(context.Background(), user, newUpdate(), picture)

		assert.NoError(t, err)
		assert.Equal(t, "a1b2c3d4.png", user.ImageFile)
		mockUsers.AssertExpectations(t)
	})

	t.Run("empty upload leaves the image file alone", func(t *testing.T) {
		user := &model.User{ID: 3, Username: "ada", ImageFile: "default.jpg", Role: model.RoleArtisan}

		mockUsers := new(MockUserRepository)
		mockUsers.On("Update", mock.Anything, mock.Anything).Return(nil)

		mockArtisans := new(MockArtisanRepository)
		mockArtisans.On("FindOrCreateByUserID", mock.Anything, uint(3)).Return(&model.Artisan{UserID: 3}, nil)
		mockArtisans.On("Update", mock.Anything, mock.Anything).Return(nil)

		tx := &passthroughTx{users: mockUsers, artisans: mockArtisans}
		service := NewProfileService(mockUsers, mockArtisans, tx, &stubPictureSaver{err: assert.AnError}, &stubGeocoder{result: &geocode.Result{}})

		picture := &multipart.FileHeader{Filename: "empty.png", Size: 0}
		_, err := service.UpdateProfile(context.Background(), user, newUpdate(), picture)

		assert.NoError(t, err)
		assert.Equal(t, "default.jpg", user.ImageFile)
	})

	t.Run("picture save failure fails the whole update", func(t *testing.T) {
		user := &model.User{ID: 3, Username: "ada", Role: model.RoleArtisan}

		service := NewProfileService(new(MockUserRepository), new(MockArtisanRepository), &passthroughTx{},
			&stubPictureSaver{err: assert.AnError}, &stubGeocoder{})

		picture := &multipart.FileHeader{Filename: "broken.png", Size: 12}
		_, err := service.UpdateProfile(context.Background(), user, newUpdate(), picture)

		assert.ErrorIs(t, err, apperrors.ErrUpdateFailed)
	})

	t.Run("transaction failure surfaces as a generic update error", func(t *testing.T) {
		user := &model.User{ID: 3, Username: "ada", Role: model.RoleArtisan}

		mockUsers := new(MockUserRepository)
		mockUsers.On("Update", mock.Anything, mock.Anything).Return(assert.AnError)

		tx := &passthroughTx{users: mockUsers, artisans: new(MockArtisanRepository)}
		service := NewProfileService(mockUsers, new(MockArtisanRepository), tx, &stubPictureSaver{}, &stubGeocoder{result: &geocode.Result{}})

		_, err := service.UpdateProfile(context.Background(), user, newUpdate(), nil)

		assert.ErrorIs(t, err, apperrors.ErrUpdateFailed)
	})
}
