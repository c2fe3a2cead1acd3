package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"dashboard/models"

	"gorm.io/gorm"
)

// UserService owns identity, profile and team lookups. Not-found is never
// an error here: point lookups return nil, mutations return false.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateOrUpdateUser is the identity-provisioning entry point for both
// first-time and returning callers; there is no separate register path.
// New users start as Employee/Available. Returning users get their display
// name refreshed and their last login stamped, nothing else is touched.
// Email uniqueness is case-insensitive, so the address is stored in its
// lowercase canonical form; that way case-variant spellings of the same
// address collide on the unique index instead of slipping past it.
func (s *UserService) CreateOrUpdateUser(ctx context.Context, email, displayName string) (*models.User, error) {
	email = strings.ToLower(email)

	user, err := s.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if user == nil {
		user = &models.User{
			Email:              email,
			DisplayName:        displayName,
			Role:               models.RoleEmployee,
			Availability:       models.StatusAvailable,
			EmailNotifications: true,
			InAppNotifications: true,
			CreatedAt:          time.Now().UTC(),
		}
		err = s.db.WithContext(ctx).Create(user).Error
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		// Lost a race against a concurrent insert for the same email;
		// the unique index caught it, so take the update path instead.
		user, err = s.GetUserByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, gorm.ErrDuplicatedKey
		}
	}

	now := time.Now().UTC()
	user.DisplayName = displayName
	user.LastLoginAt = &now
	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUserProfile overwrites the profile fields a user may edit about
// themselves. Email, role, availability and creation date are immutable
// through this path so a profile form cannot move someone's privileges.
func (s *UserService) UpdateUserProfile(ctx context.Context, user *models.User) (bool, error) {
	var existing models.User
	err := s.db.WithContext(ctx).First(&existing, user.ID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	existing.DisplayName = user.DisplayName
	existing.PhoneNumber = user.PhoneNumber
	existing.Department = user.Department
	existing.JobTitle = user.JobTitle
	existing.PhotoURL = user.PhotoURL
	existing.EmailNotifications = user.EmailNotifications
	existing.InAppNotifications = user.InAppNotifications

	if err := s.db.WithContext(ctx).Save(&existing).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (s *UserService) UpdateAvailability(ctx context.Context, userID uint, status models.AvailabilityStatus) (bool, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	user.Availability = status
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return false, err
	}
	return true, nil
}

// GetTeamMembers returns everyone else in the caller's department, ordered
// by display name. "Team" is department equality, not project membership.
// An unknown caller gets an empty slice.
func (s *UserService) GetTeamMembers(ctx context.Context, userID uint) ([]models.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return []models.User{}, nil
	}

	var members []models.User
	err = s.db.WithContext(ctx).
		Where("department = ? AND id <> ?", user.Department, userID).
		Order("display_name ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}
