package service

import (
	"errors"

	"tubeshare-go/internal/api/dto"
	"tubeshare-go/internal/model"
	"tubeshare-go/internal/repository"

	"gorm.io/gorm"
)

// DefaultDisplayName is the placeholder name for users whose identity
// provider supplied none. A stored "Anonymous" may later be replaced by a
// real claimed name, never the other way around.
const DefaultDisplayName = "Anonymous"

var ErrUserNotFound = errors.New("user not found")

type IdentityService struct {
	userRepo *repository.UserRepository
}

func NewIdentityService(userRepo *repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// EnsureUser resolves verified identity-provider claims to the local user
// row, creating it on first contact. Idempotent: at most one write per call,
// and calling it again with the same claims changes nothing. A concurrent
// first request may win the insert race; the unique index on subject_id
// rejects the duplicate and the loser re-fetches the winner's row.
func (s *IdentityService) EnsureUser(subjectID, claimedName string) (*model.User, error) {
	if claimedName == "" {
		claimedName = DefaultDisplayName
	}

	user, err := s.userRepo.GetBySubjectID(subjectID)
	if err == nil {
		if user.DisplayName == DefaultDisplayName && claimedName != DefaultDisplayName {
			if err := s.userRepo.UpdateDisplayName(user.ID, claimedName); err != nil {
				return nil, err
			}
			user.DisplayName = claimedName
		}
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = &model.User{SubjectID: subjectID, DisplayName: claimedName}
	if createErr := s.userRepo.Create(user); createErr != nil {
		if existing, getErr := s.userRepo.GetBySubjectID(subjectID); getErr == nil {
			return existing, nil
		}
		return nil, createErr
	}
	return user, nil
}

// GetProfile returns a user's own profile.
func (s *IdentityService) GetProfile(userID int64) (*dto.ProfileView, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return toProfileView(user), nil
}

// UpdateDisplayName sets the user-chosen display name. Unconditional, unlike
// the reconciliation in EnsureUser: an explicit profile update always wins.
func (s *IdentityService) UpdateDisplayName(userID int64, displayName string) (*dto.ProfileView, error) {
	if err := s.userRepo.UpdateDisplayName(userID, displayName); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(userID)
}

func toProfileView(u *model.User) *dto.ProfileView {
	return &dto.ProfileView{DisplayName: u.DisplayName}
}
