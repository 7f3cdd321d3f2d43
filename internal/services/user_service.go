package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/hari2128-cell/CureVox/internal/identity"
	"github.com/hari2128-cell/CureVox/internal/logger"
	"github.com/hari2128-cell/CureVox/internal/models"
	"github.com/hari2128-cell/CureVox/internal/repositories"
	"github.com/hari2128-cell/CureVox/internal/services/dto"
	"github.com/hari2128-cell/CureVox/pkg/apperrors"

	"gorm.io/gorm"
)

type UserService interface {
	// ResolveOrCreate maps verified identity-provider claims plus the
	// submitted profile onto a local user, creating one on first sign-in.
	ResolveOrCreate(ctx context.Context, db *gorm.DB, claims *identity.Claims, req *dto.CompleteProfileRequest) (*models.User, error)

	// GetByID loads an active user.
	GetByID(ctx context.Context, db *gorm.DB, id string) (*models.User, error)

	// UpdateProfile applies the editable profile fields.
	UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error)
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// validEmail applies the minimal format rule: an "@" with a "." somewhere
// after it.
func validEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

func (s *UserServiceImpl) ResolveOrCreate(ctx context.Context, db *gorm.DB, claims *identity.Claims, req *dto.CompleteProfileRequest) (*models.User, error) {
	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.PhoneNumber == "" && claims.PhoneNumber == "" {
		missing = append(missing, "phone_number")
	}
	if len(missing) > 0 {
		return nil, apperrors.ErrMissingFields(missing)
	}
	if !validEmail(req.Email) {
		return nil, apperrors.ErrInvalidEmail
	}

	user, err := s.userRepo.FindByExternalUID(db, claims.UID)
	switch {
	case err == nil:
		return s.refreshExisting(db, user, claims, req)
	case errors.Is(err, repositories.ErrUserNotFound):
		return s.createNew(ctx, db, claims, req)
	default:
		return nil, apperrors.ErrDatabase(err)
	}
}

// refreshExisting is the repeat sign-in path. The call is idempotent: the
// same claims against the same user never create a second row.
func (s *UserServiceImpl) refreshExisting(db *gorm.DB, user *models.User, claims *identity.Claims, req *dto.CompleteProfileRequest) (*models.User, error) {
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}

	changed := false
	if user.Name == "" && req.Name != "" {
		user.Name = req.Name
		changed = true
	}
	if claims.EmailVerified && !user.IsVerified {
		user.IsVerified = true
		changed = true
	}
	if changed {
		if err := s.userRepo.Update(db, user); err != nil {
			return nil, apperrors.ErrDatabase(err)
		}
	}
	return user, nil
}

func (s *UserServiceImpl) createNew(ctx context.Context, db *gorm.DB, claims *identity.Claims, req *dto.CompleteProfileRequest) (*models.User, error) {
	// Provider-attested phone number wins over the submitted one; a
	// conflicting submission is rejected rather than silently replaced.
	phone := req.PhoneNumber
	if claims.PhoneNumber != "" {
		if req.PhoneNumber != "" && req.PhoneNumber != claims.PhoneNumber {
			return nil, apperrors.ErrPhoneMismatch
		}
		phone = claims.PhoneNumber
	}

	// A different provider account claiming an email or phone already
	// registered locally is an identity conflict, not a create.
	if existing, err := s.userRepo.FindByEmail(db, req.Email); err == nil && existing.ExternalUID != claims.UID {
		return nil, apperrors.ErrConflictingIdentity
	} else if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrDatabase(err)
	}
	if existing, err := s.userRepo.FindByPhone(db, phone); err == nil && existing.ExternalUID != claims.UID {
		return nil, apperrors.ErrConflictingIdentity
	} else if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.ErrDatabase(err)
	}

	user := &models.User{
		ExternalUID: claims.UID,
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: phone,
		IsActive:    true,
		IsVerified:  claims.EmailVerified,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if errors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrConflictingIdentity
		}
		return nil, apperrors.ErrDatabase(err)
	}

	logger.FromContext(ctx).Info("registered new user", "user_id", user.ID)
	return user, nil
}

func (s *UserServiceImpl) GetByID(_ context.Context, db *gorm.DB, id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.ErrDatabase(err)
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserInactive
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, db *gorm.DB, userID string, req *dto.UpdateProfileRequest) (*models.User, error) {
	user, err := s.GetByID(ctx, db, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, apperrors.NewBadRequestError("date_of_birth must be YYYY-MM-DD")
		}
		user.DateOfBirth = &dob
	}
	if req.Gender != nil {
		user.Gender = *req.Gender
	}
	if req.BloodGroup != nil {
		user.BloodGroup = *req.BloodGroup
	}
	if req.Height != nil {
		user.Height = *req.Height
	}
	if req.Weight != nil {
		user.Weight = *req.Weight
	}
	if req.Allergies != nil {
		user.Allergies = *req.Allergies
	}
	if req.ChronicConditions != nil {
		user.ChronicConditions = *req.ChronicConditions
	}
	if req.CurrentMedications != nil {
		user.CurrentMedications = *req.CurrentMedications
	}
	if req.EmergencyContactName != nil {
		user.EmergencyContactName = *req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		user.EmergencyContactPhone = *req.EmergencyContactPhone
	}
	if req.EmergencyContactRelation != nil {
		user.EmergencyContactRelation = *req.EmergencyContactRelation
	}

	if err := s.userRepo.Update(db, user); err != nil {
		return nil, apperrors.ErrDatabase(err)
	}
	return user, nil
}
