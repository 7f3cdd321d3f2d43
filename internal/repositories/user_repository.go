package repositories

import (
	"errors"
	"time"

	"github.com/hari2128-cell/CureVox/internal/models"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when a unique column collides.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository covers persistence for patient accounts. Every method takes
// the caller's transaction handle so service-level transactions compose.
type UserRepository interface {
	// Create inserts a new user.
	Create(db *gorm.DB, user *models.User) error

	// FindByID looks a user up by primary key.
	FindByID(db *gorm.DB, id string) (*models.User, error)

	// FindByExternalUID looks a user up by identity-provider UID.
	FindByExternalUID(db *gorm.DB, uid string) (*models.User, error)

	// FindByEmail looks a user up by email.
	FindByEmail(db *gorm.DB, email string) (*models.User, error)

	// FindByPhone looks a user up by phone number.
	FindByPhone(db *gorm.DB, phone string) (*models.User, error)

	// Update persists changed fields of an existing user.
	Update(db *gorm.DB, user *models.User) error

	// UpdateLastLogin stamps the user's last login time.
	UpdateLastLogin(db *gorm.DB, id string, at time.Time) error
}

type userRepository struct{}

func NewUserRepository() UserRepository {
	return &userRepository{}
}

func (r *userRepository) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) FindByID(db *gorm.DB, id string) (*models.User, error) {
	return r.findOne(db, "id = ?", id)
}

func (r *userRepository) FindByExternalUID(db *gorm.DB, uid string) (*models.User, error) {
	return r.findOne(db, "external_uid = ?", uid)
}

func (r *userRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.findOne(db, "email = ?", email)
}

func (r *userRepository) FindByPhone(db *gorm.DB, phone string) (*models.User, error) {
	return r.findOne(db, "phone_number = ?", phone)
}

func (r *userRepository) findOne(db *gorm.DB, query string, arg interface{}) (*models.User, error) {
	var user models.User
	if err := db.Where(query, arg).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(db *gorm.DB, user *models.User) error {
	if err := db.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *userRepository) UpdateLastLogin(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.User{}).
		Where("id = ?", id).
		Update("last_login", at).Error
}
