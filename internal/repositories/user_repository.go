package repositories

import (
	"errors"
	"time"

	"hellostore_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrTokenConsumed     = errors.New("token already consumed")
)

type UserRepository interface {
	FindByID(id string) (*models.User, error)
	FindByExternalID(externalID string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id string) error

	// Admin listing, password hash excluded from the selected columns.
	FindAll(limit, offset int) ([]models.User, error)
	CountAll() (int64, error)
	UpdateRoleAndStatus(id string, role models.UserRole, status models.UserStatus) error
	UpdateProfile(id, address, contactNumber string) error

	// Verification token flow. ConsumeVerificationToken applies the flag flip
	// and the token clear as one atomic write.
	FindByVerificationToken(token string) (*models.User, error)
	ConsumeVerificationToken(id, token string) error

	// Password reset flow, same single-write discipline.
	SetResetToken(id, token string, expiry time.Time) error
	FindByResetToken(token string) (*models.User, error)
	ResetPassword(id, token, passwordHash string) error
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByExternalID(externalID string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "external_id = ?", externalID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", models.NormalizeEmail(email)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)

	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	return r.db.Save(user).Error
}

func (r *UserRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindAll(limit, offset int) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Omit("password_hash").
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) UpdateRoleAndStatus(id string, role models.UserRole, status models.UserStatus) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"role":       role,
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateProfile(id, address, contactNumber string) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"address":        address,
			"contact_number": contactNumber,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByVerificationToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "verification_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ConsumeVerificationToken(id, token string) error {
	// Single UPDATE guarded by the token value: flips the verified flag and
	// clears the token in one write, so a token can never be consumed twice.
	result := r.db.Model(&models.User{}).
		Where("id = ? AND verification_token = ?", id, token).
		Updates(map[string]interface{}{
			"is_email_verified":      true,
			"verification_token":     "",
			"verification_token_exp": nil,
			"updated_at":             time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenConsumed
	}
	return nil
}

func (r *UserRepositoryImpl) SetResetToken(id, token string, expiry time.Time) error {
	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":     token,
			"reset_token_exp": expiry,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByResetToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "reset_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) ResetPassword(id, token, passwordHash string) error {
	result := r.db.Model(&models.User{}).
		Where("id = ? AND reset_token = ?", id, token).
		Updates(map[string]interface{}{
			"password_hash":   passwordHash,
			"reset_token":     "",
			"reset_token_exp": nil,
			"updated_at":      time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenConsumed
	}
	return nil
}
