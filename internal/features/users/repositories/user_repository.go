package users_repositories

import (
	"context"
	"errors"

	users_models "teamspace/internal/features/users/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) CreateUser(ctx context.Context, user *users_models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error) {
	var user users_models.User

	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// GetUsersByIDs returns the users that exist among userIDs. Unknown ids are
// silently skipped.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, userIDs []uuid.UUID) ([]*users_models.User, error) {
	users := make([]*users_models.User, 0, len(userIDs))
	if len(userIDs) == 0 {
		return users, nil
	}

	err := r.db.WithContext(ctx).
		Where("id IN ?", userIDs).
		Order("created_at ASC").
		Find(&users).Error

	return users, err
}

type SecretKeyRepository struct {
	db *gorm.DB
}

func NewSecretKeyRepository(db *gorm.DB) *SecretKeyRepository {
	return &SecretKeyRepository{db: db}
}

func (r *SecretKeyRepository) GetSecretKey() (string, error) {
	var secretKey users_models.SecretKey

	if err := r.db.First(&secretKey).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errors.New("secret key is not initialized")
		}

		return "", err
	}

	return secretKey.Secret, nil
}
