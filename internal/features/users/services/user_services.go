package users_services

import (
	"context"
	"errors"
	"fmt"
	"time"

	users_dto "teamspace/internal/features/users/dto"
	users_models "teamspace/internal/features/users/models"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type UserReader interface {
	GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error)
	GetUsersByIDs(ctx context.Context, userIDs []uuid.UUID) ([]*users_models.User, error)
}

type SecretKeyProvider interface {
	GetSecretKey() (string, error)
}

type UserService struct {
	userReader        UserReader
	secretKeyProvider SecretKeyProvider
}

func NewUserService(userReader UserReader, secretKeyProvider SecretKeyProvider) *UserService {
	return &UserService{
		userReader:        userReader,
		secretKeyProvider: secretKeyProvider,
	}
}

func (s *UserService) GetUserFromToken(ctx context.Context, token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyProvider.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, errors.New("invalid token")
	}

	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("invalid token claims")
	}

	user, err := s.userReader.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !user.IsActiveUser() {
		return nil, errors.New("user account is deactivated")
	}

	passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64)
	if !ok {
		return nil, errors.New("invalid token claims: missing password creation time")
	}

	tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0).Truncate(time.Second)
	userPasswordTime := user.PasswordCreationTime.Truncate(time.Second)

	if !tokenPasswordTime.Equal(userPasswordTime) {
		return nil, errors.New("password has been changed, please sign in again")
	}

	return user, nil
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyProvider.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	expiration := time.Now().UTC().Add(time.Hour * 24 * 30)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  expiration.Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID: user.ID,
		Email:  user.Email,
		Token:  tokenString,
	}, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*users_models.User, error) {
	return s.userReader.GetUserByID(ctx, userID)
}

func (s *UserService) GetUsersByIDs(ctx context.Context, userIDs []uuid.UUID) ([]*users_models.User, error) {
	return s.userReader.GetUsersByIDs(ctx, userIDs)
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Avatar:      user.Avatar,
		IsActive:    user.IsActiveUser(),
		CreatedAt:   user.CreatedAt,
	}
}
