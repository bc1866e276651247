package services

import (
	"context"
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"turakBack/internal/models"
	"turakBack/internal/repositories"
	"turakBack/utils"
)

const (
	accessTokenTTL  = 120 * time.Minute
	refreshTokenTTL = 30 * 24 * time.Hour
	resetCodeTTL    = 15 * time.Minute
)

type UserService struct {
	UserRepo     *repositories.UserRepository
	TokenManager *utils.Manager
	SigningKey   string
}

func (s *UserService) SignUp(ctx context.Context, req models.SignUpRequest) (models.User, error) {
	if req.Role != "tenant" && req.Role != "landlord" {
		return models.User{}, ErrInvalidRole
	}

	existing, err := s.UserRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return models.User{}, err
	}
	if existing.ID != 0 {
		return models.User{}, models.ErrDuplicateEmail
	}
	existing, err = s.UserRepo.GetUserByPhone(ctx, req.Phone)
	if err != nil {
		return models.User{}, err
	}
	if existing.ID != 0 {
		return models.User{}, models.ErrDuplicatePhone
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	user := models.User{
		Name:     req.Name,
		Surname:  req.Surname,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: string(hashed),
		Role:     req.Role,
	}

	created, err := s.UserRepo.CreateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	created.Password = ""
	return created, nil
}

func (s *UserService) SignIn(ctx context.Context, req models.SignInRequest) (models.SignInResponse, error) {
	var (
		user models.User
		err  error
	)
	if req.Email != "" {
		user, err = s.UserRepo.GetUserByEmail(ctx, req.Email)
	} else {
		user, err = s.UserRepo.GetUserByPhone(ctx, req.Phone)
	}
	if err != nil {
		return models.SignInResponse{}, err
	}
	if user.ID == 0 {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}
	if user.Banned {
		return models.SignInResponse{}, models.ErrUserBanned
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return models.SignInResponse{}, models.ErrInvalidCredentials
	}

	accessToken, err := s.newAccessToken(user.ID, user.Role)
	if err != nil {
		return models.SignInResponse{}, err
	}
	refreshToken, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.SignInResponse{}, err
	}

	session := models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	}
	if err := s.UserRepo.SetSession(ctx, session); err != nil {
		return models.SignInResponse{}, err
	}

	user.Password = ""
	return models.SignInResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

func (s *UserService) newAccessToken(userID int, role string) (string, error) {
	claims := models.Claims{
		UserID: uint(userID),
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(accessTokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.SigningKey))
}

// Refresh exchanges a valid refresh token for a new access/refresh pair.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (models.SignInResponse, error) {
	session, err := s.UserRepo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return models.SignInResponse{}, err
	}
	if time.Now().After(session.ExpiresAt) {
		return models.SignInResponse{}, repositories.ErrSessionNotFound
	}

	user, err := s.UserRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return models.SignInResponse{}, err
	}
	if user.Banned {
		return models.SignInResponse{}, models.ErrUserBanned
	}

	accessToken, err := s.newAccessToken(user.ID, user.Role)
	if err != nil {
		return models.SignInResponse{}, err
	}
	newRefresh, err := s.TokenManager.NewRefreshToken()
	if err != nil {
		return models.SignInResponse{}, err
	}
	err = s.UserRepo.SetSession(ctx, models.Session{
		UserID:       user.ID,
		Role:         user.Role,
		RefreshToken: newRefresh,
		ExpiresAt:    time.Now().Add(refreshTokenTTL),
	})
	if err != nil {
		return models.SignInResponse{}, err
	}

	user.Password = ""
	return models.SignInResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
	}, nil
}

func (s *UserService) Logout(ctx context.Context, userID int) error {
	return s.UserRepo.DeleteSession(ctx, userID)
}

func (s *UserService) GetUserByID(ctx context.Context, id int) (models.User, error) {
	user, err := s.UserRepo.GetUserByID(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	user.Password = ""
	return user, nil
}

// UpdateUser lets a user edit their own profile; role and ban flag stay as is.
func (s *UserService) UpdateUser(ctx context.Context, user models.User, requesterID int) (models.User, error) {
	if user.ID != requesterID {
		return models.User{}, ErrForbidden
	}
	current, err := s.UserRepo.GetUserByID(ctx, user.ID)
	if err != nil {
		return models.User{}, err
	}
	user.Role = current.Role
	user.Banned = current.Banned

	updated, err := s.UserRepo.UpdateUser(ctx, user)
	if err != nil {
		return models.User{}, err
	}
	updated.Password = ""
	return updated, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID int, oldPassword, newPassword string) error {
	user, err := s.UserRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return models.ErrInvalidCredentials
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.UserRepo.UpdatePassword(ctx, userID, string(hashed))
}

// RequestPasswordReset issues a short-lived code for the account behind the
// phone number. Delivery is left to the caller so the code is returned.
func (s *UserService) RequestPasswordReset(ctx context.Context, phone string) (string, error) {
	user, err := s.UserRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		return "", err
	}
	if user.ID == 0 {
		return "", models.ErrUserNotFound
	}

	code := utils.NewResetCode()
	err = s.UserRepo.SetResetCode(ctx, models.PasswordResetCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(resetCodeTTL),
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

func (s *UserService) ConfirmPasswordReset(ctx context.Context, phone, code, newPassword string) error {
	user, err := s.UserRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		return err
	}
	if user.ID == 0 {
		return models.ErrUserNotFound
	}

	stored, err := s.UserRepo.GetResetCode(ctx, user.ID)
	if err != nil {
		return err
	}
	if stored.Code != code || time.Now().After(stored.ExpiresAt) {
		return models.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.UserRepo.UpdatePassword(ctx, user.ID, string(hashed)); err != nil {
		return err
	}
	return s.UserRepo.DeleteResetCode(ctx, user.ID)
}

func (s *UserService) SetFCMToken(ctx context.Context, userID int, token string) error {
	return s.UserRepo.SetFCMToken(ctx, userID, token)
}

// Admin operations.

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.UserRepo.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id, requesterID int, requesterRole string) error {
	if id != requesterID && requesterRole != "admin" {
		return ErrForbidden
	}
	err := s.UserRepo.DeleteUser(ctx, id)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.ErrUserNotFound
	}
	return err
}

func (s *UserService) SetBanned(ctx context.Context, userID int, banned bool) error {
	err := s.UserRepo.SetBanned(ctx, userID, banned)
	if errors.Is(err, repositories.ErrUserNotFound) {
		return models.ErrUserNotFound
	}
	return err
}
