package auth

import (
	"LearnHub/internal/app_errors"
	"LearnHub/internal/models"
	"LearnHub/pkg/logger"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 6
	maxPasswordLen = 72
)

type profileRepo interface {
	CreateProfile(ctx context.Context, profile *models.Profile) error
	ProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	ProfileByID(ctx context.Context, id uuid.UUID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, update models.ProfileUpdate) (*models.Profile, error)
}

type tokenRepo interface {
	Create(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	ByPrimaryKey(ctx context.Context, userID uuid.UUID, token *jwt.Token) (*models.RefreshToken, error)
	DeleteUserTokens(ctx context.Context, userID uuid.UUID) error
}

type AuthService struct {
	log        logger.Log
	jwtManager *JWTManager
	profiles   profileRepo
	tokenRepo  tokenRepo
}

func NewAuthService(l logger.Log, manager *JWTManager, profiles profileRepo, tRepo tokenRepo) *AuthService {
	return &AuthService{
		log:        l,
		jwtManager: manager,
		profiles:   profiles,
		tokenRepo:  tRepo,
	}
}

type Registration struct {
	Email       string
	Password    string
	DisplayName string
	Role        string
}

func (u *AuthService) Register(ctx context.Context, reg Registration) (*models.Profile, error) {
	if len(reg.Password) < minPasswordLen || len(reg.Password) > maxPasswordLen {
		return nil, app_errors.ErrInvalidPassword
	}
	if reg.Role == "" {
		reg.Role = models.RoleStudent
	}
	if !models.ValidRole(reg.Role) {
		return nil, app_errors.ErrInvalidRole
	}
	email := strings.ToLower(strings.TrimSpace(reg.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is invalid", app_errors.ErrInvalidInput)
	}
	name := strings.TrimSpace(reg.DisplayName)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	hash, err := hashPassword(reg.Password)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{
		Email:        email,
		PasswordHash: hash,
		Role:         reg.Role,
		DisplayName:  name,
	}
	if err := u.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}
	u.log.Info("profile registered", "user_id", profile.ID, "role", profile.Role)
	return profile, nil
}

func (u *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	profile, err := u.profiles.ProfileByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, err
	}
	if !checkPasswordHash(password, profile.PasswordHash) {
		return nil, app_errors.ErrIncorrectPassword
	}
	return u.issue(ctx, profile)
}

func (u *AuthService) RefreshTokens(ctx context.Context, token string) (*models.TokenPair, error) {
	curToken, err := u.jwtManager.Parse(token)
	if err != nil {
		return nil, err
	}
	if !u.jwtManager.TokenType(curToken, RefreshTokenType) {
		return nil, app_errors.ErrTokenNotFound
	}
	userIDStr, err := curToken.Claims.GetSubject()
	if err != nil {
		return nil, err
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}
	tokenRecord, err := u.tokenRepo.ByPrimaryKey(ctx, userID, curToken)
	if err != nil {
		return nil, err
	}
	if tokenRecord.ExpiresAt.Before(time.Now()) {
		return nil, app_errors.ErrTokenExpired
	}
	profile, err := u.profiles.ProfileByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.issue(ctx, profile)
}

// issue rotates the user's refresh token and returns a fresh pair.
func (u *AuthService) issue(ctx context.Context, profile *models.Profile) (*models.TokenPair, error) {
	tokenPair, err := u.jwtManager.GenerateTokenPair(profile.ID, profile.Role)
	if err != nil {
		return nil, err
	}
	if err := u.tokenRepo.DeleteUserTokens(ctx, profile.ID); err != nil {
		return nil, err
	}
	if _, err := u.tokenRepo.Create(ctx, profile.ID, tokenPair.RefreshToken); err != nil {
		return nil, err
	}
	return tokenPair, nil
}

// Authenticate resolves an access token into the caller's session.
func (u *AuthService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	claims, err := u.jwtManager.AccessClaims(token)
	if err != nil {
		return nil, err
	}
	profile, err := u.profiles.ProfileByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	// the stored role wins over the claim
	return &models.Session{UserID: profile.ID, Role: profile.Role}, nil
}

func (u *AuthService) Profile(ctx context.Context, id uuid.UUID) (*models.Profile, error) {
	return u.profiles.ProfileByID(ctx, id)
}

func (u *AuthService) UpdateProfile(ctx context.Context, session models.Session, update models.ProfileUpdate) (*models.Profile, error) {
	if update.DisplayName != nil {
		name := strings.TrimSpace(*update.DisplayName)
		if name == "" {
			return nil, fmt.Errorf("%w: display name cannot be empty", app_errors.ErrInvalidInput)
		}
		update.DisplayName = &name
	}
	return u.profiles.UpdateProfile(ctx, session.UserID, update)
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func checkPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
