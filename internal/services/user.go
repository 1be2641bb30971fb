package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/config"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	repository "github.com/hungryup/hungryup-backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserAuth, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type userService struct {
	repo          repository.UserRepository
	cartRepo      repository.CartRepository
	rateLimitRepo repository.RateLimitRepository
	cfg           *config.Security
}

func NewUserService(repo repository.UserRepository, cartRepo repository.CartRepository, rateLimitRepo repository.RateLimitRepository, cfg *config.Security) UserService {
	return &userService{
		repo:          repo,
		cartRepo:      cartRepo,
		rateLimitRepo: rateLimitRepo,
		cfg:           cfg,
	}
}

func (s *userService) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserAuth, error) {

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.InternalError("Failed to secure password").WithError(err)
	}

	user := &models.User{
		ID:          uuid.New(),
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Name:        req.Name,
		Avatar:      req.Avatar,
		Password:    string(hashedPassword),
	}

	if user.Avatar == "" {
		user.Avatar = "default.jpg"
	}

	// The unique constraints decide, not a read-then-write check, so two
	// concurrent registrations cannot both win.
	if err := s.repo.CreateUser(ctx, user); err != nil {

		switch {
		case repository.IsUniqueViolation(err, "users_email_key"):
			return nil, errors.DuplicateEntryError("Email already registered")
		case repository.IsUniqueViolation(err, "users_phone_number_key"):
			return nil, errors.DuplicateEntryError("Phone number already registered")
		}

		return nil, errors.DatabaseError("Failed to create user").WithError(err)
	}

	token, expiresIn, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	return &models.UserAuth{User: user, Token: token, ExpiresIn: expiresIn}, nil
}

func (s *userService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {

	allowed, remaining, retryAfter, err := s.rateLimitRepo.CheckLoginRateLimit(ctx, req.Email)
	if err != nil {
		return nil, errors.ThirdPartyError("Rate limit check failed").WithError(err)
	}

	if !allowed {
		return &models.LoginResponse{
			Success:    false,
			Message:    "Too many login attempts. Please try again later.",
			RetryAfter: retryAfter,
		}, nil
	}

	user, err := s.repo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "No account found with this email",
			RemainingTries: remaining,
		}, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return &models.LoginResponse{
			Success:        false,
			Message:        "Incorrect password",
			RemainingTries: remaining,
		}, nil
	}

	token, expiresIn, err := s.mintToken(user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresIn: expiresIn,
	}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, errors.NotFoundError("User not found").WithError(err)
	}

	return user, nil
}

// GetProfile returns the user with their cart attached, items and total
// included. Every user owns a cart from registration on.
func (s *userService) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {

	user, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cart, err := s.cartRepo.GetCartByUserID(ctx, id)
	if err != nil {
		return nil, errors.DatabaseError("Failed to load cart").WithError(err)
	}

	cart.TotalPrice = cartTotal(cart)
	user.Cart = cart

	return user, nil
}

func (s *userService) mintToken(user *models.User) (string, int, error) {

	claims := &models.Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTKey))
	if err != nil {
		return "", 0, errors.InternalError("Failed to generate authentication token").WithError(err)
	}

	return tokenString, int(s.cfg.TokenTTL.Seconds()), nil
}
