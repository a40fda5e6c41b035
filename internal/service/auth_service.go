package service

import (
	"context"
	"time"

	"bakehouse-backend/internal/apperr"
	"bakehouse-backend/internal/repositories"
	"bakehouse-backend/models"
	"bakehouse-backend/pkg/logger"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

// TokenClaims is the JWT payload. The middleware parses the same shape.
type TokenClaims struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.StandardClaims
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type AuthService struct {
	users     repositories.UserRepository
	jwtSecret []byte
	logger    *logger.Logger
}

func NewAuthService(users repositories.UserRepository, jwtSecret []byte, log *logger.Logger) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: jwtSecret,
		logger:    log.WithComponent("auth_service"),
	}
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*models.User, string, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, "", apperr.New(apperr.CodeInvalidInput, "name, email and password are required")
	}

	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, "", apperr.New(apperr.CodeEmailTaken, "email %s is already registered", req.Email)
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return nil, "", apperr.Wrap(err, apperr.CodeInternal, "looking up email")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Wrap(err, apperr.CodeInternal, "hashing password")
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  string(hashed),
		Role:      models.RoleCustomer,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", apperr.Wrap(err, apperr.CodeInternal, "creating user")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithField("user_id", user.ID.Hex()).Info("user registered")
	user.Password = ""
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", apperr.New(apperr.CodeUnauthorized, "invalid email or password")
		}
		return nil, "", apperr.Wrap(err, apperr.CodeInternal, "looking up user")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", apperr.New(apperr.CodeUnauthorized, "invalid email or password")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithField("user_id", user.ID.Hex()).Info("user logged in")
	user.Password = ""
	return user, token, nil
}

// LoginWithGoogle signs in the user matching a verified Google email,
// creating a customer account on first login. Google accounts get a random
// password so the credentials path stays closed for them.
func (s *AuthService) LoginWithGoogle(ctx context.Context, email, name string) (*models.User, string, error) {
	if email == "" {
		return nil, "", apperr.New(apperr.CodeInvalidInput, "google profile has no email")
	}

	user, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
	case errors.Is(err, repositories.ErrNotFound):
		hashed, hashErr := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, "", apperr.Wrap(hashErr, apperr.CodeInternal, "hashing password")
		}
		user = &models.User{
			Name:      name,
			Email:     email,
			Password:  string(hashed),
			Role:      models.RoleCustomer,
			CreatedAt: time.Now(),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, "", apperr.Wrap(err, apperr.CodeInternal, "creating user")
		}
		s.logger.WithField("user_id", user.ID.Hex()).Info("google account linked")
	default:
		return nil, "", apperr.Wrap(err, apperr.CodeInternal, "looking up user")
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, "", err
	}

	s.logger.WithField("user_id", user.ID.Hex()).Info("user logged in via google")
	user.Password = ""
	return user, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperr.New(apperr.CodeNotFound, "user not found")
		}
		return nil, apperr.Wrap(err, apperr.CodeInternal, "loading user")
	}
	user.Password = ""
	return user, nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, req UpdateProfileRequest) (*models.User, error) {
	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Email != "" {
		fields["email"] = req.Email
	}
	if req.Phone != "" {
		fields["phone"] = req.Phone
	}
	if len(fields) > 0 {
		if err := s.users.Update(ctx, userID, fields); err != nil {
			return nil, apperr.Wrap(err, apperr.CodeInternal, "updating profile")
		}
	}
	return s.Profile(ctx, userID)
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := TokenClaims{
		UserID: user.ID.Hex(),
		Name:   user.Name,
		Role:   string(user.Role),
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(tokenTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperr.Wrap(err, apperr.CodeInternal, "signing token")
	}
	return signed, nil
}
