package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/repository"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/token"
	"github.com/abhijeet1717/ecommerce-backend-go/internal/notification"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOTP         = errors.New("invalid otp")
	ErrSessionInactive    = errors.New("session is inactive or not found")
)

const (
	bcryptCost = 10
	otpTTL     = 10 * time.Minute
)

// SessionStore tracks login state across the durable store and the
// cache mirror.
type SessionStore interface {
	Create(ctx context.Context, customerID string, expiresAt time.Time) error
	Invalidate(ctx context.Context, customerID string) error
	IsActive(ctx context.Context, customerID string) (bool, error)
}

type AuthService struct {
	customers repository.CustomerRepository
	sessions  SessionStore
	tokens    *token.Manager
	otps      *redis.Client
	mailer    notification.Sender
	log       *zap.Logger
}

func NewAuthService(
	customers repository.CustomerRepository,
	sessions SessionStore,
	tokens *token.Manager,
	otps *redis.Client,
	mailer notification.Sender,
	log *zap.Logger,
) *AuthService {
	return &AuthService{
		customers: customers,
		sessions:  sessions,
		tokens:    tokens,
		otps:      otps,
		mailer:    mailer,
		log:       log,
	}
}

func (s *AuthService) Signup(ctx context.Context, email, password, fullName, phone string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.customers.CreateCustomer(ctx, &domain.Customer{
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
		Phone:    phone,
	})
	if err != nil {
		return err
	}

	s.log.Info("customer signed up", zap.String("email", email))
	return nil
}

// Login verifies credentials, issues a bearer token and records the
// session in both the durable store and the cache.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	customer, err := s.customers.GetCustomerByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	customerID := customer.ID.Hex()
	signed, expiresAt, err := s.tokens.Generate(customerID, customer.Role)
	if err != nil {
		return "", err
	}

	if err := s.sessions.Create(ctx, customerID, expiresAt); err != nil {
		return "", err
	}

	s.log.Info("customer logged in", zap.String("customer_id", customerID))
	return signed, nil
}

func (s *AuthService) Logout(ctx context.Context, customerID string) error {
	if err := s.sessions.Invalidate(ctx, customerID); err != nil {
		return err
	}
	s.log.Info("customer logged out", zap.String("customer_id", customerID))
	return nil
}

func (s *AuthService) GetProfile(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customers.GetCustomer(ctx, customerID)
}

func (s *AuthService) UpdateProfile(ctx context.Context, customerID, fullName, phone string) (*domain.Customer, error) {
	return s.customers.UpdateProfile(ctx, customerID, fullName, phone)
}

// DeleteProfile removes the account, but only while the customer still
// holds an active session.
func (s *AuthService) DeleteProfile(ctx context.Context, customerID string) error {
	active, err := s.sessions.IsActive(ctx, customerID)
	if err != nil {
		return err
	}
	if !active {
		return ErrSessionInactive
	}

	if err := s.customers.DeleteCustomer(ctx, customerID); err != nil {
		return err
	}

	if err := s.sessions.Invalidate(ctx, customerID); err != nil {
		s.log.Warn("failed to invalidate session of deleted customer",
			zap.String("customer_id", customerID),
			zap.Error(err))
	}
	return nil
}

// ForgotPassword generates a one-time code, stores it keyed by email
// with a short TTL and mails it out.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if _, err := s.customers.GetCustomerByEmail(ctx, email); err != nil {
		return err
	}

	otp, err := generateOTP()
	if err != nil {
		return fmt.Errorf("failed to generate otp: %w", err)
	}

	if err := s.otps.Set(ctx, otpKey(email), otp, otpTTL).Err(); err != nil {
		return fmt.Errorf("failed to store otp: %w", err)
	}

	if err := s.mailer.SendPasswordResetOTP(ctx, email, otp); err != nil {
		return err
	}

	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	stored, err := s.otps.Get(ctx, otpKey(email)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("failed to read otp: %w", err)
	}
	if stored != otp {
		return ErrInvalidOTP
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.customers.UpdatePassword(ctx, email, string(hashed)); err != nil {
		return err
	}

	if err := s.otps.Del(ctx, otpKey(email)).Err(); err != nil {
		s.log.Warn("failed to delete used otp", zap.String("email", email), zap.Error(err))
	}

	s.log.Info("password reset", zap.String("email", email))
	return nil
}

func (s *AuthService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customers.ListCustomers(ctx)
}

func (s *AuthService) UpdateRole(ctx context.Context, customerID string, role domain.Role) (*domain.Customer, error) {
	return s.customers.UpdateRole(ctx, customerID, role)
}

// IsLoggedIn is the session check used by the HTTP middleware.
func (s *AuthService) IsLoggedIn(ctx context.Context, customerID string) (bool, error) {
	return s.sessions.IsActive(ctx, customerID)
}

func otpKey(email string) string {
	return fmt.Sprintf("otp:%s", email)
}

func generateOTP() (string, error) {
	// 4 digit code in [1000, 9999].
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d", n.Int64()+1000), nil
}
