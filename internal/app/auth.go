package app

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"travelassist/internal/auth"
	"travelassist/internal/domain"
)

const (
	otpTTL         = 5 * time.Minute
	resetTokenTTL  = 30 * time.Minute
	minPasswordLen = 6
)

type AuthService struct {
	users  domain.UserRepository
	mailer domain.Mailer
	tokens *auth.TokenService
}

func NewAuthService(users domain.UserRepository, mailer domain.Mailer, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, mailer: mailer, tokens: tokens}
}

type SignupInput struct {
	Email    string
	Password string
	Name     *string
	Age      *int
	Diet     *domain.DietType
}

// Signup creates an inactive-until-verified account and emails a
// one-time code. The email must not already be registered.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") {
		return domain.User{}, fmt.Errorf("invalid email: %w", domain.ErrInvalid)
	}
	if len(in.Password) < minPasswordLen {
		return domain.User{}, fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrInvalid)
	}
	if in.Age != nil && (*in.Age < 13 || *in.Age > 120) {
		return domain.User{}, fmt.Errorf("age must be between 13 and 120: %w", domain.ErrInvalid)
	}
	if in.Diet != nil && !in.Diet.Valid() {
		return domain.User{}, fmt.Errorf("unknown diet type %q: %w", *in.Diet, domain.ErrInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, err
	}

	code, err := otpCode()
	if err != nil {
		return domain.User{}, err
	}
	expiry := time.Now().Add(otpTTL)

	u := domain.User{
		Email:          email,
		HashedPassword: string(hash),
		Name:           in.Name,
		Age:            in.Age,
		Diet:           in.Diet,
		IsActive:       true,
		OTPCode:        &code,
		OTPExpiry:      &expiry,
	}
	id, err := s.users.CreateUser(ctx, u)
	if err != nil {
		return domain.User{}, err
	}
	u.ID = id

	if err := s.mailer.SendOTP(ctx, email, displayName(u), code); err != nil {
		log.Warn().Err(err).Str("email", email).Msg("otp email failed")
	}
	return u, nil
}

// VerifyEmail activates the account when the code matches and has not
// expired. The stored code is cleared on success.
func (s *AuthService) VerifyEmail(ctx context.Context, email, code string) error {
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return nil
	}
	if u.OTPCode == nil || u.OTPExpiry == nil {
		return fmt.Errorf("no pending verification: %w", domain.ErrInvalid)
	}
	if time.Now().After(*u.OTPExpiry) {
		return fmt.Errorf("verification code expired: %w", domain.ErrInvalid)
	}
	if *u.OTPCode != code {
		return fmt.Errorf("wrong verification code: %w", domain.ErrInvalid)
	}

	u.EmailVerified = true
	u.OTPCode = nil
	u.OTPExpiry = nil
	return s.users.UpdateUser(ctx, u)
}

// ResendOTP issues a fresh code for an unverified account.
func (s *AuthService) ResendOTP(ctx context.Context, email string) error {
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return fmt.Errorf("email already verified: %w", domain.ErrInvalid)
	}

	code, err := otpCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(otpTTL)
	u.OTPCode = &code
	u.OTPExpiry = &expiry
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return err
	}
	return s.mailer.SendOTP(ctx, u.Email, displayName(u), code)
}

// Login checks the password and returns a signed access token.
// Unverified emails cannot log in.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, domain.User, error) {
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == domain.ErrNotFound {
			return "", domain.User{}, domain.ErrUnauthorized
		}
		return "", domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(password)) != nil {
		return "", domain.User{}, domain.ErrUnauthorized
	}
	if !u.EmailVerified {
		return "", domain.User{}, fmt.Errorf("email not verified: %w", domain.ErrForbidden)
	}
	if !u.IsActive {
		return "", domain.User{}, fmt.Errorf("account disabled: %w", domain.ErrForbidden)
	}

	token, err := s.tokens.Generate(u.ID, u.Email)
	if err != nil {
		return "", domain.User{}, err
	}
	return token, u, nil
}

// ForgotPassword stores a reset token and mails it. Unknown emails get
// the same nil result so the endpoint does not leak which addresses
// are registered.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if err == domain.ErrNotFound {
			return nil
		}
		return err
	}

	token := uuid.NewString()
	expiry := time.Now().Add(resetTokenTTL)
	u.ResetToken = &token
	u.ResetTokenExpiry = &expiry
	if err := s.users.UpdateUser(ctx, u); err != nil {
		return err
	}
	if err := s.mailer.SendPasswordReset(ctx, u.Email, token); err != nil {
		log.Warn().Err(err).Str("email", u.Email).Msg("reset email failed")
	}
	return nil
}

// ResetPassword consumes a valid reset token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters: %w", minPasswordLen, domain.ErrInvalid)
	}
	u, err := s.users.GetUserByResetToken(ctx, token)
	if err != nil {
		if err == domain.ErrNotFound {
			return fmt.Errorf("invalid reset token: %w", domain.ErrInvalid)
		}
		return err
	}
	if u.ResetTokenExpiry == nil || time.Now().After(*u.ResetTokenExpiry) {
		return fmt.Errorf("reset token expired: %w", domain.ErrInvalid)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.HashedPassword = string(hash)
	u.ResetToken = nil
	u.ResetTokenExpiry = nil
	return s.users.UpdateUser(ctx, u)
}

func otpCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func displayName(u domain.User) string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Email
}
