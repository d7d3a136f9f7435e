package models

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	Member = "Member"
	Admin  = "Admin"
)

const (
	bcryptCost        = 8
	MinPasswordLength = 8
)

type Credentials struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	DeviceFingerprint string `json:"deviceFingerprint,omitempty"`
}

type UserSignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserUpdateRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type User struct {
	UserID         string    `json:"userId" db:"user_id"`
	Username       string    `json:"username" db:"username"`
	Email          string    `json:"email" db:"email"`
	HashedPassword string    `json:"-" db:"password_hash"`
	Kind           string    `json:"kind" db:"kind"`
	Approved       bool      `json:"approved" db:"approved"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`
}

type UserDevice struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"userId" db:"user_id"`
	Fingerprint string    `json:"fingerprint" db:"fingerprint"`
	DeviceData  string    `json:"deviceData" db:"device_data"`
	Expiry      time.Time `json:"expiry" db:"expiry"`
}

// ValidateUsername rejects empty names and names containing whitespace
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if strings.ContainsAny(username, " \t\r\n") {
		return errors.New("username cannot contain spaces")
	}
	return nil
}

// ValidateEmail checks that email is a bare address
func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return fmt.Errorf("invalid email address %q", email)
	}
	return nil
}

func (req UserSignupRequest) Validate() error {
	if err := ValidateUsername(req.Username); err != nil {
		return err
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}

func NewUser(userSignup UserSignupRequest) (User, error) {
	hashedPassword, hashErr := HashPassword(userSignup.Password)
	if hashErr != nil {
		return User{}, hashErr
	}
	now := time.Now()
	return User{
		UserID:         uuid.New().String(),
		Username:       userSignup.Username,
		Email:          userSignup.Email,
		HashedPassword: hashedPassword,
		Kind:           Member,
		Approved:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func HashPassword(password string) (string, error) {
	hashedPassword, hashErr := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if hashErr != nil {
		return "", fmt.Errorf("error hashing password %v", hashErr)
	}
	return string(hashedPassword), nil
}

// CheckPassword reports whether password matches the stored hash
func (user User) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		return errors.New("invalid email or password")
	}
	return nil
}
