package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"storefront/database"
	"storefront/models"
)

var (
	ErrDuplicateAccount   = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Signup accepts bare gmail addresses only; existing stored accounts were
// created under this rule.
var signupEmailPattern = regexp.MustCompile(`^[a-zA-Z0-9]+@gmail\.com$`)

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// AuthService manages accounts and the single session. Credentials are
// compared as stored; see DESIGN.md.
type AuthService struct {
	users   *database.UserRepository
	session *database.SessionRepository
}

func NewAuthService(users *database.UserRepository, session *database.SessionRepository) *AuthService {
	return &AuthService{users: users, session: session}
}

// ValidateSignup returns a field-keyed error map for req. An empty map
// means the form is valid.
func ValidateSignup(req SignupRequest) map[string]string {
	errs := map[string]string{}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		errs["name"] = "Name is required"
	} else if len(name) < 2 {
		errs["name"] = "Name must be at least 2 characters long"
	}

	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	} else if !signupEmailPattern.MatchString(req.Email) {
		errs["email"] = "Please enter a valid email address"
	}

	if req.Password != req.ConfirmPassword {
		errs["confirmPassword"] = "Passwords do not match"
	}

	return errs
}

// Signup creates the account and logs it in. Duplicate emails are rejected
// with ErrDuplicateAccount; form problems come back as a field error map
// and no account is created.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*models.User, map[string]string, error) {
	if fieldErrs := ValidateSignup(req); len(fieldErrs) > 0 {
		return nil, fieldErrs, nil
	}

	if _, err := s.users.FindByEmail(ctx, req.Email); err == nil {
		return nil, nil, ErrDuplicateAccount
	} else if err != database.ErrUserNotFound {
		return nil, nil, err
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, nil, err
	}
	if err := s.session.Set(ctx, user); err != nil {
		return nil, nil, err
	}
	return &user, nil, nil
}

// Login authenticates email/password against the stored account and makes
// it the session user.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err == database.ErrUserNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if user.Password != password {
		return nil, ErrInvalidCredentials
	}

	if err := s.session.Set(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Logout clears the session.
func (s *AuthService) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

// CurrentUser returns the session user, or nil when nobody is logged in.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	return s.session.Current(ctx)
}
