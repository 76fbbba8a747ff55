package services

import (
	"errors"
	"strings"

	"github.com/KNehe/swimmy/internal/api/validate"
	"github.com/KNehe/swimmy/internal/auth"
	"github.com/KNehe/swimmy/internal/domain"
	"github.com/KNehe/swimmy/internal/mailer"
	"github.com/KNehe/swimmy/internal/models"
	"github.com/KNehe/swimmy/internal/policy"
	repo "github.com/KNehe/swimmy/internal/repository"
)

// ErrAuthFailed covers every bad-credentials login outcome; the handler
// never distinguishes unknown email from wrong password.
var ErrAuthFailed = errors.New(domain.NoActiveAccountError)

type TokenPair struct {
	Access  string
	Refresh string
}

type UserService struct {
	users  repo.Users
	tm     *auth.TokenManager
	resets *auth.ResetTokenGenerator
	mail   *mailer.Dispatcher

	resetLinkBase string
}

func NewUserService(users repo.Users, tm *auth.TokenManager, resets *auth.ResetTokenGenerator, mail *mailer.Dispatcher, resetLinkBase string) *UserService {
	return &UserService{
		users:         users,
		tm:            tm,
		resets:        resets,
		mail:          mail,
		resetLinkBase: resetLinkBase,
	}
}

func (s *UserService) Register(username, email, password string) (models.User, TokenPair, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	var errs validate.Errs
	if ef := validate.Required("email", email); ef != nil {
		errs = append(errs, *ef)
	} else if ef := validate.Email("email", email); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("username", username); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("password", password); ef != nil {
		errs = append(errs, *ef)
	}
	if len(errs) > 0 {
		return models.User{}, TokenPair{}, errs
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}

	u, err := s.users.Create(username, email, hash, models.RoleUser)
	if err != nil {
		if d, ok := repo.IsDuplicate(err); ok {
			return models.User{}, TokenPair{}, uniqueUserErrs(d)
		}
		return models.User{}, TokenPair{}, err
	}

	access, refresh, err := s.tm.GeneratePair(u.ID, u.Role)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	return u, TokenPair{Access: access, Refresh: refresh}, nil
}

func uniqueUserErrs(d *repo.DuplicateError) validate.Errs {
	switch {
	case strings.Contains(d.Constraint, "email"):
		return validate.Errs{{Field: "email", Msg: "user with this email already exists."}}
	case strings.Contains(d.Constraint, "username"):
		return validate.Errs{{Field: "username", Msg: "A user with that username already exists."}}
	}
	return validate.Errs{{Field: "non_field_errors", Msg: d.Error()}}
}

func (s *UserService) Login(email, password string) (models.User, TokenPair, error) {
	var errs validate.Errs
	if ef := validate.Required("email", email); ef != nil {
		errs = append(errs, *ef)
	}
	if ef := validate.Required("password", password); ef != nil {
		errs = append(errs, *ef)
	}
	if len(errs) > 0 {
		return models.User{}, TokenPair{}, errs
	}

	u, err := s.users.GetByEmail(email)
	if err != nil {
		return models.User{}, TokenPair{}, ErrAuthFailed
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return models.User{}, TokenPair{}, ErrAuthFailed
	}

	access, refresh, err := s.tm.GeneratePair(u.ID, u.Role)
	if err != nil {
		return models.User{}, TokenPair{}, err
	}
	return u, TokenPair{Access: access, Refresh: refresh}, nil
}

func (s *UserService) Refresh(refreshToken string) (string, error) {
	claims, err := s.tm.ParseRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	access, _, err := s.tm.GeneratePair(claims.UserID, claims.Role)
	return access, err
}

// RequestPasswordReset emails a single-use reset link. The token stays
// valid even if the mail cannot be queued.
func (s *UserService) RequestPasswordReset(email string) error {
	if ef := validate.Required("email", email); ef != nil {
		return validate.Errs{*ef}
	}
	u, err := s.users.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	uid := auth.EncodeUID(u.ID)
	token := s.resets.Make(u.ID, u.PasswordHash)
	link := s.resetLinkBase + "/" + uid + "/" + token + "/"

	body := "Please use the link below to reset your password \n" +
		link + " \n" +
		"If you did not request this, please ignore this email"

	if err := s.mail.Dispatch([]string{u.Email}, domain.RequestPasswordResetSubject, body); err != nil {
		return domain.ErrMailDispatch
	}
	return nil
}

func (s *UserService) ConfirmPasswordReset(uidb64, token, newPassword string) error {
	if uidb64 == "" || token == "" {
		return domain.ErrInvalidRequest
	}
	if ef := validate.Required("new_password", newPassword); ef != nil {
		return validate.Errs{*ef}
	}

	id, err := auth.DecodeUID(uidb64)
	if err != nil {
		return domain.ErrInvalidRequest
	}
	u, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return domain.ErrUnknownUser
		}
		return err
	}

	if err := s.resets.Check(u.ID, u.PasswordHash, token); err != nil {
		return domain.ErrInvalidResetLink
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	// updating the hash invalidates the token; single use by construction
	return s.users.UpdatePassword(u.ID, hash)
}

func (s *UserService) List(caller policy.Caller, limit, offset int) ([]models.User, error) {
	if err := policy.Check(caller, policy.Users, policy.List, ""); err != nil {
		return nil, err
	}
	return s.users.List(limit, offset)
}

func (s *UserService) Get(id string) (models.User, error) {
	u, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return models.User{}, domain.ErrNotFound
		}
		return models.User{}, err
	}
	return u, nil
}
