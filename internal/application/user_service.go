package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bookbridge/bookbridge/internal/domain/entity"
	repo "github.com/bookbridge/bookbridge/internal/domain/repository"
	"github.com/bookbridge/bookbridge/pkg/helpers"
	"github.com/bookbridge/bookbridge/pkg/mailer"
)

var (
	// ErrEmailTaken is returned on signup when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrUserNotFound and ErrInvalidPassword are kept distinct on login;
	// the form shows different messages for an unknown email and a wrong
	// password.
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("incorrect password")
)

// UserService implements signup, login and logout over the credential
// store and the session manager.
type UserService struct {
	Repo     repo.UserRepository
	Sessions *helpers.SessionManager
	Logger   *logrus.Logger
	Pub      *helpers.RabbitPublisher // optional; nil disables notifications
	AppName  string
}

func NewUserService(r repo.UserRepository, sessions *helpers.SessionManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, appName string) *UserService {
	return &UserService{Repo: r, Sessions: sessions, Logger: logger, Pub: pub, AppName: appName}
}

// Signup registers a new user. The email must not be registered yet; the
// raw password is bcrypt-hashed before it is persisted.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*entity.User, error) {
	if existing, err := s.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: name, Email: email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		// Concurrent signup with the same email loses the race in the DB.
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	s.enqueueMail(ctx, mailer.EmailJob{
		To:      u.Email,
		Subject: "Welcome to " + s.AppName,
		Text:    "Hi " + u.Name + ", your account is ready. Happy reading!",
	})
	return u, nil
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password stay distinguishable for the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*entity.User, string, time.Time, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", time.Time{}, ErrUserNotFound
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, "", time.Time{}, ErrInvalidPassword
	}
	token, exp, err := s.Sessions.Create(ctx, u.ID, u.Name)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("session create failed")
		}
		return nil, "", time.Time{}, err
	}
	return u, token, exp, nil
}

// Logout destroys the session behind the token. A missing or invalid token
// is not an error.
func (s *UserService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	if err := s.Sessions.Destroy(ctx, token); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("session destroy failed")
	}
}

func (s *UserService) enqueueMail(ctx context.Context, job mailer.EmailJob) {
	if s.Pub == nil {
		return
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", job.To).Warn("failed to enqueue email")
	}
}
