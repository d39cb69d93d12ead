package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domaccount "example.com/storefront/internal/domain/account"
	domnotice "example.com/storefront/internal/domain/notice"
)

const welcomeTimer = 2500 * time.Millisecond

type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash string, password string) error
}

type TokenService interface {
	GenerateToken(p domaccount.Profile) (string, error)
	ParseToken(token string) (*domaccount.Profile, error)
}

// Mailer sends the registration welcome message. It may be nil.
type Mailer interface {
	SendWelcome(ctx context.Context, to string, name string) error
}

// FormError carries the field state of a rejected form.
type FormError struct {
	State FormState
}

func (e *FormError) Error() string {
	return fmt.Sprintf("%s: %d field(s)", domaccount.ErrInvalidForm, len(e.State.Invalid))
}

func (e *FormError) Unwrap() error {
	return domaccount.ErrInvalidForm
}

type Service struct {
	repo      domaccount.Repository
	hasher    PasswordHasher
	tokens    TokenService
	mailer    Mailer
	validator *Validator
	logger    *zap.Logger
	now       func() time.Time
}

func NewService(
	repo domaccount.Repository,
	hasher PasswordHasher,
	tokens TokenService,
	mailer Mailer,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		validator: NewValidator(),
		logger:    logger,
		now:       time.Now,
	}
}

func (s *Service) Validator() *Validator {
	return s.validator
}

type RegisterResult struct {
	Account     *domaccount.Account
	WelcomeName string
	Notice      domnotice.Notice
}

func (s *Service) Register(ctx context.Context, form RegisterForm) (*RegisterResult, error) {
	form, state := s.validator.ValidateRegister(form)
	if !state.SubmitEnabled {
		return nil, &FormError{State: state}
	}

	email := domaccount.NormalizeEmail(form.Email)
	_, err := s.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domaccount.ErrEmailAlreadyUsed
	case !errors.Is(err, domaccount.ErrAccountNotFound):
		return nil, err
	}

	hash, err := s.hasher.Hash(form.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &domaccount.Account{
		Email:        email,
		Name:         form.Name,
		LastName:     form.LastName,
		Phone:        form.Phone,
		Birth:        form.Birth,
		Country:      form.Country,
		City:         form.City,
		Cologne:      form.Cologne,
		Address:      form.Address,
		ZipCode:      form.ZipCode,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, acc); err != nil {
		return nil, err
	}

	name := domaccount.WelcomeName(form.Email)
	if s.mailer != nil {
		if err := s.mailer.SendWelcome(ctx, email, name); err != nil {
			s.logger.Warn("welcome mail not sent", zap.String("email", email), zap.Error(err))
		}
	}
	s.logger.Info("account registered", zap.String("email", email))

	return &RegisterResult{
		Account:     acc,
		WelcomeName: name,
		Notice: domnotice.Notice{
			Kind:  domnotice.KindWelcome,
			Title: fmt.Sprintf("Welcome, %s!", name),
			Text:  "Registration successful",
			Timer: welcomeTimer,
		},
	}, nil
}

type LoginInput struct {
	ProfileID string
	Email     string
	Password  string
}

type LoginResult struct {
	Token       string
	Account     *domaccount.Account
	WelcomeName string
	Notice      domnotice.Notice
}

func (s *Service) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := domaccount.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domaccount.ErrInvalidCredential
	}

	acc, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, domaccount.ErrAccountNotFound) {
		return nil, domaccount.ErrUnauthorized
	}
	if err != nil {
		return nil, fmt.Errorf("lookup account: %w", err)
	}

	if err := s.hasher.Compare(acc.PasswordHash, in.Password); err != nil {
		return nil, domaccount.ErrUnauthorized
	}

	token, err := s.tokens.GenerateToken(domaccount.Profile{ID: in.ProfileID, Email: acc.Email})
	if err != nil {
		return nil, err
	}

	name := domaccount.WelcomeName(in.Email)
	return &LoginResult{
		Token:       token,
		Account:     acc,
		WelcomeName: name,
		Notice: domnotice.Notice{
			Kind:  domnotice.KindWelcome,
			Title: fmt.Sprintf("Welcome, %s!", name),
			Text:  "You are logged in",
			Timer: welcomeTimer,
		},
	}, nil
}
