package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/SilverSkills/user_service/internal/domain"
	"github.com/SilverSkills/user_service/internal/dto"
	"github.com/SilverSkills/user_service/internal/helper"
	"github.com/SilverSkills/user_service/internal/interfaces"
	"github.com/SilverSkills/user_service/internal/repository"
	"gorm.io/gorm"
)

const (
	maxLoginAttempts = 5
	lockoutDuration  = 15 * time.Minute

	minPasswordLength = 6
)

type UserService interface {
	// Auth
	Signup(input dto.SignupRequest) (*domain.User, error)
	Login(input dto.LoginRequest) (*domain.User, error)
	ChangePassword(userID uint, input dto.ChangePasswordRequest) error

	// Profile
	GetProfile(userID uint) (*domain.User, error)
	UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*domain.User, error)
	UpdateAvatar(userID uint, avatarURL string) (*domain.User, error)
	DeleteAccount(userID uint) error

	// Skills
	ListSkills() ([]dto.SkillResponse, error)
	GetUserSkills(userID uint) ([]uint, error)
	SetUserSkills(userID uint, skillIDs []uint) error

	IsAdmin(userID uint) (bool, error)
}

type userService struct {
	repo      repository.UserRepository
	skillRepo repository.SkillRepository
	auth      helper.Auth
	producer  interfaces.ProducerHandler
}

func NewUserService(
	repo repository.UserRepository,
	skillRepo repository.SkillRepository,
	auth helper.Auth,
	producer interfaces.ProducerHandler,
) UserService {
	return &userService{
		repo:      repo,
		skillRepo: skillRepo,
		auth:      auth,
		producer:  producer,
	}
}

// AUTH

func (u *userService) Signup(input dto.SignupRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	name := strings.TrimSpace(input.Name)

	if email == "" || name == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	existing, err := u.repo.FindUserByEmail(email)
	if err == nil && existing != nil && existing.ID != 0 {
		return nil, ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := u.auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	newUser := &domain.User{
		Email:              email,
		Name:               name,
		PasswordHash:       hash,
		VerificationStatus: domain.VerificationUnverified,
	}

	usr, err := u.repo.CreateUser(newUser)
	if err != nil {
		// two signups racing on the same email: the unique index wins
		if helper.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if u.producer != nil {
		payload := fmt.Sprintf(`{"user_id":%d,"email":"%s"}`, usr.ID, usr.Email)
		_ = u.producer.PublishMessage([]byte("user.registered"), []byte(payload))
	}

	return usr, nil
}

func (u *userService) Login(input dto.LoginRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	password := input.Password

	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := u.repo.FindUserByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	now := time.Now()

	if user.LockoutUntil != nil && user.LockoutUntil.After(now) {
		remainingMs := user.LockoutUntil.Sub(now).Milliseconds()
		return nil, &AccountLockedError{
			RemainingMinutes: int(math.Ceil(float64(remainingMs) / 60000)),
		}
	}

	if err := u.auth.VerifyPassword(password, user.PasswordHash); err != nil {
		attempts := user.FailedLoginAttempts + 1
		if attempts >= maxLoginAttempts {
			lockout := now.Add(lockoutDuration)
			user.LockoutUntil = &lockout
			// counter restarts once the lock is applied
			user.FailedLoginAttempts = 0
		} else {
			user.FailedLoginAttempts = attempts
		}
		if err := u.repo.SaveUser(user); err != nil {
			return nil, err
		}
		return nil, ErrInvalidCredentials
	}

	if user.FailedLoginAttempts != 0 || user.LockoutUntil != nil {
		user.FailedLoginAttempts = 0
		user.LockoutUntil = nil
		if err := u.repo.SaveUser(user); err != nil {
			return nil, err
		}
	}

	return user, nil
}

func (u *userService) ChangePassword(userID uint, input dto.ChangePasswordRequest) error {
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return fmt.Errorf("%w: both current and new passwords are required", ErrInvalidInput)
	}
	if len(input.NewPassword) < minPasswordLength {
		return fmt.Errorf("%w: new password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := u.auth.VerifyPassword(input.CurrentPassword, user.PasswordHash); err != nil {
		return ErrWrongPassword
	}

	hash, err := u.auth.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.FailedLoginAttempts = 0
	user.LockoutUntil = nil

	return u.repo.SaveUser(user)
}

// PROFILE

func (u *userService) GetProfile(userID uint) (*domain.User, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}

	user, err := u.repo.FindUserById(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (u *userService) UpdateProfile(userID uint, input dto.UpdateProfileRequest) (*domain.User, error) {
	user, err := u.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	touched := false

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
		}
		user.Name = name
		touched = true
	}

	if input.Bio != nil {
		bio := strings.TrimSpace(*input.Bio)
		if bio == "" {
			user.Bio = nil
		} else {
			user.Bio = &bio
		}
		touched = true
	}

	if input.Age != nil {
		age := *input.Age
		switch {
		case age == 0:
			user.Age = nil
		case age > 0 && age < 130:
			user.Age = &age
		default:
			return nil, fmt.Errorf("%w: age must be between 1 and 129", ErrInvalidInput)
		}
		touched = true
	}

	if input.Address != nil {
		addr := strings.TrimSpace(*input.Address)
		if addr == "" {
			user.Address = nil
		} else {
			user.Address = &addr
		}
		touched = true
	}

	if input.AvailableMorning != nil {
		user.AvailableMorning = *input.AvailableMorning
		touched = true
	}
	if input.AvailableAfternoon != nil {
		user.AvailableAfternoon = *input.AvailableAfternoon
		touched = true
	}
	if input.AvailableEvening != nil {
		user.AvailableEvening = *input.AvailableEvening
		touched = true
	}

	// the upload endpoint owns setting avatars; the profile form may only
	// clear one
	if input.AvatarURL != nil && strings.TrimSpace(*input.AvatarURL) == "" {
		user.AvatarURL = nil
		touched = true
	}

	if !touched {
		return nil, fmt.Errorf("%w: no valid fields to update", ErrInvalidInput)
	}

	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userService) UpdateAvatar(userID uint, avatarURL string) (*domain.User, error) {
	user, err := u.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	avatarURL = strings.TrimSpace(avatarURL)
	if avatarURL == "" {
		user.AvatarURL = nil
	} else {
		user.AvatarURL = &avatarURL
	}

	if err := u.repo.SaveUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userService) DeleteAccount(userID uint) error {
	if userID == 0 {
		return ErrUserNotFound
	}

	if err := u.repo.DeleteUser(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// SKILLS

func (u *userService) ListSkills() ([]dto.SkillResponse, error) {
	skills, err := u.skillRepo.ListSkills()
	if err != nil {
		return nil, err
	}

	out := make([]dto.SkillResponse, 0, len(skills))
	for _, s := range skills {
		out = append(out, dto.SkillResponse{
			ID:   s.ID,
			Name: s.Name,
		})
	}
	return out, nil
}

func (u *userService) GetUserSkills(userID uint) ([]uint, error) {
	if _, err := u.GetProfile(userID); err != nil {
		return nil, err
	}

	ids, err := u.skillRepo.GetUserSkillIDs(userID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	return ids, nil
}

func (u *userService) SetUserSkills(userID uint, skillIDs []uint) error {
	if _, err := u.GetProfile(userID); err != nil {
		return err
	}

	return u.skillRepo.ReplaceUserSkills(userID, skillIDs)
}

func (u *userService) IsAdmin(userID uint) (bool, error) {
	user, err := u.GetProfile(userID)
	if err != nil {
		return false, err
	}
	return user.IsAdmin, nil
}
