package services

import (
	"errors"
	"fmt"
	"strings"

	"SlowDown/models"
	"SlowDown/quota"
	"SlowDown/repositories"
	"SlowDown/timeutil"

	"github.com/rs/zerolog"
)

type UserService struct {
	UserRepo    repositories.UserRepository
	UsageRepo   repositories.UsageRepository
	RequestRepo repositories.TimeRequestRepository
	OffsetHours int
	Log         zerolog.Logger
}

func NewUserService(userRepo repositories.UserRepository, usageRepo repositories.UsageRepository, requestRepo repositories.TimeRequestRepository, offsetHours int, log zerolog.Logger) *UserService {
	return &UserService{
		UserRepo:    userRepo,
		UsageRepo:   usageRepo,
		RequestRepo: requestRepo,
		OffsetHours: offsetHours,
		Log:         log.With().Str("component", "users").Logger(),
	}
}

func (s *UserService) ListUsers() ([]models.User, error) {
	return s.UserRepo.FindAll()
}

// UserOverview is a user record joined with today's usage and the derived
// quota state.
type UserOverview struct {
	User             models.User  `json:"user"`
	TodayUsedMinutes float64      `json:"todayUsageMinutes"`
	Quota            quota.Status `json:"quota"`
	CanRequestTime   bool         `json:"canRequestTime"`
}

// GetOverview loads a user together with the block decision for right now.
func (s *UserService) GetOverview(userID string) (UserOverview, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		return UserOverview{}, err
	}

	var used float64
	record, err := s.UsageRepo.FindByUserAndDate(userID, timeutil.TodayKey(s.OffsetHours))
	if err == nil {
		used = record.TotalMinutes
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return UserOverview{}, err
	}

	status := quota.Compute(quota.Inputs{
		DailyLimitMinutes: user.DailyLimitMinutes,
		BonusMinutes:      user.BonusMinutes,
		TodayUsedMinutes:  used,
		IsBlocked:         user.IsBlocked,
	})
	return UserOverview{
		User:             user,
		TodayUsedMinutes: used,
		Quota:            status,
		CanRequestTime:   status.CanRequestTime(user.HasPendingRequest()),
	}, nil
}

// CreateUserInput is the admin create payload.
type CreateUserInput struct {
	Email             string `json:"email"`
	DisplayName       string `json:"displayName"`
	Role              string `json:"role"`
	DailyLimitMinutes *int   `json:"dailyLimitMinutes"`
}

func (s *UserService) CreateUser(input CreateUserInput) (models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	role := input.Role
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}

	limit := models.DefaultDailyLimit
	if input.DailyLimitMinutes != nil {
		limit = *input.DailyLimitMinutes
		if limit < 0 {
			limit = 0
		}
	}

	user := models.User{
		Email:             email,
		DisplayName:       input.DisplayName,
		Role:              role,
		DailyLimitMinutes: limit,
	}
	if err := s.UserRepo.Create(&user); err != nil {
		return models.User{}, err
	}

	s.Log.Info().Str("email", email).Str("role", role).Msg("user created by admin")
	return user, nil
}

// UpdateUserInput carries a partial update. Nil fields are untouched.
type UpdateUserInput struct {
	DisplayName       *string `json:"displayName"`
	PhotoURL          *string `json:"photoURL"`
	DailyLimitMinutes *int    `json:"dailyLimitMinutes"`
	BonusMinutes      *int    `json:"bonusMinutes"`
	IsBlocked         *bool   `json:"isBlocked"`
	BlockReason       *string `json:"blockReason"`
	Role              *string `json:"role"`
}

func (in UpdateUserInput) touchesAdminFields() bool {
	return in.DailyLimitMinutes != nil || in.BonusMinutes != nil ||
		in.IsBlocked != nil || in.BlockReason != nil || in.Role != nil
}

// UpdateUser applies a patch. Users may edit only their own profile
// fields; limits, bonus, blocks and roles are admin-only. Negative minute
// values are clamped to zero at this boundary.
func (s *UserService) UpdateUser(actor models.User, targetID string, input UpdateUserInput) (models.User, error) {
	if actor.ID != targetID && !actor.IsAdmin() {
		return models.User{}, ErrForbidden
	}
	if !actor.IsAdmin() && input.touchesAdminFields() {
		return models.User{}, fmt.Errorf("%w: only admin can update these fields", ErrForbidden)
	}

	user, err := s.UserRepo.FindByID(targetID)
	if err != nil {
		return models.User{}, err
	}

	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.PhotoURL != nil {
		user.PhotoURL = *input.PhotoURL
	}
	if input.DailyLimitMinutes != nil {
		user.DailyLimitMinutes = max(0, *input.DailyLimitMinutes)
	}
	if input.BonusMinutes != nil {
		user.BonusMinutes = max(0, *input.BonusMinutes)
	}
	if input.Role != nil {
		if *input.Role != models.RoleUser && *input.Role != models.RoleAdmin {
			return models.User{}, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, *input.Role)
		}
		user.Role = *input.Role
	}
	if input.IsBlocked != nil {
		user.IsBlocked = *input.IsBlocked
		if !user.IsBlocked {
			// Only an explicit admin unblock clears the reason.
			user.BlockReason = ""
		}
	}
	if input.BlockReason != nil && user.IsBlocked {
		user.BlockReason = *input.BlockReason
	}

	if err := s.UserRepo.Save(user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
