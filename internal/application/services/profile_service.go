package services

import (
	"context"
	"sync"

	"github.com/prakasam1973/MOM-Tracker/internal/domain/entities"
	"github.com/prakasam1973/MOM-Tracker/internal/infrastructure/logger"
	"github.com/prakasam1973/MOM-Tracker/internal/ports"
)

// ProfileService keeps the single user profile document.
type ProfileService struct {
	mu      sync.Mutex
	profile entities.Profile
	repo    ports.ProfileRepository
	logger  *logger.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(repo ports.ProfileRepository, log *logger.Logger) *ProfileService {
	return &ProfileService{
		profile: repo.Load(context.Background()),
		repo:    repo,
		logger:  log.WithComponent("profile_service"),
	}
}

// Get returns the current profile.
func (s *ProfileService) Get() entities.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// Save replaces the whole profile document.
func (s *ProfileService) Save(ctx context.Context, profile entities.Profile) entities.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profile = profile
	if err := s.repo.Save(ctx, s.profile); err != nil {
		s.logger.Errorw("Failed to persist profile, in-memory state retained", "error", err)
	}
	s.logger.Infow("Profile saved")
	return s.profile
}
