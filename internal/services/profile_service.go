package services

import (
	"olympusblog/internal/models"
	"olympusblog/internal/repositories"
)

// ProfileService resolves the social graph: viewer-relative profiles and the
// follow toggle.
type ProfileService struct {
	userRepo repositories.UserRepository
	edgeRepo repositories.EdgeRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository, edgeRepo repositories.EdgeRepository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		edgeRepo: edgeRepo,
	}
}

// GetProfile projects the named user relative to the viewer. An empty
// viewerID means anonymous, for whom following is always false.
func (s *ProfileService) GetProfile(username, viewerID string) (*models.Profile, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	profile, err := projectProfile(s.edgeRepo, user, viewerID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// GetProfiles returns up to 20 profiles whose username or bio matches the
// search term.
func (s *ProfileService) GetProfiles(search, viewerID string) ([]models.Profile, error) {
	users, err := s.userRepo.Search(search, 20)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.Profile, 0, len(users))
	for i := range users {
		profile, err := projectProfile(s.edgeRepo, &users[i], viewerID)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// FollowProfile adds the follow edge (followee=target, follower=viewer) and
// returns the up-to-date profile. Following an already-followed user or
// yourself is a no-op; the response never reveals whether a mutation
// happened.
func (s *ProfileService) FollowProfile(username, viewerID string) (*models.Profile, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if target.ID != viewerID {
		if err := s.edgeRepo.Add(repositories.EdgeFollow, viewerID, target.ID); err != nil {
			return nil, err
		}
	}
	profile, err := projectProfile(s.edgeRepo, target, viewerID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UnfollowProfile removes the follow edge; removing an absent edge is a
// no-op.
func (s *ProfileService) UnfollowProfile(username, viewerID string) (*models.Profile, error) {
	target, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if err := s.edgeRepo.Remove(repositories.EdgeFollow, viewerID, target.ID); err != nil {
		return nil, err
	}
	profile, err := projectProfile(s.edgeRepo, target, viewerID)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// projectProfile builds the viewer-relative view of a user: the following
// flag is false for anonymous viewers regardless of edge state.
func projectProfile(edges repositories.EdgeRepository, user *models.User, viewerID string) (models.Profile, error) {
	followers, err := edges.Count(repositories.EdgeFollow, user.ID)
	if err != nil {
		return models.Profile{}, err
	}
	followee, err := edges.SubjectCount(repositories.EdgeFollow, user.ID)
	if err != nil {
		return models.Profile{}, err
	}
	following := false
	if viewerID != "" {
		following, err = edges.Exists(repositories.EdgeFollow, viewerID, user.ID)
		if err != nil {
			return models.Profile{}, err
		}
	}
	return models.Profile{
		ID:        user.ID,
		Username:  user.Username,
		Bio:       user.Bio,
		Image:     user.Image,
		Following: following,
		Followers: followers,
		Followee:  followee,
	}, nil
}
