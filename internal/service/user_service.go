package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
)

// Public URL prefixes for the two media kinds. Stored rows keep only the
// filename; URLs are composed on the way out.
const (
	profilePhotoURLPrefix = "/media/profile/"
	postImageURLPrefix    = "/media/posts/"
)

func profilePhotoURL(filename string) string {
	if filename == "" {
		return ""
	}
	return profilePhotoURLPrefix + filename
}

func postImageURL(filename string) string {
	if filename == "" {
		return ""
	}
	return postImageURLPrefix + filename
}

// Profile is the health-profile surface of a user.
type Profile struct {
	Username      string  `json:"username"`
	WeightKg      float64 `json:"weight_kg"`
	HeightM       float64 `json:"height_m"`
	BirthDate     string  `json:"birth_date"`
	ActivityLevel float64 `json:"activity_level"`
	Gender        string  `json:"gender"`
	ProfilePhoto  string  `json:"profile_photo"`
}

// ProfileUpdate carries the mutable health attributes.
type ProfileUpdate struct {
	WeightKg      float64
	HeightM       float64
	BirthDate     time.Time
	Gender        string
	ActivityLevel float64
}

// PostThumbnail is one entry of a profile's post grid.
type PostThumbnail struct {
	ID     uint   `json:"id"`
	UserID uint   `json:"user_id"`
	Image  string `json:"image,omitempty"`
}

// ProfileSummary is what a profile page renders.
type ProfileSummary struct {
	UserID       uint            `json:"user_id"`
	Username     string          `json:"username"`
	ProfilePhoto string          `json:"profile_photo"`
	FriendCount  int64           `json:"friend_count"`
	PostCount    int64           `json:"post_count"`
	Posts        []PostThumbnail `json:"posts"`
}

// UserService exposes the profile surface over the credential store.
type UserService struct {
	users   repository.UserRepository
	friends repository.FriendshipRepository
	posts   repository.PostRepository
}

func NewUserService(users repository.UserRepository, friends repository.FriendshipRepository, posts repository.PostRepository) *UserService {
	return &UserService{users: users, friends: friends, posts: posts}
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*Profile, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return &Profile{
		Username:      u.Username,
		WeightKg:      u.WeightKg,
		HeightM:       u.HeightM,
		BirthDate:     u.BirthDate.Format("2006-01-02"),
		ActivityLevel: u.ActivityLevel,
		Gender:        u.Gender,
		ProfilePhoto:  profilePhotoURL(u.ProfilePhoto),
	}, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileUpdate) error {
	if !model.ValidActivityLevel(in.ActivityLevel) {
		return apperr.InvalidInput("invalid activity level")
	}
	fields := map[string]any{
		"weight_kg":      in.WeightKg,
		"height_m":       in.HeightM,
		"birth_date":     in.BirthDate,
		"gender":         in.Gender,
		"activity_level": in.ActivityLevel,
	}
	if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *UserService) FullName(ctx context.Context, userID uint) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperr.NotFound("user not found")
		}
		return "", apperr.Internal(err)
	}
	return u.FullName, nil
}

func (s *UserService) UpdateFullName(ctx context.Context, userID uint, fullName string) error {
	if strings.TrimSpace(fullName) == "" {
		return apperr.InvalidInput("full name must not be empty")
	}
	if err := s.users.UpdateProfile(ctx, userID, map[string]any{"full_name": fullName}); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *UserService) Weight(ctx context.Context, userID uint) (float64, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("user not found")
		}
		return 0, apperr.Internal(err)
	}
	return u.WeightKg, nil
}

// Summary composes the profile page for any user: counts plus post
// thumbnails, newest first.
func (s *UserService) Summary(ctx context.Context, userID uint) (*ProfileSummary, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}

	friendCount, err := s.friends.CountAccepted(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	postCount, err := s.posts.CountByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	posts, err := s.posts.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	thumbs := make([]PostThumbnail, 0, len(posts))
	for _, p := range posts {
		img, err := s.posts.FirstImage(ctx, p.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		t := PostThumbnail{ID: p.ID, UserID: userID}
		if img != nil {
			t.Image = postImageURL(img.Filename)
		}
		thumbs = append(thumbs, t)
	}

	return &ProfileSummary{
		UserID:       userID,
		Username:     u.Username,
		ProfilePhoto: profilePhotoURL(u.ProfilePhoto),
		FriendCount:  friendCount,
		PostCount:    postCount,
		Posts:        thumbs,
	}, nil
}

// LookupID resolves an exact username to a user id.
func (s *UserService) LookupID(ctx context.Context, username string) (uint, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperr.NotFound("user not found")
		}
		return 0, apperr.Internal(err)
	}
	return u.ID, nil
}

// SetProfilePhoto records the already-stored filename for the user.
func (s *UserService) SetProfilePhoto(ctx context.Context, userID uint, filename string) error {
	if err := s.users.UpdateProfilePhoto(ctx, userID, filename); err != nil {
		return apperr.Internal(err)
	}
	return nil
}
