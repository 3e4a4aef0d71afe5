package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
	"github.com/hercules-fit/hercules-api/pkg/logger"
)

// ImageStore is the slice of the media gateway the content service needs:
// persisting post images under generated names and removing them again when
// a creation fails or a post is deleted.
type ImageStore interface {
	SavePostImage(fh *multipart.FileHeader) (string, error)
	RemovePostImage(filename string) error
}

// CreatePostInput carries one multipart post creation.
type CreatePostInput struct {
	Description string
	DurationSec int64
	GPX         []byte // nil when no track file was uploaded
	Images      []*multipart.FileHeader
}

// CommentView is a comment joined with its author's username.
type CommentView struct {
	ID        uint   `json:"id"`
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// PostDetail composes everything a post page needs.
type PostDetail struct {
	ID            uint          `json:"id"`
	UserID        uint          `json:"user_id"`
	Username      string        `json:"username"`
	Description   string        `json:"description"`
	CreatedAt     string        `json:"created_at"`
	Duration      string        `json:"duration"`
	HasGPS        bool          `json:"has_gps"`
	Images        []string      `json:"images"`
	Comments      []CommentView `json:"comments"`
	LikeCount     int64         `json:"like_count"`
	LikedByViewer bool          `json:"liked_by_viewer"`
}

// PostSummary is one feed entry.
type PostSummary struct {
	ID            uint    `json:"id"`
	UserID        uint    `json:"user_id"`
	Username      string  `json:"username"`
	ProfilePhoto  string  `json:"profile_photo"`
	Description   string  `json:"description"`
	CreatedAt     string  `json:"created_at"`
	Duration      string  `json:"duration"`
	HasGPS        bool    `json:"has_gps"`
	Thumbnail     *string `json:"thumbnail"`
	LikeCount     int64   `json:"like_count"`
	LikedByViewer bool    `json:"liked_by_viewer"`
}

// ContentService manages posts with their images, comments and likes, and
// composes the feed over the social graph. It holds the gorm handle directly
// because creation and deletion are multi-row transactions.
type ContentService struct {
	db      *gorm.DB
	posts   repository.PostRepository
	friends repository.FriendshipRepository
	users   repository.UserRepository
	store   ImageStore
}

func NewContentService(db *gorm.DB, posts repository.PostRepository, friends repository.FriendshipRepository, users repository.UserRepository, store ImageStore) *ContentService {
	return &ContentService{db: db, posts: posts, friends: friends, users: users, store: store}
}

func formatDuration(sec int64) string {
	if sec < 0 {
		sec = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", sec/3600, (sec%3600)/60, sec%60)
}

// ParseDuration accepts HH:MM:SS and returns total seconds.
func ParseDuration(s string) (int64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return 0, apperr.InvalidInput("duration must be HH:MM:SS")
	}
	var h, m, sec int64
	if _, err := fmt.Sscanf(s, "%d:%d:%d", &h, &m, &sec); err != nil {
		return 0, apperr.InvalidInput("duration must be HH:MM:SS")
	}
	if h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, apperr.InvalidInput("duration must be HH:MM:SS")
	}
	return h*3600 + m*60 + sec, nil
}

// CreatePost parses the optional GPS track, then writes the post, its track
// and its image rows in a single transaction. A track parse failure aborts
// the whole creation; files already written for a failed transaction are
// removed again.
func (s *ContentService) CreatePost(ctx context.Context, ownerID uint, in CreatePostInput) (uint, error) {
	var (
		gpsJSON string
		hasGPS  bool
	)
	if len(in.GPX) > 0 {
		points, err := ParseTrack(in.GPX)
		if err != nil {
			return 0, err
		}
		raw, err := json.Marshal(points)
		if err != nil {
			return 0, apperr.Internal(err)
		}
		gpsJSON = string(raw)
		hasGPS = true
	}

	var saved []string
	post := &model.Post{
		UserID:      ownerID,
		Description: in.Description,
		GPSData:     gpsJSON,
		HasGPS:      hasGPS,
		DurationSec: in.DurationSec,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, fh := range in.Images {
			filename, err := s.store.SavePostImage(fh)
			if err != nil {
				return err
			}
			saved = append(saved, filename)
			img := &model.PostImage{PostID: post.ID, Filename: filename}
			if err := tx.Create(img).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		for _, filename := range saved {
			if rmErr := s.store.RemovePostImage(filename); rmErr != nil {
				logger.Warn("could not remove image of failed post",
					zap.String("filename", filename), zap.Error(rmErr))
			}
		}
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return 0, ae
		}
		return 0, apperr.Internal(err)
	}
	return post.ID, nil
}

// DeletePost removes the post's comments, images and likes together with the
// post itself as one transaction. Only the owner may delete.
func (s *ContentService) DeletePost(ctx context.Context, postID, requesterID uint) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post not found")
		}
		return apperr.Internal(err)
	}
	if post.UserID != requesterID {
		return apperr.Unauthorized("only the owner can delete a post")
	}

	images, err := s.posts.ListImages(ctx, postID)
	if err != nil {
		return apperr.Internal(err)
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&model.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, postID).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}

	// Rows are gone; file removal is best effort.
	for _, img := range images {
		if err := s.store.RemovePostImage(img.Filename); err != nil {
			logger.Warn("could not remove image of deleted post",
				zap.String("filename", img.Filename), zap.Error(err))
		}
	}
	return nil
}

func (s *ContentService) AddComment(ctx context.Context, postID, authorID uint, content string) error {
	if strings.TrimSpace(content) == "" {
		return apperr.InvalidInput("comment must not be empty")
	}
	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("post not found")
		}
		return apperr.Internal(err)
	}
	c := &model.Comment{PostID: postID, UserID: authorID, Content: content}
	if err := s.posts.CreateComment(ctx, c); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *ContentService) ListComments(ctx context.Context, postID uint) ([]CommentView, error) {
	comments, err := s.posts.ListComments(ctx, postID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return s.commentViews(ctx, comments)
}

func (s *ContentService) commentViews(ctx context.Context, comments []*model.Comment) ([]CommentView, error) {
	res := make([]CommentView, 0, len(comments))
	for _, c := range comments {
		u, err := s.users.GetByID(ctx, c.UserID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		res = append(res, CommentView{
			ID:        c.ID,
			UserID:    c.UserID,
			Username:  u.Username,
			Content:   c.Content,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}
	return res, nil
}

// Like is idempotent; liking twice keeps exactly one like.
func (s *ContentService) Like(ctx context.Context, postID, userID uint) error {
	if err := s.posts.CreateLike(ctx, postID, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Unlike of a never-liked post is a no-op.
func (s *ContentService) Unlike(ctx context.Context, postID, userID uint) error {
	if err := s.posts.DeleteLike(ctx, postID, userID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func (s *ContentService) GetPost(ctx context.Context, postID, viewerID uint) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal(err)
	}

	author, err := s.users.GetByID(ctx, post.UserID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	images, err := s.posts.ListImages(ctx, postID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	urls := make([]string, 0, len(images))
	for _, img := range images {
		urls = append(urls, postImageURL(img.Filename))
	}

	comments, err := s.ListComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	likeCount, err := s.posts.CountLikes(ctx, postID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	liked, err := s.posts.HasLiked(ctx, postID, viewerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return &PostDetail{
		ID:            post.ID,
		UserID:        post.UserID,
		Username:      author.Username,
		Description:   post.Description,
		CreatedAt:     post.CreatedAt.Format(time.RFC3339),
		Duration:      formatDuration(post.DurationSec),
		HasGPS:        post.HasGPS,
		Images:        urls,
		Comments:      comments,
		LikeCount:     likeCount,
		LikedByViewer: liked,
	}, nil
}

// Feed lists posts of the viewer and all accepted friends, newest first.
func (s *ContentService) Feed(ctx context.Context, viewerID uint) ([]PostSummary, error) {
	friendIDs, err := s.friends.ListAcceptedIDs(ctx, viewerID)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	ids := append(friendIDs, viewerID)

	posts, err := s.posts.ListByUsers(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	res := make([]PostSummary, 0, len(posts))
	for _, p := range posts {
		author, err := s.users.GetByID(ctx, p.UserID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		likeCount, err := s.posts.CountLikes(ctx, p.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		liked, err := s.posts.HasLiked(ctx, p.ID, viewerID)
		if err != nil {
			return nil, apperr.Internal(err)
		}
		img, err := s.posts.FirstImage(ctx, p.ID)
		if err != nil {
			return nil, apperr.Internal(err)
		}

		summary := PostSummary{
			ID:            p.ID,
			UserID:        p.UserID,
			Username:      author.Username,
			ProfilePhoto:  profilePhotoURL(author.ProfilePhoto),
			Description:   p.Description,
			CreatedAt:     p.CreatedAt.Format(time.RFC3339),
			Duration:      formatDuration(p.DurationSec),
			HasGPS:        p.HasGPS,
			LikeCount:     likeCount,
			LikedByViewer: liked,
		}
		if img != nil {
			u := postImageURL(img.Filename)
			summary.Thumbnail = &u
		}
		res = append(res, summary)
	}
	return res, nil
}

// GetTrack returns the stored points, an empty slice when the post has no
// track, and an Internal error for malformed stored data.
func (s *ContentService) GetTrack(ctx context.Context, postID uint) ([]TrackPoint, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal(err)
	}
	if !post.HasGPS || post.GPSData == "" {
		return []TrackPoint{}, nil
	}
	var points []TrackPoint
	if err := json.Unmarshal([]byte(post.GPSData), &points); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "internal error", err)
	}
	return points, nil
}
