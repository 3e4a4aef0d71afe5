package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hercules-fit/hercules-api/internal/model"
)

type PostRepository interface {
	GetByID(ctx context.Context, id uint) (*model.Post, error)
	ListByUsers(ctx context.Context, userIDs []uint) ([]*model.Post, error)
	ListByUser(ctx context.Context, userID uint) ([]*model.Post, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)

	ListImages(ctx context.Context, postID uint) ([]*model.PostImage, error)
	FirstImage(ctx context.Context, postID uint) (*model.PostImage, error)

	CreateComment(ctx context.Context, c *model.Comment) error
	ListComments(ctx context.Context, postID uint) ([]*model.Comment, error)

	CreateLike(ctx context.Context, postID, userID uint) error
	DeleteLike(ctx context.Context, postID, userID uint) error
	CountLikes(ctx context.Context, postID uint) (int64, error)
	HasLiked(ctx context.Context, postID, userID uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) GetByID(ctx context.Context, id uint) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *postRepository) ListByUsers(ctx context.Context, userIDs []uint) ([]*model.Post, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) ListByUser(ctx context.Context, userID uint) ([]*model.Post, error) {
	var res []*model.Post
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *postRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Post{}).Where("user_id = ?", userID).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) ListImages(ctx context.Context, postID uint) ([]*model.PostImage, error) {
	var res []*model.PostImage
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&res).Error
	return res, err
}

func (r *postRepository) FirstImage(ctx context.Context, postID uint) (*model.PostImage, error) {
	var img model.PostImage
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").First(&img).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

func (r *postRepository) CreateComment(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *postRepository) ListComments(ctx context.Context, postID uint) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("id ASC").Find(&res).Error
	return res, err
}

// CreateLike is idempotent: liking twice leaves exactly one row.
func (r *postRepository) CreateLike(ctx context.Context, postID, userID uint) error {
	l := &model.Like{PostID: postID, UserID: userID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l).Error
}

// DeleteLike is a no-op when no like exists.
func (r *postRepository) DeleteLike(ctx context.Context, postID, userID uint) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.Like{}).Error
}

func (r *postRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Like{}).Where("post_id = ?", postID).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) HasLiked(ctx context.Context, postID, userID uint) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.Like{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
