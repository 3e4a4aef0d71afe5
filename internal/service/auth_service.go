package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hercules-fit/hercules-api/internal/apperr"
	"github.com/hercules-fit/hercules-api/internal/model"
	"github.com/hercules-fit/hercules-api/internal/repository"
	"github.com/hercules-fit/hercules-api/pkg/logger"
)

// passwordSymbols is the fixed punctuation set the policy accepts.
const passwordSymbols = `!@#$%^&*(),.?":{}|<>`

// RegisterInput carries a validated registration request.
type RegisterInput struct {
	Username      string
	Email         string
	Password      string
	FullName      string
	BirthDate     time.Time
	Gender        string
	WeightKg      float64
	HeightM       float64
	ActivityLevel float64
}

// LoginResult is a signed token plus the identity it embeds.
type LoginResult struct {
	Token  string `json:"token"`
	UserID uint   `json:"user_id"`
}

// AuthService verifies credentials, issues tokens and owns the account
// lifecycle. It holds the gorm handle directly for the delete cascade, which
// must run as one transaction.
type AuthService struct {
	db         *gorm.DB
	users      repository.UserRepository
	tokens     *TokenManager
	bcryptCost int
}

func NewAuthService(db *gorm.DB, users repository.UserRepository, tokens *TokenManager, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{db: db, users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// Register stores a new user with a salted irreversible password hash. A
// username/email collision surfaces as a generic failure, not a distinct
// conflict code.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (uint, error) {
	if in.ActivityLevel != 0 && !model.ValidActivityLevel(in.ActivityLevel) {
		return 0, apperr.InvalidInput("invalid activity level")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return 0, apperr.Internal(err)
	}

	u := &model.User{
		Username:      in.Username,
		Email:         in.Email,
		PasswordHash:  string(hash),
		FullName:      in.FullName,
		BirthDate:     in.BirthDate,
		Gender:        in.Gender,
		WeightKg:      in.WeightKg,
		HeightM:       in.HeightM,
		ActivityLevel: in.ActivityLevel,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logger.Warn("registration rejected: duplicate username or email",
				zap.String("username", in.Username))
			return 0, apperr.InvalidInput("could not register user")
		}
		return 0, apperr.Internal(err)
	}
	return u.ID, nil
}

// Login verifies the password against the stored hash and issues a signed
// token embedding user id and username.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.Unauthorized("wrong password")
	}

	token, err := s.tokens.Sign(u.ID, u.Username)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	return &LoginResult{Token: token, UserID: u.ID}, nil
}

// ChangePassword requires the old password to verify and the new one to pass
// the policy. Policy violations are reported in a deterministic order.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(oldPassword)); err != nil {
		return apperr.Unauthorized("current password is not correct")
	}

	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := s.users.UpdatePasswordHash(ctx, userID, string(hash)); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// ValidatePassword enforces the policy. Checks run in a fixed order so the
// first violated rule is always the one reported: length, uppercase,
// lowercase, digit, symbol.
func ValidatePassword(pw string) error {
	if len(pw) < 8 {
		return apperr.InvalidInput("password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper {
		return apperr.InvalidInput("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return apperr.InvalidInput("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return apperr.InvalidInput("password must contain at least one digit")
	}
	if !strings.ContainsAny(pw, passwordSymbols) {
		return apperr.InvalidInput("password must contain a special character")
	}
	return nil
}

// DeleteAccount removes the user together with their posts (and the posts'
// comments, images and likes) and friendship rows, in one transaction so a
// failure mid-sequence leaves nothing orphaned.
func (s *AuthService) DeleteAccount(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var postIDs []uint
		if err := tx.Model(&model.Post{}).Where("user_id = ?", userID).
			Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.PostImage{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&model.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&model.Post{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("requester_id = ? OR recipient_id = ?", userID, userID).
			Delete(&model.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, userID).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}
	return nil
}
