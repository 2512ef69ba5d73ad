package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusboard/campusboard-api/internal/models"
	"github.com/campusboard/campusboard-api/internal/repository"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
)

const maxPostLength = 280

type postRepository interface {
	ListDetailed(ctx context.Context) ([]models.PostDetail, error)
	FindByID(ctx context.Context, id string) (*models.Post, error)
	FindDetailByID(ctx context.Context, id string) (*models.PostDetail, error)
	Create(ctx context.Context, post *models.Post) error
	DeleteCascade(ctx context.Context, id string) error
}

type replyRepository interface {
	ListByPost(ctx context.Context, postID string) ([]models.ReplyDetail, error)
	FindDetailByID(ctx context.Context, id string) (*models.ReplyDetail, error)
	Create(ctx context.Context, reply *models.Reply) error
}

type likeRepository interface {
	Find(ctx context.Context, postID, userID string) (*models.PostLike, error)
	Create(ctx context.Context, like *models.PostLike) error
	Delete(ctx context.Context, postID, userID string) error
}

// CreatePostRequest captures the post creation payload.
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
}

// CreateReplyRequest captures the reply creation payload.
type CreateReplyRequest struct {
	PostID  string `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// ToggleLikeRequest captures the like toggle payload.
type ToggleLikeRequest struct {
	PostID string `json:"postId" validate:"required"`
}

// PostService coordinates post, reply and like operations.
type PostService struct {
	posts     postRepository
	replies   replyRepository
	likes     likeRepository
	feed      feedInvalidator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPostService constructs PostService.
func NewPostService(posts postRepository, replies replyRepository, likes likeRepository, feed feedInvalidator, validate *validator.Validate, logger *zap.Logger) *PostService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostService{posts: posts, replies: replies, likes: likes, feed: feed, validator: validate, logger: logger}
}

// List returns all posts with engagement data, newest first.
func (s *PostService) List(ctx context.Context) ([]models.PostDetail, error) {
	posts, err := s.posts.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list posts")
	}
	return posts, nil
}

// Create posts a new entry authored by the acting user.
func (s *PostService) Create(ctx context.Context, req CreatePostRequest, actor models.UserInfo) (*models.PostDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "content is required and must be at most 280 characters")
	}

	content := sanitizeContent(req.Content)
	if content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "content is required")
	}
	if len([]rune(content)) > maxPostLength {
		return nil, appErrors.Clone(appErrors.ErrValidation, "content must be at most 280 characters")
	}

	post := &models.Post{AuthorID: actor.ID, Content: content}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create post")
	}

	detail, err := s.posts.FindDetailByID(ctx, post.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load created post")
	}

	if s.feed != nil {
		s.feed.InvalidateFeed(ctx)
	}
	return detail, nil
}

// Delete removes a post and its dependents. Only the author may delete.
func (s *PostService) Delete(ctx context.Context, id string, actor models.UserInfo) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "post id is required")
	}

	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}

	if post.AuthorID != actor.ID {
		return appErrors.Clone(appErrors.ErrForbidden, "only the author can delete a post")
	}

	if err := s.posts.DeleteCascade(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete post")
	}

	if s.feed != nil {
		s.feed.InvalidateFeed(ctx)
	}

	s.logger.Info("post deleted", zap.String("post_id", id), zap.String("author_id", actor.ID))
	return nil
}

// ToggleLike flips the like state of the (post, user) pair and reports
// the resulting state. A concurrent duplicate insert is resolved by the
// storage-level uniqueness constraint and reported as already liked.
func (s *PostService) ToggleLike(ctx context.Context, req ToggleLikeRequest, actor models.UserInfo) (bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "post id is required")
	}

	if _, err := s.posts.FindByID(ctx, req.PostID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}

	liked := true
	if _, err := s.likes.Find(ctx, req.PostID, actor.ID); err == nil {
		if err := s.likes.Delete(ctx, req.PostID, actor.ID); err != nil && !errors.Is(err, sql.ErrNoRows) {
			return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove like")
		}
		liked = false
	} else if errors.Is(err, sql.ErrNoRows) {
		createErr := s.likes.Create(ctx, &models.PostLike{PostID: req.PostID, UserID: actor.ID})
		if createErr != nil && !errors.Is(createErr, repository.ErrAlreadyLiked) {
			return false, appErrors.Wrap(createErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to add like")
		}
	} else {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check like state")
	}

	if s.feed != nil {
		s.feed.InvalidateFeed(ctx)
	}
	return liked, nil
}

// ListReplies returns the replies of a post, oldest first.
func (s *PostService) ListReplies(ctx context.Context, postID string) ([]models.ReplyDetail, error) {
	if postID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "post id is required")
	}

	replies, err := s.replies.ListByPost(ctx, postID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list replies")
	}
	return replies, nil
}

// CreateReply adds a threaded comment to an existing post.
func (s *PostService) CreateReply(ctx context.Context, req CreateReplyRequest, actor models.UserInfo) (*models.ReplyDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "post id and content are required")
	}

	content := sanitizeContent(req.Content)
	if content == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "content is required")
	}

	if _, err := s.posts.FindByID(ctx, req.PostID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}

	reply := &models.Reply{PostID: req.PostID, AuthorID: actor.ID, Content: content}
	if err := s.replies.Create(ctx, reply); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create reply")
	}

	detail, err := s.replies.FindDetailByID(ctx, reply.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load created reply")
	}

	if s.feed != nil {
		s.feed.InvalidateFeed(ctx)
	}
	return detail, nil
}
