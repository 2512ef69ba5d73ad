package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/campusboard/campusboard-api/internal/models"
	appErrors "github.com/campusboard/campusboard-api/pkg/errors"
)

const feedCacheKey = "feed:v1"

type postLister interface {
	ListDetailed(ctx context.Context) ([]models.PostDetail, error)
}

type lectureReviewLister interface {
	ListDetailed(ctx context.Context) ([]models.LectureReviewDetail, error)
}

type feedCache interface {
	Enabled() bool
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any) error
	Invalidate(ctx context.Context, keys ...string) error
}

// FeedService merges posts and lecture reviews into one timeline.
type FeedService struct {
	posts   postLister
	reviews lectureReviewLister
	cache   feedCache
	logger  *zap.Logger
}

// NewFeedService constructs FeedService. The cache may be nil.
func NewFeedService(posts postLister, reviews lectureReviewLister, cache feedCache, logger *zap.Logger) *FeedService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FeedService{posts: posts, reviews: reviews, cache: cache, logger: logger}
}

// Feed returns all posts and lecture reviews merged into a single
// list, newest first. The merged result is cached briefly since the
// feed is the most requested read path.
func (s *FeedService) Feed(ctx context.Context) ([]models.FeedItem, error) {
	if s.cacheEnabled() {
		var cached []models.FeedItem
		if err := s.cache.Get(ctx, feedCacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	posts, err := s.posts.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feed posts")
	}

	reviews, err := s.reviews.ListDetailed(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load feed reviews")
	}

	items := make([]models.FeedItem, 0, len(posts)+len(reviews))
	for i := range posts {
		items = append(items, models.FeedItem{
			Type:      models.FeedItemPost,
			CreatedAt: posts[i].CreatedAt,
			Post:      &posts[i],
		})
	}
	for i := range reviews {
		items = append(items, models.FeedItem{
			Type:          models.FeedItemLectureReview,
			CreatedAt:     reviews[i].CreatedAt,
			LectureReview: &reviews[i],
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID() > items[j].ID()
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})

	if s.cacheEnabled() {
		if err := s.cache.Set(ctx, feedCacheKey, items); err != nil {
			s.logger.Warn("failed to cache feed", zap.Error(err))
		}
	}
	return items, nil
}

// InvalidateFeed drops the cached feed after any write that changes it.
func (s *FeedService) InvalidateFeed(ctx context.Context) {
	if !s.cacheEnabled() {
		return
	}
	if err := s.cache.Invalidate(ctx, feedCacheKey); err != nil {
		s.logger.Warn("failed to invalidate feed cache", zap.Error(err))
	}
}

func (s *FeedService) cacheEnabled() bool {
	return s.cache != nil && s.cache.Enabled()
}
