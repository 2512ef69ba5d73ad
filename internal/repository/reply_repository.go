package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/campusboard/campusboard-api/internal/models"
)

// ReplyRepository manages persistence for post replies.
type ReplyRepository struct {
	db *sqlx.DB
}

// NewReplyRepository constructs a new reply repository.
func NewReplyRepository(db *sqlx.DB) *ReplyRepository {
	return &ReplyRepository{db: db}
}

const replyDetailQuery = `
	SELECT rp.id, rp.post_id, rp.author_id, rp.content, rp.created_at,
	       u.name AS author_name, u.email AS author_email
	FROM replies rp
	JOIN users u ON u.id = rp.author_id`

// ListByPost returns replies of a post oldest first with author fields.
func (r *ReplyRepository) ListByPost(ctx context.Context, postID string) ([]models.ReplyDetail, error) {
	query := replyDetailQuery + ` WHERE rp.post_id = $1 ORDER BY rp.created_at ASC`
	var replies []models.ReplyDetail
	if err := r.db.SelectContext(ctx, &replies, query, postID); err != nil {
		return nil, fmt.Errorf("list replies by post: %w", err)
	}
	return replies, nil
}

// FindDetailByID returns a single joined reply.
func (r *ReplyRepository) FindDetailByID(ctx context.Context, id string) (*models.ReplyDetail, error) {
	query := replyDetailQuery + ` WHERE rp.id = $1`
	var reply models.ReplyDetail
	if err := r.db.GetContext(ctx, &reply, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find reply: %w", err)
	}
	return &reply, nil
}

// Create inserts a reply.
func (r *ReplyRepository) Create(ctx context.Context, reply *models.Reply) error {
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now().UTC()
	}

	const query = `INSERT INTO replies (id, post_id, author_id, content, created_at) VALUES (:id, :post_id, :author_id, :content, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reply); err != nil {
		return fmt.Errorf("create reply: %w", err)
	}
	return nil
}
