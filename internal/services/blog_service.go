package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/scribehq/scribe-be/internal/apperrors"
	"github.com/scribehq/scribe-be/internal/models"
)

// BlogServiceProvider defines the interface for blog services.
type BlogServiceProvider interface {
	Create(ctx context.Context, q sqlx.ExtContext, blog models.Blog) (models.Blog, error)
	GetAll(ctx context.Context, q sqlx.ExtContext) ([]models.Blog, error)
	GetByID(ctx context.Context, q sqlx.ExtContext, id string) (models.Blog, error)
	Update(ctx context.Context, q sqlx.ExtContext, id string, in models.Blog) (models.Blog, error)
	Delete(ctx context.Context, q sqlx.ExtContext, id string) error
}

// BlogService provides business logic for blog management.
type BlogService struct{}

// NewBlogService creates a new BlogService.
func NewBlogService() *BlogService {
	return &BlogService{}
}

const blogColumns = `id, title, content, author, author_avatar, created_at, read_time, tags, featured, likes, bookmarks, created_by, updated_by, updated_at`

// titleExists checks whether another blog already uses the title. excludeID
// is skipped so updates don't collide with the target itself.
func (s *BlogService) titleExists(ctx context.Context, q sqlx.ExtContext, title, excludeID string) (bool, error) {
	var exists bool
	err := sqlx.GetContext(ctx, q, &exists,
		`SELECT EXISTS(SELECT 1 FROM blogs WHERE title = ? AND id != ?)`, title, excludeID)
	if err != nil {
		return false, fmt.Errorf("checking title uniqueness: %w", err)
	}
	return exists, nil
}

// Create persists a new blog. Returns a conflict error when the title is
// taken; the unique index on title backs the pre-check against concurrent
// creates.
func (s *BlogService) Create(ctx context.Context, q sqlx.ExtContext, blog models.Blog) (models.Blog, error) {
	exists, err := s.titleExists(ctx, q, blog.Title, "")
	if err != nil {
		return models.Blog{}, err
	}
	if exists {
		return models.Blog{}, apperrors.Conflict("blog with this title already exists", "title", blog.Title)
	}

	blog.ID = uuid.New().String()
	blog.UpdatedAt = time.Now().UTC()

	_, err = q.ExecContext(ctx,
		`INSERT INTO blogs (id, title, content, author, author_avatar, created_at, read_time, tags, featured, likes, bookmarks, created_by, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		blog.ID, blog.Title, blog.Content, blog.Author, blog.AuthorAvatar, blog.CreatedAt,
		blog.ReadTime, blog.Tags, blog.Featured, blog.Likes, blog.Bookmarks, blog.CreatedBy, blog.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Blog{}, apperrors.Conflict("blog with this title already exists", "title", blog.Title)
		}
		return models.Blog{}, fmt.Errorf("inserting blog: %w", err)
	}
	return blog, nil
}

// GetAll returns every blog, newest display date first.
func (s *BlogService) GetAll(ctx context.Context, q sqlx.ExtContext) ([]models.Blog, error) {
	blogs := []models.Blog{}
	err := sqlx.SelectContext(ctx, q, &blogs,
		`SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC, updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying blogs: %w", err)
	}
	return blogs, nil
}

// GetByID retrieves a single blog.
func (s *BlogService) GetByID(ctx context.Context, q sqlx.ExtContext, id string) (models.Blog, error) {
	var blog models.Blog
	err := sqlx.GetContext(ctx, q, &blog, `SELECT `+blogColumns+` FROM blogs WHERE id = ?`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Blog{}, apperrors.NotFound("blog not found")
		}
		return models.Blog{}, fmt.Errorf("querying blog %s: %w", id, err)
	}
	return blog, nil
}

// Update replaces the document's fields. The title uniqueness re-check only
// runs when the title actually changes.
func (s *BlogService) Update(ctx context.Context, q sqlx.ExtContext, id string, in models.Blog) (models.Blog, error) {
	existing, err := s.GetByID(ctx, q, id)
	if err != nil {
		return models.Blog{}, err
	}

	if in.Title != existing.Title {
		exists, err := s.titleExists(ctx, q, in.Title, id)
		if err != nil {
			return models.Blog{}, err
		}
		if exists {
			return models.Blog{}, apperrors.Conflict("another blog with this title already exists", "title", in.Title)
		}
	}

	in.ID = id
	in.CreatedBy = existing.CreatedBy
	in.UpdatedAt = time.Now().UTC()

	_, err = q.ExecContext(ctx,
		`UPDATE blogs SET title = ?, content = ?, author = ?, author_avatar = ?, created_at = ?, read_time = ?, tags = ?, featured = ?, likes = ?, bookmarks = ?, updated_by = ?, updated_at = ? WHERE id = ?`,
		in.Title, in.Content, in.Author, in.AuthorAvatar, in.CreatedAt, in.ReadTime,
		in.Tags, in.Featured, in.Likes, in.Bookmarks, in.UpdatedBy, in.UpdatedAt, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Blog{}, apperrors.Conflict("another blog with this title already exists", "title", in.Title)
		}
		return models.Blog{}, fmt.Errorf("updating blog %s: %w", id, err)
	}
	return in, nil
}

// Delete removes a blog by id. Returns not-found when nothing was deleted.
func (s *BlogService) Delete(ctx context.Context, q sqlx.ExtContext, id string) error {
	res, err := q.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting blog %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.NotFound("blog not found")
	}
	return nil
}
