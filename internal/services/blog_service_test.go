package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scribehq/scribe-be/internal/apperrors"
	"github.com/scribehq/scribe-be/internal/models"
	"github.com/scribehq/scribe-be/internal/services"
)

func sampleBlog(title, date string) models.Blog {
	return models.Blog{
		Title:     title,
		Content:   "This content is comfortably longer than the fifty character minimum.",
		Author:    "Jane",
		CreatedAt: date,
		ReadTime:  "5 min read",
		Tags:      models.TagList{"web"},
	}
}

func TestBlogCreateAndRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, db, sampleBlog("Hello World Intro", "2024-01-01"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 0, created.Likes)
	assert.Equal(t, 0, created.Bookmarks)

	got, err := svc.GetByID(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Title, got.Title)
	assert.Equal(t, created.Content, got.Content)
	assert.Equal(t, created.Author, got.Author)
	assert.Equal(t, created.CreatedAt, got.CreatedAt)
	assert.Equal(t, created.ReadTime, got.ReadTime)
	assert.Equal(t, created.Tags, got.Tags)
}

func TestBlogCreate_DuplicateTitle(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, db, sampleBlog("Hello World Intro", "2024-01-01"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, db, sampleBlog("Hello World Intro", "2024-02-02"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Equal(t, 1, countRows(t, db, "blogs"), "collection unchanged on conflict")
}

func TestBlogGetAll_NewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, db, sampleBlog("Older Post Title", "2024-01-01"))
	require.NoError(t, err)
	_, err = svc.Create(ctx, db, sampleBlog("Newer Post Title", "2024-03-05"))
	require.NoError(t, err)

	blogs, err := svc.GetAll(ctx, db)
	require.NoError(t, err)
	require.Len(t, blogs, 2)
	assert.Equal(t, "Newer Post Title", blogs[0].Title)
	assert.Equal(t, "Older Post Title", blogs[1].Title)
}

func TestBlogGetByID_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()

	_, err := svc.GetByID(context.Background(), db, "missing-id")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBlogUpdate(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, db, sampleBlog("Hello World Intro", "2024-01-01"))
	require.NoError(t, err)

	in := sampleBlog("Hello World Revisited", "2024-01-01")
	in.Likes = 7
	updated, err := svc.Update(ctx, db, created.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "Hello World Revisited", updated.Title)
	assert.Equal(t, 7, updated.Likes)

	got, err := svc.GetByID(ctx, db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello World Revisited", got.Title)
}

func TestBlogUpdate_SameTitleAllowed(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, db, sampleBlog("Hello World Intro", "2024-01-01"))
	require.NoError(t, err)

	// Keeping the title must not trip the uniqueness check against itself.
	in := sampleBlog("Hello World Intro", "2024-01-01")
	in.Featured = true
	updated, err := svc.Update(ctx, db, created.ID, in)
	require.NoError(t, err)
	assert.True(t, updated.Featured)
}

func TestBlogUpdate_TitleConflict(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, db, sampleBlog("First Post Title", "2024-01-01"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, db, sampleBlog("Second Post Title", "2024-01-02"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, db, second.ID, sampleBlog("First Post Title", "2024-01-02"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
}

func TestBlogUpdate_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()

	_, err := svc.Update(context.Background(), db, "missing-id", sampleBlog("Whatever Title", "2024-01-01"))
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestBlogDelete(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()
	ctx := context.Background()

	created, err := svc.Create(ctx, db, sampleBlog("Hello World Intro", "2024-01-01"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, db, created.ID))
	assert.Equal(t, 0, countRows(t, db, "blogs"))
}

func TestBlogDelete_NotFound(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewBlogService()
	ctx := context.Background()

	_, err := svc.Create(ctx, db, sampleBlog("Hello World Intro", "2024-01-01"))
	require.NoError(t, err)

	err = svc.Delete(ctx, db, "missing-id")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, 1, countRows(t, db, "blogs"), "collection unchanged")
}
