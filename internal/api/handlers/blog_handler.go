package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"

	"github.com/scribehq/scribe-be/internal/models"
	"github.com/scribehq/scribe-be/internal/request"
	"github.com/scribehq/scribe-be/internal/services"
	"github.com/scribehq/scribe-be/internal/websocket"
)

// BlogHandler handles the admin blog CRUD endpoints.
type BlogHandler struct {
	blogs  services.BlogServiceProvider
	events services.EventServiceProvider
	hub    *websocket.Hub
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blogs services.BlogServiceProvider, events services.EventServiceProvider, hub *websocket.Hub) *BlogHandler {
	return &BlogHandler{blogs: blogs, events: events, hub: hub}
}

// BlogForm is the declarative contract for blog create/update bodies.
type BlogForm struct {
	Title        string   `json:"title" validate:"required,min=5,max=100"`
	Content      string   `json:"content" validate:"required,min=50"`
	Author       string   `json:"author" validate:"required,min=3"`
	AuthorAvatar string   `json:"authorAvatar"`
	CreatedAt    string   `json:"createdAt" validate:"required,datetime=2006-01-02"`
	ReadTime     string   `json:"readTime" validate:"required,min=3"`
	Tags         []string `json:"tags" validate:"required,min=1,dive,min=2"`
	Featured     bool     `json:"featured"`
	Likes        int      `json:"likes" validate:"min=0"`
	Bookmarks    int      `json:"bookmarks" validate:"min=0"`
}

func (f *BlogForm) toModel() models.Blog {
	return models.Blog{
		Title:        f.Title,
		Content:      f.Content,
		Author:       f.Author,
		AuthorAvatar: f.AuthorAvatar,
		CreatedAt:    f.CreatedAt,
		ReadTime:     f.ReadTime,
		Tags:         models.TagList(f.Tags),
		Featured:     f.Featured,
		Likes:        f.Likes,
		Bookmarks:    f.Bookmarks,
	}
}

// Create persists a new blog stamped with the creating user.
func (h *BlogHandler) Create(c *request.Context) (*request.Result, error) {
	form := c.Body.(*BlogForm)
	ctx := c.Request.Context()

	blog := form.toModel()
	if c.User != nil {
		blog.CreatedBy = &c.User.UserID
	}

	created, err := h.blogs.Create(ctx, c.Querier(), blog)
	if err != nil {
		log.Error().Err(err).Str("title", form.Title).Msg("Failed to create blog")
		return nil, err
	}

	h.notify(ctx, c.Querier(), "blog.created", created)
	return &request.Result{Status: http.StatusCreated, Body: created}, nil
}

// GetAll returns every blog, newest first.
func (h *BlogHandler) GetAll(c *request.Context) (*request.Result, error) {
	blogs, err := h.blogs.GetAll(c.Request.Context(), c.Querier())
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve blogs")
		return nil, err
	}
	return &request.Result{Status: http.StatusOK, Body: blogs}, nil
}

// GetOne retrieves a single blog by id.
func (h *BlogHandler) GetOne(c *request.Context) (*request.Result, error) {
	blog, err := h.blogs.GetByID(c.Request.Context(), c.Querier(), c.Param("id"))
	if err != nil {
		return nil, err
	}
	return &request.Result{Status: http.StatusOK, Body: blog}, nil
}

// Update replaces a blog's fields and stamps the updating user.
func (h *BlogHandler) Update(c *request.Context) (*request.Result, error) {
	form := c.Body.(*BlogForm)
	ctx := c.Request.Context()

	in := form.toModel()
	if c.User != nil {
		in.UpdatedBy = &c.User.UserID
	}

	updated, err := h.blogs.Update(ctx, c.Querier(), c.Param("id"), in)
	if err != nil {
		log.Error().Err(err).Str("blog_id", c.Param("id")).Msg("Failed to update blog")
		return nil, err
	}

	h.notify(ctx, c.Querier(), "blog.updated", updated)
	return &request.Result{Status: http.StatusOK, Body: updated}, nil
}

// Delete removes a blog and returns a deletion confirmation.
func (h *BlogHandler) Delete(c *request.Context) (*request.Result, error) {
	id := c.Param("id")
	ctx := c.Request.Context()

	blog, err := h.blogs.GetByID(ctx, c.Querier(), id)
	if err != nil {
		return nil, err
	}
	if err := h.blogs.Delete(ctx, c.Querier(), id); err != nil {
		log.Error().Err(err).Str("blog_id", id).Msg("Failed to delete blog")
		return nil, err
	}

	h.notify(ctx, c.Querier(), "blog.deleted", blog)
	return &request.Result{Status: http.StatusOK, Body: map[string]any{
		"success":   true,
		"message":   "Blog deleted successfully",
		"deletedId": id,
	}}, nil
}

// notify records an audit event inside the request's transaction and
// broadcasts the change to websocket clients. Failures only log; the
// mutation already succeeded.
func (h *BlogHandler) notify(ctx context.Context, q sqlx.ExtContext, action string, blog models.Blog) {
	msg := fmt.Sprintf("Blog '%s' %s", blog.Title, strings.TrimPrefix(action, "blog."))
	if err := h.events.Record(ctx, q, action, "info", msg, &blog.ID); err != nil {
		log.Error().Err(err).Str("blog_id", blog.ID).Msg("Failed to record blog event")
	}
	h.hub.BroadcastMessage(websocket.Message{Action: action, Payload: blog})
}
