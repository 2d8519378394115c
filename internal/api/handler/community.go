package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/api/middleware"
	"github.com/paddlespot/paddlespot/internal/api/models"
	"github.com/paddlespot/paddlespot/internal/api/response"
	"github.com/paddlespot/paddlespot/internal/community"
)

// CommunityHandler handles the community feed.
type CommunityHandler struct {
	community *community.Service
	logger    zerolog.Logger
}

// NewCommunityHandler creates a new CommunityHandler.
func NewCommunityHandler(svc *community.Service, logger zerolog.Logger) *CommunityHandler {
	return &CommunityHandler{community: svc, logger: logger}
}

// ListPosts handles GET /v1/community/posts?category=.
func (h *CommunityHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.community.List(r.Context(), community.Category(r.URL.Query().Get("category")))
	if err != nil {
		fail(w, r, h.logger, err, "failed to list posts")
		return
	}
	response.JSON(w, r, http.StatusOK, models.NewList(posts))
}

// CreatePost handles POST /v1/community/posts.
func (h *CommunityHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var input community.NewPost
	if !decodeJSON(w, r, &input) {
		return
	}

	post, err := h.community.Create(r.Context(), author(r), input)
	if err != nil {
		fail(w, r, h.logger, err, "failed to create post")
		return
	}
	response.Created(w, r, "/v1/community/posts/"+post.ID, post)
}

// ToggleLike handles POST /v1/community/posts/{postId}/like.
func (h *CommunityHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	post, err := h.community.ToggleLike(r.Context(), chi.URLParam(r, "postId"), GetUserID(r.Context()))
	if err != nil {
		h.writeError(w, r, err, "failed to toggle like")
		return
	}
	response.JSON(w, r, http.StatusOK, post)
}

// CreateReply handles POST /v1/community/posts/{postId}/replies.
func (h *CommunityHandler) CreateReply(w http.ResponseWriter, r *http.Request) {
	var input community.NewReply
	if !decodeJSON(w, r, &input) {
		return
	}

	post, err := h.community.Reply(r.Context(), chi.URLParam(r, "postId"), author(r), input)
	if err != nil {
		h.writeError(w, r, err, "failed to reply")
		return
	}
	response.JSON(w, r, http.StatusCreated, post)
}

func (h *CommunityHandler) writeError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	if errors.Is(err, community.ErrPostNotFound) {
		response.NotFound(w, r, "post not found")
		return
	}
	fail(w, r, h.logger, err, msg)
}

func author(r *http.Request) community.Author {
	id := middleware.GetIdentity(r.Context())
	if id == nil {
		return community.Author{}
	}
	return community.Author{UserID: id.UserID, UserName: id.Name}
}
