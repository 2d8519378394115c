package community

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/paddlespot/paddlespot/internal/store"
	"github.com/paddlespot/paddlespot/internal/validation"
)

// DefaultUserName is shown when an author has no display name.
const DefaultUserName = "Utilisateur"

// ServiceConfig holds configuration for the community service.
type ServiceConfig struct {
	Collection store.Collection[Post]
	Logger     zerolog.Logger
	Now        func() time.Time
}

// Service provides board operations.
type Service struct {
	collection store.Collection[Post]
	logger     zerolog.Logger
	now        func() time.Time
	mu         sync.Mutex
}

// NewService creates a new community service.
func NewService(cfg ServiceConfig) *Service {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		collection: cfg.Collection,
		logger:     cfg.Logger,
		now:        now,
	}
}

// List returns posts, optionally filtered by category, newest first.
func (s *Service) List(ctx context.Context, category Category) ([]Post, error) {
	posts, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return out, nil
}

// Create adds a post at the top of the board.
func (s *Service) Create(ctx context.Context, author Author, input NewPost) (*Post, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if input.Category == "" {
		input.Category = CategoryDiscussion
	}

	post := Post{
		ID:        "pst_" + uuid.New().String()[:22],
		UserID:    author.UserID,
		UserName:  displayName(author),
		Content:   input.Content,
		Category:  input.Category,
		LikedBy:   []string{},
		Replies:   []Reply{},
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.collection.Save(ctx, append([]Post{post}, posts...)); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}

	s.logger.Info().Str("post_id", post.ID).Str("category", string(post.Category)).Msg("post created")
	return &post, nil
}

// ToggleLike likes the post for userID, or removes an existing like.
func (s *Service) ToggleLike(ctx context.Context, postID, userID string) (*Post, error) {
	return s.update(ctx, postID, func(p *Post) error {
		if i := slices.Index(p.LikedBy, userID); i >= 0 {
			p.LikedBy = slices.Delete(p.LikedBy, i, i+1)
		} else {
			p.LikedBy = append(p.LikedBy, userID)
		}
		p.Likes = len(p.LikedBy)
		return nil
	})
}

// Reply appends a reply to the post.
func (s *Service) Reply(ctx context.Context, postID string, author Author, input NewReply) (*Post, error) {
	input.Content = strings.TrimSpace(input.Content)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	return s.update(ctx, postID, func(p *Post) error {
		p.Replies = append(p.Replies, Reply{
			ID:        "rpl_" + uuid.New().String()[:22],
			UserID:    author.UserID,
			UserName:  displayName(author),
			Content:   input.Content,
			CreatedAt: s.now().UTC(),
		})
		return nil
	})
}

func (s *Service) update(ctx context.Context, postID string, fn func(*Post) error) (*Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, err := s.collection.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	idx := slices.IndexFunc(posts, func(p Post) bool { return p.ID == postID })
	if idx < 0 {
		return nil, ErrPostNotFound
	}

	// Copy the slices we mutate so the stored value is replaced, not aliased.
	p := posts[idx]
	p.LikedBy = slices.Clone(p.LikedBy)
	p.Replies = slices.Clone(p.Replies)
	if err := fn(&p); err != nil {
		return nil, err
	}
	posts[idx] = p

	if err := s.collection.Save(ctx, posts); err != nil {
		return nil, fmt.Errorf("save post: %w", err)
	}
	return &p, nil
}

func displayName(a Author) string {
	if name := strings.TrimSpace(a.UserName); name != "" {
		return name
	}
	return DefaultUserName
}
