// ABOUTME: Saved service persists a user's bookmarked articles behind the cache interface
// ABOUTME: Stores one JSON object per user, keyed by article ID

package saved

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"headlines-api/core/domain"
	apperrors "headlines-api/core/errors"
	"headlines-api/core/interfaces"
)

const (
	// KeyPrefix namespaces saved collections in the shared cache
	KeyPrefix = "savedNews.v1:"

	// DefaultUser owns the collection when no user is given
	DefaultUser = "default"
)

// Service manages saved articles
type Service struct {
	cache  interfaces.Cache
	logger interfaces.Logger

	// locks holds one *sync.Mutex per storage key. Read-modify-write cycles
	// are serialized per user within this process only; instances sharing a
	// Redis backend can still interleave writes to the same collection.
	locks sync.Map
}

// NewService creates a new saved service instance
func NewService(deps interfaces.Dependencies) *Service {
	return &Service{
		cache:  deps.Cache,
		logger: deps.LoggerOrNop(),
	}
}

// Key returns the storage key for a user's collection
func Key(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		user = DefaultUser
	}
	return KeyPrefix + user
}

// Read returns the user's saved articles. A missing or unreadable collection is empty.
func (s *Service) Read(ctx context.Context, user string) (domain.SavedArticles, error) {
	if s.cache == nil {
		return nil, errors.New("saved storage not configured")
	}

	data, err := s.cache.Get(ctx, Key(user))
	if err != nil {
		if errors.Is(err, interfaces.ErrCacheMiss) {
			return domain.SavedArticles{}, nil
		}
		return nil, apperrors.WrapError(err, "failed to read saved articles")
	}
	if len(data) == 0 {
		return domain.SavedArticles{}, nil
	}

	var saved domain.SavedArticles
	if err := json.Unmarshal(data, &saved); err != nil || saved == nil {
		s.logger.Warn("Discarding unreadable saved articles", map[string]interface{}{
			"user": user,
		})
		return domain.SavedArticles{}, nil
	}
	return saved, nil
}

// Write replaces the user's saved articles
func (s *Service) Write(ctx context.Context, user string, saved domain.SavedArticles) error {
	if s.cache == nil {
		return errors.New("saved storage not configured")
	}
	if saved == nil {
		saved = domain.SavedArticles{}
	}

	data, err := json.Marshal(saved)
	if err != nil {
		return apperrors.WrapError(err, "failed to encode saved articles")
	}
	if err := s.cache.Set(ctx, Key(user), data, 0); err != nil {
		return apperrors.WrapError(err, "failed to write saved articles")
	}
	return nil
}

// Save adds or replaces an article in the user's collection
func (s *Service) Save(ctx context.Context, user string, article domain.Article) error {
	if err := validate(article); err != nil {
		return err
	}
	return s.update(ctx, user, func(saved domain.SavedArticles) error {
		saved[article.ID] = article
		return nil
	})
}

// Remove deletes an article from the user's collection
func (s *Service) Remove(ctx context.Context, user string, id string) error {
	return s.update(ctx, user, func(saved domain.SavedArticles) error {
		if _, ok := saved[id]; !ok {
			return &apperrors.NotFoundError{Resource: "saved article", ID: id}
		}
		delete(saved, id)
		return nil
	})
}

// Toggle saves the article when absent and removes it when present.
// It reports whether the article is saved afterwards.
func (s *Service) Toggle(ctx context.Context, user string, article domain.Article) (bool, error) {
	if err := validate(article); err != nil {
		return false, err
	}

	var nowSaved bool
	err := s.update(ctx, user, func(saved domain.SavedArticles) error {
		if _, ok := saved[article.ID]; ok {
			delete(saved, article.ID)
			return nil
		}
		saved[article.ID] = article
		nowSaved = true
		return nil
	})
	return nowSaved, err
}

// lockFor returns the mutex guarding user's collection
func (s *Service) lockFor(user string) *sync.Mutex {
	lock, _ := s.locks.LoadOrStore(Key(user), &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// update applies fn to the user's collection and writes it back while holding that user's lock
func (s *Service) update(ctx context.Context, user string, fn func(domain.SavedArticles) error) error {
	lock := s.lockFor(user)
	lock.Lock()
	defer lock.Unlock()

	saved, err := s.Read(ctx, user)
	if err != nil {
		return err
	}
	if err := fn(saved); err != nil {
		return err
	}
	return s.Write(ctx, user, saved)
}

func validate(article domain.Article) error {
	if article.ID == "" {
		return &apperrors.ValidationError{Field: "id", Message: "cannot be empty"}
	}
	if !article.IsValid() {
		return &apperrors.ValidationError{Field: "article", Message: "title and url are required"}
	}
	return nil
}

// List returns the saved articles, newest first
func (s *Service) List(ctx context.Context, user string) ([]domain.Article, error) {
	saved, err := s.Read(ctx, user)
	if err != nil {
		return nil, err
	}

	articles := make([]domain.Article, 0, len(saved))
	for _, article := range saved {
		articles = append(articles, article)
	}
	sort.Slice(articles, func(i, j int) bool {
		if articles[i].PublishedAt != articles[j].PublishedAt {
			return articles[i].PublishedAt > articles[j].PublishedAt
		}
		return articles[i].ID < articles[j].ID
	})
	return articles, nil
}
