package mocks

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/editorial-cms-api/internal/models"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	Users       map[string]*models.User // keyed by ID
	TokenToUser map[string]*models.User
	LookupError error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		Users:       make(map[string]*models.User),
		TokenToUser: make(map[string]*models.User),
	}
}

func (m *MockUserRepository) Add(user *models.User) {
	m.Users[user.ID] = user
	m.TokenToUser[user.Token] = user
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.Users[id], nil
}

func (m *MockUserRepository) GetByToken(ctx context.Context, token string) (*models.User, error) {
	if m.LookupError != nil {
		return nil, m.LookupError
	}
	return m.TokenToUser[token], nil
}

// MockPostRepository is a mock implementation of PostRepository
type MockPostRepository struct {
	Posts       map[string]*models.Post
	WriteError  error
	UpdateCalls int
}

func NewMockPostRepository() *MockPostRepository {
	return &MockPostRepository{
		Posts: make(map[string]*models.Post),
	}
}

func (m *MockPostRepository) Create(ctx context.Context, post *models.Post) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	copied := *post
	copied.CreatedAt = time.Now()
	copied.UpdatedAt = copied.CreatedAt
	m.Posts[post.ID] = &copied
	*post = copied
	return nil
}

func (m *MockPostRepository) Update(ctx context.Context, post *models.Post) error {
	m.UpdateCalls++
	if m.WriteError != nil {
		return m.WriteError
	}
	copied := *post
	copied.UpdatedAt = time.Now()
	m.Posts[post.ID] = &copied
	return nil
}

func (m *MockPostRepository) Delete(ctx context.Context, id string) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	delete(m.Posts, id)
	return nil
}

func (m *MockPostRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	post, ok := m.Posts[id]
	if !ok {
		return nil, nil
	}
	copied := *post
	return &copied, nil
}

func (m *MockPostRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	for _, post := range m.Posts {
		if post.Slug == slug {
			copied := *post
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *MockPostRepository) SlugExists(ctx context.Context, slug string, excludeID string) (bool, error) {
	for _, post := range m.Posts {
		if post.Slug == slug && post.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	return m.list(func(*models.Post) bool { return true }), nil
}

func (m *MockPostRepository) ListByStatus(ctx context.Context, status string) ([]*models.Post, error) {
	return m.list(func(p *models.Post) bool { return p.Status == status }), nil
}

func (m *MockPostRepository) list(keep func(*models.Post) bool) []*models.Post {
	var posts []*models.Post
	for _, post := range m.Posts {
		if keep(post) {
			copied := *post
			posts = append(posts, &copied)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts
}

// MockContentPageRepository is a mock implementation of
// ContentPageRepository. PromoteDraft mirrors the transactional promote:
// snapshots hold their own deep copy of the sections so later draft
// edits cannot reach them.
type MockContentPageRepository struct {
	Draft      *models.ContentPage
	Snapshots  []*models.ContentPageSnapshot
	WriteError error
}

func NewMockContentPageRepository() *MockContentPageRepository {
	return &MockContentPageRepository{}
}

func (m *MockContentPageRepository) GetDraft(ctx context.Context) (*models.ContentPage, error) {
	if m.Draft == nil {
		return nil, nil
	}
	copied := *m.Draft
	copied.Sections = copySections(m.Draft.Sections)
	return &copied, nil
}

func (m *MockContentPageRepository) UpsertDraft(ctx context.Context, page *models.ContentPage) error {
	if m.WriteError != nil {
		return m.WriteError
	}
	now := time.Now()
	if m.Draft == nil {
		m.Draft = &models.ContentPage{
			Slug:      models.ContentPageSlug,
			Version:   1,
			CreatedAt: now,
		}
	}
	m.Draft.Status = page.Status
	m.Draft.Sections = copySections(page.Sections)
	m.Draft.SEO = page.SEO
	m.Draft.UpdatedAt = now
	return nil
}

func (m *MockContentPageRepository) PromoteDraft(ctx context.Context, publishedAt time.Time) (*models.ContentPage, error) {
	if m.WriteError != nil {
		return nil, m.WriteError
	}
	if m.Draft == nil {
		return nil, nil
	}

	m.Draft.Status = models.StatusPublished
	m.Draft.Version++
	m.Draft.PublishedAt = &publishedAt
	m.Draft.UpdatedAt = publishedAt

	m.Snapshots = append(m.Snapshots, &models.ContentPageSnapshot{
		Slug:        m.Draft.Slug,
		Status:      models.StatusPublished,
		Sections:    copySections(m.Draft.Sections),
		SEO:         m.Draft.SEO,
		Version:     m.Draft.Version,
		PublishedAt: publishedAt,
	})

	copied := *m.Draft
	copied.Sections = copySections(m.Draft.Sections)
	return &copied, nil
}

func (m *MockContentPageRepository) GetLatestSnapshot(ctx context.Context) (*models.ContentPageSnapshot, error) {
	if len(m.Snapshots) == 0 {
		return nil, nil
	}
	snap := m.Snapshots[len(m.Snapshots)-1]
	copied := *snap
	copied.Sections = copySections(snap.Sections)
	return &copied, nil
}

// copySections deep-copies a section slice through JSON, the same way
// the real repository round-trips sections through the database.
func copySections(sections []models.Section) []models.Section {
	if sections == nil {
		return nil
	}
	data, _ := json.Marshal(sections)
	var copied []models.Section
	json.Unmarshal(data, &copied)
	return copied
}
