package mocks

import (
	"context"
	"sort"
	"sync"

	"github.com/tweet-discussion-api/internal/models"
	"github.com/tweet-discussion-api/internal/repository"
)

// Verify interface compliance
var (
	_ repository.CreatorRepository           = (*MockCreatorRepository)(nil)
	_ repository.TweetRepository             = (*MockTweetRepository)(nil)
	_ repository.StickerRepository           = (*MockStickerRepository)(nil)
	_ repository.CommentRepository           = (*MockCommentRepository)(nil)
	_ repository.DiscussionCommentRepository = (*MockDiscussionCommentRepository)(nil)
	_ repository.IDCounterRepository         = (*MockIDCounterRepository)(nil)
)

// MockCreatorRepository is an in-memory CreatorRepository. Stored values are
// copies, so callers mutating a fetched creator do not change storage.
type MockCreatorRepository struct {
	mu        sync.Mutex
	Creators  map[int64]*models.Creator
	nextID    int64
	Err       error
	SaveCalls int
}

func NewMockCreatorRepository() *MockCreatorRepository {
	return &MockCreatorRepository{Creators: make(map[int64]*models.Creator)}
}

func (m *MockCreatorRepository) Save(ctx context.Context, creator *models.Creator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.Err != nil {
		return m.Err
	}
	for id, c := range m.Creators {
		if c.Login == creator.Login && id != creator.ID {
			return repository.ErrDuplicateKey
		}
	}
	if creator.ID == 0 {
		m.nextID++
		creator.ID = m.nextID
	}
	stored := *creator
	m.Creators[creator.ID] = &stored
	return nil
}

func (m *MockCreatorRepository) GetByID(ctx context.Context, id int64) (*models.Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if c, ok := m.Creators[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *MockCreatorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	c, err := m.GetByID(ctx, id)
	return c != nil, err
}

func (m *MockCreatorRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Creators, id)
	return nil
}

func (m *MockCreatorRepository) List(ctx context.Context) ([]*models.Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	creators := make([]*models.Creator, 0, len(m.Creators))
	for _, c := range m.Creators {
		cp := *c
		creators = append(creators, &cp)
	}
	sort.Slice(creators, func(i, j int) bool { return creators[i].ID < creators[j].ID })
	return creators, nil
}

func (m *MockCreatorRepository) LoginExists(ctx context.Context, login string) (bool, error) {
	c, err := m.GetByLogin(ctx, login)
	return c != nil, err
}

func (m *MockCreatorRepository) GetByLogin(ctx context.Context, login string) (*models.Creator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, c := range m.Creators {
		if c.Login == login {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

// MockTweetRepository is an in-memory TweetRepository
type MockTweetRepository struct {
	mu        sync.Mutex
	Tweets    map[int64]*models.Tweet
	nextID    int64
	Err       error
	SaveCalls int
}

func NewMockTweetRepository() *MockTweetRepository {
	return &MockTweetRepository{Tweets: make(map[int64]*models.Tweet)}
}

func copyTweet(t *models.Tweet) *models.Tweet {
	cp := *t
	if t.Creator != nil {
		creator := *t.Creator
		cp.Creator = &creator
	}
	if t.Stickers != nil {
		cp.Stickers = make([]*models.Sticker, len(t.Stickers))
		for i, s := range t.Stickers {
			sticker := *s
			cp.Stickers[i] = &sticker
		}
	}
	return &cp
}

func (m *MockTweetRepository) Save(ctx context.Context, tweet *models.Tweet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	if m.Err != nil {
		return m.Err
	}
	for id, t := range m.Tweets {
		if t.Title == tweet.Title && id != tweet.ID {
			return repository.ErrDuplicateKey
		}
	}

	stored := copyTweet(tweet)
	if tweet.ID == 0 {
		m.nextID++
		tweet.ID = m.nextID
		stored.ID = tweet.ID
		if stored.Stickers == nil {
			stored.Stickers = make([]*models.Sticker, 0)
		}
	} else if existing, ok := m.Tweets[tweet.ID]; ok {
		stored.CreatedAt = existing.CreatedAt
		if stored.Stickers == nil {
			stored.Stickers = existing.Stickers
		}
	}
	m.Tweets[tweet.ID] = stored
	return nil
}

func (m *MockTweetRepository) GetByID(ctx context.Context, id int64) (*models.Tweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if t, ok := m.Tweets[id]; ok {
		return copyTweet(t), nil
	}
	return nil, nil
}

func (m *MockTweetRepository) Exists(ctx context.Context, id int64) (bool, error) {
	t, err := m.GetByID(ctx, id)
	return t != nil, err
}

func (m *MockTweetRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Tweets, id)
	return nil
}

func (m *MockTweetRepository) List(ctx context.Context) ([]*models.Tweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	tweets := make([]*models.Tweet, 0, len(m.Tweets))
	for _, t := range m.Tweets {
		tweets = append(tweets, copyTweet(t))
	}
	sort.Slice(tweets, func(i, j int) bool { return tweets[i].ID < tweets[j].ID })
	return tweets, nil
}

func (m *MockTweetRepository) TitleExists(ctx context.Context, title string) (bool, error) {
	t, err := m.GetByTitle(ctx, title)
	return t != nil, err
}

func (m *MockTweetRepository) GetByTitle(ctx context.Context, title string) (*models.Tweet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, t := range m.Tweets {
		if t.Title == title {
			return copyTweet(t), nil
		}
	}
	return nil, nil
}

// MockStickerRepository is an in-memory StickerRepository
type MockStickerRepository struct {
	mu       sync.Mutex
	Stickers map[int64]*models.Sticker
	nextID   int64
	Err      error
}

func NewMockStickerRepository() *MockStickerRepository {
	return &MockStickerRepository{Stickers: make(map[int64]*models.Sticker)}
}

func (m *MockStickerRepository) Save(ctx context.Context, sticker *models.Sticker) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	for id, s := range m.Stickers {
		if s.Name == sticker.Name && id != sticker.ID {
			return repository.ErrDuplicateKey
		}
	}
	if sticker.ID == 0 {
		m.nextID++
		sticker.ID = m.nextID
	}
	stored := *sticker
	m.Stickers[sticker.ID] = &stored
	return nil
}

func (m *MockStickerRepository) GetByID(ctx context.Context, id int64) (*models.Sticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if s, ok := m.Stickers[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, nil
}

func (m *MockStickerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	s, err := m.GetByID(ctx, id)
	return s != nil, err
}

func (m *MockStickerRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Stickers, id)
	return nil
}

func (m *MockStickerRepository) List(ctx context.Context) ([]*models.Sticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	stickers := make([]*models.Sticker, 0, len(m.Stickers))
	for _, s := range m.Stickers {
		cp := *s
		stickers = append(stickers, &cp)
	}
	sort.Slice(stickers, func(i, j int) bool { return stickers[i].ID < stickers[j].ID })
	return stickers, nil
}

func (m *MockStickerRepository) NameExists(ctx context.Context, name string) (bool, error) {
	s, err := m.GetByName(ctx, name)
	return s != nil, err
}

func (m *MockStickerRepository) GetByName(ctx context.Context, name string) (*models.Sticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	for _, s := range m.Stickers {
		if s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

// MockCommentRepository is an in-memory CommentRepository
type MockCommentRepository struct {
	mu       sync.Mutex
	Comments map[int64]*models.Comment
	nextID   int64
	Err      error
	SaveFunc func(ctx context.Context, comment *models.Comment) (*models.Comment, error)
}

func NewMockCommentRepository() *MockCommentRepository {
	return &MockCommentRepository{Comments: make(map[int64]*models.Comment)}
}

func (m *MockCommentRepository) Save(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, comment)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if comment.ID == 0 {
		m.nextID++
		comment.ID = m.nextID
	}
	stored := *comment
	m.Comments[comment.ID] = &stored
	cp := stored
	return &cp, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int64) (*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if c, ok := m.Comments[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, nil
}

func (m *MockCommentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	c, err := m.GetByID(ctx, id)
	return c != nil, err
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Comments, id)
	return nil
}

func (m *MockCommentRepository) List(ctx context.Context) ([]*models.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	comments := make([]*models.Comment, 0, len(m.Comments))
	for _, c := range m.Comments {
		cp := *c
		comments = append(comments, &cp)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })
	return comments, nil
}

// MockDiscussionCommentRepository is an in-memory DiscussionCommentRepository
// keyed by composite key
type MockDiscussionCommentRepository struct {
	mu            sync.Mutex
	Comments      map[models.CommentKey]*models.DiscussionComment
	Err           error
	FindByIDCalls int
}

func NewMockDiscussionCommentRepository() *MockDiscussionCommentRepository {
	return &MockDiscussionCommentRepository{Comments: make(map[models.CommentKey]*models.DiscussionComment)}
}

func (m *MockDiscussionCommentRepository) Save(ctx context.Context, comment *models.DiscussionComment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	stored := *comment
	m.Comments[comment.Key] = &stored
	return nil
}

func (m *MockDiscussionCommentRepository) FindByID(ctx context.Context, id int64) (*models.DiscussionComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FindByIDCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	for key, c := range m.Comments {
		if key.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *MockDiscussionCommentRepository) List(ctx context.Context) ([]*models.DiscussionComment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	comments := make([]*models.DiscussionComment, 0, len(m.Comments))
	for _, c := range m.Comments {
		cp := *c
		comments = append(comments, &cp)
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].Key.ID < comments[j].Key.ID })
	return comments, nil
}

func (m *MockDiscussionCommentRepository) DeleteByKey(ctx context.Context, key models.CommentKey) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	delete(m.Comments, key)
	return nil
}

// MockIDCounterRepository hands out strictly increasing values per name,
// like the conditional-write counter it stands in for
type MockIDCounterRepository struct {
	mu       sync.Mutex
	Counters map[string]int64
	NextFunc func(ctx context.Context, name string) (int64, error)
}

func NewMockIDCounterRepository() *MockIDCounterRepository {
	return &MockIDCounterRepository{Counters: make(map[string]int64)}
}

func (m *MockIDCounterRepository) Next(ctx context.Context, name string) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, name)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counters[name]++
	return m.Counters[name], nil
}
