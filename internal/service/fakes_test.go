package service

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/maheshrc27/dreamwall/internal/models"
	"github.com/maheshrc27/dreamwall/internal/repository"
	"github.com/maheshrc27/dreamwall/internal/transfer"
)

type fakePosts struct {
	mu       sync.Mutex
	posts    map[int64]*models.Post
	nextID   int64
	lastSeq  int64
	taken    map[string]bool
	createFn func(post *models.Post) error
	topCalls []repository.PostFilter
}

func newFakePosts() *fakePosts {
	return &fakePosts{posts: map[int64]*models.Post{}, taken: map[string]bool{}}
}

func (f *fakePosts) GetByID(_ context.Context, id int64) (*models.Post, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return nil, false, nil
	}
	cp := *p
	return &cp, true, nil
}

func (f *fakePosts) List(_ context.Context, pf repository.PostFilter, _ models.Paging) ([]models.Post, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Post{}
	for _, p := range f.posts {
		if pf.UserID != 0 && p.UserID != pf.UserID {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePosts) Top(_ context.Context, pf repository.PostFilter, _ int) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.topCalls = append(f.topCalls, pf)
	return []models.Post{{ID: int64(len(f.topCalls)), Title: pf.OrderBy}}, nil
}

func (f *fakePosts) Create(_ context.Context, _ *sqlx.Tx, post *models.Post) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createFn != nil {
		if err := f.createFn(post); err != nil {
			return 0, err
		}
	}
	if f.taken[post.PostID] {
		return 0, &pq.Error{Code: "23505"}
	}
	f.nextID++
	post.ID = f.nextID
	post.CreatedAt = time.Now()
	f.taken[post.PostID] = true
	cp := *post
	f.posts[post.ID] = &cp
	return post.ID, nil
}

func (f *fakePosts) LastSequenceSince(context.Context, time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	last := f.lastSeq
	for _, p := range f.posts {
		i := strings.LastIndexByte(p.PostID, '_')
		if i < 0 {
			continue
		}
		if n, err := strconv.ParseInt(p.PostID[i+1:], 10, 64); err == nil && n > last {
			last = n
		}
	}
	return last, nil
}

func (f *fakePosts) Update(_ context.Context, id int64, fields map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		switch k {
		case "title":
			p.Title = v.(string)
		case "description":
			p.Description = v.(string)
		case "content":
			p.Content = v.(string)
		case "images":
			p.Images = v.(models.Images)
		case "lucky_number":
			p.LuckyNumber = v.(string)
		case "is_hidden":
			p.IsHidden = v.(bool)
		case "is_featured":
			p.IsFeatured = v.(bool)
		case "status":
			p.Status = v.(string)
		}
	}
	return true, nil
}

func (f *fakePosts) Remove(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.posts[id]
	delete(f.posts, id)
	return ok, nil
}

func (f *fakePosts) IncrementShares(_ context.Context, id int64) (int64, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok {
		return 0, false, nil
	}
	p.Shares++
	return p.Shares, true, nil
}

func (f *fakePosts) Count(context.Context) (int64, error) { return int64(len(f.posts)), nil }

func (f *fakePosts) CountByUser(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, p := range f.posts {
		if p.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakePosts) SumLikesByUser(_ context.Context, userID int64) (int64, error) {
	var n int64
	for _, p := range f.posts {
		if p.UserID == userID {
			n += p.Likes
		}
	}
	return n, nil
}

func (f *fakePosts) ListLuckyEntries(context.Context) ([]models.LuckyEntry, error) { return nil, nil }

func (f *fakePosts) SetLuckyNumber(context.Context, *sqlx.Tx, int64, string) error { return nil }

type fakeUsers struct {
	mu     sync.Mutex
	users  map[int64]*models.User
	nextID int64
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{users: map[int64]*models.User{}}
	for _, u := range users {
		f.nextID++
		u.ID = f.nextID
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*models.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, false, nil
	}
	cp := *u
	return &cp, true, nil
}

func (f *fakeUsers) find(match func(*models.User) bool) (*models.User, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if match(u) {
			cp := *u
			return &cp, true, nil
		}
	}
	return nil, false, nil
}

func (f *fakeUsers) GetByPhone(_ context.Context, phone string) (*models.User, bool, error) {
	return f.find(func(u *models.User) bool { return u.PhoneNumber == phone })
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*models.User, bool, error) {
	return f.find(func(u *models.User) bool { return u.EmailValue() == email })
}

func (f *fakeUsers) Create(_ context.Context, _ *sqlx.Tx, user *models.User) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.PhoneNumber == user.PhoneNumber || (user.Email != nil && u.EmailValue() == *user.Email) {
			return 0, &pq.Error{Code: "23505"}
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return user.ID, nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, fields map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return false, nil
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "role":
			u.Role = v.(string)
		case "email":
			if s, ok := v.(string); ok {
				u.Email = &s
			} else {
				u.Email = nil
			}
		}
	}
	return true, nil
}

func (f *fakeUsers) List(context.Context, repository.UserFilter, models.Paging) ([]models.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUsers) Remove(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[id]
	delete(f.users, id)
	return ok, nil
}

func (f *fakeUsers) Count(context.Context) (int64, error) { return int64(len(f.users)), nil }

type fakeCounter struct {
	next   int
	err    error
	synced []int
}

func (f *fakeCounter) NextLuckyNumber(context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.next = f.next%MaxLuckyNumber + 1
	return f.next, nil
}

func (f *fakeCounter) SyncLuckyNumber(_ context.Context, _ int64, value int) (bool, error) {
	f.synced = append(f.synced, value)
	return true, nil
}

func (f *fakeCounter) ResetLuckyNumber(context.Context, *sqlx.Tx, int) error { return nil }

type fakeStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	types   map[string]string
	deleted []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStore) Put(_ context.Context, key string, body []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = body
	f.types[key] = contentType
	return nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

type recordingCleaner struct {
	scheduled []string
}

func (c *recordingCleaner) Schedule(_ context.Context, ids []string) {
	c.scheduled = append(c.scheduled, ids...)
}

type fakeLotteries struct {
	lotteries map[int64]*models.Lottery
	drawn     bool
}

func (f *fakeLotteries) GetByID(_ context.Context, id int64) (*models.Lottery, bool, error) {
	l, ok := f.lotteries[id]
	if !ok {
		return nil, false, nil
	}
	cp := *l
	return &cp, true, nil
}

func (f *fakeLotteries) List(context.Context) ([]models.Lottery, error) { return nil, nil }

func (f *fakeLotteries) Create(_ context.Context, l *models.Lottery) error {
	l.ID = int64(len(f.lotteries) + 1)
	if l.Status == "" {
		l.Status = models.LotteryStatusUpcoming
	}
	f.lotteries[l.ID] = l
	return nil
}

func (f *fakeLotteries) Update(_ context.Context, id int64, _ map[string]any) (bool, error) {
	_, ok := f.lotteries[id]
	return ok, nil
}

func (f *fakeLotteries) Remove(_ context.Context, id int64) (bool, error) {
	_, ok := f.lotteries[id]
	delete(f.lotteries, id)
	return ok, nil
}

func (f *fakeLotteries) CompleteDraw(_ context.Context, id, winnerID int64, drawnAt time.Time) (bool, error) {
	l, ok := f.lotteries[id]
	if !ok || l.Status != models.LotteryStatusActive {
		return false, nil
	}
	f.drawn = true
	l.Status = models.LotteryStatusCompleted
	l.WinnerID = &winnerID
	l.DrawnAt = &drawnAt
	return true, nil
}

func (f *fakeLotteries) ListWinners(context.Context) ([]models.LotteryWinner, error) { return nil, nil }

func (f *fakeLotteries) Current(context.Context) (*models.Lottery, bool, error) {
	return nil, false, nil
}

func (f *fakeLotteries) Count(context.Context) (int64, error) { return int64(len(f.lotteries)), nil }

type fakeSettings struct {
	rec *models.SettingsRecord
}

func (f *fakeSettings) Get(context.Context) (*models.SettingsRecord, bool, error) {
	if f.rec == nil {
		return nil, false, nil
	}
	cp := *f.rec
	return &cp, true, nil
}

func (f *fakeSettings) Seed(_ context.Context, st models.SiteSettings) error {
	if f.rec == nil {
		f.rec = &models.SettingsRecord{Settings: st, Version: 1, UpdatedAt: time.Now()}
	}
	return nil
}

func (f *fakeSettings) Update(_ context.Context, st models.SiteSettings, expected *int) (*models.SettingsRecord, bool, error) {
	if expected != nil && *expected != f.rec.Version {
		return nil, false, nil
	}
	f.rec = &models.SettingsRecord{Settings: st, Version: f.rec.Version + 1, UpdatedAt: time.Now()}
	cp := *f.rec
	return &cp, true, nil
}

type fakeComments struct {
	created   []*models.Comment
	postFound bool
}

func (f *fakeComments) Create(_ context.Context, c *models.Comment) error {
	if !f.postFound {
		return sql.ErrNoRows
	}
	c.ID = int64(len(f.created) + 1)
	f.created = append(f.created, c)
	return nil
}

func (f *fakeComments) GetByID(context.Context, int64) (*models.Comment, bool, error) {
	return nil, false, nil
}

func (f *fakeComments) ListByPost(context.Context, int64) ([]models.Comment, error) { return nil, nil }

func (f *fakeComments) List(context.Context, repository.CommentFilter, models.Paging) ([]models.Comment, int64, error) {
	return nil, 0, nil
}

func (f *fakeComments) Update(context.Context, int64, map[string]any) (bool, error) {
	return false, nil
}

func (f *fakeComments) Remove(context.Context, int64) (bool, error) { return false, nil }

func (f *fakeComments) Count(context.Context) (int64, error) { return int64(len(f.created)), nil }

func (f *fakeComments) CountByUser(context.Context, int64) (int64, error) { return 0, nil }

type memHomeCache struct {
	feed   *transfer.HomeFeed
	stores int
}

func (c *memHomeCache) GetFeed(context.Context) (*transfer.HomeFeed, bool) {
	return c.feed, c.feed != nil
}

func (c *memHomeCache) SetFeed(_ context.Context, feed *transfer.HomeFeed) {
	c.stores++
	c.feed = feed
}

func (c *memHomeCache) Invalidate(context.Context) {
	c.feed = nil
}

type likeKey struct{ user, post int64 }

// fakeLikes mirrors the like repository: one row per (user, post) and a
// per-post counter floored at zero.
type fakeLikes struct {
	mu    sync.Mutex
	rows  map[likeKey]bool
	likes map[int64]int64
}

func newFakeLikes(postIDs ...int64) *fakeLikes {
	f := &fakeLikes{rows: map[likeKey]bool{}, likes: map[int64]int64{}}
	for _, id := range postIDs {
		f.likes[id] = 0
	}
	return f
}

func (f *fakeLikes) Toggle(_ context.Context, userID, postID int64) (bool, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.likes[postID]; !ok {
		return false, 0, sql.ErrNoRows
	}
	k := likeKey{userID, postID}
	if f.rows[k] {
		delete(f.rows, k)
		if f.likes[postID] > 0 {
			f.likes[postID]--
		}
		return false, f.likes[postID], nil
	}
	f.rows[k] = true
	f.likes[postID]++
	return true, f.likes[postID], nil
}

func (f *fakeLikes) Exists(_ context.Context, userID, postID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[likeKey{userID, postID}], nil
}

func (f *fakeLikes) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.rows)), nil
}

type fakeKeywords struct {
	mu       sync.Mutex
	keywords map[int64]*models.Keyword
	nextID   int64
}

func newFakeKeywords() *fakeKeywords {
	return &fakeKeywords{keywords: map[int64]*models.Keyword{}}
}

func (f *fakeKeywords) wordTaken(word string, except int64) bool {
	for id, k := range f.keywords {
		if id != except && k.Word == word {
			return true
		}
	}
	return false
}

func (f *fakeKeywords) List(context.Context) ([]models.Keyword, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Keyword{}
	for _, k := range f.keywords {
		out = append(out, *k)
	}
	return out, nil
}

func (f *fakeKeywords) Create(_ context.Context, keyword *models.Keyword) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.wordTaken(keyword.Word, 0) {
		return &pq.Error{Code: "23505"}
	}
	f.nextID++
	keyword.ID = f.nextID
	cp := *keyword
	f.keywords[keyword.ID] = &cp
	return nil
}

func (f *fakeKeywords) Update(_ context.Context, id int64, fields map[string]any) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k, ok := f.keywords[id]
	if !ok {
		return false, nil
	}
	if w, ok := fields["word"].(string); ok {
		if f.wordTaken(w, id) {
			return false, &pq.Error{Code: "23505"}
		}
		k.Word = w
	}
	if a, ok := fields["action"].(string); ok {
		k.Action = a
	}
	if sv, ok := fields["severity"].(string); ok {
		k.Severity = sv
	}
	return true, nil
}

func (f *fakeKeywords) Remove(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.keywords[id]
	delete(f.keywords, id)
	return ok, nil
}

func (f *fakeKeywords) Count(context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.keywords)), nil
}
