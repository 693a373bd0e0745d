package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"blog-server/internal/database"
	"blog-server/internal/model"
	"blog-server/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	hashPassword = HashPassword
	comparePassword = ComparePassword
	jsonMarshal = json.Marshal
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims

	getUserByEmail = store.GetUserByEmail
	createUser = store.CreateUser
	listUsers = store.ListUsers

	createBlog = store.CreateBlog
	listBlogs = store.ListBlogs
	listBlogsByStatus = store.ListBlogsByStatus
	getBlogByID = store.GetBlogByID
	deleteBlogByID = store.DeleteBlogByID
	approveBlogByID = store.ApproveBlogByID
}

// memStore 以記憶體模擬 users 與 blogs 兩個集合，並安裝到 store hooks
type memStore struct {
	mu    sync.Mutex
	seq   int
	users []model.User
	blogs []model.Blog
}

func installMemStore() *memStore {
	m := &memStore{}

	getUserByEmail = func(_ context.Context, _ database.DB, email string) (*model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, u := range m.users {
			if u.Email == email {
				cp := u
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", store.ErrNotFound)
	}
	createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, bool, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, existing := range m.users {
			if existing.Email == u.Email {
				return nil, false, nil
			}
		}
		m.seq++
		u.ID = fmt.Sprintf("u-%d", m.seq)
		u.CreatedAt = time.Now()
		m.users = append(m.users, *u)
		return u, true, nil
	}
	listUsers = func(context.Context, database.DB) ([]model.User, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return append([]model.User{}, m.users...), nil
	}

	createBlog = func(_ context.Context, _ database.DB, b *model.Blog) (*model.Blog, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		m.seq++
		b.ID = fmt.Sprintf("b-%d", m.seq)
		b.CreatedAt = time.Now()
		m.blogs = append(m.blogs, *b)
		return b, nil
	}
	listBlogs = func(context.Context, database.DB) ([]model.Blog, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		return append([]model.Blog{}, m.blogs...), nil
	}
	listBlogsByStatus = func(_ context.Context, _ database.DB, s model.Status) ([]model.Blog, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		out := []model.Blog{}
		for _, b := range m.blogs {
			if b.Status == s {
				out = append(out, b)
			}
		}
		return out, nil
	}
	getBlogByID = func(_ context.Context, _ database.DB, id string) (*model.Blog, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for _, b := range m.blogs {
			if b.ID == id {
				cp := b
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("GetBlogByID: %w", store.ErrNotFound)
	}
	deleteBlogByID = func(_ context.Context, _ database.DB, id string) (bool, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, b := range m.blogs {
			if b.ID == id {
				m.blogs = append(m.blogs[:i], m.blogs[i+1:]...)
				return true, nil
			}
		}
		return false, nil
	}
	approveBlogByID = func(_ context.Context, _ database.DB, id string) (bool, bool, error) {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, b := range m.blogs {
			if b.ID == id {
				prev := b.Status
				m.blogs[i].Status = model.StatusApproved
				return true, prev != model.StatusApproved, nil
			}
		}
		return false, false, nil
	}
	return m
}

// recordingNotifier 收集所有事件
type recordingNotifier struct {
	mu     sync.Mutex
	events []ModerationEvent
}

func (r *recordingNotifier) Notify(_ context.Context, ev ModerationEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingNotifier) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Type)
	}
	return out
}
