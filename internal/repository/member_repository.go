package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/creatorhub/memberkit/internal/domain"
	"github.com/creatorhub/memberkit/pkg/util"
)

// MemberRepository stores the member persona of each user.
type MemberRepository interface {
	Create(ctx context.Context, member *domain.Member) error
	Update(ctx context.Context, member *domain.Member) error
	GetByUserID(ctx context.Context, userID string) (*domain.Member, error)
}

type memberRepository struct {
	mu     sync.RWMutex
	byUser map[string]domain.Member
}

// NewMemberRepository returns an in-memory implementation.
func NewMemberRepository() MemberRepository {
	return &memberRepository{byUser: map[string]domain.Member{}}
}

func (r *memberRepository) Create(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byUser[member.UserID]; exists {
		return util.ErrConflict
	}
	now := time.Now().UTC()
	member.ID = uuid.NewString()
	member.CreatedAt = now
	member.UpdatedAt = now
	r.byUser[member.UserID] = *member
	return nil
}

func (r *memberRepository) Update(_ context.Context, member *domain.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.byUser[member.UserID]
	if !ok {
		return util.ErrNotFound
	}
	member.ID = current.ID
	member.CreatedAt = current.CreatedAt
	member.UpdatedAt = time.Now().UTC()
	r.byUser[member.UserID] = *member
	return nil
}

func (r *memberRepository) GetByUserID(_ context.Context, userID string) (*domain.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	member, ok := r.byUser[userID]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &member, nil
}
