// Package memory is an in-process implementation of every repository port.
// It enforces the same unique and foreign-key constraints as the SQL schema
// and serialises transactions behind a single mutex with snapshot rollback.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"socialgraph/internal/core/apperr"
	"socialgraph/internal/core/comment"
	"socialgraph/internal/core/fanoutqueue"
	"socialgraph/internal/core/like"
	"socialgraph/internal/core/post"
	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/tag"
	"socialgraph/internal/core/user"

	"github.com/gofrs/uuid"
)

type txKey struct{}

type state struct {
	users    []*user.User
	tags     []*tag.Tag
	posts    []*post.Post
	postTags []*post.PostTag
	comments []*comment.Comment
	likes    []*like.Like
	subs     []*subscription.Subscription
	fanout   []*fanoutqueue.FanoutQueue
}

// clone rows are immutable after insert except fanout records, which are copied.
func (st state) clone() state {
	cp := state{
		users:    append([]*user.User(nil), st.users...),
		tags:     append([]*tag.Tag(nil), st.tags...),
		posts:    append([]*post.Post(nil), st.posts...),
		postTags: append([]*post.PostTag(nil), st.postTags...),
		comments: append([]*comment.Comment(nil), st.comments...),
		likes:    append([]*like.Like(nil), st.likes...),
		subs:     append([]*subscription.Subscription(nil), st.subs...),
		fanout:   make([]*fanoutqueue.FanoutQueue, 0, len(st.fanout)),
	}
	for _, f := range st.fanout {
		r := *f
		cp.fanout = append(cp.fanout, &r)
	}
	return cp
}

type Store struct {
	mu   sync.Mutex
	data state
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{now: time.Now}
}

// WithinTransaction implements uow.Transactor.
func (s *Store) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if tx, _ := ctx.Value(txKey{}).(*Store); tx == s {
		return fn(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(context.WithValue(ctx, txKey{}, s)); err != nil {
		s.data = snapshot
		return err
	}
	return nil
}

func (s *Store) lock(ctx context.Context) func() {
	if tx, _ := ctx.Value(txKey{}).(*Store); tx == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) stamp(t *time.Time) {
	if t.IsZero() {
		*t = s.now()
	}
}

func (s *Store) Users() *UserRepository                 { return &UserRepository{s: s} }
func (s *Store) Posts() *PostRepository                 { return &PostRepository{s: s} }
func (s *Store) Tags() *TagRepository                   { return &TagRepository{s: s} }
func (s *Store) Comments() *CommentRepository           { return &CommentRepository{s: s} }
func (s *Store) Likes() *LikeRepository                 { return &LikeRepository{s: s} }
func (s *Store) Subscriptions() *SubscriptionRepository { return &SubscriptionRepository{s: s} }
func (s *Store) Fanout() *FanoutRepository              { return &FanoutRepository{s: s} }

func (st *state) user(id uuid.UUID) *user.User {
	for _, u := range st.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (st *state) post(id uuid.UUID) *post.Post {
	for _, p := range st.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (st *state) tag(id uuid.UUID) *tag.Tag {
	for _, t := range st.tags {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func notFound(what string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", what, id, apperr.ErrNotFound)
}

func conflict(what string) error {
	return fmt.Errorf("%s: %w", what, apperr.ErrConflict)
}

func primaryKey(id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("empty primary key")
	}
	return nil
}
