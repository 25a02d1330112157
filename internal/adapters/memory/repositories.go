package memory

import (
	"context"
	"time"

	"socialgraph/internal/core/comment"
	"socialgraph/internal/core/fanoutqueue"
	"socialgraph/internal/core/like"
	"socialgraph/internal/core/post"
	"socialgraph/internal/core/subscription"
	"socialgraph/internal/core/tag"
	"socialgraph/internal/core/user"
	userPort "socialgraph/internal/ports/user"

	"github.com/gofrs/uuid"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(ctx context.Context, u *user.User) (*user.User, error) {
	defer r.s.lock(ctx)()
	if err := primaryKey(u.ID); err != nil {
		return nil, err
	}
	if r.s.data.user(u.ID) != nil {
		return nil, conflict("create user")
	}
	r.s.stamp(&u.CreatedAt)
	row := *u
	r.s.data.users = append(r.s.data.users, &row)
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	defer r.s.lock(ctx)()
	u := r.s.data.user(id)
	if u == nil {
		return nil, notFound("user", id)
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) PostCounts(ctx context.Context) ([]*userPort.PostCountDTO, error) {
	defer r.s.lock(ctx)()
	counts := make(map[uuid.UUID]int64)
	for _, p := range r.s.data.posts {
		counts[p.UserID]++
	}
	out := make([]*userPort.PostCountDTO, 0, len(r.s.data.users))
	for _, u := range r.s.data.users {
		out = append(out, &userPort.PostCountDTO{User: u.Name, PostCount: counts[u.ID]})
	}
	return out, nil
}

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	defer r.s.lock(ctx)()
	if err := primaryKey(p.ID); err != nil {
		return nil, err
	}
	if r.s.data.user(p.UserID) == nil {
		return nil, notFound("post author", p.UserID)
	}
	if r.s.data.post(p.ID) != nil {
		return nil, conflict("create post")
	}
	r.s.stamp(&p.CreatedAt)
	row := *p
	row.User = user.User{}
	r.s.data.posts = append(r.s.data.posts, &row)
	return p, nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	defer r.s.lock(ctx)()
	p := r.s.data.post(id)
	if p == nil {
		return nil, notFound("post", id)
	}
	cp := *p
	return &cp, nil
}

func (r *PostRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*post.Post, error) {
	defer r.s.lock(ctx)()
	posts := []*post.Post{}
	for _, p := range r.s.data.posts {
		if p.UserID == userID {
			cp := *p
			posts = append(posts, &cp)
		}
	}
	return posts, nil
}

// FindByAuthors walks posts backwards, so insertion order stands in for created_at DESC.
func (r *PostRepository) FindByAuthors(ctx context.Context, authorIDs []uuid.UUID) ([]*post.Post, error) {
	defer r.s.lock(ctx)()
	wanted := make(map[uuid.UUID]bool, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = true
	}
	posts := []*post.Post{}
	for i := len(r.s.data.posts) - 1; i >= 0; i-- {
		p := r.s.data.posts[i]
		if !wanted[p.UserID] {
			continue
		}
		cp := *p
		if u := r.s.data.user(p.UserID); u != nil {
			cp.User = *u
		}
		posts = append(posts, &cp)
	}
	return posts, nil
}

func (r *PostRepository) FindByTagID(ctx context.Context, tagID uuid.UUID) ([]*post.Post, error) {
	defer r.s.lock(ctx)()
	tagged := make(map[uuid.UUID]bool)
	for _, pt := range r.s.data.postTags {
		if pt.TagID == tagID {
			tagged[pt.PostID] = true
		}
	}
	posts := []*post.Post{}
	for i := len(r.s.data.posts) - 1; i >= 0; i-- {
		if p := r.s.data.posts[i]; tagged[p.ID] {
			cp := *p
			posts = append(posts, &cp)
		}
	}
	return posts, nil
}

func (r *PostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()
	st := &r.s.data
	if st.post(id) == nil {
		return notFound("post", id)
	}
	st.postTags = filter(st.postTags, func(pt *post.PostTag) bool { return pt.PostID != id })
	st.comments = filter(st.comments, func(c *comment.Comment) bool { return c.PostID != id })
	st.likes = filter(st.likes, func(l *like.Like) bool { return l.PostID != id })
	st.posts = filter(st.posts, func(p *post.Post) bool { return p.ID != id })
	return nil
}

func (r *PostRepository) TagIDs(ctx context.Context, postID uuid.UUID) ([]uuid.UUID, error) {
	defer r.s.lock(ctx)()
	var ids []uuid.UUID
	for _, pt := range r.s.data.postTags {
		if pt.PostID == postID {
			ids = append(ids, pt.TagID)
		}
	}
	return ids, nil
}

func (r *PostRepository) AttachTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	defer r.s.lock(ctx)()
	st := &r.s.data
	if st.post(postID) == nil {
		return notFound("post", postID)
	}
	for _, tid := range tagIDs {
		if st.tag(tid) == nil {
			return notFound("tag", tid)
		}
	}
	for _, tid := range tagIDs {
		exists := false
		for _, pt := range st.postTags {
			if pt.PostID == postID && pt.TagID == tid {
				exists = true
				break
			}
		}
		if exists {
			continue
		}
		st.postTags = append(st.postTags, &post.PostTag{PostID: postID, TagID: tid, CreatedAt: r.s.now()})
	}
	return nil
}

func (r *PostRepository) Tags(ctx context.Context, postID uuid.UUID) ([]*tag.Tag, error) {
	defer r.s.lock(ctx)()
	tags := []*tag.Tag{}
	for _, pt := range r.s.data.postTags {
		if pt.PostID != postID {
			continue
		}
		if t := r.s.data.tag(pt.TagID); t != nil {
			cp := *t
			tags = append(tags, &cp)
		}
	}
	return tags, nil
}

type TagRepository struct{ s *Store }

func (r *TagRepository) Create(ctx context.Context, t *tag.Tag) (*tag.Tag, error) {
	defer r.s.lock(ctx)()
	if err := primaryKey(t.ID); err != nil {
		return nil, err
	}
	for _, existing := range r.s.data.tags {
		if existing.Name == t.Name || existing.ID == t.ID {
			return nil, conflict("create tag")
		}
	}
	r.s.stamp(&t.CreatedAt)
	row := *t
	r.s.data.tags = append(r.s.data.tags, &row)
	return t, nil
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*tag.Tag, error) {
	defer r.s.lock(ctx)()
	tags := make([]*tag.Tag, 0, len(r.s.data.tags))
	for _, t := range r.s.data.tags {
		cp := *t
		tags = append(tags, &cp)
	}
	return tags, nil
}

func (r *TagRepository) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	defer r.s.lock(ctx)()
	t := r.s.data.tag(id)
	if t == nil {
		return nil, notFound("tag", id)
	}
	cp := *t
	return &cp, nil
}

func (r *TagRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*tag.Tag, error) {
	defer r.s.lock(ctx)()
	wanted := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}
	tags := []*tag.Tag{}
	for _, t := range r.s.data.tags {
		if wanted[t.ID] {
			cp := *t
			tags = append(tags, &cp)
		}
	}
	return tags, nil
}

func (r *TagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()
	st := &r.s.data
	if st.tag(id) == nil {
		return notFound("tag", id)
	}
	st.postTags = filter(st.postTags, func(pt *post.PostTag) bool { return pt.TagID != id })
	st.tags = filter(st.tags, func(t *tag.Tag) bool { return t.ID != id })
	return nil
}

type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(ctx context.Context, c *comment.Comment) (*comment.Comment, error) {
	defer r.s.lock(ctx)()
	if err := primaryKey(c.ID); err != nil {
		return nil, err
	}
	if r.s.data.post(c.PostID) == nil {
		return nil, notFound("comment post", c.PostID)
	}
	r.s.stamp(&c.CreatedAt)
	row := *c
	row.Post = post.Post{}
	r.s.data.comments = append(r.s.data.comments, &row)
	return c, nil
}

func (r *CommentRepository) FindByPostID(ctx context.Context, postID uuid.UUID) ([]*comment.Comment, error) {
	defer r.s.lock(ctx)()
	comments := []*comment.Comment{}
	for _, c := range r.s.data.comments {
		if c.PostID == postID {
			cp := *c
			comments = append(comments, &cp)
		}
	}
	return comments, nil
}

type LikeRepository struct{ s *Store }

func (r *LikeRepository) Create(ctx context.Context, l *like.Like) (*like.Like, error) {
	defer r.s.lock(ctx)()
	if err := primaryKey(l.ID); err != nil {
		return nil, err
	}
	if r.s.data.post(l.PostID) == nil {
		return nil, notFound("like post", l.PostID)
	}
	if r.s.data.user(l.UserID) == nil {
		return nil, notFound("like user", l.UserID)
	}
	for _, existing := range r.s.data.likes {
		if existing.UserID == l.UserID && existing.PostID == l.PostID {
			return nil, conflict("create like")
		}
	}
	r.s.stamp(&l.CreatedAt)
	row := *l
	row.User, row.Post = user.User{}, post.Post{}
	r.s.data.likes = append(r.s.data.likes, &row)
	return l, nil
}

func (r *LikeRepository) LikerNames(ctx context.Context, postID uuid.UUID) ([]string, error) {
	defer r.s.lock(ctx)()
	names := []string{}
	for _, l := range r.s.data.likes {
		if l.PostID != postID {
			continue
		}
		if u := r.s.data.user(l.UserID); u != nil {
			names = append(names, u.Name)
		}
	}
	return names, nil
}

type SubscriptionRepository struct{ s *Store }

func (r *SubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) (*subscription.Subscription, error) {
	defer r.s.lock(ctx)()
	if err := primaryKey(sub.ID); err != nil {
		return nil, err
	}
	if r.s.data.user(sub.FollowerID) == nil {
		return nil, notFound("follower", sub.FollowerID)
	}
	if r.s.data.user(sub.FollowedID) == nil {
		return nil, notFound("followed user", sub.FollowedID)
	}
	for _, existing := range r.s.data.subs {
		if existing.FollowerID == sub.FollowerID && existing.FollowedID == sub.FollowedID {
			return nil, conflict("create subscription")
		}
	}
	r.s.stamp(&sub.CreatedAt)
	row := *sub
	row.Follower, row.Followed = user.User{}, user.User{}
	r.s.data.subs = append(r.s.data.subs, &row)
	return sub, nil
}

func (r *SubscriptionRepository) Followers(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	defer r.s.lock(ctx)()
	users := []*user.User{}
	for _, sub := range r.s.data.subs {
		if sub.FollowedID != userID {
			continue
		}
		if u := r.s.data.user(sub.FollowerID); u != nil {
			cp := *u
			users = append(users, &cp)
		}
	}
	return users, nil
}

func (r *SubscriptionRepository) Following(ctx context.Context, userID uuid.UUID) ([]*user.User, error) {
	defer r.s.lock(ctx)()
	users := []*user.User{}
	for _, sub := range r.s.data.subs {
		if sub.FollowerID != userID {
			continue
		}
		if u := r.s.data.user(sub.FollowedID); u != nil {
			cp := *u
			users = append(users, &cp)
		}
	}
	return users, nil
}

func (r *SubscriptionRepository) FollowerIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	defer r.s.lock(ctx)()
	var ids []uuid.UUID
	for _, sub := range r.s.data.subs {
		if sub.FollowedID == userID {
			ids = append(ids, sub.FollowerID)
		}
	}
	return ids, nil
}

func (r *SubscriptionRepository) FollowedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	defer r.s.lock(ctx)()
	var ids []uuid.UUID
	for _, sub := range r.s.data.subs {
		if sub.FollowerID == userID {
			ids = append(ids, sub.FollowedID)
		}
	}
	return ids, nil
}

type FanoutRepository struct{ s *Store }

func (r *FanoutRepository) Create(ctx context.Context, f *fanoutqueue.FanoutQueue) (*fanoutqueue.FanoutQueue, error) {
	defer r.s.lock(ctx)()
	if err := primaryKey(f.ID); err != nil {
		return nil, err
	}
	r.s.stamp(&f.CreatedAt)
	row := *f
	r.s.data.fanout = append(r.s.data.fanout, &row)
	return f, nil
}

func (r *FanoutRepository) GetPending(ctx context.Context, limit int) ([]*fanoutqueue.FanoutQueue, error) {
	defer r.s.lock(ctx)()
	var out []*fanoutqueue.FanoutQueue
	now := r.s.now()
	for _, f := range r.s.data.fanout {
		if limit > 0 && len(out) >= limit {
			break
		}
		if f.Status == fanoutqueue.StatusPending && !claimed(f, now) {
			cp := *f
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *FanoutRepository) Claim(ctx context.Context, id uuid.UUID, lease time.Duration) (bool, error) {
	defer r.s.lock(ctx)()
	now := r.s.now()
	for _, f := range r.s.data.fanout {
		if f.ID != id {
			continue
		}
		if f.Status != fanoutqueue.StatusPending || claimed(f, now) {
			return false, nil
		}
		until := now.Add(lease)
		f.ClaimedUntil = &until
		return true, nil
	}
	return false, notFound("fanout record", id)
}

func claimed(f *fanoutqueue.FanoutQueue, now time.Time) bool {
	return f.ClaimedUntil != nil && !f.ClaimedUntil.Before(now)
}

func (r *FanoutRepository) MarkDone(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()
	for _, f := range r.s.data.fanout {
		if f.ID == id {
			now := r.s.now()
			f.Status = fanoutqueue.StatusDone
			f.ProcessedAt = &now
			f.ClaimedUntil = nil
			return nil
		}
	}
	return notFound("fanout record", id)
}

func (r *FanoutRepository) Release(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock(ctx)()
	for _, f := range r.s.data.fanout {
		if f.ID == id {
			f.Attempts++
			f.ClaimedUntil = nil
			return nil
		}
	}
	return notFound("fanout record", id)
}

func filter[T any](rows []T, keep func(T) bool) []T {
	out := rows[:0:0]
	for _, r := range rows {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
