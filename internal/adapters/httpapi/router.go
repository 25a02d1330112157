package httpapi

import (
	"context"
	"net/http"
	"time"

	"socialgraph/internal/adapters/httpapi/middleware"
	commentPort "socialgraph/internal/ports/comment"
	feedPort "socialgraph/internal/ports/feed"
	likePort "socialgraph/internal/ports/like"
	postPort "socialgraph/internal/ports/post"
	tagPort "socialgraph/internal/ports/tag"
	userPort "socialgraph/internal/ports/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase: اینترفیسِ لازم برای کنترلر/روتر (Inbound Port)
type UserUseCase interface {
	CreateUser(ctx context.Context, name string) (*userPort.UserDTO, error)
	GetUserPosts(ctx context.Context, userID string) (*userPort.UserPostsDTO, error)
	GetPostCounts(ctx context.Context) ([]*userPort.PostCountDTO, error)
}

type PostUseCase interface {
	CreatePost(ctx context.Context, title, content, userID string) (*postPort.PostDTO, error)
	AttachTags(ctx context.Context, postID string, tagIDs []string) (*postPort.PostDTO, error)
	GetPostTags(ctx context.Context, postID string) ([]*tagPort.TagDTO, error)
	DeletePost(ctx context.Context, postID string) error
}

type TagUseCase interface {
	CreateTag(ctx context.Context, name string) (*tagPort.TagDTO, error)
	ListTags(ctx context.Context) ([]*tagPort.TagDTO, error)
	GetPostsByTag(ctx context.Context, tagID string) ([]*postPort.PostDTO, error)
	DeleteTag(ctx context.Context, tagID string) error
}

type CommentUseCase interface {
	CreateComment(ctx context.Context, content, postID string) (*commentPort.CommentDTO, error)
	GetCommentsByPost(ctx context.Context, postID string) ([]*commentPort.CommentDTO, error)
}

type LikeUseCase interface {
	LikePost(ctx context.Context, postID, userID string) error
	GetPostLikes(ctx context.Context, postID string) (*likePort.PostLikesDTO, error)
}

type SubscriptionUseCase interface {
	Follow(ctx context.Context, userID, targetID string) (string, error)
	GetFollowers(ctx context.Context, userID string) ([]*userPort.UserDTO, error)
	GetFollowing(ctx context.Context, userID string) ([]*userPort.UserDTO, error)
}

type FeedUseCase interface {
	GetFeed(ctx context.Context, userID string) (*feedPort.FeedDTO, error)
}

// فقط روتینگ: UseCase از بیرون تزریق می‌شود
func SetupRoutes(
	logger *zap.Logger,
	corsOrigins []string,
	userUC UserUseCase,
	postUC PostUseCase,
	tagUC TagUseCase,
	commentUC CommentUseCase,
	likeUC LikeUseCase,
	subscriptionUC SubscriptionUseCase,
	feedUC FeedUseCase,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(logger), gin.Recovery())
	r.Use(cors.New(corsConfig(corsOrigins)))

	uc := NewUserController(userUC, logger)
	pc := NewPostController(postUC, logger)
	tc := NewTagController(tagUC, logger)
	cc := NewCommentController(commentUC, logger)
	lc := NewLikeController(likeUC, logger)
	sc := NewSubscriptionController(subscriptionUC, logger)
	fc := NewFeedController(feedUC, logger)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// کاربران
	r.POST("/users/", uc.CreateUser)
	r.GET("/users/posts/count/", uc.GetPostCounts)
	r.GET("/users/:id/posts/", uc.GetUserPosts)

	// تگ‌ها
	r.POST("/tags/", tc.CreateTag)
	r.GET("/tags/", tc.ListTags)
	r.GET("/tags/:id/posts/", tc.GetPostsByTag)
	r.DELETE("/tags/:id/", tc.DeleteTag)

	// پست‌ها
	r.POST("/posts/", pc.CreatePost)
	r.POST("/posts/:id/tags/", pc.AttachTags)
	r.GET("/posts/:id/tags/", pc.GetPostTags)
	r.DELETE("/posts/:id/", pc.DeletePost)

	// کامنت‌ها
	r.POST("/comments/", cc.CreateComment)
	r.GET("/posts/:id/comments/", cc.GetCommentsByPost)

	// لایک‌ها
	r.POST("/posts/:id/like/", lc.LikePost)
	r.GET("/posts/:id/likes/", lc.GetPostLikes)

	// دنبال کردن
	r.POST("/users/:id/follow/:target/", sc.Follow)
	r.GET("/users/:id/followers/", sc.GetFollowers)
	r.GET("/users/:id/following/", sc.GetFollowing)

	r.GET("/feed/:id/", fc.GetFeed)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
