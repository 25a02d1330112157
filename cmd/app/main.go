package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	dbadapter "socialgraph/internal/adapters/database"
	"socialgraph/internal/adapters/httpapi"
	kafkaadapter "socialgraph/internal/adapters/kafka"
	"socialgraph/internal/adapters/memory"
	redisadapter "socialgraph/internal/adapters/redis"
	"socialgraph/internal/config"
	commentapp "socialgraph/internal/core/comment/service"
	fanoutqueueapp "socialgraph/internal/core/fanoutqueue/service"
	feedapp "socialgraph/internal/core/feed/service"
	likeapp "socialgraph/internal/core/like/service"
	postapp "socialgraph/internal/core/post/service"
	subscriptionapp "socialgraph/internal/core/subscription/service"
	tagapp "socialgraph/internal/core/tag/service"
	userapp "socialgraph/internal/core/user/service"
	commentPort "socialgraph/internal/ports/comment"
	fanoutPort "socialgraph/internal/ports/fanoutqueue"
	feedPort "socialgraph/internal/ports/feed"
	likePort "socialgraph/internal/ports/like"
	postPort "socialgraph/internal/ports/post"
	subscriptionPort "socialgraph/internal/ports/subscription"
	tagPort "socialgraph/internal/ports/tag"
	"socialgraph/internal/ports/uow"
	userPort "socialgraph/internal/ports/user"
	"socialgraph/internal/workers"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// repositories آداپترهای خروجی برای درایور انتخاب‌شده
type repositories struct {
	users         userPort.UserRepository
	posts         postPort.PostRepository
	tags          tagPort.TagRepository
	comments      commentPort.CommentRepository
	likes         likePort.LikeRepository
	subscriptions subscriptionPort.SubscriptionRepository
	fanout        fanoutPort.FanoutRepository
	tx            uow.Transactor
}

func main() {
	settings, err := config.Load() // بارگذاری تنظیمات از .env
	if err != nil {
		panic(err)
	}

	logger, err := config.NewLogger(settings.LogMode)
	if err != nil {
		panic(err)
	}

	gin.SetMode(settings.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, settings, logger)
	stop()
	if err != nil {
		logger.Error("❌ App stopped with error", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

// run همه وابستگی‌ها را می‌سازد و تا لغو ctx سرور را اجرا می‌کند؛
// هر منبعی که باز شده باشد قبل از برگشتن بسته می‌شود، حتی در مسیر خطا
func run(ctx context.Context, settings *config.Settings, logger *zap.Logger) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	var closers []func() error
	// بستن منابع بعد از اتمام کار سرور
	defer func() { closeResources(logger, closers) }()

	repos, db, err := buildRepositories(settings, logger)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	if db != nil {
		closers = append(closers, func() error {
			sqlDB, err := db.DB() // گرفتن *sql.DB از *gorm.DB
			if err != nil {
				return err
			}
			return sqlDB.Close()
		})
	}

	// Kafka (اختیاری)
	var publisher fanoutPort.EventPublisher
	if writer := config.NewKafkaWriter(settings, logger); writer != nil {
		kp := kafkaadapter.NewEventPublisherKafka(writer)
		publisher = kp
		closers = append(closers, kp.Close)
	}

	// اتصال به Redis (اختیاری)
	var cache feedPort.FeedCache
	redisClient, err := config.NewRedis(ctx, settings, logger)
	if err != nil {
		return err
	}
	if redisClient != nil {
		cache = redisadapter.NewFeedCacheRedis(redisClient, settings.FeedCacheTTL)
		closers = append(closers, redisClient.Close)
	}

	fanoutSvc := fanoutqueueapp.NewFanoutService(repos.fanout, repos.subscriptions, cache, publisher, settings.FanoutBatchSize, logger)
	userSvc := userapp.NewUserService(repos.users, repos.posts, logger)
	postSvc := postapp.NewPostService(repos.posts, repos.users, repos.tags, repos.fanout, fanoutSvc, repos.tx, logger)
	tagSvc := tagapp.NewTagService(repos.tags, repos.posts, repos.tx, logger)
	commentSvc := commentapp.NewCommentService(repos.comments, repos.posts, repos.tx, logger)
	likeSvc := likeapp.NewLikeService(repos.likes, repos.posts, repos.users, repos.tx, logger)
	subscriptionSvc := subscriptionapp.NewSubscriptionService(repos.subscriptions, repos.users, repos.fanout, fanoutSvc, cache, repos.tx, logger)
	feedSvc := feedapp.NewFeedService(repos.users, repos.subscriptions, repos.posts, cache, logger)

	// تزریق یوزکیس به آداپتر ورودی
	r := httpapi.SetupRoutes(logger, settings.CORSOrigins,
		userSvc, postSvc, tagSvc, commentSvc, likeSvc, subscriptionSvc, feedSvc)

	// اجرای worker در پس‌زمینه
	fanoutWorker := workers.NewFanoutWorker(repos.fanout, fanoutSvc, settings.FanoutBatchSize, settings.FanoutInterval, logger)
	workerDone := make(chan struct{})
	go func() {
		fanoutWorker.Run(ctx)
		close(workerDone)
	}()

	srv := &http.Server{
		Addr:              ":" + settings.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("🚀 App is running...", zap.String("addr", srv.Addr), zap.String("driver", settings.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during server shutdown", zap.Error(err))
	}
	<-workerDone

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve http: %w", err)
	default:
		return nil
	}
}

// buildRepositories برای mysql/postgres آداپترهای gorm و برای memory استور درون‌حافظه‌ای
func buildRepositories(s *config.Settings, logger *zap.Logger) (*repositories, *gorm.DB, error) {
	if s.DBDriver == config.DriverMemory {
		store := memory.NewStore()
		logger.Info("✅ Using in-memory store")
		return &repositories{
			users:         store.Users(),
			posts:         store.Posts(),
			tags:          store.Tags(),
			comments:      store.Comments(),
			likes:         store.Likes(),
			subscriptions: store.Subscriptions(),
			fanout:        store.Fanout(),
			tx:            store,
		}, nil, nil
	}

	db, err := config.OpenDB(s, logger)
	if err != nil {
		return nil, nil, err
	}
	// اعمال مایگریشن برای مدل‌ها
	if err := dbadapter.Migrate(db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, nil, err
	}
	logger.Info("✅ Database migrations completed")

	return &repositories{
		users:         dbadapter.NewUserRepositoryDatabase(db),
		posts:         dbadapter.NewPostRepositoryDatabase(db),
		tags:          dbadapter.NewTagRepositoryDatabase(db),
		comments:      dbadapter.NewCommentRepositoryDatabase(db),
		likes:         dbadapter.NewLikeRepositoryDatabase(db),
		subscriptions: dbadapter.NewSubscriptionRepositoryDatabase(db),
		fanout:        dbadapter.NewFanoutRepositoryDatabase(db),
		tx:            dbadapter.NewTransactor(db),
	}, db, nil
}

// closeResources بستن اتصالات به ترتیب معکوس
func closeResources(logger *zap.Logger, closers []func() error) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			logger.Error("Error closing resource", zap.Error(err))
		}
	}
	logger.Info("🔒 Resources closed", zap.Int("count", len(closers)))
}
