// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yourusername/intellect-ai/internal/auth"
	"github.com/yourusername/intellect-ai/internal/config"
	"github.com/yourusername/intellect-ai/internal/lecture"
	"github.com/yourusername/intellect-ai/internal/users"
)

func main() {
	// 設定の読み込み（SECRET_KEY 未設定ならここで終了）
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// MongoDBへの接続
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	db := client.Database(cfg.DBName)

	// 一意インデックスの作成（email / username の重複防止はここが正）
	userStore := setupUserStore(ctx, db)
	lectureStore := lecture.NewMongoStore(db)

	// 認証コンポーネントの組み立て
	tokens := auth.NewTokenService([]byte(cfg.SecretKey), cfg.TokenTTL())
	cookies := auth.NewCookieManager(cfg.CookieDomain, cfg.TokenTTL())
	authHandler := auth.NewHandler(auth.NewService(userStore, tokens), cookies)

	// 外部生成サービスのクライアント
	generator := lecture.NewHTTPGenerator(cfg.GeneratorBaseURL)

	// 非同期ジョブの組み立てとワーカー起動
	jobManager, err := setupJobs(cfg, generator)
	if err != nil {
		log.Fatalf("Failed to setup jobs: %v", err)
	}
	jobManager.StartWorkers()

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// CORSミドルウェアの設定
	router.Use(cors.New(buildCORSConfig(cfg)))

	// ルーティングの設定
	setupRoutes(router, authHandler, tokens, generator, lectureStore, jobManager)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// setupUserStore はユーザーストアを作成し、一意インデックスを張ります。
func setupUserStore(ctx context.Context, db *mongo.Database) *users.MongoStore {
	store := users.NewMongoStore(db)
	if err := store.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to ensure user indexes: %v", err)
	}
	return store
}

// buildCORSConfig はCORSミドルウェアの設定を組み立てます。
// "*" 指定時はクッキー送信と両立させるため AllowOriginFunc で全許可します。
func buildCORSConfig(cfg *config.Config) cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
		"Authorization",
	}

	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	if len(origins) == 1 && strings.TrimSpace(origins[0]) == "*" {
		corsConfig.AllowOriginFunc = func(origin string) bool { return true }
	} else {
		corsConfig.AllowOrigins = origins
	}
	return corsConfig
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "intellect-ai-api",
		"version": "0.1.0",
	})
}

// setupRoutes はエンドポイントと認証周りの配線を行います。
func setupRoutes(
	router *gin.Engine,
	authHandler *auth.Handler,
	tokens *auth.TokenService,
	generator lecture.Generator,
	lectureStore lecture.Store,
	jobManager jobManagerAPI,
) {
	// まずは誰でも叩けるヘルスチェックを登録
	router.GET("/health", handleHealth)

	// 認証エンドポイント
	router.POST("/signup", authHandler.Signup)
	router.POST("/login", authHandler.Login)
	router.POST("/logout", authHandler.Logout)

	// 講義生成（同期）と非同期ジョブ
	router.POST("/generate-lecture", lecture.GenerateHandler(generator))
	router.POST("/generate-lecture/async", generateAsyncHandler(jobManager))
	router.GET("/jobs/:id", jobStatusHandler(jobManager))

	// 保存済み講義はログイン済みユーザーのみ
	api := router.Group("/api")
	{
		lectures := api.Group("/lectures")
		lectures.Use(auth.RequireAuth(tokens))
		{
			lectures.POST("", lecture.StoreHandler(lectureStore))
			lectures.GET("", lecture.ListHandler(lectureStore))
			lectures.GET("/:id", lecture.GetHandler(lectureStore))
		}
	}
}
