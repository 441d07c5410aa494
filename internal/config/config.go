// Package config は環境変数から設定を読み込み、アプリケーション全体で使用する設定を提供します。
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーションの設定を保持する構造体です。
// 起動時に一度だけ読み込まれ、以後は不変として扱います。
type Config struct {
	// ストア設定
	MongoURI string // MongoDB接続文字列
	DBName   string // データベース名

	// 認証設定
	SecretKey          string // トークン署名用の秘密鍵（必須）
	TokenExpireMinutes int    // トークンの有効期限（分）
	CookieDomain       string // 認証クッキーのドメイン

	// サーバー設定
	Port    string // APIサーバーのポート番号
	GinMode string // Ginの実行モード (debug, release, test)

	// CORS設定
	CORSAllowedOrigins string // CORS許可オリジン（カンマ区切り）

	// 講義生成設定
	GeneratorBaseURL string // 外部生成サービスのベースURL

	// ジョブ/キュー設定
	QueueRedisURL    string // Asynq用Redis接続URL
	JobExpireMinutes int    // ジョブ記録の有効期限（分）
}

// TokenTTL はトークンの有効期限を time.Duration で返します。
// クッキーの MaxAge は常にこの値と一致させます。
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenExpireMinutes) * time.Minute
}

// Load は環境変数から設定を読み込みます。
// .env.local ファイルが存在する場合はそこから読み込みます。
func Load() (*Config, error) {
	loadEnvFile()

	config := &Config{
		// ストア設定
		MongoURI: getEnv("MONGO_URI", "mongodb://127.0.0.1:27017"),
		DBName:   getEnv("DB_NAME", "intellectai"),

		// 認証設定
		SecretKey:          getEnv("SECRET_KEY", ""),
		TokenExpireMinutes: getEnvAsInt("TOKEN_EXPIRE_MINUTES", 60*24), // 24時間
		CookieDomain:       getEnv("COOKIE_DOMAIN", "localhost"),

		// サーバー設定
		Port:    getEnv("PORT", "8000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// CORS設定
		CORSAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "*"),

		// 講義生成設定
		GeneratorBaseURL: getEnv("GENERATOR_BASE_URL", ""),

		// ジョブ/キュー設定
		QueueRedisURL:    getEnv("QUEUE_REDIS_URL", "redis://127.0.0.1:6379/0"),
		JobExpireMinutes: getEnvAsInt("JOB_EXPIRE_MINUTES", 60),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func loadEnvFile() {
	if err := godotenv.Load(".env.local"); err == nil {
		return
	}

	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	parent := filepath.Dir(cwd)
	if parent == "" || parent == cwd {
		return
	}

	_ = godotenv.Load(filepath.Join(parent, ".env.local"))
}

// Validate は設定の妥当性を検証します。
// 秘密鍵はモードを問わず必須です。未設定のまま既知の既定値へ
// フォールバックすると全トークンが偽造可能になるため、起動を中止します。
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	if c.TokenExpireMinutes <= 0 {
		return fmt.Errorf("TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.GinMode == "release" {
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required in release mode")
		}
		if c.GeneratorBaseURL == "" {
			return fmt.Errorf("GENERATOR_BASE_URL is required in release mode")
		}
		if c.QueueRedisURL == "" {
			return fmt.Errorf("QUEUE_REDIS_URL is required in release mode")
		}
	}

	return nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します。
func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt は環境変数を整数として取得します。
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
