package jobs

import (
	"encoding/json"
	"time"
)

// Status はジョブの実行状態を表します。
type Status string

const (
	StatusQueued  Status = "queued"
	StatusRunning Status = "running"
	StatusDone    Status = "done"
	StatusFailed  Status = "error"
)

// ErrorInfo はジョブ失敗時のエラー情報を保持します。
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Record は講義生成ジョブの現在状態を表します。
// 完了すると Data に生成された講義ドキュメントがそのまま入ります。
type Record struct {
	JobID     string          `json:"jobId"`
	Topic     string          `json:"topic"`
	Status    Status          `json:"status"`
	Data      json.RawMessage `json:"data,omitempty"`
	Error     *ErrorInfo      `json:"error,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	ExpiresAt time.Time       `json:"expiresAt"`
}
