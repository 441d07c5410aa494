// Package jobs は講義生成の非同期ジョブ管理機能を提供します。
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/yourusername/intellect-ai/internal/config"
	"github.com/yourusername/intellect-ai/internal/lecture"
)

const (
	taskTypeLecture = "lecture:generate"
	queueLectures   = "lectures"
)

// Manager はジョブの投入と状態管理を担います。
type Manager struct {
	cfg       *config.Config
	client    *asynq.Client
	server    *asynq.Server
	mux       *asynq.ServeMux
	store     *Store
	generator lecture.Generator
	logger    *log.Logger
}

// TaskPayload は講義生成ジョブのペイロードです。
type TaskPayload struct {
	JobID string `json:"jobId"`
	Topic string `json:"topic"`
}

// NewManager は Manager を初期化します。
func NewManager(cfg *config.Config, generator lecture.Generator, store *Store, logger *log.Logger) (*Manager, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}
	if generator == nil {
		return nil, errors.New("generator is nil")
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	opt, err := asynq.ParseRedisURI(cfg.QueueRedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := asynq.NewClient(opt)
	server := asynq.NewServer(
		opt,
		asynq.Config{
			Concurrency: 4,
			Queues: map[string]int{
				queueLectures: 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	manager := &Manager{
		cfg:       cfg,
		client:    client,
		server:    server,
		mux:       mux,
		store:     store,
		generator: generator,
		logger:    logger,
	}
	mux.HandleFunc(taskTypeLecture, manager.handleLectureTask)
	return manager, nil
}

// StartWorkers は Asynq サーバーをバックグラウンドで起動します。
func (m *Manager) StartWorkers() {
	go func() {
		if err := m.server.Run(m.mux); err != nil && err != asynq.ErrServerClosed {
			if m.logger != nil {
				m.logger.Printf("asynq server stopped with error: %v", err)
			} else {
				log.Printf("asynq server stopped with error: %v", err)
			}
		}
	}()
}

// Shutdown はサーバーとクライアントを閉じます。
func (m *Manager) Shutdown(ctx context.Context) error {
	m.server.Shutdown()
	m.client.Close()
	return nil
}

// Enqueue は講義生成ジョブをキューに投入し、ジョブIDを返します。
func (m *Manager) Enqueue(ctx context.Context, topic string) (string, error) {
	if topic == "" {
		return "", fmt.Errorf("topic is required")
	}

	payload := &TaskPayload{
		JobID: uuid.NewString(),
		Topic: topic,
	}

	record := &Record{
		JobID:  payload.JobID,
		Topic:  payload.Topic,
		Status: StatusQueued,
	}
	if err := m.store.Upsert(ctx, record); err != nil {
		return "", err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	task := asynq.NewTask(taskTypeLecture, body, asynq.Queue(queueLectures))
	if _, err := m.client.EnqueueContext(ctx, task, asynq.MaxRetry(1)); err != nil {
		return "", err
	}
	return payload.JobID, nil
}

// GetRecord はジョブ情報を取得します。
func (m *Manager) GetRecord(ctx context.Context, jobID string) (*Record, error) {
	return m.store.Get(ctx, jobID)
}

func (m *Manager) handleLectureTask(ctx context.Context, task *asynq.Task) error {
	var payload TaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}
	if payload.JobID == "" {
		return fmt.Errorf("missing jobId in payload")
	}

	if err := m.store.MarkRunning(ctx, payload.JobID); err != nil {
		return err
	}

	data, err := m.generator.Generate(ctx, payload.Topic)
	if err != nil {
		return m.store.MarkFailed(ctx, payload.JobID, &ErrorInfo{
			Code:    "GENERATION_FAILED",
			Message: err.Error(),
		})
	}
	return m.store.MarkDone(ctx, payload.JobID, data)
}
