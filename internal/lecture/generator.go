// Package lecture は講義の生成依頼と生成結果の保存を提供します。
package lecture

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Generator は外部の講義生成サービスが実装するインターフェースです。
// 生成の失敗は例外的な扱いをせず、明示的なエラー値として返します。
type Generator interface {
	Generate(ctx context.Context, topic string) (json.RawMessage, error)
}

// HTTPGenerator は Generator のHTTPクライアント実装です。
type HTTPGenerator struct {
	baseURL string
	client  *http.Client
}

// NewHTTPGenerator は HTTPGenerator を作成します。
// 生成はトピックによっては時間がかかるため、タイムアウトは長めに取ります。
func NewHTTPGenerator(baseURL string) *HTTPGenerator {
	return &HTTPGenerator{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

type generateRequest struct {
	Topic string `json:"topic"`
}

// Generate は外部サービスへ生成を依頼し、講義ドキュメントを
// 受け取ったままのJSONとして返します。
func (g *HTTPGenerator) Generate(ctx context.Context, topic string) (json.RawMessage, error) {
	body, err := json.Marshal(generateRequest{Topic: topic})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generator request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read generator response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("generator returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}

	if !json.Valid(data) {
		return nil, fmt.Errorf("generator returned invalid JSON")
	}
	return json.RawMessage(data), nil
}
