package azure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"clock-client/pkg/models"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// ConversationsClient はAzure AI Language の会話言語理解 (CLU) REST APIへのリクエストを管理します。
type ConversationsClient struct {
	endpoint       string
	apiKey         string
	apiVersion     string
	projectName    string
	deploymentName string
	language       string
	httpClient     *http.Client
	limiter        *rate.Limiter
}

// ClientOptions はConversationsClientの設定値です。
type ClientOptions struct {
	Endpoint       string
	APIKey         string
	APIVersion     string
	ProjectName    string
	DeploymentName string
	Language       string
	Timeout        time.Duration
	// RequestsPerSecond が0以下の場合はレート制限を行いません。
	RequestsPerSecond float64
}

// NewConversationsClient は新しいCLUクライアントを作成します。
func NewConversationsClient(opts ClientOptions) *ConversationsClient {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	language := opts.Language
	if language == "" {
		language = "en"
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	return &ConversationsClient{
		endpoint:       opts.Endpoint,
		apiKey:         opts.APIKey,
		apiVersion:     opts.APIVersion,
		projectName:    opts.ProjectName,
		deploymentName: opts.DeploymentName,
		language:       language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(limit, 1),
	}
}

// --- データ構造定義 ---

// ConversationItem 解析対象の発話
type ConversationItem struct {
	ParticipantID string `json:"participantId"`
	ID            string `json:"id"`
	Modality      string `json:"modality"`
	Language      string `json:"language"`
	Text          string `json:"text"`
}

// AnalysisInput 解析入力
type AnalysisInput struct {
	ConversationItem ConversationItem `json:"conversationItem"`
	IsLoggingEnabled bool             `json:"isLoggingEnabled"`
}

// AnalysisParameters 解析対象のプロジェクトとデプロイ
type AnalysisParameters struct {
	ProjectName    string `json:"projectName"`
	DeploymentName string `json:"deploymentName"`
	Verbose        bool   `json:"verbose"`
}

// AnalyzeConversationRequest 会話解析リクエスト
type AnalyzeConversationRequest struct {
	Kind          string             `json:"kind"`
	AnalysisInput AnalysisInput      `json:"analysisInput"`
	Parameters    AnalysisParameters `json:"parameters"`
}

// AnalyzeConversationResponse 会話解析レスポンス
type AnalyzeConversationResponse struct {
	Kind   string `json:"kind"`
	Result struct {
		Query      string `json:"query"`
		Prediction struct {
			TopIntent   string `json:"topIntent"`
			ProjectKind string `json:"projectKind"`
			Intents     []struct {
				Category        string  `json:"category"`
				ConfidenceScore float64 `json:"confidenceScore"`
			} `json:"intents"`
			Entities []struct {
				Category        string  `json:"category"`
				Text            string  `json:"text"`
				Offset          int     `json:"offset"`
				Length          int     `json:"length"`
				ConfidenceScore float64 `json:"confidenceScore"`
			} `json:"entities"`
		} `json:"prediction"`
	} `json:"result"`
}

// ErrorResponse エラーレスポンス
type ErrorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// --- メソッド定義 ---

// AnalyzeConversation はクエリを1件のテキスト発話としてCLUに送信し、予測結果を返します。
func (c *ConversationsClient) AnalyzeConversation(ctx context.Context, query string) (*models.PredictionResult, error) {
	url := fmt.Sprintf("%s/language/:analyze-conversations?api-version=%s",
		strings.TrimSuffix(c.endpoint, "/"), c.apiVersion)

	request := c.newRequest(query)

	var response AnalyzeConversationResponse
	if err := c.doRequest(ctx, url, request, &response); err != nil {
		return nil, fmt.Errorf("CLU API 呼び出しに失敗: %w", err)
	}

	return response.toPrediction(), nil
}

func (c *ConversationsClient) newRequest(query string) AnalyzeConversationRequest {
	return AnalyzeConversationRequest{
		Kind: "Conversation",
		AnalysisInput: AnalysisInput{
			ConversationItem: ConversationItem{
				ParticipantID: "1",
				ID:            uuid.New().String(),
				Modality:      "text",
				Language:      c.language,
				Text:          query,
			},
			IsLoggingEnabled: false,
		},
		Parameters: AnalysisParameters{
			ProjectName:    c.projectName,
			DeploymentName: c.deploymentName,
			Verbose:        true,
		},
	}
}

func (r *AnalyzeConversationResponse) toPrediction() *models.PredictionResult {
	p := r.Result.Prediction
	result := &models.PredictionResult{
		Query:     r.Result.Query,
		TopIntent: p.TopIntent,
		Intents:   make([]models.IntentScore, 0, len(p.Intents)),
		Entities:  make([]models.Entity, 0, len(p.Entities)),
	}
	for _, intent := range p.Intents {
		result.Intents = append(result.Intents, models.IntentScore{
			Category:        intent.Category,
			ConfidenceScore: intent.ConfidenceScore,
		})
	}
	for _, entity := range p.Entities {
		result.Entities = append(result.Entities, models.Entity{
			Category:        entity.Category,
			Text:            entity.Text,
			ConfidenceScore: entity.ConfidenceScore,
		})
	}
	return result
}

// doRequest はHTTPリクエストの実行と基本的なレスポンス処理を行う共通メソッドです。
func (c *ConversationsClient) doRequest(ctx context.Context, url string, requestData interface{}, responseData interface{}) error {
	if c.apiKey == "" {
		return fmt.Errorf("API key が設定されていません")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("レート制限の待機に失敗: %w", err)
	}

	requestBody, err := json.Marshal(requestData)
	if err != nil {
		return fmt.Errorf("リクエストのJSON化に失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(requestBody))
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの実行に失敗: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("レスポンスの読み取りに失敗: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errorResp ErrorResponse
		if err := json.Unmarshal(body, &errorResp); err == nil && errorResp.Error.Message != "" {
			return fmt.Errorf("CLU API エラー (status: %d, code: %s): %s", resp.StatusCode, errorResp.Error.Code, errorResp.Error.Message)
		}
		return fmt.Errorf("CLU API エラー (status: %d): %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, responseData); err != nil {
		return fmt.Errorf("レスポンスのJSON解析に失敗: %w", err)
	}

	return nil
}
