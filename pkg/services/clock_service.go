package services

import (
	"context"
	"fmt"
	"time"

	config "clock-client/configs"
	"clock-client/pkg/azure"
	"clock-client/pkg/clock"
	"clock-client/pkg/metrics"
	"clock-client/pkg/models"

	"go.uber.org/zap"
)

// ConversationAnalyzer は発話を解析して予測結果を返す外部サービスです。
// 本番では *azure.ConversationsClient が実装します。
type ConversationAnalyzer interface {
	AnalyzeConversation(ctx context.Context, query string) (*models.PredictionResult, error)
}

// ClockService CLUによる意図解析とローカルな時刻計算をまとめるサービス
type ClockService struct {
	analyzer ConversationAnalyzer
	resolver *clock.Resolver
	timeout  time.Duration
	log      *zap.Logger
}

// NewClockService 新しいClockServiceを作成
func NewClockService(analyzer ConversationAnalyzer, resolver *clock.Resolver, timeout time.Duration, log *zap.Logger) *ClockService {
	if resolver == nil {
		resolver = clock.NewResolver(clock.SystemClock)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &ClockService{
		analyzer: analyzer,
		resolver: resolver,
		timeout:  timeout,
		log:      log,
	}
}

// NewClockServiceFromConfig 設定からCLUクライアントを組み立ててClockServiceを作成
func NewClockServiceFromConfig(cfg *config.Config, log *zap.Logger) *ClockService {
	client := azure.NewConversationsClient(azure.ClientOptions{
		Endpoint:          cfg.ConversationsEndpoint,
		APIKey:            cfg.ConversationsAPIKey,
		APIVersion:        cfg.ConversationsAPIVersion,
		ProjectName:       cfg.ConversationsProjectName,
		DeploymentName:    cfg.ConversationsDeploymentName,
		Language:          cfg.ConversationsLanguage,
		Timeout:           cfg.ConversationsTimeout,
		RequestsPerSecond: cfg.ConversationsRPS,
	})
	return NewClockService(client, clock.NewResolver(clock.SystemClock), cfg.ConversationsTimeout, log)
}

// Analyze クエリをCLUに送信して予測結果を取得
func (s *ClockService) Analyze(ctx context.Context, query string) (*models.PredictionResult, error) {
	if s.analyzer == nil {
		return nil, fmt.Errorf("CLUクライアントが初期化されていません")
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	prediction, err := s.analyzer.AnalyzeConversation(ctx, query)
	elapsed := time.Since(start)
	metrics.AnalyzeDuration.Observe(elapsed.Seconds())

	if err != nil {
		metrics.AnalyzeTotal.WithLabelValues("error").Inc()
		s.log.Error("analyze conversation failed",
			zap.String("query", query),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		return nil, fmt.Errorf("クエリの解析に失敗: %w", err)
	}

	metrics.AnalyzeTotal.WithLabelValues("success").Inc()
	s.log.Debug("analyze conversation",
		zap.String("query", query),
		zap.String("top_intent", prediction.TopIntent),
		zap.Int("entities", len(prediction.Entities)),
		zap.Duration("elapsed", elapsed))

	return prediction, nil
}

// Resolve トップインテントとエンティティからローカルに回答を生成
func (s *ClockService) Resolve(topIntent string, entities []models.Entity) string {
	metrics.IntentTotal.WithLabelValues(clock.ParseIntent(topIntent).String()).Inc()
	return s.resolver.Handle(topIntent, entities)
}

// Ask クエリを解析して回答を返す
func (s *ClockService) Ask(ctx context.Context, query string) (*models.PredictionResult, string, error) {
	prediction, err := s.Analyze(ctx, query)
	if err != nil {
		return nil, "", err
	}
	return prediction, s.Resolve(prediction.TopIntent, prediction.Entities), nil
}
