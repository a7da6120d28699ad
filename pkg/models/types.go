package models

// Entity represents a labeled span extracted from the user's query.
type Entity struct {
	Category        string  `json:"category"`
	Text            string  `json:"text"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// IntentScore is a single intent classification with its confidence.
type IntentScore struct {
	Category        string  `json:"category"`
	ConfidenceScore float64 `json:"confidenceScore"`
}

// PredictionResult is the parsed prediction for one query.
// Intents are ordered by confidence as returned by the service.
type PredictionResult struct {
	Query     string        `json:"query"`
	TopIntent string        `json:"topIntent"`
	Intents   []IntentScore `json:"intents"`
	Entities  []Entity      `json:"entities"`
}

// TopScore returns the first intent score, or a zero value when the service
// returned no intents.
func (p *PredictionResult) TopScore() IntentScore {
	if len(p.Intents) == 0 {
		return IntentScore{}
	}
	return p.Intents[0]
}

// AnalyzeRequest HTTP経由のクエリ解析リクエスト
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required"`
}

// AnalyzeResponse HTTP経由のクエリ解析レスポンス
type AnalyzeResponse struct {
	Prediction *PredictionResult `json:"prediction"`
	Answer     string            `json:"answer"`
	Timestamp  string            `json:"timestamp"`
}

// ResolveRequest ローカル解決のみを行うリクエスト（CLU呼び出しなし）
type ResolveRequest struct {
	TopIntent string   `json:"topIntent"`
	Entities  []Entity `json:"entities"`
}

// ResolveResponse ローカル解決の結果
type ResolveResponse struct {
	Intent string `json:"intent"`
	Answer string `json:"answer"`
}

// TranscriptEntry is one console iteration recorded for export.
type TranscriptEntry struct {
	Timestamp  string
	Query      string
	TopIntent  string
	Confidence float64
	Entities   []Entity
	Answer     string
	Error      string
}
