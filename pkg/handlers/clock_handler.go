package handlers

import (
	"net/http"
	"strings"
	"time"

	"clock-client/pkg/clock"
	"clock-client/pkg/models"
	"clock-client/pkg/services"

	"github.com/gin-gonic/gin"
)

// ClockHandler はクエリ解析と意図解決のハンドラです。
type ClockHandler struct {
	clockService *services.ClockService
}

// NewClockHandler は新しいClockHandlerを生成します。
func NewClockHandler(clockService *services.ClockService) *ClockHandler {
	return &ClockHandler{clockService: clockService}
}

// Analyze はテキストをCLUで解析し、予測結果と回答を返します。
func (h *ClockHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "テキストが必要です。"})
		return
	}

	prediction, answer, err := h.clockService.Ask(c.Request.Context(), req.Text)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": models.AnalyzeResponse{
			Prediction: prediction,
			Answer:     answer,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// Resolve はCLUを呼ばずに、渡されたトップインテントとエンティティから回答を返します。
func (h *ClockHandler) Resolve(c *gin.Context) {
	var req models.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "リクエストの形式が正しくありません: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": models.ResolveResponse{
			Intent: clock.ParseIntent(req.TopIntent).String(),
			Answer: h.clockService.Resolve(req.TopIntent, req.Entities),
		},
	})
}
