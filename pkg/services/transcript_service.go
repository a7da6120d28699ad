package services

import (
	"fmt"
	"strings"
	"sync"

	"clock-client/pkg/models"

	"github.com/xuri/excelize/v2"
)

const transcriptSheet = "Transcript"

var transcriptHeader = []interface{}{
	"Timestamp", "Query", "Top Intent", "Confidence", "Entities", "Answer", "Error",
}

// TranscriptService はセッション中のクエリと回答を記録し、Excelファイルに書き出します。
type TranscriptService struct {
	entries []models.TranscriptEntry
	mu      sync.Mutex
}

// NewTranscriptService は新しいTranscriptServiceを生成します。
func NewTranscriptService() *TranscriptService {
	return &TranscriptService{
		entries: make([]models.TranscriptEntry, 0),
	}
}

// Record は1回分のやり取りを記録します。
func (s *TranscriptService) Record(entry models.TranscriptEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
}

// Len は記録済みの件数を返します。
func (s *TranscriptService) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Save は記録をpathにxlsx形式で保存します。
func (s *TranscriptService) Save(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), transcriptSheet); err != nil {
		return fmt.Errorf("シート名の設定に失敗: %w", err)
	}

	if err := f.SetSheetRow(transcriptSheet, "A1", &transcriptHeader); err != nil {
		return fmt.Errorf("ヘッダー行の書き込みに失敗: %w", err)
	}

	for i, entry := range s.entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("セル座標の変換に失敗: %w", err)
		}
		row := []interface{}{
			entry.Timestamp,
			entry.Query,
			entry.TopIntent,
			entry.Confidence,
			formatEntities(entry.Entities),
			entry.Answer,
			entry.Error,
		}
		if err := f.SetSheetRow(transcriptSheet, cell, &row); err != nil {
			return fmt.Errorf("行 %d の書き込みに失敗: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("トランスクリプトの保存に失敗: %w", err)
	}
	return nil
}

func formatEntities(entities []models.Entity) string {
	parts := make([]string, 0, len(entities))
	for _, e := range entities {
		parts = append(parts, fmt.Sprintf("%s=%s", e.Category, e.Text))
	}
	return strings.Join(parts, "; ")
}
