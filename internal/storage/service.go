package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const resultsDir = "results"

const filePrefix = "interview_"

// SaveResult сохраняет экспорт интервью в JSON файл
func SaveResult(result *Result) (string, error) {
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		return "", fmt.Errorf("ошибка создания директории %s: %w", resultsDir, err)
	}

	filename := filepath.Join(resultsDir, filePrefix+result.SessionID+".json")

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации результата: %w", err)
	}

	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return "", fmt.Errorf("ошибка записи файла %s: %w", filename, err)
	}

	return filename, nil
}

// LoadResult загружает экспорт интервью из JSON файла
func LoadResult(sessionID string) (*Result, error) {
	filename := filepath.Join(resultsDir, filePrefix+sessionID+".json")

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", filename, err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("ошибка десериализации JSON: %w", err)
	}

	return &result, nil
}

// ListResults возвращает ID всех сохраненных интервью
func ListResults() ([]string, error) {
	if _, err := os.Stat(resultsDir); os.IsNotExist(err) {
		return []string{}, nil
	}

	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории %s: %w", resultsDir, err)
	}

	var ids []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".json" || !strings.HasPrefix(name, filePrefix) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), ".json"))
	}

	return ids, nil
}
