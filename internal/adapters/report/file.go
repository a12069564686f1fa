package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"feedback-board/internal/domain"
	"feedback-board/internal/infra/metrics"
)

// DefaultPath задаёт путь к EDA-отчёту относительно рабочего каталога.
const DefaultPath = "data/eda-report.json"

// FileLoader читает EDA-отчёт из JSON-файла при каждом обращении.
type FileLoader struct {
	path string
}

var _ domain.ReportLoader = (*FileLoader)(nil)

// NewFileLoader создаёт загрузчик отчёта.
func NewFileLoader(path string) *FileLoader {
	if path == "" {
		path = DefaultPath
	}
	return &FileLoader{path: path}
}

// Load реализует domain.ReportLoader.
func (l *FileLoader) Load(ctx context.Context) (domain.EDAReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.EDAReport{}, err
	}
	start := time.Now()
	report, err := l.read()
	metrics.ObserveStorageRequest("report_file", "load", start, err)
	return report, err
}

func (l *FileLoader) read() (domain.EDAReport, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return domain.EDAReport{}, fmt.Errorf("read report: %w", err)
	}
	var report domain.EDAReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return domain.EDAReport{}, fmt.Errorf("decode report: %w", err)
	}
	return report, nil
}
