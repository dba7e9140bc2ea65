package domain

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

type snapshot struct {
	UpdatedAt string          `yaml:"updatedAt"`
	Expiring  []DomainSource  `yaml:"expiring"`
	Failures  []FailureRecord `yaml:"failures"`
	Reports   []LookupReport  `yaml:"reports,omitempty"`
}

// FileRepository 把检测结果写入单个 YAML 快照文件。
type FileRepository struct {
	Path string

	mu   sync.Mutex
	data snapshot
}

func NewFileRepository(path string) *FileRepository {
	return &FileRepository{Path: path}
}

func (r *FileRepository) SaveExpiring(domains []DomainSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.Expiring = domains
	return r.flush()
}

func (r *FileRepository) SaveFailures(failures []FailureRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.Failures = failures
	return r.flush()
}

func (r *FileRepository) SaveReports(reports []LookupReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.Reports = reports
	return r.flush()
}

func (r *FileRepository) flush() error {
	if r.Path == "" {
		return nil
	}
	r.data.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	out, err := yaml.Marshal(&r.data)
	if err != nil {
		return fmt.Errorf("序列化检测结果失败: %w", err)
	}
	if err := os.WriteFile(r.Path, out, 0o644); err != nil {
		return fmt.Errorf("写入检测结果失败: %w", err)
	}
	return nil
}
