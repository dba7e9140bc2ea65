package domain

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestFileRepositorySave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.yaml")
	repo := NewFileRepository(path)

	if err := repo.SaveExpiring([]DomainSource{{Domain: "example.com", Source: "file:test", Expiry: "2030-01-01"}}); err != nil {
		t.Fatalf("SaveExpiring: %v", err)
	}
	if err := repo.SaveFailures([]FailureRecord{{Domain: "bad.example", Source: "file:test", Reason: "refused"}}); err != nil {
		t.Fatalf("SaveFailures: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got struct {
		UpdatedAt string          `yaml:"updatedAt"`
		Expiring  []DomainSource  `yaml:"expiring"`
		Failures  []FailureRecord `yaml:"failures"`
	}
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.UpdatedAt == "" {
		t.Error("updatedAt missing")
	}
	if len(got.Expiring) != 1 || got.Expiring[0].Domain != "example.com" {
		t.Errorf("expiring = %+v", got.Expiring)
	}
	if len(got.Failures) != 1 || got.Failures[0].Reason != "refused" {
		t.Errorf("failures = %+v", got.Failures)
	}
}

func TestFileRepositoryNoPath(t *testing.T) {
	repo := NewFileRepository("")
	if err := repo.SaveExpiring(nil); err != nil {
		t.Errorf("expected no-op, got %v", err)
	}
}
