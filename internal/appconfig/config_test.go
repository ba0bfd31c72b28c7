package appconfig

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadMissingFilesYieldsEmptyConfig(t *testing.T) {
	root := t.TempDir()
	cfg, err := Load(context.Background(), filepath.Join(root, "nope.yaml"), filepath.Join(root, "stacks", "config.yml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Project != "" {
		t.Fatalf("expected empty project, got %q", cfg.Project)
	}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for missing project name")
	}
}

func TestLoadRepoOverridesGlobal(t *testing.T) {
	root := t.TempDir()
	global := filepath.Join(root, "global.yaml")
	repo := filepath.Join(root, "stacks", "config.yml")
	writeFile(t, global, "project: shared\nkubectl:\n  bin: /opt/kubectl\n")
	writeFile(t, repo, "project: shop\nnamespace: prod\n")

	cfg, err := Load(context.Background(), global, repo)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Project != "shop" {
		t.Fatalf("repo project should win, got %q", cfg.Project)
	}
	if cfg.Namespace != "prod" {
		t.Fatalf("namespace mismatch: %q", cfg.Namespace)
	}
	if cfg.Kubectl.Bin != "/opt/kubectl" {
		t.Fatalf("global kubectl bin should survive merge, got %q", cfg.Kubectl.Bin)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestSecretName(t *testing.T) {
	cfg := Config{Project: "shop"}
	if got := cfg.SecretName(); got != "shop-secrets" {
		t.Fatalf("secret name mismatch: %q", got)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "stacks", "config.yml")
	writeFile(t, repo, "project: [unterminated\n")
	if _, err := Load(context.Background(), "", repo); err == nil {
		t.Fatalf("expected error for malformed config")
	}
}
