// Package appconfig loads stackctl's project configuration: a repo-level
// stacks/config.yml naming the project, optionally merged over a global
// per-user config file.
package appconfig

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

type KubectlConfig struct {
	Bin       string `yaml:"bin,omitempty"`
	ExtraArgs string `yaml:"extraArgs,omitempty"`
}

type Config struct {
	Project   string        `yaml:"project,omitempty"`
	Namespace string        `yaml:"namespace,omitempty"`
	Kubectl   KubectlConfig `yaml:"kubectl,omitempty"`
}

func DefaultGlobalPath() string {
	home, _ := os.UserHomeDir()
	if strings.TrimSpace(home) == "" {
		return ""
	}
	return filepath.Join(home, ".stackctl", "config.yaml")
}

func DefaultRepoPath(root string) string {
	root = strings.TrimSpace(root)
	if root == "" {
		return ""
	}
	return filepath.Join(root, "stacks", "config.yml")
}

func Load(ctx context.Context, globalPath, repoPath string) (Config, error) {
	_ = ctx
	cfg := Config{}
	if strings.TrimSpace(globalPath) != "" {
		if c, err := loadOne(globalPath); err != nil {
			return Config{}, fmt.Errorf("load global config: %w", err)
		} else {
			cfg = merge(cfg, c)
		}
	}
	if strings.TrimSpace(repoPath) != "" {
		if c, err := loadOne(repoPath); err != nil {
			return Config{}, fmt.Errorf("load project config: %w", err)
		} else {
			cfg = merge(cfg, c)
		}
	}
	return cfg, nil
}

// Validate ensures the loaded config can drive project-scoped commands.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Project) == "" {
		return fmt.Errorf("project name is not set (expected 'project' in stacks/config.yml)")
	}
	return nil
}

// SecretName is the name of the cluster Secret holding the project's
// environment.
func (c Config) SecretName() string {
	return c.Project + "-secrets"
}

func loadOne(path string) (Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Config{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, err
	}
	raw = []byte(strings.TrimSpace(string(raw)))
	if len(raw) == 0 {
		return Config{}, nil
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func merge(a, b Config) Config {
	out := a
	if b.Project != "" {
		out.Project = b.Project
	}
	if b.Namespace != "" {
		out.Namespace = b.Namespace
	}
	if b.Kubectl.Bin != "" {
		out.Kubectl.Bin = b.Kubectl.Bin
	}
	if b.Kubectl.ExtraArgs != "" {
		out.Kubectl.ExtraArgs = b.Kubectl.ExtraArgs
	}
	return out
}
