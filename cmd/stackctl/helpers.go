// helpers.go resolves the per-command environment: project config, the
// kubectl runner, and the API client for the selected context.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/example/stackctl/internal/appconfig"
	"github.com/example/stackctl/internal/kube"
	"github.com/example/stackctl/internal/kubectl"
	"github.com/example/stackctl/internal/stack"
)

type globalOptions struct {
	kubeconfigPath string
	rootDir        string
	namespace      string
	logLevel       string
}

func newGlobalOptions() *globalOptions {
	return &globalOptions{logLevel: "info"}
}

func (g *globalOptions) root() (string, error) {
	if g.rootDir != "" {
		return g.rootDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}

func (g *globalOptions) loadConfig(ctx context.Context) (string, appconfig.Config, error) {
	root, err := g.root()
	if err != nil {
		return "", appconfig.Config{}, err
	}
	cfg, err := appconfig.Load(ctx, appconfig.DefaultGlobalPath(), appconfig.DefaultRepoPath(root))
	if err != nil {
		return "", appconfig.Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return "", appconfig.Config{}, err
	}
	return root, cfg, nil
}

// stackEnv builds everything a stack verb needs for one context. The
// context name selects both the manifest file and the kubeconfig context.
func (g *globalOptions) stackEnv(ctx context.Context, contextName string) (stack.Options, *kubectl.Runner, *kube.Client, error) {
	root, cfg, err := g.loadConfig(ctx)
	if err != nil {
		return stack.Options{}, nil, nil, err
	}
	client, err := kube.New(ctx, g.kubeconfigPath, contextName)
	if err != nil {
		return stack.Options{}, nil, nil, err
	}
	namespace := g.namespace
	if namespace == "" {
		namespace = cfg.Namespace
	}
	namespace = client.TargetNamespace(namespace)

	runner, err := kubectl.NewRunner(cfg.Kubectl.Bin, contextName, namespace, cfg.Kubectl.ExtraArgs)
	if err != nil {
		return stack.Options{}, nil, nil, err
	}
	opts := stack.Options{
		Root:      root,
		Context:   contextName,
		Config:    cfg,
		Namespace: namespace,
	}
	return opts, runner, client, nil
}
