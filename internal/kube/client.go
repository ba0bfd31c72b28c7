// client.go constructs the Kubernetes clientsets used across stackctl.
package kube

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/mitchellh/go-homedir"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/client-go/tools/clientcmd/api"
	metricsclient "k8s.io/metrics/pkg/client/clientset/versioned"
)

// Client bundles the Kubernetes clients used throughout the application.
type Client struct {
	RESTConfig *rest.Config
	Clientset  kubernetes.Interface
	Metrics    metricsclient.Interface
	Namespace  string
}

// New builds a Kubernetes client configuration honoring the provided kubeconfig path and context.
func New(ctx context.Context, kubeconfigPath, contextName string) (*Client, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		expanded, err := homedir.Expand(kubeconfigPath)
		if err != nil {
			return nil, fmt.Errorf("expand kubeconfig path: %w", err)
		}
		loadingRules.Precedence = []string{filepath.Clean(expanded)}
	}

	overrides := &clientcmd.ConfigOverrides{ClusterInfo: api.Cluster{Server: ""}}
	if contextName != "" {
		overrides.CurrentContext = contextName
	}
	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)
	namespace, _, err := clientConfig.Namespace()
	if err != nil {
		return nil, fmt.Errorf("resolve default namespace: %w", err)
	}
	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("build rest config: %w", err)
	}
	rest.SetDefaultWarningHandler(rest.NoWarnings{})

	// Aggressive defaults for snappy startup.
	restConfig.Timeout = 30 * time.Second
	restConfig.QPS = 50
	restConfig.Burst = 100

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create typed client: %w", err)
	}

	metrics, err := metricsclient.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("create metrics client: %w", err)
	}

	return &Client{
		RESTConfig: restConfig,
		Clientset:  clientset,
		Metrics:    metrics,
		Namespace:  namespace,
	}, nil
}

// TargetNamespace resolves the namespace commands should act on: an explicit
// override wins, then the kubeconfig context namespace, then "default".
func (c *Client) TargetNamespace(override string) string {
	if override != "" {
		return override
	}
	if c.Namespace != "" {
		return c.Namespace
	}
	return "default"
}
