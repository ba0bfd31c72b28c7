// File: internal/stack/ops.go
// Brief: Mutating stack operations (create/update/delete).

package stack

import (
	"context"
	"io"

	"github.com/example/stackctl/internal/appconfig"
	"github.com/example/stackctl/internal/kube"
	"github.com/example/stackctl/internal/kubectl"
)

// Options carries everything the mutating verbs need: the project root,
// the context (which names both the manifest and the kubeconfig context),
// the loaded project config, and the resolved target namespace.
type Options struct {
	Root      string
	Context   string
	Config    appconfig.Config
	Namespace string
}

// RunCreate provisions the project secret, then applies the context's
// manifest. The manifest is checked before any cluster call is made.
func RunCreate(ctx context.Context, opts Options, kctl kubectl.Invoker, client *kube.Client, out io.Writer) error {
	manifest, err := RequireManifest(opts.Root, opts.Context)
	if err != nil {
		return err
	}

	created, err := client.EnsureSecret(ctx, opts.Namespace, opts.Config.SecretName(), map[string]string{"app": opts.Config.Project})
	if err != nil {
		return err
	}
	if created {
		printGreen(out, "Created secret %s", opts.Config.SecretName())
	} else {
		printGreen(out, "Secret %s already exists", opts.Config.SecretName())
	}

	if err := kctl.Apply(ctx, manifest); err != nil {
		return err
	}
	printGreen(out, "Created stack %s", opts.Context)
	return nil
}

// RunUpdate applies the context's manifest.
func RunUpdate(ctx context.Context, opts Options, kctl kubectl.Invoker, out io.Writer) error {
	manifest, err := RequireManifest(opts.Root, opts.Context)
	if err != nil {
		return err
	}
	if err := kctl.Apply(ctx, manifest); err != nil {
		return err
	}
	printGreen(out, "Updated stack %s", opts.Context)
	return nil
}

// RunDelete removes the project secret, then deletes the stack's resources.
func RunDelete(ctx context.Context, opts Options, kctl kubectl.Invoker, client *kube.Client, out io.Writer) error {
	manifest, err := RequireManifest(opts.Root, opts.Context)
	if err != nil {
		return err
	}

	if err := client.DeleteSecret(ctx, opts.Namespace, opts.Config.SecretName()); err != nil {
		return err
	}
	printGreen(out, "Deleted secret %s", opts.Config.SecretName())

	if err := kctl.Delete(ctx, manifest); err != nil {
		return err
	}
	printGreen(out, "Deleted stack %s", opts.Context)
	return nil
}
