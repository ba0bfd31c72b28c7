// Package kubectl shells out to the kubectl binary for manifest-level
// operations. Everything read-only goes through the API clients in
// internal/kube instead; kubectl is only used where its server-side
// apply/delete semantics are the point.
package kubectl

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	shellwords "github.com/mattn/go-shellwords"
)

const defaultBin = "kubectl"

// Invoker runs a kubectl verb against a manifest. It exists so command
// orchestration can be tested without spawning processes.
type Invoker interface {
	Apply(ctx context.Context, manifest string) error
	Delete(ctx context.Context, manifest string) error
}

// Runner invokes kubectl with a fixed kubeconfig context and namespace.
type Runner struct {
	Bin       string
	Context   string
	Namespace string
	ExtraArgs []string

	Stdout io.Writer
	Stderr io.Writer
}

// NewRunner builds a Runner. extraArgs is a raw string (e.g. from
// stacks/config.yml) split with shell quoting rules.
func NewRunner(bin, kubeContext, namespace, extraArgs string) (*Runner, error) {
	r := &Runner{
		Bin:       strings.TrimSpace(bin),
		Context:   strings.TrimSpace(kubeContext),
		Namespace: strings.TrimSpace(namespace),
		Stdout:    os.Stdout,
		Stderr:    os.Stderr,
	}
	if r.Bin == "" {
		r.Bin = defaultBin
	}
	if raw := strings.TrimSpace(extraArgs); raw != "" {
		parsed, err := shellwords.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("parse kubectl extra args %q: %w", raw, err)
		}
		r.ExtraArgs = parsed
	}
	return r, nil
}

// Args assembles the full argv (excluding the binary) for the given verb.
func (r *Runner) Args(verb string, rest ...string) []string {
	args := make([]string, 0, 6+len(r.ExtraArgs)+len(rest))
	if r.Context != "" {
		args = append(args, "--context", r.Context)
	}
	if r.Namespace != "" {
		args = append(args, "--namespace", r.Namespace)
	}
	args = append(args, r.ExtraArgs...)
	args = append(args, verb)
	args = append(args, rest...)
	return args
}

// Run executes kubectl with the assembled arguments, streaming output.
func (r *Runner) Run(ctx context.Context, verb string, rest ...string) error {
	args := r.Args(verb, rest...)
	cmd := exec.CommandContext(ctx, r.Bin, args...)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", r.Bin, strings.Join(args, " "), err)
	}
	return nil
}

func (r *Runner) Apply(ctx context.Context, manifest string) error {
	return r.Run(ctx, "apply", "-f", manifest)
}

func (r *Runner) Delete(ctx context.Context, manifest string) error {
	return r.Run(ctx, "delete", "-f", manifest)
}
