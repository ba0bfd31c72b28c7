// File: internal/stack/env.go
// Brief: Project environment commands backed by the <project>-secrets Secret.

package stack

import (
	"context"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/example/stackctl/internal/kube"
	sigyaml "sigs.k8s.io/yaml"
)

type EnvOptions struct {
	Project   string
	Namespace string
	Secret    string

	// Format applies to list output: table|yaml.
	Format string
}

// ParseKeyValues splits KEY=VALUE arguments, rejecting malformed pairs and
// empty keys.
func ParseKeyValues(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || strings.TrimSpace(parts[0]) == "" {
			return nil, fmt.Errorf("invalid environment pair %q (expected KEY=VALUE)", arg)
		}
		out[strings.TrimSpace(parts[0])] = parts[1]
	}
	return out, nil
}

// RunEnvList prints every key of the project secret.
func RunEnvList(ctx context.Context, opts EnvOptions, client *kube.Client, out io.Writer) error {
	data, err := client.SecretData(ctx, opts.Namespace, opts.Secret)
	if err != nil {
		return err
	}
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "table":
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tVALUE")
		for _, key := range kube.SortedKeys(data) {
			fmt.Fprintf(tw, "%s\t%s\n", key, data[key])
		}
		return tw.Flush()
	case "yaml":
		raw, err := sigyaml.Marshal(data)
		if err != nil {
			return fmt.Errorf("marshal environment: %w", err)
		}
		_, err = out.Write(raw)
		return err
	default:
		return fmt.Errorf("unknown --format %q (expected table or yaml)", opts.Format)
	}
}

// RunEnvGet prints the selected keys (or all keys when none are given) as
// KEY=VALUE lines.
func RunEnvGet(ctx context.Context, opts EnvOptions, client *kube.Client, keys []string, out io.Writer) error {
	data, err := client.SecretData(ctx, opts.Namespace, opts.Secret)
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		keys = kube.SortedKeys(data)
	}
	for _, key := range keys {
		value, ok := data[key]
		if !ok {
			printRed(out, "Key %s not set", key)
			continue
		}
		fmt.Fprintf(out, "%s=%s\n", key, value)
	}
	return nil
}

// RunEnvSet writes KEY=VALUE pairs into the project secret.
func RunEnvSet(ctx context.Context, opts EnvOptions, client *kube.Client, pairs map[string]string, out io.Writer) error {
	if len(pairs) == 0 {
		return fmt.Errorf("no KEY=VALUE pairs given")
	}
	err := client.UpdateSecretData(ctx, opts.Namespace, opts.Secret, func(data map[string]string) map[string]string {
		for k, v := range pairs {
			data[k] = v
		}
		return data
	})
	if err != nil {
		return err
	}
	for _, key := range kube.SortedKeys(pairs) {
		printGreen(out, "Set %s", key)
	}
	return nil
}

// RunEnvUnset removes keys from the project secret. Unknown keys are
// reported but do not fail the command.
func RunEnvUnset(ctx context.Context, opts EnvOptions, client *kube.Client, keys []string, out io.Writer) error {
	if len(keys) == 0 {
		return fmt.Errorf("no keys given")
	}
	var missing []string
	err := client.UpdateSecretData(ctx, opts.Namespace, opts.Secret, func(data map[string]string) map[string]string {
		for _, key := range keys {
			if _, ok := data[key]; !ok {
				missing = append(missing, key)
				continue
			}
			delete(data, key)
		}
		return data
	})
	if err != nil {
		return err
	}
	for _, key := range missing {
		printRed(out, "Key %s not set", key)
	}
	for _, key := range keys {
		skipped := false
		for _, m := range missing {
			if m == key {
				skipped = true
				break
			}
		}
		if !skipped {
			printGreen(out, "Unset %s", key)
		}
	}
	return nil
}
