// File: cmd/stackctl/env.go
// Brief: `stackctl env` subcommands managing the project secret.

package main

import (
	"github.com/example/stackctl/internal/kube"
	"github.com/example/stackctl/internal/stack"
	"github.com/spf13/cobra"
)

func newEnvCommand(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Manage the project's environment stored in its cluster secret",
	}

	envSetup := func(cmd *cobra.Command, contextName string) (stack.EnvOptions, *kube.Client, error) {
		opts, _, client, err := global.stackEnv(cmd.Context(), contextName)
		if err != nil {
			return stack.EnvOptions{}, nil, err
		}
		return stack.EnvOptions{
			Project:   opts.Config.Project,
			Namespace: opts.Namespace,
			Secret:    opts.Config.SecretName(),
		}, client, nil
	}

	var format string
	listCmd := &cobra.Command{
		Use:   "list CONTEXT",
		Short: "List all environment keys and values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, client, err := envSetup(cmd, args[0])
			if err != nil {
				return err
			}
			opts.Format = format
			return stack.RunEnvList(cmd.Context(), opts, client, cmd.OutOrStdout())
		},
	}
	listCmd.Flags().StringVarP(&format, "format", "o", "table", "Output format: table|yaml")

	getCmd := &cobra.Command{
		Use:   "get CONTEXT [KEY...]",
		Short: "Print selected environment values (all keys when none are given)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, client, err := envSetup(cmd, args[0])
			if err != nil {
				return err
			}
			return stack.RunEnvGet(cmd.Context(), opts, client, args[1:], cmd.OutOrStdout())
		},
	}

	setCmd := &cobra.Command{
		Use:   "set CONTEXT KEY=VALUE...",
		Short: "Set environment values",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pairs, err := stack.ParseKeyValues(args[1:])
			if err != nil {
				return err
			}
			opts, client, err := envSetup(cmd, args[0])
			if err != nil {
				return err
			}
			return stack.RunEnvSet(cmd.Context(), opts, client, pairs, cmd.OutOrStdout())
		},
	}

	unsetCmd := &cobra.Command{
		Use:   "unset CONTEXT KEY...",
		Short: "Remove environment keys",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, client, err := envSetup(cmd, args[0])
			if err != nil {
				return err
			}
			return stack.RunEnvUnset(cmd.Context(), opts, client, args[1:], cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(listCmd, getCmd, setCmd, unsetCmd)
	return cmd
}
