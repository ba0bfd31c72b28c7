// File: cmd/stackctl/status.go
// Brief: `stackctl status` command wiring.

package main

import (
	"github.com/example/stackctl/internal/stack"
	"github.com/spf13/cobra"
)

func newStatusCommand(global *globalOptions) *cobra.Command {
	var resources bool
	cmd := &cobra.Command{
		Use:   "status CONTEXT",
		Short: "Report the stack's deployments and services for a context",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, _, client, err := global.stackEnv(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return stack.RunStatus(cmd.Context(), stack.StatusOptions{
				Context:   opts.Context,
				Project:   opts.Config.Project,
				Namespace: opts.Namespace,
				Resources: resources,
			}, client, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&resources, "resources", false, "Include live pod CPU/memory usage from the metrics API")
	return cmd
}
