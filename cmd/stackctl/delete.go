package main

import (
	"github.com/example/stackctl/internal/stack"
	"github.com/spf13/cobra"
)

func newDeleteCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete CONTEXT",
		Short: "Delete the stack for a context (remove the project secret, then delete its resources)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, runner, client, err := global.stackEnv(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return stack.RunDelete(cmd.Context(), opts, runner, client, cmd.OutOrStdout())
		},
	}
}
