package main

import (
	"github.com/example/stackctl/internal/stack"
	"github.com/spf13/cobra"
)

func newUpdateCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "update CONTEXT",
		Short: "Update the stack for a context by re-applying its manifest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, runner, _, err := global.stackEnv(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return stack.RunUpdate(cmd.Context(), opts, runner, cmd.OutOrStdout())
		},
	}
}
