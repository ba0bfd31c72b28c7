package main

import (
	"github.com/example/stackctl/internal/stack"
	"github.com/spf13/cobra"
)

func newCreateCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "create CONTEXT",
		Short: "Create the stack for a context (provision the project secret, then apply its manifest)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, runner, client, err := global.stackEnv(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return stack.RunCreate(cmd.Context(), opts, runner, client, cmd.OutOrStdout())
		},
	}
}
