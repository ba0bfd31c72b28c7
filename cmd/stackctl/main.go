// main.go bootstraps stackctl: it builds the root Cobra command, wires
// configuration and logging, and executes with a signal-aware context.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/example/stackctl/internal/logging"
	"github.com/go-logr/logr"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	rootCmd := newRootCommand()
	err := rootCmd.ExecuteContext(ctx)
	handleError(err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := newGlobalOptions()
	cmd := &cobra.Command{
		Use:           "stackctl",
		Short:         "Manage a project's deployment stacks with kubectl",
		Long:          "stackctl applies, updates, deletes, and reports on a project's deployment stacks, one manifest per named context.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(opts.logLevel)
			if err != nil {
				return err
			}
			cmd.Root().SetContext(logr.NewContext(cmd.Context(), logger))
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.kubeconfigPath, "kubeconfig", "k", "", "Path to the kubeconfig file to use for CLI requests")
	cmd.PersistentFlags().StringVarP(&opts.rootDir, "root", "r", "", "Project root directory (defaults to the working directory)")
	cmd.PersistentFlags().StringVarP(&opts.namespace, "namespace", "n", "", "Kubernetes namespace to act on (defaults to the project config, then the context namespace)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", opts.logLevel, "Log level for stackctl output (debug, info, warn, error)")

	createCmd := newCreateCommand(opts)
	updateCmd := newUpdateCommand(opts)
	deleteCmd := newDeleteCommand(opts)
	statusCmd := newStatusCommand(opts)
	envCmd := newEnvCommand(opts)
	cmd.AddCommand(createCmd, updateCmd, deleteCmd, statusCmd, envCmd, newVersionCommand(), newCompletionCommand())

	bindViper(cmd, createCmd, updateCmd, deleteCmd, statusCmd, envCmd)
	return cmd
}

func bindViper(commands ...*cobra.Command) {
	if len(commands) == 0 {
		return
	}
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix("STACKCTL")
	v.AutomaticEnv()

	cobra.OnInitialize(func() {
		for _, cmd := range commands {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				cobra.CheckErr(err)
			}
			if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
				cobra.CheckErr(err)
			}
		}
		for _, cmd := range commands {
			flagSets := []*pflag.FlagSet{cmd.Flags(), cmd.PersistentFlags()}
			for _, fs := range flagSets {
				fs.VisitAll(func(f *pflag.Flag) {
					if f.Changed {
						return
					}
					if !v.IsSet(f.Name) {
						return
					}
					val := fmt.Sprintf("%v", v.Get(f.Name))
					if val != "" {
						_ = f.Value.Set(val)
					}
				})
			}
		}
	})
}

func handleError(err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	message := err.Error()
	switch {
	case apierrors.IsUnauthorized(err):
		message = fmt.Sprintf("%s\nHint: kubeconfig credentials were rejected. Run 'kubectl config view' to confirm the active user.", err)
	case apierrors.IsForbidden(err):
		message = fmt.Sprintf("%s\nHint: missing Kubernetes permissions for the project's namespace.", err)
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", message)
}
