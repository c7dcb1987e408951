package main

import (
	"context"

	"github.com/spf13/cobra"

	"scenes/adapter/terminal"
)

func rootCmd(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "scenes",
		Short:         "Login and task list scenes in the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().DurationVar(&cfg.ServiceLatency, "latency", cfg.ServiceLatency, "simulated service latency")

	// cfg is read at run time so flags can override it
	run := func(cmd *cobra.Command, fn func(ctx context.Context, sh *terminal.Shell) error) error {
		a, err := newApp(cmd.Context(), cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		return a.Run(cmd.Context(), fn)
	}

	root.AddCommand(loginCmd(run), tasksCmd(run), shellCmd(run))
	return root
}

type runFunc func(cmd *cobra.Command, fn func(ctx context.Context, sh *terminal.Shell) error) error

func loginCmd(run runFunc) *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in, then show the tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, sh *terminal.Shell) error {
				return sh.Login(ctx, email, password)
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}

func tasksCmd(run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Work with the task list",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List the tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, sh *terminal.Shell) error {
				return sh.ListTasks(ctx)
			})
		},
	}, &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task and list the rest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, sh *terminal.Shell) error {
				return sh.DeleteTask(ctx, args[0])
			})
		},
	})
	return cmd
}

func shellCmd(run runFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(ctx context.Context, sh *terminal.Shell) error {
				return sh.Run(ctx, cmd.InOrStdin())
			})
		},
	}
}
