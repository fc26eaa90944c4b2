package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"reflect"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/viant/commander"
	"github.com/viant/commander/model/session"
	acommand "github.com/viant/commander/service/action/system/command"
	aprocess "github.com/viant/commander/service/action/system/process"
	aterminal "github.com/viant/commander/service/action/system/terminal"
)

const (
	followInterval = 200 * time.Millisecond
	closeTimeout   = 5 * time.Second
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "commander",
		Short:         "Run shell commands as managed sessions",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().String("config", "", "config URL (yaml or json, any afs scheme)")
	rootCmd.AddCommand(
		execCmd(),
		blockCmd(),
		unblockCmd(),
		blockedCmd(),
		validateCmd(),
		psCmd(),
	)
	return rootCmd
}

// withService builds the service from the --config flag, runs fn and closes it
func withService(cmd *cobra.Command, fn func(ctx context.Context, srv *commander.Service) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	config := commander.DefaultConfig()
	if URL, _ := cmd.Flags().GetString("config"); URL != "" {
		loaded, err := commander.LoadConfig(ctx, URL)
		if err != nil {
			return err
		}
		config = loaded
	}
	srv, err := commander.New(ctx, commander.WithConfig(config))
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		_ = srv.Close(closeCtx)
	}()
	return fn(ctx, srv)
}

func dispatchText(ctx context.Context, srv *commander.Service, out io.Writer, service, method string, args map[string]interface{}) error {
	output, err := srv.Actions().Dispatch(ctx, service, method, args)
	if err != nil {
		return err
	}
	if text := reflect.Indirect(reflect.ValueOf(output)).FieldByName("Text"); text.IsValid() && text.Kind() == reflect.String {
		fmt.Fprintln(out, text.String())
	}
	return nil
}

func execCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command>",
		Short: "Execute a command, optionally following its output until it exits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			timeoutMs, _ := cmd.Flags().GetInt("timeout")
			followOutput, _ := cmd.Flags().GetBool("follow")
			return withService(cmd, func(ctx context.Context, srv *commander.Service) error {
				output, err := srv.Actions().Dispatch(ctx, aterminal.Name, "execute", map[string]interface{}{
					"command":   strings.Join(args, " "),
					"timeoutMs": timeoutMs,
				})
				if err != nil {
					return err
				}
				result := output.(*aterminal.ExecuteOutput)
				switch {
				case !followOutput:
					fmt.Fprintln(cmd.OutOrStdout(), result.Text)
					return nil
				case !result.IsBlocked:
					fmt.Fprint(cmd.OutOrStdout(), result.Output)
					return nil
				}
				return follow(ctx, srv, cmd.OutOrStdout(), result.Pid)
			})
		},
	}
	cmd.Flags().Int("timeout", 0, "milliseconds to wait before returning with the command still running")
	cmd.Flags().Bool("follow", false, "keep printing output until the command exits")
	return cmd
}

// follow prints output until the session completes; cancelling ctx terminates it.
// Unread output still holds what execute returned, so printing starts from there.
func follow(ctx context.Context, srv *commander.Service, out io.Writer, pid int) error {
	ticker := time.NewTicker(followInterval)
	defer ticker.Stop()
	manager := srv.Terminal()
	printed := 0
	for {
		select {
		case <-ctx.Done():
			manager.ForceTerminate(pid)
			return ctx.Err()
		case <-ticker.C:
		}
		if completed := completedSession(srv, pid); completed != nil {
			if printed < len(completed.Output) {
				fmt.Fprint(out, completed.Output[printed:])
			}
			fmt.Fprintf(out, "exit code: %s\n", completed.ExitCodeText())
			return nil
		}
		text, found := manager.ReadOutput(pid)
		if !found {
			return fmt.Errorf("no session found for PID %d", pid)
		}
		// exited between the two calls: the next tick prints the remainder
		if completedSession(srv, pid) != nil {
			continue
		}
		fmt.Fprint(out, text)
		printed += len(text)
	}
}

func completedSession(srv *commander.Service, pid int) *session.Completed {
	for _, completed := range srv.Terminal().ListCompleted() {
		if completed.Pid == pid {
			return completed
		}
	}
	return nil
}

func commandCmd(use, short, method string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, srv *commander.Service) error {
				return dispatchText(ctx, srv, cmd.OutOrStdout(), acommand.Name, method, map[string]interface{}{"command": strings.Join(args, " ")})
			})
		},
	}
}

func blockCmd() *cobra.Command {
	return commandCmd("block <command>", "Add a base command to the blocklist", "block")
}

func unblockCmd() *cobra.Command {
	return commandCmd("unblock <command>", "Remove a base command from the blocklist", "unblock")
}

func validateCmd() *cobra.Command {
	return commandCmd("validate <command line>", "Check whether a command line is allowed", "validate")
}

func blockedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "blocked",
		Short: "List blocked commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, srv *commander.Service) error {
				return dispatchText(ctx, srv, cmd.OutOrStdout(), acommand.Name, "list", nil)
			})
		},
	}
}

func psCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ps",
		Short: "List OS processes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, srv *commander.Service) error {
				return dispatchText(ctx, srv, cmd.OutOrStdout(), aprocess.Name, "list", nil)
			})
		},
	}
}
