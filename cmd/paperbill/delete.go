package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/estlin/paperbill/internal/app"
	"github.com/estlin/paperbill/internal/cli"
	"github.com/estlin/paperbill/internal/model"
)

func deleteCmd(kind model.Kind) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <number>",
		Short: fmt.Sprintf("Delete a saved %s", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd.Context(), kind)
			if err != nil {
				return err
			}
			defer func() {
				if closeErr := sess.close(); closeErr != nil {
					slog.Error("failed to close database", "error", closeErr)
				}
			}()

			if force {
				sess.app.Confirm = func(string) bool { return true }
			}

			removed, err := sess.app.Delete(cmd.Context(), args[0])
			if errors.Is(err, app.ErrCancelled) {
				fmt.Println("Delete cancelled.") //nolint:forbidigo // User-facing output
				return nil
			}
			if err != nil {
				return err
			}
			if !removed {
				fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("No %s with number %s.", kind, args[0]))) //nolint:forbidigo // User-facing output
				return nil
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted %s %s", kind, args[0]))) //nolint:forbidigo // User-facing output
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "delete without confirmation")
	return cmd
}
