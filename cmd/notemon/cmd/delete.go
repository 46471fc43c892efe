// Copyright © 2026 Notemon

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/notemon/notemon/pkg/notes"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <ref> <key>",
	Short: "Remove a key from a reference",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(func(ctx context.Context, sess *notes.Session) error {
			return sess.Ref(args[0]).Delete(ctx, args[1])
		})
		if err != nil {
			logFatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
