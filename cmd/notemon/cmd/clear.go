// Copyright © 2026 Notemon

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/notemon/notemon/pkg/notes"
)

var clearCmd = &cobra.Command{
	Use:   "clear <ref>",
	Short: "Remove every key-value pair from a reference",
	Long: `Remove every key-value pair from a reference.

A cleared reference has its note removed from the notes history rather
than rewritten as an empty object.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(func(ctx context.Context, sess *notes.Session) error {
			return sess.Ref(args[0]).Clear(ctx)
		})
		if err != nil {
			logFatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
}
