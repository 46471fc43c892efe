// Copyright © 2026 Notemon

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notemon/notemon/pkg/notes"
)

var keysCmd = &cobra.Command{
	Use:   "keys <ref>",
	Short: "List the keys stored on a reference",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(func(ctx context.Context, sess *notes.Session) error {
			keys, err := sess.Ref(args[0]).Keys(ctx)
			if err != nil {
				return err
			}
			for _, k := range keys {
				fmt.Println(k)
			}
			return nil
		})
		if err != nil {
			logFatalln(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(keysCmd)
}
