// Copyright © 2026 Notemon

package cmd

import (
	"context"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/notemon/notemon/pkg/notes"
)

var setCmd = &cobra.Command{
	Use:   "set <ref> <key> <value>",
	Short: "Store a value under a key on a reference",
	Long: `Store a value under a key on a reference.

The value is parsed as JSON; anything that does not parse is stored as a
plain string, so both 'set main owner alice' and
'set main owner {"name":"alice"}' do what they look like.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(func(ctx context.Context, sess *notes.Session) error {
			return sess.Ref(args[0]).Set(ctx, args[1], parseValue(args[2]))
		})
		if err != nil {
			logFatalln(err)
		}
	},
}

// parseValue interprets CLI input as JSON when it parses, as a bare
// string otherwise.
func parseValue(raw string) interface{} {
	var v interface{}
	if err := jsoniter.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func init() {
	rootCmd.AddCommand(setCmd)
}
