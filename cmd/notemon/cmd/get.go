// Copyright © 2026 Notemon

package cmd

import (
	"context"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/notemon/notemon/pkg/notes"
)

var getCmd = &cobra.Command{
	Use:   "get <ref> <key>",
	Short: "Print the value stored under a key on a reference",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		err := withSession(func(ctx context.Context, sess *notes.Session) error {
			v, err := sess.Ref(args[0]).Get(ctx, args[1])
			if err != nil {
				return err
			}
			return printValue(v)
		})
		if err != nil {
			logFatalln(err)
		}
	},
}

// printValue renders scalars bare and containers as JSON.
func printValue(v interface{}) error {
	switch val := v.(type) {
	case *notes.Map:
		m, err := val.Value()
		if err != nil {
			return err
		}
		return printJSON(m)
	case *notes.List:
		l, err := val.Value()
		if err != nil {
			return err
		}
		return printJSON(l)
	case string:
		fmt.Println(val)
		return nil
	default:
		return printJSON(val)
	}
}

func printJSON(v interface{}) error {
	data, err := jsoniter.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func init() {
	rootCmd.AddCommand(getCmd)
}
