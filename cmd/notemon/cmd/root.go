// Copyright © 2026 Notemon

package cmd

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notemon/notemon/pkg/backend/gitcli"
	"github.com/notemon/notemon/pkg/dlogger"
	"github.com/notemon/notemon/pkg/notes"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "notemon",
	Short: "Notemon stores key-value data in git notes",
	Long: `Notemon attaches structured key-value data to git references by storing it
as JSON in git notes.

Each reference (branch, tag, commit hash) acts as a separate key-value store.
Values may be arbitrarily nested JSON. Changes are committed to the notes
history when the command finishes, and optionally pushed to a remote.
`,
}

// used to patch over calls to os.Exit() during test
var logFatalln = log.Fatalln
var osExit = os.Exit

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		osExit(1)
	}
}

func init() {
	log.SetFlags(0)
	cobra.OnInitialize(initConfig)

	fl := rootCmd.PersistentFlags()
	fl.String("repo", ".", "path to the git working copy")
	fl.String("remote", notes.DefaultRemote, "remote to push notes to")
	fl.Bool("push", false, "push the notes history to the remote on success")
	fl.String("notes-ref", gitcli.DefaultNotesRef, "notes ref to read and write")
	fl.String("loglevel", dlogger.LogLevelNone, "log level (none|info|debug)")
	for _, flag := range []string{"repo", "remote", "push", "notes-ref", "loglevel"} {
		if err := viper.BindPFlag(flag, fl.Lookup(flag)); err != nil {
			logFatalln(err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfg := os.Getenv("NOTEMON_CONFIG"); cfg != "" {
		viper.SetConfigFile(cfg)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.notemon")
		viper.SetConfigName(".notemon")
	}
	viper.SetEnvPrefix("notemon")
	viper.AutomaticEnv() // read in environment variables that match
	if err := viper.ReadInConfig(); err == nil {
		log.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// withSession runs fn against a fresh session and flushes it afterwards.
// The session close is where dirty references actually get committed.
func withSession(fn func(ctx context.Context, sess *notes.Session) error) error {
	ctx := context.Background()
	logger, err := dlogger.GetLogger(viper.GetString("loglevel"))
	if err != nil {
		return err
	}
	sess, err := notes.Open(viper.GetString("repo"),
		notes.WithRemotePush(viper.GetBool("push")),
		notes.WithRemote(viper.GetString("remote")),
		notes.WithNotesRef(viper.GetString("notes-ref")),
		notes.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer sess.Close(ctx)
	if err := fn(ctx, sess); err != nil {
		return err
	}
	return sess.Close(ctx)
}
