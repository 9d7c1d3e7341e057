package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/langbuddy/internal/selfupdate"
)

const updateTimeout = 2 * time.Minute

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update langbuddy to the latest release",
	Long: `Update replaces the running binary with a release from GitHub.

The archive's SHA-256 is checked against the release's checksums.txt
before anything on disk changes. Development builds cannot be updated.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		checkOnly, _ := cmd.Flags().GetBool("check")
		target, _ := cmd.Flags().GetString("version")
		out := cmd.OutOrStdout()

		ctx, cancel := context.WithTimeout(contextOf(cmd), updateTimeout)
		defer cancel()
		checker := selfupdate.NewChecker(selfupdate.WithTimeout(updateTimeout))

		if checkOnly {
			return reportUpdate(ctx, out, checker)
		}

		err := checker.Update(ctx, &selfupdate.UpdateInput{
			CurrentVersion: version,
			TargetVersion:  target,
		}, func(p selfupdate.UpdateProgress) {
			fmt.Fprintln(out, p.Message)
		})

		switch {
		case err == nil:
			return nil
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintf(out, "This is a development build (%s); install a release to enable updates.\n", version)
			return nil
		case errors.Is(err, selfupdate.ErrAlreadyLatest):
			fmt.Fprintf(out, "langbuddy %s is already the latest release.\n", version)
			return nil
		case os.IsPermission(err):
			return fmt.Errorf("%w\n\nThe binary's directory is not writable; rerun with sudo or reinstall to a user directory", err)
		default:
			return err
		}
	},
}

func reportUpdate(ctx context.Context, out io.Writer, checker *selfupdate.Checker) error {
	res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
	if err != nil {
		return fmt.Errorf("check for updates: %w", err)
	}
	if !res.UpdateAvailable {
		fmt.Fprintf(out, "Up to date (latest release %s, running %s).\n", res.LatestVersion, version)
		return nil
	}
	fmt.Fprintf(out, "langbuddy %s is available, you have %s.\n", res.LatestVersion, version)
	fmt.Fprintf(out, "Release notes: %s\nRun `langbuddy update` to install it.\n", res.ReleaseURL)
	return nil
}

func init() {
	updateCmd.Flags().Bool("check", false, "Only report whether an update is available")
	updateCmd.Flags().String("version", "", "Install this release tag instead of the latest")
}
