package main

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mindgrid/internal/launch"
	"github.com/vovakirdan/mindgrid/internal/points"
	"github.com/vovakirdan/mindgrid/internal/registry"
	"github.com/vovakirdan/mindgrid/internal/storage"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show or change stored preferences",
	Long: `Manage the links and switches kept in the scores database.

Examples:
  mindgrid prefs show
  mindgrid prefs set-play https://example.com/play
  mindgrid prefs set-privacy https://example.com/privacy
  mindgrid prefs resume https://example.com/play/level-3
  mindgrid prefs feedback off
  mindgrid prefs reset`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored preferences",
	Args:  cobra.NoArgs,
	RunE: withLinks(func(store *storage.Store, links *launch.Store, _ []string) error {
		fmt.Printf("play:     %s\n", links.Play())
		fmt.Printf("privacy:  %s\n", links.Privacy())

		resume, err := links.RestoreResume()
		if err != nil {
			return err
		}
		if resume != nil {
			fmt.Printf("resume:   %s\n", resume)
		} else {
			fmt.Println("resume:   (none)")
		}

		fb, ok, err := store.GetPref(prefFeedback)
		if err != nil {
			return err
		}
		if !ok {
			fb = "on"
		}
		fmt.Printf("feedback: %s\n", fb)
		return nil
	}),
}

var prefsSetPlayCmd = &cobra.Command{
	Use:   "set-play <url>",
	Short: "Set the play link",
	Args:  cobra.ExactArgs(1),
	RunE: withLinks(func(_ *storage.Store, links *launch.Store, args []string) error {
		return reportUpdate(links.UpdatePlay(args[0]))
	}),
}

var prefsSetPrivacyCmd = &cobra.Command{
	Use:   "set-privacy <url>",
	Short: "Set the privacy link",
	Args:  cobra.ExactArgs(1),
	RunE: withLinks(func(_ *storage.Store, links *launch.Store, args []string) error {
		return reportUpdate(links.UpdatePrivacy(args[0]))
	}),
}

var prefsResumeCmd = &cobra.Command{
	Use:   "resume <url>",
	Short: "Record the resume link unless one is already saved",
	Args:  cobra.ExactArgs(1),
	RunE: withLinks(func(_ *storage.Store, links *launch.Store, args []string) error {
		u, err := url.Parse(args[0])
		if err != nil || u.Scheme == "" || u.Host == "" {
			fmt.Printf("Ignored invalid link %q.\n", args[0])
			return nil
		}
		if err := links.StoreResumeIfNeeded(u); err != nil {
			return err
		}
		saved, err := links.RestoreResume()
		if err != nil {
			return err
		}
		fmt.Printf("resume: %s\n", saved)
		return nil
	}),
}

var prefsFeedbackCmd = &cobra.Command{
	Use:       "feedback <on|off>",
	Short:     "Turn the bell on merges and game over on or off",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"on", "off"},
	RunE: withLinks(func(store *storage.Store, _ *launch.Store, args []string) error {
		if err := store.SetPref(prefFeedback, args[0]); err != nil {
			return err
		}
		fmt.Printf("feedback: %s\n", args[0])
		return nil
	}),
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every stored preference and best score",
	Args:  cobra.NoArgs,
	RunE: withLinks(func(store *storage.Store, links *launch.Store, _ []string) error {
		if err := links.ResetAll(); err != nil {
			return err
		}
		for _, g := range registry.List() {
			tracker, err := points.NewTracker(g.ID, store)
			if err != nil {
				return err
			}
			if err := tracker.ResetAll(); err != nil {
				return err
			}
		}
		if err := store.ClearPrefs(); err != nil {
			return err
		}
		fmt.Println("Preferences reset to defaults.")
		return nil
	}),
}

func init() {
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetPlayCmd)
	prefsCmd.AddCommand(prefsSetPrivacyCmd)
	prefsCmd.AddCommand(prefsResumeCmd)
	prefsCmd.AddCommand(prefsFeedbackCmd)
	prefsCmd.AddCommand(prefsResetCmd)
}

// withLinks opens the database and the link store around fn.
func withLinks(fn func(*storage.Store, *launch.Store, []string) error) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, args []string) error {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer store.Close()

		links, err := launch.New(store)
		if err != nil {
			return err
		}
		return fn(store, links, args)
	}
}

func reportUpdate(changed bool, err error) error {
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("Ignored: the link must be an absolute URL.")
		return nil
	}
	fmt.Println("Saved.")
	return nil
}
