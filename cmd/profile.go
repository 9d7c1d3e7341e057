package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/langbuddy/internal/profile"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change the learner profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the learner profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{quietProvider: true})
		if err != nil {
			return err
		}
		defer e.Close()

		printProfile(cmd, e.tutor.Profile())
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change profile fields",
	Example: "  langbuddy profile set --level B1 --mode target-only\n" +
		"  langbuddy profile set --exercises=false",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{quietProvider: true})
		if err != nil {
			return err
		}
		defer e.Close()

		p := e.tutor.Profile()
		flags := cmd.Flags()

		if flags.Changed("name") {
			p.Name, _ = flags.GetString("name")
		}
		if flags.Changed("level") {
			v, _ := flags.GetString("level")
			l, ok := profile.ParseLevel(v)
			if !ok {
				return fmt.Errorf("invalid level %q (want one of A1, A2, B1, B2, C1, C2)", v)
			}
			p.Level = l
		}
		if flags.Changed("target") {
			p.TargetLanguage, _ = flags.GetString("target")
		}
		if flags.Changed("native") {
			p.NativeLanguage, _ = flags.GetString("native")
		}
		if flags.Changed("mode") {
			v, _ := flags.GetString("mode")
			m, ok := profile.ParseMode(v)
			if !ok {
				return fmt.Errorf("invalid mode %q (want bilingual or target-only)", v)
			}
			p.ResponseMode = m
		}
		if flags.Changed("exercises") {
			p.GenerateExercises, _ = flags.GetBool("exercises")
		}

		printProfile(cmd, e.tutor.UpdateProfile(contextOf(cmd), p))
		return nil
	},
}

func printProfile(cmd *cobra.Command, p profile.Profile) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Name:       %s\n", p.Name)
	fmt.Fprintf(out, "Level:      %s\n", p.Level)
	fmt.Fprintf(out, "Learning:   %s\n", p.TargetLanguage)
	fmt.Fprintf(out, "Native:     %s\n", p.NativeLanguage)
	fmt.Fprintf(out, "Replies:    %s\n", p.ResponseMode)
	fmt.Fprintf(out, "Exercises:  %s\n", map[bool]string{true: "on", false: "off"}[p.GenerateExercises])
}

func init() {
	levels := make([]string, len(profile.Levels))
	for i, l := range profile.Levels {
		levels[i] = string(l)
	}

	profileSetCmd.Flags().String("name", "", "Display name")
	profileSetCmd.Flags().String("level", "", "CEFR level ("+strings.Join(levels, ", ")+")")
	profileSetCmd.Flags().String("target", "", "Language being learned")
	profileSetCmd.Flags().String("native", "", "Native language")
	profileSetCmd.Flags().String("mode", "", "Reply language: bilingual or target-only")
	profileSetCmd.Flags().Bool("exercises", true, "Generate exercises from conversation")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
