package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/langbuddy/internal/exercise"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "List the active exercise set",
	RunE: func(cmd *cobra.Command, args []string) error {
		more, _ := cmd.Flags().GetBool("more")
		answers, _ := cmd.Flags().GetBool("answers")

		e, err := setup(cmd, envOptions{quietProvider: !more})
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		list := e.tutor.Exercises()
		if more {
			var fromModel bool
			list, fromModel, err = e.tutor.MoreExercises(contextOf(cmd))
			if err != nil {
				return err
			}
			if !fromModel {
				fmt.Fprintln(out, "Could not generate new exercises; loaded the practice set instead.")
				fmt.Fprintln(out)
			}
		}

		if len(list) == 0 {
			fmt.Fprintln(out, "No exercises yet. Chat with the tutor or run `langbuddy exercises --more`.")
			return nil
		}
		printExercises(out, list, answers)
		return nil
	},
}

func printExercises(w io.Writer, list []exercise.Exercise, answers bool) {
	for i, ex := range list {
		meta := []string{ex.Kind.Label()}
		if ex.Topic != "" {
			meta = append(meta, ex.Topic)
		}
		if ex.Difficulty != "" {
			meta = append(meta, ex.Difficulty)
		}
		fmt.Fprintf(w, "%d. [%s] %s\n", i+1, strings.Join(meta, ", "), ex.Question)
		for j, opt := range ex.Options {
			fmt.Fprintf(w, "     %d) %s\n", j+1, opt)
		}
		if answers {
			fmt.Fprintf(w, "   Answer: %s\n", ex.CorrectAnswer)
			if ex.Explanation != "" {
				fmt.Fprintf(w, "   %s\n", ex.Explanation)
			}
		}
	}
}

func init() {
	exercisesCmd.Flags().Bool("more", false, "Generate a new set from the conversation first")
	exercisesCmd.Flags().Bool("answers", false, "Show answers and explanations")
}
