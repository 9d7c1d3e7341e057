package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/langbuddy/internal/tutor"
	"github.com/abhisek/langbuddy/internal/vocab"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage saved vocabulary",
}

var vocabListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved words",
	RunE: func(cmd *cobra.Command, args []string) error {
		sortBy, _ := cmd.Flags().GetString("sort")
		filter, _ := cmd.Flags().GetString("filter")

		order := vocab.SortOrder(sortBy)
		if order != vocab.ByDate && order != vocab.ByAlpha {
			return fmt.Errorf("invalid --sort %q (want date or alphabetical)", sortBy)
		}

		e, err := setup(cmd, envOptions{quietProvider: true})
		if err != nil {
			return err
		}
		defer e.Close()

		var words []vocab.Word
		if due, _ := cmd.Flags().GetBool("due"); due {
			words = vocab.Filter(e.tutor.DueVocabulary(), filter)
		} else {
			words = vocab.Filter(e.tutor.Vocabulary(), filter)
			vocab.Sort(words, order)
		}

		out := cmd.OutOrStdout()
		if len(words) == 0 {
			fmt.Fprintln(out, "No words found.")
			return nil
		}

		now := e.tutor.Now()
		width := 0
		for _, w := range words {
			width = max(width, len([]rune(w.Word)))
		}
		for _, w := range words {
			pad := strings.Repeat(" ", width-len([]rune(w.Word)))
			fmt.Fprintf(out, "%s%s  %-24s  %s", w.Word, pad, w.Translation, w.DateAdded.Local().Format("2006-01-02"))
			if len(w.Examples) > 0 {
				fmt.Fprintf(out, "  %d examples", len(w.Examples))
			}
			switch st := w.ReviewStatus(now); st {
			case vocab.ReviewDue, vocab.ReviewOverdue:
				fmt.Fprintf(out, "  %s", st)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

var vocabAddCmd = &cobra.Command{
	Use:   "add <word>",
	Short: "Save a word with a translation",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sentence, _ := cmd.Flags().GetString("context")

		e, err := setup(cmd, envOptions{quietProvider: true})
		if err != nil {
			return err
		}
		defer e.Close()

		w, added, err := e.tutor.AddVocabularyWord(contextOf(cmd), strings.Join(args, " "), sentence)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if !added {
			fmt.Fprintf(out, "%s is already saved (%s).\n", w.Word, w.Translation)
			return nil
		}
		fmt.Fprintf(out, "Added %s: %s\n", w.Word, w.Translation)
		return nil
	},
}

var vocabRemoveCmd = &cobra.Command{
	Use:   "remove <word>",
	Short: "Delete a saved word",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{quietProvider: true})
		if err != nil {
			return err
		}
		defer e.Close()

		w, err := findWord(e.tutor, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if err := e.tutor.RemoveWord(contextOf(cmd), w.ID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", w.Word)
		return nil
	},
}

var vocabExamplesCmd = &cobra.Command{
	Use:   "examples <word>",
	Short: "Generate example sentences for a saved word",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, envOptions{})
		if err != nil {
			return err
		}
		defer e.Close()

		w, err := findWord(e.tutor, strings.Join(args, " "))
		if err != nil {
			return err
		}
		w, err = e.tutor.GenerateExamples(contextOf(cmd), w.ID)
		if err != nil {
			return err
		}
		printExamples(cmd.OutOrStdout(), w)
		return nil
	},
}

var vocabClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every saved word",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("this deletes every saved word; pass --yes to confirm")
		}

		e, err := setup(cmd, envOptions{quietProvider: true})
		if err != nil {
			return err
		}
		defer e.Close()

		n := len(e.tutor.Vocabulary())
		e.tutor.ClearVocabulary(contextOf(cmd))
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d words.\n", n)
		return nil
	},
}

// findWord matches by word (ignoring case) or by ID.
func findWord(t *tutor.Tutor, key string) (vocab.Word, error) {
	words := t.Vocabulary()
	if i, ok := vocab.Find(words, key); ok {
		return words[i], nil
	}
	if i, ok := vocab.IndexByID(words, key); ok {
		return words[i], nil
	}
	return vocab.Word{}, fmt.Errorf("%q: %w", key, tutor.ErrWordNotFound)
}

func printExamples(w io.Writer, word vocab.Word) {
	fmt.Fprintf(w, "%s: %s\n", word.Word, word.Translation)
	for _, ex := range word.Examples {
		fmt.Fprintf(w, "\n  [%s]\n  %s\n  %s\n", ex.Difficulty, ex.Source, ex.Target)
	}
}

func init() {
	vocabListCmd.Flags().String("sort", string(vocab.ByDate), "Sort order: date or alphabetical")
	vocabListCmd.Flags().String("filter", "", "Only show words or translations containing this text")
	vocabListCmd.Flags().Bool("due", false, "Only show words due for review, most overdue first")
	vocabAddCmd.Flags().String("context", "", "Sentence the word was found in")
	vocabClearCmd.Flags().Bool("yes", false, "Confirm deleting every word")

	vocabCmd.AddCommand(vocabListCmd)
	vocabCmd.AddCommand(vocabAddCmd)
	vocabCmd.AddCommand(vocabRemoveCmd)
	vocabCmd.AddCommand(vocabExamplesCmd)
	vocabCmd.AddCommand(vocabClearCmd)
}
