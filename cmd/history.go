package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved assessments",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved assessments, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		email, _ := cmd.Flags().GetString("email")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		list, err := s.AssessmentRepo().List(context.Background(), store.ListOpts{Limit: limit, Email: email})
		if err != nil {
			return fmt.Errorf("list assessments: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(w, "No assessments found.")
			return nil
		}

		fmt.Fprintf(w, "%-36s  %-16s  %-20s  %-5s  %s\n", "ID", "Date", "Name", "Risk", "P")
		fmt.Fprintln(w, strings.Repeat("─", 90))
		for _, a := range list {
			fmt.Fprintf(w, "%-36s  %-16s  %-20s  %-5s  %s\n",
				a.ID,
				a.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(a.Name, 20),
				assessment.AdviceFor(a).Risk,
				formatProbability(a.Probability),
			)
		}
		return nil
	},
}

var historyViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one assessment with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		a, err := getAssessment(s, args[0])
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		sep := strings.Repeat("─", 60)
		adv := assessment.AdviceFor(a)

		fmt.Fprintf(w, "ID:        %s\n", a.ID)
		fmt.Fprintf(w, "Time:      %s\n", a.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(w, "Name:      %s\n", a.Name)
		fmt.Fprintf(w, "Email:     %s\n", a.Email)
		fmt.Fprintf(w, "Risk:      %s (p=%s)\n", adv.Risk, formatProbability(a.Probability))
		fmt.Fprintf(w, "Model:     %s\n", a.ModelVersion)
		if len(a.Defaulted) > 0 {
			fmt.Fprintf(w, "Defaulted: %s\n", strings.Join(a.Defaulted, ", "))
		}

		fmt.Fprintln(w)
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, "ANSWERS")
		fmt.Fprintln(w, sep)
		for _, e := range a.Answers.Entries() {
			fmt.Fprintf(w, "%-28s  %s\n", e.Key, e.Answer)
		}

		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, "RESULT")
		fmt.Fprintln(w, sep)
		fmt.Fprintln(w, strings.TrimSpace(adv.Prediction))
		if a.Reflection != "" {
			fmt.Fprintln(w)
			fmt.Fprintln(w, a.Reflection)
		}
		return nil
	},
}

// getAssessment fetches by ID with a user-facing not-found error.
func getAssessment(s *store.Store, id string) (*store.Assessment, error) {
	a, err := s.AssessmentRepo().Get(context.Background(), id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("assessment %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get assessment: %w", err)
	}
	return a, nil
}

func formatProbability(p float64) string {
	if p < 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f", p)
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of assessments to show")
	historyListCmd.Flags().String("email", "", "Only show assessments for this email")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyViewCmd)
}
