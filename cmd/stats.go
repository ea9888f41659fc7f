package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show assessment and activity counts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		list, err := s.AssessmentRepo().List(ctx, store.ListOpts{})
		if err != nil {
			return fmt.Errorf("list assessments: %w", err)
		}
		events, err := s.EventRepo().QueryEvents(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		w := cmd.OutOrStdout()
		st := summarize(list, events)

		fmt.Fprintln(w, "Assessments")
		fmt.Fprintln(w, strings.Repeat("─", 40))
		fmt.Fprintf(w, "%-24s  %6d\n", "Total", st.total)
		fmt.Fprintf(w, "%-24s  %6d\n", "High risk", st.byRisk[advice.RiskHigh])
		fmt.Fprintf(w, "%-24s  %6d\n", "Low risk", st.byRisk[advice.RiskLow])
		fmt.Fprintf(w, "%-24s  %6d\n", "With defaulted answers", st.withDefaults)

		if len(st.byKind) > 0 {
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Activity")
			fmt.Fprintln(w, strings.Repeat("─", 40))
			for _, k := range st.kinds {
				fmt.Fprintf(w, "%-24s  %6d\n", k, st.byKind[k])
			}
		}
		return nil
	},
}

type summary struct {
	total        int
	withDefaults int
	byRisk       map[advice.Risk]int
	byKind       map[string]int
	kinds        []string // first-seen order
}

func summarize(list []*store.Assessment, events []store.EventRecord) summary {
	st := summary{
		total:  len(list),
		byRisk: make(map[advice.Risk]int),
		byKind: make(map[string]int),
	}
	for _, a := range list {
		st.byRisk[assessment.AdviceFor(a).Risk]++
		if len(a.Defaulted) > 0 {
			st.withDefaults++
		}
	}
	for _, e := range events {
		if _, seen := st.byKind[e.Kind]; !seen {
			st.kinds = append(st.kinds, e.Kind)
		}
		st.byKind[e.Kind]++
	}
	return st
}
