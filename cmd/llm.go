package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/llm"
	"github.com/abhisek/mindcheck/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect recorded model calls",
	Long: `Inspect the model calls made while writing reflection notes.

Prompt and reply text is only recorded when MINDCHECK_LLM_LOG_BODIES=1.`,
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}
		events = recentLLMEvents(events, purpose, limit)

		w := cmd.OutOrStdout()
		if len(events) == 0 {
			fmt.Fprintln(w, "No model calls recorded.")
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "SEQ\tTIME\tPURPOSE\tMODEL\tTOKENS\tMS\tOK")
		for _, e := range events {
			fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d/%d\t%d\t%s\n",
				e.Sequence,
				e.Timestamp.Local().Format("2006-01-02 15:04"),
				e.Purpose,
				truncate(e.Model, 28),
				e.InputTokens, e.OutputTokens,
				e.LatencyMs,
				okMark(e.Success),
			)
		}
		return tw.Flush()
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <seq>",
	Short: "Show one recorded model call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		seq, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("sequence must be a number, got %q", args[0])
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(context.Background(), seq)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no model call with sequence %d", seq)
		}

		w := cmd.OutOrStdout()
		tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
		fmt.Fprintf(tw, "Sequence:\t%d\n", e.Sequence)
		fmt.Fprintf(tw, "Time:\t%s\n", e.Timestamp.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(tw, "Provider:\t%s (%s)\n", e.Provider, e.Model)
		fmt.Fprintf(tw, "Purpose:\t%s\n", e.Purpose)
		fmt.Fprintf(tw, "Tokens:\t%d in, %d out\n", e.InputTokens, e.OutputTokens)
		fmt.Fprintf(tw, "Latency:\t%d ms\n", e.LatencyMs)
		if e.ErrorMessage != "" {
			fmt.Fprintf(tw, "Error:\t%s\n", e.ErrorMessage)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		printSection(w, "Request", e.RequestBody)
		printSection(w, "Response", e.ResponseBody)
		return nil
	},
}

var llmUsageCmd = &cobra.Command{
	Use:     "usage",
	Aliases: []string{"stats"},
	Short:   "Summarize token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := context.Background()
		byPurpose, err := s.EventRepo().LLMUsageByPurpose(ctx)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsageByModel(ctx)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}

		w := cmd.OutOrStdout()
		if len(byPurpose) == 0 {
			fmt.Fprintln(w, "No model calls recorded.")
			return nil
		}

		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
		fmt.Fprintln(tw, "PURPOSE\tCALLS\tIN\tOUT\tAVG MS\t")
		for _, u := range byPurpose {
			fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t\n", u.Key, u.Calls, u.InputTokens, u.OutputTokens, u.AvgLatencyMs)
		}
		if err := tw.Flush(); err != nil {
			return err
		}

		fmt.Fprintln(w)
		total, unpriced := estimateCost(byModel)
		fmt.Fprintf(w, "Estimated cost: %s\n", formatCost(total))
		if len(unpriced) > 0 {
			fmt.Fprintf(w, "No price list for: %s\n", strings.Join(unpriced, ", "))
		}
		return nil
	},
}

// estimateCost totals the priced models and names the rest.
func estimateCost(usage []store.LLMUsage) (total float64, unpriced []string) {
	for _, u := range usage {
		p, ok := llm.PriceOf(u.Key)
		if !ok {
			unpriced = append(unpriced, u.Key)
			continue
		}
		total += p.Estimate(llm.Usage{InputTokens: u.InputTokens, OutputTokens: u.OutputTokens})
	}
	return total, unpriced
}

// recentLLMEvents filters by purpose and keeps the newest limit events,
// newest first.
func recentLLMEvents(events []store.LLMRequestEventRecord, purpose string, limit int) []store.LLMRequestEventRecord {
	var out []store.LLMRequestEventRecord
	for i := len(events) - 1; i >= 0; i-- {
		if purpose != "" && events[i].Purpose != purpose {
			continue
		}
		out = append(out, events[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

func printSection(w io.Writer, title, body string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("─", len(title)))
	if body == "" {
		body = "(not recorded)"
	}
	fmt.Fprintln(w, strings.TrimRight(body, "\n"))
}

func okMark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd > 0 && usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show calls with this purpose")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmUsageCmd)
}
