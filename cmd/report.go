package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/report"
	"github.com/abhisek/mindcheck/internal/speech"
	"github.com/abhisek/mindcheck/internal/store"
)

var reportCmd = &cobra.Command{
	Use:   "report <id>",
	Short: "Export an assessment as a PDF report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("output")
		if dir == "" {
			dir = report.DefaultDir()
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		a, err := getAssessment(s, args[0])
		if err != nil {
			return err
		}

		path, err := report.Export(dir, a)
		if err != nil {
			return err
		}
		_ = s.EventRepo().AppendEvent(context.Background(), store.EventData{
			Kind:         store.EventReportExported,
			AssessmentID: a.ID,
			Detail:       path,
		})
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var speakCmd = &cobra.Command{
	Use:   "speak <id>",
	Short: "Render the prediction of an assessment as audio",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("output")
		if dir == "" {
			dir = speech.DefaultDir()
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		a, err := getAssessment(s, args[0])
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		synth, err := speech.New(ctx, speech.ConfigFromEnv())
		if err != nil {
			return err
		}

		path, err := speech.SpeakTo(ctx, synth, dir, a.ID, assessment.AdviceFor(a).Spoken())
		kind, detail := store.EventSpeechRendered, path
		if err != nil {
			kind, detail = store.EventSpeechFailed, err.Error()
		}
		_ = s.EventRepo().AppendEvent(context.Background(), store.EventData{
			Kind:         kind,
			AssessmentID: a.ID,
			Detail:       detail,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	reportCmd.Flags().StringP("output", "o", "", "Directory for the PDF (default $MINDCHECK_REPORT_DIR or the working directory)")
	speakCmd.Flags().StringP("output", "o", "", "Directory for the audio file")
}
