package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/survey"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict risk from an answer file (YAML or JSON)",
	Long: `Read a mapping of question to answer and print the prediction.

Keys may be field IDs (work_interfere) or the full question text. Missing or
unrecognized answers fall back to the neutral default and are listed.
With --name and --email the assessment is also saved to history.`,
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringP("answers", "a", "", "Answer file, or - for stdin (required)")
	predictCmd.Flags().Bool("json", false, "Print JSON instead of text")
	predictCmd.Flags().Bool("features", false, "Include the encoded feature vector")
	predictCmd.Flags().String("name", "", "Name to save the assessment under")
	predictCmd.Flags().String("email", "", "Email to save the assessment under")
	_ = predictCmd.MarkFlagRequired("answers")
	predictCmd.MarkFlagsRequiredTogether("name", "email")
}

type predictOutput struct {
	ID              string             `json:"id,omitempty"`
	Label           int                `json:"label"`
	Risk            string             `json:"risk"`
	Probability     *float64           `json:"probability,omitempty"`
	ModelVersion    string             `json:"model_version"`
	Prediction      string             `json:"prediction"`
	Recommendations string             `json:"recommendations"`
	Defaulted       []string           `json:"defaulted"`
	Dropped         []string           `json:"dropped,omitempty"`
	Features        map[string]float64 `json:"features,omitempty"`
}

func runPredict(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("answers")
	asJSON, _ := cmd.Flags().GetBool("json")
	withFeatures, _ := cmd.Flags().GetBool("features")
	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")

	resp, err := readAnswers(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}

	predictor, err := loadPredictor(cmd)
	if err != nil {
		return err
	}
	defer predictor.Close()

	ctx := context.Background()
	var out predictOutput

	if name != "" {
		flow, err := assessment.NewFromResponse(name, email, resp)
		if err != nil {
			return fmt.Errorf("%s", assessment.Warning(err))
		}
		if _, err := flow.Submit(ctx, predictor); err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		if _, err := assessment.Save(ctx, st.AssessmentRepo(), st.EventRepo(), flow); err != nil {
			return err
		}
		out = toPredictOutput(flow.Outcome().Result, withFeatures)
		out.ID = flow.ID()
	} else {
		res, err := predictor.Assess(ctx, resp)
		if err != nil {
			return err
		}
		out = toPredictOutput(res, withFeatures)
	}

	w := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	printPrediction(w, out)
	return nil
}

func readAnswers(stdin io.Reader, path string) (*survey.Response, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read answers: %w", err)
	}
	return survey.ParseAnswers(data)
}

func toPredictOutput(res model.Result, withFeatures bool) predictOutput {
	adv := advice.For(res.Prediction.Label)
	out := predictOutput{
		Label:           int(res.Prediction.Label),
		Risk:            string(adv.Risk),
		ModelVersion:    res.ModelVersion,
		Prediction:      adv.Prediction,
		Recommendations: adv.Recommendations,
		Defaulted:       []string{},
		Dropped:         res.Encoding.Dropped,
	}
	for _, f := range res.Encoding.Defaulted {
		out.Defaulted = append(out.Defaulted, f.String())
	}
	if res.Prediction.HasProbability() {
		p := res.Prediction.Probability
		out.Probability = &p
	}
	if withFeatures {
		out.Features = res.Encoding.Map()
	}
	return out
}

func printPrediction(w io.Writer, out predictOutput) {
	fmt.Fprintln(w, strings.TrimSpace(out.Prediction))
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimSpace(out.Recommendations))
	fmt.Fprintln(w)
	if out.Probability != nil {
		fmt.Fprintf(w, "Probability of high risk: %.2f\n", *out.Probability)
	}
	fmt.Fprintf(w, "Model: %s\n", out.ModelVersion)
	if len(out.Defaulted) > 0 {
		fmt.Fprintf(w, "Defaulted: %s\n", strings.Join(out.Defaulted, ", "))
	}
	if len(out.Dropped) > 0 {
		fmt.Fprintf(w, "Ignored columns: %s\n", strings.Join(out.Dropped, ", "))
	}
	if out.ID != "" {
		fmt.Fprintf(w, "Saved as %s\n", out.ID)
	}
}
