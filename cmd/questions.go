package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/mindcheck/internal/survey"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the questionnaire",
	RunE: func(cmd *cobra.Command, args []string) error {
		template, _ := cmd.Flags().GetBool("template")
		w := cmd.OutOrStdout()

		if template {
			return writeTemplate(cmd)
		}

		for i, q := range survey.Questions() {
			fmt.Fprintf(w, "%2d. %s  [%s]\n", i+1, q.Text, q.Field)
			fmt.Fprintf(w, "    %s\n", strings.Join(q.Options, " | "))
		}
		return nil
	},
}

func init() {
	questionsCmd.Flags().Bool("template", false, "Print a YAML answer file with the first option of each question")
}

// writeTemplate emits an answer file that predict accepts as-is. Each key
// carries the options as a comment.
func writeTemplate(cmd *cobra.Command) error {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, q := range survey.Questions() {
		root.Content = append(root.Content,
			&yaml.Node{
				Kind:        yaml.ScalarNode,
				Value:       q.Field.String(),
				HeadComment: q.Text + "\n" + strings.Join(q.Options, " | "),
			},
			&yaml.Node{Kind: yaml.ScalarNode, Style: yaml.DoubleQuotedStyle, Value: q.Options[0]},
		)
	}
	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}); err != nil {
		return fmt.Errorf("write template: %w", err)
	}
	return enc.Close()
}
