package reflection

import (
	"fmt"
	"strings"

	"github.com/abhisek/mindcheck/internal/advice"
	"github.com/abhisek/mindcheck/internal/survey"
)

const systemPrompt = `You write short, warm notes for people who just completed a workplace mental health questionnaire. You are not a clinician. Never diagnose, never name disorders, never give medical instructions. Encourage professional support where the answers suggest strain.`

func buildUserMessage(in Input) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Screening result: %s risk\n", in.Risk)

	b.WriteString("\nAnswers:\n")
	entries := in.Answers.Entries()
	if len(entries) == 0 {
		b.WriteString("None\n")
	}
	for _, e := range entries {
		if e.Field == "" {
			continue
		}
		q, ok := survey.Get(e.Field)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s %s\n", q.Text, e.Answer)
	}

	b.WriteString(`
Instructions:
Write 2-4 sentences addressed to the user in the second person.
1. Acknowledge one or two specific answers above without repeating them verbatim.
2. Match the tone to the screening result: reassuring for low risk, gently encouraging support for high risk.
3. Do not mention the questionnaire, scores, models or predictions.
4. Use plain text with no markdown.`)

	if in.Risk == advice.RiskHigh {
		b.WriteString("\n5. Mention that talking to a professional or someone they trust can help.")
	}

	return b.String()
}
