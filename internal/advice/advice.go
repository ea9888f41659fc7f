// Package advice holds the fixed prediction and recommendation texts shown
// for each risk label.
package advice

import (
	"strings"

	"github.com/abhisek/mindcheck/internal/model"
)

// Risk is the user-facing name of a label.
type Risk string

const (
	RiskHigh Risk = "high"
	RiskLow  Risk = "low"
)

// Advice is the text shown for one label.
type Advice struct {
	Risk            Risk
	Headline        string
	Prediction      string
	Recommendations string
}

var high = Advice{
	Risk:     RiskHigh,
	Headline: "High Risk: Prioritize Your Mental Well being",
	Prediction: "High Risk: Prioritize Your Mental Well being\n\n" +
		"Prediction:\n" +
		"Your responses indicate that you may be facing mental health challenges. This isn't something you have to go through alone support is available, and taking action now can help you feel better.\n\n",
	Recommendations: "Recommendation:\n" +
		"What Steps to Take Next\n" +
		"Seek Professional Guidance : Connecting with a therapist or counselor can provide clarity and coping strategies tailored to your needs. Even an initial consultation can be a great start!\n" +
		"Talk to Someone You Trust : Sharing your feelings with a close friend, family member, or support group can ease the burden. Opening up is a sign of strength.\n" +
		"Learn About Mental Health : Educate yourself on what you're experiencing. Understanding mental health can help reduce fear and uncertainty.\n\n" +
		" Daily Self Care & Coping Strategies\n" +
		"Practice Stress Relief : Deep breathing, journaling, or even listening to calming music can help reduce tension.\n" +
		"Stay Physically Active : Movement, whether it's a simple walk or stretching, releases endorphins that improve mood.\n" +
		"Set Small, Achievable Goals : Feeling overwhelmed? Start with small, manageable steps to regain a sense of control.\n\n" +
		"Remember, taking action today is the first step toward feeling better. Support is available, and you deserve it!",
}

var low = Advice{
	Risk:     RiskLow,
	Headline: "Low Risk: Keep Strengthening Your Mental Health",
	Prediction: "Low Risk: Keep Strengthening Your Mental Health\n\n" +
		"Prediction:\n" +
		"Your responses suggest that you're currently in a stable mental state great job! But mental wellness is an ongoing journey, and maintaining good habits will keep you feeling your best.\n\n",
	Recommendations: "Recommendation:\n" +
		"How to Maintain a Healthy Mind\n" +
		"Practice Mindfulness Daily : Take a few minutes to slow down, breathe deeply, and be present. Apps like Calm or Headspace can guide you.\n" +
		"Stay Socially Connected : Regular chats with loved ones can provide emotional support and boost your happiness.\n" +
		"Keep a Balanced Routine : Having a structured day with time for work, rest, and hobbies helps maintain mental clarity.\n\n" +
		"Simple Habits for Long Term Well being\n" +
		"Move Your Body : Whether it's yoga, jogging, or dancing, movement keeps your mind and body in sync.\n" +
		"Fuel Your Mind with Rest & Nutrition : Aim for 7 to 9 hours of sleep and eat foods rich in nutrients to keep your brain sharp.\n" +
		"Take Breaks & Avoid Burnout : Make time for activities you love, whether it's reading, painting, or simply relaxing.\n\n" +
		"Even when things feel fine, taking care of your mental well being ensures you stay resilient. Keep prioritizing yourself!",
}

// For returns the advice for a label.
func For(l model.Label) Advice {
	if l == model.LabelHighRisk {
		return high
	}
	return low
}

// ForRisk returns the advice for a risk name, defaulting to low.
func ForRisk(r Risk) Advice {
	if r == RiskHigh {
		return high
	}
	return low
}

// RiskOf maps a label to its risk name.
func RiskOf(l model.Label) Risk {
	return For(l).Risk
}

// Lines splits a text block into trimmed, non-empty lines.
func Lines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Spoken returns the text read aloud for a label. Only the prediction is
// spoken.
func (a Advice) Spoken() string {
	return strings.Join(Lines(a.Prediction), "\n")
}
