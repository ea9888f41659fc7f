package survey

import (
	"fmt"
	"strings"
)

// Question is a single questionnaire item.
type Question struct {
	Field   Field
	Text    string
	Options []string
}

// HasOption reports whether answer is one of the question's options.
func (q Question) HasOption(answer string) bool {
	for _, o := range q.Options {
		if o == answer {
			return true
		}
	}
	return false
}

// OptionIndex returns the position of answer in Options, or -1.
func (q Question) OptionIndex(answer string) int {
	for i, o := range q.Options {
		if o == answer {
			return i
		}
	}
	return -1
}

var questions = []Question{
	{FieldGender, "What is your gender?", []string{"Male", "Female"}},
	{FieldSelfEmployed, "Are you self-employed?", []string{OptNo, OptYes}},
	{FieldFamilyHistory, "Do you have a family history of mental illness?", []string{OptNo, OptYes}},
	{FieldWorkInterfere, "How often does work interfere with your mental health?", []string{"Never", "Rarely", "Sometimes", "Often"}},
	{FieldNoEmployees, "Company Size (in terms of employee count) ?", []string{"1-5", "6-25", "26-100", "100-500", "500-1000", "More than 1000"}},
	{FieldRemoteWork, "Do you work remotely?", []string{OptNo, OptYes}},
	{FieldTechCompany, "Do you work in a Tech company?", []string{OptNo, OptYes}},
	{FieldBenefits, "Does your employer provide mental health benefits ?", []string{OptYes, OptNo, OptDontKnow}},
	{FieldCareOptions, "Does your employer provide mental health care assistance?", []string{OptYes, OptNo, OptNotSure}},
	{FieldWellnessProgram, "Does your company conduct wellness programs ?", []string{OptYes, OptNo, OptDontKnow}},
	{FieldSeekHelp, "Does your company offer external resources to seek help?", []string{OptYes, OptNo, OptDontKnow}},
	{FieldAnonymity, "If Yes, is anonymity protected when seeking mental health care?", []string{OptYes, OptNo, OptDontKnow}},
	{FieldLeave, "How easy is it to take work leave for mental health?", []string{"Very easy", "Somewhat easy", OptDontKnow, "Somewhat difficult", "Very difficult"}},
	{FieldMentalHealthConsequence, "Do you think discussing mental health could have negative consequences?", []string{OptNo, OptMaybe, OptYes}},
	{FieldPhysHealthConsequence, "Do you think discussing physical health could have negative consequences?", []string{OptNo, OptMaybe, OptYes}},
	{FieldCoworkers, "Would you discuss your mental health with coworkers?", []string{OptYes, OptNo, OptSomeOfThem}},
	{FieldSupervisor, "Would you discuss your mental health with a supervisor at work?", []string{OptYes, OptNo, OptSomeOfThem}},
	{FieldMentalHealthInterview, "Would you bring up mental health in an interview?", []string{OptNo, OptMaybe, OptYes}},
	{FieldPhysHealthInterview, "Would you bring up physical health in an interview?", []string{OptNo, OptMaybe, OptYes}},
	{FieldMentalVsPhysical, "According to you, is mental health as important as physical health?", []string{OptYes, OptNo, OptDontKnow}},
	{FieldObsConsequence, "Have you observed negative consequences for mental health issues?", []string{OptNo, OptYes}},
}

var (
	byField map[Field]int
	byText  map[string]int
)

func init() {
	if err := validateCatalog(questions); err != nil {
		panic(fmt.Sprintf("survey: invalid catalog: %v", err))
	}
	byField = make(map[Field]int, len(questions))
	byText = make(map[string]int, len(questions))
	for i, q := range questions {
		byField[q.Field] = i
		byText[q.Text] = i
	}
}

// Questions returns the questionnaire in presentation order.
// The returned slice is a copy.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// Count returns the number of questions.
func Count() int {
	return len(questions)
}

// At returns the question at position i in presentation order.
func At(i int) (Question, bool) {
	if i < 0 || i >= len(questions) {
		return Question{}, false
	}
	return questions[i], true
}

// Fields returns every field in presentation order.
func Fields() []Field {
	out := make([]Field, len(questions))
	for i, q := range questions {
		out[i] = q.Field
	}
	return out
}

// Get returns the question for a field.
func Get(f Field) (Question, bool) {
	i, ok := byField[f]
	if !ok {
		return Question{}, false
	}
	return questions[i], true
}

// Lookup resolves a response key to a field. The key may be a field
// identifier ("self_employed") or the full question text
// ("Are you self-employed?"). Surrounding whitespace is ignored.
func Lookup(key string) (Field, bool) {
	key = strings.TrimSpace(key)
	if i, ok := byField[Field(key)]; ok {
		return questions[i].Field, true
	}
	if i, ok := byText[key]; ok {
		return questions[i].Field, true
	}
	return "", false
}
