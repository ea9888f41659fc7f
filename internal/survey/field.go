package survey

// Field identifies a questionnaire item. The string value is the column
// name the upstream model was trained with.
type Field string

const (
	FieldGender                  Field = "Gender"
	FieldSelfEmployed            Field = "self_employed"
	FieldFamilyHistory           Field = "family_history"
	FieldWorkInterfere           Field = "work_interfere"
	FieldNoEmployees             Field = "no_employees"
	FieldRemoteWork              Field = "remote_work"
	FieldTechCompany             Field = "tech_company"
	FieldBenefits                Field = "benefits"
	FieldCareOptions             Field = "care_options"
	FieldWellnessProgram         Field = "wellness_program"
	FieldSeekHelp                Field = "seek_help"
	FieldAnonymity               Field = "anonymity"
	FieldLeave                   Field = "leave"
	FieldMentalHealthConsequence Field = "mental_health_consequence"
	FieldPhysHealthConsequence   Field = "phys_health_consequence"
	FieldCoworkers               Field = "coworkers"
	FieldSupervisor              Field = "supervisor"
	FieldMentalHealthInterview   Field = "mental_health_interview"
	FieldPhysHealthInterview     Field = "phys_health_interview"
	FieldMentalVsPhysical        Field = "mental_vs_physical"
	FieldObsConsequence          Field = "obs_consequence"
)

// String returns the field identifier.
func (f Field) String() string {
	return string(f)
}

// Common answer options shared by several questions.
const (
	OptYes        = "Yes"
	OptNo         = "No"
	OptMaybe      = "Maybe"
	OptDontKnow   = "Don't know"
	OptNotSure    = "Not sure"
	OptSomeOfThem = "Some of them"
)
