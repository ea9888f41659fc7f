package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/mindcheck/internal/assessment"
	"github.com/abhisek/mindcheck/internal/model"
	"github.com/abhisek/mindcheck/internal/report"
	"github.com/abhisek/mindcheck/internal/store"
	"github.com/abhisek/mindcheck/internal/survey"
)

type questionJSON struct {
	Key     string   `json:"key"`
	Text    string   `json:"text"`
	Options []string `json:"options"`
}

type createRequest struct {
	Name    string            `json:"name" binding:"required"`
	Email   string            `json:"email" binding:"required"`
	Answers map[string]string `json:"answers"`
}

type assessmentJSON struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Label           int       `json:"label"`
	Risk            string    `json:"risk"`
	Probability     *float64  `json:"probability,omitempty"`
	ModelVersion    string    `json:"model_version"`
	Prediction      string    `json:"prediction"`
	Recommendations string    `json:"recommendations"`
	Defaulted       []string  `json:"defaulted"`
	Reflection      string    `json:"reflection,omitempty"`
}

func toJSON(a *store.Assessment) assessmentJSON {
	adv := assessment.AdviceFor(a)
	out := assessmentJSON{
		ID:              a.ID,
		CreatedAt:       a.CreatedAt,
		Name:            a.Name,
		Email:           a.Email,
		Label:           a.Label,
		Risk:            string(adv.Risk),
		ModelVersion:    a.ModelVersion,
		Prediction:      adv.Prediction,
		Recommendations: adv.Recommendations,
		Defaulted:       a.Defaulted,
		Reflection:      a.Reflection,
	}
	if out.Defaulted == nil {
		out.Defaulted = []string{}
	}
	if (model.Prediction{Probability: a.Probability}).HasProbability() {
		p := a.Probability
		out.Probability = &p
	}
	return out
}

func (s *Server) listQuestions(c *gin.Context) {
	qs := survey.Questions()
	out := make([]questionJSON, len(qs))
	for i, q := range qs {
		out[i] = questionJSON{Key: q.Field.String(), Text: q.Text, Options: q.Options}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createAssessment(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, assessment.IntakeWarning)
		return
	}

	f, err := assessment.NewFromResponse(req.Name, req.Email, survey.FromMap(req.Answers))
	if err != nil {
		errorJSON(c, http.StatusBadRequest, assessment.Warning(err))
		return
	}

	ctx := c.Request.Context()
	if _, err := f.Submit(ctx, s.assessor); err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred: %v", err))
		return
	}
	rec, err := assessment.Save(ctx, s.assessments, s.events, f)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "failed to store assessment")
		return
	}
	c.JSON(http.StatusCreated, toJSON(rec))
}

func (s *Server) listAssessments(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 200 {
		errorJSON(c, http.StatusBadRequest, "limit must be between 1 and 200")
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		errorJSON(c, http.StatusBadRequest, "offset must not be negative")
		return
	}

	list, err := s.assessments.List(c.Request.Context(), store.ListOpts{
		Limit:  limit,
		Offset: offset,
		Email:  c.Query("email"),
	})
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "failed to list assessments")
		return
	}
	out := make([]assessmentJSON, len(list))
	for i, a := range list {
		out[i] = toJSON(a)
	}
	c.JSON(http.StatusOK, out)
}

// lookup fetches the assessment named by the :id parameter, writing the
// error response itself when it fails.
func (s *Server) lookup(c *gin.Context) (*store.Assessment, bool) {
	a, err := s.assessments.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		errorJSON(c, http.StatusNotFound, fmt.Sprintf("assessment %s not found", c.Param("id")))
		return nil, false
	}
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "failed to load assessment")
		return nil, false
	}
	return a, true
}

func (s *Server) getAssessment(c *gin.Context) {
	a, ok := s.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toJSON(a))
}

func (s *Server) getReport(c *gin.Context) {
	a, ok := s.lookup(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	err := report.Render(&buf, report.FromAssessment(a))
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred: %v", err))
		return
	}
	if s.events != nil {
		_ = s.events.AppendEvent(c.Request.Context(), store.EventData{
			Kind:         store.EventReportExported,
			AssessmentID: a.ID,
			Detail:       "http",
		})
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(a.Name)))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
