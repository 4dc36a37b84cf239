package endpoint

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ariebrainware/dental-practice-api/ai"
	"github.com/ariebrainware/dental-practice-api/middleware"
	"github.com/ariebrainware/dental-practice-api/model"
	"github.com/ariebrainware/dental-practice-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// minSummarizableLength is the minimum trimmed note length, in characters,
// that reaches the model. Shorter notes get a deterministic advisory instead,
// so the model is never asked to fabricate clinical content from insufficient
// input.
const minSummarizableLength = 50

type summarizeRequest struct {
	NoteContent string `json:"note_content" example:"Pt c/o sharp pain UL6 on cold stimuli x3 days."`
	NoteID      uint   `json:"note_id,omitempty" example:"1"`
}

type letterRequest struct {
	SoapSummary     string `json:"soap_summary"`
	ReferrerName    string `json:"referrer_name" example:"Dr. Jane Roe"`
	ReferrerAddress string `json:"referrer_address,omitempty"`
	NoteID          uint   `json:"note_id,omitempty" example:"1"`
	PatientName     string `json:"patient_name,omitempty" example:"John Smith"`
}

// saveNoteSummary writes generated text onto the note's summary field. Best
// effort: a missing note is not an error, the generated text is still
// returned to the caller.
func saveNoteSummary(db *gorm.DB, noteID uint, summary string) {
	if noteID == 0 {
		return
	}
	var note model.Note
	if err := db.First(&note, noteID).Error; err != nil {
		return
	}
	note.Summary = summary
	db.Save(&note)
}

// saveNoteLetter is the letter-side counterpart of saveNoteSummary.
func saveNoteLetter(db *gorm.DB, noteID uint, letter string) {
	if noteID == 0 {
		return
	}
	var note model.Note
	if err := db.First(&note, noteID).Error; err != nil {
		return
	}
	note.Letter = letter
	db.Save(&note)
}

// SummarizeNote godoc
// @Summary      Summarize clinical notes into SOAP format
// @Description  Generate a SOAP summary from raw note text. Trimmed input under 50 characters yields an advisory message without calling the model. When note_id refers to an existing note the result is persisted onto it.
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        request body summarizeRequest true "Note content and optional note id"
// @Success      200 {object} util.APIResponse "Summary generated"
// @Failure      400 {object} util.APIResponse "Missing content, provider not configured, or generation failed"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /ai/summarize [post]
func SummarizeNote(c *gin.Context) {
	req := summarizeRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	trimmed := strings.TrimSpace(req.NoteContent)
	if trimmed == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Note content is required",
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	if utf8.RuneCountInString(trimmed) < minSummarizableLength {
		advisory := fmt.Sprintf("Insufficient detail to produce a SOAP summary. Original note: '%s'", trimmed)
		saveNoteSummary(db, req.NoteID, advisory)
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Summary generated",
			Data: map[string]interface{}{"summary": advisory},
		})
		return
	}

	gen := middleware.GetGenerator(c)
	if gen == nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Text generation is not configured",
			Err: ai.ErrNotConfigured,
		})
		return
	}

	summary, err := gen.Summarize(c.Request.Context(), req.NoteContent)
	if err != nil {
		util.LogGenerationFailure("summarize", c.ClientIP(), err)
		var genErr *ai.GenerationError
		if errors.As(err, &genErr) {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Failed to summarize clinical notes",
				Err: genErr,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "An error occurred while summarizing the notes",
			Err: fmt.Errorf("summarization failed"),
		})
		return
	}

	saveNoteSummary(db, req.NoteID, summary)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Summary generated",
		Data: map[string]interface{}{"summary": summary},
	})
}

// DraftReferralLetter godoc
// @Summary      Draft a referrer letter from a SOAP summary
// @Description  Generate a referral letter. When patient_name is absent and note_id is given, the name is derived from the note's patient. When note_id refers to an existing note the result is persisted onto it.
// @Tags         AI
// @Accept       json
// @Produce      json
// @Param        request body letterRequest true "SOAP summary and referrer details"
// @Success      200 {object} util.APIResponse "Letter generated"
// @Failure      400 {object} util.APIResponse "Missing fields, provider not configured, or generation failed"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /ai/letter [post]
func DraftReferralLetter(c *gin.Context) {
	req := letterRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	if strings.TrimSpace(req.SoapSummary) == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "SOAP summary is required",
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}
	if strings.TrimSpace(req.ReferrerName) == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Referrer name is required",
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}

	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	// Fall back to the note's patient when no name was supplied.
	patientName := strings.TrimSpace(req.PatientName)
	if patientName == "" && req.NoteID != 0 {
		var note model.Note
		if err := db.First(&note, req.NoteID).Error; err == nil {
			var patient model.Patient
			if err := db.First(&patient, note.PatientID).Error; err == nil {
				patientName = strings.TrimSpace(patient.FullName())
			}
		}
	}

	gen := middleware.GetGenerator(c)
	if gen == nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Text generation is not configured",
			Err: ai.ErrNotConfigured,
		})
		return
	}

	letter, err := gen.DraftLetter(c.Request.Context(), req.SoapSummary, req.ReferrerName, req.ReferrerAddress, patientName)
	if err != nil {
		util.LogGenerationFailure("letter", c.ClientIP(), err)
		var genErr *ai.GenerationError
		if errors.As(err, &genErr) {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Failed to generate referrer letter",
				Err: genErr,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "An error occurred while generating the letter",
			Err: fmt.Errorf("letter generation failed"),
		})
		return
	}

	saveNoteLetter(db, req.NoteID, letter)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Letter generated",
		Data: map[string]interface{}{"letter": letter},
	})
}
