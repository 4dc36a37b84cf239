package endpoint

import (
	"fmt"

	"github.com/ariebrainware/dental-practice-api/middleware"
	"github.com/ariebrainware/dental-practice-api/model"
	"github.com/ariebrainware/dental-practice-api/util"
	"github.com/gin-gonic/gin"
)

type createNoteRequest struct {
	Content string `json:"content" example:"Pt c/o sharp pain UL6 on cold stimuli x3 days."`
}

type updateNoteRequest struct {
	Content string `json:"content"`
	Summary string `json:"summary"`
	Letter  string `json:"letter"`
}

// ListPatientNotes godoc
// @Summary      List a patient's notes
// @Description  Get all clinical notes for a patient, newest first
// @Tags         Note
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=[]model.Note} "Notes retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id}/notes [get]
func ListPatientNotes(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var notes []model.Note
	err := db.Where("patient_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&notes).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve notes",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Notes retrieved",
		Data: notes,
	})
}

// CreateNote godoc
// @Summary      Create a clinical note
// @Tags         Note
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        request body createNoteRequest true "Note content"
// @Success      201 {object} util.APIResponse{data=model.Note} "Note created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id}/notes [post]
func CreateNote(c *gin.Context) {
	req := createNoteRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	if req.Content == "" {
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

	var patient model.Patient
	if err := db.First(&patient, c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Patient not found",
			Err: err,
		})
		return
	}

	note := model.Note{
		PatientID: patient.ID,
		Content:   req.Content,
	}
	if err := db.Create(&note).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create note",
			Err: err,
		})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Note created",
		Data: note,
	})
}

// GetNote godoc
// @Summary      Get a clinical note
// @Tags         Note
// @Accept       json
// @Produce      json
// @Param        id path int true "Note ID"
// @Success      200 {object} util.APIResponse{data=model.Note} "Note retrieved"
// @Failure      404 {object} util.APIResponse "Note not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /notes/{id} [get]
func GetNote(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var note model.Note
	if err := db.First(&note, c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Note not found",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Note retrieved",
		Data: note,
	})
}

// UpdateNote godoc
// @Summary      Update a clinical note
// @Description  Replace content, summary, and letter. Summary and letter are derived fields and may be set or cleared independently of content.
// @Tags         Note
// @Accept       json
// @Produce      json
// @Param        id path int true "Note ID"
// @Param        request body updateNoteRequest true "Updated note"
// @Success      204 "Note updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Note not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /notes/{id} [put]
func UpdateNote(c *gin.Context) {
	req := updateNoteRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
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

	var note model.Note
	if err := db.First(&note, c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Note not found",
			Err: err,
		})
		return
	}

	note.Content = req.Content
	note.Summary = req.Summary
	note.Letter = req.Letter
	if err := db.Save(&note).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update note",
			Err: err,
		})
		return
	}

	util.CallSuccessNoContent(c)
}

// DeleteNote godoc
// @Summary      Delete a clinical note
// @Tags         Note
// @Accept       json
// @Produce      json
// @Param        id path int true "Note ID"
// @Success      204 "Note deleted"
// @Failure      404 {object} util.APIResponse "Note not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /notes/{id} [delete]
func DeleteNote(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var note model.Note
	if err := db.First(&note, c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Note not found",
			Err: err,
		})
		return
	}

	if err := db.Delete(&note).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete note",
			Err: err,
		})
		return
	}

	util.CallSuccessNoContent(c)
}
