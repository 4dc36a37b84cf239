package endpoint

import (
	"fmt"

	"github.com/ariebrainware/dental-practice-api/middleware"
	"github.com/ariebrainware/dental-practice-api/model"
	"github.com/ariebrainware/dental-practice-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type patientRequest struct {
	FirstName      string `json:"first_name" example:"John"`
	LastName       string `json:"last_name" example:"Smith"`
	DateOfBirth    string `json:"date_of_birth" example:"1985-04-12"`
	Email          string `json:"email" example:"john@example.com"`
	Phone          string `json:"phone" example:"081234567890"`
	Address        string `json:"address" example:"123 Main St"`
	City           string `json:"city" example:"Springfield"`
	State          string `json:"state" example:"IL"`
	ZipCode        string `json:"zip_code" example:"62704"`
	ChiefComplaint string `json:"chief_complaint" example:"Sharp pain on cold stimuli"`
	Symptoms       string `json:"symptoms" example:"Pain localized to UL6"`
	ToothNotation  string `json:"tooth_notation" example:"26"`
}

// applyTo copies every editable field onto the patient (full replace, not
// merge).
func (r patientRequest) applyTo(patient *model.Patient) {
	patient.FirstName = r.FirstName
	patient.LastName = r.LastName
	patient.DateOfBirth = r.DateOfBirth
	patient.Email = r.Email
	patient.Phone = r.Phone
	patient.Address = r.Address
	patient.City = r.City
	patient.State = r.State
	patient.ZipCode = r.ZipCode
	patient.ChiefComplaint = r.ChiefComplaint
	patient.Symptoms = r.Symptoms
	patient.ToothNotation = r.ToothNotation
}

// ListPatients godoc
// @Summary      List all patients
// @Description  Get all patients ordered by last name, then first name
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Success      200 {object} util.APIResponse{data=[]model.Patient} "Patients retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [get]
func ListPatients(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var patients []model.Patient
	if err := db.Order("last_name ASC, first_name ASC").Find(&patients).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve patients",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patients retrieved",
		Data: patients,
	})
}

// GetPatientInfo godoc
// @Summary      Get patient information
// @Description  Get a patient including referrals, notes, and appointments
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=model.Patient} "Patient retrieved"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [get]
func GetPatientInfo(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var patient model.Patient
	err := db.Preload("Referrals").Preload("Notes").Preload("Appointments").
		First(&patient, c.Param("id")).Error
	if err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Patient not found",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Patient retrieved",
		Data: patient,
	})
}

// CreatePatient godoc
// @Summary      Create a new patient
// @Description  Register a new patient; first and last name are required
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        request body patientRequest true "Patient information"
// @Success      201 {object} util.APIResponse{data=model.Patient} "Patient created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients [post]
func CreatePatient(c *gin.Context) {
	req := patientRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "First name and last name are required",
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

	patient := model.Patient{}
	req.applyTo(&patient)
	if err := db.Create(&patient).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create patient",
			Err: err,
		})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Patient created",
		Data: patient,
	})
}

// UpdatePatient godoc
// @Summary      Update patient information
// @Description  Full replace of a patient's editable fields
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        request body patientRequest true "Updated patient information"
// @Success      204 "Patient updated"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [put]
func UpdatePatient(c *gin.Context) {
	req := patientRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "First name and last name are required",
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

	req.applyTo(&patient)
	if err := db.Save(&patient).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update patient",
			Err: err,
		})
		return
	}

	util.CallSuccessNoContent(c)
}

// DeletePatient godoc
// @Summary      Delete a patient
// @Description  Delete a patient and cascade-delete its referrals, notes, and appointments
// @Tags         Patient
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      204 "Patient deleted"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id} [delete]
func DeletePatient(c *gin.Context) {
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

	// The patient exclusively owns its children, so deletion removes them in
	// the same transaction.
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&model.Referral{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		if err := tx.Where("patient_id = ?", patient.ID).Delete(&model.Appointment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&patient).Error
	})
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete patient",
			Err: err,
		})
		return
	}

	util.CallSuccessNoContent(c)
}
