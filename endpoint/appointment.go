package endpoint

import (
	"fmt"
	"time"

	"github.com/ariebrainware/dental-practice-api/middleware"
	"github.com/ariebrainware/dental-practice-api/model"
	"github.com/ariebrainware/dental-practice-api/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type appointmentRequest struct {
	AppointmentDateTime time.Time `json:"appointment_date_time" example:"2026-09-01T09:30:00Z"`
	Type                string    `json:"type" example:"Consult"`
	Notes               string    `json:"notes" example:"First visit"`
	Status              string    `json:"status" example:"Scheduled"`
}

// hasAppointmentConflict reports whether any other non-Cancelled appointment
// occupies exactly the same date-time, system-wide. This is an exact-match
// check, not interval overlap. excludeID skips the appointment being updated.
func hasAppointmentConflict(db *gorm.DB, at time.Time, excludeID uint) (bool, error) {
	var count int64
	query := db.Model(&model.Appointment{}).
		Where("appointment_date_time = ? AND status <> ?", at, model.AppointmentStatusCancelled)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ListPatientAppointments godoc
// @Summary      List a patient's appointments
// @Description  Get all appointments for a patient ordered by time
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=[]model.Appointment} "Appointments retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id}/appointments [get]
func ListPatientAppointments(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var appointments []model.Appointment
	err := db.Where("patient_id = ?", c.Param("id")).
		Order("appointment_date_time ASC").
		Find(&appointments).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve appointments",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: appointments,
	})
}

// ListAppointments godoc
// @Summary      List appointments across patients
// @Description  Calendar feed with an optional RFC3339 start/end range filter
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        start query string false "Range start (RFC3339)"
// @Param        end query string false "Range end (RFC3339)"
// @Success      200 {object} util.APIResponse{data=[]model.Appointment} "Appointments retrieved"
// @Failure      400 {object} util.APIResponse "Invalid range"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments [get]
func ListAppointments(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	query := db.Model(&model.Appointment{})
	if start := c.Query("start"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Invalid start time, expected RFC3339",
				Err: err,
			})
			return
		}
		query = query.Where("appointment_date_time >= ?", t)
	}
	if end := c.Query("end"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Invalid end time, expected RFC3339",
				Err: err,
			})
			return
		}
		query = query.Where("appointment_date_time <= ?", t)
	}

	var appointments []model.Appointment
	if err := query.Order("appointment_date_time ASC").Find(&appointments).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve appointments",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Appointments retrieved",
		Data: appointments,
	})
}

// CreateAppointment godoc
// @Summary      Schedule an appointment
// @Description  Create an appointment for a patient; rejects an exact date-time collision with any other non-Cancelled appointment
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        request body appointmentRequest true "Appointment information"
// @Success      201 {object} util.APIResponse{data=model.Appointment} "Appointment created"
// @Failure      400 {object} util.APIResponse "Invalid request or time conflict"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id}/appointments [post]
func CreateAppointment(c *gin.Context) {
	req := appointmentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	if req.AppointmentDateTime.IsZero() {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Appointment date-time is required",
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}
	if req.Status == "" {
		req.Status = model.AppointmentStatusScheduled
	}
	if !util.Contains(req.Status, model.ValidAppointmentStatuses) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid appointment status",
			Err: fmt.Errorf("status must be one of %v", model.ValidAppointmentStatuses),
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

	conflict, err := hasAppointmentConflict(db, req.AppointmentDateTime, 0)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to check appointment availability",
			Err: err,
		})
		return
	}
	if conflict {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Appointment time slot is already booked",
			Err: fmt.Errorf("time conflict"),
		})
		return
	}

	appointment := model.Appointment{
		PatientID:           patient.ID,
		AppointmentDateTime: req.AppointmentDateTime,
		Type:                req.Type,
		Notes:               req.Notes,
		Status:              req.Status,
	}
	if err := db.Create(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create appointment",
			Err: err,
		})
		return
	}

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Appointment created",
		Data: appointment,
	})
}

// UpdateAppointment godoc
// @Summary      Reschedule or update an appointment
// @Description  Full replace of an appointment's editable fields; the conflict check re-runs only when the time changed
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Param        request body appointmentRequest true "Updated appointment information"
// @Success      204 "Appointment updated"
// @Failure      400 {object} util.APIResponse "Invalid request or time conflict"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments/{id} [put]
func UpdateAppointment(c *gin.Context) {
	req := appointmentRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	if req.AppointmentDateTime.IsZero() {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Appointment date-time is required",
			Err: fmt.Errorf("invalid payload"),
		})
		return
	}
	if req.Status == "" {
		req.Status = model.AppointmentStatusScheduled
	}
	if !util.Contains(req.Status, model.ValidAppointmentStatuses) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid appointment status",
			Err: fmt.Errorf("status must be one of %v", model.ValidAppointmentStatuses),
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

	var appointment model.Appointment
	if err := db.First(&appointment, c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Appointment not found",
			Err: err,
		})
		return
	}

	if !appointment.AppointmentDateTime.Equal(req.AppointmentDateTime) {
		conflict, err := hasAppointmentConflict(db, req.AppointmentDateTime, appointment.ID)
		if err != nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to check appointment availability",
				Err: err,
			})
			return
		}
		if conflict {
			util.CallUserError(c, util.APIErrorParams{
				Msg: "Appointment time slot is already booked",
				Err: fmt.Errorf("time conflict"),
			})
			return
		}
	}

	appointment.AppointmentDateTime = req.AppointmentDateTime
	appointment.Type = req.Type
	appointment.Notes = req.Notes
	appointment.Status = req.Status
	if err := db.Save(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to update appointment",
			Err: err,
		})
		return
	}

	util.CallSuccessNoContent(c)
}

// DeleteAppointment godoc
// @Summary      Delete an appointment
// @Tags         Appointment
// @Accept       json
// @Produce      json
// @Param        id path int true "Appointment ID"
// @Success      204 "Appointment deleted"
// @Failure      404 {object} util.APIResponse "Appointment not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointments/{id} [delete]
func DeleteAppointment(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var appointment model.Appointment
	if err := db.First(&appointment, c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Appointment not found",
			Err: err,
		})
		return
	}

	if err := db.Delete(&appointment).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to delete appointment",
			Err: err,
		})
		return
	}

	util.CallSuccessNoContent(c)
}
