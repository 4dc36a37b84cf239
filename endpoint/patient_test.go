package endpoint

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/ariebrainware/dental-practice-api/model"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func createTestPatient(db *gorm.DB, t *testing.T, firstName, lastName string) model.Patient {
	t.Helper()
	patient := model.Patient{
		FirstName: firstName,
		LastName:  lastName,
		Email:     fmt.Sprintf("%s.%s@test.com", firstName, lastName),
	}
	err := db.Create(&patient).Error
	assert.NoError(t, err)
	return patient
}

func registerPatientRoutes(r *gin.Engine) {
	r.GET("/patients", ListPatients)
	r.POST("/patients", CreatePatient)
	r.GET("/patients/:id", GetPatientInfo)
	r.PUT("/patients/:id", UpdatePatient)
	r.DELETE("/patients/:id", DeletePatient)
}

func TestCreatePatient_Success(t *testing.T) {
	r, _ := setupEndpointTest(t)
	registerPatientRoutes(r)

	w := performJSON(t, r, http.MethodPost, "/patients", map[string]interface{}{
		"first_name":      "John",
		"last_name":       "Smith",
		"chief_complaint": "Sharp pain on cold stimuli",
		"tooth_notation":  "26",
	})

	assertStatus(t, w, http.StatusCreated)
	data := responseData(t, w)
	assert.Equal(t, "John", data["first_name"])
	assert.Equal(t, "26", data["tooth_notation"])
	assert.NotZero(t, data["ID"])
}

func TestCreatePatient_MissingName(t *testing.T) {
	r, _ := setupEndpointTest(t)
	registerPatientRoutes(r)

	w := performJSON(t, r, http.MethodPost, "/patients", map[string]interface{}{
		"first_name": "John",
	})

	assertStatus(t, w, http.StatusBadRequest)
}

func TestListPatients_OrderedByName(t *testing.T) {
	r, db := setupEndpointTest(t)
	registerPatientRoutes(r)

	createTestPatient(db, t, "Zara", "Young")
	createTestPatient(db, t, "Bob", "Adams")
	createTestPatient(db, t, "Alice", "Adams")

	w := performJSON(t, r, http.MethodGet, "/patients", nil)
	assertSuccessResponse(t, w)

	response := parseResponse(t, w)
	patients, ok := response["data"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, patients, 3)

	first := patients[0].(map[string]interface{})
	second := patients[1].(map[string]interface{})
	assert.Equal(t, "Alice", first["first_name"])
	assert.Equal(t, "Bob", second["first_name"])
}

func TestGetPatientInfo_IncludesChildren(t *testing.T) {
	r, db := setupEndpointTest(t)
	registerPatientRoutes(r)

	patient := createTestPatient(db, t, "John", "Smith")
	db.Create(&model.Note{PatientID: patient.ID, Content: "first note"})
	db.Create(&model.Appointment{
		PatientID:           patient.ID,
		AppointmentDateTime: time.Date(2026, 9, 1, 9, 30, 0, 0, time.UTC),
		Status:              model.AppointmentStatusScheduled,
	})

	w := performJSON(t, r, http.MethodGet, fmt.Sprintf("/patients/%d", patient.ID), nil)
	assertSuccessResponse(t, w)

	data := responseData(t, w)
	notes, ok := data["notes"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, notes, 1)
	appointments, ok := data["appointments"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, appointments, 1)
}

func TestGetPatientInfo_NotFound(t *testing.T) {
	r, _ := setupEndpointTest(t)
	registerPatientRoutes(r)

	w := performJSON(t, r, http.MethodGet, "/patients/9999", nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestUpdatePatient_FullReplace(t *testing.T) {
	r, db := setupEndpointTest(t)
	registerPatientRoutes(r)

	patient := createTestPatient(db, t, "John", "Smith")
	patient.ChiefComplaint = "Sharp pain"
	db.Save(&patient)

	// A full replace clears fields omitted from the payload.
	w := performJSON(t, r, http.MethodPut, fmt.Sprintf("/patients/%d", patient.ID), map[string]interface{}{
		"first_name": "Johnny",
		"last_name":  "Smith",
	})
	assertStatus(t, w, http.StatusNoContent)

	var updated model.Patient
	assert.NoError(t, db.First(&updated, patient.ID).Error)
	assert.Equal(t, "Johnny", updated.FirstName)
	assert.Equal(t, "", updated.ChiefComplaint)
}

func TestUpdatePatient_NotFound(t *testing.T) {
	r, _ := setupEndpointTest(t)
	registerPatientRoutes(r)

	w := performJSON(t, r, http.MethodPut, "/patients/9999", map[string]interface{}{
		"first_name": "Johnny",
		"last_name":  "Smith",
	})
	assertStatus(t, w, http.StatusNotFound)
}

func TestDeletePatient_CascadesChildren(t *testing.T) {
	r, db := setupEndpointTest(t)
	registerPatientRoutes(r)

	patient := createTestPatient(db, t, "John", "Smith")
	db.Create(&model.Note{PatientID: patient.ID, Content: "note"})
	db.Create(&model.Referral{PatientID: patient.ID, ReferrerName: "Dr. Roe", AccessToken: "tok-cascade", AccessTokenExpiry: time.Now().AddDate(0, 6, 0)})
	db.Create(&model.Appointment{PatientID: patient.ID, AppointmentDateTime: time.Now().Add(time.Hour), Status: model.AppointmentStatusScheduled})

	other := createTestPatient(db, t, "Jane", "Doe")
	db.Create(&model.Note{PatientID: other.ID, Content: "keep me"})

	w := performJSON(t, r, http.MethodDelete, fmt.Sprintf("/patients/%d", patient.ID), nil)
	assertStatus(t, w, http.StatusNoContent)

	var patientCount, noteCount, referralCount, appointmentCount int64
	db.Model(&model.Patient{}).Where("id = ?", patient.ID).Count(&patientCount)
	db.Model(&model.Note{}).Where("patient_id = ?", patient.ID).Count(&noteCount)
	db.Model(&model.Referral{}).Where("patient_id = ?", patient.ID).Count(&referralCount)
	db.Model(&model.Appointment{}).Where("patient_id = ?", patient.ID).Count(&appointmentCount)
	assert.Zero(t, patientCount)
	assert.Zero(t, noteCount)
	assert.Zero(t, referralCount)
	assert.Zero(t, appointmentCount)

	// The other patient's children are untouched.
	var otherNotes int64
	db.Model(&model.Note{}).Where("patient_id = ?", other.ID).Count(&otherNotes)
	assert.EqualValues(t, 1, otherNotes)
}

func TestDeletePatient_NotFound(t *testing.T) {
	r, _ := setupEndpointTest(t)
	registerPatientRoutes(r)

	w := performJSON(t, r, http.MethodDelete, "/patients/9999", nil)
	assertStatus(t, w, http.StatusNotFound)
}

func TestCreatePatient_ResponseIsValidJSON(t *testing.T) {
	r, _ := setupEndpointTest(t)
	registerPatientRoutes(r)

	w := performJSON(t, r, http.MethodPost, "/patients", map[string]interface{}{
		"first_name": "John",
		"last_name":  "Smith",
	})
	assertStatus(t, w, http.StatusCreated)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response["success"].(bool))
}
