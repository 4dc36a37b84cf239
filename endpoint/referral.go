package endpoint

import (
	"fmt"
	"time"

	"github.com/ariebrainware/dental-practice-api/middleware"
	"github.com/ariebrainware/dental-practice-api/model"
	"github.com/ariebrainware/dental-practice-api/util"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// accessTokenValidityMonths is how long a referral portal token stays usable.
const accessTokenValidityMonths = 6

type referralRequest struct {
	ReferrerName         string `json:"referrer_name" example:"Dr. Jane Roe"`
	ReferrerEmail        string `json:"referrer_email" example:"jane@endodontics.example"`
	ReferrerPhone        string `json:"referrer_phone" example:"081234567891"`
	ReferrerPracticeName string `json:"referrer_practice_name" example:"Springfield Endodontics"`
	Reason               string `json:"reason" example:"RCT referral UL6"`
}

// referralPortalView is the read-only payload behind an access token: the
// referral, the owning patient, and the patient's five most recent notes.
type referralPortalView struct {
	Referral model.Referral `json:"referral"`
	Patient  model.Patient  `json:"patient"`
	Notes    []model.Note   `json:"notes"`
}

// ListReferrals godoc
// @Summary      List a patient's referrals
// @Description  Get all referrals for a patient, most recently referred first
// @Tags         Referral
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Success      200 {object} util.APIResponse{data=[]model.Referral} "Referrals retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id}/referrals [get]
func ListReferrals(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	var referrals []model.Referral
	err := db.Where("patient_id = ?", c.Param("id")).
		Order("referred_date DESC").
		Find(&referrals).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve referrals",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Referrals retrieved",
		Data: referrals,
	})
}

// CreateReferral godoc
// @Summary      Issue a referral
// @Description  Create a referral for a patient; the server assigns the referred date, an opaque access token, and a 6-month token expiry
// @Tags         Referral
// @Accept       json
// @Produce      json
// @Param        id path int true "Patient ID"
// @Param        request body referralRequest true "Referrer information"
// @Success      201 {object} util.APIResponse{data=model.Referral} "Referral created"
// @Failure      400 {object} util.APIResponse "Invalid request"
// @Failure      404 {object} util.APIResponse "Patient not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /patients/{id}/referrals [post]
func CreateReferral(c *gin.Context) {
	req := referralRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid request body",
			Err: err,
		})
		return
	}
	if req.ReferrerName == "" {
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

	var patient model.Patient
	if err := db.First(&patient, c.Param("id")).Error; err != nil {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Patient not found",
			Err: err,
		})
		return
	}

	now := time.Now().UTC()
	referral := model.Referral{
		PatientID:            patient.ID,
		ReferrerName:         req.ReferrerName,
		ReferrerEmail:        req.ReferrerEmail,
		ReferrerPhone:        req.ReferrerPhone,
		ReferrerPracticeName: req.ReferrerPracticeName,
		Reason:               req.Reason,
		ReferredDate:         now,
		AccessToken:          uuid.NewString(),
		AccessTokenExpiry:    now.AddDate(0, accessTokenValidityMonths, 0),
	}
	if err := db.Create(&referral).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to create referral",
			Err: err,
		})
		return
	}

	util.LogReferralIssued(referral.ID, patient.ID, c.ClientIP())

	util.CallSuccessCreated(c, util.APISuccessParams{
		Msg:  "Referral created",
		Data: referral,
	})
}

// GetReferralByToken godoc
// @Summary      Read-only referral portal lookup
// @Description  Resolve an access token to the referral, its patient, and the patient's five most recent notes. Unknown and expired tokens are both 404.
// @Tags         Referral
// @Accept       json
// @Produce      json
// @Param        token path string true "Access token"
// @Success      200 {object} util.APIResponse{data=referralPortalView} "Referral retrieved"
// @Failure      404 {object} util.APIResponse "Referral not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /referrals/{token} [get]
func GetReferralByToken(c *gin.Context) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Database connection not available",
			Err: fmt.Errorf("db is nil"),
		})
		return
	}

	// Expiry is part of the lookup predicate, so an expired token is
	// indistinguishable from an unknown one.
	var referral model.Referral
	err := db.Where("access_token = ? AND access_token_expiry > ?", c.Param("token"), time.Now().UTC()).
		First(&referral).Error
	if err == gorm.ErrRecordNotFound {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: "Referral not found",
			Err: fmt.Errorf("invalid or expired token"),
		})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve referral",
			Err: err,
		})
		return
	}

	var patient model.Patient
	if err := db.First(&patient, referral.PatientID).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve referral",
			Err: err,
		})
		return
	}

	var notes []model.Note
	err = db.Where("patient_id = ?", referral.PatientID).
		Order("created_at DESC").
		Limit(5).
		Find(&notes).Error
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve referral",
			Err: err,
		})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg: "Referral retrieved",
		Data: referralPortalView{
			Referral: referral,
			Patient:  patient,
			Notes:    notes,
		},
	})
}
