package model

import (
	"time"

	"gorm.io/gorm"
)

// Referral represents an outbound referral belonging to a patient. The access
// token grants time-limited read-only access to the referral portal view.
// @Description Referral with referrer contact details and portal access token
type Referral struct {
	gorm.Model
	PatientID uint `json:"patient_id" gorm:"not null;index" example:"1"`

	ReferrerName         string `json:"referrer_name" example:"Dr. Jane Roe"`
	ReferrerEmail        string `json:"referrer_email" example:"jane@endodontics.example"`
	ReferrerPhone        string `json:"referrer_phone" example:"081234567891"`
	ReferrerPracticeName string `json:"referrer_practice_name" example:"Springfield Endodontics"`

	Reason       string    `json:"reason" example:"RCT referral UL6"`
	ReferredDate time.Time `json:"referred_date"`

	AccessToken       string    `json:"access_token" gorm:"uniqueIndex;type:varchar(64)"`
	AccessTokenExpiry time.Time `json:"access_token_expiry"`
}
