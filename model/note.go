package model

import "gorm.io/gorm"

// Note holds raw clinical text plus the optionally derived AI summary and
// referrer letter. Summary and Letter are overwritable independently of the
// content and of each other; both empty is a valid state.
type Note struct {
	gorm.Model
	PatientID uint   `json:"patient_id" gorm:"not null;index" example:"1"`
	Content   string `json:"content" gorm:"type:text"`
	Summary   string `json:"summary" gorm:"type:text"`
	Letter    string `json:"letter" gorm:"type:text"`
}
