package model

import "gorm.io/gorm"

// Patient represents a patient of the practice
// @Description Patient demographic and clinical intake information
type Patient struct {
	gorm.Model
	FirstName   string `json:"first_name" gorm:"not null" example:"John"`
	LastName    string `json:"last_name" gorm:"not null" example:"Smith"`
	DateOfBirth string `json:"date_of_birth" example:"1985-04-12"`
	Email       string `json:"email" example:"john@example.com"`
	Phone       string `json:"phone" example:"081234567890"`
	Address     string `json:"address" example:"123 Main St"`
	City        string `json:"city" example:"Springfield"`
	State       string `json:"state" example:"IL"`
	ZipCode     string `json:"zip_code" example:"62704"`

	// Clinical intake, free text. ToothNotation is FDI notation and is not
	// parsed or validated.
	ChiefComplaint string `json:"chief_complaint" example:"Sharp pain on cold stimuli"`
	Symptoms       string `json:"symptoms" example:"Pain localized to UL6"`
	ToothNotation  string `json:"tooth_notation" example:"26"`

	// Owned collections. Children carry only the PatientID foreign key back
	// reference so serialization never cycles.
	Referrals    []Referral    `json:"referrals,omitempty" gorm:"foreignKey:PatientID"`
	Notes        []Note        `json:"notes,omitempty" gorm:"foreignKey:PatientID"`
	Appointments []Appointment `json:"appointments,omitempty" gorm:"foreignKey:PatientID"`
}

// FullName joins the patient's first and last name for display and prompts.
func (p Patient) FullName() string {
	if p.FirstName == "" {
		return p.LastName
	}
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
