package entity

import "time"

// Patient is a person that can book appointments.
type Patient struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100);not null" json:"last_name"`
	BirthDate   time.Time `gorm:"type:date;not null" json:"birth_date"`
	PhoneNumber string    `gorm:"type:varchar(15);not null" json:"phone_number"`
	Email       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"appointments,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName returns "<first> <last>".
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// AgeAt returns the completed years of life at the given instant.
func (p *Patient) AgeAt(now time.Time) int {
	if p.BirthDate.IsZero() {
		return 0
	}
	years := now.Year() - p.BirthDate.Year()
	if now.Month() < p.BirthDate.Month() ||
		(now.Month() == p.BirthDate.Month() && now.Day() < p.BirthDate.Day()) {
		years--
	}
	return years
}
