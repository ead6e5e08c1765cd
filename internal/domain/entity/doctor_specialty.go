package entity

import "time"

// DoctorSpecialty assigns a specialty to a doctor. A pair is assigned at
// most once.
type DoctorSpecialty struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    int64     `gorm:"not null;uniqueIndex:uq_doctor_specialties_pair" json:"doctor_id"`
	SpecialtyID int64     `gorm:"not null;uniqueIndex:uq_doctor_specialties_pair;index" json:"specialty_id"`
	AssignedAt  time.Time `gorm:"autoCreateTime" json:"assigned_at"`

	// Relationships
	Specialty Specialty `gorm:"foreignKey:SpecialtyID" json:"specialty,omitempty"`
}

func (DoctorSpecialty) TableName() string {
	return "doctor_specialties"
}
