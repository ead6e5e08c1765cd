package entity

import "time"

// Doctor is a practitioner that can be booked for appointments in the
// specialties assigned through the doctor-specialty registry.
type Doctor struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	FirstName   string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName    string    `gorm:"type:varchar(100);not null" json:"last_name"`
	PhoneNumber string    `gorm:"type:varchar(15);not null" json:"phone_number"`
	Email       string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Assignments  []DoctorSpecialty `gorm:"foreignKey:DoctorID" json:"assignments,omitempty"`
	Appointments []Appointment     `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// DisplayName returns "Dr. <first> <last>".
func (d *Doctor) DisplayName() string {
	return "Dr. " + d.FirstName + " " + d.LastName
}

// SpecialtyNames lists the names of the preloaded assignments.
func (d *Doctor) SpecialtyNames() []string {
	names := make([]string, 0, len(d.Assignments))
	for _, a := range d.Assignments {
		if a.Specialty.ID != 0 {
			names = append(names, a.Specialty.Name)
		}
	}
	return names
}
