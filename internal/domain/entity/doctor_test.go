package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDoctor_SpecialtyNames(t *testing.T) {
	d := &Doctor{
		FirstName: "Ana",
		LastName:  "Ruiz",
		Assignments: []DoctorSpecialty{
			{SpecialtyID: 1, Specialty: Specialty{ID: 1, Name: "Cardiology"}},
			{SpecialtyID: 2},
		},
	}
	assert.Equal(t, []string{"Cardiology"}, d.SpecialtyNames())
	assert.Equal(t, "Dr. Ana Ruiz", d.DisplayName())
}
