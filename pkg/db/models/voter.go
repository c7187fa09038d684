package models

import (
	"time"

	"github.com/google/uuid"
)

// Voter is a registered voter record. Rows are written once by the bulk
// loader and read-only afterwards.
type Voter struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	LastName  string    `gorm:"column:last_name;not null" json:"last_name"`
	FirstName string    `gorm:"column:first_name;not null" json:"first_name"`

	StreetNumber    string  `gorm:"column:street_number" json:"street_number"`
	StreetName      string  `gorm:"column:street_name" json:"street_name"`
	ApartmentNumber *string `gorm:"column:apartment_number" json:"apartment_number,omitempty"`
	ZipCode         string  `gorm:"column:zip_code" json:"zip_code"`

	DateOfBirth        time.Time `gorm:"column:date_of_birth;not null" json:"date_of_birth"`
	DateOfRegistration time.Time `gorm:"column:date_of_registration;not null" json:"date_of_registration"`

	PartyAffiliation string `gorm:"column:party_affiliation;not null" json:"party_affiliation"`
	PrecinctNumber   string `gorm:"column:precinct_number" json:"precinct_number"`

	V20State   bool `gorm:"column:v20state;not null;default:false" json:"v20state"`
	V21Town    bool `gorm:"column:v21town;not null;default:false" json:"v21town"`
	V21Primary bool `gorm:"column:v21primary;not null;default:false" json:"v21primary"`
	V22General bool `gorm:"column:v22general;not null;default:false" json:"v22general"`
	V23Town    bool `gorm:"column:v23town;not null;default:false" json:"v23town"`

	VoterScore int `gorm:"column:voter_score;not null;default:0" json:"voter_score"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// BirthYear returns the year component used for distribution bucketing.
func (v Voter) BirthYear() int {
	return v.DateOfBirth.Year()
}
