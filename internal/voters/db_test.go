package voters

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	"github.com/homeboardhq/homeboard-backend/pkg/enums"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:voters_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	votersTable := `
CREATE TABLE IF NOT EXISTS voters (
  id TEXT PRIMARY KEY,
  last_name TEXT NOT NULL,
  first_name TEXT NOT NULL,
  street_number TEXT NOT NULL DEFAULT '',
  street_name TEXT NOT NULL DEFAULT '',
  apartment_number TEXT,
  zip_code TEXT NOT NULL DEFAULT '',
  date_of_birth DATETIME NOT NULL,
  date_of_registration DATETIME NOT NULL,
  party_affiliation TEXT NOT NULL,
  precinct_number TEXT NOT NULL DEFAULT '',
  v20state INTEGER NOT NULL DEFAULT 0,
  v21town INTEGER NOT NULL DEFAULT 0,
  v21primary INTEGER NOT NULL DEFAULT 0,
  v22general INTEGER NOT NULL DEFAULT 0,
  v23town INTEGER NOT NULL DEFAULT 0,
  voter_score INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	if err := db.Exec(votersTable).Error; err != nil {
		t.Fatalf("create voters table: %v", err)
	}
	return db
}

type testVoter struct {
	last      string
	first     string
	party     string
	birthYear int
	score     int
	elections []enums.Election
}

func mustCreateTestVoter(t *testing.T, tx *gorm.DB, in testVoter) *models.Voter {
	t.Helper()

	voter := &models.Voter{
		ID:                 uuid.New(),
		LastName:           in.last,
		FirstName:          in.first,
		PartyAffiliation:   in.party,
		DateOfBirth:        time.Date(in.birthYear, time.June, 15, 0, 0, 0, 0, time.UTC),
		DateOfRegistration: time.Date(2019, time.March, 1, 0, 0, 0, 0, time.UTC),
		VoterScore:         in.score,
	}
	for _, election := range in.elections {
		switch election {
		case enums.Election2020State:
			voter.V20State = true
		case enums.Election2021Town:
			voter.V21Town = true
		case enums.Election2021Primary:
			voter.V21Primary = true
		case enums.Election2022General:
			voter.V22General = true
		case enums.Election2023Town:
			voter.V23Town = true
		}
	}
	if err := tx.Create(voter).Error; err != nil {
		t.Fatalf("create voter: %v", err)
	}
	return voter
}
