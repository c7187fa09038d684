package voters

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	"github.com/homeboardhq/homeboard-backend/pkg/enums"
	"github.com/homeboardhq/homeboard-backend/pkg/pagination"
)

// FilterCriteria narrows the voter collection. All criteria are optional and
// AND-combined; the election set is an OR across the named flags.
type FilterCriteria struct {
	Party        *string
	MinBirthYear *int
	MaxBirthYear *int
	MinScore     *int
	Elections    []enums.Election
}

// Repository manages persistence for voter records.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// FindByID loads one voter.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Voter, error) {
	var voter models.Voter
	if err := r.db.WithContext(ctx).First(&voter, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &voter, nil
}

// List returns the voters matching the criteria ordered by last name then
// first name, one page at a time, along with the total match count.
func (r *Repository) List(ctx context.Context, criteria FilterCriteria, page pagination.Params) ([]models.Voter, int64, error) {
	qb := r.applyCriteria(r.db.WithContext(ctx).Model(&models.Voter{}), criteria)

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Voter
	err := qb.
		Order("last_name ASC, first_name ASC").
		Offset(page.Offset()).
		Limit(page.PerPage).
		Find(&rows).Error
	return rows, total, err
}

// FindAll returns every voter matching the criteria, unordered. Aggregations
// use this: they consume the whole filtered set in memory.
func (r *Repository) FindAll(ctx context.Context, criteria FilterCriteria) ([]models.Voter, error) {
	var rows []models.Voter
	err := r.applyCriteria(r.db.WithContext(ctx).Model(&models.Voter{}), criteria).
		Find(&rows).Error
	return rows, err
}

// CreateInBatches inserts voters in chunks of batchSize.
func (r *Repository) CreateInBatches(ctx context.Context, rows []models.Voter, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	for i := range rows {
		if rows[i].ID == uuid.Nil {
			rows[i].ID = uuid.New()
		}
	}
	return r.db.WithContext(ctx).CreateInBatches(rows, batchSize).Error
}

// Count reports how many voters are loaded.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Voter{}).Count(&total).Error
	return total, err
}

// applyCriteria translates the filter criteria into WHERE clauses. Birth-year
// bounds become date ranges so the predicate stays portable across dialects.
func (r *Repository) applyCriteria(qb *gorm.DB, criteria FilterCriteria) *gorm.DB {
	if criteria.Party != nil {
		qb = qb.Where("party_affiliation = ?", strings.TrimSpace(*criteria.Party))
	}
	if criteria.MinBirthYear != nil {
		qb = qb.Where("date_of_birth >= ?", yearStart(*criteria.MinBirthYear))
	}
	if criteria.MaxBirthYear != nil {
		qb = qb.Where("date_of_birth < ?", yearStart(*criteria.MaxBirthYear+1))
	}
	if criteria.MinScore != nil {
		qb = qb.Where("voter_score >= ?", *criteria.MinScore)
	}
	if len(criteria.Elections) > 0 {
		clauses := make([]string, 0, len(criteria.Elections))
		for _, election := range criteria.Elections {
			clauses = append(clauses, fmt.Sprintf("%s = ?", election.Column()))
		}
		args := make([]any, len(clauses))
		for i := range args {
			args[i] = true
		}
		qb = qb.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
	return qb
}

func yearStart(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
