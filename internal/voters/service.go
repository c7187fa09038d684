package voters

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/homeboardhq/homeboard-backend/pkg/charts"
	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	"github.com/homeboardhq/homeboard-backend/pkg/enums"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
	"github.com/homeboardhq/homeboard-backend/pkg/pagination"
)

// DefaultPageSize is the voter listing page size when none is requested.
const DefaultPageSize = 100

// Service exposes voter listing, detail, and aggregation operations.
type Service interface {
	ListVoters(ctx context.Context, criteria FilterCriteria, page pagination.Params) (*ListResult, error)
	GetVoter(ctx context.Context, voterID uuid.UUID) (*models.Voter, error)
	GetGraphs(ctx context.Context, criteria FilterCriteria) (*GraphsResult, error)
}

// ListResult is one page of filtered voters.
type ListResult struct {
	Voters  []models.Voter `json:"voters"`
	Total   int64          `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
}

// ElectionCount pairs one election with its participation count.
type ElectionCount struct {
	Election enums.Election `json:"election"`
	Label    string         `json:"label"`
	Count    int64          `json:"count"`
}

// GraphsResult carries the three chart payloads for the filtered set.
type GraphsResult struct {
	Total              int64        `json:"total"`
	BirthYearChart     charts.Chart `json:"birth_year_chart"`
	PartyChart         charts.Chart `json:"party_chart"`
	ParticipationChart charts.Chart `json:"participation_chart"`
}

type service struct {
	repo *Repository
}

// NewService constructs a voter service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("voter repository required")
	}
	return &service{repo: repo}, nil
}

// ListVoters returns one page of voters matching the criteria, ordered by
// last name then first name.
func (s *service) ListVoters(ctx context.Context, criteria FilterCriteria, page pagination.Params) (*ListResult, error) {
	page = page.Normalize(DefaultPageSize)

	rows, total, err := s.repo.List(ctx, criteria, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list voters")
	}
	if rows == nil {
		rows = []models.Voter{}
	}
	return &ListResult{
		Voters:  rows,
		Total:   total,
		Page:    page.Page,
		PerPage: page.PerPage,
	}, nil
}

// GetVoter loads one voter by ID.
func (s *service) GetVoter(ctx context.Context, voterID uuid.UUID) (*models.Voter, error) {
	voter, err := s.repo.FindByID(ctx, voterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "voter not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load voter")
	}
	return voter, nil
}

// GetGraphs loads the filtered set once and computes all three summaries
// over it.
func (s *service) GetGraphs(ctx context.Context, criteria FilterCriteria) (*GraphsResult, error) {
	rows, err := s.repo.FindAll(ctx, criteria)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load filtered voters")
	}

	participation := ComputeElectionParticipation(rows)
	points := make([]charts.Point, 0, len(participation))
	for _, entry := range participation {
		points = append(points, charts.Point{Label: entry.Label, Value: entry.Count})
	}

	return &GraphsResult{
		Total: int64(len(rows)),
		BirthYearChart: charts.FromYearCounts(
			enums.ChartKindHistogram, "Voters by Year of Birth", ComputeBirthYearDistribution(rows)),
		PartyChart: charts.FromLabelCounts(
			enums.ChartKindPie, "Voters by Party Affiliation", ComputePartyDistribution(rows)),
		ParticipationChart: charts.New(
			enums.ChartKindBar, "Participation by Election", points),
	}, nil
}

// ComputeBirthYearDistribution buckets voters by the year component of their
// date of birth. An empty input yields an empty distribution.
func ComputeBirthYearDistribution(rows []models.Voter) map[int]int64 {
	counts := make(map[int]int64, len(rows))
	for _, voter := range rows {
		counts[voter.BirthYear()]++
	}
	return counts
}

// ComputePartyDistribution groups voters by party code.
func ComputePartyDistribution(rows []models.Voter) map[string]int64 {
	counts := make(map[string]int64)
	for _, voter := range rows {
		counts[voter.PartyAffiliation]++
	}
	return counts
}

// ComputeElectionParticipation counts participants per election. Every
// tracked election is reported in display order, zero counts included,
// regardless of which election filter selected the input set.
func ComputeElectionParticipation(rows []models.Voter) []ElectionCount {
	results := make([]ElectionCount, 0, len(enums.AllElections))
	for _, election := range enums.AllElections {
		var count int64
		for _, voter := range rows {
			if voterParticipated(voter, election) {
				count++
			}
		}
		results = append(results, ElectionCount{
			Election: election,
			Label:    election.Label(),
			Count:    count,
		})
	}
	return results
}

func voterParticipated(voter models.Voter, election enums.Election) bool {
	switch election {
	case enums.Election2020State:
		return voter.V20State
	case enums.Election2021Town:
		return voter.V21Town
	case enums.Election2021Primary:
		return voter.V21Primary
	case enums.Election2022General:
		return voter.V22General
	case enums.Election2023Town:
		return voter.V23Town
	default:
		return false
	}
}
