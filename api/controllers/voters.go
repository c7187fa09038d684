package controllers

import (
	"net/http"
	"strings"

	"github.com/homeboardhq/homeboard-backend/api/responses"
	"github.com/homeboardhq/homeboard-backend/api/validators"
	votersvc "github.com/homeboardhq/homeboard-backend/internal/voters"
	"github.com/homeboardhq/homeboard-backend/pkg/enums"
	pkgerrors "github.com/homeboardhq/homeboard-backend/pkg/errors"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
	"github.com/homeboardhq/homeboard-backend/pkg/pagination"
)

// parseVoterCriteria reads the shared filter query parameters: party,
// min_birth_year, max_birth_year, min_score, and elections (comma list).
func parseVoterCriteria(r *http.Request) (votersvc.FilterCriteria, error) {
	criteria := votersvc.FilterCriteria{}

	if raw := strings.TrimSpace(r.URL.Query().Get("party")); raw != "" {
		criteria.Party = &raw
	}

	for _, entry := range []struct {
		key  string
		dest **int
	}{
		{"min_birth_year", &criteria.MinBirthYear},
		{"max_birth_year", &criteria.MaxBirthYear},
	} {
		if strings.TrimSpace(r.URL.Query().Get(entry.key)) == "" {
			continue
		}
		value, err := validators.ParseQueryInt(r, entry.key, 0, 1800, 2100)
		if err != nil {
			return criteria, err
		}
		*entry.dest = &value
	}

	if strings.TrimSpace(r.URL.Query().Get("min_score")) != "" {
		score, err := validators.ParseQueryInt(r, "min_score", 0, 0, 5)
		if err != nil {
			return criteria, err
		}
		criteria.MinScore = &score
	}

	if raw := strings.TrimSpace(r.URL.Query().Get("elections")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			election, err := enums.ParseElection(part)
			if err != nil {
				return criteria, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid election")
			}
			criteria.Elections = append(criteria.Elections, election)
		}
	}

	return criteria, nil
}

// VoterList returns one page of voters matching the filter criteria.
func VoterList(svc votersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := parseVoterCriteria(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 1000000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		perPage, err := validators.ParseQueryInt(r, "per_page", votersvc.DefaultPageSize, 1, 500)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListVoters(r.Context(), criteria, pagination.Params{Page: page, PerPage: perPage})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func VoterDetail(svc votersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathUUID(r, "voterId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		voter, err := svc.GetVoter(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, voter)
	}
}

// VoterGraphs returns the three aggregation charts over the filtered set.
func VoterGraphs(svc votersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		criteria, err := parseVoterCriteria(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		graphs, err := svc.GetGraphs(r.Context(), criteria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, graphs)
	}
}
