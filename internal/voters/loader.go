package voters

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/multierr"

	"github.com/homeboardhq/homeboard-backend/pkg/db/models"
	"github.com/homeboardhq/homeboard-backend/pkg/logger"
	"github.com/homeboardhq/homeboard-backend/pkg/metrics"
)

// voterColumnCount is the number of positional columns a well-formed row
// carries: one external id plus the sixteen voter fields.
const voterColumnCount = 17

const loaderSource = "voters"

// LoadReport summarizes one bulk load run.
type LoadReport struct {
	Created   int
	Skipped   int
	RowErrors error
}

// Loader reads the positional voter CSV and inserts rows in batches.
// Malformed rows are skipped individually and logged; the load keeps going.
type Loader struct {
	repo      *Repository
	logg      *logger.Logger
	loadStats *metrics.LoaderMetrics
	batchSize int
}

// NewLoader constructs a bulk loader.
func NewLoader(repo *Repository, logg *logger.Logger, loadStats *metrics.LoaderMetrics, batchSize int) (*Loader, error) {
	if repo == nil {
		return nil, fmt.Errorf("voter repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if batchSize <= 0 {
		batchSize = 500
	}
	return &Loader{repo: repo, logg: logg, loadStats: loadStats, batchSize: batchSize}, nil
}

// LoadFile opens the named CSV file and loads it.
func (l *Loader) LoadFile(ctx context.Context, path string) (*LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open voter file %q: %w", path, err)
	}
	defer f.Close()
	return l.Load(ctx, f)
}

// Load reads voter rows from r, skipping the header line.
func (l *Loader) Load(ctx context.Context, r io.Reader) (*LoadReport, error) {
	start := time.Now()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	report := &LoadReport{}
	batch := make([]models.Voter, 0, l.batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := l.repo.CreateInBatches(ctx, batch, l.batchSize); err != nil {
			return fmt.Errorf("insert voter batch: %w", err)
		}
		report.Created += len(batch)
		batch = batch[:0]
		return nil
	}

	line := 0
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			l.logSkip(ctx, line, err)
			report.Skipped++
			report.RowErrors = multierr.Append(report.RowErrors, fmt.Errorf("line %d: %w", line, err))
			continue
		}
		if line == 1 {
			// header
			continue
		}

		voter, err := parseVoterRow(fields)
		if err != nil {
			l.logSkip(ctx, line, err)
			report.Skipped++
			report.RowErrors = multierr.Append(report.RowErrors, fmt.Errorf("line %d: %w", line, err))
			continue
		}

		batch = append(batch, *voter)
		if len(batch) >= l.batchSize {
			if err := flush(); err != nil {
				return report, err
			}
		}
	}
	if err := flush(); err != nil {
		return report, err
	}

	l.loadStats.AddLoaded(loaderSource, report.Created)
	l.loadStats.AddSkipped(loaderSource, report.Skipped)
	l.loadStats.ObserveDuration(loaderSource, time.Since(start))

	l.logg.Info(l.logg.WithFields(ctx, map[string]any{
		"created": report.Created,
		"skipped": report.Skipped,
	}), "voter load finished")

	return report, nil
}

func (l *Loader) logSkip(ctx context.Context, line int, err error) {
	l.logg.Warn(l.logg.WithFields(ctx, map[string]any{
		"line":  line,
		"error": err.Error(),
	}), "skipping malformed voter row")
}

// parseVoterRow maps one positional CSV record onto a Voter. The leading
// column is an external id and is ignored.
func parseVoterRow(fields []string) (*models.Voter, error) {
	if len(fields) < voterColumnCount {
		return nil, fmt.Errorf("expected %d columns, got %d", voterColumnCount, len(fields))
	}

	dateOfBirth, err := time.Parse("2006-01-02", strings.TrimSpace(fields[7]))
	if err != nil {
		return nil, fmt.Errorf("date_of_birth: %w", err)
	}
	dateOfRegistration, err := time.Parse("2006-01-02", strings.TrimSpace(fields[8]))
	if err != nil {
		return nil, fmt.Errorf("date_of_registration: %w", err)
	}
	score, err := strconv.Atoi(strings.TrimSpace(fields[16]))
	if err != nil {
		return nil, fmt.Errorf("voter_score: %w", err)
	}
	if score < 0 || score > 5 {
		return nil, fmt.Errorf("voter_score %d out of range", score)
	}

	voter := &models.Voter{
		LastName:           strings.TrimSpace(fields[1]),
		FirstName:          strings.TrimSpace(fields[2]),
		StreetNumber:       strings.TrimSpace(fields[3]),
		StreetName:         strings.TrimSpace(fields[4]),
		ZipCode:            strings.TrimSpace(fields[6]),
		DateOfBirth:        dateOfBirth,
		DateOfRegistration: dateOfRegistration,
		PartyAffiliation:   strings.TrimSpace(fields[9]),
		PrecinctNumber:     strings.TrimSpace(fields[10]),
		V20State:           parseFlag(fields[11]),
		V21Town:            parseFlag(fields[12]),
		V21Primary:         parseFlag(fields[13]),
		V22General:         parseFlag(fields[14]),
		V23Town:            parseFlag(fields[15]),
		VoterScore:         score,
	}
	if voter.LastName == "" || voter.FirstName == "" {
		return nil, fmt.Errorf("name fields are required")
	}
	if apt := strings.TrimSpace(fields[5]); apt != "" {
		voter.ApartmentNumber = &apt
	}
	return voter, nil
}

func parseFlag(value string) bool {
	return strings.EqualFold(strings.TrimSpace(value), "Y")
}
