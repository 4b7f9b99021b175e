// Package history persists the reports of randomness test suite runs.
package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/oasisprotocol/prng-suite/common/cbor"
	"github.com/oasisprotocol/prng-suite/common/errors"
	"github.com/oasisprotocol/prng-suite/common/logging"
	"github.com/oasisprotocol/prng-suite/common/persistent"
	"github.com/oasisprotocol/prng-suite/common/version"
	"github.com/oasisprotocol/prng-suite/randtest/api"
)

const (
	moduleName = "history"

	// serviceName is the persistent service store holding the records.
	serviceName = "history"
)

var (
	// ErrNotFound is the error returned when no record has the given id.
	ErrNotFound = errors.New(moduleName, 1, "history: record not found")

	// ErrMalformedID is the error returned for an id that is not a UUID.
	ErrMalformedID = errors.New(moduleName, 2, "history: malformed record id")

	// ErrIncompatibleFormat is the error returned for a record written with
	// an incompatible format version.
	ErrIncompatibleFormat = errors.New(moduleName, 3, "history: incompatible record format")
)

// Record is the report of a single test suite run.
type Record struct {
	ID     string          `json:"id"`
	Format version.Version `json:"format"`
	// Timestamp is the run time in nanoseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`

	// Kind is the generator kind, GeneratorName its human readable name.
	Kind          string  `json:"kind"`
	GeneratorName string  `json:"generator_name"`
	Seed          uint64  `json:"seed"`
	Count         int     `json:"count"`
	Significance  float64 `json:"significance"`

	Results []*api.Result `json:"results"`
}

// Time returns the run time.
func (r *Record) Time() time.Time {
	return time.Unix(0, r.Timestamp).UTC()
}

// Passed returns the number of passed tests.
func (r *Record) Passed() int {
	var n int
	for _, res := range r.Results {
		if res.Passed {
			n++
		}
	}
	return n
}

// Store is the history store.
type Store struct {
	store  *persistent.ServiceStore
	logger *logging.Logger

	now func() time.Time
}

// Add stores a record, assigning its id, format and timestamp when unset.
func (s *Store) Add(rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if _, err := uuid.Parse(rec.ID); err != nil {
		return errors.WithContext(ErrMalformedID, rec.ID)
	}
	if rec.Format == (version.Version{}) {
		rec.Format = version.HistoryFormat
	}
	if rec.Timestamp == 0 {
		rec.Timestamp = s.now().UnixNano()
	}

	if err := s.store.PutCBOR([]byte(rec.ID), rec); err != nil {
		return fmt.Errorf("history: failed to store record %s: %w", rec.ID, err)
	}
	s.logger.Debug("stored record",
		"id", rec.ID,
		"kind", rec.Kind,
		"passed", rec.Passed(),
		"tests", len(rec.Results),
	)
	return nil
}

func checkFormat(rec *Record) error {
	if rec.Format.Major != version.HistoryFormat.Major {
		return errors.WithContext(ErrIncompatibleFormat, rec.Format.String())
	}
	return nil
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (*Record, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.WithContext(ErrMalformedID, id)
	}

	var rec Record
	switch err := s.store.GetCBOR([]byte(id), &rec); {
	case err == nil:
	case errors.Is(err, persistent.ErrNotFound):
		return nil, errors.WithContext(ErrNotFound, id)
	default:
		return nil, fmt.Errorf("history: failed to load record %s: %w", id, err)
	}
	if err := checkFormat(&rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all readable records, oldest first. Records with an
// incompatible format are skipped.
func (s *Store) List() ([]*Record, error) {
	var records []*Record
	err := s.store.ForEach(func(key, value []byte) error {
		var rec Record
		if err := cbor.Unmarshal(value, &rec); err != nil {
			return fmt.Errorf("history: malformed record %s: %w", key, err)
		}
		if err := checkFormat(&rec); err != nil {
			s.logger.Warn("skipping record",
				"id", string(key),
				"err", err,
			)
			return nil
		}
		records = append(records, &rec)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(records, func(a, b *Record) bool {
		if a.Timestamp != b.Timestamp {
			return a.Timestamp < b.Timestamp
		}
		return a.ID < b.ID
	})
	return records, nil
}

// Delete removes the record with the given id.
func (s *Store) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.store.Delete([]byte(id))
}

// New creates a history store on top of the common store.
func New(cs *persistent.CommonStore) (*Store, error) {
	svc, err := cs.GetServiceStore(serviceName)
	if err != nil {
		return nil, err
	}
	return &Store{
		store:  svc,
		logger: logging.GetLogger(moduleName),
		now:    time.Now,
	}, nil
}
