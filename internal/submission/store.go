package submission

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/spigell/talent-scout/internal/session"
)

// Record is an anonymized snapshot of a candidate profile.
type Record struct {
	ID               string    `mapstructure:"id" json:"id" yaml:"id"`
	FullName         string    `mapstructure:"full_name" json:"full_name" yaml:"full_name"`
	Email            string    `mapstructure:"email" json:"email" yaml:"email"`
	Phone            string    `mapstructure:"phone" json:"phone" yaml:"phone"`
	YearsExp         string    `mapstructure:"years_exp" json:"years_exp" yaml:"years_exp"`
	DesiredPositions string    `mapstructure:"desired_positions" json:"desired_positions" yaml:"desired_positions"`
	Location         string    `mapstructure:"location" json:"location" yaml:"location"`
	TechStack        []string  `mapstructure:"tech_stack" json:"tech_stack" yaml:"tech_stack"`
	Timestamp        time.Time `mapstructure:"-" json:"timestamp" yaml:"timestamp"`
}

// Store keeps submissions in memory for the lifetime of the process.
// Records are append-only.
type Store struct {
	records []Record
	logger  *zap.Logger
	now     func() time.Time
}

func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger, now: time.Now}
}

// Submit stores an anonymized copy of profile. No record is created when the
// contact fields fail validation.
func (s *Store) Submit(profile session.Profile) (*Record, error) {
	if err := Validate(profile.Email, profile.Phone); err != nil {
		s.logger.Info("submission not stored", zap.Error(err))
		return nil, err
	}

	record := Record{
		ID:               uuid.NewString(),
		FullName:         profile.FullName,
		Email:            MaskEmail(profile.Email),
		Phone:            MaskPhone(profile.Phone),
		YearsExp:         profile.YearsExp,
		DesiredPositions: profile.DesiredPositions,
		Location:         profile.Location,
		TechStack:        slices.Clone(profile.TechStack),
		Timestamp:        s.now().UTC(),
	}

	s.records = append(s.records, record)
	s.logger.Info("submission stored",
		zap.String("submission_id", record.ID),
		zap.Int("submissions", len(s.records)),
	)

	out := record
	out.TechStack = slices.Clone(record.TechStack)
	return &out, nil
}

// Records returns a copy of all stored submissions in insertion order.
func (s *Store) Records() []Record {
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		r.TechStack = slices.Clone(r.TechStack)
		out = append(out, r)
	}
	return out
}

func (s *Store) Len() int {
	return len(s.records)
}

// Export returns every submission as a field mapping, in insertion order.
func (s *Store) Export() ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(s.records))
	for _, r := range s.Records() {
		fields := make(map[string]any)
		if err := mapstructure.Decode(r, &fields); err != nil {
			return nil, fmt.Errorf("encode submission %s: %w", r.ID, err)
		}
		// mapstructure flattens nested structs into maps, time.Time included
		fields["timestamp"] = r.Timestamp
		out = append(out, fields)
	}
	return out, nil
}
