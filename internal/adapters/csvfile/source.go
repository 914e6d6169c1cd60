package csvfile

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"booking_insights/internal/adapters/observability"
	"booking_insights/internal/dataset"
	"booking_insights/internal/domain"
)

// Source reads the booking table from a delimited text file.
type Source struct {
	path  string
	delim rune
}

func New(path string, delim rune) *Source {
	if delim == 0 {
		delim = ','
	}
	return &Source{path: path, delim: delim}
}

func (s *Source) Load(ctx context.Context) (*dataset.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDataAccess, s.path, err)
	}
	defer f.Close()

	t, err := dataset.ReadCSV(f, s.delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.path, err)
	}

	observability.ObserveLoad("csv", t.Len())
	log.Debug().
		Str("path", s.path).
		Int("rows", t.Len()).
		Int("columns", len(t.Columns())).
		Dur("took", time.Since(start)).
		Msg("csv loaded")
	return t, nil
}
