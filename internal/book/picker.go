package book

import (
	"context"

	"github.com/lepinkainen/bookdice/internal/googlebooks"
)

// PageSource returns one randomly offset page of results for a subject.
// *googlebooks.Client implements it.
type PageSource interface {
	RandomPage(ctx context.Context, subject string) (*googlebooks.VolumesResponse, error)
}

// Picker chains the page lookup with Shape.
type Picker struct {
	source PageSource
	rng    googlebooks.Rand
}

// NewPicker creates a Picker. A nil rng uses googlebooks.DefaultRand.
func NewPicker(source PageSource, rng googlebooks.Rand) *Picker {
	if rng == nil {
		rng = googlebooks.DefaultRand
	}
	return &Picker{source: source, rng: rng}
}

// Pick fetches a random page for subject and returns one shaped record.
func (p *Picker) Pick(ctx context.Context, subject string) (*Record, error) {
	page, err := p.source.RandomPage(ctx, subject)
	if err != nil {
		return nil, err
	}
	record := Shape(page, p.rng)
	return &record, nil
}
