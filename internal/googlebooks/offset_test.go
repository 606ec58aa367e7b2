package googlebooks

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffsetStrategy(t *testing.T) {
	tests := []struct {
		input   string
		want    OffsetStrategy
		wantErr bool
	}{
		{input: "", want: OffsetClamp},
		{input: "clamp", want: OffsetClamp},
		{input: "modulo", want: OffsetModulo},
		{input: "random", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseOffsetStrategy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOffsetBounds(t *testing.T) {
	tests := []struct {
		name      string
		strategy  OffsetStrategy
		total     int
		wantBound int // 0 means IntN must not be called
	}{
		{name: "clamp no results", strategy: OffsetClamp, total: 0},
		{name: "clamp negative total", strategy: OffsetClamp, total: -4},
		{name: "clamp small total", strategy: OffsetClamp, total: 5, wantBound: 5},
		{name: "clamp large total", strategy: OffsetClamp, total: 1200, wantBound: 30},
		{name: "modulo small total", strategy: OffsetModulo, total: 5, wantBound: 6},
		{name: "modulo multiple of window", strategy: OffsetModulo, total: 90, wantBound: 1},
		{name: "modulo large total", strategy: OffsetModulo, total: 1234, wantBound: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rng := &stubRand{value: 1000}
			got := tt.strategy.Offset(tt.total, rng)

			if tt.wantBound == 0 {
				assert.Equal(t, 0, got)
				assert.Empty(t, rng.bounds)
				return
			}
			assert.Equal(t, []int{tt.wantBound}, rng.bounds)
			assert.Equal(t, tt.wantBound-1, got)
		})
	}
}

func TestClampOffsetStaysInsideResults(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for total := 1; total <= 100; total++ {
		for range 20 {
			offset := OffsetClamp.Offset(total, rng)
			assert.GreaterOrEqual(t, offset, 0)
			assert.Less(t, offset, min(total, OffsetWindow))
		}
	}
}
