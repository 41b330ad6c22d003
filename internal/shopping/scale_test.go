package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScale(t *testing.T) {
	tests := []struct {
		name         string
		amount       float64
		baseServings int
		peopleCount  int
		want         float64
		wantErr      bool
	}{
		{name: "scale up", amount: 2, baseServings: 4, peopleCount: 8, want: 4},
		{name: "scale down", amount: 1, baseServings: 2, peopleCount: 1, want: 0.5},
		{name: "identity when people equals base", amount: 3.5, baseServings: 4, peopleCount: 4, want: 3.5},
		{name: "fractional result kept exact", amount: 1, baseServings: 3, peopleCount: 1, want: 1.0 / 3.0},
		{name: "zero base servings", amount: 2, baseServings: 0, peopleCount: 4, wantErr: true},
		{name: "negative base servings", amount: 2, baseServings: -1, peopleCount: 4, wantErr: true},
		{name: "zero people", amount: 2, baseServings: 4, peopleCount: 0, wantErr: true},
		{name: "negative people", amount: 2, baseServings: 4, peopleCount: -2, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Scale(tt.amount, tt.baseServings, tt.peopleCount)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidServings)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}
}
