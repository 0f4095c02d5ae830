package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vegasq/parshape/table"
)

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"row_number":   RowNumber,
		"ROW_NUMBER":   RowNumber,
		"RowNumber":    RowNumber,
		"rank":         Rank,
		"dense-rank":   DenseRank,
		"lead":         Lead,
		"LAG":          Lag,
		"first_value":  FirstValue,
		"last value":   LastValue,
		"running_sum":  RunningSum,
		"runningavg":   RunningAvg,
		"percent_rank": PercentRank,
	}

	for in, want := range tests {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestParseKind_Unknown(t *testing.T) {
	_, err := ParseKind("ntile")
	require.Error(t, err)
	assert.True(t, errors.Is(err, table.ErrInvalidSpec))
}

func TestKind_TextRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		text, err := k.MarshalText()
		require.NoError(t, err)

		var back Kind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, k, back)
	}

	_, err := Kind(0).MarshalText()
	assert.Error(t, err)
}
