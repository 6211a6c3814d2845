package fields

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	for _, v := range []any{"1", "true", "yes", "TRUE", " Yes ", true, 1, float64(1)} {
		require.Equal(t, 1, Truthy(v), "value %#v", v)
	}
	for _, v := range []any{"0", "false", "no", "", "maybe", false, 0, float64(0), 2, nil, []any{"1"}} {
		require.Equal(t, 0, Truthy(v), "value %#v", v)
	}
}

func TestText(t *testing.T) {
	require.Equal(t, "", Text(nil))
	require.Equal(t, "A. Smith", Text("  A. Smith "))
	require.Equal(t, "USA, China", Text([]any{"USA", " ", "China"}))
	require.Equal(t, "2019", Text(float64(2019)))
	require.Equal(t, "true", Text(true))
	require.Equal(t, "", Text(map[string]any{"a": 1}))
	require.Equal(t, "", OptionalText(float64(0)))
	require.Equal(t, "", OptionalText("0"))
	require.Equal(t, "10 firms", OptionalText("10 firms"))
}

func TestYear(t *testing.T) {
	require.Equal(t, "2018", Year("2018"))
	require.Equal(t, "2018", Year(float64(2018)))
	require.Equal(t, "2017", Year("Journal of Finance, 2017, vol 72"))
	require.Equal(t, "", Year("forthcoming"))
	require.Equal(t, "", Year("12345"))
	require.Equal(t, "", Year(nil))
}

func TestTriState(t *testing.T) {
	require.Equal(t, "1", TriState(float64(1)))
	require.Equal(t, "1", TriState("Yes"))
	require.Equal(t, "0", TriState(false))
	require.Equal(t, "", TriState(""))
	require.Equal(t, "", TriState("unclear"))
}
