package xdrls

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	data, err := os.ReadFile("fixtures/protocol.x")
	require.NoError(t, err)

	spec, err := Parse(data)
	require.NoError(t, err)
	require.NotNil(t, spec)
	require.NotEmpty(t, spec.Definitions)
}

func TestParseBadInput(t *testing.T) {
	data, err := os.ReadFile("fixtures/bad.x")
	require.NoError(t, err)

	spec, err := Parse(data)
	require.Error(t, err)
	require.Nil(t, spec)
}

func TestParseEmpty(t *testing.T) {
	spec, err := Parse(nil)
	require.NoError(t, err)
	require.NotNil(t, spec)
	require.Empty(t, spec.Definitions)
}
