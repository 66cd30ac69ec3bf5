package scenario

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsError(t *testing.T) {
	_, err := Load("testdata/does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load("testdata/unknown_field.yaml")
	assert.ErrorContains(t, err, "parse scenario")
}

func TestLoadLinearChain(t *testing.T) {
	sc, err := Load("testdata/linear_chain.yaml")
	require.NoError(t, err)
	assert.Equal(t, "linear-chain", sc.Name)
	assert.Len(t, sc.Cells, 3)
	assert.Len(t, sc.Links, 3)
	assert.Len(t, sc.Events, 2)
}

func TestRunLinearChainTrace(t *testing.T) {
	sc, err := Load("testdata/linear_chain.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Run(sc, &buf))

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"))
	g.Assert(t, "linear_chain_trace", buf.Bytes())
}

func TestRunSecondEventProducesNoActivations(t *testing.T) {
	sc, err := Load("testdata/linear_chain.yaml")
	require.NoError(t, err)

	r, _, err := NewRunner(sc)
	require.NoError(t, err)

	_, err = r.RunEvent(sc.Events[0])
	require.NoError(t, err)

	lines, err := r.RunEvent(sc.Events[1])
	require.NoError(t, err)
	assert.Empty(t, lines, "re-setting a to its current value must not activate any link")
}
