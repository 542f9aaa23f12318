package config_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellamy/vmips/internal/config"
)

const validConfig = `
# timing configuration
dataQueueDepth = 4
computeQueueDepth = 4
vdmNumBanks = 8
vlsPipelineDepth = 2
numLanes = 4
pipelineDepthAdd = 2
pipelineDepthMul = 4
pipelineDepthDiv = 8
`

func TestLoadValid(t *testing.T) {
	cfg, err := config.Load(strings.NewReader(validConfig))
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.DataQueueDepth)
	assert.Equal(t, 8, cfg.VDMNumBanks)
	assert.Equal(t, 8, cfg.PipelineDepthDiv)
}

func TestLoadMissingKey(t *testing.T) {
	missing := strings.Replace(validConfig, "vdmNumBanks = 8\n", "", 1)

	_, err := config.Load(strings.NewReader(missing))
	require.Error(t, err)

	var cerr *config.ConfigError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "vdmNumBanks", cerr.Key)
}

func TestLoadBadValue(t *testing.T) {
	bad := strings.Replace(validConfig, "numLanes = 4", `numLanes = "four"`, 1)

	_, err := config.Load(strings.NewReader(bad))
	require.Error(t, err)
}
