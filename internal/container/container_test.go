package container

import (
	"context"
	"testing"

	"dpplayground/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresServices(t *testing.T) {
	c, err := New(config.Default())
	require.NoError(t, err)

	assert.NotNil(t, c.Playground)
	assert.NotNil(t, c.Importer)
	require.NotNil(t, c.Gatherer())

	families, err := c.Gatherer().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)

	assert.NoError(t, c.Shutdown(context.Background()))
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Metrics.Enabled = false

	c, err := New(cfg)
	require.NoError(t, err)
	assert.Nil(t, c.Gatherer())
	assert.NotNil(t, c.Metrics)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Calculator.BaseURL = "not a url"
	_, err = New(cfg)
	assert.Error(t, err)
}
