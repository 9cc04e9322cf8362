package functions

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracing_RequiresProject(t *testing.T) {
	_, err := InitTracing(&Config{AppName: "test"})
	assert.Error(t, err)
}

func TestInitTracingOrFallback(t *testing.T) {
	tp := initTracingOrFallback(&Config{AppName: "test"})
	require.NotNil(t, tp)
	assert.NoError(t, tp.ForceFlush(context.Background()))
}
