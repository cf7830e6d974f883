package handlers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/akswiz/internal/config"
	testutil "github.com/imamik/akswiz/internal/testing"
)

func TestReview(t *testing.T) {
	noDefaultConfig(t)
	ctx := testutil.TestContext(t)

	t.Run("passing config", func(t *testing.T) {
		path := writeTestConfig(t, testutil.DemoConfig())
		var err error
		out := captureOutput(func() { err = Review(ctx, path, nil, false) })

		require.NoError(t, err)
		assert.Contains(t, out, "akswiz review: demo")
		assert.Contains(t, out, "Cluster Name")
		assert.Contains(t, out, "Required:  0 failing")
	})

	t.Run("required failure", func(t *testing.T) {
		var err error
		out := captureOutput(func() { err = Review(ctx, "", nil, false) })

		require.ErrorIs(t, err, ErrValidationFailed)
		assert.Contains(t, out, "(unnamed cluster)")
		assert.Contains(t, out, "Cluster name is required")
	})

	t.Run("set flag overrides the file", func(t *testing.T) {
		path := writeTestConfig(t, testutil.DemoConfig())
		var err error
		captureOutput(func() { err = Review(ctx, path, []string{"clusterName=bad_name!"}, false) })
		require.ErrorIs(t, err, ErrValidationFailed)
	})

	t.Run("json output", func(t *testing.T) {
		path := writeTestConfig(t, testutil.DemoConfig())
		var err error
		out := captureOutput(func() { err = Review(ctx, path, nil, true) })
		require.NoError(t, err)

		var got reviewSummary
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "demo", got.ClusterName)
		assert.True(t, got.Required)
		assert.Len(t, got.Checks, len(config.Checks(testutil.DemoConfig())))
	})
}

func TestRenderReview_Counts(t *testing.T) {
	cfg := testutil.NewConfigBuilder().With(func(c *config.Config) {
		c.Security.EnableRBAC = false
		c.Monitoring.EnableContainerInsights = false
		c.SubscriptionID = ""
	}).Build()
	results := config.Checks(cfg)

	out := renderReview("x", results)
	assert.Contains(t, out, "Required:  1 failing")
	assert.Contains(t, out, "Advisory:  2 failing")
	assert.Contains(t, out, "!")
	assert.Contains(t, out, "✗")
}

func TestRenderFailures_OnlyRequired(t *testing.T) {
	cfg := testutil.NewConfigBuilder().With(func(c *config.Config) {
		c.ResourceGroupName = ""
		c.Security.EnableRBAC = false
	}).Build()

	out := renderFailures(config.Checks(cfg))
	assert.Contains(t, out, "Resource Group Name")
	assert.NotContains(t, out, "RBAC")
	assert.Equal(t, 1, strings.Count(out, "✗"))
}
