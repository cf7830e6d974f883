package pricing

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	testutil "github.com/imamik/akswiz/internal/testing"
)

func TestFormatter_Format(t *testing.T) {
	estimate := NewCalculator().Calculate(testutil.DemoConfig())
	output := NewFormatter().Format(estimate)

	for _, check := range []string{
		"AKS Cost Estimate",
		"demo",
		"eastus",
		"System pool",
		"Pool pool1",
		"D4s_v3",
		"Container Insights",
		"660/mo",
		"Annual estimate: $7920",
	} {
		assert.Contains(t, output, check)
	}

	// every box line has the same display width
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		if strings.HasPrefix(line, "│") {
			assert.Equal(t, 63, len([]rune(line)), "line %q", line)
		}
	}
}

func TestFormatter_Format_EmptyName(t *testing.T) {
	output := NewFormatter().Format(NewCalculator().Calculate(testutil.EmptyConfig()))
	assert.Contains(t, output, "Cluster: -")
}

func TestFormatter_FormatCompact(t *testing.T) {
	estimate := &Estimate{ClusterName: "dev", Region: "westus", Total: 240}
	assert.Equal(t, "dev (westus): $240/mo ($2880/yr)", NewFormatter().FormatCompact(estimate))
}

func TestFormatter_FormatJSON(t *testing.T) {
	estimate := NewCalculator().Calculate(testutil.FullConfig())
	output := NewFormatter().FormatJSON(estimate)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(output), &parsed))
	assert.Equal(t, "prod", parsed["cluster_name"])
	assert.EqualValues(t, 2625, parsed["total"])
	assert.EqualValues(t, 2625*12, parsed["annual"])
	assert.EqualValues(t, 750, parsed["multi_region"])
	assert.NotEmpty(t, parsed["items"])
}

func TestFormatter_FormatJSON_NoItems(t *testing.T) {
	output := NewFormatter().FormatJSON(&Estimate{})
	assert.Contains(t, output, `"items": []`)
}

func TestBoxLine_Truncates(t *testing.T) {
	line := boxLine(strings.Repeat("x", 100), 20)
	assert.Equal(t, 20, len([]rune(strings.TrimSuffix(line, "\n"))))
}
