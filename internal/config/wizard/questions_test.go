package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imamik/akswiz/internal/config"
	"github.com/imamik/akswiz/internal/session"
	testutil "github.com/imamik/akswiz/internal/testing"
)

func TestValidators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fn      func(string) error
		input   string
		wantErr error
	}{
		{"required ok", required, "x", nil},
		{"required blank", required, "  ", errRequired},
		{"cluster name ok", validateClusterName, "my-aks-1", nil},
		{"cluster name empty", validateClusterName, "", errRequired},
		{"cluster name underscore", validateClusterName, "my_cluster", errClusterNameInvalid},
		{"version wildcard", validateVersion, "1.29.x", nil},
		{"version bad", validateVersion, "latest", errVersionInvalid},
		{"quantity cpu", validateQuantity, "250m", nil},
		{"quantity memory", validateQuantity, "256Mi", nil},
		{"quantity bad", validateQuantity, "lots", errQuantityInvalid},
		{"utilization ok", validateUtilization, "70", nil},
		{"utilization step", validateUtilization, "72", errUtilizationInvalid},
		{"utilization high", validateUtilization, "95", errUtilizationInvalid},
		{"utilization text", validateUtilization, "high", errNotANumber},
		{"range ok", intBetween(1, 10), "10", nil},
		{"range low", intBetween(1, 10), "0", errOutOfRange},
		{"range text", intBetween(1, 10), "ten", errNotANumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.fn(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGroupsFor(t *testing.T) {
	t.Parallel()

	cfg := testutil.FullConfig()
	a := FromConfig(cfg)
	for _, step := range session.Steps {
		groups := groupsFor(step, a, cfg)
		switch step {
		case session.StepTemplates, session.StepDeploy, session.StepGitHub:
			assert.Nil(t, groups, "step %s", step)
		default:
			assert.NotEmpty(t, groups, "step %s", step)
		}
	}
}

func TestReviewOptions(t *testing.T) {
	t.Parallel()

	opts := reviewOptions()
	assert.Equal(t, destinationSave, opts[0].Value)
	assert.Equal(t, destinationCancel, opts[len(opts)-1].Value)
	assert.Equal(t, string(session.StepAssessment), opts[1].Value)
	for _, o := range opts {
		assert.NotEqual(t, string(session.StepWelcome), o.Value)
		assert.NotEqual(t, string(session.StepReview), o.Value)
	}
}

func TestReviewSummary(t *testing.T) {
	t.Parallel()

	empty := ReviewSummary(config.Default())
	assert.Contains(t, empty, "✗ Subscription ID: Subscription ID is required")
	assert.Contains(t, empty, "akswiz generate` will refuse")
	assert.Contains(t, empty, "Estimated cost: $")

	full := testutil.FullConfig()
	full.SubscriptionID = "sub"
	summary := ReviewSummary(full)
	assert.Contains(t, summary, "✓ Cluster Name")
	assert.NotContains(t, summary, "will refuse")
}
