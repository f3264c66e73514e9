package pusher_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/byte4ever/multipush/pusher"
)

func TestReport_Summary_mixed(t *testing.T) {
	t.Parallel()

	report := pusher.Report{
		Successes: []string{"github"},
		Failures: []pusher.Failure{
			{
				EndpointKey: "gitee",
				Message:     "permission denied",
			},
		},
	}

	got := report.Summary()

	assert.Contains(t, got, "pushed: github")
	assert.Contains(t, got, "gitee: permission denied")
}

func TestReport_Summary_all_succeed(t *testing.T) {
	t.Parallel()

	report := pusher.Report{
		Successes: []string{"github", "gitee"},
	}

	got := report.Summary()

	assert.Contains(t, got, "pushed: github, gitee")
	assert.Contains(t, got, "failed: (none)")
}

func TestReport_Summary_all_fail(t *testing.T) {
	t.Parallel()

	report := pusher.Report{
		Failures: []pusher.Failure{
			{EndpointKey: "github", Message: "timeout"},
			{EndpointKey: "gitee", Message: "denied"},
		},
	}

	got := report.Summary()

	// Both sections are always present.
	assert.Contains(t, got, "pushed: (none)")
	assert.Contains(t, got, "github: timeout")
	assert.Contains(t, got, "gitee: denied")
}

func TestReport_Ok(t *testing.T) {
	t.Parallel()

	assert.True(t, pusher.Report{}.Ok())
	assert.True(t, pusher.Report{
		Successes: []string{"github"},
	}.Ok())
	assert.False(t, pusher.Report{
		Failures: []pusher.Failure{
			{EndpointKey: "gitee", Message: "x"},
		},
	}.Ok())
}
