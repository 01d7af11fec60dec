package telemetry

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClientOptOut(t *testing.T) {
	enabled := true
	for _, value := range []string{"1", "yes"} {
		t.Setenv(OptOutEnvVar, value)

		client := NewClient("1.0.0", &enabled)

		assert.IsType(t, &NoOpClient{}, client, "opt-out value %q", value)
	}
}

func TestNewClientTelemetryDisabledInSettings(t *testing.T) {
	disabled := false

	client := NewClient("1.0.0", &disabled)

	assert.IsType(t, &NoOpClient{}, client)
}

func TestNewClientNilTelemetryDefaultsToDisabled(t *testing.T) {
	t.Setenv(OptOutEnvVar, "")

	client := NewClient("1.0.0", nil)

	assert.IsType(t, &NoOpClient{}, client)
}

func TestNoOpClientMethods(_ *testing.T) {
	client := &NoOpClient{}

	client.TrackOperation(nil, "")
	client.TrackOperation(&cobra.Command{Use: "craifter"}, "playback")
	client.Close()
}

func TestPostHogClientWithoutBackend(_ *testing.T) {
	client := &PostHogClient{machineID: "test-id"}

	// None of these may panic with a nil internal client.
	client.TrackOperation(nil, "playback")
	client.TrackOperation(&cobra.Command{Use: "craifter"}, "")
	client.TrackOperation(&cobra.Command{Use: "craifter"}, "playback")
	client.Close()
}

func TestFlagNames(t *testing.T) {
	t.Parallel()

	cmd := &cobra.Command{Use: "craifter"}
	cmd.Flags().String("root", "", "")
	cmd.Flags().String("shell", "", "")
	cmd.Flags().Bool("confirm", false, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--root", "/secret/path", "--confirm"}))

	flags := FlagNames(cmd)

	assert.ElementsMatch(t, []string{"root", "confirm"}, flags)
	assert.NotContains(t, flags, "/secret/path")
}
