// Package telemetry reports which router keywords are used. It is opt-in:
// nothing is sent unless settings enable it, and CRAIFTER_TELEMETRY_OPTOUT
// disables it regardless. Arguments and session names are never sent.
package telemetry

import (
	"net"
	"net/http"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/posthog/posthog-go"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// OptOutEnvVar disables telemetry when set to any non-empty value.
const OptOutEnvVar = "CRAIFTER_TELEMETRY_OPTOUT"

const (
	appID     = "craifter-cli"
	eventName = "cli_operation_executed"
)

var (
	// PostHogAPIKey is set at build time for production
	PostHogAPIKey = "phc_development_key"
	// PostHogEndpoint is set at build time for production
	PostHogEndpoint = "https://eu.i.posthog.com"
)

// Client defines the telemetry interface
type Client interface {
	TrackOperation(cmd *cobra.Command, operation string)
	Close()
}

// NoOpClient is used when telemetry is disabled
type NoOpClient struct{}

func (n *NoOpClient) TrackOperation(_ *cobra.Command, _ string) {}
func (n *NoOpClient) Close()                                    {}

// silentLogger suppresses PostHog log output
type silentLogger struct{}

func (silentLogger) Logf(_ string, _ ...interface{})   {}
func (silentLogger) Debugf(_ string, _ ...interface{}) {}
func (silentLogger) Warnf(_ string, _ ...interface{})  {}
func (silentLogger) Errorf(_ string, _ ...interface{}) {}

// PostHogClient is the real telemetry client
type PostHogClient struct {
	client    posthog.Client
	machineID string
	mu        sync.RWMutex
}

// NewClient creates a telemetry client. telemetryEnabled comes from settings;
// nil means not configured and is treated as disabled.
//
//nolint:ireturn // returns NoOpClient or PostHogClient depending on settings
func NewClient(version string, telemetryEnabled *bool) Client {
	if os.Getenv(OptOutEnvVar) != "" {
		return &NoOpClient{}
	}
	if telemetryEnabled == nil || !*telemetryEnabled {
		return &NoOpClient{}
	}

	id, err := machineid.ProtectedID(appID)
	if err != nil {
		return &NoOpClient{}
	}

	// Short timeouts so a slow network never delays exit.
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: 100 * time.Millisecond,
		}).DialContext,
		TLSHandshakeTimeout:   100 * time.Millisecond,
		ResponseHeaderTimeout: 100 * time.Millisecond,
	}

	client, err := posthog.NewWithConfig(PostHogAPIKey, posthog.Config{
		Endpoint:           PostHogEndpoint,
		ShutdownTimeout:    100 * time.Millisecond,
		BatchUploadTimeout: 200 * time.Millisecond,
		Transport:          transport,
		Logger:             silentLogger{},
		DisableGeoIP:       posthog.Ptr(true),
		DefaultEventProperties: posthog.NewProperties().
			Set("cli_version", version).
			Set("os", runtime.GOOS).
			Set("arch", runtime.GOARCH),
	})
	if err != nil {
		return &NoOpClient{}
	}

	return &PostHogClient{
		client:    client,
		machineID: id,
	}
}

// TrackOperation records one routed operation. Only the keyword and the names
// of flags that were set are sent.
func (p *PostHogClient) TrackOperation(cmd *cobra.Command, operation string) {
	if cmd == nil || operation == "" {
		return
	}

	p.mu.RLock()
	id := p.machineID
	c := p.client
	p.mu.RUnlock()

	if c == nil {
		return
	}

	props := posthog.NewProperties().
		Set("command", cmd.CommandPath()).
		Set("operation", operation)

	if flags := FlagNames(cmd); len(flags) > 0 {
		props.Set("flags", strings.Join(flags, ","))
	}

	//nolint:errcheck // best effort
	_ = c.Enqueue(posthog.Capture{
		DistinctId: id,
		Event:      eventName,
		Properties: props,
	})
}

// Close flushes pending events
func (p *PostHogClient) Close() {
	p.mu.RLock()
	c := p.client
	p.mu.RUnlock()

	if c != nil {
		_ = c.Close()
	}
}

// FlagNames returns the names, never the values, of the flags set on cmd.
func FlagNames(cmd *cobra.Command) []string {
	var flags []string
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		flags = append(flags, flag.Name)
	})
	return flags
}
