package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// resetAfter restores the default logger configuration once the test is
// done, since Configure mutates package and zerolog globals.
func resetAfter(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Configure(Config{Level: InfoLevel})
	})
}

func TestConfigureFiltersBelowLevel(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	Configure(Config{Level: WarnLevel, Output: &buf})

	Info().Msg("hidden message")
	Warn().Msg("visible message")

	out := buf.String()
	require.NotContains(t, out, "hidden message")
	require.Contains(t, out, "visible message")
	require.Contains(t, out, `"level":"warn"`)
}

func TestConfigureDebugLevel(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	Configure(Config{Level: DebugLevel, Output: &buf})

	Debug().Str("key", "value").Msg("debug message")

	out := buf.String()
	require.Contains(t, out, "debug message")
	require.Contains(t, out, `"key":"value"`)
}

func TestConfigureUnknownLevelDefaultsToInfo(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	Configure(Config{Level: LogLevel("chatty"), Output: &buf})

	Debug().Msg("hidden message")
	Info().Msg("visible message")

	out := buf.String()
	require.NotContains(t, out, "hidden message")
	require.Contains(t, out, "visible message")
}

func TestConfigurePretty(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Pretty: true, Output: &buf})

	Info().Msg("console message")

	out := buf.String()
	require.Contains(t, out, "console message")
	require.NotContains(t, out, `"message":"console message"`, "pretty output is not JSON")
}

func TestWithField(t *testing.T) {
	resetAfter(t)
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})

	WithField("component", "registrar").Info().Msg("tagged")

	out := buf.String()
	require.Contains(t, out, `"component":"registrar"`)
	require.Contains(t, out, "tagged")
}
