package log

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerLevelByEnv(t *testing.T) {
	require.Equal(t, zerolog.DebugLevel, NewLoggerTo(&bytes.Buffer{}, "dev").GetLevel())
	require.Equal(t, zerolog.InfoLevel, NewLoggerTo(&bytes.Buffer{}, "prod").GetLevel())
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	logger := Component(NewLoggerTo(&buf, "prod"), "storage")
	logger.Info().Msg("hello")
	require.Contains(t, buf.String(), `"component":"storage"`)
	require.Contains(t, buf.String(), `"message":"hello"`)
}
