package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/microbiomedata/nmdc-orcid-creditor/internal/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup(&buf, "PROD", "warn")

	logger.Info().Msg("dropped")
	logger.Warn().Str("orcid_id", "0000-0001-2345-6789").Msg("kept")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	require.Equal(t, "warn", entry["level"])
	require.Equal(t, "kept", entry["message"])
	require.Equal(t, "0000-0001-2345-6789", entry["orcid_id"])
}

func TestSetup_DefaultContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logging.Setup(&buf, "PROD", "not-a-level")

	zerolog.Ctx(context.Background()).Info().Msg("from context")
	require.Contains(t, buf.String(), "from context")
}

func TestSetup_ConsoleInDev(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.Setup(&buf, "dev", "debug")

	logger.Debug().Msg("hello")
	require.Contains(t, buf.String(), "hello")
	require.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}
