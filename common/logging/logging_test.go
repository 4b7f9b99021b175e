package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLogger(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	logger := NewJSONLogger(&buf)
	logger.Info("generated sequence", "count", 3)

	const expected = `{"count":3,"level":"info","msg":"generated sequence"}` + "\n"
	require.Equal(expected, buf.String())

	buf.Reset()
	logger.With("generator", "lcg").Debug("reseeded")
	require.Equal(`{"generator":"lcg","level":"debug","msg":"reseeded"}`+"\n", buf.String())
}

func TestLevelAndFormatFlags(t *testing.T) {
	require := require.New(t)

	var lvl Level
	require.NoError(lvl.Set("warn"))
	require.Equal(LevelWarn, lvl)
	require.Equal("WARN", lvl.String())
	require.Error(lvl.Set("verbose"))

	var f Format
	require.NoError(f.Set("json"))
	require.Equal(FmtJSON, f)
	require.Equal("JSON", f.String())
	require.Error(f.Set("xml"))
}

func TestInitialize(t *testing.T) {
	require := require.New(t)

	// Loggers obtained before initialization must start emitting afterwards.
	early := GetLogger("randtest")
	quiet := GetLogger("history/store")

	var buf bytes.Buffer
	err := Initialize(&buf, FmtJSON, LevelInfo, map[string]Level{
		"history": LevelError,
	})
	require.NoError(err, "Initialize")
	require.Error(Initialize(&buf, FmtJSON, LevelInfo, nil), "second Initialize must fail")

	early.Info("suite finished", "passed", 3)
	quiet.Info("record stored")
	early.Debug("filtered by default level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(lines, 1, "only the info entry from the unrestricted module is expected")

	var entry map[string]interface{}
	require.NoError(json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal("suite finished", entry["msg"])
	require.Equal("randtest", entry["module"])
	require.EqualValues(3, entry["passed"])
	require.Contains(entry, "ts")
	require.Contains(entry, "caller")
}
