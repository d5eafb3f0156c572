package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rune-lang/rune/internal/build"
	rerrors "github.com/rune-lang/rune/internal/errors"
	"github.com/rune-lang/rune/internal/parser"
)

func TestWriteVersion(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVersion(&buf, "rune", false))
	assert.Contains(t, buf.String(), "rune v"+Version)
	assert.Contains(t, buf.String(), "Platform: ")

	buf.Reset()
	require.NoError(t, WriteVersion(&buf, "rune", true))

	var doc struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "rune", doc.Tool)
	assert.Equal(t, Version, doc.VersionInfo.Version)
}

func TestNewLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, logrus.InfoLevel, NewLogger(&buf, false, false).GetLevel())
	assert.Equal(t, logrus.DebugLevel, NewLogger(&buf, true, false).GetLevel())
	assert.Equal(t, logrus.WarnLevel, NewLogger(&buf, false, true).GetLevel())
	assert.Equal(t, logrus.DebugLevel, NewLogger(&buf, true, true).GetLevel())

	log := NewLogger(&buf, false, true)
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestDiagnoseParseError(t *testing.T) {
	src := "let a = 1\nlet b = @\n"
	_, err := parser.ParseString(src)
	require.Error(t, err)

	d := Diagnose("main.rn", src, err)
	assert.Equal(t, "main.rn:2:9: error (P001): Unexpected character `@`", d.Header)
	assert.Equal(t, "1 | let a = 1\n2 | let b = @\n  |         ^\n", d.Snippet)
}

func TestDiagnoseKeepsDirectory(t *testing.T) {
	_, err := parser.ParseString("(1")
	require.Error(t, err)

	a := Diagnose(filepath.Join("src", "a", "main.rn"), "(1", err)
	b := Diagnose(filepath.Join("src", "b", "main.rn"), "(1", err)
	assert.True(t, strings.HasPrefix(a.Header, filepath.Join("src", "a", "main.rn")+":1:3: "))
	assert.NotEqual(t, a.Header, b.Header)
}

func TestDiagnoseToolError(t *testing.T) {
	err := rerrors.IO("read source", errors.New("denied"))
	d := Diagnose("main.rn", "", err)
	assert.Equal(t, "main.rn: error (C002): IO error: read source: denied", d.Header)
	assert.Empty(t, d.Snippet)

	d = Diagnose("main.rn", "", errors.New("plain"))
	assert.Equal(t, "main.rn: error: plain", d.Header)
}

func TestPrintDiagnosticsSplitsBuildFailures(t *testing.T) {
	_, errA := parser.ParseString("1 +")
	_, errB := parser.ParseString("(1")
	err := errors.Join(build.ErrBuildFailed,
		&build.FileError{Path: "a.rn", Source: "1 +", Err: errA},
		&build.FileError{Path: "b.rn", Source: "(1", Err: errB},
	)

	var buf bytes.Buffer
	NewPrinter(&buf).PrintDiagnostics("", "", err)

	out := buf.String()
	assert.Contains(t, out, "a.rn:1:4: error (P003): Unexpected end of input")
	assert.Contains(t, out, "b.rn:1:3: error (P005): Expected `)` after `expression`")
}

func TestPrinterWithoutTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.Section("Build")
	p.Value("files", 3)
	p.Success("done")
	p.Warning("careful")
	p.Error("broken")

	assert.Equal(t, "Build\n  files:       3\nok done\nwarning: careful\nerror: broken\n", buf.String())
}
