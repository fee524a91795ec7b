package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcnbt "github.com/Tnze/go-mc/nbt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type hut struct {
	SizeX int16 `nbt:"size_x"`
	SizeY int16 `nbt:"size_y"`
	SizeZ int16 `nbt:"size_z"`
}

func writeHut(t *testing.T, path string, h hut) {
	t.Helper()
	b, err := mcnbt.Marshal(h)
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, b, 0644))
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp(&out)
	app.ExitErrHandler = func(*cli.Context, error) {}
	err := app.RunContext(context.Background(), append([]string{"blueprintcheck", "--config", ""}, args...))
	return out.String(), err
}

func exitCode(err error) int {
	if coder, ok := err.(cli.ExitCoder); ok {
		return coder.ExitCode()
	}
	return 0
}

func TestCheckCommand(t *testing.T) {
	root := t.TempDir()
	writeHut(t, filepath.Join(root, "huts", "hut1.blueprint"), hut{4, 3, 4})
	writeHut(t, filepath.Join(root, "huts", "hut2.blueprint"), hut{4, 3, 4})

	out, err := run(t, "check", root)
	require.NoError(t, err)
	assert.Equal(t, "checked 2 file(s) in 1 group(s): ok\n", out)

	writeHut(t, filepath.Join(root, "huts", "hut4.blueprint"), hut{4, 9, 4})
	out, err = run(t, "--max-level", "3", root)
	require.Error(t, err)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, out, "LevelOutOfRange")
	assert.Contains(t, out, "LevelGap")
	assert.Contains(t, out, "DimensionMismatch")
	assert.True(t, strings.HasSuffix(out, "3 failure(s)\n"), out)
}

func TestCheckCommandLevelFlags(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"hut1", "hut2", "hut3", "hut4"} {
		writeHut(t, filepath.Join(root, name+".blueprint"), hut{4, 3, 4})
	}

	for _, args := range [][]string{
		{"check", "--max-level", "3", root},
		{"--max-level", "3", "check", root},
	} {
		out, err := run(t, args...)
		assert.Equal(t, 1, exitCode(err), args)
		assert.Contains(t, out, "must have a level number in the range 1..3, found 4", args)
	}

	out, err := run(t, "--max-level", "3", "check", "--max-level", "4", root)
	require.NoError(t, err)
	assert.Equal(t, "checked 4 file(s) in 1 group(s): ok\n", out)
}

func TestCheckCommandConfigErrors(t *testing.T) {
	_, err := run(t, "--min-level", "4", "--max-level", "2", t.TempDir())
	assert.Equal(t, 2, exitCode(err))

	_, err = run(t, "check", filepath.Join(t.TempDir(), "missing"))
	assert.Equal(t, 2, exitCode(err))
}

func TestDumpCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hut1.blueprint")
	writeHut(t, path, hut{4, 3, 4})

	out, err := run(t, "dump", path)
	require.NoError(t, err)
	assert.Equal(t, "TAG_Compound: 3 entries\n"+
		"  TAG_Short(\"size_x\"): 4\n"+
		"  TAG_Short(\"size_y\"): 3\n"+
		"  TAG_Short(\"size_z\"): 4\n", out)

	_, err = run(t, "dump")
	assert.Equal(t, 2, exitCode(err))
}
