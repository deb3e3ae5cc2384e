package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	JudgeID  string `json:"judge_id"`
	Language string `json:"language"`
}

func TestReadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "acmcli.json5")
	require.NoError(t, os.WriteFile(path, []byte(`{
		// base config
		judge_id: "227524AB",
		language: "c++",
	}`), 0o644))

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, "227524AB", cfg.JudgeID)
	require.Equal(t, "c++", cfg.Language)
}

func TestReadConfigLocalOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "acmcli.json5"),
		[]byte(`{judge_id: "227524AB", language: "c++"}`), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "acmcli.local.json5"),
		[]byte(`{language: "go"}`), 0o644))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "acmcli.json5"))
	require.NoError(t, err)
	require.Equal(t, "227524AB", cfg.JudgeID)
	require.Equal(t, "go", cfg.Language)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "acmcli.json5"))
	require.True(t, os.IsNotExist(err))
}

type triStateConfig struct {
	JudgeID string `json:"judge_id"`
	ShowAC  *bool  `json:"show_ac"`
}

func TestReadConfigPointerBooleans(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "acmcli.json5"),
		[]byte(`{judge_id: "227524AB", show_ac: false}`), 0o644))

	// an override that never mentions show_ac must not disturb it
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "acmcli.local.json5"),
		[]byte(`{judge_id: "OTHER"}`), 0o644))
	cfg, err := ReadConfig[triStateConfig](filepath.Join(dir, "acmcli.json5"))
	require.NoError(t, err)
	require.Equal(t, "OTHER", cfg.JudgeID)
	require.NotNil(t, cfg.ShowAC)
	require.False(t, *cfg.ShowAC)

	// an override that does mention it wins, even back to true
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "acmcli.local.json5"),
		[]byte(`{show_ac: true}`), 0o644))
	cfg, err = ReadConfig[triStateConfig](filepath.Join(dir, "acmcli.json5"))
	require.NoError(t, err)
	require.Equal(t, "227524AB", cfg.JudgeID)
	require.NotNil(t, cfg.ShowAC)
	require.True(t, *cfg.ShowAC)
}

func TestReadConfigLocalOnly(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "acmcli.local.json5"),
		[]byte(`{judge_id: "227524AB"}`), 0o644))

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "acmcli.json5"))
	require.NoError(t, err)
	require.Equal(t, "227524AB", cfg.JudgeID)
}
