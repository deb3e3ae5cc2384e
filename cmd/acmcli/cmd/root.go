package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"acmcli/lib/configutil"
	"acmcli/lib/judge"
	"acmcli/lib/keychain"
	"acmcli/lib/scrapers/timus"
	"acmcli/lib/telemetry"

	"github.com/spf13/cobra"
)

// Config is the resolved acmcli.json5 shape; flags override these.
// Booleans are pointers so a file that never mentions them cannot
// clobber the defaults.
type Config struct {
	JudgeID           string `json:"judge_id"`
	Password          string `json:"password"`
	Language          string `json:"language"`
	Locale            string `json:"locale"`
	ShowTags          *bool  `json:"show_tags"`
	ShowAccepted      *bool  `json:"show_ac"`
	SubmitsCount      int    `json:"submits_count"`
	DefaultSourceFile string `json:"default_source_file"`
}

func (c Config) showTags() bool {
	return c.ShowTags != nil && *c.ShowTags
}

func (c Config) showAccepted() bool {
	return c.ShowAccepted == nil || *c.ShowAccepted
}

var (
	flagConfig  string
	flagLocale  string
	flagJudgeID string

	cfg Config
	api judge.Judge
)

var rootCmd = &cobra.Command{
	Use:               "acmcli",
	Short:             "acmcli is a CLI client for the Timus online judge.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "judge locale, en or ru")
	rootCmd.PersistentFlags().StringVarP(&flagJudgeID, "judge-id", "j", "", "judge id to act as")
}

func Execute(ctx context.Context) {
	tel, err := telemetry.SetupFromEnv(ctx, "acmcli")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tel.Shutdown(context.Background())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	cfg = Config{
		Language:          "c",
		SubmitsCount:      1000,
		DefaultSourceFile: "~/acmcli.code",
	}
	if err := readConfig(&cfg); err != nil {
		return err
	}
	if flagJudgeID != "" {
		cfg.JudgeID = flagJudgeID
	}
	if flagLocale != "" {
		cfg.Locale = flagLocale
	}

	client, err := timus.NewClient(timus.ClientOptions{
		Locale: resolveLocale(cfg.Locale),
	})
	if err != nil {
		return err
	}
	api = client

	if cfg.JudgeID != "" {
		return authenticate(cmd.Context())
	}
	return nil
}

func readConfig(cfg *Config) error {
	if flagConfig != "" {
		loaded, err := configutil.ReadConfig[Config](flagConfig)
		if err != nil {
			return fmt.Errorf("read config %s: %w", flagConfig, err)
		}
		mergeConfig(cfg, loaded)
		return nil
	}

	loaded, err := configutil.ReadRecursively[Config]("acmcli.json5")
	if os.IsNotExist(err) {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return nil
		}
		loaded, err = configutil.ReadConfig[Config](filepath.Join(home, ".config", "acmcli.json5"))
		if os.IsNotExist(err) {
			return nil
		}
	}
	if err != nil {
		return err
	}
	mergeConfig(cfg, loaded)
	return nil
}

func mergeConfig(dst *Config, src Config) {
	if src.JudgeID != "" {
		dst.JudgeID = src.JudgeID
	}
	if src.Password != "" {
		dst.Password = src.Password
	}
	if src.Language != "" {
		dst.Language = src.Language
	}
	if src.Locale != "" {
		dst.Locale = src.Locale
	}
	if src.SubmitsCount != 0 {
		dst.SubmitsCount = src.SubmitsCount
	}
	if src.DefaultSourceFile != "" {
		dst.DefaultSourceFile = src.DefaultSourceFile
	}
	if src.ShowTags != nil {
		dst.ShowTags = src.ShowTags
	}
	if src.ShowAccepted != nil {
		dst.ShowAccepted = src.ShowAccepted
	}
}

// boolSetting prefers a flag the user actually passed over the config
// value, so an explicit --<name>=true can override a config-file false.
func boolSetting(cmd *cobra.Command, name string, flagValue, configValue bool) bool {
	if cmd.Flags().Changed(name) {
		return flagValue
	}
	return configValue
}

func resolveLocale(locale string) string {
	if locale == "" {
		locale = os.Getenv("LANG")
	}
	if strings.HasPrefix(strings.ToLower(locale), "ru") {
		return timus.LocaleRussian
	}
	return timus.LocaleEnglish
}

// authenticate restores the session from the keychain when possible and
// falls back to a network login, persisting the fresh auth key.
func authenticate(ctx context.Context) error {
	path, err := keychain.DefaultPath()
	if err != nil {
		return err
	}
	store, err := keychain.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	authKey, err := store.Get(ctx, cfg.JudgeID)
	if err == nil {
		return api.LoginLocal(ctx, cfg.JudgeID, cfg.Password, authKey)
	}
	if err != keychain.ErrNoKey {
		return err
	}

	if err := api.Login(ctx, cfg.JudgeID, cfg.Password); err != nil {
		return err
	}
	authKey, err = api.AuthKey()
	if err != nil {
		return err
	}
	return store.Set(ctx, cfg.JudgeID, authKey)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}
