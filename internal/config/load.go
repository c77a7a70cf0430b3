package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// boundFlags are the flags whose value can also come from qo.yaml or a
// QO_* variable. The viper key equals the flag name.
var boundFlags = []string{
	"output-dir", "output-type", "codec", "limit", "dry-run",
	"verbose", "color", "log", "check", "ffmpeg", "ffprobe",
}

// Load resolves the configuration from, lowest to highest precedence:
// defaults, the config file, QO_* environment variables, and flags set on
// fs. args become the inputs. The result is not validated.
func Load(fs *pflag.FlagSet, args []string) (Config, error) {
	v := viper.New()

	explicit, _ := fs.GetString("config")
	if explicit != "" {
		v.SetConfigFile(explicit)
	} else {
		v.SetConfigName("qo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "qo"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	// QO_OUTPUT_DIR, QO_LIMIT, QO_COLOR, ...
	v.SetEnvPrefix("QO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	for _, name := range boundFlags {
		if err := v.BindPFlag(name, fs.Lookup(name)); err != nil {
			return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	cfg := Config{
		Inputs:      args,
		OutputDir:   v.GetString("output-dir"),
		OutputType:  v.GetString("output-type"),
		Codec:       v.GetString("codec"),
		Limit:       v.GetInt("limit"),
		DryRun:      v.GetBool("dry-run"),
		Verbose:     v.GetBool("verbose"),
		ColorMode:   ColorMode(strings.ToLower(v.GetString("color"))),
		LogFile:     v.GetString("log"),
		CheckOnly:   v.GetBool("check"),
		FFmpegPath:  v.GetString("ffmpeg"),
		FFprobePath: v.GetString("ffprobe"),
		Codecs: CodecTables{
			Defaults: v.GetStringMapString("codecs.defaults"),
			Args:     v.GetStringMapStringSlice("codecs.args"),
			Files:    v.GetStringMapString("codecs.files"),
		},
		ConfigFile: v.ConfigFileUsed(),
	}
	applyNegatedFlags(&cfg, readNegatedFlags(fs))
	return cfg, nil
}
