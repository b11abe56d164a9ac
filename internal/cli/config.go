package cli

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wippyai/knitwit/errors"
)

// EnvPrefix prefixes environment variables that stand in for flags.
const EnvPrefix = "KNITWIT"

// bindConfig fills every flag the user did not set from KNITWIT_* environment
// variables or the config file. Explicit flags always win.
func bindConfig(cmd *cobra.Command, fs afero.Fs, explicit string) error {
	v := viper.New()
	v.SetFs(fs)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	if explicit == "" {
		explicit = os.Getenv(EnvPrefix + "_CONFIG")
	}
	configureConfigFile(v, explicit)

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "bind flags")
	}
	if err := readConfigFile(v, explicit != ""); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			File(v.ConfigFileUsed()).
			Detail("read config").
			Cause(err).
			Build()
	}

	var failed error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || failed != nil || !v.IsSet(f.Name) {
			return
		}
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			vals := v.GetStringSlice(f.Name)
			if len(vals) > 0 {
				failed = sv.Replace(vals)
			}
			return
		}
		if val := fmt.Sprintf("%v", v.Get(f.Name)); val != "" {
			if err := f.Value.Set(val); err != nil {
				failed = fmt.Errorf("flag --%s: %w", f.Name, err)
			}
		}
	})
	if failed != nil {
		return errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, failed, "apply config")
	}
	return nil
}

func configureConfigFile(v *viper.Viper, explicit string) {
	if explicit != "" {
		v.SetConfigFile(explicit)
		return
	}
	v.SetConfigName("knitwit")
	for _, dir := range configSearchDirs() {
		v.AddConfigPath(dir)
	}
}

func readConfigFile(v *viper.Viper, strict bool) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if stderrors.As(err, &notFound) && !strict {
			return nil
		}
		return err
	}
	return nil
}

func configSearchDirs() []string {
	dirs := []string{"."}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "knitwit"))
	} else if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "knitwit"))
	}
	return dirs
}
