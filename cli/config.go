package cli

import (
	"errors"
	"fmt"
	"io"

	yaml "github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/byte4ever/multipush/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or adjust the persisted configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration record",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := prodDeps()
		if err != nil {
			return err
		}

		cfg, err := loadOrExplain(d)
		if err != nil {
			return err
		}

		return printConfig(cmd.OutOrStdout(), cfg)
	},
}

var configSetAccountCmd = &cobra.Command{
	Use:   "set-account <platform> <account>",
	Short: "Change one platform's account and regenerate its URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := prodDeps()
		if err != nil {
			return err
		}

		return mutateConfig(d, func(cfg *config.Config) error {
			return cfg.SetAccount(
				d.reg, args[0], args[1],
			)
		})
	},
}

var configEnableCmd = &cobra.Command{
	Use:   "enable <platform>",
	Short: "Enable a configured platform as a push destination",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := prodDeps()
		if err != nil {
			return err
		}

		return mutateConfig(d, func(cfg *config.Config) error {
			return cfg.SetEnabled(args[0], true)
		})
	},
}

var configDisableCmd = &cobra.Command{
	Use:   "disable <platform>",
	Short: "Disable a configured platform",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := prodDeps()
		if err != nil {
			return err
		}

		return mutateConfig(d, func(cfg *config.Config) error {
			return cfg.SetEnabled(args[0], false)
		})
	},
}

// loadOrExplain loads the record and turns ErrNoConfig
// into guidance toward init.
func loadOrExplain(d deps) (*config.Config, error) {
	cfg, err := config.Load(d.dir)
	if err != nil {
		if errors.Is(err, config.ErrNoConfig) {
			return nil, errors.New(
				"no configuration found, run \"multipush init\" first",
			)
		}

		return nil, err
	}

	return cfg, nil
}

// mutateConfig applies fn to the loaded record and
// persists the result atomically.
func mutateConfig(
	d deps,
	fn func(*config.Config) error,
) error {
	cfg, err := loadOrExplain(d)
	if err != nil {
		return err
	}

	if err := fn(cfg); err != nil {
		return err
	}

	return config.Save(d.dir, cfg)
}

// printConfig dumps the record as YAML, the same shape
// it is persisted in.
func printConfig(out io.Writer, cfg *config.Config) error {
	by, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	fmt.Fprint(out, string(by))

	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetAccountCmd)
	configCmd.AddCommand(configEnableCmd)
	configCmd.AddCommand(configDisableCmd)

	rootCmd.AddCommand(configCmd)
}
