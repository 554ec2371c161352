package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

type rootOptions struct {
	projectDir string
	configFile string
}

// projectDirFor picks the project directory: the flag, then the hook payload
// cwd, then the process working directory.
func (o *rootOptions) projectDirFor(payloadCWD string) (string, error) {
	for _, candidate := range []string{o.projectDir, payloadCWD} {
		if strings.TrimSpace(candidate) != "" {
			return candidate, nil
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("resolve working directory: %w", err)
	}
	return wd, nil
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "coderbrain",
		Short:         "Mini-CoderBrain: session memory hooks for coding assistants",
		Long:          "coderbrain keeps a project's session memory in plain files. Its hook subcommands inject memory-bank context at session start, a status footer on every turn, and append a session update when a busy session stops.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().StringVar(&opts.projectDir, "project-dir", "", "Project directory holding .claude/ (default: hook payload cwd, then working directory)")
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default: <project>/.claude/coderbrain.toml)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newHookCmd(opts),
		newStatusCmd(opts),
		newSyncCmd(opts),
		newProfileCmd(opts),
		newConfigCmd(opts),
	)

	return rootCmd
}
