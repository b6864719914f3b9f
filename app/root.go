package app

import (
	"fmt"
	"os"
	"runtime"

	"github.com/IrineSistiana/listdemo/internal/mlog"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	rootCmd *cobra.Command
)

func init() {
	rootCmd = &cobra.Command{
		Use:           "listdemo",
		Short:         "Run doubly-linked list demonstrations and scenarios",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	logLvl := rootCmd.PersistentFlags().String("log-lvl", "info", "log level [fatal|error|warn|info|debug]")
	GOMAXPROCS := rootCmd.PersistentFlags().Int("gomaxprocs", 0, "set runtime.GOMAXPROCS()")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *GOMAXPROCS > 0 {
			runtime.GOMAXPROCS(*GOMAXPROCS)
		}
		lvl, err := zerolog.ParseLevel(*logLvl)
		if err != nil {
			return fmt.Errorf("invalid log lvl [%s]. %w", *logLvl, err)
		}
		mlog.SetLvl(lvl)
		return nil
	}
}

func RootCmd() *cobra.Command {
	return rootCmd
}

// ExitSignals returns the signals that should stop the program.
func ExitSignals() []os.Signal {
	return exitSig
}
