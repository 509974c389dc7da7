package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"oarc-decorators/internal/config"
	"oarc-decorators/pkg/handle"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  handle.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := app.Settings()
			return app.render(s, func() error {
				data, err := s.YAML()
				if err != nil {
					return wrapWithSentinel(ErrRenderOutputFailed, err, "failed to render settings")
				}
				app.Printer.Plain(strings.TrimRight(string(data), "\n"))
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the default config file path",
		Args:  handle.Args(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return wrapWithSentinel(ErrLoadConfigFailed, err, "cannot determine the home directory")
			}
			app.Printer.Plain(path)
			return nil
		},
	})

	return cmd
}
