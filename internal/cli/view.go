package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cnharrison/har-formatter/internal/har"
	"github.com/cnharrison/har-formatter/internal/render"
	"github.com/cnharrison/har-formatter/internal/ui"
)

const viewCommandName = "view"

func newViewCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   viewCommandName + " [file]",
		Short: "Browse a HAR file in the terminal",
		Long: `view opens an interactive viewer. Without a file (and with nothing piped
on stdin) it starts on an empty page where HAR text can be pasted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := inputPath(args)

			var text string
			if path != "" || !isTerminal(cmd.InOrStdin()) {
				var err error
				if text, err = har.ReadInput(path, cmd.InOrStdin()); err != nil {
					return err
				}
			}

			logrus.WithField("input", inputName(path)).Info("starting viewer")
			app := ui.NewApplication(o.formatter(), ui.Options{
				Filename: inputName(path),
				Input:    text,
				Render: render.Options{
					Markup: o.cfg.Markup,
				},
			})
			return app.Run()
		},
	}
}
