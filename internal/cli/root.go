// Package cli wires the har-formatter commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/cnharrison/har-formatter/internal/config"
	"github.com/cnharrison/har-formatter/internal/har"
	"github.com/cnharrison/har-formatter/internal/logging"
	"github.com/cnharrison/har-formatter/internal/render"
)

var errNoInput = errors.New("no input: pass a HAR file or pipe one on stdin")

// options is shared by the root command and its subcommands
type options struct {
	cfgFile string
	viper   *viper.Viper
	cfg     *config.Config
	cleanup func() error
}

// NewRootCommand builds the command tree with its own configuration state
func NewRootCommand() *cobra.Command {
	root, _ := newRootCommand()
	return root
}

func newRootCommand() (*cobra.Command, *options) {
	o := &options{viper: config.New()}

	root := &cobra.Command{
		Use:   "har-formatter [file]",
		Short: "Pretty-print the entries of an HTTP Archive (HAR) file",
		Long: `har-formatter reads a HAR capture and prints every recorded request with
its status, start time, duration, headers and response content. JSON bodies
are re-indented; anything else is shown as recorded.

Examples:
  # print a capture
  har-formatter session.har

  # read from stdin, emit JSON
  cat session.har | har-formatter -o json

  # browse interactively
  har-formatter view session.har`,
		Args:               cobra.MaximumNArgs(1),
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  o.setup,
		PersistentPostRunE: o.teardown,
		RunE:               o.runPrint,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&o.cfgFile, "config", "", "config file (default is $HOME/.har-formatter.yaml)")
	flags.StringP("output", "o", render.OutputText, "output format (text, json, yaml)")
	flags.String("locale", har.DefaultLocale, "locale used for start times, e.g. en-GB or de")
	flags.String("timezone", "", "IANA time zone for start times (default local time)")
	flags.Bool("markup", false, "reindent HTML and XML bodies in text output")
	flags.Bool("color", false, "highlight JSON blocks in text output")
	flags.String("log-level", logging.DefaultConfig().Level, "log level (debug, info, warn, error)")
	flags.String("log-file", "", "write logs to a rotating file instead of stderr")

	bindings := map[string]string{
		config.KeyOutput:   "output",
		config.KeyLocale:   "locale",
		config.KeyTimezone: "timezone",
		config.KeyMarkup:   "markup",
		config.KeyColor:    "color",
		config.KeyLogLevel: "log-level",
		config.KeyLogFile:  "log-file",
	}
	for key, name := range bindings {
		_ = o.viper.BindPFlag(key, flags.Lookup(name))
	}

	root.AddCommand(newViewCommand(o))
	return root, o
}

// Execute runs the command tree and reports failures on stderr
func Execute() error {
	root, o := newRootCommand()
	err := execute(root, o)
	if err != nil {
		ReportError(root.ErrOrStderr(), err)
	}
	return err
}

// execute runs root and always releases the log file. PersistentPostRunE
// only runs after a successful RunE.
func execute(root *cobra.Command, o *options) error {
	err := root.Execute()
	if closeErr := o.close(); err == nil {
		err = closeErr
	}
	return err
}

// ReportError prints the user-facing form of err. HAR parse failures all
// collapse into one fixed message.
func ReportError(w io.Writer, err error) {
	if errors.Is(err, har.ErrInvalidFormat) {
		fmt.Fprintln(w, har.InvalidFormatMessage)
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

func (o *options) setup(cmd *cobra.Command, args []string) error {
	if err := config.ReadFile(o.viper, o.cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(o.viper)
	if err != nil {
		return err
	}
	o.cfg = cfg

	// the viewer owns the terminal, so logs only go to a file there
	var fallback io.Writer = cmd.ErrOrStderr()
	if cmd.Name() == viewCommandName {
		fallback = io.Discard
	}
	cleanup, err := logging.Setup(cfg.Logging, fallback)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	o.cleanup = cleanup
	return nil
}

func (o *options) teardown(cmd *cobra.Command, args []string) error {
	return o.close()
}

// close releases logging resources once; later calls are no-ops
func (o *options) close() error {
	if o.cleanup == nil {
		return nil
	}
	cleanup := o.cleanup
	o.cleanup = nil
	return cleanup()
}

func (o *options) formatter() *har.Formatter {
	return har.NewFormatter(har.WithStartTimeFormatter(
		har.NewStartTimeFormatter(o.cfg.Locale, o.cfg.Location),
	))
}

func (o *options) runPrint(cmd *cobra.Command, args []string) error {
	printer, err := render.NewPrinter(cmd.OutOrStdout(), o.cfg.Output, render.Options{
		Markup: o.cfg.Markup,
		Color:  o.cfg.Color,
	})
	if err != nil {
		return err
	}

	path := inputPath(args)
	if path == "" && isTerminal(cmd.InOrStdin()) {
		return errNoInput
	}
	text, err := har.ReadInput(path, cmd.InOrStdin())
	if err != nil {
		return err
	}

	summaries, err := o.formatter().Format(text)
	if err != nil {
		// users only ever see the fixed message; details are for debug logs
		logrus.WithError(err).WithField("input", inputName(path)).Debug("could not format HAR")
		return err
	}
	logrus.WithFields(logrus.Fields{
		"input":   inputName(path),
		"entries": len(summaries),
		"output":  o.cfg.Output,
	}).Info("formatted HAR")

	return printer.Print(summaries)
}

func inputPath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func inputName(path string) string {
	if path == "" || path == "-" {
		return "stdin"
	}
	return path
}

// isTerminal reports whether r is an interactive terminal rather than a pipe
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}
