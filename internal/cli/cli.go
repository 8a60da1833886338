package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/guillerg01/date-checker/internal/calendar"
	"github.com/guillerg01/date-checker/internal/checker"
	"github.com/guillerg01/date-checker/internal/citas"
	"github.com/guillerg01/date-checker/internal/config"
	"github.com/guillerg01/date-checker/internal/logger"
	"github.com/guillerg01/date-checker/internal/notifier"
	"github.com/guillerg01/date-checker/internal/poller"
	"github.com/guillerg01/date-checker/internal/server"
	"github.com/guillerg01/date-checker/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagFormat  string
	flagStart   string
	flagEnd     string
	flagCutoff  string
	flagURL     string
	flagDataDir string
	flagPoll    bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "date-checker",
		Short: "Monitor the consulate page for dates past the cutoff",
		Long: `Monitors a Spanish consulate announcement page for calendar dates later
than a configured cutoff, polls the appointment widget for free slots,
and sends email alerts when new dates appear.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "config.yaml", "Path to the YAML config file")

	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newCitasCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newTestEmailCmd())

	return cmd
}

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run a single page check and print the result",
		RunE:  runCheck,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagURL, "url", "", "Override the target page URL")
	cmd.Flags().StringVar(&flagCutoff, "cutoff", "", "Override the cutoff date (YYYY-MM-DD)")
	return cmd
}

func newCitasCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "citas",
		Short: "Fetch appointment availability for a date window",
		RunE:  runCitas,
	}
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringVar(&flagStart, "start", "", "Window start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flagEnd, "end", "", "Window end date (YYYY-MM-DD)")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the checks over HTTP",
		RunE:  runServe,
	}
	cmd.Flags().BoolVar(&flagPoll, "poll", false, "Also run the scheduled alert check in the background")
	return cmd
}

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll the page on a schedule and alert on new dates",
		RunE:  runWatch,
	}
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "", "Override the data directory for the notified log")
	return cmd
}

func newTestEmailCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test-email",
		Short: "Send a test alert email",
		RunE:  runTestEmail,
	}
}

// loadConfig loads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagURL != "" {
		cfg.TargetURL = flagURL
	}
	if flagCutoff != "" {
		cfg.CutoffDate = flagCutoff
		if _, err := cfg.Cutoff(); err != nil {
			return nil, fmt.Errorf("invalid --cutoff %q: %w", flagCutoff, err)
		}
	}
	if flagDataDir != "" {
		cfg.DataDir = flagDataDir
	}
	logger.SetDefault(logger.New(logger.ParseLevel(cfg.LogLevel), os.Stderr))
	return cfg, nil
}

func newChecker(cfg *config.Config) (*checker.Checker, error) {
	cutoff, err := cfg.Cutoff()
	if err != nil {
		return nil, err
	}
	return checker.New(cfg.TargetURL, cutoff), nil
}

// newNotifier builds the configured email notifier, falling back to a dry
// run when no Web3Forms credentials are present.
func newNotifier(cfg *config.Config) notifier.Notifier {
	if cfg.Web3FormsAccessKey == "" || cfg.AlertRecipient == "" {
		logger.Warn("web3forms credentials not configured, alerts will be logged only", nil)
		return notifier.NewDryRunNotifier()
	}
	n, err := notifier.NewWeb3FormsNotifier(cfg.Web3FormsAccessKey, cfg.AlertRecipient, cfg.AlertFromName, cfg.AlertFromEmail)
	if err != nil {
		logger.Warn("invalid notifier configuration, alerts will be logged only", logger.Fields{"error": err.Error()})
		return notifier.NewDryRunNotifier()
	}
	return n
}

func newAlerter(cfg *config.Config) (*checker.Alerter, error) {
	c, err := newChecker(cfg)
	if err != nil {
		return nil, err
	}
	var store *storage.Store
	if cfg.DedupeAlerts {
		store, err = storage.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing storage: %w", err)
		}
	}
	return &checker.Alerter{Checker: c, Notifier: newNotifier(cfg), Store: store}, nil
}

func newCitasClient(cfg *config.Config) *citas.Client {
	return citas.NewClient(cfg.BookingBaseURL, cfg.BookingPublicKey, cfg.BookingServiceID, cfg.BookingAgendaID)
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat, FormatText, FormatJSON)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	c, err := newChecker(cfg)
	if err != nil {
		return err
	}

	res := c.Check()
	if err := WriteCheckResult(os.Stdout, res, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	if !res.Success {
		os.Exit(ExitError)
	}
	return nil
}

func runCitas(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat, FormatText, FormatJSON, FormatICS)
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	start, end := flagStart, flagEnd
	if start == "" {
		start = cfg.DefaultStartDate
	}
	if end == "" {
		end = cfg.DefaultEndDate
	}

	summary, err := newCitasClient(cfg).FetchAvailability(start, end)
	if err != nil {
		return fmt.Errorf("fetching availability: %w", err)
	}

	if format == FormatICS {
		fmt.Fprint(os.Stdout, calendar.GenerateICS(summary))
		return nil
	}
	return WriteAvailability(os.Stdout, summary, format)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	alerter, err := newAlerter(cfg)
	if err != nil {
		return err
	}
	if flagPoll {
		p := poller.New(cfg.PollSchedule, func() { alerter.Run() })
		if err := p.Start(); err != nil {
			return fmt.Errorf("starting poller: %w", err)
		}
		defer p.Stop()
	}

	srv := server.New(cfg, alerter.Checker, alerter, newCitasClient(cfg), alerter.Notifier)
	return srv.ListenAndServe()
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	alerter, err := newAlerter(cfg)
	if err != nil {
		return err
	}

	p := poller.New(cfg.PollSchedule, func() {
		res := alerter.Run()
		if res.Alert {
			fmt.Println(res.Message)
		}
	})
	if err := p.Start(); err != nil {
		return fmt.Errorf("starting poller: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Watching %s on schedule %q. Press Ctrl+C to stop.\n", cfg.TargetURL, cfg.PollSchedule)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	p.Stop()
	return nil
}

func runTestEmail(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := newNotifier(cfg).SendTest(); err != nil {
		return fmt.Errorf("sending test email: %w", err)
	}
	fmt.Println("Test email sent.")
	return nil
}

func parseFormat(raw string, allowed ...OutputFormat) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(raw))
	for _, a := range allowed {
		if format == a {
			return format, nil
		}
	}
	names := make([]string, len(allowed))
	for i, a := range allowed {
		names[i] = string(a)
	}
	return "", fmt.Errorf("invalid format: %s (must be one of %s)", raw, strings.Join(names, ", "))
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
