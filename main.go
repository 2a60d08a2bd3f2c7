package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/karankamboj/scheduling-shows/config"
	"github.com/karankamboj/scheduling-shows/formatter"
	"github.com/karankamboj/scheduling-shows/metrics"
	"github.com/karankamboj/scheduling-shows/models"
	"github.com/karankamboj/scheduling-shows/parser"
	"github.com/karankamboj/scheduling-shows/scheduler"
)

var (
	inputPath    string
	workbookPath string
	studentsPath string
	holidaysPath string
	configPath   string
	format       string
	outputPath   string
	summaryPath  string
	metricsAddr  string
	pushGateway  string
	wait         bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "showsched",
	Short: "Show scheduler - places recurring shows into presentation pods",
	Long: "Show scheduler assigns course show sessions to presentation pods over a " +
		"calendar window, respecting pod capacity, ops-team timing, break spacing, " +
		"and site operating hours.",
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Allocate shows for the given demand input",
	Long:  "Read demand windows from a CSV file or planning workbook, run the allocator, and emit the schedule and summary",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVar(&inputPath, "input", "", "Demand CSV file (course, activity, open date, close date)")
	scheduleCmd.Flags().StringVar(&workbookPath, "workbook", "", "Planning workbook (.xlsx) to extract demand, student caps, and holidays from")
	scheduleCmd.Flags().StringVar(&studentsPath, "students", "", "Student counts CSV file (course, count)")
	scheduleCmd.Flags().StringVar(&holidaysPath, "holidays", "", "Holidays CSV file (one date per line)")
	scheduleCmd.Flags().StringVar(&configPath, "config", "", "Site configuration YAML (pods, hours, durations)")
	scheduleCmd.Flags().StringVar(&format, "format", "text", "Output format: text|json|csv")
	scheduleCmd.Flags().StringVar(&outputPath, "output", "", "Write the schedule as CSV to this path")
	scheduleCmd.Flags().StringVar(&summaryPath, "summary-output", "", "Write the per-window summary as CSV to this path")
	scheduleCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Address to expose Prometheus metrics (e.g., :9090)")
	scheduleCmd.Flags().StringVar(&pushGateway, "push-url", "", "Pushgateway URL to push metrics to (e.g., http://localhost:9091)")
	scheduleCmd.Flags().BoolVar(&wait, "wait", false, "Keep process running after completion to allow for metric scraping")
	scheduleCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(scheduleCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func runSchedule(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	if inputPath == "" && workbookPath == "" {
		return fmt.Errorf("one of --input or --workbook is required")
	}
	validFormats := map[string]bool{"text": true, "json": true, "csv": true}
	if !validFormats[format] {
		return fmt.Errorf("format must be one of: text, json, csv (got: %s)", format)
	}

	if metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.Info().Str("addr", metricsAddr).Msg("metrics server listening")
			if err := http.ListenAndServe(metricsAddr, mux); err != nil {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	rows, students, holidays, err := loadInputs()
	if err != nil {
		return err
	}
	if cfg.Students == nil {
		cfg.Students = make(map[string]int)
	}
	for course, n := range students {
		cfg.Students[course] = n
	}
	if len(holidays) > 0 {
		cfg.Holidays = nil
		for _, h := range holidays {
			cfg.Holidays = append(cfg.Holidays, config.Date(h))
		}
	}

	windows := scheduler.BuildWindows(rows, cfg.Students, cfg.DefaultStudents, cfg.BufferPct)
	logger.Info().
		Int("demand_rows", len(rows)).
		Int("windows", len(windows)).
		Int("pods", len(cfg.Pods)).
		Msg("starting allocation run")

	alloc := scheduler.New(cfg, logger)
	schedule, err := alloc.Run(windows)
	if err != nil {
		return err
	}

	switch format {
	case "json":
		fmt.Print(formatter.FormatJSON(schedule))
	case "csv":
		fmt.Print(formatter.FormatCSV(schedule))
	default: // "text"
		fmt.Print(formatter.FormatDurations(cfg.ShowLengthByPrefix, cfg.DefaultShowLength))
		fmt.Println()
		fmt.Print(formatter.FormatText(schedule))
	}

	if err := exportCSVs(schedule); err != nil {
		return err
	}

	if pushGateway != "" {
		jobName := "show_scheduler"
		if err := push.New(pushGateway, jobName).Gatherer(metrics.Registry).Push(); err != nil {
			logger.Error().Err(err).Msg("error pushing to Pushgateway")
		} else {
			logger.Info().Msg("metrics successfully pushed to Pushgateway")
		}
	}

	if wait && metricsAddr != "" {
		logger.Info().Msg("process kept alive for metric scraping, press Ctrl+C to exit")
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
	} else if metricsAddr != "" && pushGateway == "" {
		// Small delay to allow a final scrape; batch runs should prefer
		// the pushgateway or --wait.
		time.Sleep(100 * time.Millisecond)
	}

	return nil
}

// loadInputs reads demand rows plus optional student counts and holiday
// overrides, from the workbook when given and CSV files otherwise.
func loadInputs() ([]models.DemandRow, map[string]int, []time.Time, error) {
	if workbookPath != "" {
		wb, err := parser.ParseWorkbook(workbookPath)
		if err != nil {
			return nil, nil, nil, err
		}
		var holidays []time.Time
		for _, h := range wb.Holidays {
			d, err := parser.ParseDate(h)
			if err != nil {
				return nil, nil, nil, err
			}
			holidays = append(holidays, d)
		}
		return wb.Rows, wb.Students, holidays, nil
	}

	file, err := os.Open(inputPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open input: %w", err)
	}
	defer file.Close()

	rows, err := parser.ParseDemand(file)
	if err != nil {
		return nil, nil, nil, err
	}

	students := map[string]int{}
	if studentsPath != "" {
		f, err := os.Open(studentsPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open students: %w", err)
		}
		defer f.Close()
		students, err = parser.ParseStudents(f)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	var holidays []time.Time
	if holidaysPath != "" {
		f, err := os.Open(holidaysPath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open holidays: %w", err)
		}
		defer f.Close()
		holidays, err = parser.ParseHolidays(f)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return rows, students, holidays, nil
}

// exportCSVs writes the optional schedule and summary CSV files.
func exportCSVs(schedule *models.Schedule) error {
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		if err := formatter.WriteScheduleCSV(f, schedule); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	if summaryPath != "" {
		f, err := os.Create(summaryPath)
		if err != nil {
			return fmt.Errorf("create summary output: %w", err)
		}
		if err := formatter.WriteSummaryCSV(f, schedule); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}
