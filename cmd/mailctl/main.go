package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/edvin/mailroute/internal/config"
	"github.com/edvin/mailroute/internal/logging"
	"github.com/edvin/mailroute/internal/mailctl"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := logging.NewLogger(cfg)

	switch os.Args[1] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ExitOnError)
		file := fs.String("f", "", "Path to routing definition YAML file (required)")
		fs.Parse(os.Args[2:])

		if *file == "" {
			fmt.Fprintln(os.Stderr, "Error: -f flag is required")
			fs.Usage()
			os.Exit(1)
		}

		n, err := mailctl.Validate(cfg, *file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%s: %d settings objects OK\n", *file, n)

	case "plan":
		fs := flag.NewFlagSet("plan", flag.ExitOnError)
		file := fs.String("f", "", "Path to routing definition YAML file (required)")
		inventory := fs.String("inventory", "", "Path to YAML list of objects that already exist")
		rules := fs.String("rules", "", "Transport rule categories to plan, e.g. inbound,outbound (default: from definition or MAILROUTE_RULES)")
		placement := fs.String("placement", "", "Where new transport rules go: Top or Bottom")
		format := fs.String("format", "text", "Output format: text or json")
		fs.Parse(os.Args[2:])

		if *file == "" {
			fmt.Fprintln(os.Stderr, "Error: -f flag is required")
			fs.Usage()
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		_, err := mailctl.RunPlan(ctx, cfg, logger, mailctl.PlanRequest{
			DefinitionPath: *file,
			InventoryPath:  *inventory,
			Rules:          *rules,
			Placement:      *placement,
			Format:         *format,
		}, os.Stdout)
		stop()
		if err != nil {
			logger.Error().Err(err).Str("definition", *file).Msg("plan failed")
			os.Exit(1)
		}

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage:
  mailctl validate -f <routing.yaml>
  mailctl plan -f <routing.yaml> [-inventory inventory.yaml] [-rules LIST] [-placement Top|Bottom] [-format text|json]

Commands:
  validate   Check a routing definition file
  plan       Print the connector, transport rule and anti-spam commands for a definition

Environment:
  LOG_LEVEL                    trace, debug, info, warn, error (default: info)
  MAILROUTE_VERSION            Routing profile when the definition omits one: CH or PRV (default: CH)
  MAILROUTE_REGION             Region for anti-spam policies: None, CH or DE (default: None)
  MAILROUTE_PLACEMENT          Top or Bottom; unset keeps each rule's priority
  MAILROUTE_RULES              Transport rule categories (default: all)
  MAILROUTE_METRICS_TEXTFILE   Write run counters in node-exporter textfile format`)
}
