package mailctl

import (
	"context"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/edvin/mailroute/internal/config"
	"github.com/edvin/mailroute/internal/metrics"
	"github.com/edvin/mailroute/internal/routing"
)

// PlanRequest carries the inputs of the plan command.
type PlanRequest struct {
	DefinitionPath string
	InventoryPath  string
	// Rules and Placement override the definition file when non-empty.
	Rules     string
	Placement string
	Format    string
}

// Validate loads a definition file and reports how many objects it holds.
func Validate(cfg *config.Config, path string) (int, error) {
	def, err := LoadDefinition(path)
	if err != nil {
		return 0, err
	}
	def.ApplyDefaults(defaultsFrom(cfg))
	set, err := def.Build()
	if err != nil {
		return 0, err
	}
	return set.Len(), nil
}

// RunPlan loads the definition and inventory, builds the plan and writes it
// to w. Counters go to the metrics textfile when one is configured.
func RunPlan(ctx context.Context, cfg *config.Config, logger zerolog.Logger, req PlanRequest, w io.Writer) (*Plan, error) {
	if req.Format != "" && req.Format != "text" && req.Format != "json" {
		return nil, fmt.Errorf("unknown format %q: must be text or json", req.Format)
	}

	def, err := LoadDefinition(req.DefinitionPath)
	if err != nil {
		return nil, err
	}
	if req.Rules != "" {
		def.Rules = req.Rules
	}
	if req.Placement != "" {
		def.Placement = routing.PlacementPriority(req.Placement)
		if !def.Placement.Valid() {
			return nil, fmt.Errorf("invalid placement %q: must be Top or Bottom", req.Placement)
		}
	}
	def.ApplyDefaults(defaultsFrom(cfg))

	opts, err := def.PlanOptions()
	if err != nil {
		return nil, err
	}
	set, err := def.Build()
	if err != nil {
		return nil, err
	}
	inv, err := LoadInventory(req.InventoryPath)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	planner := NewPlanner(logger, metrics.New(reg))
	plan, err := planner.Plan(ctx, set, inv, opts)
	if err != nil {
		return nil, err
	}

	if req.Format == "json" {
		err = plan.WriteJSON(w)
	} else {
		err = plan.WriteText(w)
	}
	if err != nil {
		return nil, fmt.Errorf("write plan: %w", err)
	}

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile, reg); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func defaultsFrom(cfg *config.Config) Defaults {
	return Defaults{
		Version:   routing.ConfigVersion(cfg.Version),
		Region:    routing.GeoRegion(cfg.Region),
		Placement: routing.PlacementPriority(cfg.Placement),
		Rules:     cfg.Rules,
	}
}
