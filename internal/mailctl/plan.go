package mailctl

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/edvin/mailroute/internal/metrics"
	"github.com/edvin/mailroute/internal/routing"
)

// Step is one remote command with its parameters.
type Step struct {
	Kind      routing.Kind      `json:"kind"`
	Name      string            `json:"name"`
	Operation routing.Operation `json:"operation"`
	Command   string            `json:"command"`
	Params    *routing.Params   `json:"params"`
}

// Skipped records a settings object left out of a plan.
type Skipped struct {
	Kind   routing.Kind `json:"kind"`
	Name   string       `json:"name"`
	Reason string       `json:"reason"`
}

// Plan is the ordered list of commands needed to bring the mail system in
// line with a routing definition.
type Plan struct {
	ID      string    `json:"id"`
	Steps   []Step    `json:"steps"`
	Skipped []Skipped `json:"skipped"`
}

// PlanOptions controls which objects are planned and how new transport
// rules are positioned.
type PlanOptions struct {
	Rules routing.RuleSet
	// Placement, when set, overrides the priority of new transport rules.
	Placement routing.PlacementPriority
	Bundle    routing.BundleSettings
}

// Exists reports whether an object of kind named name is already present.
// Names compare case-insensitively, like identities on the mail system.
func (inv *Inventory) Exists(kind routing.Kind, name string) bool {
	var names []string
	switch kind {
	case routing.KindInboundConnector:
		names = inv.InboundConnectors
	case routing.KindOutboundConnector:
		names = inv.OutboundConnectors
	case routing.KindTransportRule:
		names = inv.TransportRules
	case routing.KindAntiSpamPolicy:
		names = inv.AntiSpamPolicies
	}
	return slices.ContainsFunc(names, func(n string) bool { return strings.EqualFold(n, name) })
}

// ruleCount is the number of transport rules already on the tenant.
func (inv *Inventory) ruleCount() int {
	return max(inv.TransportRuleCount, len(inv.TransportRules))
}

// Planner turns a settings set into a Plan.
type Planner struct {
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

func NewPlanner(logger zerolog.Logger, m *metrics.Metrics) *Planner {
	return &Planner{
		logger:  logger.With().Str("component", "planner").Logger(),
		metrics: m,
	}
}

// Plan decides Create or Update for every object in set and projects its
// parameters. Connectors come first so that rules can route to them.
func (p *Planner) Plan(ctx context.Context, set *Set, inv *Inventory, opts PlanOptions) (*Plan, error) {
	if inv == nil {
		inv = &Inventory{}
	}
	if opts.Rules == 0 {
		opts.Rules = routing.RuleAll
	}

	plan := &Plan{ID: uuid.New().String()}
	logger := p.logger.With().Str("plan_id", plan.ID).Logger()

	if opts.Bundle.ID == routing.ConfigBundleNoTls {
		logger.Warn().Str("bundle", string(opts.Bundle.ID)).Msg("config bundle is not active yet, ignoring")
	}

	skip := func(s routing.Settings, reason string) {
		plan.Skipped = append(plan.Skipped, Skipped{Kind: s.Kind(), Name: s.Name(), Reason: reason})
		p.metrics.Skipped.WithLabelValues(string(s.Kind())).Inc()
		logger.Debug().Str("kind", string(s.Kind())).Str("name", s.Name()).Str("reason", reason).Msg("skipped")
	}

	var inbound, outbound, policies []routing.Settings
	for _, c := range set.InboundConnectors {
		if c.Skipped() {
			skip(c, "skip flag set")
			continue
		}
		inbound = append(inbound, c)
	}
	for _, c := range set.OutboundConnectors {
		if c.Skipped() {
			skip(c, "skip flag set")
			continue
		}
		outbound = append(outbound, c)
	}

	var rules []*routing.TransportRule
	for _, r := range set.TransportRules {
		switch {
		case r.Skipped():
			skip(r, "skip flag set")
		case !opts.Rules.Includes(r.Category()):
			skip(r, fmt.Sprintf("category %s not selected", r.Category()))
		default:
			rules = append(rules, r)
		}
	}
	slices.SortStableFunc(rules, func(a, b *routing.TransportRule) int {
		return cmp.Compare(a.SMPriority, b.SMPriority)
	})

	noWhiteListing := opts.Bundle.Has(routing.ConfigOptionNoAntiSpamWhiteListing)
	for _, a := range set.AntiSpamPolicies {
		switch {
		case a.Skipped():
			skip(a, "skip flag set")
		case noWhiteListing:
			skip(a, "option "+string(routing.ConfigOptionNoAntiSpamWhiteListing))
		default:
			policies = append(policies, a)
		}
	}

	ruleSettings := make([]routing.Settings, len(rules))
	for i, r := range rules {
		ruleSettings[i] = r
	}
	priorities := p.rulePriorities(rules, inv, opts.Placement)

	groups := [][]routing.Settings{inbound, outbound, ruleSettings, policies}
	results := make([][]Step, len(groups))
	g, ctx := errgroup.WithContext(ctx)

	for i, group := range groups {
		g.Go(func() error {
			steps := make([]Step, 0, len(group))
			for _, s := range group {
				if err := ctx.Err(); err != nil {
					return err
				}
				op := routing.OperationCreate
				if inv.Exists(s.Kind(), s.Name()) {
					op = routing.OperationUpdate
				}
				params := routing.Project(s, op)
				if prio, ok := priorities[s.Name()]; ok && s.Kind() == routing.KindTransportRule && op == routing.OperationCreate {
					params.Set("Priority", prio)
				}
				steps = append(steps, Step{
					Kind:      s.Kind(),
					Name:      s.Name(),
					Operation: op,
					Command:   s.Kind().Command(op),
					Params:    params,
				})
				p.metrics.Projections.WithLabelValues(string(s.Kind()), op.String()).Inc()
			}
			results[i] = steps
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	for _, steps := range results {
		plan.Steps = append(plan.Steps, steps...)
	}

	logger.Info().
		Int("steps", len(plan.Steps)).
		Int("skipped", len(plan.Skipped)).
		Msg("plan built")
	return plan, nil
}

// rulePriorities assigns priorities to the rules that will be created, in
// their SMPriority order. Top places them before every existing rule,
// Bottom after. Without a placement the rules keep their own Priority.
func (p *Planner) rulePriorities(rules []*routing.TransportRule, inv *Inventory, placement routing.PlacementPriority) map[string]int {
	if placement == "" {
		return nil
	}

	next := 0
	if placement == routing.PlacementBottom {
		next = inv.ruleCount()
	}

	out := make(map[string]int)
	for _, r := range rules {
		if inv.Exists(routing.KindTransportRule, r.Name()) {
			continue
		}
		out[r.Name()] = next
		next++
	}
	return out
}

// Counts returns how many steps of each operation the plan holds.
func (pl *Plan) Counts() (create, update int) {
	for _, s := range pl.Steps {
		if s.Operation == routing.OperationUpdate {
			update++
		} else {
			create++
		}
	}
	return create, update
}
