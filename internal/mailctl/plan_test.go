package mailctl

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edvin/mailroute/internal/metrics"
	"github.com/edvin/mailroute/internal/routing"
)

func newTestPlanner(t *testing.T) (*Planner, *metrics.Metrics, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	m := metrics.New(prometheus.NewRegistry())
	return NewPlanner(zerolog.New(&buf), m), m, &buf
}

func sampleSet(t *testing.T) *Set {
	t.Helper()
	def, err := ParseDefinition([]byte(sampleDefinition))
	require.NoError(t, err)
	set, err := def.Build()
	require.NoError(t, err)
	return set
}

func stepNames(plan *Plan) []string {
	names := make([]string, len(plan.Steps))
	for i, s := range plan.Steps {
		names[i] = s.Name
	}
	return names
}

func TestPlan_OrderAndSkip(t *testing.T) {
	p, m, _ := newTestPlanner(t)

	plan, err := p.Plan(context.Background(), sampleSet(t), nil, PlanOptions{})
	require.NoError(t, err)

	_, err = uuid.Parse(plan.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"[SC365] Inbound",
		"[SC365] Outbound",
		"[SC365] Clean headers",
		"[SC365] Skip SPF",
		"[SC365] Route outbound",
		"Default",
	}, stepNames(plan))

	require.Len(t, plan.Skipped, 1)
	assert.Equal(t, Skipped{Kind: routing.KindInboundConnector, Name: "legacy", Reason: "skip flag set"}, plan.Skipped[0])
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Skipped.WithLabelValues("inbound_connector")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Projections.WithLabelValues("transport_rule", "create")))

	for _, s := range plan.Steps {
		assert.Equal(t, routing.OperationCreate, s.Operation)
		assert.Equal(t, "Name", s.Params.Keys()[0])
		assert.Equal(t, s.Kind.Command(routing.OperationCreate), s.Command)
	}
}

func TestPlan_UpdateExisting(t *testing.T) {
	p, m, _ := newTestPlanner(t)
	inv := &Inventory{
		InboundConnectors: []string{"[sc365] inbound"},
		TransportRules:    []string{"[SC365] Route outbound"},
	}

	plan, err := p.Plan(context.Background(), sampleSet(t), inv, PlanOptions{})
	require.NoError(t, err)

	byName := map[string]Step{}
	for _, s := range plan.Steps {
		byName[s.Name] = s
	}

	in := byName["[SC365] Inbound"]
	assert.Equal(t, routing.OperationUpdate, in.Operation)
	assert.Equal(t, "Set-InboundConnector", in.Command)
	assert.True(t, in.Params.Has("Identity"))
	assert.False(t, in.Params.Has("Name"))

	rule := byName["[SC365] Route outbound"]
	assert.Equal(t, "Set-TransportRule", rule.Command)
	assert.False(t, rule.Params.Has("Enabled"))
	assert.False(t, rule.Params.Has("Priority"))
	assert.False(t, rule.Params.Has("RouteMessageOutboundConnector"))

	create, update := plan.Counts()
	assert.Equal(t, 4, create)
	assert.Equal(t, 2, update)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.Projections.WithLabelValues("transport_rule", "update")))
}

func TestPlan_RuleCategoryFilter(t *testing.T) {
	p, _, _ := newTestPlanner(t)

	plan, err := p.Plan(context.Background(), sampleSet(t), nil, PlanOptions{Rules: routing.RuleInbound | routing.RuleOutbound})
	require.NoError(t, err)

	assert.NotContains(t, stepNames(plan), "[SC365] Clean headers")
	require.Len(t, plan.Skipped, 2)
	assert.Equal(t, "[SC365] Clean headers", plan.Skipped[1].Name)
	assert.Equal(t, "category outgoing_header_cleaning not selected", plan.Skipped[1].Reason)
}

func TestPlan_NoAntiSpamWhiteListing(t *testing.T) {
	p, _, _ := newTestPlanner(t)

	plan, err := p.Plan(context.Background(), sampleSet(t), nil, PlanOptions{
		Bundle: routing.BundleSettings{Options: []routing.ConfigOption{routing.ConfigOptionNoAntiSpamWhiteListing}},
	})
	require.NoError(t, err)

	assert.NotContains(t, stepNames(plan), "Default")
	last := plan.Skipped[len(plan.Skipped)-1]
	assert.Equal(t, routing.KindAntiSpamPolicy, last.Kind)
	assert.Equal(t, "option NoAntiSpamWhiteListing", last.Reason)
}

func TestPlan_PlacementBottom(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	inv := &Inventory{TransportRules: []string{"[SC365] Skip SPF"}, TransportRuleCount: 4}

	plan, err := p.Plan(context.Background(), sampleSet(t), inv, PlanOptions{Placement: routing.PlacementBottom})
	require.NoError(t, err)

	prio := rulePriorityByName(plan)
	assert.Equal(t, map[string]any{
		"[SC365] Clean headers":  4,
		"[SC365] Route outbound": 5,
	}, prio)
}

func TestPlan_PlacementTop(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	inv := &Inventory{TransportRuleCount: 10}

	plan, err := p.Plan(context.Background(), sampleSet(t), inv, PlanOptions{Placement: routing.PlacementTop})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{
		"[SC365] Clean headers":  0,
		"[SC365] Skip SPF":       1,
		"[SC365] Route outbound": 2,
	}, rulePriorityByName(plan))
}

func TestPlan_NoPlacementKeepsPriority(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	rule, err := routing.NewTransportRule("r", routing.ConfigVersionCH, routing.RuleInternal)
	require.NoError(t, err)
	rule.Priority = 7

	plan, err := p.Plan(context.Background(), &Set{TransportRules: []*routing.TransportRule{rule}}, nil, PlanOptions{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"r": 7}, rulePriorityByName(plan))
	assert.Equal(t, 7, rule.Priority)
}

func TestPlan_PlacementDoesNotTouchOtherKinds(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	in, err := routing.NewInboundConnector("same", routing.ConfigVersionCH)
	require.NoError(t, err)
	rule, err := routing.NewTransportRule("same", routing.ConfigVersionCH, routing.RuleInbound)
	require.NoError(t, err)

	plan, err := p.Plan(context.Background(), &Set{
		InboundConnectors: []*routing.InboundConnector{in},
		TransportRules:    []*routing.TransportRule{rule},
	}, nil, PlanOptions{Placement: routing.PlacementTop})
	require.NoError(t, err)

	require.Len(t, plan.Steps, 2)
	assert.False(t, plan.Steps[0].Params.Has("Priority"))
	assert.True(t, plan.Steps[1].Params.Has("Priority"))
}

func TestPlan_NoTlsBundleWarns(t *testing.T) {
	p, _, buf := newTestPlanner(t)

	_, err := p.Plan(context.Background(), &Set{}, nil, PlanOptions{
		Bundle: routing.BundleSettings{ID: routing.ConfigBundleNoTls},
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "not active yet")
	assert.Contains(t, buf.String(), `"component":"planner"`)
}

func TestPlan_CanceledContext(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Plan(ctx, sampleSet(t), nil, PlanOptions{})
	require.ErrorIs(t, err, context.Canceled)
}

func TestPlan_DoesNotMutateSettings(t *testing.T) {
	p, _, _ := newTestPlanner(t)
	set := sampleSet(t)
	before := routing.Project(set.TransportRules[0], routing.OperationCreate)

	_, err := p.Plan(context.Background(), set, &Inventory{TransportRuleCount: 3}, PlanOptions{Placement: routing.PlacementBottom})
	require.NoError(t, err)

	assert.True(t, before.Equal(routing.Project(set.TransportRules[0], routing.OperationCreate)))
	assert.Equal(t, "[SC365] Route outbound", set.TransportRules[0].Name(), "set order is preserved")
}

func rulePriorityByName(plan *Plan) map[string]any {
	out := map[string]any{}
	for _, s := range plan.Steps {
		if s.Kind != routing.KindTransportRule {
			continue
		}
		if v, ok := s.Params.Get("Priority"); ok {
			out[s.Name] = v
		}
	}
	return out
}
