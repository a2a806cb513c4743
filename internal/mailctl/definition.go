package mailctl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/edvin/mailroute/internal/routing"
)

var validate = validator.New()

func init() {
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("yaml"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("rule_set", func(fl validator.FieldLevel) bool {
		_, err := routing.ParseRuleSet(fl.Field().String())
		return err == nil
	})
	validate.RegisterValidation("rule_category", func(fl validator.FieldLevel) bool {
		set, err := routing.ParseRuleSet(fl.Field().String())
		return err == nil && set.Single()
	})
	validate.RegisterValidation("unique_names", uniqueNames)
}

// uniqueNames checks a slice of definitions for duplicate Name fields.
// Names compare case-insensitively, like identities on the mail system.
func uniqueNames(fl validator.FieldLevel) bool {
	field := fl.Field()
	seen := make([]string, 0, field.Len())
	for i := range field.Len() {
		name := field.Index(i).FieldByName("Name").String()
		if slices.ContainsFunc(seen, func(s string) bool { return strings.EqualFold(s, name) }) {
			return false
		}
		seen = append(seen, name)
	}
	return true
}

// ValidationError represents a field-level validation error.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is returned when a definition file parses but holds
// invalid values.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, v := range e {
		parts[i] = v.Field + ": " + v.Message
	}
	return "invalid definition: " + strings.Join(parts, "; ")
}

// LoadDefinition reads and validates a routing definition file.
func LoadDefinition(path string) (*RoutingDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read definition: %w", err)
	}
	return ParseDefinition(data)
}

// ParseDefinition decodes and validates a routing definition. Unknown keys
// are rejected so that misspelled settings do not silently go missing.
func ParseDefinition(data []byte) (*RoutingDef, error) {
	var def RoutingDef
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse definition: %w", err)
	}

	if err := validateStruct(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// LoadInventory reads an inventory file. An empty path yields an empty
// inventory, meaning every object will be created.
func LoadInventory(path string) (*Inventory, error) {
	if path == "" {
		return &Inventory{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}

	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	if err := validateStruct(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, ValidationError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath strips the root type from the namespace, leaving the YAML path
// such as "transport_rules[2].type".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		return rest
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got %q", fe.Param(), fe.Value())
	case "unique_names":
		return "names must be unique"
	case "rule_set":
		return fmt.Sprintf("unknown transport rule categories %q", fe.Value())
	case "rule_category":
		return fmt.Sprintf("must name exactly one transport rule category, got %q", fe.Value())
	case "min":
		return fmt.Sprintf("must be >= %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be <= %s", fe.Param())
	default:
		return fmt.Sprintf("must be a valid %s, got %q", fe.Tag(), fe.Value())
	}
}

// Defaults fill in the top-level values a definition file leaves out.
type Defaults struct {
	Version   routing.ConfigVersion
	Region    routing.GeoRegion
	Placement routing.PlacementPriority
	Rules     string
}

// ApplyDefaults sets every empty top-level field from d.
func (def *RoutingDef) ApplyDefaults(d Defaults) {
	if def.Version == "" {
		def.Version = d.Version
	}
	if def.Region == "" {
		def.Region = d.Region
	}
	if def.Placement == "" {
		def.Placement = d.Placement
	}
	if def.Rules == "" {
		def.Rules = d.Rules
	}
	if def.Bundle.ID == "" {
		def.Bundle.ID = routing.ConfigBundleNone
	}
}

// BundleSettings returns the bundle selection of the definition.
func (def *RoutingDef) BundleSettings() routing.BundleSettings {
	return routing.BundleSettings{
		ID:      def.Bundle.ID,
		Version: def.Version,
		Options: def.Bundle.Options,
	}
}

// PlanOptions derives the planner options from the definition.
func (def *RoutingDef) PlanOptions() (PlanOptions, error) {
	rules := routing.RuleAll
	if def.Rules != "" {
		var err error
		rules, err = routing.ParseRuleSet(def.Rules)
		if err != nil {
			return PlanOptions{}, err
		}
	}
	return PlanOptions{
		Rules:     rules,
		Placement: def.Placement,
		Bundle:    def.BundleSettings(),
	}, nil
}

// Set is the typed form of a routing definition.
type Set struct {
	InboundConnectors  []*routing.InboundConnector
	OutboundConnectors []*routing.OutboundConnector
	TransportRules     []*routing.TransportRule
	AntiSpamPolicies   []*routing.AntiSpamPolicy
}

// Len returns the number of settings objects in the set.
func (s *Set) Len() int {
	return len(s.InboundConnectors) + len(s.OutboundConnectors) + len(s.TransportRules) + len(s.AntiSpamPolicies)
}

// Build constructs the settings objects described by def. ApplyDefaults
// must have filled in the version and region first.
func (def *RoutingDef) Build() (*Set, error) {
	if !def.Version.Valid() {
		return nil, fmt.Errorf("build: invalid config version %q", def.Version)
	}
	if !def.Region.Valid() {
		return nil, fmt.Errorf("build: invalid geo region %q", def.Region)
	}

	set := &Set{}
	for _, d := range def.InboundConnectors {
		c, err := d.build(def.Version)
		if err != nil {
			return nil, fmt.Errorf("inbound connector %q: %w", d.Name, err)
		}
		set.InboundConnectors = append(set.InboundConnectors, c)
	}
	for _, d := range def.OutboundConnectors {
		c, err := d.build(def.Version)
		if err != nil {
			return nil, fmt.Errorf("outbound connector %q: %w", d.Name, err)
		}
		set.OutboundConnectors = append(set.OutboundConnectors, c)
	}
	for _, d := range def.TransportRules {
		r, err := d.build(def.Version)
		if err != nil {
			return nil, fmt.Errorf("transport rule %q: %w", d.Name, err)
		}
		set.TransportRules = append(set.TransportRules, r)
	}
	for _, d := range def.AntiSpamPolicies {
		a, err := d.build(def.Region)
		if err != nil {
			return nil, fmt.Errorf("anti-spam policy %q: %w", d.Name, err)
		}
		set.AntiSpamPolicies = append(set.AntiSpamPolicies, a)
	}
	return set, nil
}

func (d InboundConnectorDef) build(version routing.ConfigVersion) (*routing.InboundConnector, error) {
	c, err := routing.NewInboundConnector(d.Name, version)
	if err != nil {
		return nil, err
	}
	c.Skip = d.Skip
	if d.Enabled != nil {
		c.Enabled = *d.Enabled
	}
	c.Comment = d.Comment
	c.ConnectorSource = d.ConnectorSource
	c.ConnectorType = d.ConnectorType
	c.TlsSenderCertificateName = d.TlsSenderCertificateName
	c.EFSkipLastIP = d.EFSkipLastIP
	c.RequireTls = d.RequireTls
	c.RestrictDomainsToCertificate = d.RestrictDomainsToCertificate
	c.RestrictDomainsToIPAddresses = d.RestrictDomainsToIPAddresses
	c.CloudServicesMailEnabled = d.CloudServicesMailEnabled
	c.EFUsers = d.EFUsers
	c.EFSkipIPs = d.EFSkipIPs
	c.AssociatedAcceptedDomains = d.AssociatedAcceptedDomains
	c.SenderDomains = d.SenderDomains
	return c, nil
}

func (d OutboundConnectorDef) build(version routing.ConfigVersion) (*routing.OutboundConnector, error) {
	c, err := routing.NewOutboundConnector(d.Name, version)
	if err != nil {
		return nil, err
	}
	c.Skip = d.Skip
	if d.Enabled != nil {
		c.Enabled = *d.Enabled
	}
	c.Comment = d.Comment
	c.ConnectorSource = d.ConnectorSource
	c.ConnectorType = d.ConnectorType
	c.TlsSettings = d.TlsSettings
	c.TlsDomain = d.TlsDomain
	c.IsTransportRuleScoped = d.IsTransportRuleScoped
	c.UseMXRecord = d.UseMXRecord
	c.CloudServicesMailEnabled = d.CloudServicesMailEnabled
	c.SmartHosts = d.SmartHosts
	return c, nil
}

func (d TransportRuleDef) build(version routing.ConfigVersion) (*routing.TransportRule, error) {
	category, err := routing.ParseRuleSet(d.Type)
	if err != nil {
		return nil, err
	}
	if !category.Single() {
		return nil, fmt.Errorf("type %q must name exactly one category", d.Type)
	}

	r, err := routing.NewTransportRule(d.Name, version, category)
	if err != nil {
		return nil, err
	}
	r.Skip = d.Skip
	if d.Enabled != nil {
		r.Enabled = *d.Enabled
	}
	r.Priority = d.Priority
	r.SMPriority = d.SMPriority
	r.SetSCL = d.SetSCL
	r.Comments = d.Comments
	r.FromScope = d.FromScope
	r.SentToScope = d.SentToScope
	r.RouteMessageOutboundConnector = d.RouteMessageOutboundConnector
	r.ExceptIfHeaderContainsMessageHeader = d.ExceptIfHeaderContainsMessageHeader
	r.ExceptIfHeaderContainsWords = d.ExceptIfHeaderContainsWords
	r.ExceptIfHeaderMatchesMessageHeader = d.ExceptIfHeaderMatchesMessageHeader
	r.ExceptIfHeaderMatchesPatterns = d.ExceptIfHeaderMatchesPatterns
	r.ExceptIfMessageTypeMatches = d.ExceptIfMessageTypeMatches
	r.SetAuditSeverity = d.SetAuditSeverity
	r.Mode = d.Mode
	r.SenderAddressLocation = d.SenderAddressLocation
	r.RemoveHeader = d.RemoveHeader
	r.HeaderContainsMessageHeader = d.HeaderContainsMessageHeader
	r.ExceptIfRecipientDomainIs = d.ExceptIfRecipientDomainIs
	r.ExceptIfSenderDomainIs = d.ExceptIfSenderDomainIs
	r.HeaderContainsWords = d.HeaderContainsWords
	return r, nil
}

func (d AntiSpamPolicyDef) build(region routing.GeoRegion) (*routing.AntiSpamPolicy, error) {
	a, err := routing.NewAntiSpamPolicy(d.Name, region)
	if err != nil {
		return nil, err
	}
	a.Skip = d.Skip
	a.WhiteList = d.WhiteList
	return a, nil
}
