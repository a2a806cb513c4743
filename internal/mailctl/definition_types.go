package mailctl

import "github.com/edvin/mailroute/internal/routing"

// RoutingDef is the on-disk description of the routing settings for one
// tenant.
type RoutingDef struct {
	Version   routing.ConfigVersion     `yaml:"version" validate:"omitempty,oneof=CH PRV"`
	Region    routing.GeoRegion         `yaml:"region" validate:"omitempty,oneof=None CH DE"`
	Bundle    BundleDef                 `yaml:"bundle"`
	Placement routing.PlacementPriority `yaml:"placement" validate:"omitempty,oneof=Top Bottom"`
	// Rules selects the transport rule categories to manage, e.g. "inbound,outbound".
	Rules string `yaml:"rules" validate:"omitempty,rule_set"`

	InboundConnectors  []InboundConnectorDef  `yaml:"inbound_connectors" validate:"unique_names,dive"`
	OutboundConnectors []OutboundConnectorDef `yaml:"outbound_connectors" validate:"unique_names,dive"`
	TransportRules     []TransportRuleDef     `yaml:"transport_rules" validate:"unique_names,dive"`
	AntiSpamPolicies   []AntiSpamPolicyDef    `yaml:"anti_spam_policies" validate:"unique_names,dive"`
}

type BundleDef struct {
	ID      routing.ConfigBundle   `yaml:"id" validate:"omitempty,oneof=None NoTls"`
	Options []routing.ConfigOption `yaml:"options" validate:"dive,oneof=Default NoAntiSpamWhiteListing"`
}

type InboundConnectorDef struct {
	Name    string `yaml:"name" validate:"required"`
	Skip    bool   `yaml:"skip"`
	Enabled *bool  `yaml:"enabled"`

	Comment                  string `yaml:"comment"`
	ConnectorSource          string `yaml:"connector_source"`
	ConnectorType            string `yaml:"connector_type" validate:"omitempty,oneof=Partner OnPremises"`
	TlsSenderCertificateName string `yaml:"tls_sender_certificate_name"`

	EFSkipLastIP                 *bool `yaml:"ef_skip_last_ip"`
	RequireTls                   *bool `yaml:"require_tls"`
	RestrictDomainsToCertificate *bool `yaml:"restrict_domains_to_certificate"`
	RestrictDomainsToIPAddresses *bool `yaml:"restrict_domains_to_ip_addresses"`
	CloudServicesMailEnabled     *bool `yaml:"cloud_services_mail_enabled"`

	EFUsers                   []string `yaml:"ef_users" validate:"dive,email"`
	EFSkipIPs                 []string `yaml:"ef_skip_ips" validate:"dive,ip|cidr"`
	AssociatedAcceptedDomains []string `yaml:"associated_accepted_domains" validate:"dive,fqdn"`
	SenderDomains             []string `yaml:"sender_domains" validate:"dive,required"`
}

type OutboundConnectorDef struct {
	Name    string `yaml:"name" validate:"required"`
	Skip    bool   `yaml:"skip"`
	Enabled *bool  `yaml:"enabled"`

	Comment         string `yaml:"comment"`
	ConnectorSource string `yaml:"connector_source"`
	ConnectorType   string `yaml:"connector_type" validate:"omitempty,oneof=Partner OnPremises"`
	TlsSettings     string `yaml:"tls_settings" validate:"omitempty,oneof=EncryptionOnly CertificateValidation DomainValidation"`
	TlsDomain       string `yaml:"tls_domain"`

	IsTransportRuleScoped    *bool `yaml:"is_transport_rule_scoped"`
	UseMXRecord              *bool `yaml:"use_mx_record"`
	CloudServicesMailEnabled *bool `yaml:"cloud_services_mail_enabled"`

	SmartHosts []string `yaml:"smart_hosts" validate:"dive,hostname_rfc1123|ip"`
}

type TransportRuleDef struct {
	Name string `yaml:"name" validate:"required"`
	// Type is the single category the rule belongs to, e.g. "inbound".
	Type    string `yaml:"type" validate:"required,rule_category"`
	Skip    bool   `yaml:"skip"`
	Enabled *bool  `yaml:"enabled"`

	Priority   int  `yaml:"priority" validate:"min=0"`
	SMPriority int  `yaml:"sm_priority"`
	SetSCL     *int `yaml:"set_scl" validate:"omitempty,min=-1,max=9"`

	Comments                            string `yaml:"comments"`
	FromScope                           string `yaml:"from_scope" validate:"omitempty,oneof=InOrganization NotInOrganization"`
	SentToScope                         string `yaml:"sent_to_scope" validate:"omitempty,oneof=InOrganization NotInOrganization ExternalPartner ExternalNonPartner"`
	RouteMessageOutboundConnector       string `yaml:"route_message_outbound_connector"`
	ExceptIfHeaderContainsMessageHeader string `yaml:"except_if_header_contains_message_header"`
	ExceptIfHeaderContainsWords         string `yaml:"except_if_header_contains_words"`
	ExceptIfHeaderMatchesMessageHeader  string `yaml:"except_if_header_matches_message_header"`
	ExceptIfHeaderMatchesPatterns       string `yaml:"except_if_header_matches_patterns"`
	ExceptIfMessageTypeMatches          string `yaml:"except_if_message_type_matches"`
	SetAuditSeverity                    string `yaml:"set_audit_severity"`
	Mode                                string `yaml:"mode" validate:"omitempty,oneof=Audit AuditAndNotify Enforce"`
	SenderAddressLocation               string `yaml:"sender_address_location" validate:"omitempty,oneof=Header Envelope HeaderOrEnvelope"`
	RemoveHeader                        string `yaml:"remove_header"`
	HeaderContainsMessageHeader         string `yaml:"header_contains_message_header"`

	ExceptIfRecipientDomainIs []string `yaml:"except_if_recipient_domain_is" validate:"dive,fqdn"`
	ExceptIfSenderDomainIs    []string `yaml:"except_if_sender_domain_is" validate:"dive,fqdn"`
	HeaderContainsWords       []string `yaml:"header_contains_words"`
}

type AntiSpamPolicyDef struct {
	Name      string   `yaml:"name" validate:"required"`
	Skip      bool     `yaml:"skip"`
	WhiteList []string `yaml:"white_list" validate:"dive,ip|cidr"`
}

// Inventory lists the settings objects that already exist on the mail
// system. Objects found here are updated instead of created.
type Inventory struct {
	InboundConnectors  []string `yaml:"inbound_connectors"`
	OutboundConnectors []string `yaml:"outbound_connectors"`
	TransportRules     []string `yaml:"transport_rules"`
	AntiSpamPolicies   []string `yaml:"anti_spam_policies"`
	// TransportRuleCount is the total number of transport rules on the
	// tenant, including ones not managed here.
	TransportRuleCount int `yaml:"transport_rule_count" validate:"min=0"`
}
