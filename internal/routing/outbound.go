package routing

// OutboundConnector configures a connector that relays mail out of the
// tenant, usually through smart hosts. Enabled defaults to true.
type OutboundConnector struct {
	name    string
	version ConfigVersion

	Skip    bool
	Enabled bool

	Comment         string
	ConnectorSource string
	ConnectorType   string
	TlsSettings     string
	TlsDomain       string

	IsTransportRuleScoped    *bool
	UseMXRecord              *bool
	CloudServicesMailEnabled *bool

	SmartHosts []string
}

func NewOutboundConnector(name string, version ConfigVersion) (*OutboundConnector, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &OutboundConnector{name: name, version: version, Enabled: true}, nil
}

func (c *OutboundConnector) Kind() Kind             { return KindOutboundConnector }
func (c *OutboundConnector) Name() string           { return c.name }
func (c *OutboundConnector) Version() ConfigVersion { return c.version }
func (c *OutboundConnector) Skipped() bool          { return c.Skip }

func (c *OutboundConnector) Params(op Operation) *Params {
	p := newParams(c.name, op)
	p.Set("Enabled", c.Enabled)

	p.setString("Comment", c.Comment)
	p.setString("ConnectorSource", c.ConnectorSource)
	p.setString("ConnectorType", c.ConnectorType)
	p.setString("TlsSettings", c.TlsSettings)
	p.setString("TlsDomain", c.TlsDomain)

	p.setBool("IsTransportRuleScoped", c.IsTransportRuleScoped)
	p.setBool("UseMXRecord", c.UseMXRecord)
	p.setBool("CloudServicesMailEnabled", c.CloudServicesMailEnabled)

	p.setList("SmartHosts", c.SmartHosts)
	return p
}
