package routing

// InboundConnector configures a connector that accepts mail into the
// tenant. Enabled defaults to true.
type InboundConnector struct {
	name    string
	version ConfigVersion

	Skip    bool
	Enabled bool

	Comment                  string
	ConnectorSource          string
	ConnectorType            string
	TlsSenderCertificateName string

	EFSkipLastIP                 *bool
	RequireTls                   *bool
	RestrictDomainsToCertificate *bool
	RestrictDomainsToIPAddresses *bool
	CloudServicesMailEnabled     *bool

	EFUsers                   []string
	EFSkipIPs                 []string
	AssociatedAcceptedDomains []string
	SenderDomains             []string
}

func NewInboundConnector(name string, version ConfigVersion) (*InboundConnector, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &InboundConnector{name: name, version: version, Enabled: true}, nil
}

func (c *InboundConnector) Kind() Kind             { return KindInboundConnector }
func (c *InboundConnector) Name() string           { return c.name }
func (c *InboundConnector) Version() ConfigVersion { return c.version }
func (c *InboundConnector) Skipped() bool          { return c.Skip }

func (c *InboundConnector) Params(op Operation) *Params {
	p := newParams(c.name, op)
	p.Set("Enabled", c.Enabled)

	p.setString("Comment", c.Comment)
	p.setString("ConnectorSource", c.ConnectorSource)
	p.setString("ConnectorType", c.ConnectorType)
	p.setString("TlsSenderCertificateName", c.TlsSenderCertificateName)

	p.setBool("EFSkipLastIP", c.EFSkipLastIP)
	p.setBool("RequireTls", c.RequireTls)
	p.setBool("RestrictDomainsToCertificate", c.RestrictDomainsToCertificate)
	p.setBool("RestrictDomainsToIPAddresses", c.RestrictDomainsToIPAddresses)
	p.setBool("CloudServicesMailEnabled", c.CloudServicesMailEnabled)

	p.setList("EFUsers", c.EFUsers)
	p.setList("EFSkipIPs", c.EFSkipIPs)
	p.setList("AssociatedAcceptedDomains", c.AssociatedAcceptedDomains)
	p.setList("SenderDomains", c.SenderDomains)
	return p
}
