package routing

// TransportRule is a mail flow rule. Its category is fixed at construction.
//
// Enabled, Priority and RouteMessageOutboundConnector are only sent when the
// rule is created; changing them on an existing rule could reorder or
// reroute mail flow, so updates leave them alone.
type TransportRule struct {
	name     string
	version  ConfigVersion
	category RuleSet

	Skip    bool
	Enabled bool

	Priority int
	// SMPriority orders the rules managed here relative to each other. It is
	// not a remote parameter.
	SMPriority int

	SetSCL *int

	Comments                            string
	FromScope                           string
	SentToScope                         string
	RouteMessageOutboundConnector       string
	ExceptIfHeaderContainsMessageHeader string
	ExceptIfHeaderContainsWords         string
	ExceptIfHeaderMatchesMessageHeader  string
	ExceptIfHeaderMatchesPatterns       string
	ExceptIfMessageTypeMatches          string
	SetAuditSeverity                    string
	Mode                                string
	SenderAddressLocation               string
	RemoveHeader                        string
	HeaderContainsMessageHeader         string

	ExceptIfRecipientDomainIs []string
	ExceptIfSenderDomainIs    []string
	HeaderContainsWords       []string
}

func NewTransportRule(name string, version ConfigVersion, category RuleSet) (*TransportRule, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	return &TransportRule{name: name, version: version, category: category, Enabled: true}, nil
}

func (r *TransportRule) Kind() Kind             { return KindTransportRule }
func (r *TransportRule) Name() string           { return r.name }
func (r *TransportRule) Version() ConfigVersion { return r.version }
func (r *TransportRule) Category() RuleSet      { return r.category }
func (r *TransportRule) Skipped() bool          { return r.Skip }

func (r *TransportRule) Params(op Operation) *Params {
	p := newParams(r.name, op)
	if op == OperationCreate {
		p.Set("Enabled", r.Enabled)
		p.Set("Priority", r.Priority)
	}

	p.setInt("SetSCL", r.SetSCL)

	p.setString("Comments", r.Comments)
	p.setString("FromScope", r.FromScope)
	p.setString("SentToScope", r.SentToScope)
	if op == OperationCreate {
		p.setString("RouteMessageOutboundConnector", r.RouteMessageOutboundConnector)
	}
	p.setString("ExceptIfHeaderContainsMessageHeader", r.ExceptIfHeaderContainsMessageHeader)
	p.setString("ExceptIfHeaderContainsWords", r.ExceptIfHeaderContainsWords)
	p.setString("ExceptIfHeaderMatchesMessageHeader", r.ExceptIfHeaderMatchesMessageHeader)
	p.setString("ExceptIfHeaderMatchesPatterns", r.ExceptIfHeaderMatchesPatterns)
	p.setString("ExceptIfMessageTypeMatches", r.ExceptIfMessageTypeMatches)
	p.setList("ExceptIfRecipientDomainIs", r.ExceptIfRecipientDomainIs)
	p.setList("ExceptIfSenderDomainIs", r.ExceptIfSenderDomainIs)
	p.setString("SetAuditSeverity", r.SetAuditSeverity)
	p.setString("Mode", r.Mode)
	p.setString("SenderAddressLocation", r.SenderAddressLocation)
	p.setString("RemoveHeader", r.RemoveHeader)
	p.setString("HeaderContainsMessageHeader", r.HeaderContainsMessageHeader)
	p.setList("HeaderContainsWords", r.HeaderContainsWords)
	return p
}
