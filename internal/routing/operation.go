package routing

// Operation selects between provisioning a new resource and modifying an
// existing one.
type Operation int

const (
	OperationCreate Operation = iota
	OperationUpdate
)

func (o Operation) String() string {
	if o == OperationUpdate {
		return "update"
	}
	return "create"
}

func (o Operation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// IdentityKey is the parameter name that carries the resource name.
func (o Operation) IdentityKey() string {
	if o == OperationUpdate {
		return "Identity"
	}
	return "Name"
}

// Kind identifies a settings variant.
type Kind string

const (
	KindInboundConnector  Kind = "inbound_connector"
	KindOutboundConnector Kind = "outbound_connector"
	KindTransportRule     Kind = "transport_rule"
	KindAntiSpamPolicy    Kind = "anti_spam_policy"
)

var kindNouns = map[Kind]string{
	KindInboundConnector:  "InboundConnector",
	KindOutboundConnector: "OutboundConnector",
	KindTransportRule:     "TransportRule",
	KindAntiSpamPolicy:    "HostedConnectionFilterPolicy",
}

// Command returns the remote command a parameter set of this kind is
// meant for, e.g. "New-InboundConnector" or "Set-TransportRule".
func (k Kind) Command(op Operation) string {
	verb := "New-"
	if op == OperationUpdate {
		verb = "Set-"
	}
	return verb + kindNouns[k]
}
