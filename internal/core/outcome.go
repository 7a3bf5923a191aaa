package core

import "github.com/book/ssh-gadgets/config"

// Method identifies the connection strategy the cascade selected.
type Method int

const (
	NoMethod Method = iota
	DirectLocal
	DirectPublic
	HTTPProxy
	ProxyCommand
	Relay
)

func (m Method) String() string {
	switch m {
	case DirectLocal:
		return "direct (local name)"
	case DirectPublic:
		return "direct"
	case HTTPProxy:
		return "http proxy"
	case ProxyCommand:
		return "proxy command"
	case Relay:
		return "relay"
	}
	return "none"
}

// Outcome is the cascade's terminal state: the winning method plus the
// parameters its tunnel command needs.  Exactly one outcome is reached
// per invocation.
type Outcome struct {
	Method  Method
	Target  config.Endpoint  // endpoint the tunnel must reach
	Proxy   *config.Proxy    // set for HTTPProxy
	Relay   *config.Endpoint // set for Relay
	Command string           // expanded template, set for ProxyCommand
}
