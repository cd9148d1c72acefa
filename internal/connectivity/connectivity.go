// Package connectivity answers whether the machine currently has a network
// connection, so a failed request can be reported as "offline" rather than
// as a generic failure.
package connectivity

import "net"

// Checker reports the current connectivity state.
type Checker interface {
	Online() bool
}

// InterfaceProbe treats the machine as online when at least one non-loopback
// interface is up and has an address.
type InterfaceProbe struct {
	// interfaces is replaced in tests.
	interfaces func() ([]net.Interface, error)
}

func NewInterfaceProbe() *InterfaceProbe {
	return &InterfaceProbe{interfaces: net.Interfaces}
}

func (p *InterfaceProbe) Online() bool {
	ifaces, err := p.interfaces()
	if err != nil {
		// Can't tell; don't mask the real error as "offline".
		return true
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addrs, err := iface.Addrs()
		if err == nil && len(addrs) > 0 {
			return true
		}
	}
	return false
}

// Override wraps a Checker with a switch that forces the offline state,
// set from the --offline flag.
type Override struct {
	next    Checker
	offline bool
}

func NewOverride(next Checker, offline bool) *Override {
	return &Override{next: next, offline: offline}
}

func (o *Override) Online() bool {
	if o.offline {
		return false
	}
	return o.next.Online()
}

// Static is a fixed answer.
type Static bool

func (s Static) Online() bool { return bool(s) }
