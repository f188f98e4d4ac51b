package app

import (
	"context"
	"net"
	"time"
)

// Connectivity reports whether the network is reachable.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// StaticConnectivity always reports the same answer.
type StaticConnectivity bool

func (s StaticConnectivity) Online(context.Context) bool {
	return bool(s)
}

// DialProbe reports online when a TCP connection to Address succeeds within Timeout.
type DialProbe struct {
	Address string
	Timeout time.Duration
}

// DefaultProbeAddress is the forecast host; if it is unreachable the fetch would fail anyway.
const DefaultProbeAddress = "opendata-download-metfcst.smhi.se:443"

func NewDialProbe(address string, timeout time.Duration) *DialProbe {
	if address == "" {
		address = DefaultProbeAddress
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &DialProbe{Address: address, Timeout: timeout}
}

func (p *DialProbe) Online(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", p.Address)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}
