package probe

import (
	"context"
	"errors"
	"net"
	"syscall"
)

// Cause classifies a failed probe. It does not change the verdict; every
// cause other than CauseNone is DOWN.
type Cause string

const (
	CauseNone           Cause = ""
	CauseInvalidRequest Cause = "invalid_request"
	CauseDNS            Cause = "dns"
	CauseTimeout        Cause = "timeout"
	CauseRefused        Cause = "refused"
	CauseTransport      Cause = "transport"
)

func (c Cause) String() string {
	if c == CauseNone {
		return "none"
	}
	return string(c)
}

func classify(err error) Cause {
	var de *net.DNSError
	if errors.As(err, &de) {
		if de.IsTimeout {
			return CauseTimeout
		}
		return CauseDNS
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return CauseTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return CauseTimeout
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return CauseRefused
	}
	return CauseTransport
}
