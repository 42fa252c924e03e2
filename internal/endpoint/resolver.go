package endpoint

import (
	"fmt"
	"strings"
)

// Context says where the HTTP caller runs relative to the backend.
type Context int

const (
	// ClientFacing: the caller reaches the backend on a local/public address.
	ClientFacing Context = iota
	// ServerFacing: the caller runs inside the backend's private network.
	ServerFacing
)

const (
	// LocalAddress is used for every client-facing resolution.
	LocalAddress = "http://localhost:8080"
	// InternalAddress is the in-network service name used when no server address is configured.
	InternalAddress = "http://backend:8080"
)

func (c Context) String() string {
	switch c {
	case ClientFacing:
		return "client"
	case ServerFacing:
		return "server"
	default:
		return fmt.Sprintf("Context(%d)", int(c))
	}
}

// ParseContext maps a config value to a Context.
func ParseContext(s string) (Context, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "browser":
		return ClientFacing, nil
	case "server":
		return ServerFacing, nil
	default:
		return 0, fmt.Errorf("unknown execution context %q", s)
	}
}

// Resolver decides the backend base address.
type Resolver struct {
	ServerURL string // externally configured address for server-facing execution
}

// NewResolver creates a Resolver with the configured server address (may be empty).
func NewResolver(serverURL string) *Resolver {
	return &Resolver{ServerURL: serverURL}
}

// Resolve returns the base address for ctx. It never fails and never touches the network.
func (r *Resolver) Resolve(ctx Context) string {
	if ctx == ClientFacing {
		return LocalAddress
	}
	if u := strings.TrimRight(strings.TrimSpace(r.ServerURL), "/"); u != "" {
		return u
	}
	return InternalAddress
}
