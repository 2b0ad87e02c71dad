package api

import (
	"context"
	"fmt"
	"time"

	"github.com/multiwatch/multiwatch-go/pkg/discovery"
)

// DefaultPeerTimeout bounds a peer search when the request gives none.
const DefaultPeerTimeout = 3 * time.Second

// BrowseFunc finds announced instances; discovery.Browse in production.
type BrowseFunc func(ctx context.Context, iface string) ([]discovery.Service, error)

// DiscoverPeers browses the local network for other multiwatch instances.
// self, when non-empty, is the instance name of this server and is left out.
func DiscoverPeers(ctx context.Context, browse BrowseFunc, timeoutStr, self string) (*PeerListResponse, error) {
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil || timeout <= 0 {
		timeout = DefaultPeerTimeout
		timeoutStr = timeout.String()
	}

	browseCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	services, err := browse(browseCtx, "")
	if err != nil {
		return nil, fmt.Errorf("mDNS browse failed: %w", err)
	}

	peers := make([]Peer, 0, len(services))
	for _, svc := range services {
		if self != "" && svc.Instance == self {
			continue
		}
		peers = append(peers, FromService(svc))
	}

	return &PeerListResponse{
		Peers:        peers,
		DiscoveredAt: time.Now(),
		Timeout:      timeoutStr,
	}, nil
}
