package discovery

import (
	"context"
	"fmt"
	"net"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// announcement is the part of *zeroconf.Server the advertiser drives.
type announcement interface {
	SetText(text []string)
	Shutdown()
}

// Advertiser announces one instance over mDNS.
type Advertiser struct {
	config AdvertiserConfig

	mu     sync.Mutex
	server announcement
	info   Info
}

// NewAdvertiser creates an idle advertiser.
func NewAdvertiser(config AdvertiserConfig) *Advertiser {
	return &Advertiser{config: config}
}

// interfaces returns the interfaces to announce on; nil means all.
func (a *Advertiser) interfaces() []net.Interface {
	if a.config.Interface == "" {
		return nil
	}
	iface, err := net.InterfaceByName(a.config.Interface)
	if err != nil {
		return nil
	}
	return []net.Interface{*iface}
}

// Advertise starts announcing info, replacing any earlier announcement.
func (a *Advertiser) Advertise(info Info) error {
	if err := ValidateInfo(info); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	var opts []zeroconf.ServerOption
	if a.config.TTL > 0 {
		opts = append(opts, zeroconf.TTL(uint32(a.config.TTL.Seconds())))
	}

	server, err := zeroconf.Register(
		info.Instance,
		ServiceType,
		Domain,
		info.Port,
		TXTRecordsToStrings(EncodeTXT(info)),
		a.interfaces(),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("failed to register %s: %w", ServiceType, err)
	}
	a.server = server
	a.info = info
	return nil
}

// SetTimers updates the announced stopwatch count in place.
// It returns ErrNotAdvertising while no announcement is running.
func (a *Advertiser) SetTimers(n int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return ErrNotAdvertising
	}
	if n < 0 {
		n = 0
	}
	if n == a.info.Timers {
		return nil
	}
	a.info.Timers = n
	a.server.SetText(TXTRecordsToStrings(EncodeTXT(a.info)))
	return nil
}

// Active reports whether an announcement is running.
func (a *Advertiser) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.server != nil
}

// Stop withdraws the announcement. Stopping an idle advertiser is a no-op.
func (a *Advertiser) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}
}

// Browse collects announced instances until ctx is done. Without a
// deadline on ctx it stops after DefaultBrowseTimeout. Instances seen on
// several interfaces are merged into one Service.
func Browse(ctx context.Context, iface string) ([]Service, error) {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultBrowseTimeout)
		defer cancel()
	}

	var opts []zeroconf.ClientOption
	if iface != "" {
		if ni, err := net.InterfaceByName(iface); err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*ni}))
		}
	}

	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)
	errc := make(chan error, 1)
	go func() {
		errc <- zeroconf.Browse(ctx, ServiceType, Domain, entries, removed, opts...)
	}()

	var order []string
	found := make(map[string]*Service)
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				entries = nil
				continue
			}
			svc, ok := entryToService(entry)
			if !ok {
				continue
			}
			if existing, seen := found[svc.Instance]; seen {
				existing.Addresses = mergeAddresses(existing.Addresses, svc.Addresses)
				continue
			}
			found[svc.Instance] = &svc
			order = append(order, svc.Instance)

		case entry, ok := <-removed:
			if !ok {
				removed = nil
				continue
			}
			delete(found, entry.Instance)

		case <-ctx.Done():
			services := make([]Service, 0, len(found))
			for _, name := range order {
				if svc, ok := found[name]; ok {
					services = append(services, *svc)
				}
			}
			select {
			case err := <-errc:
				if err != nil && ctx.Err() == nil {
					return services, err
				}
			default:
			}
			return services, nil
		}
	}
}

func entryToService(entry *zeroconf.ServiceEntry) (Service, bool) {
	info, err := DecodeTXT(StringsToTXTRecords(entry.Text))
	if err != nil {
		return Service{}, false
	}

	addrs := make([]string, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	for _, ip := range entry.AddrIPv4 {
		addrs = append(addrs, ip.String())
	}
	for _, ip := range entry.AddrIPv6 {
		addrs = append(addrs, ip.String())
	}

	return Service{
		Instance:  entry.Instance,
		Host:      entry.HostName,
		Port:      entry.Port,
		Addresses: addrs,
		Version:   info.Version,
		Path:      info.Path,
		Timers:    info.Timers,
	}, true
}

// mergeAddresses adds new addresses to existing, skipping duplicates.
func mergeAddresses(existing, added []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, addr := range existing {
		seen[addr] = true
	}
	for _, addr := range added {
		if !seen[addr] {
			existing = append(existing, addr)
			seen[addr] = true
		}
	}
	return existing
}
