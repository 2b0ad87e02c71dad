package discovery

import (
	"errors"
	"time"
)

// DNS-SD constants.
const (
	ServiceType = "_multiwatch._tcp"
	Domain      = "local."

	// MaxInstanceNameLen is the DNS label limit for instance names.
	MaxInstanceNameLen = 63

	// DefaultBrowseTimeout bounds Browse when the context has no deadline.
	DefaultBrowseTimeout = 3 * time.Second
)

// TXT record keys.
const (
	TXTKeyVersion = "v"
	TXTKeyPath    = "path"
	TXTKeyTimers  = "n"
)

// Errors.
var (
	ErrInvalidInstanceName = errors.New("invalid instance name")
	ErrInvalidPort         = errors.New("invalid port")
	ErrMissingRequired     = errors.New("missing required TXT field")
	ErrNotAdvertising      = errors.New("not advertising")
)

// Info describes an instance to announce.
type Info struct {
	// Instance is the human-readable name shown by browsers.
	Instance string

	// Port is the HTTP port of the web front end.
	Port int

	// Version is the multiwatch version string.
	Version string

	// Path is the URL path of the page ("/" when empty).
	Path string

	// Timers is the current number of stopwatches.
	Timers int
}

// Service is an announced instance found by Browse.
type Service struct {
	Instance  string
	Host      string
	Port      int
	Addresses []string
	Version   string
	Path      string
	Timers    int
}

// AdvertiserConfig configures an Advertiser.
type AdvertiserConfig struct {
	// Interface restricts announcements to one network interface.
	Interface string

	// TTL overrides the record TTL.
	TTL time.Duration
}
