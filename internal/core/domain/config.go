package domain

import (
	"fmt"
	"net/netip"
)

// Config is the daemon's identity and network-trust policy snapshot. It is
// built once at startup from the configuration file, classified once against
// the live interface inventory, and treated as read-only afterwards.
type Config struct {
	name         string
	trustedIP    netip.Addr
	adminIPs     AddressSet
	serviceIPs   AddressSet
	untrustedIPs AddressSet
	coordination CoordinationConfig
}

// ConfigParams carries the decoded configuration values into NewConfig.
type ConfigParams struct {
	// Name is the domain this daemon serves. Opaque here; the watch loop
	// uses it to derive the registrar path.
	Name string

	// TrustedIP is the management address, always excluded from the
	// untrusted set.
	TrustedIP netip.Addr

	// AdminIPs and ServiceIPs are the operator-declared administrative and
	// internal-service networks. Either may be empty.
	AdminIPs   AddressSet
	ServiceIPs AddressSet

	// UntrustedIPs may be pre-populated by the operator. When non-empty it
	// pins the untrusted set: classification never overwrites it.
	UntrustedIPs AddressSet

	Coordination CoordinationConfig
}

// NewConfig validates the parameters and builds a Config.
func NewConfig(p ConfigParams) (*Config, error) {
	if p.Name == "" {
		return nil, fmt.Errorf("domain name cannot be empty")
	}
	if !p.TrustedIP.IsValid() {
		return nil, fmt.Errorf("trusted address is required")
	}
	if err := p.Coordination.Validate(); err != nil {
		return nil, fmt.Errorf("invalid coordination config: %w", err)
	}
	return &Config{
		name:         p.Name,
		trustedIP:    p.TrustedIP,
		adminIPs:     p.AdminIPs,
		serviceIPs:   p.ServiceIPs,
		untrustedIPs: p.UntrustedIPs,
		coordination: p.Coordination,
	}, nil
}

// ClassifyInventory derives the untrusted-address set from the live interface
// inventory:
//
//	untrusted = inventory - serviceIPs - adminIPs - {trustedIP}
//
// If the config already carries a non-empty untrusted set, whether from the
// file or from an earlier call, this is a no-op: explicit or
// previously-computed membership always wins over a later inventory snapshot.
// An empty result is stored as the absent (zero) set.
func (c *Config) ClassifyInventory(inventory AddressSet) {
	if !c.untrustedIPs.IsEmpty() {
		return
	}
	c.untrustedIPs = inventory.Difference(c.serviceIPs, c.adminIPs, NewAddressSet(c.trustedIP))
}

// Name returns the domain this daemon serves.
func (c *Config) Name() string { return c.name }

// TrustedIP returns the management address.
func (c *Config) TrustedIP() netip.Addr { return c.trustedIP }

// AdminIPs returns the administrative-network address set.
func (c *Config) AdminIPs() AddressSet { return c.adminIPs }

// ServiceIPs returns the internal-service-network address set.
func (c *Config) ServiceIPs() AddressSet { return c.serviceIPs }

// UntrustedIPs returns the untrusted address set. Empty means every
// inventory address was accounted for (or classification has not run).
func (c *Config) UntrustedIPs() AddressSet { return c.untrustedIPs }

// Coordination returns the coordination-service settings.
func (c *Config) Coordination() CoordinationConfig { return c.coordination }
