// Package config loads the daemon configuration from disk.
//
// Two generations of the schema are accepted. The current schema uses
// snake_case keys (trusted_ip, admin_ips, service_ips, untrusted_ips); the
// legacy schema used camelCase (trustedIP, adminIPs, mantaIPs, untrustedIPs).
// Legacy keys are normalized onto the current ones before decoding, so both
// spellings of a file produce the same Config.
package config

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"net/netip"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/sdcops/muppet/internal/core/domain"
	"github.com/sdcops/muppet/internal/core/errors"
)

// fileConfig is the wire shape of the configuration file, after legacy-key
// normalization. Address fields stay strings here so a bad literal can be
// reported with its field name.
type fileConfig struct {
	Name         string    `mapstructure:"name" validate:"required"`
	TrustedIP    string    `mapstructure:"trusted_ip" validate:"required,ipaddr"`
	AdminIPs     []string  `mapstructure:"admin_ips" validate:"omitempty,dive,ipaddr"`
	ServiceIPs   []string  `mapstructure:"service_ips" validate:"omitempty,dive,ipaddr"`
	UntrustedIPs []string  `mapstructure:"untrusted_ips" validate:"omitempty,dive,ipaddr"`
	Zookeeper    zookeeper `mapstructure:"zookeeper" validate:"required"`
}

type zookeeper struct {
	Servers []zkServer `mapstructure:"servers" validate:"required,min=1,dive"`
	Timeout uint64     `mapstructure:"timeout" validate:"required,gt=0"` // milliseconds
}

type zkServer struct {
	Host string `mapstructure:"host" validate:"required"`
	Port uint16 `mapstructure:"port" validate:"required"`
}

// legacyKeys maps the camelCase schema onto the current one. Viper lowercases
// keys on read, so the lookups are against the lowercased spellings. mantaIPs
// is the old name of the internal-service network set.
var legacyKeys = map[string]string{
	"trustedip":    "trusted_ip",
	"adminips":     "admin_ips",
	"mantaips":     "service_ips",
	"untrustedips": "untrusted_ips",
}

// FileProvider implements ports.ConfigurationProvider over a JSON file.
type FileProvider struct {
	validate *domain.Validator
}

// NewFileProvider creates a provider.
func NewFileProvider() *FileProvider {
	return &FileProvider{validate: domain.NewValidator()}
}

// Load reads, decodes, and validates the configuration at path.
func (p *FileProvider) Load(ctx context.Context, path string) (*domain.Config, error) {
	if ctx != nil {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("configuration loading canceled: %w", ctx.Err())
		default:
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewConfigIOError(path, err)
	}

	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.NewConfigDecodeError(path, "", err)
	}

	settings := normalizeLegacyKeys(v.AllSettings())

	var wire fileConfig
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &wire,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, errors.NewConfigDecodeError(path, "", err)
	}
	if err := dec.Decode(settings); err != nil {
		return nil, errors.NewConfigDecodeError(path, "", err)
	}

	if err := p.validate.Struct(wire); err != nil {
		var verrs validator.ValidationErrors
		if stderrors.As(err, &verrs) && len(verrs) > 0 {
			e := verrs[0]
			return nil, errors.NewConfigDecodeError(path, fieldName(e),
				fmt.Errorf("value %q fails %q validation", fmt.Sprintf("%v", e.Value()), e.Tag()))
		}
		return nil, errors.NewConfigDecodeError(path, "", err)
	}

	return p.toDomain(path, wire)
}

// toDomain converts the validated wire form into the domain Config.
func (p *FileProvider) toDomain(path string, wire fileConfig) (*domain.Config, error) {
	trusted, err := netip.ParseAddr(wire.TrustedIP)
	if err != nil {
		return nil, errors.NewConfigDecodeError(path, "trusted_ip", err)
	}

	admin, err := parseAddrSet(path, "admin_ips", wire.AdminIPs)
	if err != nil {
		return nil, err
	}
	service, err := parseAddrSet(path, "service_ips", wire.ServiceIPs)
	if err != nil {
		return nil, err
	}
	untrusted, err := parseAddrSet(path, "untrusted_ips", wire.UntrustedIPs)
	if err != nil {
		return nil, err
	}

	servers := make([]domain.CoordinationServer, len(wire.Zookeeper.Servers))
	for i, s := range wire.Zookeeper.Servers {
		servers[i] = domain.CoordinationServer{Host: s.Host, Port: s.Port}
	}

	cfg, err := domain.NewConfig(domain.ConfigParams{
		Name:         wire.Name,
		TrustedIP:    trusted,
		AdminIPs:     admin,
		ServiceIPs:   service,
		UntrustedIPs: untrusted,
		Coordination: domain.CoordinationConfig{
			Servers:        servers,
			SessionTimeout: time.Duration(wire.Zookeeper.Timeout) * time.Millisecond,
		},
	})
	if err != nil {
		return nil, errors.NewConfigDecodeError(path, "", err)
	}
	return cfg, nil
}

func parseAddrSet(path, field string, literals []string) (domain.AddressSet, error) {
	addrs := make([]netip.Addr, 0, len(literals))
	for i, lit := range literals {
		a, err := netip.ParseAddr(lit)
		if err != nil {
			return domain.AddressSet{}, errors.NewConfigDecodeError(path,
				fmt.Sprintf("%s[%d]", field, i), err)
		}
		addrs = append(addrs, a)
	}
	return domain.NewAddressSet(addrs...), nil
}

// normalizeLegacyKeys rewrites legacy top-level keys onto their current
// names. A current-schema key wins if both spellings are present.
func normalizeLegacyKeys(settings map[string]interface{}) map[string]interface{} {
	for legacy, current := range legacyKeys {
		val, ok := settings[legacy]
		if !ok {
			continue
		}
		if _, exists := settings[current]; !exists {
			settings[current] = val
		}
		delete(settings, legacy)
	}
	return settings
}

// fieldName renders a validator namespace like
// "fileConfig.Zookeeper.Servers[0].Host" as "zookeeper.servers[0].host".
func fieldName(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return strings.ToLower(ns)
}
