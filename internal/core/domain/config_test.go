package domain

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCoordination() CoordinationConfig {
	return CoordinationConfig{
		Servers:        []CoordinationServer{{Host: "zk1.example.com", Port: 2181}},
		SessionTimeout: 30 * time.Second,
	}
}

func testConfig(t *testing.T, untrusted AddressSet) *Config {
	t.Helper()
	cfg, err := NewConfig(ConfigParams{
		Name:         "manta.example.com",
		TrustedIP:    addr(t, "127.0.0.1"),
		AdminIPs:     NewAddressSet(addr(t, "192.168.1.171")),
		ServiceIPs:   NewAddressSet(addr(t, "192.168.118.13")),
		UntrustedIPs: untrusted,
		Coordination: testCoordination(),
	})
	require.NoError(t, err)
	return cfg
}

func TestNewConfig_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params ConfigParams
		errMsg string
	}{
		{
			name: "missing name",
			params: ConfigParams{
				TrustedIP:    netip.MustParseAddr("127.0.0.1"),
				Coordination: testCoordination(),
			},
			errMsg: "domain name cannot be empty",
		},
		{
			name: "missing trusted address",
			params: ConfigParams{
				Name:         "manta.example.com",
				Coordination: testCoordination(),
			},
			errMsg: "trusted address is required",
		},
		{
			name: "empty ensemble",
			params: ConfigParams{
				Name:      "manta.example.com",
				TrustedIP: netip.MustParseAddr("127.0.0.1"),
			},
			errMsg: "no servers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(tt.params)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestClassifyInventory(t *testing.T) {
	cfg := testConfig(t, AddressSet{})

	inventory := NewAddressSet(
		addr(t, "192.168.1.171"),
		addr(t, "192.168.118.13"),
		addr(t, "127.0.0.1"),
		addr(t, "10.77.77.44"),
		addr(t, "10.77.77.55"),
	)
	cfg.ClassifyInventory(inventory)

	want := NewAddressSet(addr(t, "10.77.77.44"), addr(t, "10.77.77.55"))
	assert.True(t, cfg.UntrustedIPs().Equal(want), "got %s", cfg.UntrustedIPs())
}

func TestClassifyInventory_Invariants(t *testing.T) {
	cfg := testConfig(t, AddressSet{})

	inventory := NewAddressSet(
		addr(t, "192.168.1.171"),
		addr(t, "192.168.118.13"),
		addr(t, "127.0.0.1"),
		addr(t, "10.77.77.44"),
	)
	cfg.ClassifyInventory(inventory)

	untrusted := cfg.UntrustedIPs()
	assert.False(t, untrusted.Contains(cfg.TrustedIP()), "trusted address leaked into untrusted set")
	for _, a := range cfg.AdminIPs().Addrs() {
		assert.False(t, untrusted.Contains(a), "admin address %s leaked into untrusted set", a)
	}
	for _, a := range cfg.ServiceIPs().Addrs() {
		assert.False(t, untrusted.Contains(a), "service address %s leaked into untrusted set", a)
	}
}

func TestClassifyInventory_Idempotent(t *testing.T) {
	cfg := testConfig(t, AddressSet{})

	first := NewAddressSet(addr(t, "10.77.77.44"))
	cfg.ClassifyInventory(first)
	want := cfg.UntrustedIPs()
	require.False(t, want.IsEmpty())

	// a later, different snapshot must not overwrite the computed set
	cfg.ClassifyInventory(NewAddressSet(addr(t, "10.99.99.99")))
	assert.True(t, cfg.UntrustedIPs().Equal(want))

	// nor must the same snapshot
	cfg.ClassifyInventory(first)
	assert.True(t, cfg.UntrustedIPs().Equal(want))
}

func TestClassifyInventory_ExplicitConfigurationWins(t *testing.T) {
	pinned := NewAddressSet(addr(t, "172.16.0.9"))
	cfg := testConfig(t, pinned)

	cfg.ClassifyInventory(NewAddressSet(addr(t, "10.77.77.44")))
	assert.True(t, cfg.UntrustedIPs().Equal(pinned))
}

func TestClassifyInventory_EmptyResultIsAbsent(t *testing.T) {
	cfg := testConfig(t, AddressSet{})

	// every inventory address is accounted for
	cfg.ClassifyInventory(NewAddressSet(
		addr(t, "127.0.0.1"),
		addr(t, "192.168.1.171"),
		addr(t, "192.168.118.13"),
	))

	assert.True(t, cfg.UntrustedIPs().IsEmpty())
	assert.True(t, cfg.UntrustedIPs().Equal(AddressSet{}), "empty result must read as the absent set")
}
