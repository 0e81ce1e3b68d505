package nicinfo

import (
	stderrors "errors"
	"io"
	"log/slog"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdcops/muppet/internal/core/domain"
	"github.com/sdcops/muppet/internal/core/errors"
)

// mixedNicsFixture is real metadata output: records with both ips and ip,
// only ip, and no addresses at all.
const mixedNicsFixture = `[
   {
      "ips" : ["192.168.1.171/24"],
      "mac" : "90:b8:d0:22:26:65",
      "mtu" : 1500,
      "vlan_id" : 0,
      "interface" : "net0",
      "ip" : "192.168.1.171",
      "netmask" : "255.255.255.0",
      "nic_tag" : "admin"
   },
   {
      "netmask" : "255.255.255.0",
      "ip" : "192.168.118.13",
      "mac" : "90:b8:d0:8d:17:1d",
      "vlan_id" : 0,
      "nic_tag" : "external",
      "primary" : true,
      "interface" : "net1",
      "gateway" : "192.168.118.1",
      "mtu" : 1500
   },
   {
      "ips" : ["10.77.77.44/24"],
      "vlan_id" : 0,
      "mtu" : 1500,
      "mac" : "90:b8:d0:00:c0:aa",
      "interface" : "net2",
      "nic_tag" : "manta",
      "netmask" : "255.255.255.0"
   },
   {
      "mac" : "90:b8:d0:bd:4c:a6",
      "vlan_id" : 0,
      "netmask" : "255.255.255.0",
      "gateway" : "10.66.66.2",
      "mtu" : 1500,
      "nic_tag" : "mantanat",
      "interface" : "net3"
   }
]`

func testParser() *Parser {
	return NewParser(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func wantSet(t *testing.T, literals ...string) domain.AddressSet {
	t.Helper()
	addrs := make([]netip.Addr, len(literals))
	for i, s := range literals {
		a, err := netip.ParseAddr(s)
		require.NoError(t, err)
		addrs[i] = a
	}
	return domain.NewAddressSet(addrs...)
}

func TestParseInventory_MixedRecordShapes(t *testing.T) {
	got, err := testParser().ParseInventory([]byte(mixedNicsFixture))
	require.NoError(t, err)

	want := wantSet(t, "192.168.1.171", "192.168.118.13", "10.77.77.44")
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func TestParseInventory_RecordShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "legacy single address",
			input: `[{"ip": "192.168.118.13"}]`,
			want:  []string{"192.168.118.13"},
		},
		{
			name:  "multi address with prefix",
			input: `[{"ips": ["10.0.0.10/24"]}]`,
			want:  []string{"10.0.0.10"},
		},
		{
			name:  "multi address without prefix",
			input: `[{"ips": ["10.0.0.10"]}]`,
			want:  []string{"10.0.0.10"},
		},
		{
			name:  "ips wins over ip when both present",
			input: `[{"ips": ["10.0.0.10/24"], "ip": "192.168.118.13"}]`,
			want:  []string{"10.0.0.10"},
		},
		{
			name:  "present but empty ips still wins",
			input: `[{"ips": [], "ip": "192.168.118.13"}]`,
			want:  nil,
		},
		{
			name:  "no address fields",
			input: `[{"mac": "90:b8:d0:bd:4c:a6", "interface": "net3"}]`,
			want:  nil,
		},
		{
			name:  "ipv6 entries",
			input: `[{"ips": ["fd00:1234::10/64"]}]`,
			want:  []string{"fd00:1234::10"},
		},
		{
			name:  "duplicates across records collapse",
			input: `[{"ips": ["10.0.0.10/24"]}, {"ip": "10.0.0.10"}]`,
			want:  []string{"10.0.0.10"},
		},
		{
			name:  "empty list",
			input: `[]`,
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := testParser().ParseInventory([]byte(tt.input))
			require.NoError(t, err)
			assert.True(t, got.Equal(wantSet(t, tt.want...)), "got %s, want %v", got, tt.want)
		})
	}
}

func TestParseInventory_SkipsUnparsableEntries(t *testing.T) {
	input := `[{"ips": ["10.0.0.10/24", "not-an-address/24", "10.0.0.11/24"]}]`

	got, err := testParser().ParseInventory([]byte(input))
	require.NoError(t, err, "a bad entry must not fail the whole operation")

	want := wantSet(t, "10.0.0.10", "10.0.0.11")
	assert.True(t, got.Equal(want), "got %s, want %s", got, want)
}

func TestParseInventory_MalformedDocument(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not json", input: `mdata-get: command not found`},
		{name: "not a list", input: `{"ip": "10.0.0.1"}`},
		{name: "truncated", input: `[{"ips": ["10.0.0.10/24"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testParser().ParseInventory([]byte(tt.input))
			require.Error(t, err)

			var pe *errors.InventoryParseError
			assert.True(t, stderrors.As(err, &pe), "want *InventoryParseError, got %T", err)
		})
	}
}
