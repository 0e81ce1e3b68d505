// Package nicinfo turns the host's NIC metadata into a normalized address
// set.
//
// The metadata format has two generations. Records originally carried a
// single "ip" field; later images report an "ips" array whose entries carry a
// routing-prefix suffix ("10.0.0.10/24"). Both shapes are accepted, with the
// array taking precedence when a record has both.
package nicinfo

import (
	"encoding/json"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/sdcops/muppet/internal/adapters/metrics"
	"github.com/sdcops/muppet/internal/core/domain"
	"github.com/sdcops/muppet/internal/core/errors"
)

// nicRecord is the transient wire shape of one interface record. IPs is a
// pointer so a present-but-empty array still takes precedence over IP,
// matching the metadata producer's semantics.
type nicRecord struct {
	IPs *[]string `json:"ips"`
	IP  string    `json:"ip"`
}

// Parser converts raw NIC metadata into a domain.AddressSet.
type Parser struct {
	log *slog.Logger
}

// NewParser creates a parser. Per-entry skips are logged on log.
func NewParser(log *slog.Logger) *Parser {
	return &Parser{log: log}
}

// ParseInventory decodes a JSON array of NIC records into the deduplicated
// set of addresses assigned to the host.
//
// Entries that fail to parse as addresses, and records with no address
// fields at all, are skipped with a diagnostic; they never fail the
// operation. A document that does not decode as a record list fails with
// *errors.InventoryParseError.
func (p *Parser) ParseInventory(data []byte) (domain.AddressSet, error) {
	var records []nicRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return domain.AddressSet{}, errors.NewInventoryParseError(err)
	}

	var addrs []netip.Addr
	for i, rec := range records {
		addrs = append(addrs, p.recordAddrs(i, rec)...)
	}
	return domain.NewAddressSet(addrs...), nil
}

// recordAddrs resolves the record's shape and extracts its addresses.
func (p *Parser) recordAddrs(idx int, rec nicRecord) []netip.Addr {
	if rec.IPs != nil {
		var out []netip.Addr
		for _, entry := range *rec.IPs {
			// entries look like "10.0.0.10/24"; only the host part is wanted
			host, _, _ := strings.Cut(entry, "/")
			a, err := netip.ParseAddr(host)
			if err != nil {
				p.log.Warn("skipping unparsable address in nic record",
					slog.Int("record", idx), slog.String("entry", entry))
				metrics.RecordInventorySkip("bad_address")
				continue
			}
			out = append(out, a)
		}
		return out
	}

	if rec.IP != "" {
		a, err := netip.ParseAddr(rec.IP)
		if err != nil {
			p.log.Warn("skipping unparsable legacy ip in nic record",
				slog.Int("record", idx), slog.String("ip", rec.IP))
			metrics.RecordInventorySkip("bad_address")
			return nil
		}
		return []netip.Addr{a}
	}

	p.log.Warn("nic record has no addresses", slog.Int("record", idx))
	metrics.RecordInventorySkip("no_addresses")
	return nil
}
