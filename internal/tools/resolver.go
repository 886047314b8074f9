package tools

import (
	"context"
	"net"
	"strings"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultResolvConf is read to find the system resolvers.
const DefaultResolvConf = "/etc/resolv.conf"

// Resolver looks up the authoritative name server of a zone.
type Resolver struct {
	Servers []string // host:port
	Client  *dns.Client
}

// NewResolver uses the name servers listed in resolvConf.
func NewResolver(resolvConf string) (*Resolver, error) {
	conf, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", resolvConf)
	}

	r := &Resolver{Client: new(dns.Client)}
	for _, s := range conf.Servers {
		r.Servers = append(r.Servers, net.JoinHostPort(s, conf.Port))
	}

	return r, nil
}

// AuthoritativeServer returns the primary name server found in the SOA record of zone.
func (r *Resolver) AuthoritativeServer(ctx context.Context, zone string) (string, error) {
	client := r.Client
	if client == nil {
		client = new(dns.Client)
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(zone), dns.TypeSOA)

	for _, server := range r.Servers {
		in, _, err := client.ExchangeContext(ctx, m, server)
		if err != nil {
			log.Debug().Err(err).Str("resolver", server).Str("zone", zone).Msg("SOA lookup failed")
			continue
		}

		for _, rr := range in.Answer {
			if soa, ok := rr.(*dns.SOA); ok {
				return strings.TrimSuffix(soa.Ns, "."), nil
			}
		}
	}

	return "", errors.Wrap(ErrNoAuthoritativeServer, zone)
}
