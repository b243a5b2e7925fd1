package emailverify

import (
	"context"
	"net"
	"strings"
)

// Result is the outcome of a domain verification.
type Result struct {
	Valid  bool
	Reason string
}

// Verification reasons, surfaced verbatim to API clients.
const (
	ReasonDisposable = "Known fake or disposable domain"
	ReasonValid      = "Valid domain"
	ReasonNoDNS      = "No DNS records found for domain"
)

// Resolver is the DNS lookup boundary. *net.Resolver satisfies it.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// Verifier checks whether an email domain plausibly receives mail: not on
// the disposable-provider blocklist and resolving to at least one MX or A
// record.
//
// Verification fails closed: a DNS lookup error counts as invalid. Rejecting
// sign-ups beats admitting unverifiable domains, at the cost of false
// negatives during DNS outages.
type Verifier struct {
	resolver  Resolver
	blocklist map[string]struct{}
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithResolver overrides the DNS resolver.
func WithResolver(r Resolver) Option {
	return func(v *Verifier) {
		if r != nil {
			v.resolver = r
		}
	}
}

// WithBlocklist replaces the default disposable-provider blocklist.
func WithBlocklist(domains []string) Option {
	return func(v *Verifier) {
		v.blocklist = make(map[string]struct{}, len(domains))
		for _, d := range domains {
			v.blocklist[strings.ToLower(d)] = struct{}{}
		}
	}
}

// New creates a Verifier with the system resolver and default blocklist.
func New(opts ...Option) *Verifier {
	v := &Verifier{
		resolver: net.DefaultResolver,
	}
	WithBlocklist(defaultBlocklist)(v)
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify checks the domain. Blocklisted domains are rejected without a
// single DNS query.
func (v *Verifier) Verify(ctx context.Context, domain string) Result {
	domain = strings.ToLower(strings.TrimSpace(domain))

	if _, blocked := v.blocklist[domain]; blocked {
		return Result{Valid: false, Reason: ReasonDisposable}
	}

	if v.hasDNSRecords(ctx, domain) {
		return Result{Valid: true, Reason: ReasonValid}
	}
	return Result{Valid: false, Reason: ReasonNoDNS}
}

// hasDNSRecords checks MX first and falls back to A records. Lookup errors
// are treated as no records.
func (v *Verifier) hasDNSRecords(ctx context.Context, domain string) bool {
	if mx, err := v.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}

	hosts, err := v.resolver.LookupHost(ctx, domain)
	return err == nil && len(hosts) > 0
}
