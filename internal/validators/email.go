package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
)

type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// EmailChecker accepts addresses whose domain has an MX record or resolves to a host.
type EmailChecker struct {
	resolver Resolver
}

func NewEmailChecker(r Resolver) *EmailChecker {
	if r == nil {
		r = net.DefaultResolver
	}
	return &EmailChecker{resolver: r}
}

func (c *EmailChecker) Valid(ctx context.Context, email string) bool {
	domain, ok := emailDomain(email)
	if !ok {
		return false
	}

	if mx, err := c.resolver.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	if hosts, err := c.resolver.LookupHost(ctx, domain); err == nil && len(hosts) > 0 {
		return true
	}
	return false
}

func emailDomain(email string) (string, bool) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return "", false
	}

	at := strings.LastIndex(addr.Address, "@")
	if at < 0 || at == len(addr.Address)-1 {
		return "", false
	}
	return addr.Address[at+1:], true
}
