package validators

import (
	"context"
	"net"
	"net/mail"
	"strings"
	"time"
)

const lookupTimeout = 3 * time.Second

// IsEmail confere só a sintaxe do endereço.
func IsEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return false
	}
	_, domain, _ := strings.Cut(email, "@")
	return strings.Contains(domain, ".")
}

// IsEmailDomainValid aceita o domínio se tiver MX ou, na falta, algum A/AAAA.
// Falha de DNS dentro do timeout conta como domínio inválido.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]

	ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
	defer cancel()

	var r net.Resolver
	if mx, err := r.LookupMX(ctx, domain); err == nil && len(mx) > 0 {
		return true
	}
	addrs, err := r.LookupIPAddr(ctx, domain)
	return err == nil && len(addrs) > 0
}
