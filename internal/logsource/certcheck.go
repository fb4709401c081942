package logsource

import (
	"context"
	"crypto/tls"
	"math"
	"net"
	"net/url"
	"time"
)

// CertStatus describes the leaf TLS certificate an HTTPArchive presents,
// for the archive's health report.
type CertStatus struct {
	Endpoint string
	AuthType string

	// Status is one of: valid | expiring | expired | unreachable.
	Status   string
	NotAfter string
	Issuer   string
	DaysLeft int32
}

// CheckCert dials endpoint's TLS handshake and reports on its leaf
// certificate. Returns nil for non-HTTPS endpoints — there is no
// certificate to inspect. Uses a 10-second dial timeout so an
// unreachable archive doesn't stall a health check indefinitely.
func CheckCert(ctx context.Context, endpoint string, auth Auth) *CertStatus {
	u, err := url.Parse(endpoint)
	if err != nil || u.Scheme != "https" {
		return nil
	}

	cs := &CertStatus{
		Endpoint: endpoint,
		AuthType: auth.Mode,
	}
	if cs.AuthType == "" {
		cs.AuthType = "none"
	}

	host := u.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "443")
	}

	dialCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{},
		Config: &tls.Config{
			InsecureSkipVerify: auth.InsecureSkipVerify, //nolint:gosec
		},
	}

	netConn, err := dialer.DialContext(dialCtx, "tcp", host)
	if err != nil {
		cs.Status = "unreachable"
		return cs
	}
	conn := netConn.(*tls.Conn)
	defer conn.Close()

	peerCerts := conn.ConnectionState().PeerCertificates
	if len(peerCerts) == 0 {
		cs.Status = "unreachable"
		return cs
	}

	leaf := peerCerts[0]
	now := time.Now()
	daysLeft := leaf.NotAfter.Sub(now).Hours() / 24

	cs.NotAfter = leaf.NotAfter.UTC().Format(time.RFC3339)
	cs.Issuer = leaf.Issuer.CommonName
	cs.DaysLeft = int32(math.Floor(daysLeft))

	switch {
	case daysLeft <= 0:
		cs.Status = "expired"
	case daysLeft <= 30:
		cs.Status = "expiring"
	default:
		cs.Status = "valid"
	}

	return cs
}
