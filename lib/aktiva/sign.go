package aktiva

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
	"time"

	"aktiva-backend/lib/meritdate"
)

// Credentials identify one Merit Aktiva company. They are read-only and safe
// to share across concurrent signing calls.
type Credentials struct {
	ApiID  string
	ApiKey []byte
}

// Descriptor is the immutable representation a request is built from. Page
// parameters may ride either in Body or as a query string on URL; signing
// folds them together.
type Descriptor struct {
	URL  string
	Body map[string]any
}

// SignedRequest carries the final URL with the auth parameters appended and
// the canonical body bytes. The body bytes are exactly the bytes that were
// signed.
type SignedRequest struct {
	URL  string
	Body []byte
}

// Clock supplies the signing time. It is injected so signatures are
// reproducible in tests; production code passes nil and gets time.Now.
type Clock func() time.Time

// Authenticator turns a request descriptor into a signed request. Signer is
// the one concrete implementation; callers inject it when constructing a
// Client.
type Authenticator interface {
	Sign(desc Descriptor) (SignedRequest, error)
}

// Signer implements the vendor's signing protocol: the API id, a UTC
// timestamp and the canonical body bytes are concatenated in that order and
// signed with HMAC-SHA256 under the API key. ApiId, timestamp and signature
// then travel as URL query parameters while everything else travels in the
// body.
type Signer struct {
	creds Credentials
	now   Clock
}

func NewSigner(creds Credentials, now Clock) Signer {
	if now == nil {
		now = time.Now
	}
	return Signer{creds: creds, now: now}
}

func (s Signer) Sign(desc Descriptor) (SignedRequest, error) {
	if desc.URL == "" {
		return SignedRequest{}, fmt.Errorf("cannot sign a request without a URL")
	}

	baseURL, bodyBytes, err := Canonicalize(desc.URL, desc.Body)
	if err != nil {
		return SignedRequest{}, err
	}

	timestamp := meritdate.FormatTimestamp(s.now())

	mac := hmac.New(sha256.New, s.creds.ApiKey)
	mac.Write([]byte(s.creds.ApiID))
	mac.Write([]byte(timestamp))
	mac.Write(bodyBytes)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	// canonicalization stripped the query, so this is normally a fresh "?"
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	signedURL := fmt.Sprintf(
		"%s%sApiId=%s&timestamp=%s&signature=%s",
		baseURL, sep,
		url.QueryEscape(s.creds.ApiID),
		timestamp,
		url.QueryEscape(signature),
	)

	return SignedRequest{URL: signedURL, Body: bodyBytes}, nil
}
