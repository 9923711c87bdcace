package token

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned by [Decode] for every credential that does not
// decode: wrong segment count, undecodable payload segment, or a payload
// that is not a JSON object.
var ErrMalformed = errors.New("malformed credential")

const segmentCount = 3

// Payload is the decoded claims document carried in a credential's second
// segment. It is produced transiently by [Decode] and never persisted.
type Payload struct {
	claims jwt.MapClaims
}

// Decode splits raw on ".", base64url-decodes the payload segment, and
// parses it as JSON. It is deterministic, performs no I/O, and reduces
// every failure to [ErrMalformed].
func Decode(raw string) (*Payload, error) {
	segments := strings.Split(raw, ".")
	if len(segments) != segmentCount {
		return nil, fmt.Errorf("%w: expected %d segments, got %d", ErrMalformed, segmentCount, len(segments))
	}

	decoded, err := jwt.NewParser().DecodeSegment(segments[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload segment not base64url", ErrMalformed)
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(decoded, &claims); err != nil || claims == nil {
		return nil, fmt.Errorf("%w: payload segment not a JSON object", ErrMalformed)
	}

	return &Payload{claims: claims}, nil
}

// ExpiresAt returns the expiry carried in the "exp" claim. The second
// return value is false when the claim is absent or not numeric; a
// credential without a usable expiry is treated as non-expiring by the
// guard, so absence is not an error here.
func (p *Payload) ExpiresAt() (time.Time, bool) {
	if p == nil {
		return time.Time{}, false
	}

	exp, err := p.claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}

	return exp.Time, true
}

// Subject returns the "sub" claim when present.
func (p *Payload) Subject() (string, bool) {
	if p == nil {
		return "", false
	}

	sub, err := p.claims.GetSubject()
	if err != nil || sub == "" {
		return "", false
	}

	return sub, true
}

// Claim returns an arbitrary claim value by name.
func (p *Payload) Claim(name string) (any, bool) {
	if p == nil {
		return nil, false
	}

	v, ok := p.claims[name]
	return v, ok
}
