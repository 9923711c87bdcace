package token

import (
	"encoding/base64"
	"errors"
	"testing"
)

// FuzzDecode exercises the credential decoder with arbitrary inputs.
// Goal: no panics, every failure reduces to ErrMalformed, and accessors on
// a successful decode never panic either.
func FuzzDecode(f *testing.F) {
	payload := base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"user-1","exp":9999999999}`))

	f.Add("abc." + payload + ".ghi")
	f.Add("not-a-jwt")
	f.Add("")
	f.Add("..")
	f.Add("a.b.c.d")
	f.Add("abc.!!!.ghi")
	f.Add("abc." + base64.RawURLEncoding.EncodeToString([]byte("null")) + ".ghi")

	f.Fuzz(func(t *testing.T, raw string) {
		p, err := Decode(raw)
		if err != nil {
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("decode failure not ErrMalformed: %v", err)
			}
			return
		}

		_, _ = p.ExpiresAt()
		_, _ = p.Subject()
		_, _ = p.Claim("exp")
	})
}
