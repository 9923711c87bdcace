package token

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"
)

func segment(t *testing.T, doc string) string {
	t.Helper()
	return base64.RawURLEncoding.EncodeToString([]byte(doc))
}

func credential(t *testing.T, payloadDoc string) string {
	t.Helper()
	return segment(t, `{"alg":"none"}`) + "." + segment(t, payloadDoc) + "." + segment(t, "sig")
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "opaque blob", raw: "not-a-jwt"},
		{name: "two segments", raw: "abc.def"},
		{name: "four segments", raw: "a.b.c.d"},
		{name: "payload not base64url", raw: "abc.!!!.ghi"},
		{name: "payload not json", raw: "abc." + base64.RawURLEncoding.EncodeToString([]byte("><garbage")) + ".ghi"},
		{name: "payload json scalar", raw: "abc." + base64.RawURLEncoding.EncodeToString([]byte("42")) + ".ghi"},
		{name: "payload json null", raw: "abc." + base64.RawURLEncoding.EncodeToString([]byte("null")) + ".ghi"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Decode(tc.raw)
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("expected ErrMalformed, got %v", err)
			}
			if payload != nil {
				t.Fatalf("expected nil payload on failure, got %+v", payload)
			}
		})
	}
}

func TestDecodeWellFormed(t *testing.T) {
	payload, err := Decode(credential(t, `{"sub":"user-1","exp":9999999999}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	exp, ok := payload.ExpiresAt()
	if !ok {
		t.Fatal("expected expiry to be present")
	}
	if want := time.Unix(9999999999, 0); !exp.Equal(want) {
		t.Fatalf("expiry mismatch: got %v want %v", exp, want)
	}

	sub, ok := payload.Subject()
	if !ok || sub != "user-1" {
		t.Fatalf("subject mismatch: got %q ok=%v", sub, ok)
	}
}

func TestDecodeIgnoresOtherSegments(t *testing.T) {
	// Header and signature segments carry no decision weight; only the
	// payload segment must decode.
	raw := "abc." + segment(t, `{"exp":9999999999}`) + ".ghi"

	payload, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if _, ok := payload.ExpiresAt(); !ok {
		t.Fatal("expected expiry to be present")
	}
}

func TestExpiresAtAbsentOrUnusable(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "no exp claim", doc: `{"sub":"user-1"}`},
		{name: "empty object", doc: `{}`},
		{name: "exp not numeric", doc: `{"exp":"tomorrow"}`},
		{name: "exp null", doc: `{"exp":null}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			payload, err := Decode(credential(t, tc.doc))
			if err != nil {
				t.Fatalf("decode failed: %v", err)
			}
			if _, ok := payload.ExpiresAt(); ok {
				t.Fatal("expected no usable expiry")
			}
		})
	}
}

func TestDecodeDeterministic(t *testing.T) {
	raw := credential(t, `{"exp":1}`)

	first, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	second, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	firstExp, _ := first.ExpiresAt()
	secondExp, _ := second.ExpiresAt()
	if !firstExp.Equal(secondExp) {
		t.Fatalf("decode not deterministic: %v vs %v", firstExp, secondExp)
	}
}

func TestClaim(t *testing.T) {
	payload, err := Decode(credential(t, `{"role":"admin"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	role, ok := payload.Claim("role")
	if !ok || role != "admin" {
		t.Fatalf("claim mismatch: got %v ok=%v", role, ok)
	}
	if _, ok := payload.Claim("missing"); ok {
		t.Fatal("expected missing claim to report absent")
	}
}

func TestNilPayloadAccessors(t *testing.T) {
	var payload *Payload
	if _, ok := payload.ExpiresAt(); ok {
		t.Fatal("nil payload must not report an expiry")
	}
	if _, ok := payload.Subject(); ok {
		t.Fatal("nil payload must not report a subject")
	}
	if _, ok := payload.Claim("exp"); ok {
		t.Fatal("nil payload must not report claims")
	}
}
