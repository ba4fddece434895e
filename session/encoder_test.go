package session

import (
	"testing"
	"time"
)

func sampleToken() *Token {
	now := time.Now()
	return &Token{
		Username: "alice",
		UserID:   "3141592653",
		Entries: []Entry{
			{Name: "csrftoken", Value: "c5rF70k3n"},
			{Name: "ds_user_id", Value: "3141592653"},
			{Name: "mid", Value: "ZxYwVu"},
			{Name: "sessionid", Value: "3141592653%3Aabcdef%3A27"},
		},
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(90 * 24 * time.Hour).Unix(),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tok := sampleToken()

	data, err := Encode(tok)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Username != tok.Username {
		t.Errorf("username = %q, want %q", got.Username, tok.Username)
	}
	if got.UserID != tok.UserID {
		t.Errorf("userID = %q, want %q", got.UserID, tok.UserID)
	}
	if got.CreatedAt != tok.CreatedAt || got.ExpiresAt != tok.ExpiresAt {
		t.Errorf("timestamps = (%d, %d), want (%d, %d)",
			got.CreatedAt, got.ExpiresAt, tok.CreatedAt, tok.ExpiresAt)
	}
	if len(got.Entries) != len(tok.Entries) {
		t.Fatalf("entries = %d, want %d", len(got.Entries), len(tok.Entries))
	}
	for i, e := range tok.Entries {
		if got.Entries[i] != e {
			t.Errorf("entry %d = %+v, want %+v", i, got.Entries[i], e)
		}
	}
}

func TestDecodeRejectsUnknownVersion(t *testing.T) {
	data, err := Encode(sampleToken())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	data[0] = 99

	if _, err := Decode(data); err == nil {
		t.Fatal("expected error for unknown format version")
	}
}

func TestDecodeRejectsTruncatedInput(t *testing.T) {
	data, err := Encode(sampleToken())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	for cut := 0; cut < len(data); cut += 3 {
		if _, err := Decode(data[:cut]); err == nil {
			t.Fatalf("expected error for input truncated at %d bytes", cut)
		}
	}
}

func TestTokenAccessors(t *testing.T) {
	tok := sampleToken()

	if got := tok.SessionID(); got != "3141592653%3Aabcdef%3A27" {
		t.Errorf("SessionID = %q", got)
	}
	if got := tok.CSRFToken(); got != "c5rF70k3n" {
		t.Errorf("CSRFToken = %q", got)
	}
	if _, ok := tok.Value("nope"); ok {
		t.Error("Value returned ok for missing entry")
	}

	if tok.Expired(time.Now()) {
		t.Error("fresh token reported expired")
	}
	if !tok.Expired(time.Unix(tok.ExpiresAt, 0)) {
		t.Error("token not expired exactly at its expiry")
	}
}
