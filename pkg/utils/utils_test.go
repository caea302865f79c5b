package utils

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"mytube.com/pkg/errno"
)

func TestCrypt(t *testing.T) {
	hash, err := Crypt("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in clear")
	}
	if !VerifyPassword("s3cret", hash) {
		t.Error("correct password rejected")
	}
	if VerifyPassword("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestHashToken(t *testing.T) {
	a, b := HashToken("token-a"), HashToken("token-b")
	if len(a) != 64 || a == b || a != HashToken("token-a") {
		t.Errorf("HashToken: %s %s", a, b)
	}
}

func TestCheckID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		ok   bool
	}{
		{"uuid", uuid.NewString(), true},
		{"empty", "", false},
		{"garbage", "not-an-id", false},
		{"braced", "{" + uuid.NewString() + "}", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckID(tt.id, "video")
			if tt.ok != (err == nil) {
				t.Fatalf("CheckID(%q) = %v", tt.id, err)
			}
			if err != nil && (!errors.Is(err, errno.ValidationErr) || errno.ConvertErr(err).ErrMsg != "Invalid video id") {
				t.Errorf("err = %v", err)
			}
		})
	}
	if err := CheckOptionalID("", "user"); err != nil {
		t.Errorf("CheckOptionalID empty = %v", err)
	}
}

func TestParseProbeDuration(t *testing.T) {
	d, err := parseProbeDuration(`{"streams":[],"format":{"filename":"a.mp4","duration":"12.480000"}}`)
	if err != nil || d != 12.48 {
		t.Errorf("duration = %v, %v", d, err)
	}
	if _, err := parseProbeDuration(`{"format":{}}`); err == nil {
		t.Error("missing duration accepted")
	}
}
