package oss

import "testing"

func TestObjectKey(t *testing.T) {
	const public = "http://127.0.0.1:9000/"
	url := objectURL(public, "mytube", "video/abc.mp4")
	if url != "http://127.0.0.1:9000/mytube/video/abc.mp4" {
		t.Fatalf("objectURL = %s", url)
	}

	tests := []struct {
		name string
		url  string
		key  string
		ok   bool
	}{
		{"round trip", url, "video/abc.mp4", true},
		{"other bucket", "http://127.0.0.1:9000/other/video/abc.mp4", "", false},
		{"other host", "http://cdn.example.com/mytube/video/abc.mp4", "", false},
		{"bucket root", "http://127.0.0.1:9000/mytube/", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := objectKey(public, "mytube", tt.url)
			if key != tt.key || ok != tt.ok {
				t.Errorf("objectKey(%q) = %q, %v; want %q, %v", tt.url, key, ok, tt.key, tt.ok)
			}
		})
	}
}
