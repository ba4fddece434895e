package mailbox

import "testing"

func TestExtractCode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		pattern string
		want    string
		ok      bool
	}{
		{
			name: "plain six digits",
			body: "Your verification code is 482913. Don't share it.",
			want: "482913", ok: true,
		},
		{
			name: "first code wins",
			body: "code 111111 or maybe 222222",
			want: "111111", ok: true,
		},
		{
			name: "too short",
			body: "code 12345 only",
			ok:   false,
		},
		{
			name: "embedded in longer number",
			body: "order 12345678 shipped",
			ok:   false,
		},
		{
			name:    "custom pattern with group",
			body:    "security token: AB-9981",
			pattern: `token: AB-(\d{4})`,
			want:    "9981", ok: true,
		},
		{
			name:    "custom pattern without group",
			body:    "pin 7777 set",
			pattern: `\d{4}`,
			want:    "7777", ok: true,
		},
		{
			name:    "invalid pattern",
			body:    "code 482913",
			pattern: `([`,
			ok:      false,
		},
		{
			name: "empty body",
			body: "",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractCode(tt.body, tt.pattern)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ExtractCode = (%q, %v), want (%q, %v)", got, ok, tt.want, tt.ok)
			}
		})
	}
}
