package utf

import "testing"

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		enc  Encoding
		want string
	}{
		{"utf8 ascii", []byte("apple"), UTF8, "apple"},
		{"utf8 multibyte", []byte("日本"), UTF8, "日本"},
		{"utf8 empty", nil, UTF8, ""},
		{"utf16le ascii", []byte{'h', 0, 'i', 0}, UTF16LE, "hi"},
		{"utf16be ascii", []byte{0, 'h', 0, 'i'}, UTF16BE, "hi"},
		{"utf16le BMP", []byte{0xE5, 0x65}, UTF16LE, "日"},
		{"utf16le surrogate pair", []byte{0x00, 0xD8, 0x48, 0xDF}, UTF16LE, "\U00010348"},
		{"utf16be surrogate pair", []byte{0xD8, 0x00, 0xDF, 0x48}, UTF16BE, "\U00010348"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.data, tt.enc)
			if err != nil {
				t.Fatalf("DecodeText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEncodingString(t *testing.T) {
	tests := []struct {
		enc  Encoding
		want string
	}{
		{UTF8, "utf8"},
		{UTF16LE, "utf16le"},
		{UTF16BE, "utf16be"},
	}
	for _, tt := range tests {
		if got := tt.enc.String(); got != tt.want {
			t.Errorf("Encoding(%d).String() = %q, want %q", tt.enc, got, tt.want)
		}
	}
}
