package protocol

import (
	"errors"
	"testing"
)

func TestResponseAsText(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want string
	}{
		{
			name: "identity string with NUL padding",
			raw:  []byte("SM360-V2.1\x00\x00\x00\x00"),
			want: "SM360-V2.1",
		},
		{
			name: "readiness token",
			raw:  []byte("media_stop\x00"),
			want: ReadinessToken,
		},
		{
			name: "empty",
			raw:  nil,
			want: "",
		},
		{
			name: "invalid utf8 dropped",
			raw:  []byte{0xFF, 'o', 'k', 0x00},
			want: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NewResponse(tt.raw).AsText(); got != tt.want {
				t.Errorf("AsText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResponseAsNumbers(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []int64
		wantErr bool
	}{
		{
			name: "six field status",
			raw:  "2688-1420-1268-122880-3186-119694",
			want: []int64{2688, 1420, 1268, 122880, 3186, 119694},
		},
		{
			name: "single field",
			raw:  "42",
			want: []int64{42},
		},
		{
			name:    "non numeric field",
			raw:     "2688-1420-abc",
			wantErr: true,
		},
		{
			name:    "trailing delimiter",
			raw:     "2688-1420-",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResponse([]byte(tt.raw + "\x00")).AsNumbers()

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %v", got)
				}
				var malformed *MalformedStatusError
				if !errors.As(err, &malformed) {
					t.Errorf("error type = %T, want *MalformedStatusError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(got) != len(tt.want) {
				t.Fatalf("field count = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestResponseAsInteger(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int64
		wantErr bool
	}{
		{
			name: "file size",
			raw:  "1152859",
			want: 1152859,
		},
		{
			name: "not found",
			raw:  "0",
			want: 0,
		},
		{
			name: "surrounding whitespace",
			raw:  " 512 ",
			want: 512,
		},
		{
			name:    "text reply",
			raw:     "media_stop",
			wantErr: true,
		},
		{
			name:    "empty reply",
			raw:     "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResponse([]byte(tt.raw + "\x00")).AsInteger()

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %d", got)
				}
				var notInt *NotAnIntegerError
				if !errors.As(err, &notInt) {
					t.Errorf("error type = %T, want *NotAnIntegerError", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("AsInteger() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("2688-1420-1268-122880-3186-119694")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int64{2688, 1420, 1268, 122880, 3186, 119694}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("field %d = %d, want %d", i, got[i], want[i])
		}
	}

	if _, err := ParseStatus("2688-1420-abc"); err == nil {
		t.Error("expected error for non-numeric field")
	}
}
