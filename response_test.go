package share

import (
	"encoding/json"
	"testing"
)

func TestNewCreateResponse(t *testing.T) {
	t.Run("quick", func(t *testing.T) {
		resp := NewCreateResponse(&SharePayload{Data: "abc", Key: "k"}, nil)
		want := CreateResponse{Success: true, Data: "abc", Key: "k", Mode: ModeQuick}
		if resp != want {
			t.Errorf("resp = %+v, want %+v", resp, want)
		}
	})

	t.Run("protected", func(t *testing.T) {
		resp := NewCreateResponse(&SharePayload{Data: "abc"}, nil)
		if resp.Mode != ModeProtected || resp.Key != "" {
			t.Errorf("resp = %+v, want protected without key", resp)
		}
	})

	t.Run("error", func(t *testing.T) {
		resp := NewCreateResponse(nil, ErrPayloadTooLarge)
		if resp.Success {
			t.Error("Success = true on error")
		}
		if resp.Error != ErrPayloadTooLarge.Error() {
			t.Errorf("Error = %q", resp.Error)
		}
		if resp.ErrorCode != CodeInvalidPayload {
			t.Errorf("ErrorCode = %q, want %q", resp.ErrorCode, CodeInvalidPayload)
		}
	})
}

func TestNewDecodeResponse(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isPassphrase bool
		wantCode     string
		wantMessage  string
	}{
		{"wrong passphrase", ErrDecryptionFailed, true, CodeWrongPassphrase, ErrDecryptionFailed.Error()},
		{"corrupted quick link", ErrDecryptionFailed, false, CodeDecryptionFailed, ErrDecryptionFailed.Error()},
		{"expired", ErrExpired, false, CodeExpired, ErrExpired.Error()},
		{"bad encoding", ErrInvalidBase64, true, CodeInvalidBase64, ErrInvalidBase64.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewDecodeResponse(nil, tt.err, tt.isPassphrase)
			if resp.Success {
				t.Error("Success = true on error")
			}
			if resp.ErrorCode != tt.wantCode {
				t.Errorf("ErrorCode = %q, want %q", resp.ErrorCode, tt.wantCode)
			}
			if resp.Error != tt.wantMessage {
				t.Errorf("Error = %q, want %q", resp.Error, tt.wantMessage)
			}
		})
	}

	t.Run("success", func(t *testing.T) {
		r := &DecodeResult{JSON: `{"a":1}`, CreatedAt: 1706367600, Mode: ModeQuick}
		resp := NewDecodeResponse(r, nil, false)
		want := DecodeResponse{Success: true, JSON: `{"a":1}`, CreatedAt: 1706367600, Mode: ModeQuick}
		if resp != want {
			t.Errorf("resp = %+v, want %+v", resp, want)
		}
	})
}

func TestResponse_JSONShape(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{
			name:     "create success",
			value:    CreateResponse{Success: true, Data: "d", Key: "k", Mode: ModeQuick},
			expected: `{"success":true,"data":"d","key":"k","mode":"quick"}`,
		},
		{
			name:     "create error",
			value:    NewCreateResponse(nil, ErrEmptyInput),
			expected: `{"success":false,"error":"Input is empty","errorCode":"invalid_payload"}`,
		},
		{
			name:     "decode success",
			value:    DecodeResponse{Success: true, JSON: `{}`, CreatedAt: 1, Mode: ModeProtected},
			expected: `{"success":true,"json":"{}","createdAt":1,"mode":"protected"}`,
		},
		{
			name:     "decode wrong passphrase",
			value:    NewDecodeResponse(nil, ErrDecryptionFailed, true),
			expected: `{"success":false,"error":"Unable to decrypt - the link may be corrupted","errorCode":"wrong_passphrase"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			if err != nil {
				t.Fatal(err)
			}
			if string(got) != tt.expected {
				t.Errorf("json = %s, want %s", got, tt.expected)
			}
		})
	}
}
