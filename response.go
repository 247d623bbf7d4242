package share

// CreateResponse is the JSON envelope handed to a UI after Create. Error
// holds only the fixed ShareError message.
type CreateResponse struct {
	Success   bool   `json:"success"`
	Data      string `json:"data,omitempty"`
	Key       string `json:"key,omitempty"`
	Mode      Mode   `json:"mode,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// DecodeResponse is the JSON envelope handed to a UI after Decode.
type DecodeResponse struct {
	Success   bool   `json:"success"`
	JSON      string `json:"json,omitempty"`
	CreatedAt uint64 `json:"createdAt,omitempty"`
	Mode      Mode   `json:"mode,omitempty"`
	Error     string `json:"error,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// NewCreateResponse builds the envelope for the outcome of Create.
func NewCreateResponse(p *SharePayload, err error) CreateResponse {
	if err != nil {
		e := asShareError(err)
		return CreateResponse{Error: e.Error(), ErrorCode: e.Code()}
	}
	return CreateResponse{
		Success: true,
		Data:    p.Data,
		Key:     p.Key,
		Mode:    p.Mode(),
	}
}

// NewDecodeResponse builds the envelope for the outcome of Decode. In
// passphrase mode a decryption failure is reported with CodeWrongPassphrase.
func NewDecodeResponse(r *DecodeResult, err error, isPassphrase bool) DecodeResponse {
	if err != nil {
		return DecodeResponse{
			Error:     asShareError(err).Error(),
			ErrorCode: ErrorCode(err, isPassphrase),
		}
	}
	return DecodeResponse{
		Success:   true,
		JSON:      r.JSON,
		CreatedAt: r.CreatedAt,
		Mode:      r.Mode,
	}
}
