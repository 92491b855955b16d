package delegation

import (
	"encoding/base64"
	"encoding/json"
)

// Codec converts signed delegations to and from their transport form: the
// JSON serialization encoded as unpadded URL-safe base64. This is the exact
// format recipients must implement to interoperate, and the round trip is
// lossless for every structurally valid signed delegation.
type Codec struct{}

// NewCodec returns a delegation codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Encode serializes a signed delegation to its URL-safe transport string.
func (c *Codec) Encode(signed *SignedDelegation) (string, error) {
	payload, err := json.Marshal(signed)
	if err != nil {
		return "", &CodecError{Reason: "failed to serialize delegation", Err: err}
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

// Decode reverses Encode. It fails with CodecError when the input is not
// valid URL-safe base64, when the decoded bytes are not valid JSON, or when
// required delegation fields are absent.
func (c *Codec) Decode(encoded string) (*SignedDelegation, error) {
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &CodecError{Reason: "input is not URL-safe base64", Err: err}
	}

	var signed SignedDelegation
	if err := json.Unmarshal(payload, &signed); err != nil {
		return nil, &CodecError{Reason: "decoded bytes are not a valid delegation document", Err: err}
	}

	if signed.Delegate == (zeroAddress) {
		return nil, &CodecError{Reason: "delegation is missing the delegate address"}
	}
	if signed.Delegator == (zeroAddress) {
		return nil, &CodecError{Reason: "delegation is missing the delegator address"}
	}
	if len(signed.Signature) == 0 {
		return nil, &CodecError{Reason: "delegation is missing its signature"}
	}

	return &signed, nil
}
