package protocol

import (
	"encoding/json"

	gkerrors "github.com/chatkc/gokc/pkg/errors"
)

// Every wire frame is a single flat JSON object carrying a lowercase "type"
// discriminant and a "data" payload. Outbound frames additionally flatten the
// authentication descriptor's fields ("auth", "token") into the same object;
// the server rejects nested auth.

type inboundEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type outboundEnvelope struct {
	Auth  string   `json:"auth"`
	Token string   `json:"token"`
	Type  string   `json:"type"`
	Data  Outbound `json:"data"`
}

// Encode serializes an outbound frame together with the authentication
// descriptor. Pure and synchronous; no network awareness.
func Encode(frame Outbound, auth Auth) ([]byte, error) {
	return json.Marshal(outboundEnvelope{
		Auth:  auth.Provider(),
		Token: auth.Token(),
		Type:  frame.outboundType(),
		Data:  frame,
	})
}

// Decode parses one inbound frame. A recognized type tag with a malformed
// payload yields a *errors.DecodeError; an unrecognized type tag yields a
// *errors.UnknownFrameTypeError. Unknown fields inside a well-formed payload
// are tolerated, so schema additions on the server do not break the client.
func Decode(raw []byte) (Frame, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, &gkerrors.DecodeError{FrameType: "", Cause: err}
	}

	var frame Frame
	var err error
	switch env.Type {
	case "accepted":
		f := Accepted{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	case "authlevel":
		f := AuthLevel{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	case "chat":
		f := Chat{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	case "delete":
		f := Delete{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	case "getuserconf":
		f := GetUserConf{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	case "join":
		f := Join{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	case "part":
		f := Part{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	case "servermsg":
		f := ServerMsg{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	case "status":
		f := Status{}
		err = json.Unmarshal(env.Data, &f)
		frame = f
	default:
		return nil, &gkerrors.UnknownFrameTypeError{FrameType: env.Type}
	}

	if err != nil {
		return nil, &gkerrors.DecodeError{FrameType: env.Type, Cause: err}
	}
	return frame, nil
}
