package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gkerrors "github.com/chatkc/gokc/pkg/errors"
)

func TestDecodeChat(t *testing.T) {
	raw := []byte(`{
		"type": "chat",
		"data": {
			"auth": 1,
			"author": "ada",
			"author_color": "ff0000",
			"author_id": 42,
			"author_level": 2,
			"donate_value": "",
			"id": 1337,
			"message": "hello &amp; welcome",
			"reply": 0,
			"time": 1700000000000
		}
	}`)

	frame, err := Decode(raw)
	require.NoError(t, err)

	chat, ok := frame.(Chat)
	require.True(t, ok, "expected a chat frame, got %T", frame)
	assert.Equal(t, uint64(1), chat.Auth)
	assert.Equal(t, "ada", chat.Author)
	assert.Equal(t, "ff0000", chat.AuthorColor)
	assert.Equal(t, uint64(42), chat.AuthorID)
	assert.Equal(t, uint64(2), chat.AuthorLevel)
	assert.Equal(t, "", chat.DonateValue)
	assert.Equal(t, uint64(1337), chat.ID)
	assert.Equal(t, "hello &amp; welcome", chat.Message)
	assert.Equal(t, uint64(0), chat.Reply)
	assert.Equal(t, int64(1700000000000), chat.Time)
}

func TestDecodeVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want Frame
	}{
		{
			name: "accepted",
			raw:  `{"type":"accepted","data":{"message":"welcome"}}`,
			want: Accepted{Message: "welcome"},
		},
		{
			name: "authlevel",
			raw:  `{"type":"authlevel","data":{"value":3}}`,
			want: AuthLevel{Value: 3},
		},
		{
			name: "delete",
			raw:  `{"type":"delete","data":{"messages":[4,8,15]}}`,
			want: Delete{Messages: []uint64{4, 8, 15}},
		},
		{
			name: "getuserconf",
			raw:  `{"type":"getuserconf","data":{"color":"00ff00","name":"ada"}}`,
			want: GetUserConf{Color: "00ff00", Name: "ada"},
		},
		{
			name: "join",
			raw:  `{"type":"join","data":{"name":"grace"}}`,
			want: Join{Name: "grace"},
		},
		{
			name: "part",
			raw:  `{"type":"part","data":{"name":"grace"}}`,
			want: Part{Name: "grace"},
		},
		{
			name: "servermsg",
			raw:  `{"type":"servermsg","data":{"message":"maintenance<br>soon"}}`,
			want: ServerMsg{Message: "maintenance<br>soon"},
		},
		{
			name: "status",
			raw:  `{"type":"status","data":{"status":"banned"}}`,
			want: Status{Status: StatusBanned},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			frame, err := Decode([]byte(tc.raw))
			require.NoError(t, err)
			assert.Equal(t, tc.want, frame)
		})
	}
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode([]byte(`{"type":"telemetry","data":{}}`))
	require.Error(t, err)

	var unknown *gkerrors.UnknownFrameTypeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "telemetry", unknown.FrameType)
}

func TestDecodeMalformedData(t *testing.T) {
	_, err := Decode([]byte(`{"type":"chat","data":"definitely not an object"}`))
	require.Error(t, err)

	var malformed *gkerrors.DecodeError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "chat", malformed.FrameType)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := Decode([]byte(`}{`))
	require.Error(t, err)

	var malformed *gkerrors.DecodeError
	require.ErrorAs(t, err, &malformed)
}

func TestDecodeToleratesUnknownFields(t *testing.T) {
	frame, err := Decode([]byte(`{"type":"join","data":{"name":"ada","badge":"mod"}}`))
	require.NoError(t, err)
	assert.Equal(t, Join{Name: "ada"}, frame)
}

func TestEncodeFlattensAuth(t *testing.T) {
	raw, err := Encode(NewMessage("hi", 0), GoogleAuth("T"))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"auth":"google","token":"T","type":"message","data":{"reply":0,"text":"hi"}}`,
		string(raw))
}

func TestEncodeMessageWithReplyTarget(t *testing.T) {
	raw, err := Encode(NewMessage("agreed", 1337), GoogleAuth("T"))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"auth":"google","token":"T","type":"message","data":{"reply":1337,"text":"agreed"}}`,
		string(raw))
}

func TestEncodeHello(t *testing.T) {
	raw, err := Encode(NewHello(), GoogleAuth("T"))
	require.NoError(t, err)

	assert.JSONEq(t,
		`{"auth":"google","token":"T","type":"hello","data":{"last_message":-1}}`,
		string(raw))
}
