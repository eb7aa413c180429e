package messages

import (
	"encoding/json"
	"testing"

	"github.com/cbodonnell/trivia/pkg/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeMessage(t *testing.T) {
	payload, err := json.Marshal(rpc.RegisterPlayerRequest{Name: "ana", Position: "A"})
	require.NoError(t, err)

	in := &Message{ID: "req-1", Type: MessageTypeRegisterPlayer, Payload: payload}
	b, err := SerializeMessage(in)
	require.NoError(t, err)

	out, err := DeserializeMessage(b)
	require.NoError(t, err)
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Type, out.Type)
	assert.JSONEq(t, string(in.Payload), string(out.Payload))
}

func TestSerializeMessage_emptyPayload(t *testing.T) {
	b, err := SerializeMessage(&Message{ID: "x", Type: MessageTypeGetStatus})
	require.NoError(t, err)

	out, err := DeserializeMessage(b)
	require.NoError(t, err)
	assert.Equal(t, MessageTypeGetStatus, out.Type)
	assert.Empty(t, out.Payload)
}

func TestDeserializeMessage_rejectsGarbage(t *testing.T) {
	_, err := DeserializeMessage([]byte("definitely not zstd"))
	assert.Error(t, err)

	_, err = DeserializeMessageFlatbuffer([]byte{1, 2})
	assert.Error(t, err)

	// valid zstd frame around an offset that points far outside the buffer
	b := encoder.EncodeAll([]byte{0xff, 0xff, 0xff, 0x7f, 0, 0, 0, 0}, nil)
	_, err = DeserializeMessage(b)
	assert.Error(t, err)
}

func TestMessageTypeMethods(t *testing.T) {
	for method, messageType := range typesByMethod {
		got, ok := messageType.Method()
		require.True(t, ok)
		assert.Equal(t, method, got)

		back, ok := TypeForMethod(got)
		require.True(t, ok)
		assert.Equal(t, messageType, back)
	}
	assert.Len(t, typesByMethod, 11)

	_, ok := MessageTypeResult.Method()
	assert.False(t, ok)
	_, ok = TypeForMethod(rpc.Method("launchRockets"))
	assert.False(t, ok)
}
