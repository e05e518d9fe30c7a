package network

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreURL(t *testing.T) {
	assert.Equal(t, "ws://localhost:7373/ws", storeURL("localhost:7373"))
	assert.Equal(t, "ws://127.0.0.1:9/ws", storeURL("http://127.0.0.1:9"))
	assert.Equal(t, "wss://pong.example/ws", storeURL("https://pong.example"))
	assert.Equal(t, "ws://custom/path", storeURL("ws://custom/path"))
}
