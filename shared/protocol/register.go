package protocol

// MsgType identifies the payload of an envelope. IDs are part of the wire
// format; append new ones, never renumber.
type MsgType uint8

const (
	MsgInsert      MsgType = 10
	MsgGet         MsgType = 11
	MsgFindByCode  MsgType = 12
	MsgUpdate      MsgType = 13
	MsgDelete      MsgType = 14
	MsgSubscribe   MsgType = 15
	MsgUnsubscribe MsgType = 16

	MsgResponse MsgType = 30
	MsgEvent    MsgType = 31
)

var msgNames = map[MsgType]string{
	MsgInsert:      "insert",
	MsgGet:         "get",
	MsgFindByCode:  "find_by_code",
	MsgUpdate:      "update",
	MsgDelete:      "delete",
	MsgSubscribe:   "subscribe",
	MsgUnsubscribe: "unsubscribe",
	MsgResponse:    "response",
	MsgEvent:       "event",
}

func (t MsgType) Known() bool {
	_, ok := msgNames[t]
	return ok
}

func (t MsgType) String() string {
	if n, ok := msgNames[t]; ok {
		return n
	}
	return "unknown"
}

// IsRequest reports whether t is sent by clients and answered with a response.
func (t MsgType) IsRequest() bool {
	return t >= MsgInsert && t <= MsgUnsubscribe
}
