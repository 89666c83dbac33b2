package ws

import (
	"encoding/json"
	"fmt"
)

// Schema 是对外公布的消息格式，校验失败的应答里会带上它。
const Schema = `{"payload": {"message": "<string>", ...}, "metadata": <object|null>}`

// Kind 是 payload.message 在校验时一次性判定的封闭类别。
type Kind int

const (
	KindOther Kind = iota
	KindPing
	KindPong
)

// ValidationError 表示入站帧没有通过 Envelope 格式校验。
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid envelope: " + e.Reason
}

// Envelope 是 websocket 帧与用户队列条目共用的消息单元。
// 只有 payload.message 会被检查，其余 payload 字段和 metadata 原样透传。
type Envelope struct {
	Payload  map[string]any `json:"payload"`
	Metadata map[string]any `json:"metadata,omitempty"`

	kind Kind
}

// ParseEnvelope 解析并校验一帧；失败时返回 *ValidationError，
// 类别在这里判定一次，之后 Kind() 直接读取。
func ParseEnvelope(data []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, &ValidationError{Reason: "frame is not a JSON envelope"}
	}
	if env.Payload == nil {
		return nil, &ValidationError{Reason: "payload is required"}
	}
	msg, ok := env.Payload["message"].(string)
	if !ok {
		return nil, &ValidationError{Reason: "payload.message must be a string"}
	}
	env.kind = kindOf(msg)
	return &env, nil
}

func kindOf(msg string) Kind {
	switch msg {
	case "ping":
		return KindPing
	case "pong":
		return KindPong
	default:
		return KindOther
	}
}

// Message 返回 payload.message 的文本。
func (e *Envelope) Message() string {
	s, _ := e.Payload["message"].(string)
	return s
}

func (e *Envelope) Kind() Kind { return e.kind }

// Encode 序列化为队列条目/websocket 帧。
func (e *Envelope) Encode() []byte {
	b, _ := json.Marshal(e)
	return b
}

func textEnvelope(msg string) *Envelope {
	return &Envelope{Payload: map[string]any{"message": msg}, kind: kindOf(msg)}
}

// PingEnvelope 心跳探测，由 pinger 入队，sender 转发给客户端。
func PingEnvelope() *Envelope { return textEnvelope("ping") }

// PongEnvelope 对客户端 ping 的应答。
func PongEnvelope() *Envelope { return textEnvelope("pong") }

// AckEnvelope 对普通消息的确认应答，回显原始文本。
func AckEnvelope(username, text string) *Envelope {
	return textEnvelope(fmt.Sprintf("Hi %s, I have received your message: %s", username, text))
}

// SchemaErrorEnvelope 校验失败的应答，附带期望的格式说明。
func SchemaErrorEnvelope(username string) *Envelope {
	return textEnvelope(fmt.Sprintf("Sorry, %s, your message must validate the schema: %s", username, Schema))
}
