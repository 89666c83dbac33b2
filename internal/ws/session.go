package ws

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"wsgateway/internal/metrics"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Queue 是会话三个循环共享的按用户 FIFO 队列。
// Pop 没有消息时返回 (nil, nil)；阻塞实现必须能被 ctx 及时打断。
type Queue interface {
	Push(ctx context.Context, username string, data []byte) error
	Pop(ctx context.Context, username string) ([]byte, error)
	Ping(ctx context.Context) error
}

// State 会话生命周期：Active → Closing → Closed，Closed 为终态。
type State int32

const (
	StateNew State = iota
	StateActive
	StateClosing
	StateClosed
)

const (
	// DefaultPingInterval 服务端主动心跳间隔。
	DefaultPingInterval = 60 * time.Second
	writeTimeout        = 10 * time.Second
)

// Session 持有一条已认证连接，生命周期内运行 sender/receiver/pinger 三个循环。
// 所有出站消息（包括对入站消息的应答）都经过用户队列中转，
// 以保证与其他生产者（如 pinger）之间的顺序是确定的。
type Session struct {
	username     string
	conn         *websocket.Conn
	queue        Queue
	pingInterval time.Duration
	state        atomic.Int32
}

func NewSession(username string, conn *websocket.Conn, q Queue, pingInterval time.Duration) *Session {
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	return &Session{username: username, conn: conn, queue: q, pingInterval: pingInterval}
}

func (s *Session) State() State { return State(s.state.Load()) }

// Run 启动三个循环并运行到会话结束。第一个退出的循环会取消其余两个，
// 三个循环全部停止后才释放连接。循环内的错误只记日志，不向上抛。
func (s *Session) Run(ctx context.Context) {
	s.state.Store(int32(StateActive))
	g, ctx := errgroup.WithContext(ctx)

	// 取消一到就关闭底层连接，让阻塞中的读写立即返回。
	stop := context.AfterFunc(ctx, func() {
		s.state.CompareAndSwap(int32(StateActive), int32(StateClosing))
		_ = s.conn.Close()
	})
	defer stop()

	g.Go(func() error { return s.sendLoop(ctx) })
	g.Go(func() error { return s.recvLoop(ctx) })
	g.Go(func() error { return s.pingLoop(ctx) })

	err := g.Wait()
	_ = s.conn.Close()
	s.state.Store(int32(StateClosed))
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Info().Err(err).Str("username", s.username).Msg("ws session ended")
	}
}

// sendLoop 持续从用户队列弹出消息并按 FIFO 顺序写到连接上。
func (s *Session) sendLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		data, err := s.queue.Pop(ctx, s.username)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			log.Error().Err(err).Str("username", s.username).Msg("queue pop")
			return fmt.Errorf("send: queue pop: %w", err)
		}
		if data == nil {
			continue
		}
		_ = s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			if ctx.Err() == nil {
				log.Error().Err(err).Str("username", s.username).Msg("ws write")
			}
			return fmt.Errorf("send: %w", err)
		}
		metrics.QueueDeliveriesTotal.Inc()
	}
}

// recvLoop 逐帧读取并校验入站消息。校验失败不终止会话，
// 只把带格式说明的错误应答入队；其他读错误终止整个会话。
func (s *Session) recvLoop(ctx context.Context) error {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseNoStatusReceived,
			) {
				log.Info().Str("username", s.username).Msg("ws peer closed")
			} else if ctx.Err() == nil {
				log.Error().Err(err).Str("username", s.username).Msg("ws read")
			}
			return fmt.Errorf("receive: %w", err)
		}

		env, perr := ParseEnvelope(data)
		if perr != nil {
			if err := s.queue.Push(ctx, s.username, SchemaErrorEnvelope(s.username).Encode()); err != nil {
				return fmt.Errorf("receive: push schema error: %w", err)
			}
			continue
		}

		switch env.Kind() {
		case KindPing:
			if err := s.queue.Push(ctx, s.username, PongEnvelope().Encode()); err != nil {
				return fmt.Errorf("receive: push pong: %w", err)
			}
		case KindPong:
			// 客户端心跳应答，不产生队列条目
		default:
			metrics.WsMessagesTotal.Inc()
			if err := s.queue.Push(ctx, s.username, AckEnvelope(s.username, env.Message()).Encode()); err != nil {
				return fmt.Errorf("receive: push ack: %w", err)
			}
		}
	}
}

// pingLoop 按固定间隔往队列压入 ping，由 sender 转发给客户端。
func (s *Session) pingLoop(ctx context.Context) error {
	ticker := time.NewTicker(s.pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.queue.Push(ctx, s.username, PingEnvelope().Encode()); err != nil {
				log.Error().Err(err).Str("username", s.username).Msg("queue push ping")
				return fmt.Errorf("ping: %w", err)
			}
		}
	}
}
