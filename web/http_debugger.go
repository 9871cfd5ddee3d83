package web

import (
	"encoding/binary"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/guslan/chip8"
)

// Events are dropped for subscribers that are this far behind
const subscriberBuffer = 64

type HttpDebugger struct {
	console *chip8.Console

	SendEvery uint

	mu          sync.Mutex
	subscribers map[chan []byte]struct{}
	last        []byte
}

// NewHttpDebugger creates a new debugger
// This method will pause the console and register the hooks
func NewHttpDebugger(console *chip8.Console) *HttpDebugger {
	deb := &HttpDebugger{
		console:     console,
		SendEvery:   1,
		subscribers: map[chan []byte]struct{}{},
	}

	console.AddAfterCycleHook(deb.afterCycle)
	console.AddErrorHook(deb.afterCycle)
	console.Stop()

	return deb
}

func (d *HttpDebugger) subscribe() chan []byte {
	d.mu.Lock()
	defer d.mu.Unlock()

	ch := make(chan []byte, subscriberBuffer)
	if d.last != nil {
		ch <- d.last
	}
	d.subscribers[ch] = struct{}{}

	return ch
}

func (d *HttpDebugger) unsubscribe(ch chan []byte) {
	d.mu.Lock()
	delete(d.subscribers, ch)
	d.mu.Unlock()
}

func (d *HttpDebugger) publish(event []byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.last = event
	for ch := range d.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

func (d *HttpDebugger) afterCycle(cpu *chip8.Cpu) {
	if d.SendEvery > 1 && cpu.Cycles()%d.SendEvery != 0 {
		return
	}

	d.publish(FormatAsEvent(cpu.Snapshot()))
}

func (d *HttpDebugger) serveWs(w http.ResponseWriter, r *http.Request) {
	slog.Info("Connecting to debugger")
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("upgrade", slog.Any("error", err))
		return
	}
	defer conn.Close()

	events := d.subscribe()
	defer d.unsubscribe(events)

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	slog.Info("Listening for events")
	for {
		select {
		case event := <-events:
			if err := conn.WriteMessage(websocket.BinaryMessage, event); err != nil {
				slog.Error("Error writing debugger message", slog.Any("error", err))
				return
			}

		case <-closed:
			return

		case <-r.Context().Done():
			return
		}
	}
}

// FormatAsEvent encodes the snapshot for the debugger client.
//
//	opcode:2 pc:2 v:16 i:2 sp:1 stack:32 dt:1 st:1 waiting:1 register:1
//
// Words are big-endian, unused stack slots are zero.
func FormatAsEvent(s chip8.Snapshot) []byte {
	buf := make([]byte, 0, 60)

	buf = binary.BigEndian.AppendUint16(buf, s.OpCode)
	buf = binary.BigEndian.AppendUint16(buf, s.Pc)
	buf = append(buf, s.V[:]...)
	buf = binary.BigEndian.AppendUint16(buf, s.I)
	buf = append(buf, byte(len(s.Stack)))
	for i := 0; i < chip8.StackDepth; i++ {
		var addr uint16
		if i < len(s.Stack) {
			addr = s.Stack[i]
		}
		buf = binary.BigEndian.AppendUint16(buf, addr)
	}
	buf = append(buf, s.Dt, s.St)

	if waiting, ok := s.State.(chip8.AwaitingKey); ok {
		buf = append(buf, 1, waiting.Register)
	} else {
		buf = append(buf, 0, 0)
	}

	return buf
}
