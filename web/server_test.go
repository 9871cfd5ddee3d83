package web_test

import (
	"bytes"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/guslan/chip8"
	"github.com/guslan/chip8/web"
)

func newTestServer(t *testing.T, program []byte, configs ...web.ServerConfigCb) (*web.Server, *httptest.Server) {
	t.Helper()

	server := web.NewServer(chip8.NewMemory(), configs...)
	if err := server.LoadProgram(program); err != nil {
		t.Fatalf(`LoadProgram() returned an error %v`, err)
	}
	if err := server.Console().Boot(); err != nil {
		t.Fatalf(`Boot() returned an error %v`, err)
	}

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)

	return server, ts
}

func get(t *testing.T, url string) (int, []byte) {
	t.Helper()

	res, err := http.Get(url)
	if err != nil {
		t.Fatalf(`GET %s returned an error %v`, url, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf(`reading %s returned an error %v`, url, err)
	}

	return res.StatusCode, body
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+path, nil)
	if err != nil {
		t.Fatalf(`dial %s returned an error %v`, path, err)
	}
	t.Cleanup(func() { conn.Close() })

	return conn
}

var drawGlyphZero = []byte{
	0xA0, 0x00,
	0xD0, 0x05,
	0x12, 0x04,
}

func TestStep(t *testing.T) {
	server, ts := newTestServer(t, drawGlyphZero)

	for i := 0; i < 2; i++ {
		if status, body := get(t, ts.URL+"/step"); status != http.StatusOK {
			t.Fatalf(`/step = %d %s`, status, body)
		}
	}

	cpu := server.Console().Cpu
	if cpu.Pc != 0x204 || !cpu.Screen.Pixel(0, 0) {
		t.Fatalf(`cpu.Pc = %03X, pixel (0, 0) = %t`, cpu.Pc, cpu.Screen.Pixel(0, 0))
	}
	if server.Console().IsRunning() {
		t.Fatalf(`stepping started the console`)
	}
}

func TestStepReportsErrors(t *testing.T) {
	_, ts := newTestServer(t, []byte{0x81, 0x29})

	status, body := get(t, ts.URL+"/step")
	if status != http.StatusConflict || !strings.Contains(string(body), "8129") {
		t.Fatalf(`/step = %d %s`, status, body)
	}
}

func TestSpeed(t *testing.T) {
	server, ts := newTestServer(t, drawGlyphZero)

	if status, body := get(t, ts.URL+"/speed?hz=1000"); status != http.StatusOK || string(body) != "700" {
		t.Fatalf(`/speed?hz=1000 = %d %s`, status, body)
	}
	if server.Console().SpeedInHz() != chip8.MaxSpeed {
		t.Fatalf(`SpeedInHz() = %d`, server.Console().SpeedInHz())
	}
	if status, _ := get(t, ts.URL+"/speed?hz=fast"); status != http.StatusBadRequest {
		t.Fatalf(`/speed?hz=fast = %d`, status)
	}
}

func TestStartAndStop(t *testing.T) {
	server, ts := newTestServer(t, drawGlyphZero)

	get(t, ts.URL+"/start")
	if !server.Console().IsRunning() {
		t.Fatalf(`/start did not start the console`)
	}
	get(t, ts.URL+"/stop")
	if server.Console().IsRunning() {
		t.Fatalf(`/stop did not stop the console`)
	}
}

func TestScreenshot(t *testing.T) {
	_, ts := newTestServer(t, drawGlyphZero)
	get(t, ts.URL+"/step")
	get(t, ts.URL+"/step")

	status, body := get(t, ts.URL+"/screenshot.png?scale=2")
	if status != http.StatusOK {
		t.Fatalf(`/screenshot.png = %d`, status)
	}

	img, err := png.Decode(bytes.NewReader(body))
	if err != nil {
		t.Fatalf(`png.Decode() returned an error %v`, err)
	}
	if b := img.Bounds(); b.Dx() != chip8.ScreenWidth*2 || b.Dy() != chip8.ScreenHeight*2 {
		t.Fatalf(`screenshot bounds = %v`, b)
	}
	if r, _, _, _ := img.At(1, 1).RGBA(); r == 0 {
		t.Fatalf(`pixel (0, 0) is off in the screenshot`)
	}
	if r, _, _, _ := img.At(9, 1).RGBA(); r != 0 {
		t.Fatalf(`pixel (4, 0) is on in the screenshot`)
	}
}

func TestDisplaySendsFrames(t *testing.T) {
	_, ts := newTestServer(t, drawGlyphZero)
	conn := dial(t, ts, "/display")
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	// the current frame is sent on connection
	kind, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf(`ReadMessage() returned an error %v`, err)
	}
	if kind != websocket.BinaryMessage || len(msg) != chip8.ScreenWidth*chip8.ScreenHeight/8 {
		t.Fatalf(`got message kind=%d len=%d`, kind, len(msg))
	}

	get(t, ts.URL+"/step")
	get(t, ts.URL+"/step")

	_, msg, err = conn.ReadMessage()
	if err != nil {
		t.Fatalf(`ReadMessage() returned an error %v`, err)
	}
	if msg[0] != 0xF0 {
		t.Fatalf(`first byte of the frame = %X, expected F0`, msg[0])
	}
}

func TestKeyboardMessages(t *testing.T) {
	server, ts := newTestServer(t, drawGlyphZero)
	conn := dial(t, ts, "/keyboard")

	state := chip8.KeyboardState{}
	state.Press(0xA)
	if err := conn.WriteMessage(websocket.BinaryMessage, web.EncodeKeyMask(state)); err != nil {
		t.Fatalf(`WriteMessage() returned an error %v`, err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for !server.IsPressed(0xA) {
		if time.Now().After(deadline) {
			t.Fatalf(`key A was never pressed`)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestDebuggerEvents(t *testing.T) {
	_, ts := newTestServer(t, drawGlyphZero, func(config *web.ServerConfig) {
		config.UseDebugger = true
	})
	get(t, ts.URL+"/step")

	conn := dial(t, ts, "/debugger")
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf(`ReadMessage() returned an error %v`, err)
	}
	if len(msg) != 59 {
		t.Fatalf(`len(event) = %d, expected 59`, len(msg))
	}
	// opcode A000, pc 202
	if !bytes.Equal(msg[:4], []byte{0xA0, 0x00, 0x02, 0x02}) {
		t.Fatalf(`event header = %X`, msg[:4])
	}
}

func TestServesTheBundledClient(t *testing.T) {
	_, ts := newTestServer(t, drawGlyphZero)

	status, body := get(t, ts.URL+"/")
	if status != http.StatusOK || !strings.Contains(string(body), "app.js") {
		t.Fatalf(`/ = %d %s`, status, body)
	}

	status, body = get(t, ts.URL+"/app.js")
	if status != http.StatusOK {
		t.Fatalf(`/app.js = %d`, status)
	}
	for _, path := range []string{"/display", "/keyboard", "/debugger"} {
		if !strings.Contains(string(body), path) {
			t.Fatalf(`the client does not connect to %s`, path)
		}
	}
}
