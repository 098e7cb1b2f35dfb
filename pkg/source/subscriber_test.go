package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/prothen/ros2webrtc/pkg/config"
	"github.com/prothen/ros2webrtc/pkg/logger"
)

func publisher(t *testing.T, serve func(*websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer func() { _ = conn.Close() }()
		serve(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func wsAddress(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSubscriberDeliversFrames(t *testing.T) {
	want := Frame{Width: 2, Height: 1, Format: FormatYUV, Data: []byte{1, 2, 3, 4, 5, 6}}
	msg, err := EncodeFrame(want)
	if err != nil {
		t.Fatal(err)
	}
	srv := publisher(t, func(conn *websocket.Conn) {
		// One undecodable message first, the subscriber must skip it.
		_ = conn.WriteMessage(websocket.BinaryMessage, []byte("junk"))
		_ = conn.WriteMessage(websocket.BinaryMessage, msg)
		// Keep the connection open until the client leaves.
		_, _, _ = conn.ReadMessage()
	})

	frames := make(chan Frame, 1)
	sub := NewSubscriber(
		config.Source{Address: wsAddress(srv), Topic: "/camera/image_raw"},
		func(f Frame) error { frames <- f; return nil },
		logger.Default(),
	)
	if err := sub.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	sub.Run()
	defer func() { _ = sub.Shutdown(context.Background()) }()

	select {
	case got := <-frames:
		if got.Width != want.Width || got.Height != want.Height || got.Format != want.Format {
			t.Errorf("frame header mismatch: %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestSubscriberStopsOnHandlerError(t *testing.T) {
	msg, err := EncodeFrame(Frame{Width: 2, Height: 1, Format: FormatYUV, Data: make([]byte, 6)})
	if err != nil {
		t.Fatal(err)
	}
	srv := publisher(t, func(conn *websocket.Conn) {
		for {
			if err := conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
			time.Sleep(10 * time.Millisecond)
		}
	})

	sub := NewSubscriber(
		config.Source{Address: wsAddress(srv), Topic: "/camera/image_raw"},
		func(Frame) error { return errors.New("stream corrupted") },
		logger.Default(),
	)
	if err := sub.Connect(context.Background()); err != nil {
		t.Fatal(err)
	}
	sub.Run()

	select {
	case <-sub.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("subscription kept running after a handler failure")
	}
}
