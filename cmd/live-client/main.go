package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/conorfabian/streamlinks/internal/live"
	"github.com/conorfabian/streamlinks/internal/logging"
)

// Reads queries from stdin, one per line, and prints the suggestion states
// pushed back by the live endpoint. Lines starting with ":" are commands:
// ":scope sites", ":select", ":submit".
func main() {
	addr := flag.String("addr", "ws://127.0.0.1:8080/ws/suggest", "live autocomplete endpoint")
	pretty := flag.Bool("pretty", true, "pretty print JSON events")
	flag.Parse()

	logger := logging.New("live-client")
	if _, err := url.Parse(*addr); err != nil {
		logger.Fatal("bad address", "addr", *addr, "err", err)
	}

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(os.Stdin)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	for {
		done, err := run(*addr, *pretty, lines)
		if done {
			return
		}
		logger.Warn("disconnected", "err", err)
		time.Sleep(1 * time.Second)
	}
}

// run returns done=true once stdin is exhausted.
func run(addr string, pretty bool, lines <-chan string) (bool, error) {
	conn, _, err := websocket.DefaultDialer.Dial(addr, nil)
	if err != nil {
		return false, fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			printEvent(data, pretty)
		}
	}()

	for {
		select {
		case err := <-readErr:
			return false, err
		case line, ok := <-lines:
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return true, nil
			}
			if err := conn.WriteJSON(parseLine(line)); err != nil {
				return false, err
			}
		}
	}
}

func parseLine(line string) live.ClientMessage {
	if !strings.HasPrefix(line, ":") {
		return live.ClientMessage{Type: live.MsgInput, Q: line}
	}
	fields := strings.Fields(strings.TrimPrefix(line, ":"))
	if len(fields) == 0 {
		return live.ClientMessage{Type: live.MsgInput}
	}
	msg := live.ClientMessage{Type: fields[0]}
	if msg.Type == live.MsgScope && len(fields) > 1 {
		msg.Scope = fields[1]
	}
	return msg
}

func printEvent(data []byte, pretty bool) {
	if !pretty {
		fmt.Println(string(data))
		return
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		fmt.Println(string(data))
		return
	}
	b, _ := json.MarshalIndent(obj, "", "  ")
	fmt.Println(string(b))
}
