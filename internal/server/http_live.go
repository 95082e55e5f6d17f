package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/bokysan/base47/internal/util/enc"
	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

// LiveResult is sent back for every processed live input. Decoded is the round-trip of Encoded. It equals Input for
// every encoder that preserves leading zero bytes; Base47-legacy drops leading NUL characters.
type LiveResult struct {
	Encoding string `json:"encoding"`
	Input    string `json:"input"`
	Encoded  string `json:"encoded,omitempty"`
	Decoded  string `json:"decoded,omitempty"`
	Error    string `json:"error,omitempty"`
}

// liveSession serves one websocket client. A reader pushes incoming text into a single slot mailbox and a worker
// encodes whatever is newest, so typing faster than the conversion runs skips stale inputs instead of queueing
// them.
type liveSession struct {
	conn    *websocket.Conn
	encoder enc.Encoder
	pending *latest

	closeOnce sync.Once
	closeErr  error
}

func (s *liveSession) String() string {
	return fmt.Sprintf("live(%v, %v)", s.conn.RemoteAddr(), s.encoder.Name())
}

func (s *liveSession) close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.conn.Close()
	})
	return s.closeErr
}

func process(encoder enc.Encoder, input string) LiveResult {
	res := LiveResult{
		Encoding: encoder.Name(),
		Input:    input,
		Encoded:  encoder.Encode([]byte(input)),
	}
	decoded, err := encoder.Decode(res.Encoded)
	if err != nil {
		res.Error = err.Error()
		return res
	}
	res.Decoded = string(decoded)
	return res
}

// work runs until the mailbox is closed. Only this goroutine writes to the connection.
func (s *liveSession) work(wg *sync.WaitGroup) {
	defer wg.Done()
	for input := range s.pending.values() {
		res := process(s.encoder, input)
		if err := s.conn.WriteJSON(res); err != nil {
			log.WithError(err).Debugf("%v: could not send the result: %v", s, err)
			// Keep draining so the reader never blocks on a dead writer.
			continue
		}
	}
}

func (s *liveSession) read(limit int64) {
	defer s.pending.done()
	s.conn.SetReadLimit(limit)
	for {
		kind, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Debugf("%v: connection lost: %v", s, err)
			}
			return
		}
		if kind != websocket.TextMessage {
			continue
		}
		s.pending.offer(string(msg))
	}
}

func (ws *HttpServer) live(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("encoding")
	if name == "" {
		name = DefaultEncoding
	}
	encoder, err := enc.FindEncoder(name)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	log.Debugf("New live client request...")
	c, err := ws.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		log.WithError(err).Errorf("Socket upgrade failed: %+v", err)
		return
	}

	s := &liveSession{
		conn:    c,
		encoder: encoder,
		pending: newLatest(),
	}
	ws.addSession(s)
	defer func() {
		ws.removeSession(s)
		if err := s.close(); err != nil {
			log.WithError(err).Debugf("Failed closing %v: %+v", s, err)
		}
	}()

	wg := &sync.WaitGroup{}
	wg.Add(1)
	go s.work(wg)
	s.read(ws.MaxInputSize)
	wg.Wait()
}
