package main

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gorilla/websocket"
	"go.uber.org/multierr"

	"github.com/prog3487/ComputeWave/waves"
)

// meshMessage is sent as JSON to every client on connect and after the
// simulation is reinitialized.
type meshMessage struct {
	Type     string       `json:"type"`
	Rows     int          `json:"rows"`
	Cols     int          `json:"cols"`
	Vertices []mgl32.Vec3 `json:"vertices"`
	Tex      []mgl32.Vec2 `json:"tex"`
	Indices  []uint32     `json:"indices"`
}

// clientMessage is what clients may send back.
type clientMessage struct {
	Disturb *struct {
		Row       int     `json:"row"`
		Col       int     `json:"col"`
		Magnitude float32 `json:"magnitude"`
	} `json:"disturb"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// heightServer streams height frames to websocket clients and collects
// disturbance requests from them. Publish and Requests are called from the
// simulation goroutine; all socket I/O happens on server goroutines.
type heightServer struct {
	interval    time.Duration
	lastPublish time.Time

	frames   chan []byte
	requests chan waves.Impulse
	done     chan struct{}
	wg       sync.WaitGroup

	meshMu sync.RWMutex
	mesh   []byte

	clientsMu sync.RWMutex
	clients   map[*websocket.Conn]*sync.Mutex

	listener net.Listener
	httpSrv  *http.Server
	closed   sync.Once
}

// newHeightServer returns a server that publishes at most one frame per interval.
func newHeightServer(interval time.Duration) *heightServer {
	return &heightServer{
		interval: interval,
		frames:   make(chan []byte, serverFrameBufferSize),
		requests: make(chan waves.Impulse, serverRequestBuffer),
		done:     make(chan struct{}),
		clients:  make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Start listens on addr and serves the /ws endpoint in the background.
func (s *heightServer) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	s.listener = ln
	s.httpSrv = &http.Server{Handler: mux}

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("Height server stopped: %v", err)
		}
	}()
	go func() {
		defer s.wg.Done()
		s.broadcastLoop()
	}()
	return nil
}

// Addr returns the listening address once started.
func (s *heightServer) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// SetMesh encodes the topology of sim and sends it to connected clients.
func (s *heightServer) SetMesh(sim *waves.Simulation) {
	verts := sim.Vertices(nil)
	msg := meshMessage{
		Type:     "mesh",
		Rows:     sim.RowCount(),
		Cols:     sim.ColumnCount(),
		Vertices: make([]mgl32.Vec3, len(verts)),
		Tex:      make([]mgl32.Vec2, len(verts)),
		Indices:  sim.Grid().Indices(),
	}
	for i, v := range verts {
		msg.Vertices[i] = v.Pos
		msg.Tex[i] = v.Tex
	}
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Encoding mesh: %v", err)
		return
	}
	s.meshMu.Lock()
	s.mesh = data
	s.meshMu.Unlock()
	s.sendAll(websocket.TextMessage, data)
}

// Publish queues the current heights of sim for broadcast. Frames are
// throttled to the server interval and a stale queued frame is replaced.
func (s *heightServer) Publish(sim *waves.Simulation) {
	now := time.Now()
	if !s.lastPublish.IsZero() && now.Sub(s.lastPublish) < s.interval {
		return
	}
	s.lastPublish = now

	heights := sim.Heights()
	frame := encodeHeightFrame(make([]byte, 0, 8+2*len(heights)), sim.RowCount(), sim.ColumnCount(), heights)
	select {
	case s.frames <- frame:
		return
	default:
	}
	select {
	case <-s.frames:
	default:
	}
	select {
	case s.frames <- frame:
	default:
	}
}

// Requests drains the disturbances received since the last call.
func (s *heightServer) Requests() []waves.Impulse {
	var out []waves.Impulse
	for {
		select {
		case imp := <-s.requests:
			out = append(out, imp)
		default:
			return out
		}
	}
}

// ClientCount reports the number of connected clients.
func (s *heightServer) ClientCount() int {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	return len(s.clients)
}

// Close stops the listener, disconnects every client and waits for the
// server goroutines.
func (s *heightServer) Close() error {
	var err error
	s.closed.Do(func() {
		close(s.done)
		if s.httpSrv != nil {
			ctx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
			err = multierr.Append(err, s.httpSrv.Shutdown(ctx))
			cancel()
		}
		s.clientsMu.Lock()
		for conn := range s.clients {
			err = multierr.Append(err, conn.Close())
			delete(s.clients, conn)
		}
		s.clientsMu.Unlock()
		s.wg.Wait()
	})
	return err
}

func (s *heightServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	connMu := &sync.Mutex{}

	s.meshMu.RLock()
	mesh := s.mesh
	s.meshMu.RUnlock()
	if mesh != nil {
		conn.SetWriteDeadline(time.Now().Add(serverWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, mesh); err != nil {
			log.Printf("Sending mesh to %s: %v", conn.RemoteAddr(), err)
			conn.Close()
			return
		}
	}

	s.clientsMu.Lock()
	s.clients[conn] = connMu
	s.clientsMu.Unlock()
	log.Printf("Stream client %s connected", conn.RemoteAddr())
	defer s.drop(conn)

	for {
		var msg clientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}
		if msg.Disturb == nil {
			continue
		}
		imp := waves.Impulse{Row: msg.Disturb.Row, Col: msg.Disturb.Col, Magnitude: msg.Disturb.Magnitude}
		select {
		case s.requests <- imp:
		default:
			log.Printf("Dropping disturb request from %s: queue full", conn.RemoteAddr())
		}
	}
}

func (s *heightServer) broadcastLoop() {
	for {
		select {
		case <-s.done:
			return
		case frame := <-s.frames:
			s.sendAll(websocket.BinaryMessage, frame)
		}
	}
}

// sendAll writes data to every client and drops the ones that fail.
func (s *heightServer) sendAll(messageType int, data []byte) {
	var failed []*websocket.Conn
	s.clientsMu.RLock()
	for conn, mu := range s.clients {
		mu.Lock()
		conn.SetWriteDeadline(time.Now().Add(serverWriteTimeout))
		err := conn.WriteMessage(messageType, data)
		mu.Unlock()
		if err != nil {
			failed = append(failed, conn)
		}
	}
	s.clientsMu.RUnlock()
	for _, conn := range failed {
		s.drop(conn)
	}
}

func (s *heightServer) drop(conn *websocket.Conn) {
	s.clientsMu.Lock()
	_, ok := s.clients[conn]
	delete(s.clients, conn)
	s.clientsMu.Unlock()
	if ok {
		conn.Close()
		log.Printf("Stream client %s disconnected", conn.RemoteAddr())
	}
}

// encodeHeightFrame appends a binary height frame to dst: rows and cols as
// little-endian uint32 followed by one little-endian binary16 per vertex.
func encodeHeightFrame(dst []byte, rows, cols int, heights []float32) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(rows))
	dst = binary.LittleEndian.AppendUint32(dst, uint32(cols))
	for _, h := range heights {
		dst = binary.LittleEndian.AppendUint16(dst, halfBits(h))
	}
	return dst
}
