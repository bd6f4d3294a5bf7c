package main

import (
	"encoding/json"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

const (
	viewerQueue     = 8 //Frames buffered per client before new ones are dropped
	viewerWriteWait = 10 * time.Second
	viewerPingEvery = 25 * time.Second
	viewerPongWait  = 60 * time.Second
)

//viewerEntity is one entity as a viewer draws it
type viewerEntity struct {
	Kind     string  `json:"kind"`
	ID       *uint8  `json:"id,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation int     `json:"rotation"`
	Variant  uint8   `json:"variant,omitempty"`
	Size     int     `json:"size"`
	Alive    *bool   `json:"alive,omitempty"`
}

type viewerFrame struct {
	Frame    uint64         `json:"frame"`
	Local    viewerEntity   `json:"local"`
	Entities []viewerEntity `json:"entities"`
}

type viewerClient struct {
	conn *websocket.Conn
	send chan []byte
}

//Viewer streams every frame as JSON to websocket clients on /ws
type Viewer struct {
	Addr string

	upgrader websocket.Upgrader
	server   *http.Server
	listener net.Listener

	mu      sync.Mutex
	clients map[*viewerClient]bool
}

//NewViewer returns a viewer that listens on addr once started
func NewViewer(addr string) *Viewer {
	return &Viewer{
		Addr: addr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		clients: make(map[*viewerClient]bool),
	}
}

//Start listens and serves in the background
func (viewer *Viewer) Start() error {
	listener, err := net.Listen("tcp", viewer.Addr)
	if err != nil {
		return errors.Wrapf(err, "unable to listen on %s", viewer.Addr)
	}
	viewer.listener = listener
	viewer.Addr = listener.Addr().String()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", viewer.handle)
	viewer.server = &http.Server{Handler: mux}

	go func() {
		if err := viewer.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("viewer stopped: ", err)
		}
	}()
	log.Info("Viewer listening on ws://", viewer.Addr, "/ws")
	return nil
}

//Close stops the server and drops every client
func (viewer *Viewer) Close() error {
	if viewer.server == nil {
		return nil
	}

	err := viewer.server.Close()

	viewer.mu.Lock()
	for client := range viewer.clients {
		client.conn.Close()
		delete(viewer.clients, client)
	}
	viewer.mu.Unlock()
	return err
}

//ClientCount returns how many viewers are connected
func (viewer *Viewer) ClientCount() int {
	viewer.mu.Lock()
	defer viewer.mu.Unlock()
	return len(viewer.clients)
}

//Render queues the frame for every client, slow clients miss frames
func (viewer *Viewer) Render(frame *Frame) {
	viewer.mu.Lock()
	defer viewer.mu.Unlock()
	if len(viewer.clients) == 0 {
		return
	}

	data, err := json.Marshal(newViewerFrame(frame))
	if err != nil {
		log.Error("unable to marshal frame ", frame.Number, ": ", err)
		return
	}

	for client := range viewer.clients {
		select {
		case client.send <- data:
		default:
			log.Trace("viewer ", client.conn.RemoteAddr(), " is behind, dropping frame ", frame.Number)
		}
	}
}

func newViewerFrame(frame *Frame) viewerFrame {
	local := frame.Local
	id := local.ID
	alive := local.Alive
	out := viewerFrame{
		Frame: frame.Number,
		Local: viewerEntity{
			Kind:     kindActor.String(),
			ID:       &id,
			X:        local.Position.X,
			Y:        local.Position.Y,
			Rotation: local.Rotation,
			Variant:  local.ShipVariant,
			Size:     actorSize,
			Alive:    &alive,
		},
		Entities: make([]viewerEntity, 0, len(frame.Entities)),
	}

	for _, entity := range frame.Entities {
		pos := entity.Pos()
		ent := viewerEntity{
			Kind:     entity.Kind().String(),
			X:        pos.X,
			Y:        pos.Y,
			Rotation: entity.Rot(),
			Size:     entity.Size(),
		}
		if actor, ok := entity.(*Actor); ok {
			actorID := actor.ID
			ent.ID = &actorID
			ent.Variant = actor.ShipVariant
		}
		out.Entities = append(out.Entities, ent)
	}
	return out
}

func (viewer *Viewer) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := viewer.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("viewer upgrade failed: ", err)
		return
	}

	client := &viewerClient{conn: conn, send: make(chan []byte, viewerQueue)}
	viewer.mu.Lock()
	viewer.clients[client] = true
	viewer.mu.Unlock()
	log.Debug("Viewer connected from ", conn.RemoteAddr())

	done := make(chan struct{})
	go viewer.write(client, done)

	conn.SetReadLimit(1024)
	_ = conn.SetReadDeadline(time.Now().Add(viewerPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(viewerPongWait))
	})
	for {
		//Viewers only listen, anything they send is discarded
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	close(done)
	viewer.mu.Lock()
	delete(viewer.clients, client)
	viewer.mu.Unlock()
	conn.Close()
	log.Debug("Viewer disconnected from ", conn.RemoteAddr())
}

func (viewer *Viewer) write(client *viewerClient, done <-chan struct{}) {
	ticker := time.NewTicker(viewerPingEvery)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case data := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(viewerWriteWait))
			if err := client.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				client.conn.Close()
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(viewerWriteWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				client.conn.Close()
				return
			}
		}
	}
}
