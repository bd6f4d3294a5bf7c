package main

import (
	"context"
	"net"
	"strconv"

	"github.com/pkg/errors"
)

const (
	maxDatagramSize = 1024 //Largest datagram consumed per receive
)

var (
	ErrTransportClosed = errors.New("transport is not open")
)

//Poller is a datagram source that never blocks, nil means nothing was pending
type Poller interface {
	Poll() []byte
}

//Broadcaster sends a datagram to every peer on the network
type Broadcaster interface {
	Broadcast(data []byte) error
}

//Transport holds the send and receive sockets shared by the whole process
type Transport struct {
	ListenHost    string //Host the receive socket binds to
	BroadcastHost string //Destination of every broadcast
	Port          int    //Port used to both send and receive, 0 picks a free one on Open

	//Session
	Running bool
	send    *net.UDPConn
	recv    *net.UDPConn
	dest    *net.UDPAddr
	buffer  []byte
}

//NewTransport returns a closed transport for the configured port
func NewTransport(cfg *Config) *Transport {
	return &Transport{
		ListenHost:    cfg.ListenHost,
		BroadcastHost: cfg.BroadcastHost,
		Port:          cfg.Port,
		buffer:        make([]byte, maxDatagramSize),
	}
}

//Open binds the receive socket and prepares the broadcast socket
func (tr *Transport) Open() error {
	if tr.Running {
		tr.Close()
	}

	lc := net.ListenConfig{Control: socketControl}

	recvAddr := net.JoinHostPort(tr.ListenHost, strconv.Itoa(tr.Port))
	recv, err := lc.ListenPacket(context.Background(), "udp4", recvAddr)
	if err != nil {
		return errors.Wrapf(err, "unable to listen on %s", recvAddr)
	}
	tr.recv = recv.(*net.UDPConn)
	if tr.Port == 0 {
		tr.Port = tr.recv.LocalAddr().(*net.UDPAddr).Port
	}
	log.Trace("Listening on UDP address ", tr.recv.LocalAddr())

	send, err := lc.ListenPacket(context.Background(), "udp4", ":0")
	if err != nil {
		tr.recv.Close()
		return errors.Wrap(err, "unable to open broadcast socket")
	}
	tr.send = send.(*net.UDPConn)

	destAddr := net.JoinHostPort(tr.BroadcastHost, strconv.Itoa(tr.Port))
	tr.dest, err = net.ResolveUDPAddr("udp4", destAddr)
	if err != nil {
		tr.recv.Close()
		tr.send.Close()
		return errors.Wrapf(err, "unable to resolve broadcast address %s", destAddr)
	}

	tr.Running = true
	log.Info("Broadcasting to ", tr.dest, ", receiving on ", tr.recv.LocalAddr())
	return nil
}

//Close releases both sockets
func (tr *Transport) Close() {
	if !tr.Running {
		return
	}

	tr.recv.Close()
	tr.send.Close()
	tr.Running = false
	log.Info("Closed transport on port ", tr.Port)
}

//Broadcast sends one datagram to the broadcast address
func (tr *Transport) Broadcast(data []byte) error {
	if !tr.Running {
		return ErrTransportClosed
	}

	if _, err := tr.send.WriteToUDP(data, tr.dest); err != nil {
		return errors.Wrapf(err, "unable to broadcast to %s", tr.dest)
	}
	return nil
}

//Poll makes one receive attempt and returns straight away
func (tr *Transport) Poll() []byte {
	if !tr.Running {
		return nil
	}

	n, err := tr.readNow()
	if err != nil || n <= 0 {
		return nil
	}

	data := make([]byte, n)
	copy(data, tr.buffer[:n])
	return data
}
