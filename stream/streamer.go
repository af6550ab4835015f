package stream

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = time.Second

// ControlMessage asks the scene to pause, resume or toggle.
type ControlMessage struct {
	Type string `json:"type"`
}

// RunSwitch is what control messages act on.
type RunSwitch interface {
	Toggle() bool
	SetRunning(running bool)
}

// Streamer that streams RGB data frames to MQTT subscribers.
type Streamer struct {
	client  mqtt.Client
	stream  string
	control string
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client) *Streamer {
	s := new(Streamer)
	s.client = client
	s.stream = config.Mqtt.Topics.Stream
	s.control = config.Mqtt.Topics.Control
	return s
}

// SendFrame sends a frame as binary over MQTT.
func (s *Streamer) SendFrame(f *Frame) {
	b, _ := f.MarshalBinary()
	token := s.client.Publish(s.stream, 0, false, b)
	if !token.WaitTimeout(publishTimeout) {
		log.Printf("Publish to %s timed out", s.stream)
		return
	}
	if err := token.Error(); err != nil {
		log.Printf("Publish to %s: %v", s.stream, err)
	}
}

// Subscribe routes control messages to sw.
func (s *Streamer) Subscribe(sw RunSwitch) error {
	handler := func(client mqtt.Client, msg mqtt.Message) {
		s.handleControlMessage(sw, msg)
	}
	if token := s.client.Subscribe(s.control, 0, handler); token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribe %s: %w", s.control, token.Error())
	}
	return nil
}

func (s *Streamer) handleControlMessage(sw RunSwitch, msg mqtt.Message) {
	var message ControlMessage
	if err := json.Unmarshal(msg.Payload(), &message); err != nil {
		log.Printf("Bad control message on %s: %v", msg.Topic(), err)
		return
	}

	switch message.Type {
	case "toggle":
		log.Printf("Control: running=%v", sw.Toggle())
	case "pause":
		sw.SetRunning(false)
		log.Println("Control: paused")
	case "resume":
		sw.SetRunning(true)
		log.Println("Control: resumed")
	default:
		log.Printf("Unknown control message type %q", message.Type)
	}
}
