package sms

import (
	"context"
)

// Channel selects the Termii route used for delivery.
type Channel string

const (
	ChannelGeneric  Channel = "generic"
	ChannelDND      Channel = "dnd"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelVoice    Channel = "voice"
)

// Valid reports whether c is one of the channels Termii accepts.
func (c Channel) Valid() bool {
	switch c {
	case ChannelGeneric, ChannelDND, ChannelWhatsApp, ChannelVoice:
		return true
	}
	return false
}

// MessageType selects the message encoding.
type MessageType string

const (
	TypePlain     MessageType = "plain"
	TypeUnicode   MessageType = "unicode"
	TypeEncrypted MessageType = "encrypted"
)

// Valid reports whether t is a message type Termii accepts.
func (t MessageType) Valid() bool {
	switch t {
	case TypePlain, TypeUnicode, TypeEncrypted:
		return true
	}
	return false
}

// SendResult holds the outcome of a gateway Send call.
type SendResult struct {
	MessageID string
	Balance   float64
	// Raw is the decoded provider response, kept for diagnostic logging.
	Raw map[string]any
}

// Sender sends an SMS to a phone number. The webhook pipeline depends on this
// interface, never on a concrete client.
type Sender interface {
	Send(ctx context.Context, to, message, senderID string, channel Channel, msgType MessageType) (*SendResult, error)
}
