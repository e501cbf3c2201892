package pubsub

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"postboard/internal/domain/service"
	"postboard/internal/errors"
)

const (
	attrEventID   = "event_id"
	attrEventType = "event_type"
	attrRequestID = "request_id"
)

// PushMessage is the envelope Pub/Sub POSTs to a push subscription endpoint.
// The local publisher produces the same shape so the audit worker handles both alike.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// NewPushMessage wraps an encoded event the way a push subscription delivers it.
func NewPushMessage(event *service.SecurityEventMessage, subscription string) (*PushMessage, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	msg := &PushMessage{Subscription: subscription}
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = eventAttributes(event)
	msg.Message.MessageID = event.EventID
	msg.Message.PublishTime = time.Now().UTC().Format(time.RFC3339)

	return msg, nil
}

// DecodeSecurityEvent extracts the event carried in the envelope's data field.
func (m *PushMessage) DecodeSecurityEvent() (*service.SecurityEventMessage, error) {
	data, err := base64.StdEncoding.DecodeString(m.Message.Data)
	if err != nil {
		return nil, errors.Wrap(err, "decode message data")
	}

	var event service.SecurityEventMessage
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, errors.Wrap(err, "unmarshal security event")
	}
	if event.RequestID == "" {
		event.RequestID = m.Message.Attributes[attrRequestID]
	}

	return &event, nil
}

// eventAttributes are set on every message for subscription filtering and tracing.
func eventAttributes(event *service.SecurityEventMessage) map[string]string {
	attributes := map[string]string{
		attrEventID:   event.EventID,
		attrEventType: event.Type,
	}
	if event.RequestID != "" {
		attributes[attrRequestID] = event.RequestID
	}

	return attributes
}
