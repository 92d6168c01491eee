package amqp

import (
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"lifeevents/internal/export"
)

// Message type and header names carried by every published export.
const (
	MessageTypeExported = "life_event.exported"
	HeaderFilename      = "filename"
)

// NewExportPublishing wraps an export document in a persistent AMQP message.
// The body is the exported file verbatim; its name travels in a header.
func NewExportPublishing(doc export.Document, now time.Time) amqp091.Publishing {
	return amqp091.Publishing{
		ContentType:  doc.ContentType,
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    now,
		Type:         MessageTypeExported,
		Headers: amqp091.Table{
			HeaderFilename: doc.Filename,
		},
		Body: doc.Body,
	}
}
