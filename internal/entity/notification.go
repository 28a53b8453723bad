package entity

// NotificationChannel is the custom type to enforce enum-like behavior
type NotificationChannel string

const (
	// ChannelAll selects all channels.
	ChannelAll      NotificationChannel = ""
	ChannelEmail    NotificationChannel = "email"
	ChannelWhatsapp NotificationChannel = "whatsapp"
	ChannelSMS      NotificationChannel = "sms"
)

// ValidNotificationChannels is a set of valid notification channels
var ValidNotificationChannels = map[NotificationChannel]bool{
	ChannelEmail:    true,
	ChannelWhatsapp: true,
	ChannelSMS:      true,
}

func (nc NotificationChannel) String() string {
	return string(nc)
}

// NotificationStatusName is the custom type to enforce enum-like behavior
type NotificationStatusName string

const (
	NotificationPending   NotificationStatusName = "pending"
	NotificationSent      NotificationStatusName = "sent"
	NotificationDelivered NotificationStatusName = "delivered"
	NotificationFailed    NotificationStatusName = "failed"
)
