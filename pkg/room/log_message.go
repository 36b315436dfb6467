package room

import (
	"bigtwo-server/pkg/playable"
)

const logMessageLimit = 25

// addLogMessages adds a lot message
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*playable.LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}

// sendLogMessages records the messages and sends them to every connected client
// Note: this must only be called from within the run loop
func (d *Dealer) sendLogMessages(messages []*playable.LogMessage) {
	if len(messages) == 0 {
		return
	}

	d.addLogMessages(messages)
	d.broadcast(&playable.Response{
		Key:  "logs",
		Data: messages,
	})
}
