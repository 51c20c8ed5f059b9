// Package notify implements the systemd NOTIFY_SOCKET readiness and
// watchdog protocol. Without a socket every call is a no-op, so the recorder
// runs unchanged outside of systemd.
package notify

import (
	"net"
	"strings"

	"github.com/leandrodaf/pianorec/sdk/contracts"
)

// Notifier sends service state datagrams to a supervising systemd instance.
type Notifier struct {
	logger contracts.Logger
	socket string
}

// New creates a notifier for the given socket path, normally the value of
// the NOTIFY_SOCKET environment variable.
func New(logger contracts.Logger, socket string) *Notifier {
	// Abstract socket addresses are passed with a leading "@".
	if strings.HasPrefix(socket, "@") {
		socket = "\x00" + socket[1:]
	}
	return &Notifier{logger: logger, socket: socket}
}

// Ready announces that startup has completed.
func (n *Notifier) Ready() {
	n.send("READY=1")
}

// Alive pings the supervisor watchdog.
func (n *Notifier) Alive() {
	n.send("WATCHDOG=1")
}

func (n *Notifier) send(state string) {
	if n.socket == "" {
		return
	}
	conn, err := net.DialUnix("unixgram", nil, &net.UnixAddr{Name: n.socket, Net: "unixgram"})
	if err != nil {
		n.logger.Debug("notify socket unavailable",
			n.logger.Field().Error("error", err))
		return
	}
	defer conn.Close()
	if _, err := conn.Write([]byte(state)); err != nil {
		n.logger.Debug("notify send failed",
			n.logger.Field().Error("error", err))
	}
}
