package session

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	receivedBytesCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "client_received_bytes_total",
		Help: "Total bytes received from the game server.",
	})
	inboundMessagesCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "client_inbound_messages_total",
		Help: "Inbound messages processed, labeled by action.",
	}, []string{"action"})
	decodeFailuresCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "client_decode_failures_total",
		Help: "Inbound messages dropped because they failed to decode.",
	})
	reconnectAttemptsCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "client_reconnect_attempts_total",
		Help: "Reconnect attempts scheduled after a transport failure.",
	})
	droppedOutboundCounter = promauto.NewCounter(prometheus.CounterOpts{
		Name: "client_dropped_outbound_total",
		Help: "Outbound messages dropped because the send queue was full.",
	})
	connectionStateGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "client_connection_state",
		Help: "Current connection state (0=disconnected 1=connecting 2=connected 3=failed).",
	})
)
