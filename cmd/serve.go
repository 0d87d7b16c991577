package cmd

import (
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"bottleneck-analyzer/monitor"
	"bottleneck-analyzer/simulator"
)

var serveAddr string

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development
		return true
	},
}

// ClientMessage is what dashboard clients send over the websocket
type ClientMessage struct {
	Type   string            `json:"type"` // start | pause | reset | config_update
	Config *simulator.Config `json:"config,omitempty"`
}

// ServerMessage is what the server streams back
type ServerMessage struct {
	Type              string            `json:"type"` // status | report | error
	Running           *bool             `json:"running,omitempty"`
	RealtimeAvailable *bool             `json:"realtimeAvailable,omitempty"`
	Config            *simulator.Config `json:"config,omitempty"`
	Report            *simulator.Report `json:"report,omitempty"`
	Error             string            `json:"error,omitempty"`
}

// analyzerState guards one client's analyzer and pacing state
type analyzerState struct {
	analyzer *simulator.Analyzer
	mon      *monitor.Monitor // nil when live sampling is unavailable
	running  bool
	mu       sync.Mutex
	stopCh   chan struct{}
}

func newAnalyzerState(config simulator.Config) (*analyzerState, error) {
	analyzer, err := simulator.NewAnalyzer(config)
	if err != nil {
		return nil, err
	}
	analyzer.LogEvent = func(msg string) { logrus.Debug(msg) }

	// Live sampling is a capability, not a requirement: without /proc the
	// server still serves simulation reports
	mon, err := monitor.NewMonitor()
	if err != nil {
		logrus.WithError(err).Warn("Live metrics unavailable, serving simulation only")
		mon = nil
	}

	return &analyzerState{
		analyzer: analyzer,
		mon:      mon,
		stopCh:   make(chan struct{}),
	}, nil
}

func (s *analyzerState) start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = true
}

func (s *analyzerState) pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// reset reseeds the generator by rebuilding the analyzer from its own config
func (s *analyzerState) reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	return s.analyzer.UpdateConfig(s.analyzer.Config())
}

func (s *analyzerState) updateConfig(config simulator.Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.UpdateConfig(config)
}

func (s *analyzerState) isRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *analyzerState) getConfig() simulator.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.analyzer.Config()
}

func (s *analyzerState) realtimeAvailable() bool {
	return s.mon != nil
}

// refresh produces the next report: a live classification when realtime mode
// is configured and available, otherwise a fresh simulation run
func (s *analyzerState) refresh() (*simulator.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.analyzer.Config().Mode == simulator.ModeRealtime && s.mon != nil {
		record, _, err := s.mon.Record()
		if err != nil {
			return nil, err
		}
		return s.analyzer.AnalyzeLive(record), nil
	}
	return s.analyzer.Run()
}

func (s *analyzerState) stop() {
	close(s.stopCh)
}

// safeConn wraps a WebSocket connection with a mutex to prevent concurrent writes
type safeConn struct {
	*websocket.Conn
	writeMu sync.Mutex
}

func (sc *safeConn) WriteJSON(v interface{}) error {
	sc.writeMu.Lock()
	defer sc.writeMu.Unlock()
	return sc.Conn.WriteJSON(v)
}

// refreshLoop periodically produces reports and streams them to the client.
// Runs in its own goroutine; the interval is fixed at connection time.
func refreshLoop(conn *safeConn, state *analyzerState) {
	interval := time.Duration(state.getConfig().RefreshIntervalSeconds * float64(time.Second))
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-state.stopCh:
			logrus.Debug("Refresh loop stopping")
			return

		case <-ticker.C:
			if !state.isRunning() {
				continue
			}

			report, err := state.refresh()
			if err != nil {
				logrus.WithError(err).Error("Analysis failed")
				conn.WriteJSON(ServerMessage{Type: "error", Error: err.Error()})
				continue
			}

			updatePrometheusMetrics(report)
			if err := conn.WriteJSON(ServerMessage{Type: "report", Report: report}); err != nil {
				logrus.WithError(err).Error("Error sending report")
				return
			}
		}
	}
}

func statusMessage(state *analyzerState) ServerMessage {
	running := state.isRunning()
	available := state.realtimeAvailable()
	config := state.getConfig()
	return ServerMessage{
		Type:              "status",
		Running:           &running,
		RealtimeAvailable: &available,
		Config:            &config,
	}
}

func handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.WithError(err).Error("Error upgrading connection")
		return
	}
	defer conn.Close()

	safe := &safeConn{Conn: conn}
	logrus.Info("Client connected")

	config, err := loadConfig()
	if err != nil {
		logrus.WithError(err).Error("Error loading config")
		return
	}
	state, err := newAnalyzerState(config)
	if err != nil {
		logrus.WithError(err).Error("Error creating analyzer")
		safe.WriteJSON(ServerMessage{Type: "error", Error: err.Error()})
		return
	}

	if err := safe.WriteJSON(statusMessage(state)); err != nil {
		logrus.WithError(err).Error("Error sending status")
		return
	}

	go refreshLoop(safe, state)

	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logrus.WithError(err).Error("Error reading message")
			}
			break
		}

		logrus.WithField("command", msg.Type).Debug("Received command")

		switch msg.Type {
		case "start":
			state.start()
			safe.WriteJSON(statusMessage(state))

		case "pause":
			state.pause()
			safe.WriteJSON(statusMessage(state))

		case "reset":
			if err := state.reset(); err != nil {
				safe.WriteJSON(ServerMessage{Type: "error", Error: err.Error()})
				break
			}
			safe.WriteJSON(statusMessage(state))

		case "config_update":
			if msg.Config == nil {
				break
			}
			if err := state.updateConfig(*msg.Config); err != nil {
				logrus.WithError(err).Warn("Rejected config update")
				safe.WriteJSON(ServerMessage{Type: "error", Error: err.Error()})
				break
			}
			safe.WriteJSON(statusMessage(state))
		}
	}

	state.stop()
	logrus.Info("Client disconnected")
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live analysis dashboard over WebSocket",
	RunE: func(cmd *cobra.Command, args []string) error {
		// .env can supply the listen address in deployments
		if err := godotenv.Load(); err != nil {
			logrus.WithError(err).Debug("No .env file loaded")
		}

		addr := serveAddr
		if !cmd.Flags().Changed("addr") {
			if env := os.Getenv("BOTTLENECK_LISTEN_ADDR"); env != "" {
				addr = env
			}
		}

		initPrometheusMetrics()

		http.HandleFunc("/ws", handleWebSocket)
		http.Handle("/metrics", promhttp.Handler())
		http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		logrus.Infof("Server starting on http://localhost%s", addr)
		logrus.Infof("WebSocket endpoint: ws://localhost%s/ws", addr)
		logrus.Infof("Prometheus endpoint: http://localhost%s/metrics", addr)
		return http.ListenAndServe(addr, nil)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	rootCmd.AddCommand(serveCmd)
}
