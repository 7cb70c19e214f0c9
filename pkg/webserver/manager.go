package webserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"raceboardbot/pkg/replay"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var addr = ":8080"
var upgrader = websocket.Upgrader{} // use default options

// Manager exposes the board over HTTP: JSON endpoints for the ranked
// rows, a websocket pushing fresh snapshots, and the chart pages.
type Manager struct {
	r  *mux.Router
	rm *replay.Manager
}

func NewManager(rm *replay.Manager) *Manager {
	m := &Manager{
		r:  mux.NewRouter(),
		rm: rm,
	}

	m.addHandlers()
	return m
}

func (m *Manager) router() *mux.Router {
	return m.r
}

func (m *Manager) addHandlers() {
	m.r.HandleFunc("/api/leaderboard", m.leaderboardHandler())
	m.r.HandleFunc("/api/analysis", m.analysisHandler())
	m.r.HandleFunc("/board", m.websocketHandler())
	m.r.HandleFunc("/charts/laps", m.lapTimesChartHandler())
	m.r.HandleFunc("/charts/gaps", m.gapsChartHandler())
	m.r.HandleFunc("/charts/positions", m.positionsChartHandler())
}

func (m *Manager) leaderboardHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, m.rm.Snapshot())
	}
}

func (m *Manager) analysisHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, m.rm.Snapshot().Analysis)
	}
}

func (m *Manager) websocketHandler() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Print("upgrade:", err)
			return
		}
		defer c.Close()
		mt, message, err := c.ReadMessage()
		if err != nil {
			log.Println("read:", err)
			return
		}
		log.Printf("recv: %s (%d)", message, mt)
		t := time.NewTicker(time.Second)
		for {
			select {
			case <-t.C:
				bytes, err := json.Marshal(m.rm.Snapshot())
				if err != nil {
					log.Println("marshal:", err)
					t.Stop()
					return
				}
				err = c.WriteMessage(mt, bytes)
				if err != nil {
					log.Println("write:", err)
					t.Stop()
					return
				}
			case <-r.Context().Done():
				log.Print("websocket closed\n")
				t.Stop()
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Printf("Error encoding response: %s", err.Error())
	}
}

func writeJSONError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func (m *Manager) Serve() {
	if os.Getenv("WEBSERVER_ADDRESS") != "" {
		addr = os.Getenv("WEBSERVER_ADDRESS")
	}
	srv := &http.Server{
		Addr: addr,
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      m.router(),
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.Printf("webserver listening on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	<-c

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Doesn't block if no connections, but will otherwise wait
	// until the timeout deadline.
	srv.Shutdown(ctx)
	log.Println("webserver shutting down")
}
