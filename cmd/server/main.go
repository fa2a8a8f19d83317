package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/velotype/go-socket-typerace/internal/db"
	"github.com/velotype/go-socket-typerace/internal/handlers"
	"github.com/velotype/go-socket-typerace/internal/texts"
)

// Initialize logging configuration
func init() {
	godotenv.Load()

	log.SetFlags(log.Ldate | log.Ltime | log.Lmicroseconds | log.Lshortfile)
}

// middleware function at the top level
func enableCORS(handler http.HandlerFunc) http.HandlerFunc {
	origin := os.Getenv("ALLOWED_ORIGIN")
	if origin == "" {
		origin = "http://localhost:3000"
	}

	return func(w http.ResponseWriter, r *http.Request) {
		// Set CORS headers
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	}
}

// passageSupplier picks the corpus backend: MongoDB when configured, the
// built-in passages otherwise.
func passageSupplier() texts.Supplier {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		log.Println("MONGO_URI not set, using built-in passages")
		return texts.NewStatic()
	}

	if err := db.Connect(uri); err != nil {
		log.Printf("Could not connect to MongoDB, using built-in passages: %v", err)
		return texts.NewStatic()
	}
	return db.NewPassages()
}

// Main server function
func main() {
	handlers.Init(passageSupplier())

	router := mux.NewRouter()
	router.HandleFunc("/ws/room", handlers.HandleWebSocket)

	router.HandleFunc("/api/create-room", enableCORS(handlers.HandleCreateRoom)).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/api/check-room", enableCORS(handlers.HandleCheckRoom)).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/api/health", handlers.HandleHealth).Methods(http.MethodGet)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on http://localhost:%s", port)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-stop
		log.Println("Shutting down server...")
		os.Exit(0)
	}()

	log.Fatal(http.ListenAndServe(":"+port, router))
}
