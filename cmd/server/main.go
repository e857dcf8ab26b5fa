package main

import (
	"log"
	"net/http"
	"os"

	"github.com/vedanttarate/gesture-detection/internal/handlers"
	"github.com/vedanttarate/gesture-detection/internal/model"

	"github.com/joho/godotenv"
)

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// Optional .env beside the binary; env vars win either way.
	_ = godotenv.Load()

	modelPath := envOr("MODEL_PATH", "models/gesture_model.onnx")
	metadataPath := envOr("METADATA_PATH", "models/model_metadata.json")

	log.Printf("Loading model from: %s", modelPath)

	modelServer := model.NewServer(modelPath, metadataPath)
	defer modelServer.Close()

	if info := modelServer.Info(); !info.ModelLoaded {
		// Keep serving so /model_info can explain the 503s, like a missing
		// artifact on a fresh checkout.
		log.Printf("Model not loaded (tried %s): %s", info.ModelPathTried, info.LastLoadError)
	}

	handler := handlers.NewHandler(modelServer)

	http.HandleFunc("/health", enableCORS(handler.Health))
	http.HandleFunc("/model_info", enableCORS(handler.ModelInfo))
	http.HandleFunc("/predict", enableCORS(handler.Predict))

	port := envOr("PORT", "8000")

	log.Printf("Server starting on port %s", port)
	log.Println("Endpoints:")
	log.Println("  GET  /health     - Health check")
	log.Println("  GET  /model_info - Model load diagnostics")
	log.Println("  POST /predict    - Predict gesture classes for feature rows")

	if err := http.ListenAndServe(":"+port, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
