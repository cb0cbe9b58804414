package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"p9e.in/landapp/config"
	"p9e.in/landapp/handlers"
	"p9e.in/landapp/middleware"
	"p9e.in/landapp/pkg/reporting"
	"p9e.in/landapp/routes"
)

var (
	Version   = "dev"
	BuildTime = ""
)

func main() {

	versionFlag := flag.Bool("version", false, "Print version info and exit")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version:   %s\n", Version)
		fmt.Printf("BuildTime: %s\n", BuildTime)
		os.Exit(0)
	}

	settings := config.Load()
	middleware.SetSigningKey(settings.JWTSecret)
	config.Connect(settings)

	engine := reporting.NewEngine(settings.GallonsPerAcreInch)
	service := handlers.NewIrrigationReportService(handlers.NewDefaultStore(), engine)
	handler := routes.RegisterRoutes(handlers.NewIrrigationReportHandlers(service))

	log.Printf("📊 Reporting with %s gallons per acre-inch", engine.GallonsPerAcreInch())
	log.Println("Server starting at port", settings.Port)
	log.Fatal(http.ListenAndServe(":"+settings.Port, enableCORS(handler)))
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Company-ID, X-Requested-With")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		// Handle preflight (OPTIONS)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
