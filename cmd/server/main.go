package main

import (
	"log"
	"os"

	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"github.com/joho/godotenv"

	_ "github.com/fitai/fitai-server/functions/chat"     // Import function/init
	_ "github.com/fitai/fitai-server/functions/profile"  // Import function/init
	_ "github.com/fitai/fitai-server/functions/progress" // Import function/init
)

func main() {
	// .env is optional locally
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("godotenv.Load: %v\n", err)
	}

	port := "8080"
	if envPort := os.Getenv("PORT"); envPort != "" {
		port = envPort
	}
	if err := funcframework.Start(port); err != nil {
		log.Fatalf("funcframework.Start: %v\n", err)
	}
}
