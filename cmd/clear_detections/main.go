package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/joho/godotenv"
)

func init() {
	_ = godotenv.Load()
}

// main deletes every stored detection.
// Usage: go run ./cmd/clear_detections -yes
func main() {
	yes := flag.Bool("yes", false, "skip the confirmation prompt")
	flag.Parse()

	if !*yes {
		fmt.Print("Delete ALL detections? Type 'yes' to continue: ")
		var answer string
		fmt.Scanln(&answer)
		if answer != "yes" {
			fmt.Println("Aborted")
			os.Exit(1)
		}
	}

	config.InitDB()
	defer config.CloseDB()
	services.InitMediaService()

	ctx, cancel := config.WithTimeout()
	defer cancel()

	deleted, err := services.GetDetectionService().ClearDetections(ctx)
	if err != nil {
		log.Fatalf("❌ Failed to clear detections: %v", err)
	}
	// wait for snapshot cleanup before exiting
	if media := services.GetMediaService(); media != nil {
		if err := media.DeleteFolder(ctx, services.DetectionSnapshotFolder); err != nil {
			log.Printf("⚠️  Failed to delete snapshots: %v", err)
		}
	}
	fmt.Printf("✅ Deleted %d detections\n", deleted)
}
