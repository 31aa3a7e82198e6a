package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/Asadel-Surveillance/asadel-console/config"
	"github.com/Asadel-Surveillance/asadel-console/models"
	"github.com/Asadel-Surveillance/asadel-console/services"
	"github.com/Asadel-Surveillance/asadel-console/validation"
	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// init loads environment variables
func init() {
	_ = godotenv.Load()
}

// seedAreas is the default site layout
var seedAreas = []struct {
	Region     string
	SubRegions []string
}{
	{"Building A", []string{"Floor 1", "Floor 2", "Floor 3"}},
	{"Building B", []string{"Reception", "Office Area", "Conference Room"}},
	{"Parking Area", []string{"Section A", "Section B", "VIP Parking"}},
}

var seedCameras = []struct {
	Name, Region, SubRegion, RTSP, Description, Access string
}{
	{"Lobby Cam", "Building A", "Floor 1", "rtsp://10.0.1.11:554/stream1", "Main entrance and lobby", models.CameraAccessAll},
	{"Server Room Cam", "Building A", "Floor 3", "rtsp://10.0.1.31:554/stream1", "Server room door", models.CameraAccessAdmin},
	{"Reception Cam", "Building B", "Reception", "rtsp://10.0.2.11:554/stream1", "Front desk", models.CameraAccessAll},
	{"Gate Cam", "Parking Area", "Section A", "rtsp://10.0.3.11:554/stream1", "Parking gate", models.CameraAccessAll},
}

// main creates the first Admin and the sample site.
// Usage: go run ./cmd/seed -username admin -email admin@asadel.io
// Safe to run again; existing rows are left alone.
func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email")
	fullName := flag.String("name", "Console Admin", "admin full name")
	password := flag.String("password", "", "admin password (prompted when empty)")
	skipSite := flag.Bool("skip-site", false, "only create the admin")
	flag.Parse()

	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println("ASADEL CONSOLE - Seeder")
	fmt.Println("════════════════════════════════════════════════════════════")
	fmt.Println()

	config.InitDB()
	defer config.CloseDB()
	if err := config.RunMigrations(config.DatabaseURL()); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✓ Connected to database")

	in := bufio.NewReader(os.Stdin)
	*username = promptIfEmpty(in, *username, "Username")
	*email = promptIfEmpty(in, *email, "Email")
	for {
		*password = promptIfEmpty(in, *password, "Password")
		if err := validation.ValidatePassword(*password); err != nil {
			fmt.Println("❌", err)
			*password = ""
			continue
		}
		break
	}

	if err := seedAdmin(*username, *email, *fullName, *password); err != nil {
		log.Fatalf("❌ %v", err)
	}
	if !*skipSite {
		if err := seedSite(); err != nil {
			log.Fatalf("❌ %v", err)
		}
	}

	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("1. Start the console API: go run .")
	fmt.Println("2. Login at POST /api/v1/login with the username and password")
	fmt.Println("3. Use the returned token for authenticated requests")
	fmt.Println()
}

func promptIfEmpty(in *bufio.Reader, value, label string) string {
	for strings.TrimSpace(value) == "" {
		fmt.Printf("%s: ", label)
		line, _ := in.ReadString('\n')
		value = strings.TrimSpace(line)
	}
	return strings.TrimSpace(value)
}

func seedAdmin(username, email, fullName, password string) error {
	email = strings.ToLower(email)
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}

	var existing models.User
	err := config.ConsoleGorm.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		log.Printf("✓ User '%s' already exists, skipping", existing.Username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("database error: %w", err)
	}

	hash, err := services.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.User{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		AccessLevel:  datatypes.JSONSlice[string](models.AllModules),
	}
	if err := config.ConsoleGorm.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}

	fmt.Println("✅ Admin created")
	fmt.Printf("ID:       %s\n", admin.ID)
	fmt.Printf("Username: %s\n", admin.Username)
	fmt.Printf("Email:    %s\n", admin.Email)
	return nil
}

func seedSite() error {
	return config.ConsoleGorm.Transaction(func(tx *gorm.DB) error {
		subRegions := map[string]models.SubRegion{}

		for _, area := range seedAreas {
			region := models.Region{Name: area.Region}
			if err := tx.Where(models.Region{Name: area.Region}).FirstOrCreate(&region).Error; err != nil {
				return fmt.Errorf("region %s: %w", area.Region, err)
			}
			for _, name := range area.SubRegions {
				sub := models.SubRegion{Name: name, RegionID: region.ID}
				if err := tx.Where(models.SubRegion{Name: name, RegionID: region.ID}).FirstOrCreate(&sub).Error; err != nil {
					return fmt.Errorf("sub-region %s/%s: %w", area.Region, name, err)
				}
				subRegions[area.Region+"/"+name] = sub
			}
		}
		log.Printf("✓ %d regions ready", len(seedAreas))

		for _, cam := range seedCameras {
			sub := subRegions[cam.Region+"/"+cam.SubRegion]
			camera := models.Camera{
				Name:        cam.Name,
				RTSPURL:     cam.RTSP,
				RegionID:    sub.RegionID,
				SubRegionID: sub.ID,
				Description: cam.Description,
				AccessLevel: cam.Access,
			}
			if err := tx.Where(models.Camera{Name: cam.Name, SubRegionID: sub.ID}).FirstOrCreate(&camera).Error; err != nil {
				return fmt.Errorf("camera %s: %w", cam.Name, err)
			}
		}
		log.Printf("✓ %d cameras ready", len(seedCameras))
		return nil
	})
}
