package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			clearTables(db)
		}

		password := "password"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)

		users := []struct {
			Username  string
			FirstName string
			LastName  string
			Email     string
			Role      string
		}{
			{"admin", "Sofia", "González", "sofia@tienda.com", "admin"},
			{"marta", "Marta", "Ruiz", "marta@tienda.com", "employee"},
			{"diego", "Diego", "Pérez", "diego@tienda.com", "employee"},
		}

		for _, u := range users {
			var exists int
			row := db.Raw("SELECT 1 FROM users WHERE username = ?", u.Username).Row()
			if err := row.Scan(&exists); err == nil {
				fmt.Printf("user %s already exists, skipping\n", u.Username)
				continue
			}

			if err := db.Exec(
				"INSERT INTO users (username, first_name, last_name, email, password_hash, role, permissions, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, '[]', now(), now())",
				u.Username, u.FirstName, u.LastName, u.Email, string(hash), u.Role,
			).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Printf("Seeded user %s (%s)\n", u.Username, u.Role)
		}

		products := []struct {
			Name        string
			Price       float64
			Stock       int
			Category    string
			Size        string
			Barcode     string
			GeneralCode string
			MinStock    int
			MaxStock    int
		}{
			{"Camiseta básica blanca", 12.99, 40, "camisetas", "M", "8412345000011", "CAM-001", 10, 80},
			{"Camiseta básica negra", 12.99, 35, "camisetas", "L", "8412345000028", "CAM-002", 10, 80},
			{"Pantalón vaquero", 29.95, 20, "pantalones", "42", "8412345000035", "PAN-001", 5, 40},
			{"Sudadera con capucha", 24.50, 15, "sudaderas", "M", "8412345000042", "SUD-001", 5, 30},
			{"Calcetines pack 3", 6.99, 60, "accesorios", "U", "8412345000059", "ACC-001", 20, 120},
		}

		for _, p := range products {
			var exists int
			row := db.Raw("SELECT 1 FROM products WHERE barcode = ?", p.Barcode).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO products (name, price, stock, category, size, barcode, general_code, image_path, min_stock, max_stock, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, '', ?, ?, now(), now())",
				p.Name, p.Price, p.Stock, p.Category, p.Size, p.Barcode, p.GeneralCode, p.MinStock, p.MaxStock,
			).Error; err != nil {
				log.Fatalf("failed to insert product %s: %v", p.Name, err)
			}
			fmt.Printf("Seeded product: %s\n", p.Name)
		}

		clients := []struct {
			Name   string
			Email  string
			Phone  string
			Gender string
		}{
			{"Lucía Fernández", "lucia@mail.com", "+34600111222", "female"},
			{"Carlos Romero", "carlos@mail.com", "+34600333444", "male"},
		}

		for _, c := range clients {
			var exists int
			row := db.Raw("SELECT 1 FROM clients WHERE email = ?", c.Email).Row()
			if err := row.Scan(&exists); err == nil {
				continue
			}

			if err := db.Exec(
				"INSERT INTO clients (name, email, phone, gender, created_at, updated_at) VALUES (?, ?, ?, ?, now(), now())",
				c.Name, c.Email, c.Phone, c.Gender,
			).Error; err != nil {
				log.Fatalf("failed to insert client %s: %v", c.Name, err)
			}
			fmt.Printf("Seeded client: %s\n", c.Name)
		}

		var exists int
		if err := db.Raw("SELECT 1 FROM settings WHERE id = 1").Row().Scan(&exists); err != nil {
			if err := db.Exec(
				"INSERT INTO settings (id, inventory_limit, notifications_enabled, expiry_days, created_at, updated_at) VALUES (1, 1000, true, 90, now(), now())",
			).Error; err != nil {
				log.Fatalf("failed to insert settings row: %v", err)
			}
			fmt.Println("Seeded default settings")
		}

		fmt.Println("Seeding completed")
	},
}

func clearTables(db *gorm.DB) {
	// Children first so foreign keys do not block the deletes.
	tables := []string{
		"returns",
		"purchase_items",
		"purchases",
		"overtime_records",
		"attendances",
		"schedules",
		"clients",
		"products",
		"settings",
		"users",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			log.Fatalf("failed to clear table %s: %v", t, err)
		}
	}
	fmt.Println("Cleared existing data")
}
