package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sgonzalez/retail-management/internal/client"
	clientPostgres "github.com/sgonzalez/retail-management/internal/client/postgres"
)

func TestClientPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Client Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteClient struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex:idx_clients_email"`
	Phone     string    `gorm:"column:phone"`
	Gender    string    `gorm:"column:gender"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteClient) TableName() string { return "clients" }

type SQLitePurchase struct {
	ID         int64     `gorm:"primaryKey"`
	EmployeeID int64     `gorm:"column:employee_id;not null"`
	ClientID   int64     `gorm:"column:client_id;not null"`
	Total      float64   `gorm:"column:total"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (SQLitePurchase) TableName() string { return "purchases" }

var _ = Describe("Client PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo client.RepositoryAPI
	)

	purchaseFor := func(employeeID, clientID int64) {
		Expect(db.Create(&SQLitePurchase{EmployeeID: employeeID, ClientID: clientID, Status: "pending"}).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteClient{}, &SQLitePurchase{})
		Expect(err).NotTo(HaveOccurred())

		repo = clientPostgres.NewRepository(db)
	})

	Describe("Create", func() {
		It("should map a duplicate email to ErrDuplicateClient", func() {
			Expect(repo.Create(&client.Client{Name: "Ana Ruiz", Email: "ana@example.com"})).To(Succeed())

			err := repo.Create(&client.Client{Name: "Otra Ana", Email: "ana@example.com"})
			Expect(err).To(Equal(client.ErrDuplicateClient))
		})
	})

	Describe("GetByID", func() {
		It("should return ErrClientNotFound for unknown ids", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(Equal(client.ErrClientNotFound))
		})
	})

	Describe("ListForEmployee", func() {
		var ana, bruno, carla *client.Client

		BeforeEach(func() {
			ana = &client.Client{Name: "Ana Ruiz", Email: "ana@example.com"}
			bruno = &client.Client{Name: "Bruno Díaz", Email: "bruno@example.com"}
			carla = &client.Client{Name: "Carla Vega", Email: "carla@example.com"}
			for _, c := range []*client.Client{ana, bruno, carla} {
				Expect(repo.Create(c)).To(Succeed())
			}
		})

		It("should return only clients from the employee's own purchases, deduplicated", func() {
			purchaseFor(1, ana.ID)
			purchaseFor(1, ana.ID) // repeat purchase must not duplicate the row
			purchaseFor(1, bruno.ID)
			purchaseFor(2, carla.ID)

			clients, err := repo.ListForEmployee(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(HaveLen(2))
			Expect(clients[0].Name).To(Equal("Ana Ruiz"))
			Expect(clients[1].Name).To(Equal("Bruno Díaz"))
		})

		It("should return an empty list for an employee without purchases", func() {
			purchaseFor(1, ana.ID)

			clients, err := repo.ListForEmployee(5)
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(BeEmpty())
		})
	})

	Describe("ListAll", func() {
		It("should order clients by name", func() {
			Expect(repo.Create(&client.Client{Name: "Zoe Marín", Email: "zoe@example.com"})).To(Succeed())
			Expect(repo.Create(&client.Client{Name: "Ana Ruiz", Email: "ana@example.com"})).To(Succeed())

			clients, err := repo.ListAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(clients).To(HaveLen(2))
			Expect(clients[0].Name).To(Equal("Ana Ruiz"))
			Expect(clients[1].Name).To(Equal("Zoe Marín"))
		})
	})
})
