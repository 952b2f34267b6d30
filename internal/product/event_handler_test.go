package product_test

import (
	"context"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sgonzalez/retail-management/internal/core/events"
	"github.com/sgonzalez/retail-management/internal/product"
	productPostgres "github.com/sgonzalez/retail-management/internal/product/postgres"
)

var _ = Describe("Product EventHandler", func() {
	var (
		db      *gorm.DB
		repo    product.RepositoryAPI
		service *product.Service
		bus     *events.EventBus
		ctx     context.Context

		lowStock *product.Product
		healthy  *product.Product
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteProduct{}, &product.InventoryAlert{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = productPostgres.NewRepository(db)
		service = product.NewService(repo, slogger)

		bus = events.NewEventBus(slogger)
		product.NewEventHandler(service, slogger).RegisterEventHandlers(bus)
		ctx = context.Background()

		lowStock = &product.Product{Name: "Camiseta blanca", Price: 12.99, Stock: 3, Barcode: "8400001", GeneralCode: "CAM-001", MinStock: 10, MaxStock: 80}
		healthy = &product.Product{Name: "Pantalón vaquero", Price: 29.95, Stock: 20, Barcode: "8400002", GeneralCode: "PAN-001", MinStock: 5, MaxStock: 40}
		Expect(repo.Create(lowStock)).To(Succeed())
		Expect(repo.Create(healthy)).To(Succeed())
	})

	Describe("purchase recorded", func() {
		It("persists an alert for products left below their minimum", func() {
			event := events.NewPurchaseRecordedEvent(42, 1, []int64{lowStock.ID, healthy.ID})
			Expect(bus.PublishSync(ctx, event)).To(Succeed())

			history, err := service.AlertHistory()
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(1))

			alert := history[0]
			Expect(alert.ProductID).To(Equal(lowStock.ID))
			Expect(alert.ProductName).To(Equal("Camiseta blanca"))
			Expect(alert.Stock).To(Equal(3))
			Expect(alert.MinStock).To(Equal(10))
			Expect(alert.PurchaseID).To(Equal(int64(42)))
			Expect(alert.ResolvedAt).To(BeNil())
		})

		It("records nothing when every product stays above its minimum", func() {
			event := events.NewPurchaseRecordedEvent(42, 1, []int64{healthy.ID})
			Expect(bus.PublishSync(ctx, event)).To(Succeed())

			history, err := service.AlertHistory()
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(BeEmpty())
		})
	})

	Describe("stock returned", func() {
		BeforeEach(func() {
			event := events.NewPurchaseRecordedEvent(42, 1, []int64{lowStock.ID})
			Expect(bus.PublishSync(ctx, event)).To(Succeed())
		})

		It("resolves open alerts once stock recovers", func() {
			lowStock.Stock = 12
			Expect(repo.Update(lowStock)).To(Succeed())

			event := events.NewStockReturnedEvent(42, lowStock.ID, 9)
			Expect(bus.PublishSync(ctx, event)).To(Succeed())

			history, err := service.AlertHistory()
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(1))
			Expect(history[0].ResolvedAt).NotTo(BeNil())
		})

		It("leaves alerts open while stock is still below the minimum", func() {
			lowStock.Stock = 5
			Expect(repo.Update(lowStock)).To(Succeed())

			event := events.NewStockReturnedEvent(42, lowStock.ID, 2)
			Expect(bus.PublishSync(ctx, event)).To(Succeed())

			history, err := service.AlertHistory()
			Expect(err).NotTo(HaveOccurred())
			Expect(history).To(HaveLen(1))
			Expect(history[0].ResolvedAt).To(BeNil())
		})
	})
})
