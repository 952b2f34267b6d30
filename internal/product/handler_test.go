package product_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/sgonzalez/retail-management/internal/product"
	productPostgres "github.com/sgonzalez/retail-management/internal/product/postgres"
)

// sqliteProduct mirrors the products table with the unique indexes the
// migrations create, so duplicate detection behaves like postgres.
type sqliteProduct struct {
	ID          int64   `gorm:"primaryKey;column:id"`
	Name        string  `gorm:"column:name"`
	Price       float64 `gorm:"column:price"`
	Stock       int     `gorm:"column:stock"`
	Category    string  `gorm:"column:category"`
	Size        string  `gorm:"column:size"`
	Barcode     string  `gorm:"column:barcode;uniqueIndex:idx_products_barcode"`
	GeneralCode string  `gorm:"column:general_code;uniqueIndex:idx_products_general_code"`
	ImagePath   string  `gorm:"column:image_path"`
	MinStock    int     `gorm:"column:min_stock"`
	MaxStock    int     `gorm:"column:max_stock"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (sqliteProduct) TableName() string { return "products" }

var _ = Describe("Product Handler Integration", func() {
	var (
		db      *gorm.DB
		repo    product.RepositoryAPI
		service *product.Service
		handler *product.Handler
		router  *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&sqliteProduct{})
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = productPostgres.NewRepository(db)
		service = product.NewService(repo, slogger)
		handler = product.NewHandler(service)

		router = chi.NewRouter()
		router.Post("/products", handler.Create)
		router.Get("/products", handler.List)
		router.Get("/products/barcode/{barcode}", handler.GetByBarcode)
		router.Get("/products/{id}", handler.Get)
		router.Delete("/products/{id}", handler.Delete)
		router.Get("/admin/products/alerts", handler.LowStockAlerts)

		seed := []*product.Product{
			{Name: "Camiseta blanca", Price: 12.99, Stock: 3, Barcode: "8400001", GeneralCode: "CAM-001", MinStock: 10, MaxStock: 80},
			{Name: "Pantalón vaquero", Price: 29.95, Stock: 20, Barcode: "8400002", GeneralCode: "PAN-001", MinStock: 5, MaxStock: 40},
		}
		for _, p := range seed {
			Expect(repo.Create(p)).To(Succeed())
		}
	})

	It("lists all products", func() {
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var products []*product.Product
		Expect(json.NewDecoder(w.Body).Decode(&products)).To(Succeed())
		Expect(products).To(HaveLen(2))
	})

	It("fetches a product by barcode", func() {
		req := httptest.NewRequest(http.MethodGet, "/products/barcode/8400002", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var p product.Product
		Expect(json.NewDecoder(w.Body).Decode(&p)).To(Succeed())
		Expect(p.Name).To(Equal("Pantalón vaquero"))
	})

	It("returns 404 for an unknown product id", func() {
		req := httptest.NewRequest(http.MethodGet, "/products/9999", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("rejects a duplicate barcode with 400", func() {
		body, _ := json.Marshal(product.CreateProductDTO{
			Name:        "Otra camiseta",
			Price:       9.99,
			Barcode:     "8400001",
			GeneralCode: "CAM-999",
		})
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("rejects an invalid payload with 400", func() {
		body, _ := json.Marshal(product.CreateProductDTO{Name: "", Barcode: "x", GeneralCode: "y"})
		req := httptest.NewRequest(http.MethodPost, "/products", bytes.NewReader(body))
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("deletes a product and then returns 404 for it", func() {
		req := httptest.NewRequest(http.MethodDelete, "/products/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusNoContent))

		req = httptest.NewRequest(http.MethodGet, "/products/1", nil)
		w = httptest.NewRecorder()
		router.ServeHTTP(w, req)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("reports only products below their minimum stock", func() {
		req := httptest.NewRequest(http.MethodGet, "/admin/products/alerts", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var alerts []*product.LowStockAlert
		Expect(json.NewDecoder(w.Body).Decode(&alerts)).To(Succeed())
		Expect(alerts).To(HaveLen(1))
		Expect(alerts[0].Name).To(Equal("Camiseta blanca"))
		Expect(alerts[0].Stock).To(Equal(3))
		Expect(alerts[0].MinStock).To(Equal(10))
	})
})
