package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sgonzalez/retail-management/internal/schedule"
	schedulePostgres "github.com/sgonzalez/retail-management/internal/schedule/postgres"
)

func TestSchedulePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Schedule Postgres Suite")
}

// SQLite-compatible model with the same unique index as the migration.
type SQLiteSchedule struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:idx_schedules_user_date"`
	Date      string    `gorm:"column:date;not null;uniqueIndex:idx_schedules_user_date"`
	Shift     string    `gorm:"column:shift;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteSchedule) TableName() string { return "schedules" }

var _ = Describe("Schedule PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo schedule.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteSchedule{})
		Expect(err).NotTo(HaveOccurred())

		repo = schedulePostgres.NewRepository(db)
	})

	Describe("Create", func() {
		It("should map a second shift for the same user and date to ErrDuplicateSchedule", func() {
			Expect(repo.Create(&schedule.Schedule{UserID: 1, Date: "2026-03-02", Shift: "morning"})).To(Succeed())

			err := repo.Create(&schedule.Schedule{UserID: 1, Date: "2026-03-02", Shift: "evening"})
			Expect(err).To(Equal(schedule.ErrDuplicateSchedule))
		})

		It("should allow the same date for different users", func() {
			Expect(repo.Create(&schedule.Schedule{UserID: 1, Date: "2026-03-02", Shift: "morning"})).To(Succeed())
			Expect(repo.Create(&schedule.Schedule{UserID: 2, Date: "2026-03-02", Shift: "morning"})).To(Succeed())
		})
	})

	Describe("ListForUser", func() {
		It("should return only the user's schedules, newest date first", func() {
			Expect(repo.Create(&schedule.Schedule{UserID: 1, Date: "2026-03-02", Shift: "morning"})).To(Succeed())
			Expect(repo.Create(&schedule.Schedule{UserID: 1, Date: "2026-03-05", Shift: "evening"})).To(Succeed())
			Expect(repo.Create(&schedule.Schedule{UserID: 2, Date: "2026-03-03", Shift: "morning"})).To(Succeed())

			schedules, err := repo.ListForUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(schedules).To(HaveLen(2))
			Expect(schedules[0].Date).To(Equal("2026-03-05"))
			Expect(schedules[1].Date).To(Equal("2026-03-02"))
		})
	})

	Describe("ListAll", func() {
		It("should return every schedule across users", func() {
			Expect(repo.Create(&schedule.Schedule{UserID: 1, Date: "2026-03-02", Shift: "morning"})).To(Succeed())
			Expect(repo.Create(&schedule.Schedule{UserID: 2, Date: "2026-03-03", Shift: "evening"})).To(Succeed())

			schedules, err := repo.ListAll()
			Expect(err).NotTo(HaveOccurred())
			Expect(schedules).To(HaveLen(2))
		})
	})
})
