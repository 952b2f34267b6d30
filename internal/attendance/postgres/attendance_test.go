package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sgonzalez/retail-management/internal/attendance"
	attendancePostgres "github.com/sgonzalez/retail-management/internal/attendance/postgres"
)

func TestAttendancePostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Postgres Suite")
}

// SQLiteRecord is a SQLite-compatible model for testing
type SQLiteRecord struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex:idx_attendance_user_date;not null"`
	Date        string    `gorm:"column:date;uniqueIndex:idx_attendance_user_date;not null"`
	Status      string    `gorm:"column:status;not null"`
	EntryTime   *string   `gorm:"column:entry_time"`
	ExitTime    *string   `gorm:"column:exit_time"`
	Confirmed   bool      `gorm:"column:confirmed;default:false"`
	ConfirmedBy *int64    `gorm:"column:confirmed_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteRecord) TableName() string {
	return "attendances"
}

type SQLiteOvertime struct {
	ID          int64     `gorm:"primaryKey"`
	UserID      int64     `gorm:"column:user_id;uniqueIndex:idx_overtime_user_date;not null"`
	Date        string    `gorm:"column:date;uniqueIndex:idx_overtime_user_date;not null"`
	Hours       float64   `gorm:"column:hours;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (SQLiteOvertime) TableName() string {
	return "overtime_records"
}

var _ = Describe("Attendance PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo attendance.RepositoryAPI
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteRecord{}, &SQLiteOvertime{})
		Expect(err).NotTo(HaveOccurred())

		repo = attendancePostgres.NewRepository(db)
	})

	entry := func(s string) *string { return &s }

	Describe("CreateRecord", func() {
		It("should create a record successfully", func() {
			rec := &attendance.Record{
				UserID:    1,
				Date:      "2026-03-10",
				Status:    attendance.StatusPresent,
				EntryTime: entry("08:00:00"),
			}

			err := repo.CreateRecord(rec)
			Expect(err).NotTo(HaveOccurred())
			Expect(rec.ID).To(BeNumerically(">", 0))
		})

		It("should translate the unique index violation into ErrDuplicateRecord", func() {
			first := &attendance.Record{UserID: 1, Date: "2026-03-10", Status: attendance.StatusPresent}
			Expect(repo.CreateRecord(first)).To(Succeed())

			second := &attendance.Record{UserID: 1, Date: "2026-03-10", Status: attendance.StatusLate}
			err := repo.CreateRecord(second)
			Expect(err).To(Equal(attendance.ErrDuplicateRecord))
		})

		It("should allow the same date for different users", func() {
			Expect(repo.CreateRecord(&attendance.Record{UserID: 1, Date: "2026-03-10", Status: attendance.StatusPresent})).To(Succeed())
			Expect(repo.CreateRecord(&attendance.Record{UserID: 2, Date: "2026-03-10", Status: attendance.StatusPresent})).To(Succeed())
		})
	})

	Describe("GetRecordByUserAndDate", func() {
		It("should return ErrRecordNotFound when absent", func() {
			_, err := repo.GetRecordByUserAndDate(1, "2026-03-10")
			Expect(err).To(Equal(attendance.ErrRecordNotFound))
		})

		It("should find an existing record", func() {
			rec := &attendance.Record{UserID: 1, Date: "2026-03-10", Status: attendance.StatusPresent, EntryTime: entry("08:00:00")}
			Expect(repo.CreateRecord(rec)).To(Succeed())

			found, err := repo.GetRecordByUserAndDate(1, "2026-03-10")
			Expect(err).NotTo(HaveOccurred())
			Expect(found.ID).To(Equal(rec.ID))
			Expect(*found.EntryTime).To(Equal("08:00:00"))
		})
	})

	Describe("ConfirmRecord", func() {
		It("should set confirmed and approver", func() {
			rec := &attendance.Record{UserID: 1, Date: "2026-03-10", Status: attendance.StatusPresent}
			Expect(repo.CreateRecord(rec)).To(Succeed())

			Expect(repo.ConfirmRecord(rec.ID, true, 99)).To(Succeed())

			found, err := repo.GetRecordByID(rec.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(found.Confirmed).To(BeTrue())
			Expect(*found.ConfirmedBy).To(Equal(int64(99)))
		})

		It("should return ErrRecordNotFound for missing ids", func() {
			err := repo.ConfirmRecord(12345, true, 99)
			Expect(err).To(Equal(attendance.ErrRecordNotFound))
		})
	})

	Describe("UpsertOvertime", func() {
		It("should insert a new overtime row", func() {
			err := repo.UpsertOvertime(&attendance.Overtime{
				UserID:      1,
				Date:        "2026-03-10",
				Hours:       1.5,
				Description: attendance.OvertimeAutoDescription,
			})
			Expect(err).NotTo(HaveOccurred())

			list, err := repo.ListOvertimeForUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Hours).To(Equal(1.5))
		})

		It("should overwrite hours and description on conflict", func() {
			Expect(repo.UpsertOvertime(&attendance.Overtime{
				UserID: 1, Date: "2026-03-10", Hours: 1.5,
				Description: attendance.OvertimeAutoDescription,
			})).To(Succeed())

			Expect(repo.UpsertOvertime(&attendance.Overtime{
				UserID: 1, Date: "2026-03-10", Hours: 2.0,
				Description: attendance.OvertimeManualDescription,
			})).To(Succeed())

			list, err := repo.ListOvertimeForUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Hours).To(Equal(2.0))
			Expect(list[0].Description).To(Equal(attendance.OvertimeManualDescription))
		})
	})

	Describe("ListRecordsForUser", func() {
		It("should return only the user's records ordered by date descending", func() {
			Expect(repo.CreateRecord(&attendance.Record{UserID: 1, Date: "2026-03-09", Status: attendance.StatusPresent})).To(Succeed())
			Expect(repo.CreateRecord(&attendance.Record{UserID: 1, Date: "2026-03-10", Status: attendance.StatusPresent})).To(Succeed())
			Expect(repo.CreateRecord(&attendance.Record{UserID: 2, Date: "2026-03-10", Status: attendance.StatusPresent})).To(Succeed())

			list, err := repo.ListRecordsForUser(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Date).To(Equal("2026-03-10"))
			Expect(list[1].Date).To(Equal("2026-03-09"))
		})
	})
})
