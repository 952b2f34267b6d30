package attendance_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sgonzalez/retail-management/internal/attendance"
)

func TestAttendance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Attendance Module Suite")
}

// fixedClock returns a settable instant for deterministic tests.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

type recordKey struct {
	userID int64
	date   string
}

// Mock repository for testing
type mockAttendanceRepository struct {
	records     map[recordKey]*attendance.Record
	recordsByID map[int64]*attendance.Record
	overtime    map[recordKey]*attendance.Overtime
	createError error
	nextID      int64
}

func newMockAttendanceRepository() *mockAttendanceRepository {
	return &mockAttendanceRepository{
		records:     make(map[recordKey]*attendance.Record),
		recordsByID: make(map[int64]*attendance.Record),
		overtime:    make(map[recordKey]*attendance.Overtime),
		nextID:      1,
	}
}

func (m *mockAttendanceRepository) CreateRecord(rec *attendance.Record) error {
	if m.createError != nil {
		return m.createError
	}
	key := recordKey{rec.UserID, rec.Date}
	if _, exists := m.records[key]; exists {
		return attendance.ErrDuplicateRecord
	}
	rec.ID = m.nextID
	m.nextID++
	rec.CreatedAt = time.Now()
	m.records[key] = rec
	m.recordsByID[rec.ID] = rec
	return nil
}

func (m *mockAttendanceRepository) GetRecordByUserAndDate(userID int64, date string) (*attendance.Record, error) {
	rec, exists := m.records[recordKey{userID, date}]
	if !exists {
		return nil, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (m *mockAttendanceRepository) GetRecordByID(id int64) (*attendance.Record, error) {
	rec, exists := m.recordsByID[id]
	if !exists {
		return nil, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (m *mockAttendanceRepository) UpdateRecord(rec *attendance.Record) error {
	m.records[recordKey{rec.UserID, rec.Date}] = rec
	m.recordsByID[rec.ID] = rec
	return nil
}

func (m *mockAttendanceRepository) ConfirmRecord(id int64, confirmed bool, approverID int64) error {
	rec, exists := m.recordsByID[id]
	if !exists {
		return attendance.ErrRecordNotFound
	}
	rec.Confirmed = confirmed
	rec.ConfirmedBy = &approverID
	return nil
}

func (m *mockAttendanceRepository) UpsertOvertime(ot *attendance.Overtime) error {
	key := recordKey{ot.UserID, ot.Date}
	if existing, exists := m.overtime[key]; exists {
		existing.Hours = ot.Hours
		existing.Description = ot.Description
		return nil
	}
	ot.ID = m.nextID
	m.nextID++
	m.overtime[key] = ot
	return nil
}

func (m *mockAttendanceRepository) ListRecordsForUser(userID int64) ([]*attendance.Record, error) {
	var out []*attendance.Record
	for _, rec := range m.recordsByID {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) ListAllRecords() ([]*attendance.Record, error) {
	var out []*attendance.Record
	for _, rec := range m.recordsByID {
		out = append(out, rec)
	}
	return out, nil
}

func (m *mockAttendanceRepository) ListOvertimeForUser(userID int64) ([]*attendance.Overtime, error) {
	var out []*attendance.Overtime
	for _, ot := range m.overtime {
		if ot.UserID == userID {
			out = append(out, ot)
		}
	}
	return out, nil
}

func (m *mockAttendanceRepository) ListAllOvertime() ([]*attendance.Overtime, error) {
	var out []*attendance.Overtime
	for _, ot := range m.overtime {
		out = append(out, ot)
	}
	return out, nil
}

var _ = Describe("AttendanceService", func() {
	var (
		service  *attendance.Service
		mockRepo *mockAttendanceRepository
		clk      *fixedClock
		logger   *slog.Logger
	)

	const userID = int64(42)

	setClock := func(hhmmss string) {
		t, err := time.Parse("2006-01-02 15:04:05", "2026-03-10 "+hhmmss)
		Expect(err).ToNot(HaveOccurred())
		clk.now = t.UTC()
	}

	BeforeEach(func() {
		mockRepo = newMockAttendanceRepository()
		clk = &fixedClock{}
		setClock("08:00:00")
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = attendance.NewService(mockRepo, clk, logger)
	})

	Describe("RecordEntry", func() {
		It("should create a present record with the clock's time", func() {
			rec, err := service.RecordEntry(userID)

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Date).To(Equal("2026-03-10"))
			Expect(rec.Status).To(Equal(attendance.StatusPresent))
			Expect(rec.EntryTime).ToNot(BeNil())
			Expect(*rec.EntryTime).To(Equal("08:00:00"))
			Expect(rec.ExitTime).To(BeNil())
		})

		It("should reject a second entry on the same date", func() {
			_, err := service.RecordEntry(userID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RecordEntry(userID)
			Expect(err).To(Equal(attendance.ErrDuplicateRecord))
		})

		It("should allow entries for different users on the same date", func() {
			_, err := service.RecordEntry(userID)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RecordEntry(userID + 1)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("RecordExit", func() {
		Context("after a normal-length shift", func() {
			It("should record worked hours without overtime for exactly 8 hours", func() {
				_, err := service.RecordEntry(userID)
				Expect(err).ToNot(HaveOccurred())

				setClock("16:00:00")
				result, err := service.RecordExit(userID)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.ExitTime).To(Equal("16:00:00"))
				Expect(result.WorkedHours).To(BeNumerically("~", 8.0, 0.001))
				Expect(result.OvertimeHours).To(BeNil())
				Expect(mockRepo.overtime).To(BeEmpty())
			})
		})

		Context("after a 9-hour shift", func() {
			It("should post exactly 1.0 hour of overtime", func() {
				_, err := service.RecordEntry(userID)
				Expect(err).ToNot(HaveOccurred())

				setClock("17:00:00")
				result, err := service.RecordExit(userID)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.WorkedHours).To(BeNumerically("~", 9.0, 0.001))
				Expect(result.OvertimeHours).ToNot(BeNil())
				Expect(*result.OvertimeHours).To(BeNumerically("~", 1.0, 0.001))

				ot := mockRepo.overtime[recordKey{userID, "2026-03-10"}]
				Expect(ot).ToNot(BeNil())
				Expect(ot.Hours).To(BeNumerically("~", 1.0, 0.001))
				Expect(ot.Description).To(Equal(attendance.OvertimeAutoDescription))
			})
		})

		Context("for the 08:00 to 18:30 scenario", func() {
			It("should compute 10.5 worked hours and 2.5 overtime, then reject a repeat exit", func() {
				_, err := service.RecordEntry(userID)
				Expect(err).ToNot(HaveOccurred())

				setClock("18:30:00")
				result, err := service.RecordExit(userID)

				Expect(err).ToNot(HaveOccurred())
				Expect(result.WorkedHours).To(BeNumerically("~", 10.5, 0.001))
				Expect(*result.OvertimeHours).To(BeNumerically("~", 2.5, 0.001))

				ot := mockRepo.overtime[recordKey{userID, "2026-03-10"}]
				Expect(ot.Description).To(Equal(attendance.OvertimeAutoDescription))

				_, err = service.RecordExit(userID)
				Expect(err).To(Equal(attendance.ErrDuplicateExit))
			})
		})

		Context("without a prior entry", func() {
			It("should return ErrNoEntry", func() {
				_, err := service.RecordExit(userID)
				Expect(err).To(Equal(attendance.ErrNoEntry))
			})
		})
	})

	Describe("RecordManual", func() {
		It("should create a record for the chosen date", func() {
			entry := "09:00:00"
			rec, err := service.RecordManual(userID, attendance.ManualAttendanceDTO{
				Date:      "2026-03-09",
				Status:    attendance.StatusLate,
				EntryTime: &entry,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Status).To(Equal(attendance.StatusLate))
			Expect(rec.Date).To(Equal("2026-03-09"))
		})

		It("should reject a duplicate for the same date", func() {
			dto := attendance.ManualAttendanceDTO{Date: "2026-03-09", Status: attendance.StatusAbsent}

			_, err := service.RecordManual(userID, dto)
			Expect(err).ToNot(HaveOccurred())

			_, err = service.RecordManual(userID, dto)
			Expect(err).To(Equal(attendance.ErrDuplicateRecord))
		})

		It("should reject malformed dates and unknown statuses", func() {
			_, err := service.RecordManual(userID, attendance.ManualAttendanceDTO{Date: "03/09/2026", Status: "present"})
			Expect(err).To(BeAssignableToTypeOf(attendance.ValidationError{}))

			_, err = service.RecordManual(userID, attendance.ManualAttendanceDTO{Date: "2026-03-09", Status: "vacation"})
			Expect(err).To(BeAssignableToTypeOf(attendance.ValidationError{}))
		})
	})

	Describe("RecordForEmployee", func() {
		It("should derive admin-tagged overtime when both times are given", func() {
			entry := "08:00:00"
			exit := "19:00:00"

			_, err := service.RecordForEmployee(attendance.AdminAttendanceDTO{
				UserID:    userID,
				Date:      "2026-03-08",
				Status:    attendance.StatusPresent,
				EntryTime: &entry,
				ExitTime:  &exit,
			})

			Expect(err).ToNot(HaveOccurred())
			ot := mockRepo.overtime[recordKey{userID, "2026-03-08"}]
			Expect(ot).ToNot(BeNil())
			Expect(ot.Hours).To(BeNumerically("~", 3.0, 0.001))
			Expect(ot.Description).To(Equal(attendance.OvertimeManualDescription))
		})

		It("should not post overtime for shifts within the standard length", func() {
			entry := "08:00:00"
			exit := "15:00:00"

			_, err := service.RecordForEmployee(attendance.AdminAttendanceDTO{
				UserID:    userID,
				Date:      "2026-03-08",
				Status:    attendance.StatusPresent,
				EntryTime: &entry,
				ExitTime:  &exit,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.overtime).To(BeEmpty())
		})

		It("should reject an exit before the entry", func() {
			entry := "18:00:00"
			exit := "08:00:00"

			_, err := service.RecordForEmployee(attendance.AdminAttendanceDTO{
				UserID:    userID,
				Date:      "2026-03-08",
				Status:    attendance.StatusPresent,
				EntryTime: &entry,
				ExitTime:  &exit,
			})

			Expect(err).To(BeAssignableToTypeOf(attendance.ValidationError{}))
			Expect(mockRepo.records).To(BeEmpty())
		})
	})

	Describe("Confirm", func() {
		It("should set the confirmation and approver", func() {
			rec, err := service.RecordEntry(userID)
			Expect(err).ToNot(HaveOccurred())

			err = service.Confirm(rec.ID, true, 1)
			Expect(err).ToNot(HaveOccurred())
			Expect(rec.Confirmed).To(BeTrue())
			Expect(*rec.ConfirmedBy).To(Equal(int64(1)))
		})

		It("should allow re-setting the confirmation", func() {
			rec, err := service.RecordEntry(userID)
			Expect(err).ToNot(HaveOccurred())

			Expect(service.Confirm(rec.ID, true, 1)).To(Succeed())
			Expect(service.Confirm(rec.ID, false, 2)).To(Succeed())
			Expect(rec.Confirmed).To(BeFalse())
			Expect(*rec.ConfirmedBy).To(Equal(int64(2)))
		})

		It("should return ErrRecordNotFound for unknown ids", func() {
			err := service.Confirm(9999, true, 1)
			Expect(err).To(Equal(attendance.ErrRecordNotFound))
		})
	})
})
