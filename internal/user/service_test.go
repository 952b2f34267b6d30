package user_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sgonzalez/retail-management/internal/auth"
	"github.com/sgonzalez/retail-management/internal/user"
)

func TestUser(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Module Suite")
}

type mockUserRepository struct {
	users  map[int64]*user.User
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users:  make(map[int64]*user.User),
		nextID: 1,
	}
}

func (m *mockUserRepository) add(u *user.User) *user.User {
	u.ID = m.nextID
	m.nextID++
	m.users[u.ID] = u
	return u
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (m *mockUserRepository) ListAll() ([]*user.User, error) {
	out := make([]*user.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	if _, ok := m.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	copied := *u
	m.users[u.ID] = &copied
	return nil
}

func (m *mockUserRepository) Delete(id int64) error {
	if _, ok := m.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

var _ = Describe("User Service", func() {
	var (
		repo    *mockUserRepository
		service *user.Service
	)

	strPtr := func(s string) *string { return &s }

	BeforeEach(func() {
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		repo = newMockUserRepository()
		service = user.NewService(repo, logger)

		repo.add(&user.User{
			Username:    "marta",
			FirstName:   "Marta",
			Email:       "marta@tienda.com",
			Role:        "employee",
			Permissions: "[]",
		})
	})

	Describe("Update", func() {
		It("applies only the fields present in the DTO", func() {
			updated, err := service.Update(1, user.UpdateProfileDTO{
				Phone: strPtr("+34600111222"),
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Phone).To(Equal("+34600111222"))
			Expect(updated.FirstName).To(Equal("Marta"))
			Expect(updated.Email).To(Equal("marta@tienda.com"))
		})

		It("rejects an empty first name", func() {
			_, err := service.Update(1, user.UpdateProfileDTO{FirstName: strPtr("")})
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(user.ValidationError{}))
		})

		It("rejects a malformed email", func() {
			_, err := service.Update(1, user.UpdateProfileDTO{Email: strPtr("not-an-email")})
			Expect(err).To(HaveOccurred())
		})

		It("returns not found for an unknown user", func() {
			_, err := service.Update(99, user.UpdateProfileDTO{Phone: strPtr("+34")})
			Expect(err).To(Equal(user.ErrUserNotFound))
		})
	})

	Describe("AssignRole", func() {
		It("assigns a known role", func() {
			updated, err := service.AssignRole(1, "admin")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal("admin"))
		})

		It("normalizes role casing", func() {
			updated, err := service.AssignRole(1, "ADMIN")
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Role).To(Equal("admin"))
		})

		It("rejects roles outside the enum", func() {
			_, err := service.AssignRole(1, "superuser")
			Expect(err).To(Equal(auth.ErrInvalidRole))

			stored, _ := repo.GetByID(1)
			Expect(stored.Role).To(Equal("employee"))
		})
	})

	Describe("UpdatePermissions", func() {
		It("stores the permission list as JSON", func() {
			updated, err := service.UpdatePermissions(1, []string{"products:write", "clients:read"})
			Expect(err).NotTo(HaveOccurred())

			perms, err := updated.PermissionSet()
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(ConsistOf("products:write", "clients:read"))
		})

		It("treats nil as an empty set", func() {
			updated, err := service.UpdatePermissions(1, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Permissions).To(Equal("[]"))

			perms, err := updated.PermissionSet()
			Expect(err).NotTo(HaveOccurred())
			Expect(perms).To(BeEmpty())
		})
	})

	Describe("Delete", func() {
		It("removes the user", func() {
			Expect(service.Delete(1)).To(Succeed())
			_, err := repo.GetByID(1)
			Expect(err).To(Equal(user.ErrUserNotFound))
		})

		It("returns not found for an unknown user", func() {
			Expect(service.Delete(42)).To(Equal(user.ErrUserNotFound))
		})
	})
})
