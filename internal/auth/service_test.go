package auth_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/opsrequests/request-management/internal"
	"github.com/opsrequests/request-management/internal/auth"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

type storedUser struct {
	user         *auth.User
	passwordHash string
}

type mockAuthRepository struct {
	usersByEmail map[string]*storedUser
	usersByID    map[int64]*storedUser
	nextID       int64
	createError  error
}

func newMockAuthRepository() *mockAuthRepository {
	return &mockAuthRepository{
		usersByEmail: make(map[string]*storedUser),
		usersByID:    make(map[int64]*storedUser),
		nextID:       1,
	}
}

func (m *mockAuthRepository) GetCredentials(email string) (int64, string, bool, error) {
	stored, exists := m.usersByEmail[email]
	if !exists {
		return 0, "", false, errors.New("user not found")
	}
	return stored.user.ID, stored.passwordHash, stored.user.IsActive, nil
}

func (m *mockAuthRepository) GetActorByID(userID int64) (*auth.User, error) {
	stored, exists := m.usersByID[userID]
	if !exists {
		return nil, errors.New("user not found")
	}
	return stored.user, nil
}

func (m *mockAuthRepository) EmailExists(email string) (bool, error) {
	_, exists := m.usersByEmail[email]
	return exists, nil
}

func (m *mockAuthRepository) CreateUser(email, passwordHash string, role auth.Role, managerID *int64) (*auth.User, error) {
	if m.createError != nil {
		return nil, m.createError
	}
	u := &auth.User{
		ID:        m.nextID,
		Email:     email,
		Role:      role,
		ManagerID: managerID,
		IsActive:  true,
	}
	m.nextID++
	stored := &storedUser{user: u, passwordHash: passwordHash}
	m.usersByEmail[email] = stored
	m.usersByID[u.ID] = stored
	return u, nil
}

var _ = Describe("AuthService", func() {
	var (
		svc      *auth.Service
		mockRepo *mockAuthRepository
		tokenGen *auth.JWTTokenGenerator
	)

	BeforeEach(func() {
		mockRepo = newMockAuthRepository()
		tokenGen = auth.NewJWTTokenGenerator(
			"test-access-secret-0123456789-0123456789",
			"test-refresh-secret-0123456789-0123456789",
			15*time.Minute,
			7*24*time.Hour,
		)
		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = auth.NewService(mockRepo, tokenGen, bcrypt.MinCost, lg)
	})

	register := func(email, role string, managerID *int64) *auth.RegisterResult {
		result, err := svc.Register(auth.RegisterDTO{
			Email:     email,
			Password:  "correct-horse",
			Role:      role,
			ManagerID: managerID,
		})
		Expect(err).ToNot(HaveOccurred())
		return result
	}

	Describe("Register", func() {
		It("creates the user and issues a token pair", func() {
			result := register("emp@company.test", "EMPLOYEE", nil)

			Expect(result.User.ID).To(BeNumerically(">", 0))
			Expect(result.User.Role).To(Equal(auth.RoleEmployee))
			Expect(result.Tokens.AccessToken).ToNot(BeEmpty())
			Expect(result.Tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("keeps the manager link", func() {
			mgr := register("mgr@company.test", "MANAGER", nil)
			emp := register("emp@company.test", "EMPLOYEE", &mgr.User.ID)

			Expect(emp.User.ManagerID).ToNot(BeNil())
			Expect(*emp.User.ManagerID).To(Equal(mgr.User.ID))
		})

		It("refuses duplicate emails with a conflict", func() {
			register("emp@company.test", "EMPLOYEE", nil)

			_, err := svc.Register(auth.RegisterDTO{
				Email:    "emp@company.test",
				Password: "another-pass",
				Role:     "EMPLOYEE",
			})
			Expect(err).To(Equal(internal.ErrEmailAlreadyExists))
		})

		It("refuses an unknown role", func() {
			_, err := svc.Register(auth.RegisterDTO{
				Email:    "x@company.test",
				Password: "correct-horse",
				Role:     "SUPERVISOR",
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("Authenticate", func() {
		It("returns tokens for valid credentials", func() {
			register("emp@company.test", "EMPLOYEE", nil)

			tokens, err := svc.Authenticate(auth.LoginDTO{
				Email:    "emp@company.test",
				Password: "correct-horse",
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
		})

		It("refuses a wrong password", func() {
			register("emp@company.test", "EMPLOYEE", nil)

			_, err := svc.Authenticate(auth.LoginDTO{
				Email:    "emp@company.test",
				Password: "wrong",
			})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("refuses an unknown email", func() {
			_, err := svc.Authenticate(auth.LoginDTO{
				Email:    "ghost@company.test",
				Password: "whatever",
			})
			Expect(err).To(Equal(internal.ErrInvalidCredentials))
		})

		It("refuses an inactive account", func() {
			result := register("emp@company.test", "EMPLOYEE", nil)
			mockRepo.usersByID[result.User.ID].user.IsActive = false

			_, err := svc.Authenticate(auth.LoginDTO{
				Email:    "emp@company.test",
				Password: "correct-horse",
			})
			Expect(err).To(Equal(internal.ErrUserInactive))
		})
	})

	Describe("token round trip", func() {
		It("validates an issued access token and recovers the claims", func() {
			result := register("emp@company.test", "EMPLOYEE", nil)

			claims, err := svc.ValidateAccessToken(result.Tokens.AccessToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(claims.Email).To(Equal("emp@company.test"))
		})

		It("rotates the pair from a refresh token", func() {
			result := register("emp@company.test", "EMPLOYEE", nil)

			tokens, err := svc.RefreshTokens(result.Tokens.RefreshToken)
			Expect(err).ToNot(HaveOccurred())
			Expect(tokens.AccessToken).ToNot(BeEmpty())
			Expect(tokens.RefreshToken).ToNot(BeEmpty())
		})

		It("rejects garbage tokens", func() {
			_, err := svc.ValidateAccessToken("not-a-token")
			Expect(err).To(Equal(internal.ErrInvalidToken))
		})
	})

	Describe("GetActor", func() {
		It("returns the stored actor", func() {
			result := register("emp@company.test", "EMPLOYEE", nil)

			actor, err := svc.GetActor(result.User.ID)
			Expect(err).ToNot(HaveOccurred())
			Expect(actor.Email).To(Equal("emp@company.test"))
		})

		It("refuses inactive users", func() {
			result := register("emp@company.test", "EMPLOYEE", nil)
			mockRepo.usersByID[result.User.ID].user.IsActive = false

			_, err := svc.GetActor(result.User.ID)
			Expect(err).To(Equal(internal.ErrUserInactive))
		})

		It("returns not found for unknown ids", func() {
			_, err := svc.GetActor(404)
			Expect(err).To(Equal(internal.ErrUserNotFound))
		})
	})
})
