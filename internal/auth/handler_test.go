package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	internal "github.com/frahmantamala/hr-management/internal"
	coreuser "github.com/frahmantamala/hr-management/internal/core/user"
	"github.com/frahmantamala/hr-management/pkg/logger"
)

var _ = ginkgo.Describe("AuthHandler", func() {
	var (
		handler  *Handler
		mockRepo *mockUserRepository
		tokenGen *JWTTokenGenerator
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockUserRepository()
		tokenGen = NewJWTTokenGenerator(
			"handler-test-secret-that-is-long-enough",
			"hr-management",
			"hr-management-clients",
			time.Hour,
		)
		handler = NewHandler(NewService(mockRepo, tokenGen, bcrypt.MinCost))
	})

	postJSON := func(target string, body any, fn http.HandlerFunc) *httptest.ResponseRecorder {
		payload, err := json.Marshal(body)
		gomega.Expect(err).ToNot(gomega.HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(payload))
		rec := httptest.NewRecorder()
		fn(rec, req)
		return rec
	}

	ginkgo.Describe("Register", func() {
		ginkgo.It("should return 200 for a fresh registration", func() {
			rec := postJSON("/api/v1/auth/register", RegisterDTO{
				Username: "newbie",
				Email:    "newbie@example.com",
				Password: "s3cret-pass",
			}, handler.Register)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
		})

		ginkgo.It("should return 409 for a taken username", func() {
			rec := postJSON("/api/v1/auth/register", RegisterDTO{
				Username: "regular",
				Email:    "fresh@example.com",
				Password: "s3cret-pass",
			}, handler.Register)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusConflict))
		})

		ginkgo.It("should return 400 when a field is missing", func() {
			rec := postJSON("/api/v1/auth/register", RegisterDTO{
				Username: "newbie",
			}, handler.Register)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should return 400 on a malformed body", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", bytes.NewReader([]byte("{not json")))
			rec := httptest.NewRecorder()
			handler.Register(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("Login", func() {
		ginkgo.It("should return a token for valid credentials", func() {
			rec := postJSON("/api/v1/auth/login", LoginDTO{
				Email:    "user@example.com",
				Password: "correct_password",
			}, handler.Login)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var result AuthResult
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &result)).To(gomega.Succeed())
			gomega.Expect(result.Token).ToNot(gomega.BeEmpty())
			gomega.Expect(result.Username).To(gomega.Equal("regular"))
		})

		ginkgo.It("should return 401 with the uniform message for bad credentials", func() {
			recUnknown := postJSON("/api/v1/auth/login", LoginDTO{
				Email:    "nobody@example.com",
				Password: "correct_password",
			}, handler.Login)
			recWrongPass := postJSON("/api/v1/auth/login", LoginDTO{
				Email:    "user@example.com",
				Password: "wrong",
			}, handler.Login)

			gomega.Expect(recUnknown.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(recWrongPass.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(recUnknown.Body.String()).To(gomega.Equal(recWrongPass.Body.String()))
			gomega.Expect(recUnknown.Body.String()).To(gomega.ContainSubstring("Invalid email or password"))
		})
	})

	ginkgo.Describe("AuthMiddleware", func() {
		var (
			captured *coreuser.User
			next     http.Handler
		)

		ginkgo.BeforeEach(func() {
			captured = nil
			next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				captured, _ = internal.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})
		})

		ginkgo.It("should attach the principal built from the token claims", func() {
			token, err := tokenGen.GenerateToken(
				&User{ID: "user-1", Username: "regular"},
				[]string{coreuser.RoleUser},
			)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/persons", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
			gomega.Expect(captured).ToNot(gomega.BeNil())
			gomega.Expect(captured.ID).To(gomega.Equal("user-1"))
			gomega.Expect(captured.Username).To(gomega.Equal("regular"))
			gomega.Expect(captured.Roles).To(gomega.ConsistOf(coreuser.RoleUser))
		})

		ginkgo.It("should return 401 when the header is missing", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/persons", nil)
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
			gomega.Expect(captured).To(gomega.BeNil())
		})

		ginkgo.It("should return 401 for a garbage token", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/persons", nil)
			req.Header.Set("Authorization", "Bearer nonsense")
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})

		ginkgo.It("should return 401 for an expired token", func() {
			expiredGen := &JWTTokenGenerator{
				Secret:   tokenGen.Secret,
				Issuer:   tokenGen.Issuer,
				Audience: tokenGen.Audience,
				TokenTTL: -time.Minute,
			}
			token, err := expiredGen.GenerateToken(
				&User{ID: "user-1", Username: "regular"},
				[]string{coreuser.RoleUser},
			)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())

			req := httptest.NewRequest(http.MethodGet, "/api/v1/persons", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			rec := httptest.NewRecorder()
			handler.AuthMiddleware(next).ServeHTTP(rec, req)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
		})
	})
})

var _ = ginkgo.Describe("RBACAuthorization", func() {
	var (
		rbac *RBACAuthorization
		next http.Handler
	)

	ginkgo.BeforeEach(func() {
		rbac = NewRBACAuthorization(logger.LoggerWrapper())
		next = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})

	requestAs := func(user *coreuser.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/departments/1", nil)
		if user != nil {
			req = req.WithContext(internal.ContextWithUser(req.Context(), user))
		}
		rec := httptest.NewRecorder()
		rbac.RequireAdmin()(next).ServeHTTP(rec, req)
		return rec
	}

	ginkgo.It("should allow an admin through", func() {
		rec := requestAs(&coreuser.User{ID: "u1", Roles: []string{coreuser.RoleAdmin}})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))
	})

	ginkgo.It("should reject a regular user with 403", func() {
		rec := requestAs(&coreuser.User{ID: "u1", Roles: []string{coreuser.RoleUser}})
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusForbidden))
		gomega.Expect(rec.Body.String()).To(gomega.ContainSubstring("insufficient role"))
	})

	ginkgo.It("should treat a missing principal as 401", func() {
		rec := requestAs(nil)
		gomega.Expect(rec.Code).To(gomega.Equal(http.StatusUnauthorized))
	})
})
