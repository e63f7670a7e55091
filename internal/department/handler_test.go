package department

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-chi/chi"
	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	departmentDatamodel "github.com/frahmantamala/hr-management/internal/core/datamodel/department"
)

var _ = ginkgo.Describe("DepartmentHandler", func() {
	var (
		handler  *Handler
		mockRepo *mockDepartmentRepository
		router   *chi.Mux
	)

	ginkgo.BeforeEach(func() {
		mockRepo = newMockDepartmentRepository()
		handler = NewHandler(NewService(mockRepo))

		router = chi.NewRouter()
		router.Get("/departments", handler.GetAll)
		router.Get("/departments/total", handler.GetTotal)
		router.Get("/departments/{id}", handler.Get)
		router.Post("/departments", handler.Create)
		router.Put("/departments/{id}", handler.Rename)
		router.Delete("/departments/{id}", handler.Delete)
		router.Put("/persons/{personId}/department", handler.ChangePersonDepartment)
	})

	do := func(method, target string, body any) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			gomega.Expect(err).ToNot(gomega.HaveOccurred())
			reader = bytes.NewReader(payload)
		} else {
			reader = bytes.NewReader(nil)
		}

		req := httptest.NewRequest(method, target, reader)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	ginkgo.Describe("Create", func() {
		ginkgo.It("should return 201 with the new department", func() {
			rec := do(http.MethodPost, "/departments", CreateUpdateDepartmentDTO{Name: "Engineering"})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusCreated))

			var dept Department
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &dept)).To(gomega.Succeed())
			gomega.Expect(dept.ID).To(gomega.BeNumerically(">", 0))
		})

		ginkgo.It("should return 409 for a case-insensitive duplicate", func() {
			mockRepo.add("Engineering")

			rec := do(http.MethodPost, "/departments", CreateUpdateDepartmentDTO{Name: "ENGINEERING"})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusConflict))
		})

		ginkgo.It("should return 400 for an empty name", func() {
			rec := do(http.MethodPost, "/departments", CreateUpdateDepartmentDTO{Name: ""})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("Delete", func() {
		ginkgo.It("should return 204 on success", func() {
			dept := mockRepo.add("Engineering")

			rec := do(http.MethodDelete, "/departments/1", nil)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(mockRepo.deletedWithReassign).To(gomega.ConsistOf(dept.ID))
		})

		ginkgo.It("should return 404 for an unknown department", func() {
			rec := do(http.MethodDelete, "/departments/99", nil)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNotFound))
		})

		ginkgo.It("should return 400 when deleting the sentinel", func() {
			mockRepo.add(departmentDatamodel.SentinelUnassigned)

			rec := do(http.MethodDelete, "/departments/1", nil)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})

		ginkgo.It("should return 400 for a non-numeric id", func() {
			rec := do(http.MethodDelete, "/departments/abc", nil)
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("ChangePersonDepartment", func() {
		ginkgo.It("should return 204 and forward the move", func() {
			rec := do(http.MethodPut, "/persons/7/department",
				ChangePersonDepartmentDTO{NewDepartmentName: "Sales"})

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusNoContent))
			gomega.Expect(mockRepo.personMoves).To(gomega.HaveKeyWithValue(int64(7), "Sales"))
		})

		ginkgo.It("should return 400 for an empty department name", func() {
			rec := do(http.MethodPut, "/persons/7/department", ChangePersonDepartmentDTO{})
			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusBadRequest))
		})
	})

	ginkgo.Describe("GetTotal", func() {
		ginkgo.It("should count without the sentinel", func() {
			mockRepo.add("Engineering")
			mockRepo.add(departmentDatamodel.SentinelUnassigned)

			rec := do(http.MethodGet, "/departments/total", nil)

			gomega.Expect(rec.Code).To(gomega.Equal(http.StatusOK))

			var body map[string]int64
			gomega.Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(gomega.Succeed())
			gomega.Expect(body).To(gomega.HaveKeyWithValue("total_departments", int64(1)))
		})
	})
})
