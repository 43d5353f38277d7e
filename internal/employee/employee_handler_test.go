package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrms/internal/employee"
	employeeerrors "go-hrms/internal/employee/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context) ([]employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context) ([]employee.EmployeeOption, error)
	GetByIDFn    func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, id string) error
	HardDeleteFn func(ctx context.Context, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context) ([]employee.EmployeeOption, error) {
	return f.GetOptionsFn(ctx)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}
func (f *fakeEmployeeService) HardDelete(ctx context.Context, id string) error {
	return f.HardDeleteFn(ctx, id)
}

func newJSONContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestEmployeeHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	validBody := `{"full_name":"Jane Doe","email":"jane@example.com","joining_date":"2024-01-15","password":"password123"}`

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, "jane@example.com", req.Email)
				return employee.EmployeeResponse{ID: uuid.NewString(), EmployeeCode: "EMP-000001", FullName: req.FullName}, nil
			},
		}
		c, w := newJSONContext(http.MethodPost, "/employees", validBody)

		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"employee_code":"EMP-000001"`)
	})

	t.Run("validation error short password", func(t *testing.T) {
		c, w := newJSONContext(http.MethodPost, "/employees",
			`{"full_name":"Jane","email":"jane@example.com","joining_date":"2024-01-15","password":"short"}`)

		employee.NewHandler(&fakeEmployeeService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("validation error bad role", func(t *testing.T) {
		c, w := newJSONContext(http.MethodPost, "/employees",
			`{"full_name":"Jane","email":"jane@example.com","joining_date":"2024-01-15","password":"password123","role":"owner"}`)

		employee.NewHandler(&fakeEmployeeService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		c, w := newJSONContext(http.MethodPost, "/employees", validBody)

		employee.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeEmployeeService{
		GetAllFn: func(ctx context.Context) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{EmployeeCode: "EMP-000003", FullName: "Charlie", Email: "c@example.com"},
				{EmployeeCode: "EMP-000001", FullName: "alice", Email: "a@example.com"},
				{EmployeeCode: "EMP-000002", FullName: "Bob", Email: "b@example.com"},
			}, nil
		},
	}

	decode := func(t *testing.T, w *httptest.ResponseRecorder) ([]employee.EmployeeResponse, int64) {
		var env struct {
			Data []employee.EmployeeResponse `json:"data"`
			Meta struct {
				Total int64 `json:"total"`
			} `json:"meta"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
		return env.Data, env.Meta.Total
	}

	t.Run("sorted by name and paginated", func(t *testing.T) {
		c, w := newJSONContext(http.MethodGet, "/employees?page=1&page_size=2", "")

		employee.NewHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		data, total := decode(t, w)
		assert.Equal(t, int64(3), total)
		if assert.Len(t, data, 2) {
			assert.Equal(t, "alice", data[0].FullName)
			assert.Equal(t, "Bob", data[1].FullName)
		}
	})

	t.Run("filtered by query and sorted by code desc", func(t *testing.T) {
		c, w := newJSONContext(http.MethodGet, "/employees?q=example.com&sort_by=code&sort_dir=desc", "")

		employee.NewHandler(svc).GetAll(c)

		data, _ := decode(t, w)
		if assert.Len(t, data, 3) {
			assert.Equal(t, "EMP-000003", data[0].EmployeeCode)
			assert.Equal(t, "EMP-000001", data[2].EmployeeCode)
		}
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		c, w := newJSONContext(http.MethodGet, "/employees?q=bob&page=3", "")

		employee.NewHandler(svc).GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		data, total := decode(t, w)
		assert.Equal(t, int64(1), total)
		assert.Empty(t, data)
	})
}

func TestEmployeeHandler_GetByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(ctx context.Context, id string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		c, w := newJSONContext(http.MethodGet, "/employees/x", "")
		c.Params = gin.Params{{Key: "id", Value: uuid.NewString()}}

		employee.NewHandler(svc).GetByID(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("options", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetOptionsFn: func(ctx context.Context) ([]employee.EmployeeOption, error) {
				return []employee.EmployeeOption{{ID: "1", EmployeeCode: "EMP-000001", FullName: "Jane"}}, nil
			},
		}
		c, w := newJSONContext(http.MethodGet, "/employees/options", "")

		employee.NewHandler(svc).GetOptions(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"Jane"`)
	})
}

func TestEmployeeHandler_Update(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("manager cycle", func(t *testing.T) {
		id := uuid.NewString()
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, gotID string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, id, gotID)
				if assert.NotNil(t, req.ManagerID) {
					assert.Equal(t, id, *req.ManagerID)
				}
				return employee.EmployeeResponse{}, employeeerrors.ErrManagerCycle
			},
		}
		c, w := newJSONContext(http.MethodPut, "/employees/"+id, `{"manager_id":"`+id+`"}`)
		c.Params = gin.Params{{Key: "id", Value: id}}

		employee.NewHandler(svc).Update(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "cycle")
	})

	t.Run("deactivate", func(t *testing.T) {
		svc := &fakeEmployeeService{
			UpdateFn: func(ctx context.Context, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
				if assert.NotNil(t, req.IsActive) {
					assert.False(t, *req.IsActive)
				}
				return employee.EmployeeResponse{ID: id, IsActive: false}, nil
			},
		}
		c, w := newJSONContext(http.MethodPut, "/employees/1", `{"is_active":false}`)
		c.Params = gin.Params{{Key: "id", Value: "1"}}

		employee.NewHandler(svc).Update(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("soft delete", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error { return nil },
		}
		c, w := newJSONContext(http.MethodDelete, "/employees/1", "")
		c.Params = gin.Params{{Key: "id", Value: "1"}}

		employee.NewHandler(svc).Delete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"deleted":true`)
	})

	t.Run("self delete forbidden", func(t *testing.T) {
		svc := &fakeEmployeeService{
			DeleteFn: func(ctx context.Context, id string) error { return employeeerrors.ErrCannotDeleteSelf },
		}
		c, w := newJSONContext(http.MethodDelete, "/employees/1", "")
		c.Params = gin.Params{{Key: "id", Value: "1"}}

		employee.NewHandler(svc).Delete(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("hard delete", func(t *testing.T) {
		svc := &fakeEmployeeService{
			HardDeleteFn: func(ctx context.Context, id string) error { return nil },
		}
		c, w := newJSONContext(http.MethodDelete, "/employees/1/hard", "")
		c.Params = gin.Params{{Key: "id", Value: "1"}}

		employee.NewHandler(svc).HardDelete(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"hard":true`)
	})
}
