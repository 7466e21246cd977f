package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/virtualvault/storefront/internal/core/domain"
)

type stubCategoryService struct {
	createFn func(ctx context.Context, name string) (*domain.Category, error)
	updateFn func(ctx context.Context, id, name string) (*domain.Category, error)
	listFn   func(ctx context.Context) ([]*domain.Category, error)
	getFn    func(ctx context.Context, slug string) (*domain.Category, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *stubCategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	return s.createFn(ctx, name)
}

func (s *stubCategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	return s.updateFn(ctx, id, name)
}

func (s *stubCategoryService) List(ctx context.Context) ([]*domain.Category, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryService) GetBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	return s.getFn(ctx, slug)
}

func (s *stubCategoryService) Delete(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func TestCategoryHandler_Create(t *testing.T) {
	cases := []struct {
		name        string
		body        string
		err         error
		wantCode    int
		wantMessage string
		wantSuccess any
	}{
		{"created", `{"name":"Electronics"}`, nil, http.StatusCreated, "new category created", true},
		{"blank name", `{"name":"   "}`, nil, http.StatusBadRequest, "Name is required", nil},
		{"missing name", `{}`, nil, http.StatusBadRequest, "Name is required", nil},
		{"duplicate", `{"name":"Electronics"}`, domain.ErrCategoryExists, http.StatusOK, "Category Already Exists", false},
		{"storage error", `{"name":"Electronics"}`, errors.New("DB Error"), http.StatusInternalServerError, "Error in Category", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEcho()
			stub := &stubCategoryService{createFn: func(_ context.Context, name string) (*domain.Category, error) {
				if tc.err != nil {
					return nil, tc.err
				}
				return &domain.Category{ID: "c1", Name: name, Slug: "electronics"}, nil
			}}
			h := NewCategoryHandler(stub, discardLogger)

			rec := httptest.NewRecorder()
			c := e.NewContext(jsonRequest(http.MethodPost, "/api/v1/category/create-category", tc.body), rec)
			if err := h.Create(c); err != nil {
				t.Fatalf("handler error: %v", err)
			}
			if rec.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d", tc.wantCode, rec.Code)
			}
			resp := decodeBody(t, rec)
			if resp["message"] != tc.wantMessage || resp["success"] != tc.wantSuccess {
				t.Fatalf("unexpected body %v", resp)
			}
		})
	}
}

func TestCategoryHandler_Update_MissingIsNull(t *testing.T) {
	e := newTestEcho()
	stub := &stubCategoryService{updateFn: func(_ context.Context, id, name string) (*domain.Category, error) {
		if id != "missing" || name != "Books" {
			t.Fatalf("unexpected args %s %s", id, name)
		}
		return nil, nil
	}}
	h := NewCategoryHandler(stub, discardLogger)

	rec := httptest.NewRecorder()
	c := e.NewContext(jsonRequest(http.MethodPut, "/api/v1/category/update-category/missing", `{"name":"Books"}`), rec)
	c.SetParamNames("id")
	c.SetParamValues("missing")
	if err := h.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	resp := decodeBody(t, rec)
	if v, ok := resp["category"]; !ok || v != nil {
		t.Fatalf("expected category: null, got %v", resp)
	}
	if resp["message"] != "Category Updated Successfully" {
		t.Fatalf("unexpected message %v", resp["message"])
	}
}

func TestCategoryHandler_List(t *testing.T) {
	t.Run("empty list is an array", func(t *testing.T) {
		e := newTestEcho()
		h := NewCategoryHandler(&stubCategoryService{listFn: func(context.Context) ([]*domain.Category, error) {
			return nil, nil
		}}, discardLogger)

		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/category/get-category", nil), rec)
		if err := h.List(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		resp := decodeBody(t, rec)
		if list, ok := resp["category"].([]any); !ok || len(list) != 0 {
			t.Fatalf("expected empty array, got %v", resp["category"])
		}
	})

	t.Run("storage error", func(t *testing.T) {
		e := newTestEcho()
		h := NewCategoryHandler(&stubCategoryService{listFn: func(context.Context) ([]*domain.Category, error) {
			return nil, errors.New("Database error")
		}}, discardLogger)

		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/category/get-category", nil), rec)
		if err := h.List(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_Single(t *testing.T) {
	e := newTestEcho()
	h := NewCategoryHandler(&stubCategoryService{getFn: func(_ context.Context, slug string) (*domain.Category, error) {
		return nil, errors.New("Database error")
	}}, discardLogger)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/v1/category/single-category/tech", nil), rec)
	c.SetParamNames("slug")
	c.SetParamValues("tech")
	if err := h.Single(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if decodeBody(t, rec)["message"] != "Error While getting Single Category" {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestCategoryHandler_Delete(t *testing.T) {
	e := newTestEcho()
	var deleted string
	h := NewCategoryHandler(&stubCategoryService{deleteFn: func(_ context.Context, id string) error {
		deleted = id
		return nil
	}}, discardLogger)

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodDelete, "/api/v1/category/delete-category/c1", nil), rec)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if deleted != "c1" || decodeBody(t, rec)["message"] != "Categry Deleted Successfully" {
		t.Fatalf("unexpected result deleted=%q body=%s", deleted, rec.Body.String())
	}
}
