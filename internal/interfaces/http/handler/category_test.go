package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogapp "github.com/nursery/backend/internal/application/catalog"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/shared"
)

type stubCategoryRepo struct {
	categories map[uuid.UUID]*catalog.Category
}

func newStubCategoryRepo() *stubCategoryRepo {
	return &stubCategoryRepo{categories: make(map[uuid.UUID]*catalog.Category)}
}

func (r *stubCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Category, error) {
	if c, ok := r.categories[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubCategoryRepo) FindBySlug(_ context.Context, slug string) (*catalog.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubCategoryRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Category, error) {
	result := make([]catalog.Category, 0, len(r.categories))
	for _, c := range r.categories {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubCategoryRepo) FindRoots(_ context.Context) ([]catalog.Category, error) {
	var roots []catalog.Category
	for _, c := range r.categories {
		if c.ParentID == nil {
			roots = append(roots, *c)
		}
	}
	return roots, nil
}

func (r *stubCategoryRepo) FindChildren(_ context.Context, parentID uuid.UUID) ([]catalog.Category, error) {
	var children []catalog.Category
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, *c)
		}
	}
	return children, nil
}

func (r *stubCategoryRepo) ExistsBySlug(_ context.Context, slug string) (bool, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCategoryRepo) Save(_ context.Context, category *catalog.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *stubCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	return nil
}

func (r *stubCategoryRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.categories)), nil
}

type stubProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *stubProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *stubProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductRepo) FindByCategory(_ context.Context, categoryID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range r.products {
		if p.CategoryID != nil && *p.CategoryID == categoryID {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) FindByStatus(_ context.Context, status catalog.ProductStatus, _ shared.Filter) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, p := range r.products {
		if p.Status == status {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	var result []catalog.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductRepo) FindFeatured(_ context.Context, _ int) ([]catalog.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) FindLowStock(_ context.Context) ([]catalog.Product, error) {
	return nil, nil
}

func (r *stubProductRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	for _, p := range r.products {
		if p.Code == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubProductRepo) Save(_ context.Context, product *catalog.Product) error {
	r.products[product.ID] = product
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *stubProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *stubProductRepo) CountByStatus(_ context.Context) (map[catalog.ProductStatus]int64, error) {
	return map[catalog.ProductStatus]int64{}, nil
}

func setupCategoryRouter(t *testing.T) (*gin.Engine, *stubCategoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	categoryRepo := newStubCategoryRepo()
	service := catalogapp.NewCategoryService(categoryRepo, newStubProductRepo())
	h := NewCategoryHandler(service)

	r := gin.New()
	r.POST("/admin/categories", h.Create)
	r.GET("/admin/categories/:id", h.GetByID)
	r.GET("/store/categories", h.List)
	r.GET("/store/categories/tree", h.Tree)
	r.GET("/store/categories/:slug", h.GetBySlug)
	r.PUT("/admin/categories/:id", h.Update)
	r.DELETE("/admin/categories/:id", h.Delete)

	return r, categoryRepo
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Run("creates category", func(t *testing.T) {
		r, _ := setupCategoryRouter(t)

		payload := `{"name":"Tropical Plants","slug":"tropical-plants","description":"Humidity lovers"}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/admin/categories", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		body := decodeResponse(t, w)
		assert.True(t, body["success"].(bool))
		data := body["data"].(map[string]any)
		assert.Equal(t, "Tropical Plants", data["name"])
		assert.Equal(t, "tropical-plants", data["slug"])
	})

	t.Run("rejects duplicate slug", func(t *testing.T) {
		r, _ := setupCategoryRouter(t)

		payload := `{"name":"Tropical Plants","slug":"tropical-plants"}`
		first := httptest.NewRequest("POST", "/admin/categories", bytes.NewBufferString(payload))
		first.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(httptest.NewRecorder(), first)

		w := httptest.NewRecorder()
		second := httptest.NewRequest("POST", "/admin/categories", bytes.NewBufferString(payload))
		second.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, second)

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeResponse(t, w)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "ALREADY_EXISTS", errInfo["code"])
	})

	t.Run("rejects missing name", func(t *testing.T) {
		r, _ := setupCategoryRouter(t)

		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/admin/categories", bytes.NewBufferString(`{"slug":"no-name"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCategoryHandler_GetByID(t *testing.T) {
	t.Run("returns category", func(t *testing.T) {
		r, repo := setupCategoryRouter(t)

		category, err := catalog.NewCategory("Succulents", "succulents", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), category))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/categories/"+category.ID.String(), nil))

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeResponse(t, w)
		data := body["data"].(map[string]any)
		assert.Equal(t, "Succulents", data["name"])
	})

	t.Run("rejects malformed ID", func(t *testing.T) {
		r, _ := setupCategoryRouter(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/categories/not-a-uuid", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns 404 for unknown category", func(t *testing.T) {
		r, _ := setupCategoryRouter(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/admin/categories/"+uuid.NewString(), nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		body := decodeResponse(t, w)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "NOT_FOUND", errInfo["code"])
	})
}

func TestCategoryHandler_Tree(t *testing.T) {
	r, repo := setupCategoryRouter(t)

	root, err := catalog.NewCategory("Houseplants", "houseplants", nil)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), root))

	child, err := catalog.NewCategory("Ferns", "ferns", &root.ID)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), child))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/store/categories/tree", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeResponse(t, w)
	nodes := body["data"].([]any)
	require.Len(t, nodes, 1)
	node := nodes[0].(map[string]any)
	assert.Equal(t, "Houseplants", node["name"])
	children := node["children"].([]any)
	require.Len(t, children, 1)
}

func TestCategoryHandler_Delete(t *testing.T) {
	t.Run("deletes empty category", func(t *testing.T) {
		r, repo := setupCategoryRouter(t)

		category, err := catalog.NewCategory("Cacti", "cacti", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), category))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("DELETE", "/admin/categories/"+category.ID.String(), nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("refuses when children exist", func(t *testing.T) {
		r, repo := setupCategoryRouter(t)

		root, err := catalog.NewCategory("Outdoor", "outdoor", nil)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), root))

		child, err := catalog.NewCategory("Shrubs", "shrubs", &root.ID)
		require.NoError(t, err)
		require.NoError(t, repo.Save(context.Background(), child))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("DELETE", "/admin/categories/"+root.ID.String(), nil))

		assert.Equal(t, http.StatusConflict, w.Code)
		body := decodeResponse(t, w)
		errInfo := body["error"].(map[string]any)
		assert.Equal(t, "HAS_CHILDREN", errInfo["code"])
	})
}
