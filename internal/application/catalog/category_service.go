package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/nursery/backend/internal/domain/catalog"
	"github.com/nursery/backend/internal/domain/shared"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo catalog.CategoryRepository, productRepo catalog.ProductRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	exists, err := s.categoryRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
	}

	if req.ParentID != nil {
		if _, err := s.categoryRepo.FindByID(ctx, *req.ParentID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil, shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return nil, err
		}
	}

	category, err := catalog.NewCategory(req.Name, req.Slug, req.ParentID)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := category.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, categoryID uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// GetBySlug retrieves a category by slug
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// List retrieves all categories
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, 0, len(categories))
	for idx := range categories {
		responses = append(responses, ToCategoryResponse(&categories[idx]))
	}
	return responses, nil
}

// ListTree retrieves root categories with their direct children
func (s *CategoryService) ListTree(ctx context.Context) ([]CategoryTreeNode, error) {
	roots, err := s.categoryRepo.FindRoots(ctx)
	if err != nil {
		return nil, err
	}

	nodes := make([]CategoryTreeNode, 0, len(roots))
	for idx := range roots {
		children, err := s.categoryRepo.FindChildren(ctx, roots[idx].ID)
		if err != nil {
			return nil, err
		}
		childResponses := make([]CategoryResponse, 0, len(children))
		for cidx := range children {
			childResponses = append(childResponses, ToCategoryResponse(&children[cidx]))
		}
		nodes = append(nodes, CategoryTreeNode{
			CategoryResponse: ToCategoryResponse(&roots[idx]),
			Children:         childResponses,
		})
	}
	return nodes, nil
}

// Update updates a category
func (s *CategoryService) Update(ctx context.Context, categoryID uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != category.Slug {
		exists, err := s.categoryRepo.ExistsBySlug(ctx, *req.Slug)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Category with this slug already exists")
		}
	}

	name := category.Name
	description := category.Description
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if err := category.Update(name, description); err != nil {
		return nil, err
	}
	if req.Slug != nil {
		if err := category.SetSlug(*req.Slug); err != nil {
			return nil, err
		}
	}

	if req.ParentID != nil {
		if err := s.checkParent(ctx, category.ID, *req.ParentID); err != nil {
			return nil, err
		}
		if err := category.MoveTo(req.ParentID); err != nil {
			return nil, err
		}
	}
	if req.SortOrder != nil {
		category.SetSortOrder(*req.SortOrder)
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete deletes a category when no products or children reference it
func (s *CategoryService) Delete(ctx context.Context, categoryID uuid.UUID) error {
	if _, err := s.categoryRepo.FindByID(ctx, categoryID); err != nil {
		return err
	}

	children, err := s.categoryRepo.FindChildren(ctx, categoryID)
	if err != nil {
		return err
	}
	if len(children) > 0 {
		return shared.NewDomainError("HAS_CHILDREN", "Category has child categories")
	}

	products, err := s.productRepo.FindByCategory(ctx, categoryID, shared.Filter{Page: 1, PageSize: 1})
	if err != nil {
		return err
	}
	if len(products) > 0 {
		return shared.NewDomainError("HAS_PRODUCTS", "Category still has products")
	}

	return s.categoryRepo.Delete(ctx, categoryID)
}

// checkParent validates the new parent exists and is not the category itself
// or one of its descendants
func (s *CategoryService) checkParent(ctx context.Context, categoryID, parentID uuid.UUID) error {
	if parentID == categoryID {
		return shared.NewDomainError("INVALID_PARENT", "Category cannot be its own parent")
	}

	current := parentID
	for i := 0; i < 32; i++ {
		parent, err := s.categoryRepo.FindByID(ctx, current)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_PARENT", "Parent category not found")
			}
			return err
		}
		if parent.ParentID == nil {
			return nil
		}
		if *parent.ParentID == categoryID {
			return shared.NewDomainError("INVALID_PARENT", "Move would create a cycle")
		}
		current = *parent.ParentID
	}
	return shared.NewDomainError("INVALID_PARENT", "Category tree too deep")
}

// CategoryTreeNode is a category with its direct children
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}
