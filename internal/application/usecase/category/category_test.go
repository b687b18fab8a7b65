package category

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

type fakeCategoryRepository struct {
	categories map[uuid.UUID]*entity.Category
	deleted    []uuid.UUID
}

func newFakeCategoryRepository(categories ...*entity.Category) *fakeCategoryRepository {
	repo := &fakeCategoryRepository{categories: make(map[uuid.UUID]*entity.Category)}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *fakeCategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func (r *fakeCategoryRepository) FindByUser(_ context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, c := range r.categories {
		if c.UserID == userID && (categoryType == nil || c.Type == *categoryType) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCategoryRepository) FindByIDs(_ context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.Category, error) {
	var result []*entity.Category
	for _, id := range ids {
		if c, ok := r.categories[id]; ok && c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *fakeCategoryRepository) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	for _, c := range r.categories {
		if c.UserID == userID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCategoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.categories[category.ID] = category
	return nil
}

func (r *fakeCategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.categories, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeCategoryRepository) GetTransactionStats(_ context.Context, _ []uuid.UUID, _, _ time.Time) (map[uuid.UUID]*adapter.CategoryStats, error) {
	return nil, errors.New("stats unavailable")
}

type fakeCache struct {
	invalidated []uuid.UUID
}

func (c *fakeCache) Get(_ context.Context, _ uuid.UUID, _ string, _ any) (bool, error) {
	return false, nil
}

func (c *fakeCache) Set(_ context.Context, _ uuid.UUID, _ string, _ any, _ time.Duration) error {
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.invalidated = append(c.invalidated, userID)
	return nil
}

func categoryErrorCode(t *testing.T, err error) domainerror.CategoryErrorCode {
	t.Helper()
	var catErr *domainerror.CategoryError
	if !errors.As(err, &catErr) {
		t.Fatalf("expected CategoryError, got %v", err)
	}
	return catErr.Code
}

func TestCreateCategoryUseCase(t *testing.T) {
	userID := uuid.New()
	existing := entity.NewCategory(userID, "Alimentação", "#FF0000", "utensils", entity.CategoryTypeExpense)

	tests := []struct {
		name         string
		input        CreateCategoryInput
		expectedCode domainerror.CategoryErrorCode
	}{
		{
			name:         "missing name",
			input:        CreateCategoryInput{UserID: userID, Name: "  ", Type: entity.CategoryTypeExpense},
			expectedCode: domainerror.ErrCodeCategoryNameRequired,
		},
		{
			name:         "name too long",
			input:        CreateCategoryInput{UserID: userID, Name: strings.Repeat("a", 51), Type: entity.CategoryTypeExpense},
			expectedCode: domainerror.ErrCodeCategoryNameTooLong,
		},
		{
			name:         "short hex color",
			input:        CreateCategoryInput{UserID: userID, Name: "Lazer", Color: "#FFF", Type: entity.CategoryTypeExpense},
			expectedCode: domainerror.ErrCodeInvalidColorFormat,
		},
		{
			name:         "unknown type",
			input:        CreateCategoryInput{UserID: userID, Name: "Lazer", Type: "transfer"},
			expectedCode: domainerror.ErrCodeInvalidCategoryType,
		},
		{
			name:         "duplicate name ignores case",
			input:        CreateCategoryInput{UserID: userID, Name: "alimentação", Type: entity.CategoryTypeExpense},
			expectedCode: domainerror.ErrCodeCategoryNameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewCreateCategoryUseCase(newFakeCategoryRepository(existing))
			_, err := uc.Execute(context.Background(), tt.input)
			if code := categoryErrorCode(t, err); code != tt.expectedCode {
				t.Errorf("expected code %s, got %s", tt.expectedCode, code)
			}
		})
	}

	t.Run("applies defaults", func(t *testing.T) {
		repo := newFakeCategoryRepository()
		uc := NewCreateCategoryUseCase(repo)

		output, err := uc.Execute(context.Background(), CreateCategoryInput{UserID: userID, Name: " Transporte ", Type: entity.CategoryTypeExpense})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Category.Name != "Transporte" {
			t.Errorf("expected trimmed name, got %q", output.Category.Name)
		}
		if output.Category.Color != entity.DefaultCategoryColor || output.Category.Icon != entity.DefaultCategoryIcon {
			t.Errorf("expected defaults, got %s/%s", output.Category.Color, output.Category.Icon)
		}
		if _, ok := repo.categories[output.Category.ID]; !ok {
			t.Error("expected category to be persisted")
		}
	})

	t.Run("same name for another user", func(t *testing.T) {
		uc := NewCreateCategoryUseCase(newFakeCategoryRepository(existing))
		_, err := uc.Execute(context.Background(), CreateCategoryInput{UserID: uuid.New(), Name: "Alimentação", Type: entity.CategoryTypeExpense})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestUpdateCategoryUseCase(t *testing.T) {
	userID := uuid.New()

	t.Run("renames and invalidates cache", func(t *testing.T) {
		category := entity.NewCategory(userID, "Mercado", "#00FF00", "cart", entity.CategoryTypeExpense)
		cache := &fakeCache{}
		uc := NewUpdateCategoryUseCase(newFakeCategoryRepository(category), cache)

		name, color := "Supermercado", "#112233"
		output, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: category.ID, UserID: userID, Name: &name, Color: &color})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.Category.Name != name || output.Category.Color != color {
			t.Errorf("expected %s/%s, got %s/%s", name, color, output.Category.Name, output.Category.Color)
		}
		if len(cache.invalidated) != 1 {
			t.Errorf("expected one cache invalidation, got %d", len(cache.invalidated))
		}
	})

	t.Run("keeping the same name is allowed", func(t *testing.T) {
		category := entity.NewCategory(userID, "Mercado", "#00FF00", "cart", entity.CategoryTypeExpense)
		uc := NewUpdateCategoryUseCase(newFakeCategoryRepository(category), &fakeCache{})

		name := "Mercado"
		if _, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: category.ID, UserID: userID, Name: &name}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("other user's category", func(t *testing.T) {
		category := entity.NewCategory(uuid.New(), "Mercado", "#00FF00", "cart", entity.CategoryTypeExpense)
		uc := NewUpdateCategoryUseCase(newFakeCategoryRepository(category), &fakeCache{})

		name := "Meu"
		_, err := uc.Execute(context.Background(), UpdateCategoryInput{CategoryID: category.ID, UserID: userID, Name: &name})
		if code := categoryErrorCode(t, err); code != domainerror.ErrCodeNotAuthorizedCategory {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeNotAuthorizedCategory, code)
		}
	})
}

func TestDeleteCategoryUseCase(t *testing.T) {
	userID := uuid.New()

	t.Run("deletes owned category", func(t *testing.T) {
		category := entity.NewCategory(userID, "Mercado", "#00FF00", "cart", entity.CategoryTypeExpense)
		repo := newFakeCategoryRepository(category)
		cache := &fakeCache{}
		uc := NewDeleteCategoryUseCase(repo, cache)

		output, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: category.ID, UserID: userID})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !output.Success || len(repo.deleted) != 1 {
			t.Errorf("expected category to be deleted")
		}
		if len(cache.invalidated) != 1 || cache.invalidated[0] != userID {
			t.Errorf("expected cache invalidation for user, got %v", cache.invalidated)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc := NewDeleteCategoryUseCase(newFakeCategoryRepository(), &fakeCache{})
		_, err := uc.Execute(context.Background(), DeleteCategoryInput{CategoryID: uuid.New(), UserID: userID})
		if code := categoryErrorCode(t, err); code != domainerror.ErrCodeCategoryNotFound {
			t.Errorf("expected %s, got %s", domainerror.ErrCodeCategoryNotFound, code)
		}
	})
}

func TestListCategoriesUseCase_StatsFailureIsTolerated(t *testing.T) {
	userID := uuid.New()
	expense := entity.NewCategory(userID, "Mercado", "#00FF00", "cart", entity.CategoryTypeExpense)
	income := entity.NewCategory(userID, "Salário", "#0000FF", "wallet", entity.CategoryTypeIncome)
	uc := NewListCategoriesUseCase(newFakeCategoryRepository(expense, income))

	start, end := time.Now().AddDate(0, -1, 0), time.Now()
	incomeType := entity.CategoryTypeIncome
	output, err := uc.Execute(context.Background(), ListCategoriesInput{UserID: userID, CategoryType: &incomeType, StartDate: &start, EndDate: &end})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(output.Categories) != 1 || output.Categories[0].Name != "Salário" {
		t.Fatalf("expected only the income category, got %+v", output.Categories)
	}
	if output.Categories[0].TransactionCount != 0 || !output.Categories[0].PeriodTotal.IsZero() {
		t.Errorf("expected empty stats, got %+v", output.Categories[0])
	}
}
