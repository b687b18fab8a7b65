package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/application/adapter/adaptertest"
	"github.com/financeflow/backend/internal/application/usecase/alert"
	"github.com/financeflow/backend/internal/application/usecase/auth"
	"github.com/financeflow/backend/internal/application/usecase/budget"
	"github.com/financeflow/backend/internal/application/usecase/category"
	"github.com/financeflow/backend/internal/application/usecase/dashboard"
	"github.com/financeflow/backend/internal/application/usecase/goal"
	"github.com/financeflow/backend/internal/application/usecase/report"
	"github.com/financeflow/backend/internal/application/usecase/transaction"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
	"github.com/financeflow/backend/internal/infra/server/router"
	"github.com/financeflow/backend/internal/integration/entrypoint/controller"
	"github.com/financeflow/backend/internal/integration/entrypoint/dto"
	"github.com/financeflow/backend/internal/integration/entrypoint/middleware"
)

// tokenTable resolves bearer tokens to fixed claims.
type tokenTable map[string]*adapter.TokenClaims

func (t tokenTable) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	claims, ok := t[token]
	if !ok {
		return nil, domainerror.ErrInvalidToken
	}
	return claims, nil
}

type testServer struct {
	engine *gin.Engine
	store  *adaptertest.Store
	emails *adaptertest.EmailService
	cache  *adaptertest.Cache
	alice  uuid.UUID
	bob    uuid.UUID
}

const (
	aliceToken = "alice-token"
	bobToken   = "bob-token"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	s := &testServer{
		store:  adaptertest.NewStore(),
		emails: &adaptertest.EmailService{},
		cache:  adaptertest.NewCache(),
		alice:  uuid.New(),
		bob:    uuid.New(),
	}
	clock := adaptertest.Clock{Time: day(2024, 1, 25)}

	categories := s.store.Categories()
	transactions := s.store.Transactions()
	budgets := s.store.Budgets()
	goals := s.store.Goals()

	alertChecker := alert.NewCheckBudgetAlertsUseCase(budgets, transactions, s.emails, clock, true)

	tokens := tokenTable{
		aliceToken: {UserID: s.alice, Email: "alice@example.com"},
		bobToken:   {UserID: s.bob, Email: "bob@example.com"},
	}

	r := router.NewRouter(
		controller.NewHealthController(func(context.Context) bool { return true }),
		controller.NewUserController(auth.NewDeleteAccountUseCase(s.store.UserData(), s.cache)),
		controller.NewCategoryController(
			category.NewListCategoriesUseCase(categories),
			category.NewCreateCategoryUseCase(categories),
			category.NewUpdateCategoryUseCase(categories, s.cache),
			category.NewDeleteCategoryUseCase(categories, s.cache),
		),
		controller.NewTransactionController(
			transaction.NewListTransactionsUseCase(transactions),
			transaction.NewCreateTransactionUseCase(transactions, categories, alertChecker, s.cache),
			transaction.NewUpdateTransactionUseCase(transactions, categories, s.cache),
			transaction.NewDeleteTransactionUseCase(transactions, s.cache),
			transaction.NewBulkDeleteTransactionsUseCase(transactions, s.cache),
		),
		controller.NewBudgetController(
			budget.NewListBudgetsUseCase(budgets, transactions, clock),
			budget.NewCreateBudgetUseCase(budgets, categories, transactions, clock),
			budget.NewGetBudgetUseCase(budgets, categories, transactions, clock),
			budget.NewUpdateBudgetUseCase(budgets, categories, transactions, clock),
			budget.NewDeleteBudgetUseCase(budgets),
		),
		controller.NewGoalController(
			goal.NewListGoalsUseCase(goals, clock),
			goal.NewCreateGoalUseCase(goals, categories, clock),
			goal.NewGetGoalUseCase(goals, categories, clock),
			goal.NewUpdateGoalUseCase(goals, categories, clock),
			goal.NewDeleteGoalUseCase(goals),
		),
		controller.NewDashboardController(
			dashboard.NewGetSummaryUseCase(transactions, clock),
			dashboard.NewGetOverviewUseCase(transactions, s.cache, clock, time.Minute),
			dashboard.NewGetCategoryDistributionUseCase(transactions, clock),
			dashboard.NewGetMonthlyComparisonUseCase(transactions, clock),
			dashboard.NewGetTrendsUseCase(transactions, clock),
			dashboard.NewGetRecentTransactionsUseCase(transactions),
			dashboard.NewGetDataRangeUseCase(transactions),
		),
		controller.NewReportController(report.NewGenerateReportUseCase(transactions, categories, clock)),
		middleware.NewRateLimiter(2, time.Minute),
		middleware.NewAuthMiddleware(tokens),
	)
	s.engine = r.Setup("test")

	return s
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode %q: %v", w.Body.String(), err)
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("expected status %d, got %d: %s", status, w.Code, w.Body.String())
	}
}

func expectErrorCode(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	expectStatus(t, w, status)
	if got := decode[dto.ErrorResponse](t, w).Code; got != code {
		t.Errorf("expected code %s, got %s", code, got)
	}
}

func (s *testServer) seedFood(t *testing.T) *entity.Category {
	t.Helper()
	ctx := context.Background()
	food := entity.NewCategory(s.alice, "Alimentação", "#FF5733", "utensils", entity.CategoryTypeExpense)
	_ = s.store.Categories().Create(ctx, food)
	_ = s.store.Transactions().Create(ctx, entity.NewTransaction(s.alice, "Salário", "", decimal.NewFromInt(5000), entity.TransactionTypeIncome, day(2024, 1, 5), nil))
	_ = s.store.Transactions().Create(ctx, entity.NewTransaction(s.alice, "Mercado", "", decimal.NewFromInt(300), entity.TransactionTypeExpense, day(2024, 1, 10), &food.ID))
	_ = s.store.Transactions().Create(ctx, entity.NewTransaction(s.alice, "Feira", "", decimal.NewFromInt(200), entity.TransactionTypeExpense, day(2024, 1, 20), &food.ID))
	return food
}

func TestHealthAndAuthentication(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", "", nil)
	expectStatus(t, w, http.StatusOK)

	tests := []struct {
		name  string
		token string
		code  domainerror.AuthErrorCode
	}{
		{name: "missing token", token: "", code: domainerror.ErrCodeMissingToken},
		{name: "unknown token", token: "forged", code: domainerror.ErrCodeInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/v1/categories", tt.token, nil)
			expectErrorCode(t, w, http.StatusUnauthorized, string(tt.code))
		})
	}
}

func TestCategoryEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/categories", aliceToken, dto.CreateCategoryRequest{
		Name: "Transporte", Color: "#00AAFF", Type: "expense",
	})
	expectStatus(t, w, http.StatusCreated)
	created := decode[dto.CategoryResponse](t, w)
	if created.Name != "Transporte" || created.Color != "#00AAFF" {
		t.Errorf("unexpected category %+v", created)
	}

	t.Run("duplicate name conflicts", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/categories", aliceToken, dto.CreateCategoryRequest{
			Name: "Transporte", Type: "expense",
		})
		expectErrorCode(t, w, http.StatusConflict, string(domainerror.ErrCodeCategoryNameExists))
	})

	t.Run("invalid color", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/categories", aliceToken, dto.CreateCategoryRequest{
			Name: "Lazer", Color: "blue", Type: "expense",
		})
		expectErrorCode(t, w, http.StatusBadRequest, string(domainerror.ErrCodeInvalidColorFormat))
	})

	t.Run("missing fields", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/categories", aliceToken, map[string]string{"color": "#000000"})
		expectErrorCode(t, w, http.StatusBadRequest, string(domainerror.ErrCodeMissingCategoryFields))
	})

	t.Run("other user cannot delete", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/v1/categories/"+created.ID, bobToken, nil)
		expectErrorCode(t, w, http.StatusForbidden, string(domainerror.ErrCodeNotAuthorizedCategory))
	})

	t.Run("list only returns own categories", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/categories", bobToken, nil)
		expectStatus(t, w, http.StatusOK)
		if got := decode[dto.CategoryListResponse](t, w); len(got.Categories) != 0 {
			t.Errorf("expected no categories for bob, got %d", len(got.Categories))
		}
	})

	t.Run("delete", func(t *testing.T) {
		w := s.do(t, http.MethodDelete, "/api/v1/categories/"+created.ID, aliceToken, nil)
		expectStatus(t, w, http.StatusNoContent)
	})
}

func TestTransactionEndpoints(t *testing.T) {
	s := newTestServer(t)
	food := s.seedFood(t)
	ctx := context.Background()
	_ = s.store.Budgets().Create(ctx, entity.NewBudget(s.alice, "Comida", decimal.NewFromInt(650), entity.BudgetPeriodMonthly, &food.ID, day(2024, 1, 1), day(2024, 1, 31)))

	foodID := food.ID.String()

	t.Run("expense crossing a budget threshold queues an alert", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions", aliceToken, dto.CreateTransactionRequest{
			Title:      "Restaurante",
			Amount:     decimal.NewFromInt(50),
			Type:       "expense",
			Date:       "2024-01-22",
			CategoryID: &foodID,
		})
		expectStatus(t, w, http.StatusCreated)

		created := decode[dto.TransactionResponse](t, w)
		if created.Amount != "50.00" || created.Category == nil || created.Category.Name != "Alimentação" {
			t.Errorf("unexpected transaction %+v", created)
		}

		if len(s.emails.Alerts) != 1 {
			t.Fatalf("expected one alert, got %d", len(s.emails.Alerts))
		}
		if got := s.emails.Alerts[0]; got.UserEmail != "alice@example.com" || got.Status != "warning" {
			t.Errorf("unexpected alert %+v", got)
		}
	})

	t.Run("invalid date", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions", aliceToken, dto.CreateTransactionRequest{
			Title: "x", Amount: decimal.NewFromInt(1), Type: "expense", Date: "22/01/2024",
		})
		expectErrorCode(t, w, http.StatusBadRequest, string(domainerror.ErrCodeInvalidTransactionDate))
	})

	t.Run("zero amount", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions", aliceToken, dto.CreateTransactionRequest{
			Title: "x", Type: "expense", Date: "2024-01-22",
		})
		expectErrorCode(t, w, http.StatusBadRequest, string(domainerror.ErrCodeInvalidTransactionAmount))
	})

	t.Run("category of another user", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions", bobToken, dto.CreateTransactionRequest{
			Title: "x", Amount: decimal.NewFromInt(1), Type: "expense", Date: "2024-01-22", CategoryID: &foodID,
		})
		expectErrorCode(t, w, http.StatusForbidden, string(domainerror.ErrCodeTxnCategoryNotOwned))
	})

	t.Run("list with filters and totals", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/transactions?type=expense&start_date=2024-01-01&end_date=2024-01-31&limit=2", aliceToken, nil)
		expectStatus(t, w, http.StatusOK)

		got := decode[dto.TransactionListResponse](t, w)
		if len(got.Transactions) != 2 || got.Pagination.Total != 3 || got.Pagination.TotalPages != 2 {
			t.Errorf("unexpected page %+v", got.Pagination)
		}
		if got.Totals.ExpenseTotal != "550.00" {
			t.Errorf("expected expense total 550.00, got %s", got.Totals.ExpenseTotal)
		}
	})

	t.Run("bulk delete rejects malformed ids", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/transactions/bulk-delete", aliceToken, dto.BulkDeleteTransactionsRequest{
			IDs: []string{"not-a-uuid"},
		})
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("update and delete", func(t *testing.T) {
		list := decode[dto.TransactionListResponse](t, s.do(t, http.MethodGet, "/api/v1/transactions?search=mercado", aliceToken, nil))
		if len(list.Transactions) != 1 {
			t.Fatalf("expected one match for mercado, got %d", len(list.Transactions))
		}
		id := list.Transactions[0].ID

		title := "Supermercado"
		w := s.do(t, http.MethodPatch, "/api/v1/transactions/"+id, aliceToken, dto.UpdateTransactionRequest{
			Title: &title, ClearCategory: true,
		})
		expectStatus(t, w, http.StatusOK)
		updated := decode[dto.TransactionResponse](t, w)
		if updated.Title != title || updated.CategoryID != nil {
			t.Errorf("unexpected update %+v", updated)
		}

		w = s.do(t, http.MethodDelete, "/api/v1/transactions/"+id, bobToken, nil)
		expectErrorCode(t, w, http.StatusForbidden, string(domainerror.ErrCodeNotAuthorizedTransaction))

		w = s.do(t, http.MethodDelete, "/api/v1/transactions/"+id, aliceToken, nil)
		expectStatus(t, w, http.StatusNoContent)
	})
}

func TestBudgetEndpoints(t *testing.T) {
	s := newTestServer(t)
	food := s.seedFood(t)
	foodID := food.ID.String()

	w := s.do(t, http.MethodPost, "/api/v1/budgets", aliceToken, dto.CreateBudgetRequest{
		Name:       "Comida",
		Amount:     decimal.NewFromInt(500),
		Period:     "monthly",
		CategoryID: &foodID,
		StartDate:  "2024-01-01",
		EndDate:    "2024-01-31",
	})
	expectStatus(t, w, http.StatusCreated)

	created := decode[dto.BudgetResponse](t, w)
	if created.Progress.Spent != "500.00" || created.Progress.Status != "exceeded" || created.Progress.Remaining != "0.00" {
		t.Errorf("unexpected progress %+v", created.Progress)
	}

	tests := []struct {
		name   string
		req    dto.CreateBudgetRequest
		status int
		code   domainerror.BudgetErrorCode
	}{
		{
			name:   "inverted range",
			req:    dto.CreateBudgetRequest{Name: "x", Amount: decimal.NewFromInt(1), Period: "monthly", StartDate: "2024-02-01", EndDate: "2024-01-01"},
			status: http.StatusBadRequest,
			code:   domainerror.ErrCodeBudgetInvalidRange,
		},
		{
			name:   "malformed date",
			req:    dto.CreateBudgetRequest{Name: "x", Amount: decimal.NewFromInt(1), Period: "monthly", StartDate: "2024-13-01", EndDate: "2024-01-01"},
			status: http.StatusBadRequest,
			code:   domainerror.ErrCodeBudgetInvalidRange,
		},
		{
			name:   "invalid period",
			req:    dto.CreateBudgetRequest{Name: "x", Amount: decimal.NewFromInt(1), Period: "weekly", StartDate: "2024-01-01", EndDate: "2024-01-31"},
			status: http.StatusBadRequest,
			code:   domainerror.ErrCodeInvalidBudgetPeriod,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/v1/budgets", aliceToken, tt.req)
			expectErrorCode(t, w, tt.status, string(tt.code))
		})
	}

	t.Run("other user is forbidden", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/budgets/"+created.ID, bobToken, nil)
		expectErrorCode(t, w, http.StatusForbidden, string(domainerror.ErrCodeUnauthorizedBudgetAccess))
	})

	t.Run("raising the amount changes the status", func(t *testing.T) {
		amount := decimal.NewFromInt(1000)
		w := s.do(t, http.MethodPatch, "/api/v1/budgets/"+created.ID, aliceToken, dto.UpdateBudgetRequest{Amount: &amount})
		expectStatus(t, w, http.StatusOK)
		if got := decode[dto.BudgetResponse](t, w); got.Progress.Status != "on_track" || got.Progress.Percentage != 50 {
			t.Errorf("unexpected progress %+v", got.Progress)
		}
	})

	t.Run("list and delete", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/budgets", aliceToken, nil)
		expectStatus(t, w, http.StatusOK)
		if got := decode[dto.BudgetListResponse](t, w); len(got.Budgets) != 1 {
			t.Fatalf("expected one budget, got %d", len(got.Budgets))
		}

		w = s.do(t, http.MethodDelete, "/api/v1/budgets/"+created.ID, aliceToken, nil)
		expectStatus(t, w, http.StatusNoContent)

		w = s.do(t, http.MethodGet, "/api/v1/budgets/"+created.ID, aliceToken, nil)
		expectErrorCode(t, w, http.StatusNotFound, string(domainerror.ErrCodeBudgetNotFound))
	})
}

func TestGoalEndpoints(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/goals", aliceToken, dto.CreateGoalRequest{
		Title:    "Reserva de emergência",
		Target:   decimal.NewFromInt(10000),
		Current:  decimal.NewFromInt(2500),
		Deadline: "2024-12-31",
	})
	expectStatus(t, w, http.StatusCreated)

	created := decode[dto.GoalResponse](t, w)
	if created.Type != string(entity.GoalTypeSavings) || created.Progress.Progress != 25 {
		t.Errorf("unexpected goal %+v", created)
	}

	t.Run("zero target", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/goals", aliceToken, dto.CreateGoalRequest{
			Title: "x", Deadline: "2024-12-31",
		})
		expectErrorCode(t, w, http.StatusBadRequest, string(domainerror.ErrCodeInvalidGoalTarget))
	})

	t.Run("malformed deadline", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/goals", aliceToken, dto.CreateGoalRequest{
			Title: "x", Target: decimal.NewFromInt(1), Deadline: "soon",
		})
		expectErrorCode(t, w, http.StatusBadRequest, string(domainerror.ErrCodeMissingGoalFields))
	})

	t.Run("update current", func(t *testing.T) {
		current := decimal.NewFromInt(10000)
		w := s.do(t, http.MethodPatch, "/api/v1/goals/"+created.ID, aliceToken, dto.UpdateGoalRequest{Current: &current})
		expectStatus(t, w, http.StatusOK)
		if got := decode[dto.GoalResponse](t, w); got.Progress.Progress != 100 {
			t.Errorf("expected 100%% progress, got %v", got.Progress.Progress)
		}

		w = s.do(t, http.MethodGet, "/api/v1/goals", aliceToken, nil)
		expectStatus(t, w, http.StatusOK)
		summary := decode[dto.GoalListResponse](t, w).Summary
		if summary.Total != 1 || summary.Completed != 1 || summary.TotalSaved != "10000.00" || summary.NextDeadline != nil {
			t.Errorf("unexpected summary %+v", summary)
		}
	})

	t.Run("get and delete", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/goals/"+created.ID, bobToken, nil)
		expectErrorCode(t, w, http.StatusForbidden, string(domainerror.ErrCodeUnauthorizedGoalAccess))

		w = s.do(t, http.MethodDelete, "/api/v1/goals/"+created.ID, aliceToken, nil)
		expectStatus(t, w, http.StatusNoContent)

		w = s.do(t, http.MethodGet, "/api/v1/goals", aliceToken, nil)
		if got := decode[dto.GoalListResponse](t, w); len(got.Goals) != 0 {
			t.Errorf("expected no goals, got %d", len(got.Goals))
		}
	})
}

func TestDashboardEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.seedFood(t)

	t.Run("overview with explicit dates", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/dashboard/overview?start_date=2024-01-01&end_date=2024-01-31", aliceToken, nil)
		expectStatus(t, w, http.StatusOK)

		got := decode[dto.DataResponse[map[string]any]](t, w)
		if got.Data["total_income"] != "5000" || got.Data["total_expenses"] != "500" || got.Data["net_income"] != "4500" {
			t.Errorf("unexpected overview %v", got.Data)
		}
	})

	t.Run("category distribution", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/dashboard/category-distribution?period=current-month", aliceToken, nil)
		expectStatus(t, w, http.StatusOK)

		got := decode[dto.DataResponse[map[string]any]](t, w)
		categories, _ := got.Data["categories"].([]any)
		if len(categories) != 1 {
			t.Errorf("expected one category, got %v", got.Data["categories"])
		}
	})

	t.Run("trends and comparison", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/dashboard/trends?start_date=2024-01-01&end_date=2024-01-31&granularity=week", aliceToken, nil)
		expectStatus(t, w, http.StatusOK)

		w = s.do(t, http.MethodGet, "/api/v1/dashboard/monthly-comparison?months=3", aliceToken, nil)
		expectStatus(t, w, http.StatusOK)
		got := decode[dto.DataResponse[map[string]any]](t, w)
		if months, _ := got.Data["months"].([]any); len(months) != 3 {
			t.Errorf("expected 3 months, got %v", got.Data["months"])
		}
	})

	t.Run("summary recent and data range", func(t *testing.T) {
		for _, path := range []string{
			"/api/v1/dashboard/summary",
			"/api/v1/dashboard/recent-transactions?limit=2",
			"/api/v1/dashboard/data-range",
		} {
			w := s.do(t, http.MethodGet, path, aliceToken, nil)
			expectStatus(t, w, http.StatusOK)
		}

		w := s.do(t, http.MethodGet, "/api/v1/dashboard/recent-transactions?limit=2", aliceToken, nil)
		got := decode[dto.DataResponse[map[string]any]](t, w)
		if txns, _ := got.Data["transactions"].([]any); len(txns) != 2 {
			t.Errorf("expected 2 recent transactions, got %v", got.Data["transactions"])
		}
	})

	tests := []struct {
		name string
		path string
		code domainerror.DashboardErrorCode
	}{
		{name: "start without end", path: "/api/v1/dashboard/overview?start_date=2024-01-01", code: domainerror.ErrCodeMissingEndDate},
		{name: "end without start", path: "/api/v1/dashboard/trends?end_date=2024-01-01", code: domainerror.ErrCodeMissingStartDate},
		{name: "inverted range", path: "/api/v1/dashboard/overview?start_date=2024-02-01&end_date=2024-01-01", code: domainerror.ErrCodeInvalidDateRange},
		{name: "malformed date", path: "/api/v1/dashboard/overview?start_date=01-01-2024&end_date=2024-01-31", code: domainerror.ErrCodeInvalidDateFormat},
		{name: "unknown period", path: "/api/v1/dashboard/overview?period=fortnight", code: domainerror.ErrCodeInvalidPeriodKey},
		{name: "unknown granularity", path: "/api/v1/dashboard/trends?granularity=hour", code: domainerror.ErrCodeInvalidGranularity},
		{name: "months not a number", path: "/api/v1/dashboard/monthly-comparison?months=many", code: domainerror.ErrCodeInvalidMonthCount},
		{name: "too many months", path: "/api/v1/dashboard/monthly-comparison?months=99", code: domainerror.ErrCodeInvalidMonthCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tt.path, aliceToken, nil)
			expectErrorCode(t, w, http.StatusBadRequest, string(tt.code))
		})
	}
}

func TestReportEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.seedFood(t)

	t.Run("custom report requires both dates", func(t *testing.T) {
		start := "2024-01-01"
		w := s.do(t, http.MethodPost, "/api/v1/reports", aliceToken, dto.GenerateReportRequest{
			ReportType: "custom", StartDate: &start,
		})
		expectErrorCode(t, w, http.StatusBadRequest, string(domainerror.ErrCodeCustomDatesRequired))
	})

	t.Run("monthly report", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/reports", aliceToken, dto.GenerateReportRequest{ReportType: "monthly"})
		expectStatus(t, w, http.StatusOK)

		got := decode[dto.ReportResponse](t, w)
		if got.StartDate != "2024-01-01" || got.EndDate != "2024-01-31" {
			t.Errorf("unexpected window %s..%s", got.StartDate, got.EndDate)
		}
		if got.Summary.Balance != "4500.00" || got.Summary.TransactionCount != 3 {
			t.Errorf("unexpected summary %+v", got.Summary)
		}
		if len(got.CategoryBreakdown) != 1 || got.CategoryBreakdown[0].Percentage != 100 {
			t.Errorf("unexpected breakdown %+v", got.CategoryBreakdown)
		}
	})

	t.Run("rate limited per user", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/v1/reports", aliceToken, dto.GenerateReportRequest{ReportType: "yearly"})
		expectErrorCode(t, w, http.StatusTooManyRequests, string(domainerror.ErrCodeReportRateLimited))

		w = s.do(t, http.MethodPost, "/api/v1/reports", bobToken, dto.GenerateReportRequest{ReportType: "yearly"})
		expectStatus(t, w, http.StatusOK)
	})
}

func TestUserEndpoints(t *testing.T) {
	s := newTestServer(t)
	s.seedFood(t)

	w := s.do(t, http.MethodGet, "/api/v1/users/me", aliceToken, nil)
	expectStatus(t, w, http.StatusOK)
	if got := decode[dto.MeResponse](t, w); got.ID != s.alice.String() || got.Email != "alice@example.com" {
		t.Errorf("unexpected me %+v", got)
	}

	w = s.do(t, http.MethodDelete, "/api/v1/users/me", aliceToken, dto.DeleteAccountRequest{Confirmation: "delete"})
	expectErrorCode(t, w, http.StatusBadRequest, string(domainerror.ErrCodeInvalidConfirmation))

	w = s.do(t, http.MethodDelete, "/api/v1/users/me", aliceToken, dto.DeleteAccountRequest{Confirmation: auth.DeleteConfirmation})
	expectStatus(t, w, http.StatusNoContent)

	w = s.do(t, http.MethodGet, "/api/v1/transactions", aliceToken, nil)
	if got := decode[dto.TransactionListResponse](t, w); got.Pagination.Total != 0 {
		t.Errorf("expected no transactions after deletion, got %d", got.Pagination.Total)
	}
}
