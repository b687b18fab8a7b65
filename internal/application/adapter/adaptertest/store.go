// Package adaptertest provides in-memory implementations of the adapter
// interfaces for use case tests.
package adaptertest

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/financeflow/backend/internal/application/adapter"
	"github.com/financeflow/backend/internal/domain/entity"
	domainerror "github.com/financeflow/backend/internal/domain/error"
)

// Store holds the rows shared by the in-memory repositories.
type Store struct {
	mu           sync.Mutex
	categories   map[uuid.UUID]*entity.Category
	transactions map[uuid.UUID]*entity.Transaction
	budgets      map[uuid.UUID]*entity.Budget
	goals        map[uuid.UUID]*entity.Goal
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		categories:   make(map[uuid.UUID]*entity.Category),
		transactions: make(map[uuid.UUID]*entity.Transaction),
		budgets:      make(map[uuid.UUID]*entity.Budget),
		goals:        make(map[uuid.UUID]*entity.Goal),
	}
}

// Categories returns the category repository backed by s.
func (s *Store) Categories() *CategoryRepository { return &CategoryRepository{s: s} }

// Transactions returns the transaction repository backed by s.
func (s *Store) Transactions() *TransactionRepository { return &TransactionRepository{s: s} }

// Budgets returns the budget repository backed by s.
func (s *Store) Budgets() *BudgetRepository { return &BudgetRepository{s: s} }

// Goals returns the goal repository backed by s.
func (s *Store) Goals() *GoalRepository { return &GoalRepository{s: s} }

// UserData returns the user data repository backed by s.
func (s *Store) UserData() *UserDataRepository { return &UserDataRepository{s: s} }

// CategoryRepository is an in-memory adapter.CategoryRepository.
type CategoryRepository struct{ s *Store }

func (r *CategoryRepository) Create(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[category.ID] = category
	return nil
}

func (r *CategoryRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, domainerror.ErrCategoryNotFound
	}
	return c, nil
}

func (r *CategoryRepository) FindByUser(_ context.Context, userID uuid.UUID, categoryType *entity.CategoryType) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*entity.Category{}
	for _, c := range r.s.categories {
		if c.UserID == userID && (categoryType == nil || c.Type == *categoryType) {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *CategoryRepository) FindByIDs(_ context.Context, userID uuid.UUID, ids []uuid.UUID) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*entity.Category{}
	for _, id := range ids {
		if c, ok := r.s.categories[id]; ok && c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (r *CategoryRepository) ExistsByNameAndUser(_ context.Context, name string, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.categories {
		if c.UserID == userID && strings.EqualFold(c.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

func (r *CategoryRepository) Update(_ context.Context, category *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[category.ID] = category
	return nil
}

func (r *CategoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.categories, id)
	for _, t := range r.s.transactions {
		if t.CategoryID != nil && *t.CategoryID == id {
			t.CategoryID = nil
		}
	}
	for _, b := range r.s.budgets {
		if b.CategoryID != nil && *b.CategoryID == id {
			b.CategoryID = nil
		}
	}
	for _, g := range r.s.goals {
		if g.CategoryID != nil && *g.CategoryID == id {
			g.CategoryID = nil
		}
	}
	return nil
}

func (r *CategoryRepository) GetTransactionStats(_ context.Context, categoryIDs []uuid.UUID, startDate, endDate time.Time) (map[uuid.UUID]*adapter.CategoryStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := make(map[uuid.UUID]*adapter.CategoryStats)
	for _, id := range categoryIDs {
		stats[id] = &adapter.CategoryStats{PeriodTotal: decimal.Zero}
	}
	for _, t := range r.s.transactions {
		if t.CategoryID == nil || t.Date.Before(startDate) || t.Date.After(endDate) {
			continue
		}
		if st, ok := stats[*t.CategoryID]; ok {
			st.TransactionCount++
			st.PeriodTotal = st.PeriodTotal.Add(t.Amount)
		}
	}
	return stats, nil
}

// TransactionRepository is an in-memory adapter.TransactionRepository.
type TransactionRepository struct{ s *Store }

func (r *TransactionRepository) Create(_ context.Context, transaction *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[transaction.ID] = transaction
	return nil
}

func (r *TransactionRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.transactions[id]
	if !ok {
		return nil, domainerror.ErrTransactionNotFound
	}
	return t, nil
}

func (r *TransactionRepository) FindByIDWithCategory(ctx context.Context, id uuid.UUID) (*entity.TransactionWithCategory, error) {
	t, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.withCategory(t), nil
}

func (r *TransactionRepository) FindByFilter(_ context.Context, filter adapter.TransactionFilter, pagination adapter.TransactionPagination) (*adapter.TransactionListResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.filter(filter)
	total := len(all)

	start := (pagination.Page - 1) * pagination.Limit
	if start > total {
		start = total
	}
	end := start + pagination.Limit
	if end > total {
		end = total
	}

	totalPages := 0
	if pagination.Limit > 0 {
		totalPages = (total + pagination.Limit - 1) / pagination.Limit
	}

	return &adapter.TransactionListResult{
		Transactions: all[start:end],
		Total:        int64(total),
		Page:         pagination.Page,
		Limit:        pagination.Limit,
		TotalPages:   totalPages,
	}, nil
}

func (r *TransactionRepository) FindAllByFilter(_ context.Context, filter adapter.TransactionFilter) ([]*entity.TransactionWithCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.filter(filter), nil
}

func (r *TransactionRepository) FindRecent(_ context.Context, userID uuid.UUID, limit int) ([]*entity.TransactionWithCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.filter(adapter.TransactionFilter{UserID: userID})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *TransactionRepository) GetTotals(_ context.Context, filter adapter.TransactionFilter) (*adapter.TransactionTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := &adapter.TransactionTotals{IncomeTotal: decimal.Zero, ExpenseTotal: decimal.Zero}
	for _, t := range r.filter(filter) {
		if t.Transaction.Type == entity.TransactionTypeIncome {
			totals.IncomeTotal = totals.IncomeTotal.Add(t.Transaction.Amount)
		} else {
			totals.ExpenseTotal = totals.ExpenseTotal.Add(t.Transaction.Amount)
		}
	}
	totals.NetTotal = totals.IncomeTotal.Sub(totals.ExpenseTotal)
	return totals, nil
}

func (r *TransactionRepository) GetDataRange(_ context.Context, userID uuid.UUID) (*adapter.TransactionDataRange, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := &adapter.TransactionDataRange{}
	for _, t := range r.s.transactions {
		if t.UserID != userID {
			continue
		}
		d := t.Date
		if result.OldestDate == nil || d.Before(*result.OldestDate) {
			result.OldestDate = &d
		}
		if result.NewestDate == nil || d.After(*result.NewestDate) {
			result.NewestDate = &d
		}
		result.TotalCount++
	}
	result.HasTransactions = result.TotalCount > 0
	return result, nil
}

func (r *TransactionRepository) Update(_ context.Context, transaction *entity.Transaction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.transactions[transaction.ID] = transaction
	return nil
}

func (r *TransactionRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.transactions, id)
	return nil
}

func (r *TransactionRepository) BulkDelete(_ context.Context, ids []uuid.UUID, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var count int64
	for _, id := range ids {
		if t, ok := r.s.transactions[id]; ok && t.UserID == userID {
			delete(r.s.transactions, id)
			count++
		}
	}
	return count, nil
}

func (r *TransactionRepository) ExistsAllByIDsAndUser(_ context.Context, ids []uuid.UUID, userID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, id := range ids {
		t, ok := r.s.transactions[id]
		if !ok || t.UserID != userID {
			return false, nil
		}
	}
	return true, nil
}

func (r *TransactionRepository) SumExpenses(_ context.Context, userID uuid.UUID, categoryID *uuid.UUID, startDate, endDate time.Time) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sum := decimal.Zero
	for _, t := range r.s.transactions {
		if t.UserID != userID || t.Type != entity.TransactionTypeExpense {
			continue
		}
		if categoryID != nil && (t.CategoryID == nil || *t.CategoryID != *categoryID) {
			continue
		}
		if t.Date.Before(startDate) || t.Date.After(endDate) {
			continue
		}
		sum = sum.Add(t.Amount)
	}
	return sum, nil
}

// filter must be called with the lock held.
func (r *TransactionRepository) filter(filter adapter.TransactionFilter) []*entity.TransactionWithCategory {
	result := []*entity.TransactionWithCategory{}
	search := strings.ToLower(filter.Search)
	for _, t := range r.s.transactions {
		if t.UserID != filter.UserID {
			continue
		}
		if filter.StartDate != nil && t.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.Date.After(*filter.EndDate) {
			continue
		}
		if filter.Type != nil && t.Type != *filter.Type {
			continue
		}
		if len(filter.CategoryIDs) > 0 && !containsID(filter.CategoryIDs, t.CategoryID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(t.Title), search) &&
			!strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		result = append(result, r.withCategory(t))
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i].Transaction, result[j].Transaction
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return result
}

func (r *TransactionRepository) withCategory(t *entity.Transaction) *entity.TransactionWithCategory {
	result := &entity.TransactionWithCategory{Transaction: t}
	if t.CategoryID != nil {
		result.Category = r.s.categories[*t.CategoryID]
	}
	return result
}

func containsID(ids []uuid.UUID, id *uuid.UUID) bool {
	if id == nil {
		return false
	}
	for _, candidate := range ids {
		if candidate == *id {
			return true
		}
	}
	return false
}

// BudgetRepository is an in-memory adapter.BudgetRepository.
type BudgetRepository struct{ s *Store }

func (r *BudgetRepository) Create(_ context.Context, budget *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.budgets[budget.ID] = budget
	return nil
}

func (r *BudgetRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.budgets[id]
	if !ok {
		return nil, domainerror.ErrBudgetNotFound
	}
	return b, nil
}

func (r *BudgetRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.BudgetWithCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*entity.BudgetWithCategory{}
	for _, b := range r.s.budgets {
		if b.UserID != userID {
			continue
		}
		item := &entity.BudgetWithCategory{Budget: b}
		if b.CategoryID != nil {
			item.Category = r.s.categories[*b.CategoryID]
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Budget.CreatedAt.After(result[j].Budget.CreatedAt) })
	return result, nil
}

func (r *BudgetRepository) FindCovering(_ context.Context, userID uuid.UUID, categoryID *uuid.UUID, date time.Time) ([]*entity.Budget, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*entity.Budget{}
	for _, b := range r.s.budgets {
		if b.UserID == userID && b.Covers(categoryID, date) {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *BudgetRepository) Update(_ context.Context, budget *entity.Budget) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.budgets[budget.ID] = budget
	return nil
}

func (r *BudgetRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.budgets, id)
	return nil
}

// GoalRepository is an in-memory adapter.GoalRepository.
type GoalRepository struct{ s *Store }

func (r *GoalRepository) Create(_ context.Context, goal *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.goals[goal.ID] = goal
	return nil
}

func (r *GoalRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Goal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	g, ok := r.s.goals[id]
	if !ok {
		return nil, domainerror.ErrGoalNotFound
	}
	return g, nil
}

func (r *GoalRepository) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.GoalWithCategory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := []*entity.GoalWithCategory{}
	for _, g := range r.s.goals {
		if g.UserID != userID {
			continue
		}
		item := &entity.GoalWithCategory{Goal: g}
		if g.CategoryID != nil {
			item.Category = r.s.categories[*g.CategoryID]
		}
		result = append(result, item)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Goal.Deadline.Before(result[j].Goal.Deadline) })
	return result, nil
}

func (r *GoalRepository) Update(_ context.Context, goal *entity.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.goals[goal.ID] = goal
	return nil
}

func (r *GoalRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.goals, id)
	return nil
}

// UserDataRepository is an in-memory adapter.UserDataRepository.
type UserDataRepository struct{ s *Store }

func (r *UserDataRepository) DeleteAllByUser(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, t := range r.s.transactions {
		if t.UserID == userID {
			delete(r.s.transactions, id)
		}
	}
	for id, b := range r.s.budgets {
		if b.UserID == userID {
			delete(r.s.budgets, id)
		}
	}
	for id, g := range r.s.goals {
		if g.UserID == userID {
			delete(r.s.goals, id)
		}
	}
	for id, c := range r.s.categories {
		if c.UserID == userID {
			delete(r.s.categories, id)
		}
	}
	return nil
}

// Cache is an in-memory adapter.AnalyticsCache storing JSON payloads.
type Cache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	Invalidated []uuid.UUID
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

func (c *Cache) Get(_ context.Context, userID uuid.UUID, name string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.entries[userID.String()+":"+name]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (c *Cache) Set(_ context.Context, userID uuid.UUID, name string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[userID.String()+":"+name] = data
	return nil
}

func (c *Cache) Invalidate(_ context.Context, userID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	prefix := userID.String() + ":"
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.Invalidated = append(c.Invalidated, userID)
	return nil
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// EmailService records queued budget alerts.
type EmailService struct {
	mu     sync.Mutex
	Alerts []adapter.QueueBudgetAlertInput
	Err    error
}

func (e *EmailService) QueueBudgetAlertEmail(_ context.Context, input adapter.QueueBudgetAlertInput) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.Err != nil {
		return e.Err
	}
	e.Alerts = append(e.Alerts, input)
	return nil
}

// Clock is a fixed adapter.Clock.
type Clock struct {
	Time time.Time
}

func (c Clock) Now() time.Time { return c.Time }

var (
	_ adapter.CategoryRepository    = (*CategoryRepository)(nil)
	_ adapter.TransactionRepository = (*TransactionRepository)(nil)
	_ adapter.BudgetRepository      = (*BudgetRepository)(nil)
	_ adapter.GoalRepository        = (*GoalRepository)(nil)
	_ adapter.UserDataRepository    = (*UserDataRepository)(nil)
	_ adapter.AnalyticsCache        = (*Cache)(nil)
	_ adapter.EmailService          = (*EmailService)(nil)
	_ adapter.Clock                 = Clock{}
)
