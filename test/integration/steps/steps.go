package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/cucumber/godog"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/financeflow/backend/internal/integration/persistence/model"
	"github.com/financeflow/backend/test/integration/mock"
)

const dateLayout = "2006-01-02"

func (t *testContext) theAPIServerIsRunning() error {
	resp, err := t.client.Get(t.server.URL + "/health")
	if err != nil {
		return fmt.Errorf("server is not reachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return nil
}

func (t *testContext) theCurrentDateIs(date string) error {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return err
	}
	// noon keeps the date stable for the length of a scenario
	t.clock.SetCurrentTime(parsed.Add(12 * time.Hour))
	return nil
}

// userIDFor derives a stable user id from an email, the way the identity
// platform keeps one subject per account.
func userIDFor(email string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email))
}

func signToken(userID uuid.UUID, email string, expiresAt time.Time) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID.String(),
		"email": email,
		"iat":   jwt.NewNumericDate(now),
		"nbf":   jwt.NewNumericDate(now.Add(-time.Minute)),
		"exp":   jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(testJWTSecret))
}

func (t *testContext) iAmAuthenticatedAs(email string) error {
	t.userID = userIDFor(email)
	t.userEmail = email

	token, err := signToken(t.userID, email, time.Now().Add(15*time.Minute))
	if err != nil {
		return fmt.Errorf("failed to sign access token: %w", err)
	}
	t.accessToken = token
	return nil
}

func (t *testContext) iAmNotAuthenticated() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) iUseAnExpiredTokenFor(email string) error {
	token, err := signToken(userIDFor(email), email, time.Now().Add(-time.Hour))
	if err != nil {
		return err
	}
	t.accessToken = token
	return nil
}

func (t *testContext) aCategoryExistsWithNameAndType(name, categoryType string) error {
	now := time.Now().UTC()
	categoryModel := &model.CategoryModel{
		ID:        uuid.New(),
		UserID:    t.userID,
		Name:      name,
		Color:     "#6366F1",
		Icon:      "tag",
		Type:      categoryType,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := t.db.DbConn.Create(categoryModel).Error; err != nil {
		return err
	}
	t.categories[name] = categoryModel.ID
	return nil
}

func (t *testContext) categoryID(name string) (*uuid.UUID, error) {
	if name == "" {
		return nil, nil
	}
	id, ok := t.categories[name]
	if !ok {
		return nil, fmt.Errorf("category '%s' was not created in this scenario", name)
	}
	return &id, nil
}

// theFollowingTransactionsExist inserts rows from a table with the columns
// title, amount, type, date and an optional category.
func (t *testContext) theFollowingTransactionsExist(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return errors.New("transactions table needs a header and at least one row")
	}

	header := table.Rows[0].Cells
	now := time.Now().UTC()
	for _, row := range table.Rows[1:] {
		values := map[string]string{}
		for i, cell := range row.Cells {
			if i < len(header) {
				values[header[i].Value] = cell.Value
			}
		}

		amount, err := decimal.NewFromString(values["amount"])
		if err != nil {
			return fmt.Errorf("invalid amount: %w", err)
		}
		date, err := time.Parse(dateLayout, values["date"])
		if err != nil {
			return fmt.Errorf("invalid date: %w", err)
		}
		categoryID, err := t.categoryID(values["category"])
		if err != nil {
			return err
		}

		txn := &model.TransactionModel{
			ID:         uuid.New(),
			UserID:     t.userID,
			CategoryID: categoryID,
			Title:      values["title"],
			Amount:     amount,
			Type:       values["type"],
			Date:       date,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := t.db.DbConn.Create(txn).Error; err != nil {
			return err
		}
		t.createdIDs = append(t.createdIDs, txn.ID)
		t.lastID = txn.ID
	}
	return nil
}

func (t *testContext) aBudgetExistsForCategory(name, amount, category, start, end string) error {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return err
	}
	startDate, err := time.Parse(dateLayout, start)
	if err != nil {
		return err
	}
	endDate, err := time.Parse(dateLayout, end)
	if err != nil {
		return err
	}
	categoryID, err := t.categoryID(category)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	budgetModel := &model.BudgetModel{
		ID:         uuid.New(),
		UserID:     t.userID,
		CategoryID: categoryID,
		Name:       name,
		Amount:     value,
		Period:     "monthly",
		StartDate:  startDate,
		EndDate:    endDate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := t.db.DbConn.Create(budgetModel).Error; err != nil {
		return err
	}
	t.lastID = budgetModel.ID
	t.budgetID = budgetModel.ID
	return nil
}

func (t *testContext) theEmailProviderRejectsTheNextEmail(status int) error {
	next := t.resend.RequestCount(http.MethodPost, "/emails")
	t.resend.SetResponse(next, http.MethodPost, "/emails", status, map[string]any{
		"statusCode": status,
		"name":       "validation_error",
		"message":    "invalid recipient address",
	})
	return nil
}

func (t *testContext) theHeaderContainsTheKeyWith(key, value string) error {
	t.headers[key] = value
	return nil
}

func (t *testContext) iSendARequestTo(method, path string) error {
	return t.executeRequest(method, t.replacePlaceholders(path), nil)
}

func (t *testContext) iSendARequestToWithBody(method, path string, body *godog.DocString) error {
	var payload []byte
	if body != nil && body.Content != "" {
		payload = []byte(t.replacePlaceholders(body.Content))
	}
	return t.executeRequest(method, t.replacePlaceholders(path), payload)
}

func (t *testContext) iSendRequestsToWithBody(count int, method, path string, body *godog.DocString) error {
	for i := 0; i < count; i++ {
		if err := t.iSendARequestToWithBody(method, path, body); err != nil {
			return err
		}
	}
	return nil
}

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{last_id}}", t.lastID.String())
	content = strings.ReplaceAll(content, "{{budget_id}}", t.budgetID.String())
	content = strings.ReplaceAll(content, "{{user_id}}", t.userID.String())
	for name, id := range t.categories {
		content = strings.ReplaceAll(content, "{{category:"+name+"}}", id.String())
	}

	if len(t.createdIDs) > 0 {
		ids := make([]string, len(t.createdIDs))
		for i, id := range t.createdIDs {
			ids[i] = strconv.Quote(id.String())
		}
		content = strings.ReplaceAll(content, "{{created_ids}}", "["+strings.Join(ids, ", ")+"]")
	}

	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, t.server.URL+path, body)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	}
	for key, value := range t.headers {
		req.Header.Set(key, value)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	t.response = &response{status: resp.StatusCode}

	var responseBody map[string]any
	if err := json.Unmarshal(bodyBytes, &responseBody); err != nil {
		t.response.body = string(bodyBytes)
		return nil
	}
	t.response.body = responseBody

	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			t.lastID = id
			t.createdIDs = append(t.createdIDs, id)
			if name, ok := responseBody["name"].(string); ok && strings.HasPrefix(path, "/api/v1/categories") {
				t.categories[name] = id
			}
		}
	}

	return nil
}

func (t *testContext) theEmailWorkerProcessesTheQueue() error {
	t.injector.EmailWorker.ProcessNow(context.Background())
	return nil
}

func (t *testContext) theResponseStatusShouldBe(expectedStatus int) error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if t.response.status != expectedStatus {
		return fmt.Errorf("expected status %d, got %d (body: %v)", expectedStatus, t.response.status, t.response.body)
	}
	return nil
}

func (t *testContext) responseObject() (map[string]any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}
	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}
	return body, nil
}

func (t *testContext) theResponseShouldBeJSON() error {
	_, err := t.responseObject()
	return err
}

func (t *testContext) theResponseShouldContain(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if _, exists := body[field]; !exists {
		return fmt.Errorf("response does not contain field '%s': %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}

	value := getFieldValue(body, field)
	if value == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}

	expectedValue = t.replacePlaceholders(expectedValue)
	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	if getFieldValue(body, field) == nil {
		return fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldHaveItems(field string, count int) error {
	body, err := t.responseObject()
	if err != nil {
		return err
	}
	items, ok := getFieldValue(body, field).([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, body)
	}
	if len(items) != count {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, count, len(items))
	}
	return nil
}

func (t *testContext) modelSlice(table string) (any, error) {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return nil, fmt.Errorf("table '%s' not found in models", table)
	}
	entityType := reflect.TypeOf(entity).Elem()
	entitySlice := reflect.MakeSlice(reflect.SliceOf(entityType), 0, 0)
	entitySlicePtr := reflect.New(entitySlice.Type())
	entitySlicePtr.Elem().Set(entitySlice)
	return entitySlicePtr.Interface(), nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	rows, err := t.modelSlice(table)
	if err != nil {
		return err
	}

	// soft deleted rows are excluded
	if err := t.db.DbConn.Find(rows).Error; err != nil {
		return err
	}

	count := reflect.ValueOf(rows).Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
	}
	return nil
}

func (t *testContext) theDbShouldContainObjectsInWithTheValues(quantity int, table string, content *godog.DocString) error {
	var criteria map[string]any
	if err := json.Unmarshal([]byte(t.replacePlaceholders(content.Content)), &criteria); err != nil {
		return err
	}

	rows, err := t.modelSlice(table)
	if err != nil {
		return err
	}

	query := t.db.DbConn.Unscoped()
	for key, value := range criteria {
		query = query.Where(fmt.Sprintf("%s = ?", key), value)
	}

	if err := query.Find(rows).Error; err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	count := reflect.ValueOf(rows).Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s' with criteria %v, got %d", quantity, table, criteria, count)
	}
	return nil
}

func (t *testContext) theEmailProviderShouldHaveReceived(count int) error {
	got := t.resend.RequestCount(http.MethodPost, "/emails")
	if got != count {
		return fmt.Errorf("expected %d emails sent to the provider, got %d", count, got)
	}
	return nil
}

func (t *testContext) theLastEmailShouldBeSentTo(recipient, subject string) error {
	count := t.resend.RequestCount(http.MethodPost, "/emails")
	if count == 0 {
		return errors.New("no email was sent to the provider")
	}

	headers := t.resend.GetRequestHeaders(http.MethodPost, "/emails", count-1)
	if headers["Authorization"] != "Bearer "+testResendAPIKey {
		return fmt.Errorf("unexpected authorization header %q", headers["Authorization"])
	}

	body := t.resend.GetRequestBody(http.MethodPost, "/emails", count-1)
	to := fmt.Sprintf("%v", getFieldValue(body, "to.0"))
	if to != recipient {
		return fmt.Errorf("expected email to %s, got %s", recipient, to)
	}
	if got := fmt.Sprintf("%v", body["subject"]); !strings.Contains(got, subject) {
		return fmt.Errorf("expected subject containing %q, got %q", subject, got)
	}
	return nil
}

func (t *testContext) theAnalyticsCacheShouldHoldEntries(count int) error {
	got, err := mock.CountKeys(t.redis, "analytics:*:v[0-9]*")
	if err != nil {
		return err
	}
	if got != count {
		return fmt.Errorf("expected %d cached analytics entries, got %d", count, got)
	}
	return nil
}

func getFieldValue(object any, dotSeparatedField string) any {
	if object == nil {
		return nil
	}

	var objectMap map[string]any
	switch v := object.(type) {
	case map[string]any:
		objectMap = v
	default:
		objectJSON, _ := json.Marshal(object)
		if err := json.Unmarshal(objectJSON, &objectMap); err != nil {
			return nil
		}
	}

	fields := strings.Split(dotSeparatedField, ".")
	var field any = objectMap

	for _, currentField := range fields {
		if field == nil {
			return nil
		}

		if i, err := strconv.Atoi(currentField); err == nil {
			if arr, ok := field.([]any); ok && i < len(arr) {
				field = arr[i]
			} else {
				return nil
			}
		} else {
			if m, ok := field.(map[string]any); ok {
				field = m[currentField]
			} else {
				return nil
			}
		}
	}

	return field
}
