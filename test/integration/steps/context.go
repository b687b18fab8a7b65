// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/financeflow/backend/config"
	"github.com/financeflow/backend/internal/infra/db"
	"github.com/financeflow/backend/internal/infra/dependency"
	"github.com/financeflow/backend/test/integration/mock"
)

const (
	testJWTSecret    = "test-jwt-secret-key-for-testing-purposes"
	testResendAPIKey = "re_test_key"
)

// suite holds the resources shared by every scenario.
type suite struct {
	server   *httptest.Server
	injector *dependency.Injector
	db       *mock.Db
	redis    *redis.Client
	clock    *mock.Time
	resend   *mock.ApiMock
}

var shared *suite

// InitializeTestSuite wires the application once against sqlite, miniredis
// and a stub email provider.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)

		_ = os.Setenv("ENV", "test")
		_ = os.Setenv("AUTH_JWT_SECRET", testJWTSecret)
		_ = os.Setenv("AUTH_ISSUER", "")
		_ = os.Setenv("REPORT_RATE_LIMIT", "3")
		_ = os.Setenv("REPORT_RATE_WINDOW", "1m")

		resend := mock.NewApiServer()
		resend.Start()

		cfg := config.Load()
		cfg.Email.ResendAPIKey = testResendAPIKey
		cfg.Email.ResendBaseURL = resend.GetUrl()

		s := &suite{
			db:     mock.NewDb(db.Models()),
			redis:  mock.NewRedis(),
			clock:  mock.NewTime(),
			resend: resend,
		}

		injector, err := dependency.NewInjector(cfg, s.db.DbConn, dependency.Options{
			Redis: s.redis,
			Clock: s.clock,
			DBHealthChecker: func(context.Context) bool {
				return true
			},
		})
		if err != nil {
			panic(fmt.Sprintf("failed to wire application: %v", err))
		}

		s.injector = injector
		s.server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
		shared = s
	})

	ctx.AfterSuite(func() {
		if shared == nil {
			return
		}
		shared.server.Close()
		shared.resend.Close()
	})
}

// testContext holds the state of a single scenario.
type testContext struct {
	*suite
	client      *http.Client
	headers     map[string]string
	accessToken string
	userID      uuid.UUID
	userEmail   string
	response    *response
	categories  map[string]uuid.UUID
	lastID      uuid.UUID
	budgetID    uuid.UUID
	createdIDs  []uuid.UUID
}

type response struct {
	status int
	body   any
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)
	ctx.Given(`^the current date is "([^"]*)"$`, test.theCurrentDateIs)

	// Auth steps
	ctx.Given(`^I am authenticated as "([^"]*)"$`, test.iAmAuthenticatedAs)
	ctx.Given(`^I am not authenticated$`, test.iAmNotAuthenticated)
	ctx.Given(`^I use an expired token for "([^"]*)"$`, test.iUseAnExpiredTokenFor)

	// Data setup steps
	ctx.Given(`^a category exists with name "([^"]*)" and type "([^"]*)"$`, test.aCategoryExistsWithNameAndType)
	ctx.Given(`^the following transactions exist:$`, test.theFollowingTransactionsExist)
	ctx.Given(`^a budget "([^"]*)" of "([^"]*)" exists for category "([^"]*)" from "([^"]*)" to "([^"]*)"$`, test.aBudgetExistsForCategory)
	ctx.Given(`^the email provider rejects the next email with status (\d+)$`, test.theEmailProviderRejectsTheNextEmail)

	// Header steps
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendRequestsToWithBody)
	ctx.When(`^the email worker processes the queue$`, test.theEmailWorkerProcessesTheQueue)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)

	// Side effect assertion steps
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the last email should be sent to "([^"]*)" with subject containing "([^"]*)"$`, test.theLastEmailShouldBeSentTo)
	ctx.Then(`^the analytics cache should hold (\d+) entries$`, test.theAnalyticsCacheShouldHoldEntries)
}

func (t *testContext) before() error {
	if shared == nil {
		return fmt.Errorf("test suite was not initialized")
	}
	t.suite = shared
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.userID = uuid.Nil
	t.userEmail = ""
	t.response = nil
	t.categories = make(map[string]uuid.UUID)
	t.lastID = uuid.Nil
	t.budgetID = uuid.Nil
	t.createdIDs = nil

	t.clock.Reset()
	t.resend.ClearResponses()
	t.resend.SetResponse(-1, http.MethodPost, "/emails", http.StatusOK, map[string]any{"id": "re_mock_id"})
	t.injector.ReportRateLimiter.Reset()

	if err := mock.ClearRedis(t.redis); err != nil {
		return err
	}
	return t.db.ClearDB()
}
