// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/pnl-tracker/backend/internal/application/usecase/captracker"
	"github.com/pnl-tracker/backend/internal/application/usecase/deal"
	"github.com/pnl-tracker/backend/internal/application/usecase/expense"
	"github.com/pnl-tracker/backend/internal/application/usecase/settings"
	"github.com/pnl-tracker/backend/internal/application/usecase/summary"
	"github.com/pnl-tracker/backend/internal/infra/server/router"
	"github.com/pnl-tracker/backend/internal/integration/adapters"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/controller"
	"github.com/pnl-tracker/backend/internal/integration/entrypoint/middleware"
	"github.com/pnl-tracker/backend/internal/integration/persistence"
	"github.com/pnl-tracker/backend/internal/integration/persistence/model"
	"github.com/pnl-tracker/backend/test/integration/mock"
)

const testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

var testCategories = []string{"Marketing", "Dues", "Mileage", "Office"}
var testLeadSources = []string{"referral", "zillow", "open_house", "sphere"}
var testAllowedPlans = []string{"pro", "team"}

var tags string

func init() {
	flag.StringVar(&tags, "scenarios", "", "tags to run")
}

func TestFeatures(t *testing.T) {
	flag.Parse()

	suite := godog.TestSuite{
		ScenarioInitializer: func(s *godog.ScenarioContext) {
			InitializeScenario(s)
		},
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			Tags:     tags,
			Strict:   true,
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type testContext struct {
	uri            string
	headers        map[string]string
	client         *http.Client
	response       *response
	db             *mock.Db
	serverPort     int
	accessToken    string
	currentAgentID uuid.UUID
	lastDealID     uuid.UUID
	lastExpenseID  uuid.UUID
}

type response struct {
	status int
	body   any
}

var serverInit sync.Once
var testDB *mock.Db
var testServerPort int
var portInit sync.Once

func initializePort() {
	portInit.Do(func() {
		testServerPort = findAvailablePort()
		_ = os.Setenv("ENV", "test")
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	initializePort()

	test := &testContext{
		uri:        fmt.Sprintf("http://localhost:%d", testServerPort),
		client:     &http.Client{Timeout: 10 * time.Second},
		serverPort: testServerPort,
		db: mock.NewDb(map[string]any{
			"deals":              &model.DealModel{},
			"expenses":           &model.ExpenseModel{},
			"cap_configurations": &model.CapConfigurationModel{},
		}),
	}

	testDB = test.db

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// Auth steps
	ctx.Given(`^an agent on the "([^"]*)" plan is authenticated$`, test.anAgentOnThePlanIsAuthenticated)
	ctx.Given(`^the authorization header is empty$`, test.theAuthorizationHeaderIsEmpty)

	// Seeding steps
	ctx.Given(`^the agent has a yearly cap of "([^"]*)" for (\d+)$`, test.theAgentHasAYearlyCapOfFor)
	ctx.Given(`^the agent closed a deal of "([^"]*)" at "([^"]*)" percent commission on "([^"]*)"$`, test.theAgentClosedADeal)
	ctx.Given(`^the agent recorded a "([^"]*)" expense of "([^"]*)" on "([^"]*)"$`, test.theAgentRecordedAnExpense)
	ctx.Given(`^the agent recorded a "([^"]*)" expense of "([^"]*)" on "([^"]*)" with budget "([^"]*)"$`, test.theAgentRecordedAnExpenseWithBudget)
	ctx.Given(`^the agent set up a recurring "([^"]*)" expense of "([^"]*)" starting "([^"]*)"$`, test.theAgentSetUpARecurringExpense)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response money field "([^"]*)" should equal "([^"]*)"$`, test.theResponseMoneyFieldShouldEqual)
	ctx.Then(`^the response list "([^"]*)" should have (\d+) items$`, test.theResponseListShouldHaveItems)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
}

func findAvailablePort() int {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		panic(err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.accessToken = ""
	t.currentAgentID = uuid.Nil
	t.lastDealID = uuid.Nil
	t.lastExpenseID = uuid.Nil
	t.response = nil

	if err := mock.ClearRedis(mock.NewRedis()); err != nil {
		return err
	}
	return t.db.Reset()
}

func (t *testContext) startServer() {
	serverInit.Do(func() {
		go func() {
			gin.SetMode(gin.TestMode)

			redisClient := mock.NewRedis()

			// Create repositories
			dealRepo := persistence.NewDealRepository(testDB.DbConn)
			expenseRepo := persistence.NewExpenseRepository(testDB.DbConn)
			capConfigRepo := persistence.NewCapConfigRepository(testDB.DbConn)

			// Create adapters/services
			tokenService := adapters.NewTokenService(testJWTSecret)
			periodLocker := adapters.NewRedisPeriodLocker(redisClient)
			summaryCache := adapters.NewRedisSummaryCache(redisClient, time.Minute)

			defaultCap := decimal.NewFromInt(16000)

			// Create cap tracker use cases
			recomputer := captracker.NewRecomputer(dealRepo, capConfigRepo, periodLocker, defaultCap)
			getProgressUseCase := captracker.NewGetProgressUseCase(dealRepo, capConfigRepo, defaultCap)
			updateConfigUseCase := captracker.NewUpdateConfigUseCase(capConfigRepo, recomputer, summaryCache)

			// Create deal use cases
			createDealUseCase := deal.NewCreateDealUseCase(dealRepo, recomputer, summaryCache, testLeadSources)
			getDealUseCase := deal.NewGetDealUseCase(dealRepo)
			listDealsUseCase := deal.NewListDealsUseCase(dealRepo)
			updateDealUseCase := deal.NewUpdateDealUseCase(dealRepo, recomputer, summaryCache, testLeadSources)
			deleteDealUseCase := deal.NewDeleteDealUseCase(dealRepo, recomputer, summaryCache)

			// Create expense use cases
			materializer := expense.NewRecurringMaterializer(expenseRepo)
			createExpenseUseCase := expense.NewCreateExpenseUseCase(expenseRepo, summaryCache, testCategories)
			getExpenseUseCase := expense.NewGetExpenseUseCase(expenseRepo)
			listExpensesUseCase := expense.NewListExpensesUseCase(expenseRepo, materializer)
			updateExpenseUseCase := expense.NewUpdateExpenseUseCase(expenseRepo, summaryCache, testCategories)
			deleteExpenseUseCase := expense.NewDeleteExpenseUseCase(expenseRepo, summaryCache)

			// Create summary and settings use cases
			getSummaryUseCase := summary.NewGetMonthlySummaryUseCase(dealRepo, expenseRepo, materializer, summaryCache)
			getSettingsUseCase := settings.NewGetSettingsUseCase(testCategories, testLeadSources)

			// Create controllers
			healthController := controller.NewHealthController()
			dealController := controller.NewDealController(
				createDealUseCase,
				getDealUseCase,
				listDealsUseCase,
				updateDealUseCase,
				deleteDealUseCase,
			)
			expenseController := controller.NewExpenseController(
				createExpenseUseCase,
				getExpenseUseCase,
				listExpensesUseCase,
				updateExpenseUseCase,
				deleteExpenseUseCase,
			)
			capTrackerController := controller.NewCapTrackerController(
				getProgressUseCase,
				updateConfigUseCase,
			)
			summaryController := controller.NewSummaryController(getSummaryUseCase)
			settingsController := controller.NewSettingsController(getSettingsUseCase)

			// Create middleware
			rateLimiter := middleware.NewRateLimiterWithConfig(1000, time.Minute)
			authMiddleware := middleware.NewAuthMiddleware(tokenService)
			entitlementMiddleware := middleware.NewEntitlementMiddleware(testAllowedPlans)

			r := router.NewRouter(
				healthController,
				dealController,
				expenseController,
				capTrackerController,
				summaryController,
				settingsController,
				authMiddleware,
				entitlementMiddleware,
				rateLimiter,
			)
			engine := r.Setup("test")

			server := &http.Server{
				Addr:    fmt.Sprintf(":%d", testServerPort),
				Handler: engine,
			}
			_ = server.ListenAndServe()
		}()
	})

	// Wait for server to be ready
	for i := 0; i < 50; i++ {
		resp, err := http.Get(t.uri + "/health")
		if err == nil && resp.StatusCode == http.StatusOK {
			resp.Body.Close()
			return
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	t.startServer()
	return nil
}

func (t *testContext) anAgentOnThePlanIsAuthenticated(plan string) error {
	if t.currentAgentID == uuid.Nil {
		t.currentAgentID = uuid.New()
	}

	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"agent_id": t.currentAgentID.String(),
		"email":    "agent@example.com",
		"plan":     plan,
		"exp":      jwt.NewNumericDate(now.Add(15 * time.Minute)),
		"iat":      jwt.NewNumericDate(now),
		"nbf":      jwt.NewNumericDate(now),
		"sub":      t.currentAgentID.String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		return fmt.Errorf("failed to generate access token: %w", err)
	}
	t.accessToken = tokenString
	return nil
}

func (t *testContext) theAuthorizationHeaderIsEmpty() error {
	t.accessToken = ""
	return nil
}

func (t *testContext) theAgentHasAYearlyCapOfFor(totalCap string, year int) error {
	body := fmt.Sprintf(`{"year": %d, "total_cap": "%s"}`, year, totalCap)
	if err := t.executeRequest(http.MethodPut, "/api/v1/cap-tracker/config", []byte(body)); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusOK)
}

func (t *testContext) theAgentClosedADeal(amount, commission, closingDate string) error {
	body := fmt.Sprintf(
		`{"house_address": "123 Seeded Ln", "amount_sold_for": "%s", "commission_percent": "%s", "lead_source": "referral", "closing_date": "%s"}`,
		amount, commission, closingDate,
	)
	if err := t.executeRequest(http.MethodPost, "/api/v1/deals", []byte(body)); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusCreated)
}

func (t *testContext) theAgentRecordedAnExpense(category, amount, date string) error {
	body := fmt.Sprintf(`{"date": "%s", "category": "%s", "amount": "%s"}`, date, category, amount)
	if err := t.executeRequest(http.MethodPost, "/api/v1/expenses", []byte(body)); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusCreated)
}

func (t *testContext) theAgentRecordedAnExpenseWithBudget(category, amount, date, budget string) error {
	body := fmt.Sprintf(`{"date": "%s", "category": "%s", "amount": "%s", "budget": "%s"}`, date, category, amount, budget)
	if err := t.executeRequest(http.MethodPost, "/api/v1/expenses", []byte(body)); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusCreated)
}

func (t *testContext) theAgentSetUpARecurringExpense(category, amount, startDate string) error {
	body := fmt.Sprintf(`{"date": "%s", "category": "%s", "amount": "%s", "recurring": true}`, startDate, category, amount)
	if err := t.executeRequest(http.MethodPost, "/api/v1/expenses", []byte(body)); err != nil {
		return err
	}
	return t.theResponseStatusShouldBe(http.StatusCreated)
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

func (t *testContext) replacePlaceholders(content string) string {
	content = strings.ReplaceAll(content, "{{deal_id}}", t.lastDealID.String())
	content = strings.ReplaceAll(content, "{{expense_id}}", t.lastExpenseID.String())
	content = strings.ReplaceAll(content, "{{agent_id}}", t.currentAgentID.String())
	return content
}

func (t *testContext) executeRequest(method, path string, payload []byte) error {
	var req *http.Request
	var err error

	url := t.uri + path
	if payload != nil {
		req, err = http.NewRequest(method, url, bytes.NewReader(payload))
	} else {
		req, err = http.NewRequest(method, url, nil)
	}
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

	// Capture created IDs for later placeholder substitution. Deals carry a
	// house_address field, expenses a category field.
	if idStr, ok := responseBody["id"].(string); ok {
		if id, err := uuid.Parse(idStr); err == nil {
			if _, isDeal := responseBody["house_address"]; isDeal {
				t.lastDealID = id
			} else if _, isExpense := responseBody["category"]; isExpense {
				t.lastExpenseID = id
			}
		}
	}

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

func (t *testContext) theResponseShouldBeJSON() error {
	if t.response == nil {
		return errors.New("no response received")
	}
	if _, ok := t.response.body.(map[string]any); !ok {
		return fmt.Errorf("response is not JSON: %v", t.response.body)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldBe(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actualValue := fmt.Sprintf("%v", value)
	if actualValue != expectedValue {
		return fmt.Errorf("field '%s' expected '%s', got '%s'", field, expectedValue, actualValue)
	}
	return nil
}

func (t *testContext) theResponseFieldShouldExist(field string) error {
	_, err := t.responseField(field)
	return err
}

// theResponseMoneyFieldShouldEqual compares decimal values numerically so
// assertions stay independent of trailing-zero formatting.
func (t *testContext) theResponseMoneyFieldShouldEqual(field, expectedValue string) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	actual, err := decimal.NewFromString(fmt.Sprintf("%v", value))
	if err != nil {
		return fmt.Errorf("field '%s' is not a decimal: %v", field, value)
	}
	expected, err := decimal.NewFromString(expectedValue)
	if err != nil {
		return fmt.Errorf("invalid expected decimal '%s': %w", expectedValue, err)
	}

	if !actual.Equal(expected) {
		return fmt.Errorf("field '%s' expected %s, got %s", field, expected, actual)
	}
	return nil
}

func (t *testContext) theResponseListShouldHaveItems(field string, expectedCount int) error {
	value, err := t.responseField(field)
	if err != nil {
		return err
	}

	list, ok := value.([]any)
	if !ok {
		return fmt.Errorf("field '%s' is not a list: %v", field, value)
	}
	if len(list) != expectedCount {
		return fmt.Errorf("field '%s' expected %d items, got %d", field, expectedCount, len(list))
	}
	return nil
}

func (t *testContext) responseField(field string) (any, error) {
	if t.response == nil {
		return nil, errors.New("no response received")
	}

	body, ok := t.response.body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is not a JSON object: %v", t.response.body)
	}

	value := getFieldValue(body, field)
	if value == nil {
		return nil, fmt.Errorf("field '%s' not found in response: %v", field, body)
	}
	return value, nil
}

func (t *testContext) theDbShouldContainObjectsInTheTable(quantity int, table string) error {
	entity, ok := t.db.GetModel(table)
	if !ok {
		return fmt.Errorf("table '%s' not found in models", table)
	}

	entityType := reflect.TypeOf(entity).Elem()
	entitySlicePtr := reflect.New(reflect.SliceOf(entityType))

	result := t.db.DbConn.Unscoped().Find(entitySlicePtr.Interface())
	if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	count := entitySlicePtr.Elem().Len()
	if count != quantity {
		return fmt.Errorf("expected %d objects in '%s', got %d", quantity, table, count)
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
