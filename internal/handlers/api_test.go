package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"budgetbook/internal/config"
	"budgetbook/internal/models"
	"budgetbook/internal/query"
	"budgetbook/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// apiEnvelope mirrors the response envelope for decoding in tests.
type apiEnvelope struct {
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
	Error      string             `json:"error"`
}

// APITestSuite exercises the HTTP API end to end against an in-memory
// database.
type APITestSuite struct {
	suite.Suite
	db     *storage.DB
	server *httptest.Server
}

func (suite *APITestSuite) SetupTest() {
	db, err := storage.NewDB(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.db = db

	cfg := &config.Config{
		JWTSecret:     "test_secret",
		JWTExpiration: time.Hour,
	}
	suite.server = httptest.NewServer(NewHandlers(db, cfg).Router())
}

func (suite *APITestSuite) TearDownTest() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.db != nil {
		suite.db.Close()
	}
}

// request sends a JSON request and decodes the envelope. An empty token
// leaves the request unauthenticated.
func (suite *APITestSuite) request(method, path, token string, body any) (*http.Response, apiEnvelope) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, suite.server.URL+path, reader)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := suite.server.Client().Do(req)
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	var env apiEnvelope
	if resp.Header.Get("Content-Type") == "application/json" {
		require.NoError(suite.T(), json.NewDecoder(resp.Body).Decode(&env))
	}
	return resp, env
}

// signUp registers a user and logs in, returning the session token.
func (suite *APITestSuite) signUp(name, email, password string) string {
	resp, env := suite.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	require.Empty(suite.T(), env.Error)

	resp, env = suite.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": email, "password": password,
	})
	require.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	require.Empty(suite.T(), env.Error)

	var login struct {
		Token string `json:"token"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &login))
	require.NotEmpty(suite.T(), login.Token)
	return login.Token
}

func (suite *APITestSuite) TestRegister() {
	resp, env := suite.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "hunter2",
	})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Empty(suite.T(), env.Error)

	var user models.User
	require.NoError(suite.T(), json.Unmarshal(env.Data, &user))
	assert.Equal(suite.T(), "ada@example.com", user.Email)
	assert.NotEmpty(suite.T(), user.ID)

	// The password hash never leaves the server.
	assert.NotContains(suite.T(), string(env.Data), "hunter2")

	stored, err := suite.db.GetUserByEmail("ada@example.com")
	require.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), "hunter2", stored.PasswordHash)
}

func (suite *APITestSuite) TestRegisterDuplicateEmail() {
	suite.signUp("Ada", "ada@example.com", "hunter2")

	resp, env := suite.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Ada Again", "email": "ada@example.com", "password": "other",
	})
	// Business failures arrive as an error envelope with HTTP 200.
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "Email already exist", env.Error)
}

func (suite *APITestSuite) TestRegisterMissingFields() {
	resp, env := suite.request(http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "ada@example.com",
	})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "Name, email and password are required", env.Error)
}

func (suite *APITestSuite) TestLoginWrongPassword() {
	suite.signUp("Ada", "ada@example.com", "hunter2")

	resp, env := suite.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "Email or password is incorrect", env.Error)

	resp, env = suite.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "hunter2",
	})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "Email or password is incorrect", env.Error)
}

func (suite *APITestSuite) TestLoginSetsCookie() {
	suite.signUp("Ada", "ada@example.com", "hunter2")

	payload, _ := json.Marshal(map[string]string{"email": "ada@example.com", "password": "hunter2"})
	resp, err := suite.server.Client().Post(
		suite.server.URL+"/api/auth/login", "application/json", bytes.NewReader(payload))
	require.NoError(suite.T(), err)
	defer resp.Body.Close()

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == "auth_token" {
			found = true
			assert.True(suite.T(), c.HttpOnly)
			assert.NotEmpty(suite.T(), c.Value)
		}
	}
	assert.True(suite.T(), found, "login must set the session cookie")
}

func (suite *APITestSuite) TestGoogleLoginCreatesUser() {
	resp, env := suite.request(http.MethodPost, "/api/auth/google", "", map[string]string{
		"email": "grace@example.com", "name": "Grace",
	})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	require.Empty(suite.T(), env.Error)

	var login struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}
	require.NoError(suite.T(), json.Unmarshal(env.Data, &login))
	assert.NotEmpty(suite.T(), login.Token)
	assert.Equal(suite.T(), "Grace", login.User.Name)

	// A second login reuses the same row.
	_, env = suite.request(http.MethodPost, "/api/auth/google", "", map[string]string{
		"email": "grace@example.com",
	})
	require.Empty(suite.T(), env.Error)
	require.NoError(suite.T(), json.Unmarshal(env.Data, &login))

	_, total, err := suite.db.ListUsers(query.ListQuery{Page: 1, Limit: 10})
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, total)
}

func (suite *APITestSuite) TestAccountsScopedToSession() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")
	alan := suite.signUp("Alan", "alan@example.com", "enigma")

	resp, env := suite.request(http.MethodPost, "/api/accounts", ada, map[string]any{
		"name": "Checking", "type": "checking", "balance": 100.0,
	})
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	require.Empty(suite.T(), env.Error)

	var account models.Account
	require.NoError(suite.T(), json.Unmarshal(env.Data, &account))
	assert.NotEmpty(suite.T(), account.ID)

	_, env = suite.request(http.MethodGet, "/api/accounts", ada, nil)
	var mine []models.Account
	require.NoError(suite.T(), json.Unmarshal(env.Data, &mine))
	assert.Len(suite.T(), mine, 1)

	_, env = suite.request(http.MethodGet, "/api/accounts", alan, nil)
	var theirs []models.Account
	if len(env.Data) > 0 {
		require.NoError(suite.T(), json.Unmarshal(env.Data, &theirs))
	}
	assert.Empty(suite.T(), theirs, "another session must not see these accounts")

	// No token at all behaves the same way.
	resp, env = suite.request(http.MethodGet, "/api/accounts", "", nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	var anon []models.Account
	if len(env.Data) > 0 {
		require.NoError(suite.T(), json.Unmarshal(env.Data, &anon))
	}
	assert.Empty(suite.T(), anon)
}

func (suite *APITestSuite) TestAccountPartialUpdate() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	_, env := suite.request(http.MethodPost, "/api/accounts", ada, map[string]any{
		"name": "Checking", "type": "checking", "balance": 100.0,
	})
	var account models.Account
	require.NoError(suite.T(), json.Unmarshal(env.Data, &account))

	// Only the balance changes; the other fields keep their values.
	_, env = suite.request(http.MethodPatch, "/api/accounts/"+account.ID, ada, map[string]any{
		"balance": 250.0,
	})
	require.Empty(suite.T(), env.Error)

	var updated models.Account
	require.NoError(suite.T(), json.Unmarshal(env.Data, &updated))
	assert.Equal(suite.T(), "Checking", updated.Name)
	assert.Equal(suite.T(), "checking", updated.Type)
	assert.Equal(suite.T(), 250.0, updated.Balance)
}

func (suite *APITestSuite) TestAccountNotFound() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	resp, env := suite.request(http.MethodGet, "/api/accounts/no-such-id", ada, nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "Account not found", env.Error)
}

func (suite *APITestSuite) TestIncomeCategoryEnrichment() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	_, env := suite.request(http.MethodPost, "/api/categories", ada, map[string]string{
		"name": "Salary", "type": "income",
	})
	require.Empty(suite.T(), env.Error)
	var cat models.Category
	require.NoError(suite.T(), json.Unmarshal(env.Data, &cat))

	_, env = suite.request(http.MethodPost, "/api/incomes", ada, map[string]any{
		"title": "March salary", "amount": 3000.0, "date": "2024-03-01T00:00:00Z",
		"categoryId": cat.ID,
	})
	require.Empty(suite.T(), env.Error)

	_, env = suite.request(http.MethodGet, "/api/incomes", ada, nil)
	require.Empty(suite.T(), env.Error)
	var incomes []models.Entry
	require.NoError(suite.T(), json.Unmarshal(env.Data, &incomes))
	require.Len(suite.T(), incomes, 1)
	assert.Equal(suite.T(), "Salary", incomes[0].CategoryName)
}

func (suite *APITestSuite) TestExpenseValidation() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	_, env := suite.request(http.MethodPost, "/api/expenses", ada, map[string]any{
		"amount": 10.0, "date": "2024-03-01T00:00:00Z",
	})
	assert.Equal(suite.T(), "Title is required", env.Error)

	_, env = suite.request(http.MethodPost, "/api/expenses", ada, map[string]any{
		"title": "Lunch", "amount": 10.0,
	})
	assert.Equal(suite.T(), "Date is required", env.Error)
}

func (suite *APITestSuite) TestTransactionsFeed() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	for i := 0; i < 7; i++ {
		_, env := suite.request(http.MethodPost, "/api/incomes", ada, map[string]any{
			"title": fmt.Sprintf("Income %d", i), "amount": 100.0,
			"date": fmt.Sprintf("2024-03-%02dT00:00:00Z", i*2+1),
		})
		require.Empty(suite.T(), env.Error)
	}
	for i := 0; i < 6; i++ {
		_, env := suite.request(http.MethodPost, "/api/expenses", ada, map[string]any{
			"title": fmt.Sprintf("Expense %d", i), "amount": 10.0,
			"date": fmt.Sprintf("2024-03-%02dT00:00:00Z", i*2+2),
		})
		require.Empty(suite.T(), env.Error)
	}

	resp, env := suite.request(http.MethodGet, "/api/transactions", ada, nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	require.Empty(suite.T(), env.Error)

	var feed []models.Transaction
	require.NoError(suite.T(), json.Unmarshal(env.Data, &feed))
	require.Len(suite.T(), feed, storage.TransactionFeedLimit)

	assert.Equal(suite.T(), "income", feed[0].Type)
	assert.Equal(suite.T(), "expense", feed[1].Type)
	for i := 1; i < len(feed); i++ {
		assert.False(suite.T(), feed[i].Date.Before(feed[i-1].Date))
	}
}

func (suite *APITestSuite) TestUsersListIsPaginated() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	for i := 0; i < 14; i++ {
		_, env := suite.request(http.MethodPost, "/api/users", ada, map[string]string{
			"name":     fmt.Sprintf("User %02d", i),
			"email":    fmt.Sprintf("user%02d@example.com", i),
			"password": "pw",
		})
		require.Empty(suite.T(), env.Error)
	}

	// 14 created plus the registered caller.
	resp, env := suite.request(http.MethodGet, "/api/users?page=2&limit=10", ada, nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	require.Empty(suite.T(), env.Error)
	require.NotNil(suite.T(), env.Pagination)
	assert.Equal(suite.T(), 2, env.Pagination.Page)
	assert.Equal(suite.T(), 15, env.Pagination.Total)
	assert.Equal(suite.T(), 2, env.Pagination.TotalPage)

	var users []models.User
	require.NoError(suite.T(), json.Unmarshal(env.Data, &users))
	assert.Len(suite.T(), users, 5)
}

func (suite *APITestSuite) TestDeleteUserReturnsDeletedRow() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	_, env := suite.request(http.MethodPost, "/api/users", ada, map[string]string{
		"name": "Temp", "email": "temp@example.com", "password": "pw",
	})
	require.Empty(suite.T(), env.Error)
	var created models.User
	require.NoError(suite.T(), json.Unmarshal(env.Data, &created))

	_, env = suite.request(http.MethodDelete, "/api/users/"+created.ID, ada, nil)
	require.Empty(suite.T(), env.Error)
	var deleted models.User
	require.NoError(suite.T(), json.Unmarshal(env.Data, &deleted))
	assert.Equal(suite.T(), created.ID, deleted.ID)

	_, env = suite.request(http.MethodGet, "/api/users/"+created.ID, ada, nil)
	assert.Equal(suite.T(), "User not found", env.Error)
}

func (suite *APITestSuite) TestRolesDuplicateCode() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	_, env := suite.request(http.MethodPost, "/api/roles", ada, map[string]string{
		"name": "Second Admin", "code": "admin",
	})
	assert.Equal(suite.T(), "Code already exist", env.Error)
}

func (suite *APITestSuite) TestCategoryTypeFilter() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	for _, c := range []map[string]string{
		{"name": "Salary", "type": "income"},
		{"name": "Rent", "type": "expense"},
		{"name": "Misc", "type": "general"},
	} {
		_, env := suite.request(http.MethodPost, "/api/categories", ada, c)
		require.Empty(suite.T(), env.Error)
	}

	_, env := suite.request(http.MethodGet, "/api/categories?type=expense", ada, nil)
	require.Empty(suite.T(), env.Error)
	var cats []models.Category
	require.NoError(suite.T(), json.Unmarshal(env.Data, &cats))
	assert.Len(suite.T(), cats, 2, "general categories are included with the requested type")
}

func (suite *APITestSuite) TestExpensesChart() {
	ada := suite.signUp("Ada", "ada@example.com", "hunter2")

	// No data yet, so the endpoint answers with the error envelope.
	resp, env := suite.request(http.MethodGet, "/api/reports/expenses-chart", ada, nil)
	assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	assert.Equal(suite.T(), "No expense data for the requested period", env.Error)

	_, env = suite.request(http.MethodPost, "/api/expenses", ada, map[string]any{
		"title": "Groceries", "amount": 42.0, "date": "2024-03-01T00:00:00Z",
	})
	require.Empty(suite.T(), env.Error)

	req, err := http.NewRequest(http.MethodGet, suite.server.URL+"/api/reports/expenses-chart", nil)
	require.NoError(suite.T(), err)
	req.Header.Set("Authorization", "Bearer "+ada)

	chartResp, err := suite.server.Client().Do(req)
	require.NoError(suite.T(), err)
	defer chartResp.Body.Close()

	assert.Equal(suite.T(), http.StatusOK, chartResp.StatusCode)
	assert.Equal(suite.T(), "image/png", chartResp.Header.Get("Content-Type"))
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
