package tests

import (
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/academia/core/income"
	"github.com/trezcool/academia/core/payout"
)

func Test_home(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodGet, "/")
	req.Header.Set("X-Request-ID", "req-42")
	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Academia API!", rec.Body.String())
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	req, rec = newRequest(http.MethodGet, "/")
	app.ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func Test_currencyApi_query(t *testing.T) {
	app := setup(t)

	usd := `{"id": 1, "name": "Dólar", "code": "USD", "symbol": "$", "isBase": true}`
	ves := `{"id": 2, "name": "Bolívar", "code": "VES", "symbol": "Bs", "isBase": false}`
	cop := `{"id": 3, "name": "Peso colombiano", "code": "COP", "symbol": "$", "isBase": false}`
	eur := `{"id": 4, "name": "Euro", "code": "EUR", "symbol": "€", "isBase": false}`

	runHTTPTests(t, app, []httpTest{
		{
			name:     "catalog order",
			method:   http.MethodGet,
			path:     "/v1/currencies",
			wantCode: http.StatusOK,
			wantData: []byte("[" + usd + "," + ves + "," + cop + "," + eur + "]"),
		},
		{
			name:     "by code desc",
			method:   http.MethodGet,
			path:     "/v1/currencies?ordering=-code",
			wantCode: http.StatusOK,
			wantData: []byte("[" + ves + "," + usd + "," + eur + "," + cop + "]"),
		},
		{
			name:     "by name, trailing slash",
			method:   http.MethodGet,
			path:     "/v1/currencies/?ordering=name",
			wantCode: http.StatusOK,
			wantData: []byte("[" + ves + "," + usd + "," + eur + "," + cop + "]"),
		},
	})
}

func Test_enrollmentApi_quote(t *testing.T) {
	app := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "plan couple",
			method:   http.MethodPost,
			path:     "/v1/enrollments/quote",
			body:     []byte(`{"studentCount": 2, "planId": 1}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"studentCount": 2, "pricePerStudent": 35, "enrollmentType": "couple", "totalAmount": 70}`),
		},
		{
			name:     "inline tier, distinct students",
			method:   http.MethodPost,
			path:     "/v1/enrollments/quote",
			body:     []byte(`{"studentIds": [4, 5, 5, 6], "tier": {"single": 10, "couple": 8, "group": 6}}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"studentCount": 3, "pricePerStudent": 6, "enrollmentType": "group", "totalAmount": 18}`),
		},
		{
			name:     "no students",
			method:   http.MethodPost,
			path:     "/v1/enrollments/quote",
			body:     []byte(`{"studentCount": 0, "planId": 2}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"studentCount": 0, "pricePerStudent": 0, "enrollmentType": "group", "totalAmount": 0}`),
		},
		{
			name:       "neither plan nor tier",
			method:     http.MethodPost,
			path:       "/v1/enrollments/quote",
			body:       []byte(`{"studentCount": 2}`),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"planId", "tier"},
		},
		{
			name:       "negative count",
			method:     http.MethodPost,
			path:       "/v1/enrollments/quote",
			body:       []byte(`{"studentCount": -1, "planId": 1}`),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"studentCount"},
		},
		{
			name:     "unknown plan",
			method:   http.MethodPost,
			path:     "/v1/enrollments/quote",
			body:     []byte(`{"studentCount": 1, "planId": 9}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"planId": "plan not found"}`),
		},
	})
}

func Test_enrollmentApi_createAndUpdate(t *testing.T) {
	app := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "create",
			method:   http.MethodPost,
			path:     "/v1/enrollments",
			body:     []byte(`{"studentIds": [7, 8, 7], "planId": 2, "professorId": 1}`),
			wantCode: http.StatusCreated,
			wantData: []byte(`{"id": 1, "studentIds": [7, 8], "planId": 2, "professorId": 1,
				"pricePerStudent": 48, "enrollmentType": "couple", "totalAmount": 96}`),
		},
		{
			name:     "update",
			method:   http.MethodPut,
			path:     "/v1/enrollments/1",
			body:     []byte(`{"studentIds": [7, 8, 9], "planId": 2, "professorId": 2}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"id": 1, "studentIds": [7, 8, 9], "planId": 2, "professorId": 2,
				"pricePerStudent": 42.5, "enrollmentType": "group", "totalAmount": 127.5}`),
		},
		{
			name:     "update unknown",
			method:   http.MethodPut,
			path:     "/v1/enrollments/5",
			body:     []byte(`{"studentIds": [7], "planId": 2, "professorId": 2}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "enrollment not found"}),
		},
		{
			name:     "update bad id",
			method:   http.MethodPut,
			path:     "/v1/enrollments/abc",
			body:     []byte(`{"studentIds": [7], "planId": 2, "professorId": 2}`),
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "not found"}),
		},
		{
			name:       "no students",
			method:     http.MethodPost,
			path:       "/v1/enrollments",
			body:       []byte(`{"studentIds": [], "planId": 1, "professorId": 1}`),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"studentIds"},
		},
		{
			name:       "missing plan & professor",
			method:     http.MethodPost,
			path:       "/v1/enrollments",
			body:       []byte(`{"studentIds": [7]}`),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"planId", "professorId"},
		},
		{
			name:     "unknown plan",
			method:   http.MethodPost,
			path:     "/v1/enrollments",
			body:     []byte(`{"studentIds": [7], "planId": 9, "professorId": 1}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"planId": "plan not found"}`),
		},
	})
}

func payoutBody(professorID int, discount string) []byte {
	return []byte(`{
		"professorId": ` + strconv.Itoa(professorID) + `,
		"details": [
			{"status": 1, "enrollmentId": 3, "hoursTaught": 2, "payPerHour": 12.5},
			{"status": 2, "description": "  ", "amount": 10},
			{"status": 2, "description": "exams", "amount": 15}
		],
		"discount": ` + discount + `
	}`)
}

func Test_payoutApi_preview(t *testing.T) {
	app := setup(t)

	req, rec := newRequest(http.MethodPost, "/v1/payouts/preview", payoutBody(1, "5"))
	app.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var preview payout.Preview
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &preview))
	// the undescribed bonus is left out of the totals
	assert.True(t, preview.Summary.Subtotal.Equal(decimal.NewFromInt(40)), preview.Summary.Subtotal.String())
	assert.True(t, preview.Summary.Total.Equal(decimal.NewFromInt(35)), preview.Summary.Total.String())
	assert.Equal(t, []int{1}, preview.Dropped)
	require.Len(t, preview.Payload, 2)
	assert.True(t, preview.Payload[0].TotalPerStudent.Decimal.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, "exams", preview.Payload[1].Description.String)
	assert.True(t, preview.Items[0].Total.Equal(decimal.NewFromInt(25)))
}

func Test_payoutApi_create(t *testing.T) {
	app := setup(t)

	t.Run("notifies the professor", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/payouts", payoutBody(1, "5"))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var pay payout.Payout
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pay))
		assert.Equal(t, 1, pay.ID)
		assert.Len(t, pay.Details, 2)
		assert.True(t, pay.Subtotal.Equal(decimal.NewFromInt(40)), pay.Subtotal.String())
		assert.True(t, pay.Total.Equal(decimal.NewFromInt(35)), pay.Total.String())

		sent := app.mailSvc.SentMessages()
		require.Len(t, sent, 1)
		assert.Equal(t, "ana.perez@localhost", sent[0].To[0].Address)
		require.Len(t, sent[0].Attachments, 1)
		assert.Equal(t, "payout-statement.csv", sent[0].Attachments[0].Filename)
		assert.Contains(t, sent[0].TextContent, "Total:    35.00")
	})

	t.Run("professor without email", func(t *testing.T) {
		app.mailSvc.Reset()
		req, rec := newRequest(http.MethodPost, "/v1/payouts", payoutBody(2, "0"))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Empty(t, app.mailSvc.SentMessages())
	})

	t.Run("unknown professor is only logged", func(t *testing.T) {
		app.mailSvc.Reset()
		req, rec := newRequest(http.MethodPost, "/v1/payouts", payoutBody(7, "0"))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		assert.Empty(t, app.mailSvc.SentMessages())
	})

	runHTTPTests(t, app, []httpTest{
		{
			name:       "discount over subtotal",
			method:     http.MethodPost,
			path:       "/v1/payouts",
			body:       payoutBody(1, "50"),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"discount"},
		},
		{
			name:       "nothing payable",
			method:     http.MethodPost,
			path:       "/v1/payouts",
			body:       []byte(`{"professorId": 1, "details": [{"status": 1, "enrollmentId": 3, "hoursTaught": 0, "payPerHour": 10}]}`),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"details"},
		},
		{
			name:       "class without enrollment",
			method:     http.MethodPost,
			path:       "/v1/payouts",
			body:       []byte(`{"professorId": 1, "details": [{"status": 1, "hoursTaught": 1, "payPerHour": 10}]}`),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"details[0].enrollmentId"},
		},
		{
			name:       "missing professor",
			method:     http.MethodPost,
			path:       "/v1/payouts",
			body:       []byte(`{"details": [{"status": 2, "description": "exams", "amount": 15}]}`),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"professorId"},
		},
	})
}

func Test_incomeApi_convert(t *testing.T) {
	app := setup(t)

	runHTTPTests(t, app, []httpTest{
		{
			name:     "by name",
			method:   http.MethodPost,
			path:     "/v1/incomes/convert",
			body:     []byte(`{"amount": 350, "currencyName": "bolivar", "tasa": 35}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"amount": 350, "currencyName": "Bolívar", "exchangeRate": 35, "amountInUSD": 10}`),
		},
		{
			name:     "base currency ignores the rate",
			method:   http.MethodPost,
			path:     "/v1/incomes/convert",
			body:     []byte(`{"amount": 20, "idDivisa": 1, "tasa": 35}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"amount": 20, "currencyName": "Dólar", "exchangeRate": 1, "amountInUSD": 20}`),
		},
		{
			name:     "by code",
			method:   http.MethodPost,
			path:     "/v1/incomes/convert",
			body:     []byte(`{"amount": 20, "currencyName": "usd"}`),
			wantCode: http.StatusOK,
			wantData: []byte(`{"amount": 20, "currencyName": "Dólar", "exchangeRate": 1, "amountInUSD": 20}`),
		},
		{
			name:     "typo",
			method:   http.MethodPost,
			path:     "/v1/incomes/convert",
			body:     []byte(`{"amount": 20, "currencyName": "bolivr", "tasa": 35}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"currencyName": "unknown currency bolivr, did you mean Bolívar?"}`),
		},
		{
			name:     "unknown id",
			method:   http.MethodPost,
			path:     "/v1/incomes/convert",
			body:     []byte(`{"amount": 20, "idDivisa": 9}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"idDivisa": "unknown currency"}`),
		},
		{
			name:       "no currency",
			method:     http.MethodPost,
			path:       "/v1/incomes/convert",
			body:       []byte(`{"amount": 20}`),
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"idDivisa", "currencyName"},
		},
	})
}

func Test_incomeApi_create(t *testing.T) {
	app := setup(t)

	tests := []struct {
		name       string
		body       string
		wantCode   int
		wantUSD    decimal.Decimal
		wantRate   decimal.Decimal
		wantFields []string
	}{
		{
			name:     "bolivares",
			body:     `{"amount": 350, "idDivisa": 2, "tasa": 35, "description": " tuition "}`,
			wantCode: http.StatusCreated,
			wantUSD:  decimal.NewFromInt(10),
			wantRate: decimal.NewFromInt(35),
		},
		{
			name:     "dollars",
			body:     `{"amount": 50, "idDivisa": 1, "tasa": 35, "amountInDollars": 1}`,
			wantCode: http.StatusCreated,
			wantUSD:  decimal.NewFromInt(50),
			wantRate: decimal.NewFromInt(1),
		},
		{
			name:       "no amount",
			body:       `{"amount": 0, "idDivisa": 2}`,
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"amount"},
		},
		{
			name:       "unknown currency",
			body:       `{"amount": 10, "idDivisa": 9}`,
			wantCode:   http.StatusBadRequest,
			wantFields: []string{"idDivisa"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/incomes", []byte(tc.body))
			app.ServeHTTP(rec, req)
			if tc.wantFields != nil {
				checkCodeAndData(t, httpTest{wantCode: tc.wantCode, wantFields: tc.wantFields}, rec)
				return
			}
			require.Equal(t, tc.wantCode, rec.Code, rec.Body.String())

			var inc income.Income
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inc))
			assert.True(t, inc.AmountInDollars.Equal(tc.wantUSD), inc.AmountInDollars.String())
			assert.True(t, inc.Rate.Equal(tc.wantRate), inc.Rate.String())
		})
	}

	t.Run("description is trimmed", func(t *testing.T) {
		req, rec := newRequest(http.MethodPost, "/v1/incomes", []byte(`{"amount": 1, "idDivisa": 1, "description": "  fees  "}`))
		app.ServeHTTP(rec, req)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var inc income.Income
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inc))
		assert.Equal(t, "fees", inc.Description)
	})
}
