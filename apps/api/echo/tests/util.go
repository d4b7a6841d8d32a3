package tests

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/academia/apps/api/echo"
	"github.com/trezcool/academia/core"
	"github.com/trezcool/academia/core/currency"
	"github.com/trezcool/academia/core/enrollment"
	"github.com/trezcool/academia/core/income"
	"github.com/trezcool/academia/core/payout"
	"github.com/trezcool/academia/core/plan"
	appfs "github.com/trezcool/academia/fs"
	emailsvc "github.com/trezcool/academia/services/email"
	logsvc "github.com/trezcool/academia/services/logger"
	inmemdb "github.com/trezcool/academia/storage/inmem"
)

type testApp struct {
	*Server
	mailSvc *emailsvc.ConsoleServiceMock
}

// setup serves the API over a seeded in-memory store.
func setup(t *testing.T) testApp {
	conf := core.NewTestConfig()

	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	logger.Enable(false)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	core.ParseEmailTemplates(appfs.FS, appfs.EmailTemplatesDir, conf.FrontendBaseURL, true, logger)

	// set up DB & services
	db := inmemdb.Open().Seed()
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	currencySvc := currency.NewService(inmemdb.NewCurrencyRepository(db), conf)
	planSvc := plan.NewService(inmemdb.NewPlanRepository(db))

	// set up server
	server := NewServer(ServerDeps{
		Conf:          conf,
		Logger:        logger,
		Validate:      validate,
		Translator:    translator,
		CurrencySvc:   currencySvc,
		PlanSvc:       planSvc,
		EnrollmentSvc: enrollment.NewService(inmemdb.NewEnrollmentRepository(db), planSvc),
		PayoutSvc: payout.NewService(
			inmemdb.NewPayoutRepository(db),
			inmemdb.NewProfessorRepository(db),
			mailSvc,
			logger,
		),
		IncomeSvc: income.NewService(inmemdb.NewIncomeRepository(db), currencySvc),
	})
	t.Cleanup(func() { _ = server.Close() })

	return testApp{Server: server, mailSvc: mailSvc}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name       string
	method     string
	path       string
	body       []byte
	wantCode   int
	wantData   []byte
	wantFields []string // keys of a field errors response, instead of wantData
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantFields != nil {
		var fields map[string]string
		if err := json.Unmarshal(rec.Body.Bytes(), &fields); err != nil {
			t.Errorf("failed to decode field errors %s: %v", rec.Body.String(), err)
			return
		}
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		assert.ElementsMatch(t, tt.wantFields, keys, "field errors: %v", fields)
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app testApp, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
