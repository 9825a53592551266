package features

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Jeffail/gabs/v2"
	"github.com/PaesslerAG/jsonpath"
	"github.com/cucumber/godog"
	"github.com/xeipuuv/gojsonschema"

	"github.com/creativepathway/ml-service/cmd/ml_service/server"
	"github.com/creativepathway/ml-service/internal/config"
	"github.com/creativepathway/ml-service/internal/handlers"
	"github.com/creativepathway/ml-service/internal/predictors"
	"github.com/creativepathway/ml-service/internal/validation"
)

// suiteServer is the in-process service, unused when SERVICE_URL points at a deployed one
var suiteServer *httptest.Server

// testContext holds the state of a single scenario
type testContext struct {
	client   *http.Client
	baseURL  string
	response *http.Response
	body     []byte
}

func newTestContext() *testContext {
	baseURL := os.Getenv("SERVICE_URL")
	if baseURL == "" && suiteServer != nil {
		baseURL = suiteServer.URL
	}
	return &testContext{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func startServer() error {
	if os.Getenv("SERVICE_URL") != "" {
		return nil
	}

	serviceConfig, _, err := config.Load([]string{"--env-file", filepath.Join(featuresPath, ".env.test")})
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.DiscardHandler)
	validate, err := validation.NewValidator()
	if err != nil {
		return err
	}
	predictor, err := predictors.NewPredictor(logger, serviceConfig)
	if err != nil {
		return err
	}
	srv, err := server.NewServer(logger, serviceConfig, handlers.New(validate, predictor, serviceConfig), nil)
	if err != nil {
		return err
	}

	suiteServer = httptest.NewServer(srv.Handler())
	return nil
}

func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		if err := startServer(); err != nil {
			panic(err)
		}
	})
	ctx.AfterSuite(func() {
		if suiteServer != nil {
			suiteServer.Close()
		}
	})
}

func InitializeScenario(ctx *godog.ScenarioContext) {
	tc := newTestContext()

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		tc.reset()
		return ctx, nil
	})

	ctx.Step(`^the service is running$`, tc.theServiceIsRunning)

	ctx.Step(`^I send a (GET|POST|DELETE) request to "([^"]*)"$`, tc.iSendRequest)
	ctx.Step(`^I send a POST request to "([^"]*)" with body:$`, tc.iSendPostRequestWithBody)
	ctx.Step(`^I send a POST request to "([^"]*)" with content type "([^"]*)" and body:$`, tc.iSendPostRequestWithContentTypeAndBody)

	ctx.Step(`^the response code should be (\d+)$`, tc.theResponseCodeShouldBe)
	ctx.Step(`^the response header "([^"]*)" should not be empty$`, tc.theResponseHeaderShouldNotBeEmpty)
	ctx.Step(`^the response should match the schema "([^"]*)"$`, tc.theResponseShouldMatchTheSchema)
	ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBeString)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, tc.theResponseFieldShouldBeBool)
	ctx.Step(`^the response field "([^"]*)" should be null$`, tc.theResponseFieldShouldBeNull)
	ctx.Step(`^the response field "([^"]*)" should be (-?\d+(?:\.\d+)?)$`, tc.theResponseFieldShouldBeNumber)
	ctx.Step(`^the JSON path "([^"]*)" should equal "([^"]*)"$`, tc.theJSONPathShouldEqual)
	ctx.Step(`^the prediction scores should be the same as for user "([^"]*)"$`, tc.thePredictionScoresShouldBeTheSameAsForUser)
}

func (tc *testContext) reset() {
	tc.response = nil
	tc.body = nil
}

func (tc *testContext) theServiceIsRunning() error {
	if tc.baseURL == "" {
		tc.baseURL = suiteServer.URL
	}
	resp, err := tc.client.Get(tc.baseURL + "/api/ml/health")
	if err != nil {
		return fmt.Errorf("service is not reachable at %s: %w", tc.baseURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check returned %d", resp.StatusCode)
	}
	return nil
}

func (tc *testContext) do(method string, path string, contentType string, body string) error {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, tc.baseURL+path, reader)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.response = resp
	tc.body, err = io.ReadAll(resp.Body)
	return err
}

func (tc *testContext) iSendRequest(method string, path string) error {
	return tc.do(method, path, "", "")
}

func (tc *testContext) iSendPostRequestWithBody(path string, body *godog.DocString) error {
	return tc.do(http.MethodPost, path, "application/json", body.Content)
}

func (tc *testContext) iSendPostRequestWithContentTypeAndBody(path string, contentType string, body *godog.DocString) error {
	return tc.do(http.MethodPost, path, contentType, body.Content)
}

func (tc *testContext) theResponseCodeShouldBe(code int) error {
	if tc.response == nil {
		return fmt.Errorf("no request was sent")
	}
	if tc.response.StatusCode != code {
		return fmt.Errorf("expected status %d, got %d: %s", code, tc.response.StatusCode, string(tc.body))
	}
	return nil
}

func (tc *testContext) theResponseHeaderShouldNotBeEmpty(header string) error {
	if tc.response.Header.Get(header) == "" {
		return fmt.Errorf("response header %s is empty", header)
	}
	return nil
}

func (tc *testContext) theResponseShouldMatchTheSchema(schemaFile string) error {
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(filepath.Join(featuresPath, "schemas", schemaFile)))
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(tc.body))
	if err != nil {
		return fmt.Errorf("failed to validate response against %s: %w", schemaFile, err)
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return fmt.Errorf("response does not match %s: %s", schemaFile, strings.Join(problems, "; "))
	}
	return nil
}

func (tc *testContext) field(path string) (any, error) {
	parsed, err := gabs.ParseJSON(tc.body)
	if err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %w", err)
	}
	if !parsed.ExistsP(path) {
		return nil, fmt.Errorf("response field %s does not exist in %s", path, string(tc.body))
	}
	return parsed.Path(path).Data(), nil
}

func (tc *testContext) theResponseFieldShouldBeString(path string, expected string) error {
	value, err := tc.field(path)
	if err != nil {
		return err
	}
	if s, ok := value.(string); !ok || s != expected {
		return fmt.Errorf("expected %s to be %q, got %v", path, expected, value)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBeBool(path string, expected string) error {
	value, err := tc.field(path)
	if err != nil {
		return err
	}
	if b, ok := value.(bool); !ok || strconv.FormatBool(b) != expected {
		return fmt.Errorf("expected %s to be %s, got %v", path, expected, value)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBeNull(path string) error {
	value, err := tc.field(path)
	if err != nil {
		return err
	}
	if value != nil {
		return fmt.Errorf("expected %s to be null, got %v", path, value)
	}
	return nil
}

func (tc *testContext) theResponseFieldShouldBeNumber(path string, expected string) error {
	value, err := tc.field(path)
	if err != nil {
		return err
	}
	want, err := strconv.ParseFloat(expected, 64)
	if err != nil {
		return err
	}
	if f, ok := value.(float64); !ok || f != want {
		return fmt.Errorf("expected %s to be %v, got %v", path, want, value)
	}
	return nil
}

func (tc *testContext) theJSONPathShouldEqual(path string, expected string) error {
	var document any
	if err := json.Unmarshal(tc.body, &document); err != nil {
		return fmt.Errorf("response is not valid JSON: %w", err)
	}
	value, err := jsonpath.Get(path, document)
	if err != nil {
		return fmt.Errorf("failed to evaluate %s: %w", path, err)
	}
	if fmt.Sprint(value) != expected {
		return fmt.Errorf("expected %s to equal %q, got %v", path, expected, value)
	}
	return nil
}

func (tc *testContext) thePredictionScoresShouldBeTheSameAsForUser(userID string) error {
	first, err := gabs.ParseJSON(tc.body)
	if err != nil {
		return err
	}

	body, err := json.Marshal(map[string]string{"userId": userID})
	if err != nil {
		return err
	}
	if err := tc.do(http.MethodPost, "/api/ml/predict", "application/json", string(body)); err != nil {
		return err
	}
	second, err := gabs.ParseJSON(tc.body)
	if err != nil {
		return err
	}

	if second.Path("userId").Data() != userID {
		return fmt.Errorf("expected userId %s, got %v", userID, second.Path("userId").Data())
	}
	if !bytes.Equal(first.Path("prediction").Bytes(), second.Path("prediction").Bytes()) {
		return fmt.Errorf("prediction scores differ: %s vs %s", first.Path("prediction").String(), second.Path("prediction").String())
	}
	return nil
}
