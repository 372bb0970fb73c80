package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/hainweb/merchant-console/config"
	"github.com/hainweb/merchant-console/internal/dto"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

type IntegrationTestSuite struct {
	suite.Suite
	app      App
	merchant *httptest.Server
	console  *httptest.Server

	mu       sync.Mutex
	products []map[string]string
}

func setupTestConfig(merchantURL string) *config.Config {
	return &config.Config{
		ServicePort: "0",
		MetricsPort: "0",
		Environment: "test",
		JWTSecret:   "integration-secret",
		MerchantAPIConfig: config.MerchantAPIConfig{
			BaseURL: merchantURL,
			Timeout: 5 * time.Second,
		},
		SessionConfig: config.SessionConfig{
			TTL:           time.Hour,
			DraftTTL:      time.Hour,
			SweepInterval: time.Minute,
		},
		UploadConfig: config.UploadConfig{
			MaxImageBytes:   1 << 20,
			MaxRequestBytes: 64 << 10,
		},
		KafkaConfig: config.KafkaConfig{
			BrokerTopic: "merchant-products",
		},
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// fakeMerchantAPI stands in for the remote merchant API. The merchant is
// logged in once the connect.sid cookie is present.
func (s *IntegrationTestSuite) fakeMerchantAPI() http.Handler {
	mux := http.NewServeMux()
	loggedIn := func(r *http.Request) bool {
		_, err := r.Cookie("connect.sid")
		return err == nil
	}

	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		var req dto.MerchantLoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "123456" {
			writeJSON(w, map[string]interface{}{"status": false, "message": "Invalid mobile or password"})
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "connect.sid", Value: "m-1", Path: "/"})
		writeJSON(w, map[string]interface{}{"status": true})
	})
	mux.HandleFunc("/get-admin", func(w http.ResponseWriter, r *http.Request) {
		if !loggedIn(r) {
			writeJSON(w, map[string]interface{}{"status": false})
			return
		}
		writeJSON(w, map[string]interface{}{
			"status":     true,
			"isApproved": true,
			"admin":      map[string]interface{}{"_id": "a-1", "Name": "Asha", "isIntroSeen": true},
		})
	})
	mux.HandleFunc("/logout", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "connect.sid", Value: "", Path: "/", MaxAge: -1})
		writeJSON(w, map[string]interface{}{"status": true})
	})
	mux.HandleFunc("/add-product", func(w http.ResponseWriter, r *http.Request) {
		if !loggedIn(r) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		product := map[string]string{}
		for k, v := range r.MultipartForm.Value {
			product[k] = v[0]
		}
		product["images"] = fmt.Sprint(len(r.MultipartForm.File["images"]))
		product["thumbnail"] = fmt.Sprint(len(r.MultipartForm.File["thumbnail"]))

		s.mu.Lock()
		s.products = append(s.products, product)
		s.mu.Unlock()

		writeJSON(w, map[string]interface{}{"status": true})
	})
	mux.HandleFunc("/get-dashboard-data", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]interface{}{
			"totalOrders":     12,
			"cancledOrders":   1,
			"totalInStock":    5,
			"totalLowStock":   2,
			"totalOutOfStock": 1,
			"categoryStatus": []map[string]interface{}{
				{"category": "Apparel", "deliveredRevenue": 900.5, "totalOrderedProducts": 9},
			},
		})
	})

	return mux
}

func (s *IntegrationTestSuite) SetupSuite() {
	s.merchant = httptest.NewServer(s.fakeMerchantAPI())

	s.app.Config = setupTestConfig(s.merchant.URL)
	s.Require().NoError(s.app.Setup())

	s.console = httptest.NewServer(s.app.Server)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	s.console.Close()
	s.merchant.Close()

	err := s.app.StopServer()

	s.Require().NoError(err)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

func (s *IntegrationTestSuite) newClient() *http.Client {
	jar, err := cookiejar.New(nil)
	s.Require().NoError(err)
	return &http.Client{Jar: jar}
}

func (s *IntegrationTestSuite) do(client *http.Client, method, path string, body io.Reader, contentType string) (int, envelope) {
	req, err := http.NewRequest(method, s.console.URL+"/api/v1"+path, body)
	s.Require().NoError(err)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}

	resp, err := client.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	var env envelope
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func (s *IntegrationTestSuite) doJSON(client *http.Client, method, path string, payload interface{}) (int, envelope) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		s.Require().NoError(err)
		body = bytes.NewReader(b)
	}
	return s.do(client, method, path, body, echo.MIMEApplicationJSON)
}

func (s *IntegrationTestSuite) upload(client *http.Client, method, path, field string, files map[string][]byte) (int, envelope) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for name, data := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, name))
		h.Set("Content-Type", "image/png")
		part, err := w.CreatePart(h)
		s.Require().NoError(err)
		_, err = part.Write(data)
		s.Require().NoError(err)
	}
	s.Require().NoError(w.Close())

	return s.do(client, method, path, &buf, w.FormDataContentType())
}

func pngBytes(s *IntegrationTestSuite, w, h int) []byte {
	var buf bytes.Buffer
	s.Require().NoError(png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func (s *IntegrationTestSuite) login() *http.Client {
	client := s.newClient()
	status, env := s.doJSON(client, http.MethodPost, "/login", dto.LoginRequest{Email: "asha@example.com", Password: "123456"})
	s.Require().Equal(http.StatusOK, status, env.Message)
	return client
}

func (s *IntegrationTestSuite) Test_Ping() {
	status, env := s.doJSON(s.newClient(), http.MethodGet, "/ping", nil)
	s.Equal(http.StatusOK, status)
	s.Equal("Hello, World!", env.Message)
}

func (s *IntegrationTestSuite) Test_Login() {
	type TestCase struct {
		Name           string
		Request        dto.LoginRequest
		ExpectedStatus int
	}

	testCases := []TestCase{
		{
			Name:           "Valid request",
			Request:        dto.LoginRequest{Email: "asha@example.com", Password: "123456"},
			ExpectedStatus: http.StatusOK,
		},
		{
			Name:           "Wrong password",
			Request:        dto.LoginRequest{Email: "asha@example.com", Password: "1234"},
			ExpectedStatus: http.StatusUnauthorized,
		},
		{
			Name:           "Missing fields",
			Request:        dto.LoginRequest{},
			ExpectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.Name, func() {
			status, _ := s.doJSON(s.newClient(), http.MethodPost, "/login", tc.Request)
			s.Equal(tc.ExpectedStatus, status)
		})
	}
}

func (s *IntegrationTestSuite) Test_ProtectedRoutesNeedSession() {
	for _, path := range []string{"/admin", "/products", "/dashboard"} {
		s.Run(path, func() {
			status, env := s.doJSON(s.newClient(), http.MethodGet, path, nil)
			s.Equal(http.StatusUnauthorized, status)
			s.Equal("Invalid or expired JWT", env.Message)
		})
	}
}

func (s *IntegrationTestSuite) Test_SessionLifecycle() {
	client := s.login()

	status, env := s.doJSON(client, http.MethodGet, "/admin", nil)
	s.Require().Equal(http.StatusOK, status)
	var view struct {
		Approval string `json:"approval"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &view))
	s.Equal("approved", view.Approval)

	status, _ = s.doJSON(client, http.MethodPost, "/logout", nil)
	s.Equal(http.StatusOK, status)

	status, _ = s.doJSON(client, http.MethodGet, "/admin", nil)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) Test_AddProduct() {
	client := s.login()

	status, env := s.doJSON(client, http.MethodPost, "/drafts", nil)
	s.Require().Equal(http.StatusOK, status)
	var draft struct {
		Draft struct {
			ID string `json:"id"`
		} `json:"draft"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &draft))
	draftPath := "/drafts/" + draft.Draft.ID

	s.Run("Invalid draft is refused with field errors", func() {
		status, env := s.doJSON(client, http.MethodPost, draftPath+"/submit", nil)
		s.Equal(http.StatusUnprocessableEntity, status)
		var fieldErrors map[string]string
		s.Require().NoError(json.Unmarshal(env.Errors, &fieldErrors))
		s.Equal("Thumbnail image is required", fieldErrors["Thumbnail"])
	})

	status, _ = s.doJSON(client, http.MethodPatch, draftPath, map[string]string{
		"name":          "Shirt",
		"price":         "100",
		"selling_price": "150",
		"category":      "Apparel",
		"description":   "Cotton shirt",
		"quantity":      "10",
		"return_policy": "7 Days",
	})
	s.Require().Equal(http.StatusOK, status)

	status, _ = s.doJSON(client, http.MethodPost, draftPath+"/specifications", map[string]string{"key": "Fabric", "value": "Cotton"})
	s.Require().Equal(http.StatusOK, status)

	s.Run("Wrong thumbnail size is rejected", func() {
		status, env := s.upload(client, http.MethodPut, draftPath+"/thumbnail", "thumbnail", map[string][]byte{"small.png": pngBytes(s, 200, 200)})
		s.Equal(http.StatusOK, status)
		s.Equal("Thumbnail must be 300x300 pixels.", env.Message)
	})

	s.Run("Non image thumbnail is rejected", func() {
		status, env := s.upload(client, http.MethodPut, draftPath+"/thumbnail", "thumbnail", map[string][]byte{"notes.png": []byte("plain text")})
		s.Equal(http.StatusOK, status)
		s.Equal("Error loading image file.", env.Message)
	})

	s.Run("Oversized request is refused", func() {
		status, _ := s.upload(client, http.MethodPost, draftPath+"/images", "images", map[string][]byte{"big.png": bytes.Repeat([]byte{0x89}, 100<<10)})
		s.Equal(http.StatusRequestEntityTooLarge, status)
	})

	s.Run("Valid images in a mixed batch are kept", func() {
		status, env := s.upload(client, http.MethodPost, draftPath+"/images", "images", map[string][]byte{
			"valid600.png": pngBytes(s, 600, 600),
			"notes.txt":    []byte("plain text"),
		})
		s.Require().Equal(http.StatusOK, status)
		s.Equal("Error loading image file.", env.Message)

		var resp dto.DraftResponse
		s.Require().NoError(json.Unmarshal(env.Data, &resp))
		s.Require().NotNil(resp.Accepted)
		s.Equal(1, *resp.Accepted)
		s.Equal("Error loading image file.", resp.Rejection)
	})

	status, _ = s.upload(client, http.MethodPut, draftPath+"/thumbnail", "thumbnail", map[string][]byte{"thumb.png": pngBytes(s, 300, 300)})
	s.Require().Equal(http.StatusOK, status)

	status, _ = s.upload(client, http.MethodPost, draftPath+"/images", "images", map[string][]byte{
		"1.png": pngBytes(s, 600, 600),
		"2.png": pngBytes(s, 600, 600),
	})
	s.Require().Equal(http.StatusOK, status)

	status, env = s.doJSON(client, http.MethodPost, draftPath+"/submit", nil)
	s.Require().Equal(http.StatusOK, status, env.Message)
	s.Equal("Product Added Successfully", env.Message)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.Require().NotEmpty(s.products)
	product := s.products[len(s.products)-1]
	s.Equal("Shirt", product["Name"])
	s.Equal("7 Days", product["Return"])
	s.Equal(`[{"key":"Fabric","value":"Cotton"}]`, product["Specifications"])
	s.Equal("1", product["thumbnail"])
	s.Equal("3", product["images"])

	status, _ = s.doJSON(client, http.MethodGet, draftPath, nil)
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) Test_Dashboard() {
	client := s.login()

	status, env := s.doJSON(client, http.MethodGet, "/dashboard", nil)
	s.Require().Equal(http.StatusOK, status)

	var summary dto.DashboardSummaryResponse
	s.Require().NoError(json.Unmarshal(env.Data, &summary))
	s.EqualValues(12, summary.Metrics.TotalOrders)
	s.Equal([]dto.ChartSlice{{Name: "Apparel", Value: 900.5}}, summary.CategoryRevenue)
}
