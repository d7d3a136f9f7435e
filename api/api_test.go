package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/color-tools/api/colorcode"
	"github.com/color-tools/api/datastore"
	"github.com/color-tools/api/models"
	"github.com/color-tools/api/scheduler"
	"github.com/color-tools/api/textkit"
)

type testApp struct {
	*Application
	handler http.Handler
	users   *datastore.MemoryUserDatabase
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	users := datastore.NewMemoryUserDatabase()
	daily := datastore.NewMemoryDailyColorDatabase()
	app := &Application{
		Config: Config{
			JwtSecret:          "test-secret",
			JwtAccessDuration:  900,
			JwtRefreshDuration: 3600,
			AllowedOrigins:     []string{"https://tools.example.com"},
			MaxUUIDBatch:       50,
		},
		UserRepo:       users,
		DailyColorRepo: daily,
		PaletteRepo:    datastore.NewMemoryPaletteDatabase(),
		Converter:      colorcode.NewConverter(nil),
		Scheduler:      scheduler.NewScheduler(daily, nil),
	}
	return &testApp{
		Application: app,
		handler:     app.BuildRoutes(http.NewServeMux()),
		users:       users,
	}
}

func (ta *testApp) do(t *testing.T, method, target string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decoding response %q: %v", rec.Body.String(), err)
	}
	return v
}

// signupAndLogin registers a user, optionally promotes it, and returns
// the login cookies
func (ta *testApp) signupAndLogin(t *testing.T, username string, admin bool) []*http.Cookie {
	t.Helper()
	email := username + "@example.com"
	rec := ta.do(t, http.MethodPost, "/v1/auth/signup", models.UserSignupRequest{
		Username: username, Email: email, Password: "long enough password",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: status %d: %s", rec.Code, rec.Body)
	}
	if admin {
		user, _ := ta.users.GetUserByEmail(email)
		user.Kind = models.Admin
		if _, err := ta.users.Update(user); err != nil {
			t.Fatal(err)
		}
	}

	rec = ta.do(t, http.MethodPost, "/v1/auth/login", models.Credentials{
		Email: email, Password: "long enough password", DeviceFingerprint: "device-" + username,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", rec.Code, rec.Body)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 2 {
		t.Fatalf("login set %d cookies, want 2", len(cookies))
	}
	return cookies
}

func TestConvertColor(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do(t, http.MethodGet, "/v1/colors/convert?hex=%233357FF", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	got := decode[models.ColorCodeResponse](t, rec)
	if got.Hex != "3357ff" || got.RGB != "51, 87, 255" || got.HSL != "229, 100, 60" || got.CMYK != "80, 66, 0, 0" {
		t.Errorf("unexpected codes: %+v", got.Code)
	}
	if !strings.HasPrefix(got.Name, "~ ") {
		t.Errorf("name %q lacks the approximate marker", got.Name)
	}
	if got.TextColor != "white" || got.Luminosity >= 0.5 {
		t.Errorf("luminosity %v / text color %q", got.Luminosity, got.TextColor)
	}
}

func TestConvertColorErrors(t *testing.T) {
	ta := newTestApp(t)
	tests := []struct {
		method, target string
		status         int
	}{
		{http.MethodGet, "/v1/colors/convert?hex=not-a-color", http.StatusBadRequest},
		{http.MethodGet, "/v1/colors/convert?hex=%23ggg", http.StatusBadRequest},
		{http.MethodGet, "/v1/colors/convert", http.StatusBadRequest},
		{http.MethodPost, "/v1/colors/convert?hex=fff", http.StatusMethodNotAllowed},
		{http.MethodGet, "/v1/colors/contrast?fg=000", http.StatusBadRequest},
	}
	for _, tt := range tests {
		rec := ta.do(t, tt.method, tt.target, nil)
		if rec.Code != tt.status {
			t.Errorf("%s %s: status %d, want %d", tt.method, tt.target, rec.Code, tt.status)
			continue
		}
		herr := decode[HandlerError](t, rec)
		if herr.ErrorName == "" || herr.Description == "" {
			t.Errorf("%s %s: incomplete error body %+v", tt.method, tt.target, herr)
		}
	}
}

func TestColorName(t *testing.T) {
	ta := newTestApp(t)
	for i := 0; i < 2; i++ {
		rec := ta.do(t, http.MethodGet, "/v1/colors/name?hex=000", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body)
		}
		got := decode[models.ColorNameResponse](t, rec)
		want := models.ColorNameResponse{
			Input: "000000",
			Match: colorcode.Match{Name: "black", Hex: "000000", Exact: true},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("name lookup mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestColorContrast(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do(t, http.MethodGet, "/v1/colors/contrast?fg=000&bg=ffffff", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	got := decode[models.ContrastResponse](t, rec)
	want := models.ContrastResponse{Foreground: "000000", Background: "ffffff", Ratio: 21, AA: true, AAA: true}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("contrast mismatch (-want +got):\n%s", diff)
	}
}

func TestRandomColorIsConsistent(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do(t, http.MethodGet, "/v1/colors/random", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	got := decode[models.ColorCodeResponse](t, rec)
	again, err := colorcode.Convert(got.Hex)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(again, got.Code); diff != "" {
		t.Errorf("random color does not reconvert (-want +got):\n%s", diff)
	}
}

func TestDailyColor(t *testing.T) {
	ta := newTestApp(t)
	if rec := ta.do(t, http.MethodGet, "/v1/colors/daily", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("before generation: status %d", rec.Code)
	}

	member := ta.signupAndLogin(t, "member", false)
	if rec := ta.do(t, http.MethodPost, "/v1/admin/colors/generate", nil, member...); rec.Code != http.StatusForbidden {
		t.Errorf("member generated a color: status %d", rec.Code)
	}

	admin := ta.signupAndLogin(t, "admin", true)
	if rec := ta.do(t, http.MethodPost, "/v1/admin/colors/generate", nil, admin...); rec.Code != http.StatusOK {
		t.Fatalf("admin generate: status %d: %s", rec.Code, rec.Body)
	}

	rec := ta.do(t, http.MethodGet, "/v1/colors/daily", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	daily := decode[models.DailyColorResponse](t, rec)
	if daily.ColorName == "" || !strings.HasPrefix(daily.Hex, "#") {
		t.Errorf("daily color = %+v", daily)
	}

	rec = ta.do(t, http.MethodGet, "/v1/colors/daily/all", nil)
	all := decode[[]models.DailyColorResponse](t, rec)
	if len(all) != 1 || all[0] != daily {
		t.Errorf("daily/all = %+v, want [%+v]", all, daily)
	}
}

func TestUnitConversion(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do(t, http.MethodPost, "/v1/tools/units/convert", models.UnitConversionRequest{
		Category: "temperature", From: "celsius", Value: 100,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	got := decode[models.UnitConversionResponse](t, rec)
	if len(got.Results) != 2 || got.Results[0].Unit != "fahrenheit" || got.Results[0].Value != 212 {
		t.Errorf("results = %+v", got.Results)
	}

	rec = ta.do(t, http.MethodPost, "/v1/tools/units/convert", models.UnitConversionRequest{
		Category: "length", From: "cubit", Value: 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown unit: status %d", rec.Code)
	}

	rec = ta.do(t, http.MethodGet, "/v1/tools/units", nil)
	cats := decode[[]struct {
		Key   string `json:"key"`
		Units []struct {
			Key string `json:"key"`
		} `json:"units"`
	}](t, rec)
	if len(cats) != 5 || cats[0].Key != "length" || cats[0].Units[0].Key != "meter" {
		t.Errorf("categories = %+v", cats)
	}
}

func TestGenerateUUIDs(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do(t, http.MethodGet, "/v1/tools/uuid?count=5", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	ids := decode[[]models.UUIDFormats](t, rec)
	if len(ids) != 5 {
		t.Fatalf("got %d ids", len(ids))
	}
	seen := map[string]bool{}
	for _, id := range ids {
		if seen[id.Standard] {
			t.Errorf("duplicate uuid %s", id.Standard)
		}
		seen[id.Standard] = true
		if id.URN != "urn:uuid:"+id.Standard || len(id.NoDashes) != 32 || id.Braces != "{"+id.Standard+"}" {
			t.Errorf("inconsistent formats %+v", id)
		}
	}

	for _, q := range []string{"0", "51", "many"} {
		if rec := ta.do(t, http.MethodGet, "/v1/tools/uuid?count="+q, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("count=%s: status %d", q, rec.Code)
		}
	}
}

func TestTextTools(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do(t, http.MethodPost, "/v1/tools/text/case", models.TextCaseRequest{Text: "max retry count", Case: "constant"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	if got := decode[models.TextCaseResponse](t, rec); got.Result != "MAX_RETRY_COUNT" {
		t.Errorf("case result = %q", got.Result)
	}

	rec = ta.do(t, http.MethodPost, "/v1/tools/text/case", models.TextCaseRequest{Text: "x", Case: "wavy"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown case: status %d", rec.Code)
	}

	rec = ta.do(t, http.MethodPost, "/v1/tools/text/stats", models.TextStatsRequest{Text: "one two two"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	stats := decode[struct {
		Words    int `json:"words"`
		TopWords []struct {
			Word  string `json:"word"`
			Count int    `json:"count"`
		} `json:"topWords"`
	}](t, rec)
	if stats.Words != 3 || len(stats.TopWords) != 2 || stats.TopWords[0].Word != "two" {
		t.Errorf("stats = %+v", stats)
	}
}

func TestTextDiff(t *testing.T) {
	ta := newTestApp(t)
	rec := ta.do(t, http.MethodPost, "/v1/tools/text/diff", models.TextDiffRequest{
		Before: "a\nb\nc\n",
		After:  "a\nx\ny\nc\n",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	want := models.TextDiffResponse{
		Chunks: []textkit.Chunk{
			{Value: "a\n", Count: 1},
			{Value: "b\n", Count: 1, Removed: true},
			{Value: "x\ny\n", Count: 2, Added: true},
			{Value: "c\n", Count: 1},
		},
		Added:   2,
		Removed: 1,
	}
	if diff := cmp.Diff(want, decode[models.TextDiffResponse](t, rec)); diff != "" {
		t.Errorf("diff response mismatch (-want +got):\n%s", diff)
	}

	if rec := ta.do(t, http.MethodGet, "/v1/tools/text/diff", nil); rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET diff: status %d", rec.Code)
	}
}

func TestLorem(t *testing.T) {
	ta := newTestApp(t)

	rec := ta.do(t, http.MethodGet, "/v1/tools/lorem", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	got := decode[models.LoremResponse](t, rec)
	if got.Type != "paragraphs" || got.Count != 5 || len(strings.Split(got.Text, "\n")) != 5 {
		t.Errorf("default lorem = %+v", got)
	}

	rec = ta.do(t, http.MethodGet, "/v1/tools/lorem?type=words&count=12", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body)
	}
	if got := decode[models.LoremResponse](t, rec); len(strings.Fields(got.Text)) != 12 {
		t.Errorf("words lorem = %q", got.Text)
	}

	for _, target := range []string{
		"/v1/tools/lorem?type=chapters",
		"/v1/tools/lorem?type=paragraphs&count=0",
		"/v1/tools/lorem?type=paragraphs&count=51",
		"/v1/tools/lorem?count=many",
	} {
		if rec := ta.do(t, http.MethodGet, target, nil); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status %d", target, rec.Code)
		}
	}
}

func TestSignupValidation(t *testing.T) {
	ta := newTestApp(t)
	ta.signupAndLogin(t, "ada", false)

	tests := []struct {
		req    models.UserSignupRequest
		status int
	}{
		{models.UserSignupRequest{Username: "ada", Email: "other@example.com", Password: "long enough password"}, http.StatusConflict},
		{models.UserSignupRequest{Username: "bob", Email: "ada@example.com", Password: "long enough password"}, http.StatusConflict},
		{models.UserSignupRequest{Username: "b o b", Email: "bob@example.com", Password: "long enough password"}, http.StatusBadRequest},
		{models.UserSignupRequest{Username: "bob", Email: "bob@example.com", Password: "short"}, http.StatusBadRequest},
		{models.UserSignupRequest{Username: "bob", Email: "not an email", Password: "long enough password"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := ta.do(t, http.MethodPost, "/v1/auth/signup", tt.req); rec.Code != tt.status {
			t.Errorf("signup %+v: status %d, want %d", tt.req, rec.Code, tt.status)
		}
	}

	rec := ta.do(t, http.MethodPost, "/v1/auth/login", models.Credentials{
		Email: "ada@example.com", Password: "wrong password", DeviceFingerprint: "d",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad password login: status %d", rec.Code)
	}
}

func TestPalettes(t *testing.T) {
	ta := newTestApp(t)
	if rec := ta.do(t, http.MethodGet, "/v1/palettes", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated list: status %d", rec.Code)
	}

	cookies := ta.signupAndLogin(t, "ada", false)
	rec := ta.do(t, http.MethodPost, "/v1/palettes", models.CreatePaletteRequest{
		Name: "primaries", Colors: []string{"#F00", "00ff00", "#0000FF"},
	}, cookies...)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d: %s", rec.Code, rec.Body)
	}
	created := decode[models.PaletteResponse](t, rec)
	hexes := []string{}
	for _, c := range created.Colors {
		hexes = append(hexes, c.Hex)
	}
	if diff := cmp.Diff([]string{"ff0000", "00ff00", "0000ff"}, hexes); diff != "" {
		t.Errorf("stored colors (-want +got):\n%s", diff)
	}
	if created.Colors[0].Name != "~ red" {
		t.Errorf("first color name = %q", created.Colors[0].Name)
	}

	rec = ta.do(t, http.MethodPost, "/v1/palettes", models.CreatePaletteRequest{
		Name: "broken", Colors: []string{"#ggg"},
	}, cookies...)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid color: status %d", rec.Code)
	}

	rec = ta.do(t, http.MethodGet, "/v1/palettes", nil, cookies...)
	list := decode[[]models.PaletteResponse](t, rec)
	if len(list) != 1 || list[0].PaletteID != created.PaletteID {
		t.Errorf("list = %+v", list)
	}

	rec = ta.do(t, http.MethodPut, "/v1/palettes", nil, cookies...)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("PUT palettes: status %d", rec.Code)
	}
	if allow := rec.Header().Get("Allow"); allow != "GET, POST" {
		t.Errorf("PUT palettes: Allow = %q, want %q", allow, "GET, POST")
	}

	other := ta.signupAndLogin(t, "eve", false)
	if rec := ta.do(t, http.MethodGet, "/v1/palettes/get?id="+created.PaletteID, nil, other...); rec.Code != http.StatusNotFound {
		t.Errorf("other user read palette: status %d", rec.Code)
	}
	if rec := ta.do(t, http.MethodDelete, "/v1/palettes/delete?id="+created.PaletteID, nil, other...); rec.Code != http.StatusNotFound {
		t.Errorf("other user deleted palette: status %d", rec.Code)
	}

	if rec := ta.do(t, http.MethodGet, "/v1/palettes/get?id="+created.PaletteID, nil, cookies...); rec.Code != http.StatusOK {
		t.Errorf("get own palette: status %d", rec.Code)
	}
	if rec := ta.do(t, http.MethodDelete, "/v1/palettes/delete?id="+created.PaletteID, nil, cookies...); rec.Code != http.StatusNoContent {
		t.Errorf("delete own palette: status %d", rec.Code)
	}
	if rec := ta.do(t, http.MethodGet, "/v1/palettes/get?id="+created.PaletteID, nil, cookies...); rec.Code != http.StatusNotFound {
		t.Errorf("deleted palette: status %d", rec.Code)
	}
}

func TestLogoutRevokesDevice(t *testing.T) {
	ta := newTestApp(t)
	cookies := ta.signupAndLogin(t, "ada", false)
	if rec := ta.do(t, http.MethodGet, "/v1/users/me", nil, cookies...); rec.Code != http.StatusOK {
		t.Fatalf("me: status %d", rec.Code)
	}
	if rec := ta.do(t, http.MethodPost, "/v1/auth/logout", nil, cookies...); rec.Code != http.StatusNoContent {
		t.Fatalf("logout: status %d: %s", rec.Code, rec.Body)
	}
	if rec := ta.do(t, http.MethodGet, "/v1/users/me", nil, cookies...); rec.Code != http.StatusUnauthorized {
		t.Errorf("old token after logout: status %d", rec.Code)
	}
}

func TestOriginCheck(t *testing.T) {
	ta := newTestApp(t)
	tests := []struct {
		origin string
		status int
	}{
		{"", http.StatusOK},
		{"https://tools.example.com", http.StatusOK},
		{"https://evil.example.com", http.StatusForbidden},
		{"http://localhost:5173", http.StatusForbidden},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/v1/colors/convert?hex=fff", nil)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		rec := httptest.NewRecorder()
		ta.handler.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Errorf("origin %q: status %d, want %d", tt.origin, rec.Code, tt.status)
		}
	}

	ta.Config.DevMode = true
	req := httptest.NewRequest(http.MethodGet, "/v1/colors/convert?hex=fff", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	ta.handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("localhost in dev mode: status %d", rec.Code)
	}
}
