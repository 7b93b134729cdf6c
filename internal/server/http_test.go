package server_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"github.com/karupanerura/keypad-calculator/internal/keypad"
	"github.com/karupanerura/keypad-calculator/internal/server"
)

type sessionView struct {
	Name       string   `json:"name"`
	ID         string   `json:"id"`
	Display    string   `json:"display"`
	Expression string   `json:"expression"`
	Tokens     []string `json:"tokens"`
	Answer     string   `json:"answer"`
	State      struct {
		EqualUsed               bool `json:"equalUsed"`
		LastValidationSucceeded bool `json:"lastValidationSucceeded"`
	} `json:"state"`
}

type pressResponse struct {
	Results []keypad.KeyResult `json:"results"`
	Session sessionView        `json:"session"`
}

func do(t *testing.T, h http.Handler, method, path, body string, out any) int {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if out != nil && rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("%s %s: %v", method, path, err)
		}
	}
	return rec.Code
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	h := server.NewHTTPHandler(keypad.DefaultKeymap())

	var created sessionView
	if code := do(t, h, http.MethodPost, "/v1/sessions", "", &created); code != http.StatusOK {
		t.Fatalf("create: status = %d", code)
	}
	if created.ID == "" || created.Name != "/v1/sessions/"+created.ID {
		t.Fatalf("create: unexpected session %+v", created)
	}
	path := "/v1/sessions/" + created.ID

	var pressed pressResponse
	if code := do(t, h, http.MethodPost, path+":press", `{"keys":["1","2","×","3"]}`, &pressed); code != http.StatusOK {
		t.Fatalf("press: status = %d", code)
	}
	if got := pressed.Session.Display; got != "12×3" {
		t.Errorf("display = %q, want %q", got, "12×3")
	}

	if code := do(t, h, http.MethodPost, path+":press", `{"keys":["="]}`, &pressed); code != http.StatusOK {
		t.Fatalf("press: status = %d", code)
	}
	want := []keypad.KeyResult{{Key: "=", Result: keypad.Evaluated, Display: "36", Value: "36"}}
	if diff := cmp.Diff(want, pressed.Results); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}
	if !pressed.Session.State.EqualUsed || !pressed.Session.State.LastValidationSucceeded {
		t.Errorf("flags must be set after a successful evaluation: %+v", pressed.Session.State)
	}

	var got sessionView
	if code := do(t, h, http.MethodGet, path, "", &got); code != http.StatusOK {
		t.Fatalf("get: status = %d", code)
	}
	if got.Answer != "36" || got.Expression != "36" {
		t.Errorf("get: unexpected session %+v", got)
	}

	var cleared sessionView
	if code := do(t, h, http.MethodPost, path+":clear", "", &cleared); code != http.StatusOK {
		t.Fatalf("clear: status = %d", code)
	}
	if cleared.Display != "" || cleared.Answer != "36" {
		t.Errorf("clear: unexpected session %+v", cleared)
	}

	if code := do(t, h, http.MethodDelete, path, "", nil); code != http.StatusOK {
		t.Fatalf("delete: status = %d", code)
	}
	if code := do(t, h, http.MethodGet, path, "", nil); code != http.StatusNotFound {
		t.Errorf("get after delete: status = %d", code)
	}
}

func TestListSessions(t *testing.T) {
	t.Parallel()

	h := server.NewHTTPHandler(keypad.DefaultKeymap())
	for i := 0; i < 3; i++ {
		do(t, h, http.MethodPost, "/v1/sessions", "", nil)
	}

	var list struct {
		Sessions []sessionView `json:"sessions"`
	}
	if code := do(t, h, http.MethodGet, "/v1/sessions", "", &list); code != http.StatusOK {
		t.Fatalf("list: status = %d", code)
	}
	if len(list.Sessions) != 3 {
		t.Errorf("len(sessions) = %d, want 3", len(list.Sessions))
	}
}

func TestHTTPErrors(t *testing.T) {
	t.Parallel()

	h := server.NewHTTPHandler(keypad.DefaultKeymap())
	var created sessionView
	do(t, h, http.MethodPost, "/v1/sessions", "", &created)
	path := "/v1/sessions/" + created.ID

	for _, tt := range []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{name: "UnknownPath", method: http.MethodGet, path: "/v2/sessions", want: http.StatusNotFound},
		{name: "UnknownSession", method: http.MethodGet, path: "/v1/sessions/nope", want: http.StatusNotFound},
		{name: "PressUnknownSession", method: http.MethodPost, path: "/v1/sessions/nope:press", body: `{"keys":["1"]}`, want: http.StatusNotFound},
		{name: "UnknownMethod", method: http.MethodPost, path: path + ":cancel", want: http.StatusNotFound},
		{name: "PressWithGet", method: http.MethodGet, path: path + ":press", want: http.StatusMethodNotAllowed},
		{name: "PutSessions", method: http.MethodPut, path: "/v1/sessions", want: http.StatusMethodNotAllowed},
		{name: "BrokenBody", method: http.MethodPost, path: path + ":press", body: `{"keys":`, want: http.StatusBadRequest},
		{name: "NoKeys", method: http.MethodPost, path: path + ":press", body: `{"keys":[]}`, want: http.StatusBadRequest},
		{name: "DeleteUnknown", method: http.MethodDelete, path: "/v1/sessions/nope", want: http.StatusNotFound},
	} {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := do(t, h, tt.method, tt.path, tt.body, nil); got != tt.want {
				t.Errorf("status = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPressReportsRejections(t *testing.T) {
	t.Parallel()

	h := server.NewHTTPHandler(keypad.DefaultKeymap())
	var created sessionView
	do(t, h, http.MethodPost, "/v1/sessions", "", &created)

	var pressed pressResponse
	body := `{"keys":["1",".","5",".","?",")"]}`
	if code := do(t, h, http.MethodPost, "/v1/sessions/"+created.ID+":press", body, &pressed); code != http.StatusOK {
		t.Fatalf("press: status = %d", code)
	}

	got := make([]string, len(pressed.Results))
	for i, r := range pressed.Results {
		got[i] = r.Result
	}
	want := []string{"AddingPossible", "AddingPossible", "AddingPossible", "InvalidFormatUsed", keypad.UnknownKey, "InvalidFormatUsed"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("results (-want +got):\n%s", diff)
	}
	if pressed.Session.Display != "1.5" {
		t.Errorf("display = %q, want %q", pressed.Session.Display, "1.5")
	}
}
