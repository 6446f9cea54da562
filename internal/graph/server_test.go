package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"github.com/jonludena/friendbook/internal/auth"
	"github.com/jonludena/friendbook/internal/middleware"
	"github.com/jonludena/friendbook/internal/storage/sqlite"
)

// graphqlResponse is the standard GraphQL response envelope.
type graphqlResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message    string                 `json:"message"`
		Extensions map[string]interface{} `json:"extensions"`
	} `json:"errors"`
}

func setupTestServer(t *testing.T) (*httptest.Server, func()) {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "friendbook-server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		os.RemoveAll(tempDir)
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret")
	authn, err := auth.NewSharedSecretAuthenticator(store, testPassword)
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}

	schema, err := graphql.ParseSchema(Schema, NewResolver(store, jwtManager, authn))
	if err != nil {
		t.Fatalf("failed to parse schema: %v", err)
	}

	identity := middleware.WithIdentity(jwtManager, store)
	server := httptest.NewServer(identity(&relay.Handler{Schema: schema}))

	cleanup := func() {
		server.Close()
		store.Close()
		os.RemoveAll(tempDir)
	}

	return server, cleanup
}

// execute posts a GraphQL query, optionally with a bearer token.
func execute(t *testing.T, url, token, query string) (*graphqlResponse, int) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		t.Fatalf("failed to marshal query: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var out graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return &out, resp.StatusCode
}

func errorCode(resp *graphqlResponse) string {
	if len(resp.Errors) == 0 {
		return ""
	}
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

func TestEndToEndScenario(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()
	url := server.URL

	// Register and log in.
	resp, _ := execute(t, url, "", `mutation { createUser(username: "alice") { id username } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("createUser failed: %+v", resp.Errors)
	}

	resp, _ = execute(t, url, "", fmt.Sprintf(`mutation { login(username: "alice", password: %q) { value } }`, testPassword))
	if len(resp.Errors) > 0 {
		t.Fatalf("login failed: %+v", resp.Errors)
	}
	var tokenPayload struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(resp.Data["login"], &tokenPayload); err != nil {
		t.Fatalf("failed to decode token: %v", err)
	}
	if tokenPayload.Value == "" {
		t.Fatal("expected a token value")
	}
	token := tokenPayload.Value

	// Create Bob as an authenticated mutation.
	resp, _ = execute(t, url, token, `mutation { addPerson(name: "Bob", street: "Main", city: "Quito") { id address { street city } } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("addPerson failed: %+v", resp.Errors)
	}
	var person struct {
		ID      string `json:"id"`
		Address struct {
			Street string `json:"street"`
			City   string `json:"city"`
		} `json:"address"`
	}
	if err := json.Unmarshal(resp.Data["addPerson"], &person); err != nil {
		t.Fatalf("failed to decode person: %v", err)
	}
	if person.ID == "" {
		t.Error("expected person to have an id")
	}
	if person.Address.Street != "Main" || person.Address.City != "Quito" {
		t.Errorf("unexpected address: %+v", person.Address)
	}

	// me reflects the new friend.
	resp, _ = execute(t, url, token, `{ me { username friends { name } } }`)
	if len(resp.Errors) > 0 {
		t.Fatalf("me failed: %+v", resp.Errors)
	}
	var me struct {
		Username string `json:"username"`
		Friends  []struct {
			Name string `json:"name"`
		} `json:"friends"`
	}
	if err := json.Unmarshal(resp.Data["me"], &me); err != nil {
		t.Fatalf("failed to decode me: %v", err)
	}
	if len(me.Friends) != 1 || me.Friends[0].Name != "Bob" {
		t.Fatalf("expected Bob as the only friend, got %+v", me.Friends)
	}

	// Adding Bob again is a conflict and friends stay unchanged.
	resp, _ = execute(t, url, token, `mutation { addAsFriend(name: "Bob") { id } }`)
	if code := errorCode(resp); code != "CONFLICT" {
		t.Fatalf("expected CONFLICT, got code %q (errors: %+v)", code, resp.Errors)
	}

	resp, _ = execute(t, url, token, `{ me { friends { name } } }`)
	if err := json.Unmarshal(resp.Data["me"], &me); err != nil {
		t.Fatalf("failed to decode me: %v", err)
	}
	if len(me.Friends) != 1 {
		t.Errorf("expected friends unchanged at 1, got %d", len(me.Friends))
	}
}

func TestUnauthenticatedMutationsAreRejected(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()
	url := server.URL

	resp, _ := execute(t, url, "", `mutation { addPerson(name: "Bob", street: "Main", city: "Quito") { id } }`)
	if code := errorCode(resp); code != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %q", code)
	}

	// Nothing was written.
	resp, _ = execute(t, url, "", `{ personCount }`)
	var count int32
	if err := json.Unmarshal(resp.Data["personCount"], &count); err != nil {
		t.Fatalf("failed to decode personCount: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no persons, got %d", count)
	}
}

func TestInvalidBearerTokenAbortsRequest(t *testing.T) {
	server, cleanup := setupTestServer(t)
	defer cleanup()

	// A present-but-invalid bearer token rejects the whole request before
	// any resolver runs, even for a read-only query.
	resp, status := execute(t, server.URL, "garbage-token", `{ personCount }`)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if code := errorCode(resp); code != "UNAUTHENTICATED" {
		t.Fatalf("expected UNAUTHENTICATED, got %q", code)
	}
	if len(resp.Data) != 0 {
		t.Errorf("expected no data, got %v", resp.Data)
	}
}
