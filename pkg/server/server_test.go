package server

import (
	"bytes"
	"io"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/bastiangx/spellserve/pkg/checker"
)

func testChecker(t *testing.T) *checker.Checker {
	t.Helper()
	c := checker.New()
	c.AddWordWithFrequency("hello", 100)
	c.AddWordWithFrequency("help", 50)
	c.AddWordWithFrequency("world", 40)
	return c
}

// runRequests feeds encoded requests to a server instance and decodes
// everything it writes back, dropping the initial ready status.
func runRequests(t *testing.T, c *checker.Checker, requests []Request) []map[string]interface{} {
	t.Helper()

	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range requests {
		if err := enc.Encode(r); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}

	var out bytes.Buffer
	srv := newServer(c, &in, &out, 1000, 1000)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	var responses []map[string]interface{}
	for {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("decoding response: %v", err)
		}
		responses = append(responses, m)
	}

	if len(responses) == 0 || responses[0]["status"] != "ready" {
		t.Fatalf("missing ready status, got %v", responses)
	}
	return responses[1:]
}

func TestCheckKnownWord(t *testing.T) {
	resps := runRequests(t, testChecker(t), []Request{
		{ID: "r1", Op: "check", Word: "hello"},
	})
	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	if resps[0]["ok"] != true {
		t.Errorf("ok = %v, want true", resps[0]["ok"])
	}
	if resps[0]["id"] != "r1" {
		t.Errorf("id = %v, want r1", resps[0]["id"])
	}
}

func TestCheckMisspelledWord(t *testing.T) {
	resps := runRequests(t, testChecker(t), []Request{
		{ID: "r2", Op: "check", Word: "helo"},
	})
	if len(resps) != 1 {
		t.Fatalf("got %d responses, want 1", len(resps))
	}
	if resps[0]["ok"] != false {
		t.Errorf("ok = %v, want false", resps[0]["ok"])
	}
	raw, _ := resps[0]["s"].([]interface{})
	if len(raw) == 0 {
		t.Fatal("no suggestions returned")
	}
	if raw[0] != "hello" {
		t.Errorf("first suggestion = %v, want hello", raw[0])
	}
}

func TestSuggestLimit(t *testing.T) {
	resps := runRequests(t, testChecker(t), []Request{
		{ID: "r3", Op: "suggest", Word: "helo", Limit: 1},
	})
	raw, _ := resps[0]["s"].([]interface{})
	if len(raw) != 1 {
		t.Errorf("got %d suggestions with limit 1", len(raw))
	}
}

func TestCheckText(t *testing.T) {
	resps := runRequests(t, testChecker(t), []Request{
		{ID: "r4", Op: "check_text", Text: "hello wrold"},
	})
	matches, _ := resps[0]["m"].([]interface{})
	if len(matches) != 1 {
		t.Fatalf("got %d matches, want 1: %v", len(matches), resps[0])
	}
	first, _ := matches[0].(map[string]interface{})
	if first["w"] != "wrold" {
		t.Errorf("match word = %v, want wrold", first["w"])
	}
}

func TestAddAndRemove(t *testing.T) {
	c := testChecker(t)
	resps := runRequests(t, c, []Request{
		{ID: "a1", Op: "add", Word: "gopher", Frequency: 7},
		{ID: "c1", Op: "check", Word: "gopher"},
		{ID: "d1", Op: "remove", Word: "gopher"},
		{ID: "d2", Op: "remove", Word: "gopher"},
	})
	if len(resps) != 4 {
		t.Fatalf("got %d responses, want 4", len(resps))
	}
	if resps[0]["status"] != "added" {
		t.Errorf("add status = %v", resps[0]["status"])
	}
	if resps[1]["ok"] != true {
		t.Error("added word not recognized")
	}
	if resps[2]["status"] != "removed" {
		t.Errorf("remove status = %v", resps[2]["status"])
	}
	if code, ok := asInt(resps[3]["c"]); !ok || code != 404 {
		t.Errorf("second remove = %v, want 404 error", resps[3])
	}
}

func TestStats(t *testing.T) {
	resps := runRequests(t, testChecker(t), []Request{
		{ID: "s1", Op: "stats"},
	})
	wc, ok := asInt(resps[0]["wc"])
	if !ok || wc != 3 {
		t.Errorf("wc = %v, want 3", resps[0]["wc"])
	}
}

func TestUnknownOpAndValidation(t *testing.T) {
	long := make([]byte, maxWordLength+1)
	for i := range long {
		long[i] = 'a'
	}
	resps := runRequests(t, testChecker(t), []Request{
		{ID: "e1", Op: "frobnicate"},
		{ID: "e2", Op: "check"},
		{ID: "e3", Op: "check", Word: string(long)},
	})
	if len(resps) != 3 {
		t.Fatalf("got %d responses, want 3", len(resps))
	}
	for i, r := range resps {
		if _, hasErr := r["e"]; !hasErr {
			t.Errorf("response %d = %v, want error", i, r)
		}
	}
}

func TestHealth(t *testing.T) {
	resps := runRequests(t, testChecker(t), []Request{
		{ID: "h1", Op: "health"},
	})
	if resps[0]["status"] != "ok" {
		t.Errorf("status = %v, want ok", resps[0]["status"])
	}
}

func TestRateLimit(t *testing.T) {
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for i := 0; i < 3; i++ {
		if err := enc.Encode(Request{ID: "r", Op: "health"}); err != nil {
			t.Fatal(err)
		}
	}

	var out bytes.Buffer
	srv := newServer(testChecker(t), &in, &out, 0.001, 1)
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(&out)
	limited := 0
	for {
		var m map[string]interface{}
		if err := dec.Decode(&m); err != nil {
			break
		}
		if e, ok := m["e"].(string); ok && e == "Too many requests" {
			limited++
		}
	}
	if limited != 2 {
		t.Errorf("rate limited %d requests, want 2", limited)
	}
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	}
	return 0, false
}
