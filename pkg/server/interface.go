/*
Package server implements msgpack IPC for spell checking services.

The server package provides a minimal interface for spell checking using msgpack serialization over stdin/stdout.

The protocol uses binary msgpack encoding and supports correctness checks, suggestion requests, whole-text checks, and dictionary management ops.
Messages are processed synchronously with timing info included in responses.

# IPC

The server operates on a request response model where clients send structured messages via stdin and receive responses through stdout.
Each message contains an ID field, an op field, and other fields based on the operation type.

Check requests use mainly this structure:

	{"id": "req_001", "op": "check", "w": "helo"}

The server responds with the verdict and ranked corrections when the word is unknown:

	{"id": "req_001", "ok": false, "s": ["hello", "help", "hole"], "c": 3, "t": 145}

Dict management enables runtime adjustment of the loaded word set:

	{"id": "dict_001", "op": "add", "w": "hyperscaler", "f": 20}
	{"id": "dict_002", "op": "remove", "w": "hyperscaler"}

Response structures include status information and error details when an op fails.

msgpack encoding has ~30 to 50% smaller message sizes compared to JSON.
binary format enables faster parsing and generation, less errors and reducing latency by ~40 to 70% in most cases.
*/
package server

// Request is the envelope for every incoming message. Op selects the
// operation; the remaining fields are op-specific.
type Request struct {
	ID        string `msgpack:"id"`
	Op        string `msgpack:"op"`
	Word      string `msgpack:"w,omitempty"`
	Text      string `msgpack:"x,omitempty"`
	Limit     int    `msgpack:"l,omitempty"`
	Frequency uint32 `msgpack:"f,omitempty"`
}

// CheckResponse answers "check" and "suggest" ops.
type CheckResponse struct {
	ID          string   `msgpack:"id"`
	Correct     bool     `msgpack:"ok"`
	Suggestions []string `msgpack:"s,omitempty"`
	Count       int      `msgpack:"c"`
	TimeTaken   int64    `msgpack:"t"`
}

// TextMatch is one misspelling found by a "check_text" op.
type TextMatch struct {
	Word   string `msgpack:"w"`
	Line   int    `msgpack:"ln"`
	Column int    `msgpack:"col"`
	Offset int    `msgpack:"off"`
}

// TextResponse answers "check_text" ops.
type TextResponse struct {
	ID        string      `msgpack:"id"`
	Matches   []TextMatch `msgpack:"m"`
	Count     int         `msgpack:"c"`
	TimeTaken int64       `msgpack:"t"`
}

// StatusResponse answers mutation ops and health checks.
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// StatsResponse answers "stats" ops.
type StatsResponse struct {
	ID          string `msgpack:"id"`
	WordCount   int    `msgpack:"wc"`
	MemoryBytes int    `msgpack:"mem"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id,omitempty"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
