package crm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crm-sync/internal/record"
)

// ErrAuthRequired is returned when no API token is configured or the server
// rejects the one we sent. There is no point retrying until the user fixes
// their credentials.
var ErrAuthRequired = errors.New("api token missing or rejected")

// CustomFieldsKey is the container key custom field values live under in
// every record payload.
const CustomFieldsKey = "custom_fields"

// EntityKind names one synchronizable record collection.
type EntityKind string

const (
	Deals         EntityKind = "deals"
	Persons       EntityKind = "persons"
	Organizations EntityKind = "organizations"
	Activities    EntityKind = "activities"
	Leads         EntityKind = "leads"
)

// Kinds lists every supported entity kind.
var Kinds = []EntityKind{Deals, Persons, Organizations, Activities, Leads}

func ParseEntityKind(s string) (EntityKind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q (expected one of: %s)", s, kindList())
}

func kindList() string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}

// Client talks to a CRM-style HTTP API. All calls authenticate with the
// X-Api-Token header.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// get performs one API call and decodes the response envelope. Transport
// failures and error statuses come back as errors; a 2xx body that fails to
// decode is logged and returned as a nil envelope so the caller sees zero
// results instead of aborting.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*record.Object, error) {
	if c.Token == "" {
		return nil, ErrAuthRequired
	}

	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", path, err)
	}
	req.Header.Set("X-Api-Token", c.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrAuthRequired
	}
	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	env, err := record.DecodeObject(resp.Body)
	if err != nil {
		log.Printf("Warning: malformed response from %s: %v (treating as empty)", path, err)
		return nil, nil
	}
	return env, nil
}

// dataRecords extracts the data array from a response envelope. A nil
// envelope, success=false, or a data field that is not an array all count as
// zero results; data=null is how the server reports a legitimately empty set.
func dataRecords(env *record.Object, call string) []*record.Object {
	if env == nil {
		return nil
	}
	if ok, found := env.Get("success"); found && ok.Kind() == record.KindBool && !ok.Bool() {
		log.Printf("Warning: %s reported success=false (treating as empty)", call)
		return nil
	}
	data, found := env.Get("data")
	if !found || data.Kind() == record.KindNull {
		return nil
	}
	if data.Kind() != record.KindArray {
		log.Printf("Warning: %s returned non-array data (treating as empty)", call)
		return nil
	}
	var records []*record.Object
	for _, item := range data.Arr() {
		if item.Kind() == record.KindObject {
			records = append(records, item.Obj())
		}
	}
	return records
}

func stringAt(obj *record.Object, key string) string {
	v, ok := obj.Get(key)
	if !ok || v.Kind() != record.KindString {
		return ""
	}
	return v.Str()
}

func textAt(obj *record.Object, key string) string {
	v, ok := obj.Get(key)
	if !ok {
		return ""
	}
	return v.Text()
}
