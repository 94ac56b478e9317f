package mockapi

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/fakeapi/rest-contract-tests/models"
	"github.com/fakeapi/rest-contract-tests/validation"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// plainText is the alphabet strict mode allows in display text: letters, digits, whitespace and
// ordinary punctuation. Markup, emoji and symbols are refused.
var plainText = regexp.MustCompile(`^[\p{L}\p{M}\p{N}\s.,;:'"?!()\-]*$`)

var (
	textFields = []string{"name", "title", "body"}
	urlFields  = []string{"url", "thumbnailUrl"}
)

// rejection returns the reason strict mode refuses a record, or "" if it is acceptable.
func rejection(schema *models.Schema, body ldvalue.Value, id int) string {
	for _, k := range body.Keys() {
		if !schema.HasField(k) {
			return fmt.Sprintf("unexpected property %q", k)
		}
	}
	e := models.FromValue(schema, body).WithID(id)
	if result := e.Validate(); !result.IsValid() {
		return strings.Join(result.Errors, "; ")
	}
	for _, field := range textFields {
		if v := e.Get(field); v.Type() == ldvalue.StringType && !plainText.MatchString(v.StringValue()) {
			return fmt.Sprintf("%s contains unsupported characters", field)
		}
	}
	if v := e.Get("email"); v.Type() == ldvalue.StringType && !isStrictEmail(v.StringValue()) {
		return "email is not a valid address"
	}
	for _, field := range urlFields {
		if v := e.Get(field); v.Type() == ldvalue.StringType && !isStrictURL(v.StringValue()) {
			return fmt.Sprintf("%s is not a valid URL", field)
		}
	}
	return ""
}

// isStrictEmail adds the dot placement rules of RFC 5322 local parts to the basic shape check.
func isStrictEmail(s string) bool {
	if !validation.EmailPattern.MatchString(s) {
		return false
	}
	local := s[:strings.Index(s, "@")]
	return !strings.HasPrefix(local, ".") && !strings.HasSuffix(local, ".") && !strings.Contains(s, "..")
}

// isStrictURL accepts absolute http(s) URLs whose host is a dotted domain name.
func isStrictURL(s string) bool {
	if strings.ContainsAny(s, " \t\n") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := u.Hostname()
	return strings.Contains(host, ".") && !strings.Contains(host, "..") &&
		!strings.HasPrefix(host, ".") && !strings.HasSuffix(host, ".")
}
