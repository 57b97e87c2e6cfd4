package request

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// resolveFailure maps a failed call onto the failure taxonomy, in order:
// an error body that is itself an envelope, an error body claiming success,
// a bare HTTP status, a transport error with no response at all, and finally
// a generic unknown failure.
func resolveFailure(resp *resty.Response, err error, messages *Messages, log Logger) *Status {
	if resp == nil || resp.RawResponse == nil {
		if err != nil {
			// Pure network/timeout/cancellation failure: surface the
			// transport's own error text, not a status lookup.
			return &Status{Message: err.Error(), Err: err}
		}
		return &Status{Message: messages.Unknown}
	}

	st := &Status{HTTPStatus: resp.StatusCode(), Err: err}
	body := resp.Body()

	if isStructured(resp) && len(body) > 0 {
		var probe envelopeProbe
		if jsonErr := json.Unmarshal(body, &probe); jsonErr == nil && probe.Success != nil {
			if *probe.Success {
				// An error status carrying a success envelope is a contract
				// violation; never accept it silently.
				st.Code = probe.Code
				st.Message = messages.Contradiction
				log.ErrorObj("error response claims business success", "response_body", snippet(body))
				return st
			}
			st.Code = probe.Code
			st.Message = messages.CodeText(probe.Code, probe.Message)
			if st.Message == "" {
				st.Message = messages.StatusText(resp.StatusCode(), http.StatusText(resp.StatusCode()))
			}
			return st
		}
	}

	st.Message = messages.StatusText(resp.StatusCode(), http.StatusText(resp.StatusCode()))
	if title := htmlErrorTitle(resp, body); title != "" {
		log.WarnObj("error page returned instead of envelope", "error_page_title", title)
	}
	return st
}

// isStructured reports whether the response body is a structured-data format
// the envelope decoder can handle.
func isStructured(resp *resty.Response) bool {
	ct := strings.ToLower(resp.Header().Get("Content-Type"))
	return strings.Contains(ct, "json")
}

// htmlErrorTitle extracts the <title> of an HTML error page for diagnostics.
func htmlErrorTitle(resp *resty.Response, body []byte) string {
	ct := strings.ToLower(resp.Header().Get("Content-Type"))
	if !strings.Contains(ct, "html") || len(body) == 0 {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func snippet(body []byte) string {
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}
