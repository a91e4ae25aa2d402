package adapter

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

// errorBody covers the error shapes of both APIs:
//
//	{"code":400,"error_code":"invalid_credentials","msg":"Invalid login credentials"}
//	{"error":"invalid_grant","error_description":"Invalid login credentials"}
//	{"code":"PGRST116","message":"...","details":"...","hint":null}
type errorBody struct {
	Code             any    `json:"code"`
	ErrorCode        string `json:"error_code"`
	Error            string `json:"error"`
	Msg              string `json:"msg"`
	ErrorDescription string `json:"error_description"`
	Message          string `json:"message"`
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	return parseRemoteError(resp.StatusCode(), resp.Body())
}

func parseRemoteError(status int, raw []byte) *RemoteError {
	remoteErr := &RemoteError{Status: status}
	body := strings.TrimSpace(string(raw))

	var eb errorBody
	if body != "" && json.Unmarshal(raw, &eb) == nil {
		remoteErr.Code = firstNonEmpty(eb.ErrorCode, stringCode(eb.Code), eb.Error)
		remoteErr.Message = firstNonEmpty(eb.Msg, eb.ErrorDescription, eb.Message, eb.Error)
	} else {
		remoteErr.Message = body
	}

	if remoteErr.Message == "" {
		remoteErr.Message = http.StatusText(status)
	}

	return remoteErr
}

// stringCode keeps textual codes only; GoTrue repeats the numeric status in
// "code", which carries no information.
func stringCode(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
